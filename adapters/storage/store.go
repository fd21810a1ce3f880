// Package storage implements dataset file storage on the local filesystem
// and the readers that load uploaded files into typed tables. Format is
// selected by file extension; unrecognized extensions fail before any
// analysis runs.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"autodash/domain/core"
	"autodash/domain/dataset"
)

var supportedExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".json": {},
}

// SupportedExtension reports whether the filename's extension maps to a
// known reader
func SupportedExtension(filename string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// rawDir is the per-dataset subdirectory holding the uploaded file. Derived
// documents (schema.json, profile.json, insights.json) are written directly
// under the dataset directory, so the upload gets its own subdirectory to
// keep ReadTable's extension dispatch away from them.
const rawDir = "raw"

// FileStore stores uploaded dataset files under baseDir/<dataset_id>/raw/
type FileStore struct {
	baseDir string
}

// NewFileStore creates a local dataset file store
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Save writes an uploaded file into the dataset's raw directory
func (s *FileStore) Save(ctx context.Context, id core.DatasetID, filename string, r io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, id.String(), rawDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating dataset directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating dataset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing dataset file: %w", err)
	}
	return path, nil
}

// ReadTable loads the dataset's raw rows, dispatching on file extension.
// Returns core.ErrUnsupportedFormat for unrecognized extensions and
// core.ErrDatasetNotFound when no file exists for the id.
func (s *FileStore) ReadTable(ctx context.Context, id core.DatasetID) (*dataset.Table, error) {
	dir := filepath.Join(s.baseDir, id.String(), rawDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("dataset", id.String())
		}
		return nil, fmt.Errorf("reading dataset directory: %w", err)
	}

	var unsupported string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv":
			return ReadCSV(path)
		case ".xlsx":
			return ReadXLSX(path)
		case ".json":
			return ReadJSON(path)
		default:
			unsupported = entry.Name()
		}
	}

	if unsupported != "" {
		return nil, core.NewUnsupportedFormatError(unsupported)
	}
	return nil, core.NewNotFoundError("dataset", id.String())
}
