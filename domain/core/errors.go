package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrDatasetNotFound   = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrDashboardNotFound = fmt.Errorf("%w: dashboard", ErrNotFound)
	// ErrMissingArtifact means a derived document (schema, profile, insights,
	// dashboard) has not been generated yet for the dataset.
	ErrMissingArtifact = fmt.Errorf("%w: derived artifact", ErrNotFound)

	// Pipeline errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrProcessingFailed  = errors.New("dataset processing failed")
	ErrEmptyDataset      = errors.New("dataset contains no rows")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewUnsupportedFormatError(filename string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

func NewProcessingError(stage string, err error) error {
	return fmt.Errorf("%w at %s: %w", ErrProcessingFailed, stage, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

func IsMissingArtifact(err error) bool {
	return errors.Is(err, ErrMissingArtifact)
}

func IsProcessingFailed(err error) bool {
	return errors.Is(err, ErrProcessingFailed)
}
