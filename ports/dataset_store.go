package ports

import (
	"context"
	"io"

	"autodash/domain/core"
	"autodash/domain/dataset"
)

// DatasetStore gives access to the raw rows of uploaded dataset files,
// addressable by dataset id. ReadTable selects the parser by file extension
// and fails with core.ErrUnsupportedFormat before any analysis runs.
type DatasetStore interface {
	// Save stores an uploaded file under the dataset id and returns its path
	Save(ctx context.Context, id core.DatasetID, filename string, r io.Reader) (string, error)

	// ReadTable loads the dataset's raw rows as a typed table
	ReadTable(ctx context.Context, id core.DatasetID) (*dataset.Table, error)
}
