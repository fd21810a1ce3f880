package dataset

import (
	"time"

	"autodash/domain/core"
)

// Status represents the processing state of a dataset
type Status string

const (
	StatusProcessing Status = "PROCESSING"
	StatusReady      Status = "READY"
	StatusFailed     Status = "FAILED"
)

// Dataset represents an uploaded tabular file tracked by the metadata store
type Dataset struct {
	ID     core.DatasetID `json:"dataset_id"`
	UserID core.UserID    `json:"user_id"`

	// File information
	OriginalFilename string `json:"original_filename"`
	FilePath         string `json:"file_path,omitempty"`

	// Dataset statistics, filled in once processing completes
	RecordCount int `json:"record_count"`
	FieldCount  int `json:"field_count"`

	// Processing state
	Status       Status `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDataset creates a dataset record in its initial processing state
func NewDataset(userID core.UserID, filename string) *Dataset {
	now := time.Now()
	return &Dataset{
		ID:               core.DatasetID(core.NewID()),
		UserID:           userID,
		OriginalFilename: filename,
		Status:           StatusProcessing,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
