package models

import (
	"time"
)

// QuizDataExport is the backup payload produced by the admin export endpoint
// and accepted back by the import endpoint.
type QuizDataExport struct {
	Categories []QuizCategory `json:"categories"`
	Questions  []QuizQuestion `json:"questions"`
	ExportDate time.Time      `json:"export_date"`
}
