package models

import "fmt"

// WarningKind classifies a non-fatal condition met while processing.
type WarningKind string

const (
	// UnsupportedMergeShape marks a multi-column or overlapping merge in a processed column.
	UnsupportedMergeShape WarningKind = "UnsupportedMergeShape"
	// DivisionByZero marks a merged weight range whose quantities sum to zero.
	DivisionByZero WarningKind = "DivisionByZero"
	// NonNumericCell marks a cell that should have been numeric.
	NonNumericCell WarningKind = "NonNumericCell"
)

// Warning is a non-fatal condition recorded in the transcript.
type Warning struct {
	// Kind is the warning classification.
	Kind WarningKind `json:"kind"`
	// Row is the affected row (1-based), 0 when not cell specific.
	Row int `json:"row,omitempty"`
	// Col is the affected column (1-based), 0 when not cell specific.
	Col int `json:"col,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}

// ProcessResult is the outcome of one transformation.
type ProcessResult struct {
	// Success is false when a fatal error stopped processing.
	Success bool `json:"success"`
	// OutputPath is the written file, empty on failure.
	OutputPath string `json:"output_path"`
	// Message summarises the outcome.
	Message string `json:"message"`
	// Logs is the processing transcript in order.
	Logs []string `json:"logs"`
	// Warnings holds the non-fatal conditions also present in Logs.
	Warnings []Warning `json:"warnings,omitempty"`
}
