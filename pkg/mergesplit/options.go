// Package mergesplit splits merged weight and box cells of a shipment
// workbook into one value per physical row.
package mergesplit

import "log/slog"

// Options configures one Process call.
type Options struct {
	// Logger mirrors the transcript. If nil, nothing is logged.
	Logger *slog.Logger
	// OutputPath overrides the derived output path.
	OutputPath string
	// FillMerged dissolves merges outside the weight and box columns by copying
	// the anchor value down. Otherwise those merges are kept in the output.
	FillMerged bool
	// StopAtBlankKey ends the table at the first row whose first column is blank.
	StopAtBlankKey bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
