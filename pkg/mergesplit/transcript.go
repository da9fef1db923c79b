package mergesplit

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/mergesplit-go/pkg/mergesplit/models"
)

// transcript accumulates the log lines returned to the caller and mirrors
// them to a structured logger.
type transcript struct {
	log      *slog.Logger
	lines    []string
	warnings []models.Warning
}

func newTranscript(log *slog.Logger) *transcript {
	return &transcript{log: log}
}

func (t *transcript) infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	t.lines = append(t.lines, msg)
	t.log.Info(msg)
}

func (t *transcript) warn(w models.Warning) {
	t.lines = append(t.lines, w.String())
	t.warnings = append(t.warnings, w)
	t.log.Warn(w.Message, "kind", string(w.Kind), "row", w.Row, "col", w.Col)
}

func (t *transcript) fail(err *ProcessError) {
	msg := err.Error()
	t.lines = append(t.lines, msg)
	t.log.Error("processing failed", "kind", string(err.Kind), "path", err.Path, "err", err.Err)
}
