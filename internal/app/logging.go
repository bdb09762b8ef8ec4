package app

import (
	"log/slog"

	"github.com/treykane/vscroll/internal/logging"
)

// appLog is the package-level structured logger for the app package. Output
// goes to stderr so it does not interfere with the terminal UI on stdout.
var appLog = logging.New("app")

// setStatusError shows status in the footer and logs err with attrs.
//
// Usage:
//
//	m.setStatusError("Scroll failed", err, "position", pos)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	m.statusIsError = true
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	fields = append(fields, attrs...)
	appLog.Error(status, fields...)
}

// setStatus shows an informational message in the footer.
func (m *Model) setStatus(status string) {
	m.status = status
	m.statusIsError = false
}
