package events

import "github.com/ideatui/idea-tui/internal/logging"

type StatusTracer struct{}

var Status = StatusTracer{}

func (StatusTracer) Requested(path string) {
	logging.Trace("status.request", map[string]interface{}{"path": path})
}

func (StatusTracer) Resolved(path, branch string, dirty, available bool) {
	logging.Trace("status.resolve", map[string]interface{}{
		"path":      path,
		"branch":    branch,
		"dirty":     dirty,
		"available": available,
	})
}

func (StatusTracer) Invalidated(path string) {
	logging.Trace("status.invalidate", map[string]interface{}{"path": path})
}
