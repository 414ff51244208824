package events

import "github.com/ideatui/idea-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Rescan(baseDir string, categories, projects int) {
	logging.Trace("app.rescan", map[string]interface{}{
		"baseDir":    baseDir,
		"categories": categories,
		"projects":   projects,
	})
}

func (AppTracer) WatchError(err error) {
	if err == nil {
		return
	}
	logging.Trace("app.watch_error", map[string]interface{}{"error": err.Error()})
}

func (AppTracer) Exit(code int) {
	logging.Trace("app.exit", map[string]interface{}{"code": code})
}
