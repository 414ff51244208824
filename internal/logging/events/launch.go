package events

import "github.com/ideatui/idea-tui/internal/logging"

type LaunchTracer struct{}

type CloneTracer struct{}

var (
	Launch = LaunchTracer{}
	Clone  = CloneTracer{}
)

func (LaunchTracer) IDE(path string) {
	logging.Trace("launch.ide", map[string]interface{}{"path": path})
}

func (LaunchTracer) Terminal(dir string) {
	logging.Trace("launch.terminal", map[string]interface{}{"dir": dir})
}

func (LaunchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("launch.error", map[string]interface{}{"error": err.Error()})
}

func (CloneTracer) Start(url, dest string) {
	logging.Trace("clone.start", map[string]interface{}{"url": url, "dest": dest})
}

func (CloneTracer) Done(path string) {
	logging.Trace("clone.done", map[string]interface{}{"path": path})
}

func (CloneTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("clone.error", map[string]interface{}{"error": err.Error()})
}
