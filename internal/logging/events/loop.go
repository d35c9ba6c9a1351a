package events

import "github.com/atomicstack/reqline/internal/logging"

type LoopTracer struct{}

var Loop = LoopTracer{}

func (LoopTracer) Key(iteration int, key, kind string) {
	logging.Trace("loop.key", map[string]interface{}{"iteration": iteration, "key": key, "kind": kind})
}

func (LoopTracer) Quit(iterations int) {
	logging.Trace("loop.quit", map[string]interface{}{"iterations": iterations})
}

func (LoopTracer) Abort(iteration int, err error) {
	logging.Trace("loop.abort", map[string]interface{}{"iteration": iteration, "error": err.Error()})
}
