package events

import "github.com/atomicstack/reqline/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Acquire(steps int) {
	logging.Trace("session.acquire", map[string]interface{}{"steps": steps})
}

func (SessionTracer) StepFailed(step string, err error) {
	logging.Trace("session.step.error", map[string]interface{}{"step": step, "error": err.Error()})
}

func (SessionTracer) Release(err error) {
	payload := map[string]interface{}{"ok": err == nil}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.release", payload)
}
