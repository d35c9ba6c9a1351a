package app

import (
	"github.com/atomicstack/reqline/internal/loop"
	"github.com/atomicstack/reqline/internal/terminal"
)

const quitKey = 'q'

// HandleKey sets ShouldQuit on a press of q. Every other event, including
// repeats and releases of q, leaves state unchanged.
func HandleKey(ev terminal.KeyEvent, state loop.State) loop.State {
	if ev.Kind != terminal.KeyPress {
		return state
	}
	if ev.Code == terminal.KeyRune && ev.Rune == quitKey {
		state.ShouldQuit = true
	}
	return state
}
