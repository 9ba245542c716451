// Package router keeps the stack of screens behind the TUI. Screens never
// touch the stack directly; they return navigation messages from commands.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockview/internal/screen"
)

// Navigation messages, handled by the router before anything reaches the
// active screen.
type (
	PushScreenMsg    struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	ReplaceScreenMsg struct{ Screen screen.Screen } // e.g. a finished interview giving way to its report
)

// Back is a command that pops the active screen.
func Back() tea.Msg { return PopScreenMsg{} }

// Router is a screen stack. The bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

// Push puts s on top and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop drops the top screen unless it is the last one. The screen revealed
// underneath gets a chance to refresh via screen.Resumer.
func (r *Router) Pop() tea.Cmd {
	n := len(r.stack)
	if n < 2 {
		return nil
	}
	r.stack[n-1] = nil
	r.stack = r.stack[:n-1]
	if res, ok := r.Active().(screen.Resumer); ok {
		return res.Resume()
	}
	return nil
}

// Replace swaps the top screen for s, keeping the depth.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.stack); n > 0 {
		r.stack[n-1] = s
	} else {
		r.stack = append(r.stack, s)
	}
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int { return len(r.stack) }

// Update applies navigation messages and hands everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	top := r.Active()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	r.stack[len(r.stack)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	if top := r.Active(); top != nil {
		return top.View(width, height)
	}
	return ""
}
