package interview

import (
	"time"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/interview"
)

// timerTickMsg is sent every second to update the answer timer.
type timerTickMsg time.Time

// resultReadyMsg is sent once the finished interview has been assembled,
// saved and optionally coached.
type resultReadyMsg struct {
	Result *interview.Result
	Notes  *coach.Notes
	Err    error
}
