// Package interview is the screen that runs a mock interview question by
// question.
package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/router"
	"github.com/abhisek/mockview/internal/screen"
	"github.com/abhisek/mockview/internal/screens/summary"
	"github.com/abhisek/mockview/internal/scoring"
	"github.com/abhisek/mockview/internal/store"
	"github.com/abhisek/mockview/internal/ui/components"
	"github.com/abhisek/mockview/internal/ui/layout"
)

// Options are the screen's optional collaborators.
type Options struct {
	// Reports stores the finished interview. Nil skips saving.
	Reports store.ReportRepo
	// Coach adds coaching notes to the report. Nil skips coaching.
	Coach  *coach.Service
	Logger *slog.Logger
}

// feedback is what the candidate sees after answering or skipping.
type feedback struct {
	question question.Question
	result   scoring.Result
	followup string
}

// InterviewScreen implements screen.Screen for a running interview.
type InterviewScreen struct {
	session *interview.Session
	opts    Options
	input   components.TextInput

	feedback   *feedback
	confirmEnd bool
	finishing  bool
	errMsg     string

	askedAt time.Time
	elapsed time.Duration
	now     func() time.Time
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.StatusProvider = (*InterviewScreen)(nil)
var _ screen.BackInterceptor = (*InterviewScreen)(nil)

// New creates a screen for a session that has not been started.
func New(sess *interview.Session, opts Options) *InterviewScreen {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &InterviewScreen{
		session: sess,
		opts:    opts,
		input:   newAnswerInput(),
		now:     time.Now,
	}
}

func newAnswerInput() components.TextInput {
	return components.NewTextInput("Type your answer...", components.AnswerCharLimit)
}

func (s *InterviewScreen) Init() tea.Cmd {
	if err := s.session.Start(context.Background()); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if s.session.Phase() == interview.PhaseCompleted {
		return s.finish()
	}
	s.askedAt = s.now()
	return tea.Batch(s.input.Init(), tickCmd())
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

// Status shows progress through the question list.
func (s *InterviewScreen) Status() string {
	q, ok := s.session.Current()
	if !ok {
		return ""
	}
	_, total := s.session.Progress()
	return fmt.Sprintf("Q %d/%d", q.Index+1, total)
}

// InterceptsBack keeps Esc for the end-early confirmation while the
// interview runs.
func (s *InterviewScreen) InterceptsBack() bool {
	return s.errMsg == "" && s.session.Phase() == interview.PhaseInProgress
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "":
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.finishing:
		return nil
	case s.confirmEnd:
		return []layout.KeyHint{
			{Key: "Y", Description: "End interview"},
			{Key: "N", Description: "Keep going"},
		}
	case s.feedback != nil:
		return []layout.KeyHint{{Key: "Enter", Description: "Next question"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+S", Description: "Skip"},
		{Key: "Esc", Description: "End early"},
	}
}

func (s *InterviewScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, height, s.errMsg)
	case s.finishing:
		return renderFinishing(width, height, s.opts.Coach != nil)
	case s.confirmEnd:
		return s.renderConfirmEnd(width, height)
	case s.feedback != nil:
		return s.renderFeedback(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()
	case resultReadyMsg:
		return s.handleResult(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.answering() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) answering() bool {
	return s.errMsg == "" && !s.finishing && !s.confirmEnd && s.feedback == nil &&
		s.session.Phase() == interview.PhaseInProgress
}

func (s *InterviewScreen) handleTick() (screen.Screen, tea.Cmd) {
	if s.finishing || s.session.Phase() != interview.PhaseInProgress {
		return s, nil
	}
	if s.answering() {
		s.elapsed = s.now().Sub(s.askedAt)
	}
	return s, tickCmd()
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, router.Back
	}
	if s.finishing {
		return s, nil
	}

	if s.confirmEnd {
		switch key {
		case "y", "Y":
			s.confirmEnd = false
			if err := s.session.End(context.Background()); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, s.finish()
		case "n", "N", "esc":
			s.confirmEnd = false
		}
		return s, nil
	}

	if s.feedback != nil {
		switch key {
		case "enter", "space", " ":
			return s.advance()
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.confirmEnd = true
		return s, nil
	case "enter":
		text := strings.TrimSpace(s.input.Value())
		if text == "" {
			return s, nil
		}
		return s.submit(interview.Answered(s.currentIndex(), text))
	case "ctrl+s":
		return s.submit(interview.Skipped(s.currentIndex()))
	}

	// The first keystroke moves the question from asking to listening.
	if s.session.Step() == interview.StepAsking {
		if err := s.session.Listen(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InterviewScreen) currentIndex() int {
	q, _ := s.session.Current()
	return q.Index
}

func (s *InterviewScreen) submit(ev interview.AnswerEvent) (screen.Screen, tea.Cmd) {
	q, ok := s.session.Current()
	if !ok {
		return s, nil
	}
	res, err := s.session.Submit(context.Background(), ev)
	if err != nil {
		s.opts.Logger.Warn("answer rejected", slog.Int("question", ev.QuestionIndex), slog.Any("error", err))
		s.errMsg = err.Error()
		return s, nil
	}
	fb := &feedback{question: q, result: res}
	if !res.Skipped {
		fb.followup = question.Followup(res.Score)
	}
	s.feedback = fb
	return s, nil
}

// advance leaves the feedback view for the next open question, or wraps
// up when none is left.
func (s *InterviewScreen) advance() (screen.Screen, tea.Cmd) {
	s.feedback = nil
	if s.session.Phase() == interview.PhaseCompleted {
		return s, s.finish()
	}
	if _, ok := s.session.Next(); !ok {
		return s, s.finish()
	}
	s.input = newAnswerInput()
	s.askedAt = s.now()
	s.elapsed = 0
	return s, s.input.Init()
}

// finish assembles the result off the UI loop, saving and coaching it when
// configured. Save and coaching failures are logged and do not block the
// report.
func (s *InterviewScreen) finish() tea.Cmd {
	s.finishing = true
	sess, opts := s.session, s.opts
	return func() tea.Msg {
		ctx := logging.WithAttrs(context.Background(), slog.String("session_id", sess.ID()))
		res, err := sess.Result()
		if err != nil {
			return resultReadyMsg{Err: err}
		}
		if opts.Reports != nil {
			if err := interview.Save(ctx, opts.Reports, res); err != nil {
				opts.Logger.WarnContext(ctx, "failed to save report", slog.Any("error", err))
			}
		}
		var notes *coach.Notes
		if opts.Coach != nil {
			notes, err = opts.Coach.Notes(ctx, res)
			if err != nil {
				opts.Logger.WarnContext(ctx, "coaching unavailable", slog.Any("error", err))
				notes = nil
			}
		}
		return resultReadyMsg{Result: res, Notes: notes}
	}
}

func (s *InterviewScreen) handleResult(msg resultReadyMsg) (screen.Screen, tea.Cmd) {
	s.finishing = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(msg.Result, msg.Notes)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
