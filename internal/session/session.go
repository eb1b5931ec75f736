package session

import (
	"bytes"
	"sync"
	"time"

	"github.com/iwvelando/herd-cost/internal/chart"
	"github.com/iwvelando/herd-cost/internal/export"
	"github.com/iwvelando/herd-cost/internal/metrics"
	"go.uber.org/zap"
)

// Options configures a Session.
type Options struct {
	CommitDelay time.Duration
	ExportDelay time.Duration
	ReportDate  time.Time

	// Sleep replaces time.Sleep, for tests.
	Sleep func(time.Duration)
}

// Session owns one State for the lifetime of the process. Proposals are
// serialized, so at most one change is ever in flight.
type Session struct {
	logger *zap.Logger
	opts   Options

	commitMu sync.Mutex
	mu       sync.Mutex
	state    State
}

// View is everything the presentation layer needs for one render.
type View struct {
	Snapshot   metrics.Snapshot `json:"snapshot"`
	Dashboard  chart.Dashboard  `json:"dashboard"`
	Busy       bool             `json:"busy"`
	ReportDate time.Time        `json:"reportDate"`
}

// Export is a finished CSV export.
type Export struct {
	FileName string
	Content  []byte
}

// New creates a session starting from initial. The initial inputs must be
// computable; callers validate configuration before creating a session.
func New(logger *zap.Logger, initial State, opts Options) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.ReportDate.IsZero() {
		opts.ReportDate = time.Now()
	}
	initial.Busy = false
	return &Session{logger: logger, opts: opts, state: initial}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Propose validates event against the current state and, when accepted,
// commits it after the configured commit delay. Rejected events return
// immediately and never change the state. A pending commit always completes.
func (s *Session) Propose(event Event) (View, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.mu.Lock()
	if _, err := Reduce(s.state, event); err != nil {
		s.mu.Unlock()
		s.logger.Info("change rejected",
			zap.String("op", "session.Propose"),
			zap.String("event", describe(event)),
			zap.Error(err),
		)
		return View{}, err
	}
	s.state.Busy = true
	s.mu.Unlock()

	if s.opts.CommitDelay > 0 {
		s.opts.Sleep(s.opts.CommitDelay)
	}

	s.mu.Lock()
	next, err := Reduce(s.state, event)
	if err == nil {
		s.state = next
	}
	s.state.Busy = false
	s.mu.Unlock()
	if err != nil {
		return View{}, err
	}

	view, err := s.View()
	if err != nil {
		return View{}, err
	}
	s.logger.Debug("change committed",
		zap.String("op", "session.Propose"),
		zap.String("event", describe(event)),
		zap.Float64("profit", view.Snapshot.Derived.Profit),
		zap.Strings("months", view.Snapshot.Months),
	)
	return view, nil
}

// View recomputes the dashboard from the current state.
func (s *Session) View() (View, error) {
	state := s.State()
	snap, err := state.Snapshot()
	if err != nil {
		return View{}, err
	}
	return View{
		Snapshot:   snap,
		Dashboard:  chart.Build(snap),
		Busy:       state.Busy,
		ReportDate: s.opts.ReportDate,
	}, nil
}

// Export serializes the current dashboard to CSV after the configured export
// delay.
func (s *Session) Export() (Export, error) {
	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	s.setBusy(true)
	defer s.setBusy(false)

	if s.opts.ExportDelay > 0 {
		s.opts.Sleep(s.opts.ExportDelay)
	}

	state := s.State()
	snap, err := state.Snapshot()
	if err != nil {
		return Export{}, err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, export.Build(snap)); err != nil {
		return Export{}, err
	}

	name := export.FileName(state.Selection, s.opts.ReportDate)
	s.logger.Info("dashboard exported",
		zap.String("op", "session.Export"),
		zap.String("file", name),
		zap.Int("bytes", buf.Len()),
	)
	return Export{FileName: name, Content: buf.Bytes()}, nil
}

func (s *Session) setBusy(busy bool) {
	s.mu.Lock()
	s.state.Busy = busy
	s.mu.Unlock()
}

func describe(event Event) string {
	if event == nil {
		return "<nil>"
	}
	return event.String()
}
