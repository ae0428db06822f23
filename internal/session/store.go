// Package session holds the analysis view state machine shared by the
// terminal UI and the one-shot commands.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/ingredient-copilot/internal/common"
	"github.com/yildizm/ingredient-copilot/internal/service"
)

var (
	// ErrEmptyInput is returned when a submission has no text
	ErrEmptyInput = errors.New("ingredient text is empty")

	// ErrBusy is returned when a submission is already in flight
	ErrBusy = errors.New("an analysis is already in progress")

	// ErrNoSuchSample is returned for an out-of-range sample index
	ErrNoSuchSample = errors.New("no such sample")

	// ErrClosed is returned after the store has been closed
	ErrClosed = errors.New("session closed")
)

// DefaultTimeout bounds a submission when no timeout is configured
const DefaultTimeout = 30 * time.Second

// State is the render mode derived from the store contents
type State int

const (
	StatePicker State = iota
	StateLoading
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return "picker"
	}
}

// Submission is one in-flight analysis request
type Submission struct {
	ID          string
	Text        string
	ProductName string
	StartedAt   time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// Context is canceled when the submission times out, is superseded or the
// store is closed.
func (s *Submission) Context() context.Context {
	return s.ctx
}

// Request builds the wire request for this submission
func (s *Submission) Request() *common.AnalysisRequest {
	req := common.NewAnalysisRequest(s.Text)
	req.ProductName = s.ProductName
	return req
}

// Outcome is the resolution of a submission
type Outcome struct {
	SubmissionID string
	Result       *common.AnalysisResult
	Err          error
	Message      string
	Elapsed      time.Duration
}

// Snapshot is a consistent copy of the store for rendering
type Snapshot struct {
	State   State
	Input   string
	Samples []common.SampleProduct
	Result  *common.AnalysisResult
	Error   string
}

// Option configures a Store
type Option func(*Store)

// WithTimeout sets the per-submission timeout
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithContext parents every submission on ctx, so canceling it aborts
// the pending request
func WithContext(ctx context.Context) Option {
	return func(s *Store) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

// WithClearResetsError makes Clear also drop the current error message
func WithClearResetsError(reset bool) Option {
	return func(s *Store) {
		s.clearResetsError = reset
	}
}

// WithProductName attaches a product name to every submission
func WithProductName(name string) Option {
	return func(s *Store) {
		s.productName = name
	}
}

// Store is the mutable view state. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	input   string
	samples []common.SampleProduct
	result  *common.AnalysisResult
	errMsg  string

	inflight *Submission
	closed   bool

	timeout          time.Duration
	clearResetsError bool
	productName      string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewStore creates an empty store in the picker state
func NewStore(opts ...Option) *Store {
	s := &Store{
		timeout: DefaultTimeout,
		ctx:     context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(s.ctx)
	return s
}

// SetInput replaces the free-text input
func (s *Store) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// Input returns the current free-text input
func (s *Store) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetSamples replaces the sample list, keeping the given order
func (s *Store) SetSamples(samples []common.SampleProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append([]common.SampleProduct(nil), samples...)
}

// Samples returns a copy of the sample list
func (s *Store) Samples() []common.SampleProduct {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]common.SampleProduct(nil), s.samples...)
}

// State derives the render mode. Loading wins over error, error over result.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	switch {
	case s.inflight != nil:
		return StateLoading
	case s.errMsg != "":
		return StateError
	case s.result != nil:
		return StateResult
	default:
		return StatePicker
	}
}

// Snapshot returns a consistent copy of the store
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:   s.stateLocked(),
		Input:   s.input,
		Samples: append([]common.SampleProduct(nil), s.samples...),
		Error:   s.errMsg,
	}
	if s.result != nil {
		r := *s.result
		snap.Result = &r
	}
	return snap
}

// InFlight returns the pending submission, or nil
func (s *Store) InFlight() *Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight
}

// Begin starts a submission for text. Empty text is rejected without any
// state change, as is a second submission while one is pending.
func (s *Store) Begin(text string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(text); err != nil {
		return nil, err
	}
	if s.inflight != nil {
		return nil, ErrBusy
	}
	return s.startLocked(text), nil
}

// Supersede cancels any pending submission and starts a new one for text
func (s *Store) Supersede(text string) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkLocked(text); err != nil {
		return nil, err
	}
	if s.inflight != nil {
		s.inflight.cancel()
		s.inflight = nil
	}
	return s.startLocked(text), nil
}

// SelectSample copies the sample's ingredients into the input and starts a
// submission for them. A sample without ingredients submits the current input.
func (s *Store) SelectSample(index int) (*Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.samples) {
		return nil, ErrNoSuchSample
	}
	if s.closed {
		return nil, ErrClosed
	}
	if s.inflight != nil {
		return nil, ErrBusy
	}

	text := s.samples[index].Ingredients
	if text == "" {
		text = s.input
	}
	if text == "" {
		return nil, ErrEmptyInput
	}
	return s.startLocked(text), nil
}

func (s *Store) checkLocked(text string) error {
	if s.closed {
		return ErrClosed
	}
	if text == "" {
		return ErrEmptyInput
	}
	return nil
}

func (s *Store) startLocked(text string) *Submission {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	sub := &Submission{
		ID:          uuid.NewString(),
		Text:        text,
		ProductName: s.productName,
		StartedAt:   time.Now(),
		ctx:         ctx,
		cancel:      cancel,
	}

	s.input = text
	s.result = nil
	s.errMsg = ""
	s.inflight = sub
	return sub
}

// Apply resolves the pending submission. Outcomes for any other submission
// are ignored and Apply reports false.
func (s *Store) Apply(o Outcome) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight == nil || s.inflight.ID != o.SubmissionID {
		return false
	}
	s.inflight.cancel()
	s.inflight = nil

	if o.Err != nil || o.Result == nil {
		msg := o.Message
		if msg == "" {
			msg = service.UserMessage(o.Err)
		}
		s.errMsg = msg
		s.result = nil
		return true
	}

	r := *o.Result
	s.result = &r
	s.errMsg = ""
	return true
}

// Clear empties the input and hides the result. The error message survives
// unless the store was built WithClearResetsError.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.input = ""
	s.result = nil
	if s.clearResetsError {
		s.errMsg = ""
	}
}

// Close aborts any pending submission and rejects new ones
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	if s.inflight != nil {
		s.inflight.cancel()
		s.inflight = nil
	}
	s.cancel()
}
