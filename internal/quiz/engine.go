package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Engine draws quiz sessions from a fixed pool and drives their progression.
// It is not safe for concurrent use; the owning screen calls it serially.
type Engine struct {
	pool    []Question
	poolErr error
	shuffle func(n int, swap func(i, j int))
	logger  *zap.Logger
	now     func() time.Time
	session *Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand uses r for every shuffle.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.shuffle = r.Shuffle
	}
}

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine over pool. The pool is copied and never mutated.
// A malformed pool is reported by Start.
func NewEngine(pool []Question, opts ...Option) *Engine {
	cp := make([]Question, len(pool))
	for i, q := range pool {
		cp[i] = q.clone()
	}
	e := &Engine{
		pool:    cp,
		poolErr: validatePool(cp),
		shuffle: rand.Shuffle,
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Session returns the current session, or nil before the first Start.
func (e *Engine) Session() *Session {
	return e.session
}

// State returns the lifecycle state of the current session.
func (e *Engine) State() State {
	switch {
	case e.session == nil:
		return StateNotStarted
	case e.session.Finished:
		return StateFinished
	case e.session.FeedbackShown:
		return StateAnswered
	default:
		return StateUnanswered
	}
}

// Start draws a fresh session, replacing any previous one.
func (e *Engine) Start() (*Session, error) {
	if e.poolErr != nil {
		return nil, e.poolErr
	}
	if len(e.pool) < SessionSize {
		return nil, &PoolError{Have: len(e.pool), Need: SessionSize}
	}

	order := make([]int, len(e.pool))
	for i := range order {
		order[i] = i
	}
	e.shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	questions := make([]Question, SessionSize)
	for i, idx := range order[:SessionSize] {
		questions[i] = e.shuffleOptions(e.pool[idx])
	}

	e.session = &Session{
		ID:        uuid.New().String(),
		Questions: questions,
		Selected:  NoSelection,
		StartedAt: e.now(),
	}

	e.logger.Info("quiz started",
		zap.String("session_id", e.session.ID),
		zap.Int("pool_size", len(e.pool)),
	)
	return e.session, nil
}

// shuffleOptions returns a copy of q with its options permuted and Answer
// pointing at the new position of the originally correct option.
func (e *Engine) shuffleOptions(q Question) Question {
	type option struct {
		text    string
		correct bool
	}

	paired := make([]option, len(q.Options))
	for i, text := range q.Options {
		paired[i] = option{text: text, correct: i == q.Answer}
	}
	e.shuffle(len(paired), func(i, j int) {
		paired[i], paired[j] = paired[j], paired[i]
	})

	out := q
	out.Options = make([]string, len(paired))
	out.Answer = NoSelection
	for i, o := range paired {
		out.Options[i] = o.text
		if o.correct {
			out.Answer = i
		}
	}
	return out
}

// Answer records a pick for the active question. A second call before
// Advance is a no-op and returns the unchanged session.
func (e *Engine) Answer(option int) (*Session, error) {
	s, err := e.active()
	if err != nil {
		return nil, err
	}
	if s.FeedbackShown {
		return s, nil
	}

	q := s.Current()
	if option < 0 || option >= len(q.Options) {
		return nil, fmt.Errorf("%w: %d (question has %d options)", ErrInvalidOption, option, len(q.Options))
	}

	s.Selected = option
	s.FeedbackShown = true
	correct := q.IsCorrect(option)
	if correct {
		s.Score++
	}

	e.logger.Debug("quiz answer",
		zap.String("session_id", s.ID),
		zap.Int("question_id", q.ID),
		zap.Bool("correct", correct),
		zap.Int("score", s.Score),
	)
	return s, nil
}

// Advance moves past an answered question, finishing the session after the
// last one.
func (e *Engine) Advance() (*Session, error) {
	s, err := e.active()
	if err != nil {
		return nil, err
	}
	if !s.FeedbackShown {
		return nil, ErrFeedbackPending
	}

	if s.CurrentIndex+1 < len(s.Questions) {
		s.CurrentIndex++
		s.Selected = NoSelection
		s.FeedbackShown = false
		return s, nil
	}

	s.Finished = true
	e.logger.Info("quiz finished",
		zap.String("session_id", s.ID),
		zap.Int("score", s.Score),
		zap.Int("total", len(s.Questions)),
		zap.Duration("elapsed", e.now().Sub(s.StartedAt)),
	)
	return s, nil
}

func (e *Engine) active() (*Session, error) {
	if e.session == nil {
		return nil, ErrNotStarted
	}
	if e.session.Finished {
		return nil, ErrFinished
	}
	return e.session, nil
}
