// Package batching defers update side effects to the end of the outermost
// batched call and flushes them through a single transaction.
package batching

import (
	"github.com/delaneyj/rerender/transaction"
	"github.com/rs/zerolog"
)

// Flusher processes whatever updates were queued while a batch was open.
type Flusher interface {
	FlushBatchedUpdates() error
}

// FlusherFunc adapts a plain function to Flusher.
type FlusherFunc func() error

func (f FlusherFunc) FlushBatchedUpdates() error {
	return f()
}

// Wrapper names, in the order their Close hooks run.
const (
	FlushWrapperName = "flush-batched-updates"
	ResetWrapperName = "reset-batched-updates"
)

// Strategy defers update side effects until the outermost batched callback
// returns. Each Strategy carries its own batching flag, so one renderer root
// owns one Strategy. It is not safe for concurrent use.
type Strategy struct {
	isBatchingUpdates bool
	flusher           Flusher
	tx                *transaction.Transaction
	log               zerolog.Logger
}

// Option configures a Strategy.
type Option func(*Strategy)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Strategy) {
		s.log = log
	}
}

// NewStrategy returns an idle Strategy that calls flusher when each outermost
// batch closes. A nil flusher is allowed.
func NewStrategy(flusher Flusher, opts ...Option) *Strategy {
	s := &Strategy{
		flusher: flusher,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// flush must close before reset so updates queued during the flush are
	// still seen as batched
	s.tx = transaction.New([]transaction.Wrapper{
		{Name: FlushWrapperName, Close: s.flush},
		{Name: ResetWrapperName, Close: s.reset},
	}, transaction.WithLogger(s.log))
	s.log = s.log.With().Str("component", "batching").Logger()

	return s
}

func (s *Strategy) IsBatchingUpdates() bool {
	return s.isBatchingUpdates
}

// BatchedUpdates runs fn so that updates it triggers are flushed once when the
// outermost batched call returns. Nested calls run fn inline.
func (s *Strategy) BatchedUpdates(fn func() error) error {
	if s.isBatchingUpdates {
		return fn()
	}

	s.isBatchingUpdates = true
	return s.tx.Perform(fn)
}

func (s *Strategy) flush() error {
	if s.flusher == nil {
		return nil
	}
	s.log.Debug().Msg("flushing batched updates")
	return s.flusher.FlushBatchedUpdates()
}

func (s *Strategy) reset() error {
	s.isBatchingUpdates = false
	return nil
}
