// Package updates keeps the dirty-component queue that a batching strategy
// flushes when the outermost batch closes.
package updates

import (
	"errors"
	"fmt"
	"reflect"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/rerender/batching"
	"github.com/rs/zerolog"
)

var ErrUncomparableComponent = errors.New("updates: component is not comparable")

// Component is anything that can re-render itself once it has been marked
// dirty. batch is the number of the flush round doing the update. The queue
// dedupes components by value, so the dynamic type must be comparable;
// pointers always are.
type Component interface {
	PerformUpdateIfNecessary(batch uint64) error
}

// ComponentFunc adapts a function to Component. Use it through a pointer; the
// queue dedupes by identity and func values cannot be hashed.
type ComponentFunc func(batch uint64) error

func (f *ComponentFunc) PerformUpdateIfNecessary(batch uint64) error {
	return (*f)(batch)
}

type Queue struct {
	strategy    *batching.Strategy
	dirty       []Component
	pending     mapset.Set[Component]
	batchNumber uint64
	log         zerolog.Logger
}

type Option func(*Queue)

func WithLogger(log zerolog.Logger) Option {
	return func(q *Queue) {
		q.log = log
	}
}

func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		pending: mapset.NewThreadUnsafeSet[Component](),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.strategy = batching.NewStrategy(q, batching.WithLogger(q.log))
	q.log = q.log.With().Str("component", "updates").Logger()
	return q
}

func (q *Queue) IsBatchingUpdates() bool {
	return q.strategy.IsBatchingUpdates()
}

func (q *Queue) BatchedUpdates(fn func() error) error {
	return q.strategy.BatchedUpdates(fn)
}

// Enqueue marks c dirty. Outside a batch it opens one, so the update is
// applied by that batch's flush before Enqueue returns.
func (q *Queue) Enqueue(c Component) error {
	if c == nil {
		return fmt.Errorf("%w: nil", ErrUncomparableComponent)
	}
	if typ := reflect.TypeOf(c); !typ.Comparable() {
		return fmt.Errorf("%w: %s", ErrUncomparableComponent, typ)
	}

	if !q.strategy.IsBatchingUpdates() {
		return q.strategy.BatchedUpdates(func() error {
			return q.Enqueue(c)
		})
	}

	if q.pending.Contains(c) {
		return nil
	}
	q.pending.Add(c)
	q.dirty = append(q.dirty, c)
	return nil
}

func (q *Queue) Len() int {
	return len(q.dirty)
}

func (q *Queue) BatchNumber() uint64 {
	return q.batchNumber
}

// FlushBatchedUpdates updates dirty components in the order they were
// queued. Components queued during the flush are handled in a further round.
// On the first failure the rest of the queue is dropped.
func (q *Queue) FlushBatchedUpdates() error {
	for len(q.dirty) > 0 {
		q.batchNumber++
		round := q.dirty
		q.dirty = nil
		q.pending.Clear()

		q.log.Debug().Uint64("batch", q.batchNumber).Int("components", len(round)).Msg("flushing")
		for i, c := range round {
			if err := c.PerformUpdateIfNecessary(q.batchNumber); err != nil {
				dropped := len(round) - i - 1 + len(q.dirty)
				q.dirty = nil
				q.pending.Clear()
				if dropped > 0 {
					q.log.Warn().Err(err).Int("dropped", dropped).Msg("dropping queued updates after failure")
				}
				return fmt.Errorf("batch %d: updating component %d: %w", q.batchNumber, i, err)
			}
		}
	}
	return nil
}
