// Package transaction runs a unit of work inside an ordered list of wrappers.
//
// Every wrapper may supply an Initialize hook run before the work and a Close
// hook run after it. Close hooks run on every exit path, including error
// returns and panics, so a wrapper can rely on its teardown being paired with
// its setup.
package transaction

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

var ErrAlreadyInTransaction = errors.New("transaction: already in transaction")

type HookFunc func() error

type Wrapper struct {
	Name       string
	Initialize HookFunc
	Close      HookFunc
}

// PanicError carries a value recovered from a panicking hook.
type PanicError struct {
	Stage string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("transaction: %s panicked: %v", e.Stage, e.Value)
}

type Transaction struct {
	wrappers      []Wrapper
	initialized   []bool
	inTransaction bool
	log           zerolog.Logger
}

type Option func(*Transaction)

func WithLogger(log zerolog.Logger) Option {
	return func(t *Transaction) {
		t.log = log.With().Str("component", "transaction").Logger()
	}
}

// New builds a transaction around a fixed list of wrappers. The list is
// copied; later changes to the caller's slice have no effect.
func New(wrappers []Wrapper, opts ...Option) *Transaction {
	t := &Transaction{
		wrappers:    append([]Wrapper(nil), wrappers...),
		initialized: make([]bool, len(wrappers)),
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transaction) IsInTransaction() bool {
	return t.inTransaction
}

// Perform runs fn between the wrappers' Initialize and Close hooks.
//
// Initialize hooks run in declaration order. If one fails the rest are still
// initialized but fn is skipped. Close hooks run in the same declaration order
// for every wrapper that initialized cleanly, even when fn fails or panics.
// The earliest error wins; a panic from fn is re-raised once all closes ran.
func (t *Transaction) Perform(fn func() error) (err error) {
	if t.inTransaction {
		return ErrAlreadyInTransaction
	}
	t.inTransaction = true

	defer func() {
		r := recover()
		closeErr := t.closeAll()
		t.inTransaction = false
		if r != nil {
			if closeErr != nil {
				t.log.Error().Err(closeErr).Interface("panic", r).Msg("close failed while unwinding panic")
			}
			panic(r)
		}
		if err == nil {
			err = closeErr
		} else if closeErr != nil {
			t.log.Error().Err(closeErr).AnErr("cause", err).Msg("close failed after earlier error")
		}
	}()

	if err = t.initializeAll(); err != nil {
		return err
	}
	return fn()
}

func (t *Transaction) initializeAll() error {
	var first error
	for i, w := range t.wrappers {
		t.initialized[i] = false
		if w.Initialize == nil {
			t.initialized[i] = true
			continue
		}
		if err := call(w.Name+" initialize", w.Initialize); err != nil {
			if first == nil {
				first = fmt.Errorf("initialize %s: %w", w.Name, err)
				continue
			}
			t.log.Error().Err(err).Str("wrapper", w.Name).Msg("initialize failed after earlier error")
			continue
		}
		t.initialized[i] = true
	}
	return first
}

func (t *Transaction) closeAll() error {
	var first error
	for i, w := range t.wrappers {
		if !t.initialized[i] {
			continue
		}
		t.initialized[i] = false
		if w.Close == nil {
			continue
		}
		if err := call(w.Name+" close", w.Close); err != nil {
			if first == nil {
				first = fmt.Errorf("close %s: %w", w.Name, err)
				continue
			}
			t.log.Error().Err(err).Str("wrapper", w.Name).Msg("close failed after earlier error")
		}
	}
	return first
}

func call(stage string, hook HookFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Stage: stage, Value: r}
		}
	}()
	return hook()
}
