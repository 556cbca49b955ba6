package authflow

import (
	"context"
	"sync"
)

// Registration is the pending result of one asynchronous sign-up submission.
//
// The outcome is published exactly once. After Done is closed every call to Wait
// or Result returns the same value.
type Registration struct {
	done    chan struct{}
	outcome SignUpOutcome
}

func newRegistration() *Registration {
	return &Registration{done: make(chan struct{})}
}

func (r *Registration) complete(outcome SignUpOutcome) {
	r.outcome = outcome
	close(r.done)
}

// Done is closed once the outcome is available.
func (r *Registration) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the outcome is available or ctx ends. It returns ctx.Err()
// only when ctx ends first; the submission itself keeps running.
func (r *Registration) Wait(ctx context.Context) (SignUpOutcome, error) {
	select {
	case <-r.done:
		return r.outcome, nil
	case <-ctx.Done():
		return SignUpOutcome{}, ctx.Err()
	}
}

// Result returns the outcome without blocking. ok is false while the submission is
// still running.
func (r *Registration) Result() (outcome SignUpOutcome, ok bool) {
	select {
	case <-r.done:
		return r.outcome, true
	default:
		return SignUpOutcome{}, false
	}
}

// SubmitSignUp runs [Engine.SignUp] in the background and returns its pending
// result. Independent submissions may complete in any order; use a [SignUpQueue]
// when one caller needs them in submission order.
func (e *Engine) SubmitSignUp(ctx context.Context, email, password string) *Registration {
	r := newRegistration()
	go func() {
		r.complete(e.SignUp(ctx, email, password))
	}()
	return r
}

// SignUpQueue runs one caller's sign-up submissions one at a time, in the order
// they were submitted.
//
// Queues are independent: submissions on different queues may interleave.
type SignUpQueue struct {
	engine *Engine

	mu   sync.Mutex
	tail <-chan struct{}
}

// NewSignUpQueue returns an empty queue bound to e.
func (e *Engine) NewSignUpQueue() *SignUpQueue {
	return &SignUpQueue{engine: e}
}

// Submit enqueues one submission. It starts once every earlier submission on q
// has completed.
func (q *SignUpQueue) Submit(ctx context.Context, email, password string) *Registration {
	r := newRegistration()

	q.mu.Lock()
	prev := q.tail
	q.tail = r.done
	q.mu.Unlock()

	go func() {
		if prev != nil {
			<-prev
		}
		r.complete(q.engine.SignUp(ctx, email, password))
	}()

	return r
}
