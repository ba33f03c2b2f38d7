// Package circuit provides a consecutive-failure circuit breaker used to
// route calls to an in-memory fallback while a remote dependency is down.
package circuit

import "sync"

// State is the breaker position.
type State int

const (
	StateClosed State = iota
	StateOpen
)

func (s State) String() string {
	if s == StateOpen {
		return "open"
	}
	return "closed"
}

const (
	defaultFailureThreshold = 5
	defaultSuccessThreshold = 3
)

// StateChange reports a transition caused by a Record call.
type StateChange struct {
	Opened bool
	Closed bool
}

// Breaker opens after N consecutive failures and closes again after M
// consecutive successes observed while open.
type Breaker struct {
	name             string
	mu               sync.Mutex
	state            State
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
}

type Option func(*Breaker)

func WithFailureThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.failureThreshold = n
		}
	}
}

func WithSuccessThreshold(n int) Option {
	return func(b *Breaker) {
		if n > 0 {
			b.successThreshold = n
		}
	}
}

// New creates a closed breaker.
func New(name string, opts ...Option) *Breaker {
	b := &Breaker{
		name:             name,
		state:            StateClosed,
		failureThreshold: defaultFailureThreshold,
		successThreshold: defaultSuccessThreshold,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) IsOpen() bool {
	return b.State() == StateOpen
}

// RecordFailure counts a failed primary call. useFallback is true while the
// breaker is open, including the call that opened it.
func (b *Breaker) RecordFailure() (useFallback bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount++
	b.successCount = 0
	if b.state == StateOpen {
		return true, StateChange{}
	}
	if b.failureCount >= b.failureThreshold {
		b.state = StateOpen
		return true, StateChange{Opened: true}
	}
	return false, StateChange{}
}

// RecordSuccess counts a successful primary call. usePrimary is false until
// enough successes close an open breaker.
func (b *Breaker) RecordSuccess() (usePrimary bool, change StateChange) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == StateOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.state = StateClosed
			b.failureCount = 0
			b.successCount = 0
			return true, StateChange{Closed: true}
		}
		return false, StateChange{}
	}
	b.failureCount = 0
	return true, StateChange{}
}

// Reset closes the breaker and clears counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = StateClosed
	b.failureCount = 0
	b.successCount = 0
}
