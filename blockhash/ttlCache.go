package blockhash

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/go-errors/errors"
	"golang.org/x/sync/singleflight"
)

// TTLCache holds one value for ttl. Callers arriving while the value is
// missing or expired share a single fetch.
type TTLCache[T any] struct {
	ttl   time.Duration
	now   func() time.Time
	group singleflight.Group

	mxState    *sync.Mutex
	value      T
	hasValue   bool
	expiresAt  time.Time
	generation uint64
}

func NewTTLCache[T any](ttl time.Duration, now func() time.Time) *TTLCache[T] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[T]{
		ttl:     ttl,
		now:     now,
		mxState: new(sync.Mutex),
	}
}

// Get returns the cached value while it is fresh, otherwise joins or starts
// a fetch. A failed fetch leaves the previous value in place and reports the
// error to every caller of that attempt.
func (p *TTLCache[T]) Get(ctx context.Context, fetch func(context.Context) (T, error)) (T, error) {
	p.mxState.Lock()
	if p.hasValue && p.now().Before(p.expiresAt) {
		value := p.value
		p.mxState.Unlock()
		return value, nil
	}
	generation := p.generation
	p.mxState.Unlock()

	ch := p.group.DoChan(strconv.FormatUint(generation, 10), func() (interface{}, error) {
		// a fetch of this generation may have finished since the check above
		p.mxState.Lock()
		if p.generation == generation && p.hasValue && p.now().Before(p.expiresAt) {
			value := p.value
			p.mxState.Unlock()
			return value, nil
		}
		p.mxState.Unlock()

		value, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		p.mxState.Lock()
		if p.generation == generation {
			p.value = value
			p.hasValue = true
			p.expiresAt = p.now().Add(p.ttl)
		}
		p.mxState.Unlock()
		return value, nil
	})

	var zero T
	select {
	case result := <-ch:
		if result.Err != nil {
			return zero, result.Err
		}
		return result.Val.(T), nil
	case <-ctx.Done():
		return zero, errors.Wrap(ctx.Err(), 0)
	}
}

// Peek returns the cached value regardless of expiry.
func (p *TTLCache[T]) Peek() (T, bool) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	return p.value, p.hasValue
}

// Invalidate drops the value. A fetch already running completes for its
// waiters but is not stored, and the next Get starts a new one.
func (p *TTLCache[T]) Invalidate() {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	p.group.Forget(strconv.FormatUint(p.generation, 10))
	p.generation++
	var zero T
	p.value = zero
	p.hasValue = false
	p.expiresAt = time.Time{}
}
