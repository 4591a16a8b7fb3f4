package accounts

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"go.uber.org/zap"

	glamlog "glamgo/logger"
)

type CacheConfig struct {
	Name    string
	Logger  *zap.Logger
	Metrics *Metrics
}

// fetchCall is one upstream batch. Every caller that needs one of its
// addresses waits on done and reads the outcome from results/err.
type fetchCall[T any] struct {
	done      chan struct{}
	results   map[string]*DataAndSlot[*T]
	err       error
	// discarded addresses were invalidated or superseded while the batch
	// was running
	discarded map[string]bool
}

// Cache holds decoded accounts of one kind keyed by their canonical address
// string. Concurrent requests for an address that is already being fetched
// wait for that fetch instead of issuing another.
type Cache[T any] struct {
	name    string
	fetcher Fetcher
	decode  Decoder[T]
	logger  *zap.Logger
	metrics *Metrics

	mxState  *sync.Mutex
	entries  map[string]*DataAndSlot[*T]
	inflight map[string]*fetchCall[T]
}

func NewCache[T any](fetcher Fetcher, decode Decoder[T], config CacheConfig) *Cache[T] {
	return &Cache[T]{
		name:     config.Name,
		fetcher:  fetcher,
		decode:   decode,
		logger:   glamlog.Named(config.Logger, "accounts").With(zap.String("cache", config.Name)),
		metrics:  config.Metrics,
		mxState:  new(sync.Mutex),
		entries:  make(map[string]*DataAndSlot[*T]),
		inflight: make(map[string]*fetchCall[T]),
	}
}

func (p *Cache[T]) Name() string {
	return p.name
}

// FetchAndParse returns the accounts at addresses in request order. Cached
// entries are served directly, addresses already being fetched are awaited
// and the rest are fetched in one batch. forceRefresh fetches every address,
// and an older batch still running for one of them no longer writes it to
// the cache. Addresses without an account are dropped from the result, and
// a repeated address yields one entity at its first position.
func (p *Cache[T]) FetchAndParse(
	ctx context.Context,
	addresses []solana.PublicKey,
	forceRefresh bool,
) ([]*T, error) {
	resolved := make(map[string]*DataAndSlot[*T], len(addresses))
	var waits []*fetchCall[T]
	var missing []solana.PublicKey
	seen := make(map[string]bool, len(addresses))
	hits := 0

	p.mxState.Lock()
	for _, address := range addresses {
		key := address.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if !forceRefresh {
			if entry, exists := p.entries[key]; exists {
				resolved[key] = entry
				hits++
				continue
			}
			if call, exists := p.inflight[key]; exists {
				waits = appendCall(waits, call)
				continue
			}
		}
		missing = append(missing, address)
	}
	var call *fetchCall[T]
	if len(missing) > 0 {
		call = &fetchCall[T]{
			done:      make(chan struct{}),
			results:   make(map[string]*DataAndSlot[*T], len(missing)),
			discarded: make(map[string]bool),
		}
		for _, address := range missing {
			key := address.String()
			// a forced batch supersedes the one running for key
			if old, exists := p.inflight[key]; exists {
				old.discarded[key] = true
			}
			p.inflight[key] = call
		}
		waits = appendCall(waits, call)
	}
	p.mxState.Unlock()

	p.metrics.observe(p.name, hits, len(seen)-hits, len(missing))
	if call != nil {
		// the batch outlives callers that give up waiting for it
		go p.run(context.WithoutCancel(ctx), call, missing)
	}

	for _, wait := range waits {
		select {
		case <-wait.done:
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), 0)
		}
		if wait.err != nil {
			return nil, wait.err
		}
		for key, entry := range wait.results {
			if seen[key] {
				if _, exists := resolved[key]; !exists || forceRefresh {
					resolved[key] = entry
				}
			}
		}
	}

	results := make([]*T, 0, len(seen))
	emitted := make(map[string]bool, len(seen))
	for _, address := range addresses {
		key := address.String()
		if emitted[key] {
			continue
		}
		emitted[key] = true
		entry, exists := resolved[key]
		if !exists {
			p.logger.Debug("account not found", zap.String("address", key))
			continue
		}
		results = append(results, entry.Data)
	}
	return results, nil
}

func (p *Cache[T]) run(ctx context.Context, call *fetchCall[T], addresses []solana.PublicKey) {
	decoded, err := p.load(ctx, addresses)

	p.mxState.Lock()
	for _, address := range addresses {
		key := address.String()
		if p.inflight[key] == call {
			delete(p.inflight, key)
		}
	}
	if err == nil {
		for key, entry := range decoded {
			if !call.discarded[key] {
				p.entries[key] = entry
			}
		}
	}
	call.results = decoded
	call.err = err
	p.mxState.Unlock()

	close(call.done)
}

// load fetches and decodes one batch. Any decode failure fails the batch so
// nothing from it reaches the cache.
func (p *Cache[T]) load(ctx context.Context, addresses []solana.PublicKey) (map[string]*DataAndSlot[*T], error) {
	buffers, err := p.fetcher.GetMultipleAccounts(ctx, addresses)
	if err != nil {
		return nil, errors.WrapPrefix(err, "fetch "+p.name, 0)
	}
	if len(buffers) != len(addresses) {
		return nil, errors.Errorf("fetch %s: %d results for %d addresses", p.name, len(buffers), len(addresses))
	}
	decoded := make(map[string]*DataAndSlot[*T], len(addresses))
	for idx, address := range addresses {
		buffer := buffers[idx]
		if buffer == nil {
			continue
		}
		data, err := p.decode(address, buffer.Buffer)
		if err != nil {
			return nil, errors.WrapPrefix(err, "decode "+p.name+" "+address.String(), 0)
		}
		decoded[address.String()] = &DataAndSlot[*T]{
			Data:   data,
			Slot:   buffer.Slot,
			Pubkey: address,
		}
	}
	return decoded, nil
}

// Get returns the cached account without fetching.
func (p *Cache[T]) Get(address solana.PublicKey) (*T, bool) {
	entry := p.GetDataAndSlot(address)
	if entry == nil {
		return nil, false
	}
	return entry.Data, true
}

func (p *Cache[T]) GetDataAndSlot(address solana.PublicKey) *DataAndSlot[*T] {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	return p.entries[address.String()]
}

// Invalidate evicts addresses. A fetch already running for them still
// answers its waiters but no longer repopulates the cache.
func (p *Cache[T]) Invalidate(addresses ...solana.PublicKey) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	for _, address := range addresses {
		key := address.String()
		delete(p.entries, key)
		if call, exists := p.inflight[key]; exists {
			call.discarded[key] = true
			delete(p.inflight, key)
		}
	}
}

func (p *Cache[T]) Clear() {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	for key, call := range p.inflight {
		call.discarded[key] = true
	}
	p.entries = make(map[string]*DataAndSlot[*T])
	p.inflight = make(map[string]*fetchCall[T])
}

func (p *Cache[T]) Len() int {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	return len(p.entries)
}

func appendCall[T any](calls []*fetchCall[T], call *fetchCall[T]) []*fetchCall[T] {
	for _, existing := range calls {
		if existing == call {
			return calls
		}
	}
	return append(calls, call)
}
