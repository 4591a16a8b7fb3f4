package accounts

import (
	"context"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// MemoryFetcher serves account data from memory. It backs offline sessions
// and tests.
type MemoryFetcher struct {
	mxState  *sync.RWMutex
	accounts map[string]*BufferAndSlot
	requests [][]solana.PublicKey
}

func NewMemoryFetcher() *MemoryFetcher {
	return &MemoryFetcher{
		mxState:  new(sync.RWMutex),
		accounts: make(map[string]*BufferAndSlot),
	}
}

func (p *MemoryFetcher) Set(address solana.PublicKey, data []byte, slot uint64) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	p.accounts[address.String()] = &BufferAndSlot{Buffer: data, Slot: slot}
}

func (p *MemoryFetcher) Delete(address solana.PublicKey) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	delete(p.accounts, address.String())
}

func (p *MemoryFetcher) GetMultipleAccounts(_ context.Context, addresses []solana.PublicKey) ([]*BufferAndSlot, error) {
	defer p.mxState.Unlock()
	p.mxState.Lock()
	p.requests = append(p.requests, append([]solana.PublicKey(nil), addresses...))
	results := make([]*BufferAndSlot, len(addresses))
	for idx, address := range addresses {
		results[idx] = p.accounts[address.String()]
	}
	return results, nil
}

// Requests returns every address batch requested so far.
func (p *MemoryFetcher) Requests() [][]solana.PublicKey {
	defer p.mxState.RUnlock()
	p.mxState.RLock()
	return append([][]solana.PublicKey(nil), p.requests...)
}
