package accounts

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

type Buffer []byte

type BufferAndSlot struct {
	Buffer Buffer
	Slot   uint64
}

type DataAndSlot[T any] struct {
	Data   T
	Slot   uint64
	Pubkey solana.PublicKey
}

// Fetcher returns raw account data for addresses in request order. A nil
// entry means the account does not exist.
type Fetcher interface {
	GetMultipleAccounts(ctx context.Context, addresses []solana.PublicKey) ([]*BufferAndSlot, error)
}

type FetcherFunc func(ctx context.Context, addresses []solana.PublicKey) ([]*BufferAndSlot, error)

func (f FetcherFunc) GetMultipleAccounts(ctx context.Context, addresses []solana.PublicKey) ([]*BufferAndSlot, error) {
	return f(ctx, addresses)
}

// Decoder turns the raw data of the account at address into T.
type Decoder[T any] func(address solana.PublicKey, data []byte) (*T, error)
