package blockhash

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
	"go.uber.org/zap"

	glamlog "glamgo/logger"
	"glamgo/utils"
)

const DefaultTTL = 2 * time.Second

// Source is satisfied by *rpc.Client.
type Source interface {
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
}

type ProviderConfig struct {
	Source     Source
	Commitment *rpc.CommitmentType
	TTL        *time.Duration
	Logger     *zap.Logger
	Now        func() time.Time
}

// Provider serves the latest blockhash for transaction building, refreshed at
// most once per TTL however many builders ask.
type Provider struct {
	source     Source
	commitment rpc.CommitmentType
	cache      *TTLCache[*rpc.GetLatestBlockhashResult]
	logger     *zap.Logger
}

func NewProvider(config ProviderConfig) *Provider {
	return &Provider{
		source:     config.Source,
		commitment: utils.TTM[rpc.CommitmentType](config.Commitment == nil, rpc.CommitmentConfirmed, func() rpc.CommitmentType { return *config.Commitment }),
		cache: NewTTLCache[*rpc.GetLatestBlockhashResult](
			utils.TTM[time.Duration](config.TTL == nil, DefaultTTL, func() time.Duration { return *config.TTL }),
			config.Now,
		),
		logger: glamlog.Named(config.Logger, "blockhash"),
	}
}

func (p *Provider) fetch(ctx context.Context) (*rpc.GetLatestBlockhashResult, error) {
	result, err := p.source.GetLatestBlockhash(ctx, p.commitment)
	if err != nil {
		p.logger.Warn("latest blockhash fetch failed", zap.Error(err))
		return nil, errors.WrapPrefix(err, "get latest blockhash", 0)
	}
	if result == nil || result.Value == nil {
		return nil, errors.Errorf("get latest blockhash: empty result")
	}
	p.logger.Debug("latest blockhash",
		zap.Stringer("blockhash", result.Value.Blockhash),
		zap.Uint64("slot", result.Context.Slot),
		zap.Uint64("lastValidBlockHeight", result.Value.LastValidBlockHeight),
	)
	return result, nil
}

func (p *Provider) GetLatestBlockhash(ctx context.Context) (*rpc.LatestBlockhashResult, error) {
	result, err := p.cache.Get(ctx, p.fetch)
	if err != nil {
		return nil, err
	}
	return result.Value, nil
}

func (p *Provider) GetBlockhash(ctx context.Context) (solana.Hash, error) {
	latest, err := p.GetLatestBlockhash(ctx)
	if err != nil {
		return solana.Hash{}, err
	}
	return latest.Blockhash, nil
}

// GetSlot is the context slot of the last fetched blockhash, 0 before the
// first fetch.
func (p *Provider) GetSlot() uint64 {
	result, ok := p.cache.Peek()
	if !ok || result == nil {
		return 0
	}
	return result.Context.Slot
}

// Invalidate forces the next call to fetch, e.g. after a transaction failed
// with an expired blockhash.
func (p *Provider) Invalidate() {
	p.cache.Invalidate()
}
