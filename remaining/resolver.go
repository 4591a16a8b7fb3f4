package remaining

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"go.uber.org/zap"

	"glamgo/accounts"
	"glamgo/drift"
	"glamgo/kamino"
	"glamgo/kvault"
	glamlog "glamgo/logger"
	"glamgo/utils"
)

// Caches are the per-protocol caches a Resolver reads through. A nil cache
// disables the protocol.
type Caches struct {
	Obligations *accounts.Cache[kamino.Obligation]
	Reserves    *accounts.Cache[kamino.Reserve]
	Vaults      *accounts.Cache[kvault.VaultState]
	DriftUsers  *accounts.Cache[drift.User]
	SpotMarkets *accounts.Cache[drift.SpotMarket]
	PerpMarkets *accounts.Cache[drift.PerpMarket]
}

type Resolver struct {
	caches         Caches
	driftProgramId solana.PublicKey
	logger         *zap.Logger
}

func NewResolver(caches Caches, driftProgramId solana.PublicKey, logger *zap.Logger) *Resolver {
	return &Resolver{
		caches:         caches,
		driftProgramId: driftProgramId,
		logger:         glamlog.Named(logger, "remaining"),
	}
}

// fetchOwner force-fetches the account a position lives in. Resolution never
// continues without it.
func fetchOwner[T any](ctx context.Context, cache *accounts.Cache[T], name string, address solana.PublicKey) (*T, error) {
	if cache == nil {
		return nil, errors.Errorf("%w: %s", ErrNoCache, name)
	}
	found, err := cache.FetchAndParse(ctx, []solana.PublicKey{address}, true)
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, errors.Errorf("%w: %s %s", ErrAccountNotFound, name, address)
	}
	return found[0], nil
}

// fetchAll resolves every address or fails with ErrMissingAccount.
func fetchAll[T any](
	ctx context.Context,
	cache *accounts.Cache[T],
	name string,
	addresses []solana.PublicKey,
	forceRefresh bool,
	addressOf func(*T) solana.PublicKey,
) ([]*T, error) {
	if len(addresses) == 0 {
		return nil, nil
	}
	if cache == nil {
		return nil, errors.Errorf("%w: %s", ErrNoCache, name)
	}
	found, err := cache.FetchAndParse(ctx, addresses, forceRefresh)
	if err != nil {
		return nil, err
	}
	if len(found) == len(addresses) {
		return found, nil
	}
	present := make(map[string]bool, len(found))
	for _, entity := range found {
		present[addressOf(entity).String()] = true
	}
	for _, address := range addresses {
		if !present[address.String()] {
			return nil, errors.Errorf("%w: %s %s", ErrMissingAccount, name, address)
		}
	}
	return found, nil
}

func reserveAddress(reserve *kamino.Reserve) solana.PublicKey {
	return reserve.Address
}

func reserveEntries(reserves []*kamino.Reserve, writable map[string]bool) []Entry {
	entries := make([]Entry, 0, len(reserves))
	for _, reserve := range reserves {
		entries = append(entries, Entry{
			Oracle:   reserve.PriceFeed(),
			Market:   reserve.LendingMarket(),
			Reserve:  reserve.Address,
			Kind:     KindReserve,
			Writable: writable[reserve.Address.String()],
		})
	}
	return entries
}

// ObligationRequest describes the instruction an obligation's accounts are
// resolved for. Target, when set, is the reserve the instruction acts on.
type ObligationRequest struct {
	Obligation   solana.PublicKey
	Target       solana.PublicKey
	Shape        Shape
	ForceRefresh bool
}

// ForObligation resolves the reserves an obligation touches: deposits in slot
// order, then borrows, then the target when the obligation does not hold it.
func (p *Resolver) ForObligation(ctx context.Context, request ObligationRequest) (solana.AccountMetaSlice, error) {
	obligation, err := fetchOwner(ctx, p.caches.Obligations, "obligation", request.Obligation)
	if err != nil {
		return nil, err
	}
	addresses := obligation.ReserveAddresses()
	if !request.Target.IsZero() && !containsKey(addresses, request.Target) {
		addresses = append(addresses, request.Target)
	}
	p.logger.Debug("resolving obligation",
		zap.String("obligation", request.Obligation.String()),
		zap.Int("reserves", len(addresses)),
		zap.Stringer("shape", request.Shape),
	)
	return p.emitReserves(ctx, addresses, request.Target, request.Shape, request.ForceRefresh)
}

// ForReserves emits reserves given directly, as for a first deposit before
// the obligation exists.
func (p *Resolver) ForReserves(
	ctx context.Context,
	reserves []solana.PublicKey,
	target solana.PublicKey,
	shape Shape,
	forceRefresh bool,
) (solana.AccountMetaSlice, error) {
	return p.emitReserves(ctx, uniqueKeys(reserves), target, shape, forceRefresh)
}

// ForVault resolves the reserves of a Kamino vault's valid allocations.
func (p *Resolver) ForVault(
	ctx context.Context,
	vault solana.PublicKey,
	shape Shape,
	forceRefresh bool,
) (solana.AccountMetaSlice, error) {
	state, err := fetchOwner(ctx, p.caches.Vaults, "vault", vault)
	if err != nil {
		return nil, err
	}
	return p.emitReserves(ctx, uniqueKeys(state.Reserves()), solana.PublicKey{}, shape, forceRefresh)
}

func (p *Resolver) emitReserves(
	ctx context.Context,
	addresses []solana.PublicKey,
	target solana.PublicKey,
	shape Shape,
	forceRefresh bool,
) (solana.AccountMetaSlice, error) {
	reserves, err := fetchAll(ctx, p.caches.Reserves, "reserve", addresses, forceRefresh, reserveAddress)
	if err != nil {
		return nil, err
	}
	writable := map[string]bool{}
	if !target.IsZero() {
		writable[target.String()] = true
	}
	return Emit(reserveEntries(reserves, writable), shape)
}

func containsKey(keys []solana.PublicKey, key solana.PublicKey) bool {
	for _, k := range keys {
		if k.Equals(key) {
			return true
		}
	}
	return false
}

// uniqueKeys drops sentinel and repeated keys, keeping first occurrences.
func uniqueKeys(keys []solana.PublicKey) []solana.PublicKey {
	return utils.UniqueFunc(
		utils.ValuesFunc(keys, func(key solana.PublicKey) solana.PublicKey { return key }, func(key solana.PublicKey) bool { return !key.IsZero() }),
		solana.PublicKey.String,
	)
}
