package remaining

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamgo/accounts"
	"glamgo/addresses"
	"glamgo/drift"
	"glamgo/fixtures"
	"glamgo/kamino"
	"glamgo/kvault"
)

var driftProgramId = solana.MustPublicKeyFromBase58("dRiftyHA39MWEi3m9aunc5MzRF1JYuBsbn6VPcn33UH")

type testEnv struct {
	fetcher  *accounts.MemoryFetcher
	caches   Caches
	resolver *Resolver
}

func newTestEnv() *testEnv {
	fetcher := accounts.NewMemoryFetcher()
	caches := Caches{
		Obligations: accounts.NewCache(fetcher, kamino.DecodeObligation, accounts.CacheConfig{Name: "obligations"}),
		Reserves:    accounts.NewCache(fetcher, kamino.DecodeReserve, accounts.CacheConfig{Name: "reserves"}),
		Vaults:      accounts.NewCache(fetcher, kvault.DecodeVaultState, accounts.CacheConfig{Name: "vaults"}),
		DriftUsers:  accounts.NewCache(fetcher, drift.DecodeUser, accounts.CacheConfig{Name: "drift_users"}),
		SpotMarkets: accounts.NewCache(fetcher, drift.DecodeSpotMarket, accounts.CacheConfig{Name: "spot_markets"}),
		PerpMarkets: accounts.NewCache(fetcher, drift.DecodePerpMarket, accounts.CacheConfig{Name: "perp_markets"}),
	}
	return &testEnv{
		fetcher:  fetcher,
		caches:   caches,
		resolver: NewResolver(caches, driftProgramId, nil),
	}
}

func keys(metas solana.AccountMetaSlice) []solana.PublicKey {
	return metas.GetKeys()
}

// kaminoSetup stores reserves A, B and C in one lending market and an
// obligation in that market depositing into A and B and borrowing from C.
func (e *testEnv) kaminoSetup() (obligation solana.PublicKey) {
	for _, label := range []string{"A", "B", "C"} {
		e.fetcher.Set(fixtures.Key("reserve"+label), fixtures.Reserve{
			Market:    fixtures.Key("main-market"),
			ScopeFeed: fixtures.Key("oracle" + label),
		}.Bytes(), 1)
	}
	obligation = fixtures.Key("obligation")
	e.fetcher.Set(obligation, fixtures.Obligation{
		Market: fixtures.Key("main-market"),
		Owner:  fixtures.Key("owner"),
		Deposits: []fixtures.ObligationDeposit{
			{Slot: 0, Reserve: fixtures.Key("reserveA"), Amount: 1},
			{Slot: 2, Reserve: fixtures.Key("reserveB"), Amount: 1},
		},
		Borrows: []fixtures.ObligationBorrow{
			{Slot: 1, Reserve: fixtures.Key("reserveC"), Amount: 1},
		},
	}.Bytes(), 1)
	return obligation
}

func TestForObligationOraclesThenMarkets(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()

	metas, err := env.resolver.ForObligation(context.Background(), ObligationRequest{
		Obligation: obligation,
		Target:     fixtures.Key("reserveA"),
		Shape:      ShapeOraclesThenMarkets,
	})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("oracleA"),
		fixtures.Key("oracleB"),
		fixtures.Key("oracleC"),
		fixtures.Key("reserveA"),
		fixtures.Key("reserveB"),
		fixtures.Key("reserveC"),
	}, keys(metas))
	for _, meta := range metas {
		assert.False(t, meta.IsSigner)
		assert.False(t, meta.IsWritable)
	}
}

func TestForObligationPricingPairs(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()

	metas, err := env.resolver.ForObligation(context.Background(), ObligationRequest{
		Obligation: obligation,
		Target:     fixtures.Key("reserveA"),
		Shape:      ShapeMarketReservePairs,
	})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("main-market"), fixtures.Key("reserveA"),
		fixtures.Key("main-market"), fixtures.Key("reserveB"),
		fixtures.Key("main-market"), fixtures.Key("reserveC"),
	}, keys(metas))
}

func TestForObligationIsDeterministic(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()
	ctx := context.Background()

	// warm the cache in a different order than the obligation lists reserves
	_, err := env.caches.Reserves.FetchAndParse(ctx, []solana.PublicKey{fixtures.Key("reserveC"), fixtures.Key("reserveA")}, false)
	require.NoError(t, err)

	request := ObligationRequest{Obligation: obligation, Shape: ShapeOraclesThenMarkets}
	first, err := env.resolver.ForObligation(ctx, request)
	require.NoError(t, err)
	second, err := env.resolver.ForObligation(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, keys(first), keys(second))
	assert.Len(t, first, 6)
}

func TestForObligationAppendsTarget(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()
	env.fetcher.Set(fixtures.Key("reserveD"), fixtures.Reserve{
		Market:   fixtures.Key("main-market"),
		PythFeed: fixtures.Key("oracleD"),
	}.Bytes(), 1)

	metas, err := env.resolver.ForObligation(context.Background(), ObligationRequest{
		Obligation: obligation,
		Target:     fixtures.Key("reserveD"),
		Shape:      ShapeReservesThenMarkets,
	})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("reserveA"),
		fixtures.Key("reserveB"),
		fixtures.Key("reserveC"),
		fixtures.Key("reserveD"),
		fixtures.Key("main-market"),
	}, keys(metas))
	assert.True(t, metas[3].IsWritable)
	assert.False(t, metas[4].IsWritable)
}

func TestForObligationListsEveryReserveOfOneMarket(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()

	metas, err := env.resolver.ForObligation(context.Background(), ObligationRequest{
		Obligation: obligation,
		Shape:      ShapeOraclesThenMarkets,
	})
	require.NoError(t, err)
	require.Len(t, metas, 6)
	set := NewMetaSet()
	for _, meta := range metas {
		set.Add(meta.PublicKey, meta.IsWritable)
	}
	for _, label := range []string{"A", "B", "C"} {
		assert.True(t, set.Has(fixtures.Key("reserve"+label)), label)
		assert.True(t, set.Has(fixtures.Key("oracle"+label)), label)
	}
	assert.False(t, set.Has(fixtures.Key("main-market")))
}

func TestForObligationNotFound(t *testing.T) {
	env := newTestEnv()
	env.kaminoSetup()

	metas, err := env.resolver.ForObligation(context.Background(), ObligationRequest{
		Obligation: fixtures.Key("missing-obligation"),
		Shape:      ShapeOraclesThenMarkets,
	})
	assert.True(t, errors.Is(err, ErrAccountNotFound))
	assert.Nil(t, metas)
}

func TestForObligationMissingReserve(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()
	env.fetcher.Delete(fixtures.Key("reserveB"))

	metas, err := env.resolver.ForObligation(context.Background(), ObligationRequest{
		Obligation: obligation,
		Shape:      ShapeMarketReservePairs,
	})
	assert.True(t, errors.Is(err, ErrMissingAccount))
	assert.Nil(t, metas)
}

func TestForObligationRefetchesOwner(t *testing.T) {
	env := newTestEnv()
	obligation := env.kaminoSetup()
	ctx := context.Background()
	request := ObligationRequest{Obligation: obligation, Shape: ShapeOraclesThenMarkets}

	_, err := env.resolver.ForObligation(ctx, request)
	require.NoError(t, err)
	env.fetcher.Delete(obligation)
	_, err = env.resolver.ForObligation(ctx, request)
	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

func TestPairingMismatch(t *testing.T) {
	entries := []Entry{
		{Market: fixtures.Key("marketA"), Reserve: fixtures.Key("reserveA"), Kind: KindReserve},
		{Reserve: fixtures.Key("reserveB"), Kind: KindReserve},
	}
	_, err := Emit(entries, ShapeMarketReservePairs)
	assert.True(t, errors.Is(err, ErrPairingMismatch))

	_, err = Emit([]Entry{{Market: fixtures.Key("spot"), Kind: KindSpotMarket}}, ShapeMarketReservePairs)
	assert.True(t, errors.Is(err, ErrUnsupportedShape))
}

func TestForReservesSharedMarket(t *testing.T) {
	env := newTestEnv()
	for _, label := range []string{"A", "B"} {
		env.fetcher.Set(fixtures.Key("reserve"+label), fixtures.Reserve{
			Market:    fixtures.Key("main-market"),
			ScopeFeed: fixtures.Key("oracle" + label),
		}.Bytes(), 1)
	}
	reserves := []solana.PublicKey{fixtures.Key("reserveB"), fixtures.Key("reserveA"), fixtures.Key("reserveB")}

	metas, err := env.resolver.ForReserves(context.Background(), reserves, fixtures.Key("reserveA"), ShapeOraclesThenMarkets, false)
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("oracleB"),
		fixtures.Key("oracleA"),
		fixtures.Key("reserveB"),
		fixtures.Key("reserveA"),
	}, keys(metas))

	metas, err = env.resolver.ForReserves(context.Background(), reserves, solana.PublicKey{}, ShapeMarketReservePairs, false)
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("main-market"), fixtures.Key("reserveB"),
		fixtures.Key("main-market"), fixtures.Key("reserveA"),
	}, keys(metas))
}

func TestForVault(t *testing.T) {
	env := newTestEnv()
	for _, label := range []string{"A", "B", "C"} {
		env.fetcher.Set(fixtures.Key("reserve"+label), fixtures.Reserve{
			Market:    fixtures.Key("market" + label),
			ScopeFeed: fixtures.Key("oracle" + label),
		}.Bytes(), 1)
	}
	vault := fixtures.Key("vault")
	env.fetcher.Set(vault, fixtures.Vault{
		Allocations: []fixtures.VaultAllocation{
			{Slot: 1, Reserve: fixtures.Key("reserveA")},
			{Slot: 4, Reserve: fixtures.Key("reserveC")},
			{Slot: 24, Reserve: fixtures.Key("reserveB")},
		},
	}.Bytes(), 1)

	metas, err := env.resolver.ForVault(context.Background(), vault, ShapeReservesThenMarkets, false)
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("reserveA"),
		fixtures.Key("reserveC"),
		fixtures.Key("reserveB"),
		fixtures.Key("marketA"),
		fixtures.Key("marketC"),
		fixtures.Key("marketB"),
	}, keys(metas))
	for idx, meta := range metas {
		assert.Equal(t, idx < 3, meta.IsWritable)
	}

	_, err = env.resolver.ForVault(context.Background(), fixtures.Key("no-vault"), ShapeReservesThenMarkets, false)
	assert.True(t, errors.Is(err, ErrAccountNotFound))
}

// driftSetup stores spot markets 0, 1 and 2 and perp markets 0 and 3; perp
// 3 settles in spot market 2.
func (e *testEnv) driftSetup() {
	for _, index := range []uint16{0, 1, 2} {
		address := addresses.GetSpotMarketPublicKey(driftProgramId, index)
		e.fetcher.Set(address, fixtures.SpotMarket{
			Pubkey:      address,
			Oracle:      fixtures.Key("spot-oracle-" + string(rune('0'+index))),
			MarketIndex: index,
		}.Bytes(), 1)
	}
	for _, market := range []struct{ index, quote uint16 }{{0, 0}, {3, 2}} {
		address := addresses.GetPerpMarketPublicKey(driftProgramId, market.index)
		e.fetcher.Set(address, fixtures.PerpMarket{
			Pubkey:          address,
			Oracle:          fixtures.Key("perp-oracle-" + string(rune('0'+market.index))),
			MarketIndex:     market.index,
			QuoteSpotMarket: market.quote,
		}.Bytes(), 1)
	}
}

func spotMarket(index uint16) solana.PublicKey {
	return addresses.GetSpotMarketPublicKey(driftProgramId, index)
}

func perpMarket(index uint16) solana.PublicKey {
	return addresses.GetPerpMarketPublicKey(driftProgramId, index)
}

func TestForDriftUser(t *testing.T) {
	env := newTestEnv()
	env.driftSetup()
	user := fixtures.Key("drift-user")
	env.fetcher.Set(user, fixtures.DriftUser{
		Authority: fixtures.Key("authority"),
		SpotPositions: []fixtures.SpotPosition{
			{Slot: 0, MarketIndex: 1, ScaledBalance: 100},
			{Slot: 1, MarketIndex: 2},
		},
		PerpPositions: []fixtures.PerpPosition{
			{Slot: 0, MarketIndex: 3, BaseAssetAmount: 5},
		},
	}.Bytes(), 1)

	metas, err := env.resolver.ForDriftUser(context.Background(), DriftUserRequest{
		User:                   user,
		WritableSpotMarkets:    []uint16{1},
		IncludeQuoteSpotMarket: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("spot-oracle-0"),
		fixtures.Key("spot-oracle-1"),
		fixtures.Key("spot-oracle-2"),
		fixtures.Key("perp-oracle-3"),
		spotMarket(0),
		spotMarket(1),
		spotMarket(2),
		perpMarket(3),
	}, keys(metas))
	assert.False(t, metas[4].IsWritable)
	assert.True(t, metas[5].IsWritable)
	assert.False(t, metas[6].IsWritable)
}

func TestForDriftUserWithoutQuote(t *testing.T) {
	env := newTestEnv()
	env.driftSetup()
	user := fixtures.Key("drift-user")
	env.fetcher.Set(user, fixtures.DriftUser{
		SpotPositions: []fixtures.SpotPosition{{Slot: 3, MarketIndex: 1, ScaledBalance: 1}},
	}.Bytes(), 1)

	metas, err := env.resolver.ForDriftUser(context.Background(), DriftUserRequest{
		User:                user,
		ReadablePerpMarkets: []uint16{0},
	})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("spot-oracle-1"),
		fixtures.Key("spot-oracle-0"),
		fixtures.Key("perp-oracle-0"),
		spotMarket(1),
		spotMarket(0),
		perpMarket(0),
	}, keys(metas))
}

func TestForDriftUserOpenOrdersPullQuoteMarket(t *testing.T) {
	env := newTestEnv()
	env.driftSetup()
	user := fixtures.Key("drift-user")
	env.fetcher.Set(user, fixtures.DriftUser{
		SpotPositions: []fixtures.SpotPosition{
			{Slot: 0, MarketIndex: 1, OpenOrders: 1, OpenBids: 1000},
			{Slot: 1, MarketIndex: 2, OpenOrders: 1, OpenAsks: -500},
		},
	}.Bytes(), 1)

	metas, err := env.resolver.ForDriftUser(context.Background(), DriftUserRequest{User: user})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("spot-oracle-1"),
		fixtures.Key("spot-oracle-0"),
		fixtures.Key("spot-oracle-2"),
		spotMarket(1),
		spotMarket(0),
		spotMarket(2),
	}, keys(metas))
	for _, meta := range metas {
		assert.False(t, meta.IsWritable)
	}
}

func TestForDriftUserPrelaunchOracleWritable(t *testing.T) {
	env := newTestEnv()
	env.driftSetup()
	address := perpMarket(5)
	env.fetcher.Set(address, fixtures.PerpMarket{
		Pubkey:       address,
		Oracle:       fixtures.Key("prelaunch-oracle"),
		OracleSource: uint8(drift.OracleSourcePrelaunch),
		MarketIndex:  5,
	}.Bytes(), 1)
	user := fixtures.Key("drift-user")
	env.fetcher.Set(user, fixtures.DriftUser{}.Bytes(), 1)

	metas, err := env.resolver.ForDriftUser(context.Background(), DriftUserRequest{
		User:                user,
		WritablePerpMarkets: []uint16{5},
		ReadablePerpMarkets: []uint16{0},
	})
	require.NoError(t, err)
	assert.Equal(t, []solana.PublicKey{
		fixtures.Key("spot-oracle-0"),
		fixtures.Key("perp-oracle-0"),
		fixtures.Key("prelaunch-oracle"),
		spotMarket(0),
		perpMarket(0),
		perpMarket(5),
	}, keys(metas))
	assert.False(t, metas[1].IsWritable)
	assert.True(t, metas[2].IsWritable)
	assert.False(t, metas[4].IsWritable)
	assert.True(t, metas[5].IsWritable)

	metas, err = env.resolver.ForDriftUser(context.Background(), DriftUserRequest{
		User:                user,
		ReadablePerpMarkets: []uint16{5},
	})
	require.NoError(t, err)
	for _, meta := range metas {
		assert.False(t, meta.IsWritable)
	}
}

func TestForDriftUserErrors(t *testing.T) {
	env := newTestEnv()
	env.driftSetup()

	_, err := env.resolver.ForDriftUser(context.Background(), DriftUserRequest{User: fixtures.Key("nobody")})
	assert.True(t, errors.Is(err, ErrAccountNotFound))

	user := fixtures.Key("drift-user")
	env.fetcher.Set(user, fixtures.DriftUser{}.Bytes(), 1)
	_, err = env.resolver.ForDriftUser(context.Background(), DriftUserRequest{
		User:                user,
		ReadableSpotMarkets: []uint16{7},
	})
	assert.True(t, errors.Is(err, ErrMissingAccount))
}

func TestNoCacheConfigured(t *testing.T) {
	resolver := NewResolver(Caches{}, driftProgramId, nil)
	_, err := resolver.ForVault(context.Background(), fixtures.Key("vault"), ShapeReservesThenMarkets, false)
	assert.True(t, errors.Is(err, ErrNoCache))
}

func TestMetaSet(t *testing.T) {
	set := NewMetaSet()
	set.Add(fixtures.Key("a"), false)
	set.Add(fixtures.Key("b"), true)
	set.Add(fixtures.Key("a"), true)
	set.Add(fixtures.Key("b"), false)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(fixtures.Key("a")))
	assert.Equal(t, []solana.PublicKey{fixtures.Key("a"), fixtures.Key("b")}, set.Keys())
	metas := set.Metas()
	assert.True(t, metas[0].IsWritable)
	assert.True(t, metas[1].IsWritable)

	metas[0].IsWritable = false
	assert.True(t, set.Metas()[0].IsWritable)
}
