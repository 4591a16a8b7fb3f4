package remaining

import (
	stderrors "errors"

	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"

	"glamgo/layout"
)

var (
	ErrAccountNotFound  = stderrors.New("position account not found")
	ErrMissingAccount   = stderrors.New("referenced account missing")
	ErrPairingMismatch  = stderrors.New("market and reserve lists differ in length")
	ErrUnsupportedShape = stderrors.New("shape not supported for these entries")
	ErrNoCache          = stderrors.New("no cache configured for protocol")
)

type Kind uint8

const (
	KindReserve Kind = iota
	KindSpotMarket
	KindPerpMarket
)

func (k Kind) String() string {
	switch k {
	case KindReserve:
		return "reserve"
	case KindSpotMarket:
		return "spot_market"
	case KindPerpMarket:
		return "perp_market"
	default:
		return "unknown"
	}
}

// Entry is one market a position references. For Kamino reserves Market is
// the lending market and Reserve the reserve account; Drift markets only set
// Market.
type Entry struct {
	Oracle         solana.PublicKey
	Market         solana.PublicKey
	Reserve        solana.PublicKey
	Kind           Kind
	Writable       bool
	OracleWritable bool
}

// positionAccount is the per-position account of the oracles-then-markets
// shape: the reserve for Kamino, the market itself for Drift.
func (e Entry) positionAccount() solana.PublicKey {
	if e.Kind == KindReserve {
		return e.Reserve
	}
	return e.Market
}

type Shape uint8

const (
	// ShapeOraclesThenMarkets lists every oracle, then reserves or spot
	// markets, then perp markets.
	ShapeOraclesThenMarkets Shape = iota
	// ShapeMarketReservePairs lists (lending market, reserve) pairs, adjacent.
	ShapeMarketReservePairs
	// ShapeReservesThenMarkets lists reserves writable, then their lending
	// markets.
	ShapeReservesThenMarkets
)

func (s Shape) String() string {
	switch s {
	case ShapeOraclesThenMarkets:
		return "oracles_then_markets"
	case ShapeMarketReservePairs:
		return "market_reserve_pairs"
	case ShapeReservesThenMarkets:
		return "reserves_then_markets"
	default:
		return "unknown"
	}
}

// Emit lays entries out in shape. Output order depends only on entry order.
func Emit(entries []Entry, shape Shape) (solana.AccountMetaSlice, error) {
	switch shape {
	case ShapeOraclesThenMarkets:
		return emitOraclesThenMarkets(entries), nil
	case ShapeMarketReservePairs:
		return emitPairs(entries)
	case ShapeReservesThenMarkets:
		return emitReservesThenMarkets(entries)
	default:
		return nil, errors.Errorf("%w: %d", ErrUnsupportedShape, shape)
	}
}

func emitOraclesThenMarkets(entries []Entry) solana.AccountMetaSlice {
	set := NewMetaSet()
	for _, entry := range entries {
		if !layout.IsSentinel(entry.Oracle) {
			set.Add(entry.Oracle, entry.OracleWritable)
		}
	}
	for _, kind := range []Kind{KindReserve, KindSpotMarket, KindPerpMarket} {
		for _, entry := range entries {
			if entry.Kind == kind {
				set.Add(entry.positionAccount(), entry.Writable && entry.Kind != KindReserve)
			}
		}
	}
	return set.Metas()
}

func emitPairs(entries []Entry) (solana.AccountMetaSlice, error) {
	var markets, reserves []solana.PublicKey
	for _, entry := range entries {
		if entry.Kind != KindReserve {
			return nil, errors.Errorf("%w: %s in %s", ErrUnsupportedShape, entry.Kind, ShapeMarketReservePairs)
		}
		if !layout.IsSentinel(entry.Market) {
			markets = append(markets, entry.Market)
		}
		if !layout.IsSentinel(entry.Reserve) {
			reserves = append(reserves, entry.Reserve)
		}
	}
	if len(markets) != len(reserves) {
		return nil, errors.Errorf("%w: %d markets, %d reserves", ErrPairingMismatch, len(markets), len(reserves))
	}
	metas := make(solana.AccountMetaSlice, 0, 2*len(markets))
	for idx := range markets {
		metas = append(metas,
			solana.NewAccountMeta(markets[idx], false, false),
			solana.NewAccountMeta(reserves[idx], false, false),
		)
	}
	return metas, nil
}

func emitReservesThenMarkets(entries []Entry) (solana.AccountMetaSlice, error) {
	set := NewMetaSet()
	for _, entry := range entries {
		if entry.Kind != KindReserve {
			return nil, errors.Errorf("%w: %s in %s", ErrUnsupportedShape, entry.Kind, ShapeReservesThenMarkets)
		}
		set.Add(entry.Reserve, true)
	}
	for _, entry := range entries {
		set.Add(entry.Market, false)
	}
	return set.Metas(), nil
}
