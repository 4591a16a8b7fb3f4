package remaining

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"go.uber.org/zap"

	"glamgo/addresses"
	"glamgo/drift"
	"glamgo/utils"
)

// DriftUserRequest selects the markets a Drift instruction needs beyond the
// user's open positions.
type DriftUserRequest struct {
	User                   solana.PublicKey
	ReadableSpotMarkets    []uint16
	WritableSpotMarkets    []uint16
	ReadablePerpMarkets    []uint16
	WritablePerpMarkets    []uint16
	// IncludeQuoteSpotMarket puts the quote market first; order placement
	// always needs it.
	IncludeQuoteSpotMarket bool
	ForceRefresh           bool
}

// marketIndexes keeps market indexes in first-seen order with OR-merged
// writable flags.
type marketIndexes struct {
	order    []uint16
	writable map[uint16]bool
}

func newMarketIndexes() *marketIndexes {
	return &marketIndexes{writable: make(map[uint16]bool)}
}

func (m *marketIndexes) add(index uint16, writable bool) {
	current, exists := m.writable[index]
	if !exists {
		m.order = append(m.order, index)
	}
	m.writable[index] = current || writable
}

// ForDriftUser resolves oracles, spot markets and perp markets for a Drift
// user: the quote market when requested, markets of open positions in slot
// order, the requested markets, and the quote market of each perp market or
// of any spot position with open orders.
func (p *Resolver) ForDriftUser(ctx context.Context, request DriftUserRequest) (solana.AccountMetaSlice, error) {
	user, err := fetchOwner(ctx, p.caches.DriftUsers, "drift user", request.User)
	if err != nil {
		return nil, err
	}

	spot := newMarketIndexes()
	perp := newMarketIndexes()
	if request.IncludeQuoteSpotMarket {
		spot.add(drift.QuoteSpotMarketIndex, false)
	}
	for _, position := range user.ActiveSpotPositions() {
		spot.add(position.MarketIndex, false)
		if position.OpenBids != 0 || position.OpenAsks != 0 {
			spot.add(drift.QuoteSpotMarketIndex, false)
		}
	}
	for _, position := range user.ActivePerpPositions() {
		perp.add(position.MarketIndex, false)
	}
	for _, index := range request.ReadableSpotMarkets {
		spot.add(index, false)
	}
	for _, index := range request.WritableSpotMarkets {
		spot.add(index, true)
	}
	for _, index := range request.ReadablePerpMarkets {
		perp.add(index, false)
	}
	for _, index := range request.WritablePerpMarkets {
		perp.add(index, true)
	}

	perpMarkets, err := fetchAll(ctx, p.caches.PerpMarkets, "perp market",
		p.marketAddresses(perp.order, addresses.GetPerpMarketAddress),
		request.ForceRefresh,
		func(market *drift.PerpMarket) solana.PublicKey { return market.Address },
	)
	if err != nil {
		return nil, err
	}
	for _, market := range perpMarkets {
		spot.add(market.QuoteSpotMarketIndex, false)
	}
	spotMarkets, err := fetchAll(ctx, p.caches.SpotMarkets, "spot market",
		p.marketAddresses(spot.order, addresses.GetSpotMarketAddress),
		request.ForceRefresh,
		func(market *drift.SpotMarket) solana.PublicKey { return market.Address },
	)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(spotMarkets)+len(perpMarkets))
	for _, market := range spotMarkets {
		entries = append(entries, Entry{
			Oracle:   market.Oracle,
			Market:   market.Address,
			Kind:     KindSpotMarket,
			Writable: spot.writable[market.MarketIndex],
		})
	}
	for _, market := range perpMarkets {
		writable := perp.writable[market.MarketIndex]
		entries = append(entries, Entry{
			Oracle:         market.Oracle(),
			Market:         market.Address,
			Kind:           KindPerpMarket,
			Writable:       writable,
			OracleWritable: market.OracleWritable(writable),
		})
	}
	p.logger.Debug("resolving drift user",
		zap.String("user", request.User.String()),
		zap.Int("spotMarkets", len(spotMarkets)),
		zap.Int("perpMarkets", len(perpMarkets)),
	)
	metas, err := Emit(entries, ShapeOraclesThenMarkets)
	if err != nil {
		return nil, errors.WrapPrefix(err, "drift user "+request.User.String(), 0)
	}
	return metas, nil
}

func (p *Resolver) marketAddresses(
	indexes []uint16,
	derive func(solana.PublicKey, uint16) solana.PublicKey,
) []solana.PublicKey {
	return utils.ValuesFunc(indexes, func(index uint16) solana.PublicKey {
		return derive(p.driftProgramId, index)
	})
}
