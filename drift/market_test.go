package drift

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamgo/fixtures"
	"glamgo/layout"
)

func TestDecodeMarkets(t *testing.T) {
	spotSpec := fixtures.SpotMarket{
		Pubkey:      fixtures.Key("sol-market"),
		Oracle:      fixtures.Key("sol-oracle"),
		Mint:        fixtures.Key("sol-mint"),
		MarketIndex: 1,
		Decimals:    9,
		Name:        "SOL",
	}
	spot, err := DecodeSpotMarket(spotSpec.Pubkey, spotSpec.Bytes())
	require.NoError(t, err)
	assert.Equal(t, spotSpec.Pubkey, spot.Pubkey)
	assert.Equal(t, spotSpec.Oracle, spot.Oracle)
	assert.Equal(t, spotSpec.Mint, spot.Mint)
	assert.Equal(t, uint16(1), spot.MarketIndex)
	assert.Equal(t, uint32(9), spot.Decimals)
	assert.Equal(t, "SOL", spot.MarketName())

	perpSpec := fixtures.PerpMarket{
		Pubkey:          fixtures.Key("sol-perp"),
		Oracle:          fixtures.Key("sol-oracle"),
		OracleSource:    uint8(OracleSourcePrelaunch),
		MarketIndex:     0,
		QuoteSpotMarket: 0,
		Name:            "SOL-PERP",
	}
	perp, err := DecodePerpMarket(perpSpec.Pubkey, perpSpec.Bytes())
	require.NoError(t, err)
	assert.Equal(t, perpSpec.Oracle, perp.Oracle())
	assert.Equal(t, "SOL-PERP", perp.MarketName())
	assert.Equal(t, uint16(0), perp.QuoteSpotMarketIndex)
	assert.Equal(t, OracleSourcePrelaunch, perp.Amm.OracleSource)
	assert.True(t, perp.OracleWritable(true))
	assert.False(t, perp.OracleWritable(false))

	_, err = DecodePerpMarket(spotSpec.Pubkey, spotSpec.Bytes())
	assert.True(t, errors.Is(err, layout.ErrSizeMismatch))
}
