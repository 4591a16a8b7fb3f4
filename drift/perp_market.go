package drift

import (
	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/layout"
)

const (
	PerpMarketSize = 1216
	ammSize        = 936

	// oracle source sits at byte 886 of the AMM block
	ammOracleSourceOffset = 886
)

// AMM keeps the oracle and its source; the pricing state around them is
// carried undecoded.
type AMM struct {
	Oracle       solana.PublicKey
	PricingState [ammOracleSourceOffset - 32]uint8
	OracleSource OracleSource
	Tail         [ammSize - ammOracleSourceOffset - 1]uint8
}

type PerpMarketLayout struct {
	Discriminator                       [8]byte
	Pubkey                              solana.PublicKey
	Amm                                 AMM
	PnlPool                             PoolBalance
	Name                                [32]uint8
	InsuranceClaim                      InsuranceClaim
	UnrealizedPnlMaxImbalance           uint64
	ExpiryTs                            int64
	ExpiryPrice                         int64
	NextFillRecordId                    uint64
	NextFundingRateRecordId             uint64
	NextCurveRecordId                   uint64
	ImfFactor                           uint32
	UnrealizedPnlImfFactor              uint32
	LiquidatorFee                       uint32
	IfLiquidationFee                    uint32
	MarginRatioInitial                  uint32
	MarginRatioMaintenance              uint32
	UnrealizedPnlInitialAssetWeight     uint32
	UnrealizedPnlMaintenanceAssetWeight uint32
	NumberOfUsersWithBase               uint32
	NumberOfUsers                       uint32
	MarketIndex                         uint16
	Status                              uint8
	ContractType                        uint8
	ContractTier                        uint8
	PausedOperations                    uint8
	QuoteSpotMarketIndex                uint16
	FeeAdjustment                       int16
	FuelBoostPosition                   uint8
	FuelBoostTaker                      uint8
	FuelBoostMaker                      uint8
	PoolId                              uint8
	HighLeverageMarginRatioInitial      uint16
	HighLeverageMarginRatioMaintenance  uint16
	ProtectedMakerLimitPriceDivisor     uint8
	ProtectedMakerDynamicDivisor        uint8
	Padding1                            uint32
	LastFillPrice                       uint64
	Padding                             [24]uint8
}

func (PerpMarketLayout) AccountName() string {
	return "PerpMarket"
}

func init() {
	assert.LayoutSize("PerpMarket", layout.MustSizeOf(PerpMarketLayout{}), PerpMarketSize)
}

type PerpMarket struct {
	Address solana.PublicKey
	PerpMarketLayout
}

func DecodePerpMarket(address solana.PublicKey, data []byte) (*PerpMarket, error) {
	market := &PerpMarket{Address: address}
	if err := layout.Decode(data, &market.PerpMarketLayout); err != nil {
		return nil, err
	}
	return market, nil
}

func (m *PerpMarket) Oracle() solana.PublicKey {
	return m.Amm.Oracle
}

// OracleWritable reports whether the oracle must be writable when the market
// is. Prelaunch oracles are updated by the program itself.
func (m *PerpMarket) OracleWritable(marketWritable bool) bool {
	return marketWritable && m.Amm.OracleSource == OracleSourcePrelaunch
}

func (m *PerpMarket) MarketName() string {
	return layout.TrimmedString(m.Name[:])
}
