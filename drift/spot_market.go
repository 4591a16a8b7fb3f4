package drift

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/fraction"
	"glamgo/layout"
)

const SpotMarketSize = 776

type SpotMarketLayout struct {
	Discriminator                [8]byte
	Pubkey                       solana.PublicKey
	Oracle                       solana.PublicKey
	Mint                         solana.PublicKey
	Vault                        solana.PublicKey
	Name                         [32]uint8
	HistoricalOracleData         HistoricalOracleData
	HistoricalIndexData          HistoricalIndexData
	RevenuePool                  PoolBalance
	SpotFeePool                  PoolBalance
	InsuranceFund                InsuranceFund
	TotalSpotFee                 bin.Uint128
	DepositBalance               bin.Uint128
	BorrowBalance                bin.Uint128
	CumulativeDepositInterest    bin.Uint128
	CumulativeBorrowInterest     bin.Uint128
	TotalSocialLoss              bin.Uint128
	TotalQuoteSocialLoss         bin.Uint128
	WithdrawGuardThreshold       uint64
	MaxTokenDeposits             uint64
	DepositTokenTwap             uint64
	BorrowTokenTwap              uint64
	UtilizationTwap              uint64
	LastInterestTs               uint64
	LastTwapTs                   uint64
	ExpiryTs                     int64
	OrderStepSize                uint64
	OrderTickSize                uint64
	MinOrderSize                 uint64
	MaxPositionSize              uint64
	NextFillRecordId             uint64
	NextDepositRecordId          uint64
	InitialAssetWeight           uint32
	MaintenanceAssetWeight       uint32
	InitialLiabilityWeight       uint32
	MaintenanceLiabilityWeight   uint32
	ImfFactor                    uint32
	LiquidatorFee                uint32
	IfLiquidationFee             uint32
	OptimalUtilization           uint32
	OptimalBorrowRate            uint32
	MaxBorrowRate                uint32
	Decimals                     uint32
	MarketIndex                  uint16
	OrdersEnabled                bool
	OracleSource                 uint8
	Status                       uint8
	AssetTier                    uint8
	PausedOperations             uint8
	IfPausedOperations           uint8
	FeeAdjustment                int16
	MaxTokenBorrowsFraction      uint16
	FlashLoanAmount              uint64
	FlashLoanInitialTokenAmount  uint64
	TotalSwapFee                 uint64
	ScaleInitialAssetWeightStart uint64
	MinBorrowRate                uint8
	FuelBoostDeposits            uint8
	FuelBoostBorrows             uint8
	FuelBoostTaker               uint8
	FuelBoostMaker               uint8
	FuelBoostInsurance           uint8
	TokenProgram                 uint8
	PoolId                       uint8
	Padding                      [40]uint8
}

func (SpotMarketLayout) AccountName() string {
	return "SpotMarket"
}

func init() {
	assert.LayoutSize("SpotMarket", layout.MustSizeOf(SpotMarketLayout{}), SpotMarketSize)
}

type SpotMarket struct {
	Address solana.PublicKey
	SpotMarketLayout
}

func DecodeSpotMarket(address solana.PublicKey, data []byte) (*SpotMarket, error) {
	market := &SpotMarket{Address: address}
	if err := layout.Decode(data, &market.SpotMarketLayout); err != nil {
		return nil, err
	}
	return market, nil
}

func (m *SpotMarket) MarketName() string {
	return layout.TrimmedString(m.Name[:])
}

func (m *SpotMarket) interest(balanceType SpotBalanceType) *big.Int {
	if balanceType == SpotBalanceTypeDeposit {
		return m.CumulativeDepositInterest.BigInt()
	}
	return m.CumulativeBorrowInterest.BigInt()
}

// GetTokenAmount converts a scaled balance into mint units using the
// market's cumulative interest for the balance side.
func (m *SpotMarket) GetTokenAmount(scaledBalance *big.Int, balanceType SpotBalanceType) *big.Int {
	return fraction.TokenAmount(scaledBalance, m.interest(balanceType), m.Decimals)
}

func (m *SpotMarket) GetSignedTokenAmount(scaledBalance *big.Int, balanceType SpotBalanceType) *big.Int {
	return fraction.SignedTokenAmount(m.GetTokenAmount(scaledBalance, balanceType), balanceType.fractionType())
}

// GetScaledBalance is the inverse of GetTokenAmount.
func (m *SpotMarket) GetScaledBalance(tokenAmount *big.Int, balanceType SpotBalanceType) *big.Int {
	return fraction.ScaledBalance(tokenAmount, m.interest(balanceType), m.Decimals)
}

func (t SpotBalanceType) fractionType() fraction.BalanceType {
	if t == SpotBalanceTypeBorrow {
		return fraction.Borrow
	}
	return fraction.Deposit
}
