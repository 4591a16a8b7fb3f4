package kamino

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/fraction"
	"glamgo/layout"
)

const ReserveSize = 8624

type ReserveLiquidity struct {
	MintPubkey                   solana.PublicKey
	SupplyVault                  solana.PublicKey
	FeeVault                     solana.PublicKey
	AvailableAmount              uint64
	BorrowedAmountSf             bin.Uint128
	MarketPriceSf                bin.Uint128
	MarketPriceLastUpdatedTs     uint64
	MintDecimals                 uint64
	DepositLimitCrossedTimestamp uint64
	BorrowLimitCrossedTimestamp  uint64
	CumulativeBorrowRateBsf      BigFractionBytes
	AccumulatedProtocolFeesSf    bin.Uint128
	AccumulatedReferrerFeesSf    bin.Uint128
	PendingReferrerFeesSf        bin.Uint128
	AbsoluteReferralRateSf       bin.Uint128
	TokenProgram                 solana.PublicKey
	Padding2                     [51]uint64
	Padding3                     [32]bin.Uint128
}

type ReserveCollateral struct {
	MintPubkey      solana.PublicKey
	MintTotalSupply uint64
	SupplyVault     solana.PublicKey
	Padding1        [32]bin.Uint128
	Padding2        [32]bin.Uint128
}

type ReserveFees struct {
	BorrowFeeSf    uint64
	FlashLoanFeeSf uint64
	Padding        [8]uint8
}

type CurvePoint struct {
	UtilizationRateBps uint32
	BorrowRateBps      uint32
}

type BorrowRateCurve struct {
	Points [11]CurvePoint
}

type PriceHeuristic struct {
	Lower uint64
	Upper uint64
	Exp   uint64
}

type ScopeConfiguration struct {
	PriceFeed  solana.PublicKey
	PriceChain [4]uint16
	TwapChain  [4]uint16
}

type SwitchboardConfiguration struct {
	PriceAggregator solana.PublicKey
	TwapAggregator  solana.PublicKey
}

type PythConfiguration struct {
	Price solana.PublicKey
}

type TokenInfo struct {
	Name                     [32]uint8
	Heuristic                PriceHeuristic
	MaxTwapDivergenceBps     uint64
	MaxAgePriceSeconds       uint64
	MaxAgeTwapSeconds        uint64
	ScopeConfiguration       ScopeConfiguration
	SwitchboardConfiguration SwitchboardConfiguration
	PythConfiguration        PythConfiguration
	BlockPriceUsage          uint8
	Reserved                 [7]uint8
	Padding                  [19]uint64
}

type WithdrawalCaps struct {
	ConfigCapacity              int64
	CurrentTotal                int64
	LastIntervalStartTimestamp  uint64
	ConfigIntervalLengthSeconds uint64
}

type ReserveConfig struct {
	Status                                           uint8
	AssetTier                                        uint8
	HostFixedInterestRateBps                         uint16
	Reserved2                                        [2]uint8
	Reserved3                                        [8]uint8
	ProtocolTakeRatePct                              uint8
	ProtocolLiquidationFeePct                        uint8
	LoanToValuePct                                   uint8
	LiquidationThresholdPct                          uint8
	MinLiquidationBonusBps                           uint16
	MaxLiquidationBonusBps                           uint16
	BadDebtLiquidationBonusBps                       uint16
	DeleveragingMarginCallPeriodSecs                 uint64
	DeleveragingThresholdDecreaseBpsPerDay           uint64
	Fees                                             ReserveFees
	BorrowRateCurve                                  BorrowRateCurve
	BorrowFactorPct                                  uint64
	DepositLimit                                     uint64
	BorrowLimit                                      uint64
	TokenInfo                                        TokenInfo
	DepositWithdrawalCap                             WithdrawalCaps
	DebtWithdrawalCap                                WithdrawalCaps
	ElevationGroups                                  [20]uint8
	DisableUsageAsCollOutsideEmode                   uint8
	UtilizationLimitBlockBorrowingAbovePct           uint8
	AutodeleverageEnabled                            uint8
	Reserved1                                        [1]uint8
	BorrowLimitOutsideElevationGroup                 uint64
	BorrowLimitAgainstThisCollateralInElevationGroup [32]uint64
	DeleveragingBonusIncreaseBpsPerDay               uint64
}

type ReserveState struct {
	Discriminator                                      [8]byte
	Version                                            uint64
	LastUpdate                                         LastUpdate
	LendingMarket                                      solana.PublicKey
	FarmCollateral                                     solana.PublicKey
	FarmDebt                                           solana.PublicKey
	Liquidity                                          ReserveLiquidity
	ReserveLiquidityPadding                            [150]uint64
	Collateral                                         ReserveCollateral
	ReserveCollateralPadding                           [150]uint64
	Config                                             ReserveConfig
	ConfigPadding                                      [116]uint64
	BorrowedAmountOutsideElevationGroup                uint64
	BorrowedAmountsAgainstThisReserveInElevationGroups [32]uint64
	Padding                                            [207]uint64
}

func (ReserveState) AccountName() string {
	return "Reserve"
}

func init() {
	assert.LayoutSize("Reserve", layout.MustSizeOf(ReserveState{}), ReserveSize)
}

// Reserve is one lending pool of a Kamino market, decoded at Address.
type Reserve struct {
	Address solana.PublicKey
	state   ReserveState
}

func DecodeReserve(address solana.PublicKey, data []byte) (*Reserve, error) {
	reserve := &Reserve{Address: address}
	if err := layout.Decode(data, &reserve.state); err != nil {
		return nil, err
	}
	return reserve, nil
}

func (r *Reserve) LendingMarket() solana.PublicKey {
	return r.state.LendingMarket
}

// CollateralFarm returns the farm attached to the collateral side, if any.
func (r *Reserve) CollateralFarm() (solana.PublicKey, bool) {
	return r.state.FarmCollateral, !layout.IsSentinel(r.state.FarmCollateral)
}

// DebtFarm returns the farm attached to the debt side, if any.
func (r *Reserve) DebtFarm() (solana.PublicKey, bool) {
	return r.state.FarmDebt, !layout.IsSentinel(r.state.FarmDebt)
}

func (r *Reserve) LiquidityMint() solana.PublicKey {
	return r.state.Liquidity.MintPubkey
}

func (r *Reserve) Decimals() uint32 {
	return uint32(r.state.Liquidity.MintDecimals)
}

func (r *Reserve) LiquiditySupplyVault() solana.PublicKey {
	return r.state.Liquidity.SupplyVault
}

func (r *Reserve) FeeVault() solana.PublicKey {
	return r.state.Liquidity.FeeVault
}

func (r *Reserve) TokenProgram() solana.PublicKey {
	return r.state.Liquidity.TokenProgram
}

func (r *Reserve) AvailableAmount() uint64 {
	return r.state.Liquidity.AvailableAmount
}

func (r *Reserve) BorrowedAmount() fraction.Fraction {
	return fraction.FromUint128(r.state.Liquidity.BorrowedAmountSf)
}

func (r *Reserve) MarketPrice() fraction.Fraction {
	return fraction.FromUint128(r.state.Liquidity.MarketPriceSf)
}

func (r *Reserve) CumulativeBorrowRate() fraction.Fraction {
	return r.state.Liquidity.CumulativeBorrowRateBsf.Fraction()
}

func (r *Reserve) CollateralMint() solana.PublicKey {
	return r.state.Collateral.MintPubkey
}

func (r *Reserve) CollateralSupplyVault() solana.PublicKey {
	return r.state.Collateral.SupplyVault
}

func (r *Reserve) CollateralMintTotalSupply() uint64 {
	return r.state.Collateral.MintTotalSupply
}

func (r *Reserve) LoanToValuePct() uint8 {
	return r.state.Config.LoanToValuePct
}

func (r *Reserve) LiquidationThresholdPct() uint8 {
	return r.state.Config.LiquidationThresholdPct
}

func (r *Reserve) TokenName() string {
	return layout.TrimmedString(r.state.Config.TokenInfo.Name[:])
}

// PriceFeed is the oracle account the program reads for this reserve: the
// scope feed when configured, then pyth, then switchboard.
func (r *Reserve) PriceFeed() solana.PublicKey {
	tokenInfo := &r.state.Config.TokenInfo
	for _, feed := range []solana.PublicKey{
		tokenInfo.ScopeConfiguration.PriceFeed,
		tokenInfo.PythConfiguration.Price,
		tokenInfo.SwitchboardConfiguration.PriceAggregator,
	} {
		if !layout.IsSentinel(feed) {
			return feed
		}
	}
	return solana.PublicKey{}
}

// TotalSupply is the liquidity owned by depositors: available plus borrowed,
// minus fees not yet withdrawn.
func (r *Reserve) TotalSupply() fraction.Fraction {
	liquidity := &r.state.Liquidity
	return fraction.FromInt(new(big.Int).SetUint64(liquidity.AvailableAmount)).
		Add(fraction.FromUint128(liquidity.BorrowedAmountSf)).
		Sub(fraction.FromUint128(liquidity.AccumulatedProtocolFeesSf)).
		Sub(fraction.FromUint128(liquidity.AccumulatedReferrerFeesSf)).
		Sub(fraction.FromUint128(liquidity.PendingReferrerFeesSf))
}

// CollateralToLiquidity converts collateral tokens to liquidity tokens at the
// current exchange rate, truncated.
func (r *Reserve) CollateralToLiquidity(collateralAmount *big.Int) *big.Int {
	mintSupply := r.state.Collateral.MintTotalSupply
	totalSupply := r.TotalSupply()
	if mintSupply == 0 || totalSupply.IsZero() {
		return new(big.Int).Set(collateralAmount)
	}
	return totalSupply.MulInt(collateralAmount).QuoInt(new(big.Int).SetUint64(mintSupply)).Floor()
}
