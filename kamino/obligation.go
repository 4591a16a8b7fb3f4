package kamino

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/fraction"
	"glamgo/layout"
)

const (
	ObligationSize        = 3344
	MaxObligationDeposits = 8
	MaxObligationBorrows  = 5
)

type ObligationCollateral struct {
	DepositReserve                                      solana.PublicKey
	DepositedAmount                                     uint64
	MarketValueSf                                       bin.Uint128
	BorrowedAmountAgainstThisCollateralInElevationGroup uint64
	Padding                                             [9]uint64
}

type ObligationLiquidity struct {
	BorrowReserve                        solana.PublicKey
	CumulativeBorrowRateBsf              BigFractionBytes
	Padding                              uint64
	BorrowedAmountSf                     bin.Uint128
	MarketValueSf                        bin.Uint128
	BorrowFactorAdjustedMarketValueSf    bin.Uint128
	BorrowedAmountOutsideElevationGroups uint64
	Padding2                             [7]uint64
}

type ObligationOrder struct {
	ConditionThresholdSf   bin.Uint128
	OpportunityParameterSf bin.Uint128
	MinExecutionBonusBps   uint16
	MaxExecutionBonusBps   uint16
	ConditionType          uint8
	OpportunityType        uint8
	Padding1               [10]uint8
	Padding2               [5]bin.Uint128
}

type ObligationState struct {
	Discriminator                            [8]byte
	Tag                                      uint64
	LastUpdate                               LastUpdate
	LendingMarket                            solana.PublicKey
	Owner                                    solana.PublicKey
	Deposits                                 [MaxObligationDeposits]ObligationCollateral
	LowestReserveDepositLiquidationLtv       uint64
	DepositedValueSf                         bin.Uint128
	Borrows                                  [MaxObligationBorrows]ObligationLiquidity
	BorrowFactorAdjustedDebtValueSf          bin.Uint128
	BorrowedAssetsMarketValueSf              bin.Uint128
	AllowedBorrowValueSf                     bin.Uint128
	UnhealthyBorrowValueSf                   bin.Uint128
	DepositsAssetTiers                       [MaxObligationDeposits]uint8
	BorrowsAssetTiers                        [MaxObligationBorrows]uint8
	ElevationGroup                           uint8
	NumOfObsoleteDepositReserves             uint8
	HasDebt                                  uint8
	Referrer                                 solana.PublicKey
	BorrowingDisabled                        uint8
	AutodeleverageTargetLtvPct               uint8
	LowestReserveDepositMaxLtvPct            uint8
	NumOfObsoleteBorrowReserves              uint8
	Reserved                                 [4]uint8
	HighestBorrowFactorPct                   uint64
	AutodeleverageMarginCallStartedTimestamp uint64
	Orders                                   [2]ObligationOrder
	Padding3                                 [93]uint64
}

func (ObligationState) AccountName() string {
	return "Obligation"
}

func init() {
	assert.LayoutSize("Obligation", layout.MustSizeOf(ObligationState{}), ObligationSize)
}

// Deposit is an active collateral slot of an obligation.
type Deposit struct {
	Reserve         solana.PublicKey
	DepositedAmount uint64
	MarketValue     fraction.Fraction
}

// Borrow is an active debt slot of an obligation.
type Borrow struct {
	Reserve              solana.PublicKey
	BorrowedAmount       fraction.Fraction
	CumulativeBorrowRate fraction.Fraction
	MarketValue          fraction.Fraction
}

// Obligation is a borrower's position against one lending market. Unused
// slots never leave this type: callers only see ActiveDeposits/ActiveBorrows.
type Obligation struct {
	Address solana.PublicKey
	state   ObligationState
}

func DecodeObligation(address solana.PublicKey, data []byte) (*Obligation, error) {
	obligation := &Obligation{Address: address}
	if err := layout.Decode(data, &obligation.state); err != nil {
		return nil, err
	}
	return obligation, nil
}

func (o *Obligation) LendingMarket() solana.PublicKey {
	return o.state.LendingMarket
}

func (o *Obligation) Owner() solana.PublicKey {
	return o.state.Owner
}

func (o *Obligation) Tag() uint64 {
	return o.state.Tag
}

func (o *Obligation) ElevationGroup() uint8 {
	return o.state.ElevationGroup
}

func (o *Obligation) HasDebt() bool {
	return o.state.HasDebt != 0
}

func (o *Obligation) ActiveDeposits() []Deposit {
	active := layout.Active(o.state.Deposits[:], func(slot *ObligationCollateral) solana.PublicKey {
		return slot.DepositReserve
	})
	deposits := make([]Deposit, 0, len(active))
	for _, slot := range active {
		deposits = append(deposits, Deposit{
			Reserve:         slot.DepositReserve,
			DepositedAmount: slot.DepositedAmount,
			MarketValue:     fraction.FromUint128(slot.MarketValueSf),
		})
	}
	return deposits
}

func (o *Obligation) ActiveBorrows() []Borrow {
	active := layout.Active(o.state.Borrows[:], func(slot *ObligationLiquidity) solana.PublicKey {
		return slot.BorrowReserve
	})
	borrows := make([]Borrow, 0, len(active))
	for _, slot := range active {
		borrows = append(borrows, Borrow{
			Reserve:              slot.BorrowReserve,
			BorrowedAmount:       fraction.FromUint128(slot.BorrowedAmountSf),
			CumulativeBorrowRate: slot.CumulativeBorrowRateBsf.Fraction(),
			MarketValue:          fraction.FromUint128(slot.MarketValueSf),
		})
	}
	return borrows
}

// ReserveAddresses lists every reserve the obligation touches: deposits in
// slot order, then borrows, each address once.
func (o *Obligation) ReserveAddresses() []solana.PublicKey {
	seen := make(map[string]bool)
	var reserves []solana.PublicKey
	add := func(reserve solana.PublicKey) {
		if seen[reserve.String()] {
			return
		}
		seen[reserve.String()] = true
		reserves = append(reserves, reserve)
	}
	for _, deposit := range o.ActiveDeposits() {
		add(deposit.Reserve)
	}
	for _, borrow := range o.ActiveBorrows() {
		add(borrow.Reserve)
	}
	return reserves
}

func (o *Obligation) DepositedValue() fraction.Fraction {
	return fraction.FromUint128(o.state.DepositedValueSf)
}

func (o *Obligation) BorrowedAssetsMarketValue() fraction.Fraction {
	return fraction.FromUint128(o.state.BorrowedAssetsMarketValueSf)
}

func (o *Obligation) AllowedBorrowValue() fraction.Fraction {
	return fraction.FromUint128(o.state.AllowedBorrowValueSf)
}

func (o *Obligation) UnhealthyBorrowValue() fraction.Fraction {
	return fraction.FromUint128(o.state.UnhealthyBorrowValueSf)
}
