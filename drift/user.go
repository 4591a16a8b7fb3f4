package drift

import (
	"math/big"

	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/layout"
)

const (
	UserSize         = 4376
	MaxSpotPositions = 8
	MaxPerpPositions = 8
	MaxOpenOrders    = 32
)

type SpotPosition struct {
	ScaledBalance      uint64
	OpenBids           int64
	OpenAsks           int64
	CumulativeDeposits int64
	MarketIndex        uint16
	BalanceType        SpotBalanceType
	OpenOrders         uint8
	Padding            [4]uint8
}

// IsAvailable reports whether the slot holds no balance and no orders.
func (p *SpotPosition) IsAvailable() bool {
	return p.ScaledBalance == 0 && p.OpenOrders == 0
}

type PerpPosition struct {
	LastCumulativeFundingRate int64
	BaseAssetAmount           int64
	QuoteAssetAmount          int64
	QuoteBreakEvenAmount      int64
	QuoteEntryAmount          int64
	OpenBids                  int64
	OpenAsks                  int64
	SettledPnl                int64
	LpShares                  uint64
	LastBaseAssetAmountPerLp  int64
	LastQuoteAssetAmountPerLp int64
	RemainderBaseAssetAmount  int32
	MarketIndex               uint16
	OpenOrders                uint8
	PerLpBase                 int8
}

func (p *PerpPosition) IsAvailable() bool {
	return p.BaseAssetAmount == 0 &&
		p.OpenOrders == 0 &&
		p.QuoteAssetAmount == 0 &&
		p.LpShares == 0
}

type Order struct {
	Slot                      uint64
	Price                     uint64
	BaseAssetAmount           uint64
	BaseAssetAmountFilled     uint64
	QuoteAssetAmountFilled    uint64
	TriggerPrice              uint64
	AuctionStartPrice         int64
	AuctionEndPrice           int64
	MaxTs                     int64
	OraclePriceOffset         int32
	OrderId                   uint32
	MarketIndex               uint16
	Status                    uint8
	OrderType                 uint8
	MarketType                MarketType
	UserOrderId               uint8
	ExistingPositionDirection uint8
	Direction                 uint8
	ReduceOnly                bool
	PostOnly                  bool
	ImmediateOrCancel         bool
	TriggerCondition          uint8
	AuctionDuration           uint8
	PostedSlotTail            uint8
	BitFlags                  uint8
	Padding                   [1]uint8
}

type UserLayout struct {
	Discriminator          [8]byte
	Authority              solana.PublicKey
	Delegate               solana.PublicKey
	Name                   [32]uint8
	SpotPositions          [MaxSpotPositions]SpotPosition
	PerpPositions          [MaxPerpPositions]PerpPosition
	Orders                 [MaxOpenOrders]Order
	LastAddPerpLpSharesTs  int64
	TotalDeposits          uint64
	TotalWithdraws         uint64
	TotalSocialLoss        uint64
	SettledPerpPnl         int64
	CumulativeSpotFees     int64
	CumulativePerpFunding  int64
	LiquidationMarginFreed uint64
	LastActiveSlot         uint64
	NextOrderId            uint32
	MaxMarginRatio         uint32
	NextLiquidationId      uint16
	SubAccountId           uint16
	Status                 uint8
	IsMarginTradingEnabled bool
	Idle                   bool
	OpenOrders             uint8
	HasOpenOrder           bool
	OpenAuctions           uint8
	HasOpenAuction         bool
	MarginMode             uint8
	PoolId                 uint8
	Padding1               [3]uint8
	LastFuelBonusUpdateTs  uint32
	Padding                [12]uint8
}

func (UserLayout) AccountName() string {
	return "User"
}

func init() {
	assert.LayoutSize("User", layout.MustSizeOf(UserLayout{}), UserSize)
}

type User struct {
	Address solana.PublicKey
	UserLayout
}

func DecodeUser(address solana.PublicKey, data []byte) (*User, error) {
	user := &User{Address: address}
	if err := layout.Decode(data, &user.UserLayout); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *User) UserName() string {
	return layout.TrimmedString(u.Name[:])
}

// ActiveSpotPositions returns the occupied spot slots in slot order.
func (u *User) ActiveSpotPositions() []SpotPosition {
	var positions []SpotPosition
	for idx := range u.SpotPositions {
		if !u.SpotPositions[idx].IsAvailable() {
			positions = append(positions, u.SpotPositions[idx])
		}
	}
	return positions
}

func (u *User) ActivePerpPositions() []PerpPosition {
	var positions []PerpPosition
	for idx := range u.PerpPositions {
		if !u.PerpPositions[idx].IsAvailable() {
			positions = append(positions, u.PerpPositions[idx])
		}
	}
	return positions
}

func (u *User) GetSpotPosition(marketIndex uint16) *SpotPosition {
	for idx := range u.SpotPositions {
		position := &u.SpotPositions[idx]
		if !position.IsAvailable() && position.MarketIndex == marketIndex {
			return position
		}
	}
	return nil
}

// GetTokenAmount is the signed token amount the user holds in market:
// positive for deposits, negative for borrows, zero without a position.
func (u *User) GetTokenAmount(market *SpotMarket) *big.Int {
	position := u.GetSpotPosition(market.MarketIndex)
	if position == nil {
		return new(big.Int)
	}
	scaled := new(big.Int).SetUint64(position.ScaledBalance)
	return market.GetSignedTokenAmount(scaled, position.BalanceType)
}
