package fixtures

import (
	"github.com/gagliardetto/solana-go"
)

const (
	spotMarketSize = 776
	perpMarketSize = 1216
	driftUserSize  = 4376
)

type SpotMarket struct {
	Pubkey          solana.PublicKey
	Oracle          solana.PublicKey
	Mint            solana.PublicKey
	MarketIndex     uint16
	Decimals        uint32
	DepositInterest uint64
	BorrowInterest  uint64
	Name            string
}

func (m SpotMarket) Bytes() []byte {
	return New(spotMarketSize, "SpotMarket").
		PutKey(8, m.Pubkey).
		PutKey(40, m.Oracle).
		PutKey(72, m.Mint).
		PutString(136, m.Name).
		PutU128(464, m.DepositInterest, 0).
		PutU128(480, m.BorrowInterest, 0).
		PutU32(680, m.Decimals).
		PutU16(684, m.MarketIndex).
		Bytes()
}

type PerpMarket struct {
	Pubkey          solana.PublicKey
	Oracle          solana.PublicKey
	OracleSource    uint8
	MarketIndex     uint16
	QuoteSpotMarket uint16
	Name            string
}

func (m PerpMarket) Bytes() []byte {
	return New(perpMarketSize, "PerpMarket").
		PutKey(8, m.Pubkey).
		PutKey(40, m.Oracle).
		PutU8(926, m.OracleSource).
		PutString(1000, m.Name).
		PutU16(1160, m.MarketIndex).
		PutU16(1166, m.QuoteSpotMarket).
		Bytes()
}

type SpotPosition struct {
	Slot          int
	MarketIndex   uint16
	ScaledBalance uint64
	Borrow        bool
	OpenOrders    uint8
	OpenBids      int64
	OpenAsks      int64
}

type PerpPosition struct {
	Slot            int
	MarketIndex     uint16
	BaseAssetAmount int64
	OpenOrders      uint8
}

type DriftUser struct {
	Authority     solana.PublicKey
	SubAccountId  uint16
	Name          string
	SpotPositions []SpotPosition
	PerpPositions []PerpPosition
}

func (u DriftUser) Bytes() []byte {
	account := New(driftUserSize, "User").
		PutKey(8, u.Authority).
		PutString(72, u.Name).
		PutU16(4346, u.SubAccountId)
	for _, position := range u.SpotPositions {
		offset := 104 + 40*position.Slot
		account.PutU64(offset, position.ScaledBalance).
			PutI64(offset+8, position.OpenBids).
			PutI64(offset+16, position.OpenAsks).
			PutU16(offset+32, position.MarketIndex).
			PutU8(offset+35, position.OpenOrders)
		if position.Borrow {
			account.PutU8(offset+34, 1)
		}
	}
	for _, position := range u.PerpPositions {
		offset := 424 + 96*position.Slot
		account.PutI64(offset+8, position.BaseAssetAmount).
			PutU16(offset+92, position.MarketIndex).
			PutU8(offset+94, position.OpenOrders)
	}
	return account.Bytes()
}
