package fixtures

import (
	"github.com/gagliardetto/solana-go"
)

const (
	reserveSize    = 8624
	obligationSize = 3344
	farmStateSize  = 8336
	farmUserSize   = 920
)

type Reserve struct {
	Market         solana.PublicKey
	LiquidityMint  solana.PublicKey
	SupplyVault    solana.PublicKey
	FeeVault       solana.PublicKey
	CollateralMint solana.PublicKey
	TokenProgram   solana.PublicKey
	FarmCollateral solana.PublicKey
	FarmDebt       solana.PublicKey
	ScopeFeed      solana.PublicKey
	PythFeed       solana.PublicKey
	Switchboard    solana.PublicKey
	Decimals       uint64
	Available      uint64
	Borrowed       uint64
	MintSupply     uint64
	MarketPrice    uint64
	LoanToValue    uint8
	Name           string
}

func (r Reserve) Bytes() []byte {
	return New(reserveSize, "Reserve").
		PutKey(32, r.Market).
		PutKey(64, r.FarmCollateral).
		PutKey(96, r.FarmDebt).
		PutKey(128, r.LiquidityMint).
		PutKey(160, r.SupplyVault).
		PutKey(192, r.FeeVault).
		PutU64(224, r.Available).
		PutScaled(232, r.Borrowed).
		PutScaled(248, r.MarketPrice).
		PutU64(272, r.Decimals).
		PutScaled(296, 1).
		PutKey(408, r.TokenProgram).
		PutKey(2560, r.CollateralMint).
		PutU64(2592, r.MintSupply).
		PutU8(4872, r.LoanToValue).
		PutString(5032, r.Name).
		PutKey(5112, r.ScopeFeed).
		PutKey(5160, r.Switchboard).
		PutKey(5224, r.PythFeed).
		Bytes()
}

type ObligationDeposit struct {
	Slot    int
	Reserve solana.PublicKey
	Amount  uint64
}

type ObligationBorrow struct {
	Slot    int
	Reserve solana.PublicKey
	Amount  uint64
}

type Obligation struct {
	Market   solana.PublicKey
	Owner    solana.PublicKey
	Deposits []ObligationDeposit
	Borrows  []ObligationBorrow
}

func (o Obligation) Bytes() []byte {
	account := New(obligationSize, "Obligation").
		PutKey(32, o.Market).
		PutKey(64, o.Owner)
	for _, deposit := range o.Deposits {
		offset := 96 + 136*deposit.Slot
		account.PutKey(offset, deposit.Reserve).
			PutU64(offset+32, deposit.Amount).
			PutScaled(offset+40, deposit.Amount)
	}
	for _, borrow := range o.Borrows {
		offset := 1208 + 200*borrow.Slot
		account.PutKey(offset, borrow.Reserve).
			PutScaled(offset+32, 1).
			PutScaled(offset+88, borrow.Amount).
			PutScaled(offset+104, borrow.Amount)
	}
	if len(o.Borrows) > 0 {
		account.PutU8(2287, 1)
	}
	return account.Bytes()
}

type FarmReward struct {
	Slot             int
	Mint             solana.PublicKey
	TokenProgram     solana.PublicKey
	Vault            solana.PublicKey
	MinClaimDuration uint64
}

type Farm struct {
	GlobalConfig solana.PublicKey
	Mint         solana.PublicKey
	Rewards      []FarmReward
}

func (f Farm) Bytes() []byte {
	account := New(farmStateSize, "FarmState").
		PutKey(40, f.GlobalConfig).
		PutKey(72, f.Mint)
	for _, reward := range f.Rewards {
		offset := 192 + 704*reward.Slot
		account.PutKey(offset, reward.Mint).
			PutKey(offset+40, reward.TokenProgram).
			PutKey(offset+120, reward.Vault).
			PutU64(offset+480, reward.MinClaimDuration)
	}
	account.PutU64(7232, uint64(len(f.Rewards)))
	return account.Bytes()
}

type FarmUser struct {
	Farm      solana.PublicKey
	Owner     solana.PublicKey
	Stake     uint64
	Unclaimed [10]uint64
}

func (u FarmUser) Bytes() []byte {
	account := New(farmUserSize, "UserState").
		PutKey(16, u.Farm).
		PutKey(48, u.Owner).
		PutScaled(408, u.Stake)
	for idx, amount := range u.Unclaimed {
		account.PutU64(248+8*idx, amount)
	}
	return account.Bytes()
}
