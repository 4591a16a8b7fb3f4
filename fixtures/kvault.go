package fixtures

import (
	"github.com/gagliardetto/solana-go"
)

const (
	vaultStateSize      = 62560
	vaultAllocationSize = 2160
)

type VaultAllocation struct {
	Slot        int
	Reserve     solana.PublicKey
	CTokenVault solana.PublicKey
	Weight      uint64
}

type Vault struct {
	TokenMint    solana.PublicKey
	TokenVault   solana.PublicKey
	TokenProgram solana.PublicKey
	SharesMint   solana.PublicKey
	VaultFarm    solana.PublicKey
	Name         string
	Allocations  []VaultAllocation
}

func (v Vault) Bytes() []byte {
	account := New(vaultStateSize, "VaultState").
		PutKey(80, v.TokenMint).
		PutKey(120, v.TokenVault).
		PutKey(152, v.TokenProgram).
		PutKey(184, v.SharesMint).
		PutString(58528, v.Name).
		PutKey(58600, v.VaultFarm)
	for _, allocation := range v.Allocations {
		offset := 312 + vaultAllocationSize*allocation.Slot
		account.PutKey(offset, allocation.Reserve).
			PutKey(offset+32, allocation.CTokenVault).
			PutU64(offset+64, allocation.Weight)
	}
	return account.Bytes()
}
