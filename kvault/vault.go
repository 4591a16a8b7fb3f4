package kvault

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/fraction"
	"glamgo/layout"
)

const (
	VaultStateSize      = 62560
	MaxReserves         = 25
	VaultAllocationSize = 2160
)

type VaultAllocation struct {
	Reserve                 solana.PublicKey
	CTokenVault             solana.PublicKey
	TargetAllocationWeight  uint64
	TokenAllocationCap      uint64
	CTokenVaultBump         uint64
	ConfigPadding           [127]uint64
	CTokenAllocation        uint64
	LastInvestSlot          uint64
	TokenTargetAllocationSf bin.Uint128
	StatePadding            [128]uint64
}

type VaultStateLayout struct {
	Discriminator              [8]byte
	VaultAdminAuthority        solana.PublicKey
	BaseVaultAuthority         solana.PublicKey
	BaseVaultAuthorityBump     uint64
	TokenMint                  solana.PublicKey
	TokenMintDecimals          uint64
	TokenVault                 solana.PublicKey
	TokenProgram               solana.PublicKey
	SharesMint                 solana.PublicKey
	SharesMintDecimals         uint64
	TokenAvailable             uint64
	SharesIssued               uint64
	AvailableCrankFunds        uint64
	Padding0                   uint64
	PerformanceFeeBps          uint64
	ManagementFeeBps           uint64
	LastFeeChargeTimestamp     uint64
	PrevAumSf                  bin.Uint128
	PendingFeesSf              bin.Uint128
	VaultAllocationStrategy    [MaxReserves]VaultAllocation
	Padding1                   [256]bin.Uint128
	MinDepositAmount           uint64
	MinWithdrawAmount          uint64
	MinInvestAmount            uint64
	MinInvestDelaySlots        uint64
	CrankFundFeePerReserve     uint64
	PendingAdmin               solana.PublicKey
	CumulativeEarnedInterestSf bin.Uint128
	CumulativeMgmtFeesSf       bin.Uint128
	CumulativePerfFeesSf       bin.Uint128
	Name                       [40]uint8
	VaultLookupTable           solana.PublicKey
	VaultFarm                  solana.PublicKey
	CreationTimestamp          uint64
	UnallocatedWeight          uint64
	UnallocatedTokensCap       uint64
	AllocationAdmin            solana.PublicKey
	Padding3                   [242]bin.Uint128
}

func (VaultStateLayout) AccountName() string {
	return "VaultState"
}

func init() {
	assert.LayoutSize("VaultAllocation", layout.MustSizeOf(VaultAllocation{}), VaultAllocationSize)
	assert.LayoutSize("VaultState", layout.MustSizeOf(VaultStateLayout{}), VaultStateSize)
}

type VaultState struct {
	Address solana.PublicKey
	state   VaultStateLayout
}

func DecodeVaultState(address solana.PublicKey, data []byte) (*VaultState, error) {
	vault := &VaultState{Address: address}
	if err := layout.Decode(data, &vault.state); err != nil {
		return nil, err
	}
	return vault, nil
}

// Allocation is a reserve the vault can invest in.
type Allocation struct {
	Reserve                solana.PublicKey
	CTokenVault            solana.PublicKey
	TargetAllocationWeight uint64
	TokenAllocationCap     uint64
	CTokenAllocation       uint64
	TokenTargetAllocation  fraction.Fraction
}

// ValidAllocations drops the unused slots of the fixed allocation table.
func (v *VaultState) ValidAllocations() []Allocation {
	var allocations []Allocation
	for _, slot := range layout.Active(v.state.VaultAllocationStrategy[:], func(a *VaultAllocation) solana.PublicKey {
		return a.Reserve
	}) {
		allocations = append(allocations, Allocation{
			Reserve:                slot.Reserve,
			CTokenVault:            slot.CTokenVault,
			TargetAllocationWeight: slot.TargetAllocationWeight,
			TokenAllocationCap:     slot.TokenAllocationCap,
			CTokenAllocation:       slot.CTokenAllocation,
			TokenTargetAllocation:  fraction.FromUint128(slot.TokenTargetAllocationSf),
		})
	}
	return allocations
}

func (v *VaultState) Reserves() []solana.PublicKey {
	allocations := v.ValidAllocations()
	reserves := make([]solana.PublicKey, 0, len(allocations))
	for _, allocation := range allocations {
		reserves = append(reserves, allocation.Reserve)
	}
	return reserves
}

func (v *VaultState) TokenMint() solana.PublicKey {
	return v.state.TokenMint
}

func (v *VaultState) TokenMintDecimals() uint64 {
	return v.state.TokenMintDecimals
}

func (v *VaultState) TokenVault() solana.PublicKey {
	return v.state.TokenVault
}

func (v *VaultState) TokenProgram() solana.PublicKey {
	return v.state.TokenProgram
}

func (v *VaultState) SharesMint() solana.PublicKey {
	return v.state.SharesMint
}

func (v *VaultState) BaseVaultAuthority() solana.PublicKey {
	return v.state.BaseVaultAuthority
}

func (v *VaultState) TokenAvailable() uint64 {
	return v.state.TokenAvailable
}

func (v *VaultState) SharesIssued() uint64 {
	return v.state.SharesIssued
}

func (v *VaultState) VaultFarm() (solana.PublicKey, bool) {
	return v.state.VaultFarm, !layout.IsSentinel(v.state.VaultFarm)
}

func (v *VaultState) VaultLookupTable() solana.PublicKey {
	return v.state.VaultLookupTable
}

func (v *VaultState) VaultName() string {
	return layout.TrimmedString(v.state.Name[:])
}
