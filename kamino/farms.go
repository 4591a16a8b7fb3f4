package kamino

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"glamgo/assert"
	"glamgo/fraction"
	"glamgo/layout"
)

const (
	FarmStateSize   = 8336
	FarmUserSize    = 920
	MaxRewardTokens = 10

	// MaxPlausibleClaimDurationSeconds bounds the minimum claim interval of a
	// live reward. Farms park retired rewards behind an interval far beyond it.
	MaxPlausibleClaimDurationSeconds = 365 * 24 * 60 * 60
)

type FarmTokenInfo struct {
	Mint         solana.PublicKey
	Decimals     uint64
	TokenProgram solana.PublicKey
	Padding      [6]uint64
}

type RewardPerTimeUnitPoint struct {
	TsStart           uint64
	RewardPerTimeUnit uint64
}

type RewardScheduleCurve struct {
	Points [20]RewardPerTimeUnitPoint
}

type RewardInfo struct {
	Token                    FarmTokenInfo
	RewardsVault             solana.PublicKey
	RewardsAvailable         uint64
	RewardScheduleCurve      RewardScheduleCurve
	MinClaimDurationSeconds  uint64
	LastIssuanceTs           uint64
	RewardsIssuedUnclaimed   uint64
	RewardsIssuedCumulative  uint64
	RewardPerShareScaled     bin.Uint128
	Placeholder0             uint64
	RewardType               uint8
	RewardsPerSecondDecimals uint8
	Padding0                 [6]uint8
	Padding1                 [20]uint64
}

type FarmStateLayout struct {
	Discriminator                    [8]byte
	FarmAdmin                        solana.PublicKey
	GlobalConfig                     solana.PublicKey
	Token                            FarmTokenInfo
	RewardInfos                      [MaxRewardTokens]RewardInfo
	NumRewardTokens                  uint64
	NumUsers                         uint64
	TotalStakedAmount                uint64
	FarmVault                        solana.PublicKey
	FarmVaultsAuthority              solana.PublicKey
	FarmVaultsAuthorityBump          uint64
	DelegateAuthority                solana.PublicKey
	TimeUnit                         uint8
	IsFarmFrozen                     uint8
	IsFarmDelegated                  uint8
	Padding0                         [5]uint8
	WithdrawAuthority                solana.PublicKey
	DepositWarmupPeriod              uint32
	WithdrawalCooldownPeriod         uint32
	TotalActiveStakeScaled           bin.Uint128
	TotalPendingStakeScaled          bin.Uint128
	TotalPendingAmount               uint64
	SlashedAmountCurrent             uint64
	SlashedAmountCumulative          uint64
	SlashedAmountSpillAddress        solana.PublicKey
	LockingMode                      uint64
	LockingStartTimestamp            uint64
	LockingDuration                  uint64
	LockingEarlyWithdrawalPenaltyBps uint64
	DepositCapAmount                 uint64
	ScopePrices                      solana.PublicKey
	ScopeOraclePriceId               uint64
	ScopeOracleMaxAge                uint64
	PendingFarmAdmin                 solana.PublicKey
	StrategyId                       solana.PublicKey
	DelegatedRpsAdmin                solana.PublicKey
	VaultId                          solana.PublicKey
	SecondDelegatedAuthority         solana.PublicKey
	Padding                          [74]uint64
}

func (FarmStateLayout) AccountName() string {
	return "FarmState"
}

type FarmUserLayout struct {
	Discriminator                  [8]byte
	UserId                         uint64
	FarmState                      solana.PublicKey
	Owner                          solana.PublicKey
	IsFarmDelegated                uint8
	Padding0                       [7]uint8
	RewardsTallyScaled             [MaxRewardTokens]bin.Uint128
	RewardsIssuedUnclaimed         [MaxRewardTokens]uint64
	LastClaimTs                    [MaxRewardTokens]uint64
	ActiveStakeScaled              bin.Uint128
	PendingDepositStakeScaled      bin.Uint128
	PendingDepositStakeTs          uint64
	PendingWithdrawalUnstakeScaled bin.Uint128
	PendingWithdrawalUnstakeTs     uint64
	Bump                           uint64
	Delegatee                      solana.PublicKey
	LastStakeTs                    uint64
	Padding1                       [50]uint64
}

func (FarmUserLayout) AccountName() string {
	return "UserState"
}

func init() {
	assert.LayoutSize("FarmState", layout.MustSizeOf(FarmStateLayout{}), FarmStateSize)
	assert.LayoutSize("UserState", layout.MustSizeOf(FarmUserLayout{}), FarmUserSize)
}

// Reward is an enabled reward slot of a farm.
type Reward struct {
	Index                   int
	Mint                    solana.PublicKey
	TokenProgram            solana.PublicKey
	Vault                   solana.PublicKey
	MinClaimDurationSeconds uint64
}

type FarmState struct {
	Address solana.PublicKey
	state   FarmStateLayout
}

func DecodeFarmState(address solana.PublicKey, data []byte) (*FarmState, error) {
	farm := &FarmState{Address: address}
	if err := layout.Decode(data, &farm.state); err != nil {
		return nil, err
	}
	return farm, nil
}

func (f *FarmState) GlobalConfig() solana.PublicKey {
	return f.state.GlobalConfig
}

func (f *FarmState) FarmTokenMint() solana.PublicKey {
	return f.state.Token.Mint
}

func (f *FarmState) FarmVault() solana.PublicKey {
	return f.state.FarmVault
}

func (f *FarmState) ScopePrices() (solana.PublicKey, bool) {
	return f.state.ScopePrices, !layout.IsSentinel(f.state.ScopePrices)
}

func (f *FarmState) TotalActiveStake() fraction.Fraction {
	return fraction.FromUint128(f.state.TotalActiveStakeScaled)
}

// ActiveRewards skips slots without a mint and slots whose claim interval
// marks them as retired.
func (f *FarmState) ActiveRewards() []Reward {
	var rewards []Reward
	for idx := range f.state.RewardInfos {
		info := &f.state.RewardInfos[idx]
		if layout.IsSentinel(info.Token.Mint) || info.MinClaimDurationSeconds > MaxPlausibleClaimDurationSeconds {
			continue
		}
		rewards = append(rewards, Reward{
			Index:                   idx,
			Mint:                    info.Token.Mint,
			TokenProgram:            info.Token.TokenProgram,
			Vault:                   info.RewardsVault,
			MinClaimDurationSeconds: info.MinClaimDurationSeconds,
		})
	}
	return rewards
}

type FarmUser struct {
	Address solana.PublicKey
	state   FarmUserLayout
}

func DecodeFarmUser(address solana.PublicKey, data []byte) (*FarmUser, error) {
	user := &FarmUser{Address: address}
	if err := layout.Decode(data, &user.state); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *FarmUser) FarmState() solana.PublicKey {
	return u.state.FarmState
}

func (u *FarmUser) Owner() solana.PublicKey {
	return u.state.Owner
}

func (u *FarmUser) ActiveStake() fraction.Fraction {
	return fraction.FromUint128(u.state.ActiveStakeScaled)
}

// UnclaimedReward is the amount issued to the user for one reward slot.
type UnclaimedReward struct {
	Reward Reward
	Amount uint64
}

// UnclaimedRewards pairs the farm's active rewards with what the user can
// harvest; zero balances are skipped.
func (u *FarmUser) UnclaimedRewards(farm *FarmState) []UnclaimedReward {
	var unclaimed []UnclaimedReward
	for _, reward := range farm.ActiveRewards() {
		amount := u.state.RewardsIssuedUnclaimed[reward.Index]
		if amount == 0 {
			continue
		}
		unclaimed = append(unclaimed, UnclaimedReward{Reward: reward, Amount: amount})
	}
	return unclaimed
}
