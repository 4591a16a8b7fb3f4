package kamino

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glamgo/fixtures"
)

func TestFarmActiveRewards(t *testing.T) {
	spec := fixtures.Farm{
		GlobalConfig: fixtures.Key("global-config"),
		Mint:         fixtures.Key("kusdc"),
		Rewards: []fixtures.FarmReward{
			{Slot: 0, Mint: fixtures.Key("kmno"), TokenProgram: fixtures.Key("token"), Vault: fixtures.Key("vault-0"), MinClaimDuration: 86400},
			{Slot: 2, Mint: fixtures.Key("retired"), Vault: fixtures.Key("vault-2"), MinClaimDuration: MaxPlausibleClaimDurationSeconds + 1},
			{Slot: 5, Mint: fixtures.Key("pyusd"), Vault: fixtures.Key("vault-5"), MinClaimDuration: MaxPlausibleClaimDurationSeconds},
		},
	}
	farm, err := DecodeFarmState(fixtures.Key("farm"), spec.Bytes())
	require.NoError(t, err)
	assert.Equal(t, spec.GlobalConfig, farm.GlobalConfig())
	assert.Equal(t, spec.Mint, farm.FarmTokenMint())

	rewards := farm.ActiveRewards()
	require.Len(t, rewards, 2)
	assert.Equal(t, 0, rewards[0].Index)
	assert.Equal(t, fixtures.Key("kmno"), rewards[0].Mint)
	assert.Equal(t, fixtures.Key("token"), rewards[0].TokenProgram)
	assert.Equal(t, fixtures.Key("vault-0"), rewards[0].Vault)
	assert.Equal(t, uint64(86400), rewards[0].MinClaimDurationSeconds)
	assert.Equal(t, 5, rewards[1].Index)
	assert.Equal(t, fixtures.Key("pyusd"), rewards[1].Mint)
}

func TestFarmUserUnclaimedRewards(t *testing.T) {
	farm, err := DecodeFarmState(fixtures.Key("farm"), fixtures.Farm{
		Rewards: []fixtures.FarmReward{
			{Slot: 0, Mint: fixtures.Key("kmno")},
			{Slot: 1, Mint: fixtures.Key("retired"), MinClaimDuration: MaxPlausibleClaimDurationSeconds * 10},
			{Slot: 3, Mint: fixtures.Key("pyusd")},
		},
	}.Bytes())
	require.NoError(t, err)

	userSpec := fixtures.FarmUser{
		Farm:  fixtures.Key("farm"),
		Owner: fixtures.Key("owner"),
		Stake: 12,
	}
	userSpec.Unclaimed[0] = 100
	userSpec.Unclaimed[1] = 50
	userSpec.Unclaimed[4] = 7
	user, err := DecodeFarmUser(fixtures.Key("farm-user"), userSpec.Bytes())
	require.NoError(t, err)
	assert.Equal(t, userSpec.Farm, user.FarmState())
	assert.Equal(t, userSpec.Owner, user.Owner())
	assert.Equal(t, "12", user.ActiveStake().String())

	unclaimed := user.UnclaimedRewards(farm)
	require.Len(t, unclaimed, 1)
	assert.Equal(t, fixtures.Key("kmno"), unclaimed[0].Reward.Mint)
	assert.Equal(t, uint64(100), unclaimed[0].Amount)
}
