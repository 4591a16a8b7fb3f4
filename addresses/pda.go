package addresses

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

func findAddress(programId solana.PublicKey, seeds ...[]byte) (solana.PublicKey, uint8) {
	address, bumpSeed, err := solana.FindProgramAddress(seeds, programId)
	if err != nil {
		return solana.PublicKey{}, 0
	}
	return address, bumpSeed
}

func u16Seed(value uint16) []byte {
	seed := make([]byte, 2)
	binary.LittleEndian.PutUint16(seed, value)
	return seed
}

func GetDriftStateAccountPublicKey(programId solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("drift_state"))
	return address
}

func GetDriftSignerPublicKey(programId solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("drift_signer"))
	return address
}

func GetUserAccountPublicKeyAndNonce(
	programId solana.PublicKey,
	authority solana.PublicKey,
	subAccountIds ...uint16,
) (solana.PublicKey, uint8) {
	var subAccountId uint16
	if len(subAccountIds) > 0 {
		subAccountId = subAccountIds[0]
	}
	return findAddress(programId, []byte("user"), authority.Bytes(), u16Seed(subAccountId))
}

func GetUserAccountPublicKey(
	programId solana.PublicKey,
	authority solana.PublicKey,
	subAccountIds ...uint16,
) solana.PublicKey {
	address, _ := GetUserAccountPublicKeyAndNonce(programId, authority, subAccountIds...)
	return address
}

func GetUserStatsAccountPublicKey(programId solana.PublicKey, authority solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("user_stats"), authority.Bytes())
	return address
}

func GetPerpMarketPublicKey(programId solana.PublicKey, marketIndex uint16) solana.PublicKey {
	address, _ := findAddress(programId, []byte("perp_market"), u16Seed(marketIndex))
	return address
}

func GetSpotMarketPublicKey(programId solana.PublicKey, marketIndex uint16) solana.PublicKey {
	address, _ := findAddress(programId, []byte("spot_market"), u16Seed(marketIndex))
	return address
}

func GetSpotMarketVaultPublicKey(programId solana.PublicKey, marketIndex uint16) solana.PublicKey {
	address, _ := findAddress(programId, []byte("spot_market_vault"), u16Seed(marketIndex))
	return address
}
