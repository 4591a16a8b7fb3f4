package addresses

import (
	"github.com/gagliardetto/solana-go"
)

// GetObligationPublicKey derives the vanilla obligation of owner in market:
// tag 0, id 0 and no seed accounts.
func GetObligationPublicKey(
	programId solana.PublicKey,
	market solana.PublicKey,
	owner solana.PublicKey,
) solana.PublicKey {
	address, _ := findAddress(
		programId,
		[]byte{0},
		[]byte{0},
		owner.Bytes(),
		market.Bytes(),
		solana.PublicKey{}.Bytes(),
		solana.PublicKey{}.Bytes(),
	)
	return address
}

func GetLendingMarketAuthorityPublicKey(programId solana.PublicKey, market solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("lma"), market.Bytes())
	return address
}

func GetFarmUserStatePublicKey(
	programId solana.PublicKey,
	farmState solana.PublicKey,
	owner solana.PublicKey,
) solana.PublicKey {
	address, _ := findAddress(programId, []byte("user"), farmState.Bytes(), owner.Bytes())
	return address
}

func GetVaultCTokenVaultPublicKey(
	programId solana.PublicKey,
	vault solana.PublicKey,
	reserve solana.PublicKey,
) solana.PublicKey {
	address, _ := findAddress(programId, []byte("ctoken_vault"), vault.Bytes(), reserve.Bytes())
	return address
}

func GetVaultTokenVaultPublicKey(programId solana.PublicKey, vault solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("token_vault"), vault.Bytes())
	return address
}

func GetVaultBaseAuthorityPublicKey(programId solana.PublicKey, vault solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("authority"), vault.Bytes())
	return address
}

func GetVaultSharesMintPublicKey(programId solana.PublicKey, vault solana.PublicKey) solana.PublicKey {
	address, _ := findAddress(programId, []byte("shares"), vault.Bytes())
	return address
}
