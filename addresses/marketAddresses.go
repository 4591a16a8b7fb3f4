package addresses

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// market PDAs are derived on every Drift resolution; derivation hashes until
// it falls off the curve, so results are memoized per program and index.
var marketAddressCache sync.Map

func cachedMarketAddress(
	kind string,
	programId solana.PublicKey,
	marketIndex uint16,
	derive func(solana.PublicKey, uint16) solana.PublicKey,
) solana.PublicKey {
	cacheKey := fmt.Sprintf("%s-%s-%d", kind, programId.String(), marketIndex)
	if address, exists := marketAddressCache.Load(cacheKey); exists {
		return address.(solana.PublicKey)
	}
	publicKey := derive(programId, marketIndex)
	marketAddressCache.Store(cacheKey, publicKey)
	return publicKey
}

func GetPerpMarketAddress(programId solana.PublicKey, marketIndex uint16) solana.PublicKey {
	return cachedMarketAddress("perp", programId, marketIndex, GetPerpMarketPublicKey)
}

func GetSpotMarketAddress(programId solana.PublicKey, marketIndex uint16) solana.PublicKey {
	return cachedMarketAddress("spot", programId, marketIndex, GetSpotMarketPublicKey)
}
