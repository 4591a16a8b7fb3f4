package utils

import "github.com/gagliardetto/solana-go"

func MapKeys[K string | solana.PublicKey | int | int32 | int64 | uint | uint16 | uint32 | uint64, T any](m map[K]T) []K {
	var keys []K
	for key := range m {
		keys = append(keys, key)
	}
	return keys
}
