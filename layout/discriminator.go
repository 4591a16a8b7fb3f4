package layout

import (
	"crypto/sha256"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/iancoleman/strcase"
)

const DiscriminatorSize = 8

var discriminators sync.Map

// AccountDiscriminator is the Anchor prefix sha256("account:<Name>")[:8].
func AccountDiscriminator(accountName string) [DiscriminatorSize]byte {
	if cached, exists := discriminators.Load(accountName); exists {
		return cached.([DiscriminatorSize]byte)
	}
	hash := sha256.Sum256([]byte(fmt.Sprintf("account:%s", strcase.ToCamel(accountName))))
	var discriminator [DiscriminatorSize]byte
	copy(discriminator[:], hash[:DiscriminatorSize])
	discriminators.Store(accountName, discriminator)
	return discriminator
}

func DiscriminatorFilter(accountName string) rpc.RPCFilter {
	discriminator := AccountDiscriminator(accountName)
	return rpc.RPCFilter{
		Memcmp: &rpc.RPCFilterMemcmp{
			Offset: 0,
			Bytes:  discriminator[:],
		},
	}
}

func DataSizeFilter(size int) rpc.RPCFilter {
	return rpc.RPCFilter{
		DataSize: uint64(size),
	}
}

// ProgramAccountFilters selects every account of one layout owned by a program.
func ProgramAccountFilters(accountName string, size int) []rpc.RPCFilter {
	return []rpc.RPCFilter{
		DataSizeFilter(size),
		DiscriminatorFilter(accountName),
	}
}
