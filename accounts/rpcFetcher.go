package accounts

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"

	"glamgo/utils"
)

const GET_MULTIPLE_ACCOUNTS_CHUNK_SIZE = 100

type RpcFetcher struct {
	connection *rpc.Client
	commitment rpc.CommitmentType
	chunkSize  int
}

func NewRpcFetcher(connection *rpc.Client, commitment rpc.CommitmentType, chunkSize int) *RpcFetcher {
	if chunkSize <= 0 || chunkSize > GET_MULTIPLE_ACCOUNTS_CHUNK_SIZE {
		chunkSize = GET_MULTIPLE_ACCOUNTS_CHUNK_SIZE
	}
	return &RpcFetcher{
		connection: connection,
		commitment: commitment,
		chunkSize:  chunkSize,
	}
}

func (p *RpcFetcher) GetMultipleAccounts(
	ctx context.Context,
	addresses []solana.PublicKey,
) ([]*BufferAndSlot, error) {
	results := make([]*BufferAndSlot, 0, len(addresses))
	for _, chunk := range utils.Chunks(addresses, p.chunkSize) {
		rpcResponse, err := p.connection.GetMultipleAccountsWithOpts(
			ctx,
			chunk,
			&rpc.GetMultipleAccountsOpts{
				Encoding:   solana.EncodingBase64Zstd,
				Commitment: p.commitment,
			},
		)
		if err != nil {
			return nil, errors.WrapPrefix(err, "getMultipleAccounts", 0)
		}
		if len(rpcResponse.Value) != len(chunk) {
			return nil, errors.Errorf("getMultipleAccounts returned %d accounts for %d keys", len(rpcResponse.Value), len(chunk))
		}
		slot := rpcResponse.Context.Slot
		for _, accountInfo := range rpcResponse.Value {
			if accountInfo == nil || accountInfo.Data == nil {
				results = append(results, nil)
				continue
			}
			results = append(results, &BufferAndSlot{
				Buffer: accountInfo.Data.GetBinary(),
				Slot:   slot,
			})
		}
	}
	return results, nil
}
