package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default(EnvDevnet)
	assert.Equal(t, "https://api.devnet.solana.com", cfg.Connection.GetRpcEndpoint())
	assert.Equal(t, rpc.CommitmentConfirmed, cfg.Commitment)
	assert.Equal(t, 2*time.Second, cfg.BlockhashTTL())
	assert.Equal(t, 100, cfg.FetchChunkSize)

	programs, err := cfg.ProgramIds()
	require.NoError(t, err)
	assert.Equal(t, solana.MustPublicKeyFromBase58(DRIFT_PROGRAM_ID), programs.Drift)
	assert.Equal(t, solana.MustPublicKeyFromBase58("8zGuJQqwhZafTah7Uc7Z4tXRnguqkn5KLFAP8oV6PHe2"), programs.UsdcMint)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
env: mainnet-beta
connection:
  host: rpc.example.org
  token: secret
  isSecure: true
  maxReferrer: 4
commitment: finalized
production: true
blockhashTtlMs: 500
fetchChunkSize: 250
programs:
  kaminoLend: SLendK7ySfcEzyaFqy93gDnD3RtrpXJcnRwb6zFHJSh
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, EnvMainnetBeta, cfg.Env)
	assert.Equal(t, "https://rpc.example.org/secret", cfg.Connection.GetRpcEndpoint())
	assert.Equal(t, 4, cfg.Connection.MaxReferrer)
	assert.Equal(t, rpc.CommitmentFinalized, cfg.Commitment)
	assert.True(t, cfg.Production)
	assert.Equal(t, 500*time.Millisecond, cfg.BlockhashTTL())
	assert.Equal(t, 100, cfg.FetchChunkSize)

	programs, err := cfg.ProgramIds()
	require.NoError(t, err)
	assert.Equal(t, solana.MustPublicKeyFromBase58("SLendK7ySfcEzyaFqy93gDnD3RtrpXJcnRwb6zFHJSh"), programs.KaminoLend)
	assert.Equal(t, solana.MustPublicKeyFromBase58(KAMINO_VAULT_PROGRAM_ID), programs.KaminoVault)
}

func TestLoadDefaultsEnv(t *testing.T) {
	cfg, err := Load(writeConfig(t, "production: false\n"))
	require.NoError(t, err)
	assert.Equal(t, EnvMainnetBeta, cfg.Env)
	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.Connection.GetRpcEndpoint())
}

func TestLoadErrors(t *testing.T) {
	for name, content := range map[string]string{
		"unknown env":        "env: testnet\n",
		"bad commitment":     "commitment: recent-ish\n",
		"bad program id":     "programs:\n  drift: not-a-key\n",
		"malformed document": "env: [devnet\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}

	_, err := Load("")
	assert.Error(t, err)
	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
