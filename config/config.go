package config

import (
	"os"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/go-errors/errors"
	"gopkg.in/yaml.v3"

	"glamgo/accounts"
	"glamgo/blockhash"
	"glamgo/connection"
)

type Config struct {
	Env            Env                `yaml:"env"`
	Connection     connection.Config  `yaml:"connection"`
	Commitment     rpc.CommitmentType `yaml:"commitment"`
	Production     bool               `yaml:"production"`
	BlockhashTTLMs int64              `yaml:"blockhashTtlMs"`
	FetchChunkSize int                `yaml:"fetchChunkSize"`
	// Programs overrides the env's program ids field by field.
	Programs ProgramConfig `yaml:"programs"`
}

// Programs are the parsed program ids a session talks to.
type Programs struct {
	KaminoLend  solana.PublicKey
	KaminoFarms solana.PublicKey
	KaminoVault solana.PublicKey
	Drift       solana.PublicKey
	UsdcMint    solana.PublicKey
}

var defaultHosts = map[Env]string{
	EnvDevnet:      "api.devnet.solana.com",
	EnvMainnetBeta: "api.mainnet-beta.solana.com",
}

func Default(env Env) Config {
	cfg := Config{
		Env: env,
		Connection: connection.Config{
			Host:     defaultHosts[env],
			IsSecure: true,
		},
	}
	cfg.normalize()
	return cfg
}

// Load reads a YAML config. Missing fields take the defaults of the
// configured env.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.Errorf("config path required")
	}
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.WrapPrefix(err, "open config", 0)
	}
	defer file.Close()

	var cfg Config
	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return Config{}, errors.WrapPrefix(err, "decode config", 0)
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg *Config) normalize() {
	cfg.Env = Env(strings.TrimSpace(string(cfg.Env)))
	if cfg.Env == EnvNone {
		cfg.Env = EnvMainnetBeta
	}
	cfg.Connection.Host = strings.TrimSpace(cfg.Connection.Host)
	if cfg.Connection.Host == "" {
		cfg.Connection.Host = defaultHosts[cfg.Env]
		cfg.Connection.IsSecure = true
	}
	if cfg.Commitment == "" {
		cfg.Commitment = rpc.CommitmentConfirmed
	}
	if cfg.BlockhashTTLMs <= 0 {
		cfg.BlockhashTTLMs = blockhash.DefaultTTL.Milliseconds()
	}
	if cfg.FetchChunkSize <= 0 || cfg.FetchChunkSize > accounts.GET_MULTIPLE_ACCOUNTS_CHUNK_SIZE {
		cfg.FetchChunkSize = accounts.GET_MULTIPLE_ACCOUNTS_CHUNK_SIZE
	}
}

func (cfg *Config) validate() error {
	if _, exists := ProgramConfigs[cfg.Env]; !exists {
		return errors.Errorf("unknown env %q", cfg.Env)
	}
	switch cfg.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return errors.Errorf("unsupported commitment %q", cfg.Commitment)
	}
	_, err := cfg.ProgramIds()
	return err
}

func (cfg *Config) BlockhashTTL() time.Duration {
	return time.Duration(cfg.BlockhashTTLMs) * time.Millisecond
}

// ProgramIds resolves the env's program ids with overrides applied.
func (cfg *Config) ProgramIds() (*Programs, error) {
	programs := ProgramConfigs[cfg.Env].merge(cfg.Programs)
	var parsed Programs
	for _, field := range []struct {
		name   string
		value  string
		target *solana.PublicKey
	}{
		{"kaminoLend", programs.KaminoLend, &parsed.KaminoLend},
		{"kaminoFarms", programs.KaminoFarms, &parsed.KaminoFarms},
		{"kaminoVault", programs.KaminoVault, &parsed.KaminoVault},
		{"drift", programs.Drift, &parsed.Drift},
		{"usdcMint", programs.UsdcMint, &parsed.UsdcMint},
	} {
		key, err := solana.PublicKeyFromBase58(field.value)
		if err != nil {
			return nil, errors.WrapPrefix(err, "programs."+field.name, 0)
		}
		*field.target = key
	}
	return &parsed, nil
}
