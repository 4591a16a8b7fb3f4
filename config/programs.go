package config

type Env string

const (
	EnvNone        Env = ""
	EnvDevnet      Env = "devnet"
	EnvMainnetBeta Env = "mainnet-beta"
)

type ProgramConfig struct {
	KaminoLend  string `yaml:"kaminoLend"`
	KaminoFarms string `yaml:"kaminoFarms"`
	KaminoVault string `yaml:"kaminoVault"`
	Drift       string `yaml:"drift"`
	UsdcMint    string `yaml:"usdcMint"`
}

const (
	KAMINO_LEND_PROGRAM_ID  = "KLend2g3cP87fffoy8q1mQqGKjrxjC8boSyAYavgmjD"
	KAMINO_FARMS_PROGRAM_ID = "FarmsPZpWu9i7Kky8tPN37rs2TpmMrAZrC7S7vJa91Hr"
	KAMINO_VAULT_PROGRAM_ID = "KvauGMspG5k6rtzrqqn7WNn3oZdyKqLKwK2XWQ8FLjd"
	DRIFT_PROGRAM_ID        = "dRiftyHA39MWEi3m9aunc5MzRF1JYuBsbn6VPcn33UH"
)

var ProgramConfigs = map[Env]ProgramConfig{
	EnvDevnet: {
		KaminoLend:  KAMINO_LEND_PROGRAM_ID,
		KaminoFarms: KAMINO_FARMS_PROGRAM_ID,
		KaminoVault: KAMINO_VAULT_PROGRAM_ID,
		Drift:       DRIFT_PROGRAM_ID,
		UsdcMint:    "8zGuJQqwhZafTah7Uc7Z4tXRnguqkn5KLFAP8oV6PHe2",
	},
	EnvMainnetBeta: {
		KaminoLend:  KAMINO_LEND_PROGRAM_ID,
		KaminoFarms: KAMINO_FARMS_PROGRAM_ID,
		KaminoVault: KAMINO_VAULT_PROGRAM_ID,
		Drift:       DRIFT_PROGRAM_ID,
		UsdcMint:    "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	},
}

// merge returns p with every non-empty field of override applied.
func (p ProgramConfig) merge(override ProgramConfig) ProgramConfig {
	if override.KaminoLend != "" {
		p.KaminoLend = override.KaminoLend
	}
	if override.KaminoFarms != "" {
		p.KaminoFarms = override.KaminoFarms
	}
	if override.KaminoVault != "" {
		p.KaminoVault = override.KaminoVault
	}
	if override.Drift != "" {
		p.Drift = override.Drift
	}
	if override.UsdcMint != "" {
		p.UsdcMint = override.UsdcMint
	}
	return p
}
