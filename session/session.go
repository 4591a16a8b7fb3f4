package session

import (
	"github.com/gagliardetto/solana-go"
	"github.com/go-errors/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"glamgo/accounts"
	"glamgo/addresses"
	"glamgo/blockhash"
	"glamgo/config"
	"glamgo/connection"
	"glamgo/drift"
	"glamgo/kamino"
	"glamgo/kvault"
	"glamgo/logger"
	"glamgo/remaining"
	"glamgo/utils"
)

type Options struct {
	Config config.Config
	// Fetcher replaces the rpc account fetcher, e.g. with a MemoryFetcher.
	Fetcher accounts.Fetcher
	// BlockhashSource replaces the rpc client for blockhash lookups.
	BlockhashSource blockhash.Source
	Logger          *zap.Logger
	Registerer      prometheus.Registerer
}

// Session owns every cache for one client. Caches are never shared between
// sessions.
type Session struct {
	config   config.Config
	programs *config.Programs
	logger   *zap.Logger

	Obligations *accounts.Cache[kamino.Obligation]
	Reserves    *accounts.Cache[kamino.Reserve]
	FarmStates  *accounts.Cache[kamino.FarmState]
	FarmUsers   *accounts.Cache[kamino.FarmUser]
	Vaults      *accounts.Cache[kvault.VaultState]
	DriftUsers  *accounts.Cache[drift.User]
	SpotMarkets *accounts.Cache[drift.SpotMarket]
	PerpMarkets *accounts.Cache[drift.PerpMarket]

	Resolver  *remaining.Resolver
	Blockhash *blockhash.Provider
}

func New(options Options) (*Session, error) {
	cfg := options.Config
	programs, err := cfg.ProgramIds()
	if err != nil {
		return nil, err
	}

	log := options.Logger
	if log == nil {
		if log, err = logger.New(cfg.Production); err != nil {
			return nil, errors.WrapPrefix(err, "build logger", 0)
		}
	}

	fetcher := options.Fetcher
	source := options.BlockhashSource
	if fetcher == nil || source == nil {
		manager := connection.CreateManager()
		client := manager.GetRpc(manager.AddConfig(cfg.Connection))
		fetcher = utils.TT[accounts.Fetcher](fetcher == nil, accounts.NewRpcFetcher(client, cfg.Commitment, cfg.FetchChunkSize), fetcher)
		source = utils.TT[blockhash.Source](source == nil, client, source)
	}

	metrics := accounts.NewMetrics(options.Registerer)
	cacheConfig := func(name string) accounts.CacheConfig {
		return accounts.CacheConfig{Name: name, Logger: log, Metrics: metrics}
	}

	p := &Session{
		config:      cfg,
		programs:    programs,
		logger:      log.Named("session"),
		Obligations: accounts.NewCache(fetcher, kamino.DecodeObligation, cacheConfig("obligations")),
		Reserves:    accounts.NewCache(fetcher, kamino.DecodeReserve, cacheConfig("reserves")),
		FarmStates:  accounts.NewCache(fetcher, kamino.DecodeFarmState, cacheConfig("farm_states")),
		FarmUsers:   accounts.NewCache(fetcher, kamino.DecodeFarmUser, cacheConfig("farm_users")),
		Vaults:      accounts.NewCache(fetcher, kvault.DecodeVaultState, cacheConfig("vaults")),
		DriftUsers:  accounts.NewCache(fetcher, drift.DecodeUser, cacheConfig("drift_users")),
		SpotMarkets: accounts.NewCache(fetcher, drift.DecodeSpotMarket, cacheConfig("spot_markets")),
		PerpMarkets: accounts.NewCache(fetcher, drift.DecodePerpMarket, cacheConfig("perp_markets")),
		Blockhash: blockhash.NewProvider(blockhash.ProviderConfig{
			Source:     source,
			Commitment: &cfg.Commitment,
			TTL:        utils.NewPtr(cfg.BlockhashTTL()),
			Logger:     log,
		}),
	}
	p.Resolver = remaining.NewResolver(remaining.Caches{
		Obligations: p.Obligations,
		Reserves:    p.Reserves,
		Vaults:      p.Vaults,
		DriftUsers:  p.DriftUsers,
		SpotMarkets: p.SpotMarkets,
		PerpMarkets: p.PerpMarkets,
	}, programs.Drift, log)

	p.logger.Info("session ready",
		zap.String("env", string(cfg.Env)),
		zap.String("commitment", string(cfg.Commitment)),
		zap.Stringer("kaminoLend", programs.KaminoLend),
		zap.Stringer("drift", programs.Drift),
	)
	return p, nil
}

func (p *Session) Config() config.Config {
	return p.config
}

func (p *Session) Programs() config.Programs {
	return *p.programs
}

func (p *Session) ObligationAddress(market solana.PublicKey, owner solana.PublicKey) solana.PublicKey {
	return addresses.GetObligationPublicKey(p.programs.KaminoLend, market, owner)
}

func (p *Session) FarmUserAddress(farm solana.PublicKey, owner solana.PublicKey) solana.PublicKey {
	return addresses.GetFarmUserStatePublicKey(p.programs.KaminoFarms, farm, owner)
}

func (p *Session) DriftUserAddress(authority solana.PublicKey, subAccountId uint16) solana.PublicKey {
	return addresses.GetUserAccountPublicKey(p.programs.Drift, authority, subAccountId)
}

func (p *Session) SpotMarketAddress(marketIndex uint16) solana.PublicKey {
	return addresses.GetSpotMarketAddress(p.programs.Drift, marketIndex)
}

func (p *Session) PerpMarketAddress(marketIndex uint16) solana.PublicKey {
	return addresses.GetPerpMarketAddress(p.programs.Drift, marketIndex)
}

// Reset drops every cached account and the cached blockhash.
func (p *Session) Reset() {
	p.Obligations.Clear()
	p.Reserves.Clear()
	p.FarmStates.Clear()
	p.FarmUsers.Clear()
	p.Vaults.Clear()
	p.DriftUsers.Clear()
	p.SpotMarkets.Clear()
	p.PerpMarkets.Clear()
	p.Blockhash.Invalidate()
}
