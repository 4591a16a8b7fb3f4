package drift

import (
	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type SpotBalanceType uint8

const (
	SpotBalanceTypeDeposit SpotBalanceType = iota
	SpotBalanceTypeBorrow
)

type MarketType uint8

const (
	MarketTypeSpot MarketType = iota
	MarketTypePerp
)

type OracleSource uint8

const (
	OracleSourcePyth OracleSource = iota
	OracleSourceSwitchboard
	OracleSourceQuoteAsset
	OracleSourcePyth1K
	OracleSourcePyth1M
	OracleSourcePythStableCoin
	OracleSourcePrelaunch
	OracleSourcePythPull
	OracleSourcePyth1KPull
	OracleSourcePyth1MPull
	OracleSourcePythStableCoinPull
	OracleSourceSwitchboardOnDemand
	OracleSourcePythLazer
)

const QuoteSpotMarketIndex uint16 = 0

type HistoricalOracleData struct {
	LastOraclePrice         int64
	LastOracleConf          uint64
	LastOracleDelay         int64
	LastOraclePriceTwap     int64
	LastOraclePriceTwap5min int64
	LastOraclePriceTwapTs   int64
}

type HistoricalIndexData struct {
	LastIndexBidPrice      uint64
	LastIndexAskPrice      uint64
	LastIndexPriceTwap     uint64
	LastIndexPriceTwap5min uint64
	LastIndexPriceTwapTs   int64
}

type PoolBalance struct {
	ScaledBalance bin.Uint128
	MarketIndex   uint16
	Padding       [6]uint8
}

type InsuranceFund struct {
	Vault               solana.PublicKey
	TotalShares         bin.Uint128
	UserShares          bin.Uint128
	SharesBase          bin.Uint128
	UnstakingPeriod     int64
	LastRevenueSettleTs int64
	RevenueSettlePeriod int64
	TotalFactor         uint32
	UserFactor          uint32
}

type InsuranceClaim struct {
	RevenueWithdrawSinceLastSettle int64
	MaxRevenueWithdrawPerPeriod    uint64
	QuoteMaxInsurance              uint64
	QuoteSettledInsurance          uint64
	LastRevenueWithdrawTs          int64
}
