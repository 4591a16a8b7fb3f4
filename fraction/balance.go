package fraction

import (
	"math/big"
)

// BalanceType tells whether a scaled balance is a deposit or a borrow.
type BalanceType uint8

const (
	Deposit BalanceType = iota
	Borrow
)

// InterestPrecisionExponent is the exponent of the cumulative interest precision
// used when converting scaled balances (10^19 split between balance and mint decimals).
const InterestPrecisionExponent = 19

// PrecisionIncrease is 10^(19-decimals).
func PrecisionIncrease(decimals uint32) *big.Int {
	exponent := int64(InterestPrecisionExponent) - int64(decimals)
	if exponent < 0 {
		exponent = 0
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(exponent), nil)
}

// TokenAmount converts a scaled internal balance to a token amount:
// scaledAmount * interestFactor / 10^(19-decimals), truncated.
func TokenAmount(scaledAmount *big.Int, interestFactor *big.Int, decimals uint32) *big.Int {
	amount := new(big.Int).Mul(scaledAmount, interestFactor)
	return amount.Quo(amount, PrecisionIncrease(decimals))
}

// ScaledBalance is the inverse of TokenAmount, also truncated.
func ScaledBalance(tokenAmount *big.Int, interestFactor *big.Int, decimals uint32) *big.Int {
	if interestFactor.Sign() == 0 {
		return new(big.Int)
	}
	balance := new(big.Int).Mul(tokenAmount, PrecisionIncrease(decimals))
	return balance.Quo(balance, interestFactor)
}

// SignedTokenAmount is positive for deposits and the negated magnitude for borrows.
func SignedTokenAmount(tokenAmount *big.Int, balanceType BalanceType) *big.Int {
	if balanceType == Deposit {
		return new(big.Int).Set(tokenAmount)
	}
	magnitude := new(big.Int).Abs(tokenAmount)
	return magnitude.Neg(magnitude)
}
