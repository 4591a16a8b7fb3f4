package fraction

import (
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/shopspring/decimal"
)

// FractionalBits is the implicit binary scale of every Kamino `_sf`/`_bsf` field.
const FractionalBits = 60

var (
	one        = big.NewInt(1)
	scale      = new(big.Int).Lsh(one, FractionalBits)
	decimalMul = new(big.Int).Exp(big.NewInt(5), big.NewInt(FractionalBits), nil)
)

// Fraction is a value stored on chain as raw * 2^-60. It is carried opaquely
// and only converted at the point of display or further math.
type Fraction struct {
	raw *big.Int
}

func New(raw *big.Int) Fraction {
	if raw == nil {
		return Zero()
	}
	return Fraction{raw: new(big.Int).Set(raw)}
}

func Zero() Fraction {
	return Fraction{raw: new(big.Int)}
}

// FromInt returns the fraction representing the whole number n.
func FromInt(n *big.Int) Fraction {
	return Fraction{raw: new(big.Int).Lsh(n, FractionalBits)}
}

func FromUint128(value bin.Uint128) Fraction {
	return Fraction{raw: value.BigInt()}
}

// FromWords reads a little-endian multi-word big fraction (`BigFractionBytes.value`).
func FromWords(words []uint64) Fraction {
	raw := new(big.Int)
	for idx := len(words) - 1; idx >= 0; idx-- {
		raw.Lsh(raw, 64)
		raw.Or(raw, new(big.Int).SetUint64(words[idx]))
	}
	return Fraction{raw: raw}
}

func (f Fraction) value() *big.Int {
	if f.raw == nil {
		return new(big.Int)
	}
	return f.raw
}

// Raw returns a copy of the scaled integer.
func (f Fraction) Raw() *big.Int {
	return new(big.Int).Set(f.value())
}

func (f Fraction) IsZero() bool {
	return f.value().Sign() == 0
}

func (f Fraction) Cmp(other Fraction) int {
	return f.value().Cmp(other.value())
}

func (f Fraction) Add(other Fraction) Fraction {
	return Fraction{raw: new(big.Int).Add(f.value(), other.value())}
}

func (f Fraction) Sub(other Fraction) Fraction {
	return Fraction{raw: new(big.Int).Sub(f.value(), other.value())}
}

func (f Fraction) MulInt(n *big.Int) Fraction {
	return Fraction{raw: new(big.Int).Mul(f.value(), n)}
}

// QuoInt divides by a whole number, truncating toward zero.
func (f Fraction) QuoInt(n *big.Int) Fraction {
	return Fraction{raw: new(big.Int).Quo(f.value(), n)}
}

// Mul multiplies two fractions, truncating the extra fractional bits.
func (f Fraction) Mul(other Fraction) Fraction {
	product := new(big.Int).Mul(f.value(), other.value())
	return Fraction{raw: product.Quo(product, scale)}
}

// Floor drops the fractional part, truncating toward zero.
func (f Fraction) Floor() *big.Int {
	return new(big.Int).Quo(f.value(), scale)
}

// ToDecimal is the exact value raw / 2^60. Since 2^-60 = 5^60 * 10^-60 the
// result needs no rounding.
func (f Fraction) ToDecimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).Mul(f.value(), decimalMul), -FractionalBits)
}

func (f Fraction) String() string {
	return f.ToDecimal().String()
}
