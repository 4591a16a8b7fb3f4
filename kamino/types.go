package kamino

import (
	"glamgo/fraction"
)

type LastUpdate struct {
	Slot        uint64
	Stale       uint8
	PriceStatus uint8
	Placeholder [6]uint8
}

// BigFractionBytes is a 256-bit scaled fraction followed by reserved words.
type BigFractionBytes struct {
	Value   [4]uint64
	Padding [2]uint64
}

func (b BigFractionBytes) Fraction() fraction.Fraction {
	return fraction.FromWords(b.Value[:])
}
