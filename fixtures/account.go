// Package fixtures builds raw account buffers for tests. Values are written
// at the byte offsets the programs use, independent of the Go declarations
// they are decoded with.
package fixtures

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"glamgo/layout"
)

type Account struct {
	data []byte
}

// New allocates a zeroed buffer of size bytes; a non-empty accountName
// stamps its Anchor discriminator.
func New(size int, accountName string) *Account {
	account := &Account{data: make([]byte, size)}
	if accountName != "" {
		discriminator := layout.AccountDiscriminator(accountName)
		copy(account.data, discriminator[:])
	}
	return account
}

func (a *Account) PutKey(offset int, key solana.PublicKey) *Account {
	copy(a.data[offset:offset+32], key[:])
	return a
}

func (a *Account) PutU8(offset int, value uint8) *Account {
	a.data[offset] = value
	return a
}

func (a *Account) PutU16(offset int, value uint16) *Account {
	binary.LittleEndian.PutUint16(a.data[offset:], value)
	return a
}

func (a *Account) PutU32(offset int, value uint32) *Account {
	binary.LittleEndian.PutUint32(a.data[offset:], value)
	return a
}

func (a *Account) PutU64(offset int, value uint64) *Account {
	binary.LittleEndian.PutUint64(a.data[offset:], value)
	return a
}

func (a *Account) PutI64(offset int, value int64) *Account {
	return a.PutU64(offset, uint64(value))
}

func (a *Account) PutU128(offset int, lo uint64, hi uint64) *Account {
	binary.LittleEndian.PutUint64(a.data[offset:], lo)
	binary.LittleEndian.PutUint64(a.data[offset+8:], hi)
	return a
}

// PutScaled writes whole << 60 as an unsigned 128-bit fraction.
func (a *Account) PutScaled(offset int, whole uint64) *Account {
	return a.PutU128(offset, whole<<60, whole>>4)
}

func (a *Account) PutString(offset int, value string) *Account {
	copy(a.data[offset:], value)
	return a
}

func (a *Account) Bytes() []byte {
	return a.data
}

// Key derives a stable address from a label.
func Key(label string) solana.PublicKey {
	return solana.PublicKey(sha256.Sum256([]byte(label)))
}
