package layout

import (
	"strings"

	"github.com/gagliardetto/solana-go"
)

// TrimmedString reads a fixed-length character array, dropping the NUL and
// space fill after the text.
func TrimmedString(chars []byte) string {
	return strings.TrimRight(string(chars), "\x00 ")
}

// IsSentinel reports whether key is the default address used to mark an
// unused fixed-capacity slot.
func IsSentinel(key solana.PublicKey) bool {
	return key.IsZero()
}

// Active returns the slots whose key is not the sentinel, in slot order.
func Active[T any](slots []T, key func(*T) solana.PublicKey) []T {
	active := make([]T, 0, len(slots))
	for idx := range slots {
		if IsSentinel(key(&slots[idx])) {
			continue
		}
		active = append(active, slots[idx])
	}
	return active
}
