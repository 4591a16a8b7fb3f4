package layout

import (
	"bytes"
	"errors"
	"reflect"
	"sync"

	bin "github.com/gagliardetto/binary"
	goerrors "github.com/go-errors/errors"
)

var (
	ErrSizeMismatch          = errors.New("account data size mismatch")
	ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")
	ErrNotFixedSize          = errors.New("layout is not fixed size")
	ErrNotPointer            = errors.New("decode target must be a pointer")
)

// Discriminated is implemented by layouts that start with an 8-byte Anchor
// account discriminator.
type Discriminated interface {
	AccountName() string
}

var (
	uint128Type = reflect.TypeOf(bin.Uint128{})
	int128Type  = reflect.TypeOf(bin.Int128{})

	sizes sync.Map
)

// SizeOf returns the number of bytes the declared layout occupies on chain.
// Field order is the on-chain order; fields tagged `bin:"-"` are not part of
// the layout.
func SizeOf(v interface{}) (int, error) {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil {
		return 0, goerrors.Errorf("%w: nil layout", ErrNotFixedSize)
	}
	if cached, exists := sizes.Load(t); exists {
		return cached.(int), nil
	}
	size, err := sizeOfType(t, t.Name())
	if err != nil {
		return 0, err
	}
	sizes.Store(t, size)
	return size, nil
}

// MustSizeOf is SizeOf for layouts known at compile time.
func MustSizeOf(v interface{}) int {
	size, err := SizeOf(v)
	if err != nil {
		panic(err)
	}
	return size
}

func sizeOfType(t reflect.Type, path string) (int, error) {
	switch t.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		return 1, nil
	case reflect.Int16, reflect.Uint16:
		return 2, nil
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 4, nil
	case reflect.Int64, reflect.Uint64, reflect.Float64:
		return 8, nil
	case reflect.Array:
		elemSize, err := sizeOfType(t.Elem(), path+"[]")
		if err != nil {
			return 0, err
		}
		return elemSize * t.Len(), nil
	case reflect.Struct:
		if t == uint128Type || t == int128Type {
			return 16, nil
		}
		total := 0
		for idx := 0; idx < t.NumField(); idx++ {
			field := t.Field(idx)
			if field.Tag.Get("bin") == "-" {
				continue
			}
			if !field.IsExported() {
				return 0, goerrors.Errorf("%w: %s.%s is unexported", ErrNotFixedSize, path, field.Name)
			}
			fieldSize, err := sizeOfType(field.Type, path+"."+field.Name)
			if err != nil {
				return 0, err
			}
			total += fieldSize
		}
		return total, nil
	default:
		return 0, goerrors.Errorf("%w: %s has kind %s", ErrNotFixedSize, path, t.Kind())
	}
}

// Decode maps data onto the layout pointed to by v. The buffer must be
// exactly the declared size: a short or long buffer means the declaration
// drifted from the on-chain struct.
func Decode(data []byte, v interface{}) error {
	if reflect.TypeOf(v) == nil || reflect.TypeOf(v).Kind() != reflect.Ptr {
		return goerrors.Wrap(ErrNotPointer, 1)
	}
	size, err := SizeOf(v)
	if err != nil {
		return err
	}
	name := reflect.TypeOf(v).Elem().Name()
	if len(data) != size {
		return goerrors.Errorf("%w: %s expects %d bytes, got %d", ErrSizeMismatch, name, size, len(data))
	}
	if discriminated, ok := v.(Discriminated); ok {
		expected := AccountDiscriminator(discriminated.AccountName())
		if !bytes.Equal(data[:DiscriminatorSize], expected[:]) {
			return goerrors.Errorf("%w: %s expects %x, got %x", ErrDiscriminatorMismatch, name, expected, data[:DiscriminatorSize])
		}
	}
	if err = bin.NewBinDecoder(data).Decode(v); err != nil {
		return goerrors.WrapPrefix(err, "decode "+name, 0)
	}
	return nil
}
