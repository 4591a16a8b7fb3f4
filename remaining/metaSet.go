package remaining

import (
	"github.com/gagliardetto/solana-go"
)

// MetaSet is an insertion-ordered set of account metas keyed by address
// string. Adding an address again only widens its writable flag.
type MetaSet struct {
	metas solana.AccountMetaSlice
	index map[string]int
}

func NewMetaSet() *MetaSet {
	return &MetaSet{index: make(map[string]int)}
}

func (s *MetaSet) Add(key solana.PublicKey, writable bool) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if idx, exists := s.index[key.String()]; exists {
		s.metas[idx].IsWritable = s.metas[idx].IsWritable || writable
		return
	}
	s.index[key.String()] = len(s.metas)
	s.metas = append(s.metas, solana.NewAccountMeta(key, writable, false))
}

func (s *MetaSet) Has(key solana.PublicKey) bool {
	_, exists := s.index[key.String()]
	return exists
}

func (s *MetaSet) Len() int {
	return len(s.metas)
}

// Metas returns a copy of the metas in insertion order.
func (s *MetaSet) Metas() solana.AccountMetaSlice {
	metas := make(solana.AccountMetaSlice, 0, len(s.metas))
	for _, meta := range s.metas {
		metas = append(metas, solana.NewAccountMeta(meta.PublicKey, meta.IsWritable, meta.IsSigner))
	}
	return metas
}

func (s *MetaSet) Keys() []solana.PublicKey {
	return s.metas.GetKeys()
}
