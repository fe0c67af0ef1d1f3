package storage

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// DefaultNamespace is the diamond storage position of the allow-list struct.
// The struct's base slot is keccak256 of this string, following the namespaced
// storage pattern used by diamond facets.
const DefaultNamespace = "com.diamond.ops.allow.list"

// Field offsets of the two dynamic arrays inside the allow-list storage
// struct. They mirror the struct declaration order of the on-chain facet
// exactly; if the facet ever reorders or inserts fields, these reads return
// wrong data without any error. Cross-check against the facet source when
// upgrading the diamond.
const (
	ContractsFieldOffset uint64 = 2
	SelectorsFieldOffset uint64 = 5
)

// Layout pins the storage coordinates of the allow-list struct.
type Layout struct {
	Namespace       string
	ContractsOffset uint64
	SelectorsOffset uint64
}

func DefaultLayout() Layout {
	return Layout{
		Namespace:       DefaultNamespace,
		ContractsOffset: ContractsFieldOffset,
		SelectorsOffset: SelectorsFieldOffset,
	}
}

// BaseSlot is the first slot of the allow-list struct.
func (l Layout) BaseSlot() common.Hash {
	return crypto.Keccak256Hash([]byte(l.Namespace))
}

// ContractsLengthSlot holds the element count of the approved-contracts array.
func (l Layout) ContractsLengthSlot() common.Hash {
	return addToSlot(l.BaseSlot(), l.ContractsOffset)
}

// SelectorsLengthSlot holds the element count of the approved-selectors array.
func (l Layout) SelectorsLengthSlot() common.Hash {
	return addToSlot(l.BaseSlot(), l.SelectorsOffset)
}

// ElementBaseSlot is the first slot of a dynamic array's element region. Per
// the storage convention, elements start at keccak256 of the 32-byte encoding
// of the length slot, not at the length slot itself.
func ElementBaseSlot(lengthSlot common.Hash) common.Hash {
	return crypto.Keccak256Hash(lengthSlot.Bytes())
}

// ElementSlot returns the slot of element i within an array region.
func ElementSlot(base common.Hash, i uint64) common.Hash {
	return addToSlot(base, i)
}

// addToSlot adds n to a 256-bit slot value, wrapping mod 2^256.
func addToSlot(slot common.Hash, n uint64) common.Hash {
	v := new(big.Int).SetBytes(slot.Bytes())
	v.Add(v, new(big.Int).SetUint64(n))
	return common.BigToHash(v)
}
