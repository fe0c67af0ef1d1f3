// Package storage reconstructs the diamond's function whitelist from raw
// contract storage, without calling any contract method.
package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/diamond-ops/diamondctl/internal/logger"
	"github.com/ethereum/go-ethereum/common"
)

// StorageReader is the raw-storage view of the chain client.
// *ethclient.Client satisfies it.
type StorageReader interface {
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// AllowList is the whitelist reconstructed from storage. Addresses are
// 0x-prefixed 40-hex-char strings, selectors 0x-prefixed 8-hex-char strings,
// both lower case, in on-chain array order.
type AllowList struct {
	Contracts []string `json:"contracts"`
	Selectors []string `json:"selectors"`
}

// Reader reads the allow-list arrays element by element via eth_getStorageAt.
type Reader struct {
	client StorageReader
	layout Layout
	logger *slog.Logger
}

func NewReader(client StorageReader, layout Layout) *Reader {
	return &Reader{
		client: client,
		layout: layout,
		logger: logger.Named("storage_reader"),
	}
}

// Read reconstructs both arrays with exactly 2 + len(contracts) +
// len(selectors) storage reads against the latest block. Reads are issued
// sequentially in index order; any failed read aborts the whole operation.
func (r *Reader) Read(ctx context.Context, diamond common.Address) (*AllowList, error) {
	contracts, err := r.readArray(ctx, diamond, r.layout.ContractsLengthSlot(), decodeAddressWord)
	if err != nil {
		return nil, fmt.Errorf("failed to read approved contracts: %w", err)
	}

	selectors, err := r.readArray(ctx, diamond, r.layout.SelectorsLengthSlot(), decodeSelectorWord)
	if err != nil {
		return nil, fmt.Errorf("failed to read approved selectors: %w", err)
	}

	return &AllowList{Contracts: contracts, Selectors: selectors}, nil
}

func (r *Reader) readArray(ctx context.Context, diamond common.Address, lengthSlot common.Hash, decode func(word [32]byte) string) ([]string, error) {
	raw, err := r.client.StorageAt(ctx, diamond, lengthSlot, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read length slot %s: %w", lengthSlot, err)
	}

	// An empty response means the slot was never written: length zero.
	length := new(big.Int).SetBytes(raw)
	if !length.IsUint64() {
		return nil, fmt.Errorf("implausible array length %s at slot %s", length, lengthSlot)
	}
	n := length.Uint64()

	base := ElementBaseSlot(lengthSlot)

	r.logger.
		With("length_slot", lengthSlot).
		With("element_base", base).
		With("length", n).
		Debug("reading array from storage")

	values := make([]string, 0, n)
	for i := uint64(0); i < n; i++ {
		slot := ElementSlot(base, i)

		word, err := r.readWord(ctx, diamond, slot)
		if err != nil {
			return nil, fmt.Errorf("failed to read element %d: %w", i, err)
		}

		// Disabled legacy entries are zeroed in place rather than removed.
		// A zero word is "no value at this index", not an error.
		if word == ([32]byte{}) {
			continue
		}

		values = append(values, decode(word))
	}

	return values, nil
}

func (r *Reader) readWord(ctx context.Context, diamond common.Address, slot common.Hash) ([32]byte, error) {
	raw, err := r.client.StorageAt(ctx, diamond, slot, nil)
	if err != nil {
		return [32]byte{}, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}

	if len(raw) != 32 {
		return [32]byte{}, fmt.Errorf("storage read at slot %s returned %d bytes, want 32", slot, len(raw))
	}

	return [32]byte(raw), nil
}

// decodeAddressWord extracts the right-aligned 20-byte address.
func decodeAddressWord(word [32]byte) string {
	return "0x" + hex.EncodeToString(word[12:])
}

// decodeSelectorWord extracts the left-aligned 4-byte selector.
func decodeSelectorWord(word [32]byte) string {
	return "0x" + hex.EncodeToString(word[:4])
}
