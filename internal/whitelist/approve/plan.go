package approve

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type (
	// Entries is the desired-whitelist file model. Selectors may be given
	// either as 0x-prefixed 4-byte hex or as full function signatures, which
	// are hashed to selectors.
	Entries struct {
		Contracts []string `json:"contracts"`
		Selectors []string `json:"selectors"`
	}

	// Desired is the parsed, de-duplicated whitelist.
	Desired struct {
		Contracts []common.Address
		Selectors [][4]byte
	}

	// Plan holds only the entries that still need an approval transaction.
	Plan struct {
		Contracts []common.Address
		Selectors [][4]byte
	}
)

// ParseEntries validates and normalizes a desired-whitelist file. Duplicates
// are collapsed, first occurrence wins the ordering. Any malformed entry is
// an argument error; nothing is sent to the chain when parsing fails.
func ParseEntries(entries Entries) (Desired, error) {
	var desired Desired

	seenContracts := make(map[common.Address]struct{})
	for _, raw := range entries.Contracts {
		if !common.IsHexAddress(raw) {
			return Desired{}, fmt.Errorf("invalid contract address %q", raw)
		}

		addr := common.HexToAddress(raw)
		if _, ok := seenContracts[addr]; ok {
			continue
		}
		seenContracts[addr] = struct{}{}

		desired.Contracts = append(desired.Contracts, addr)
	}

	seenSelectors := make(map[[4]byte]struct{})
	for _, raw := range entries.Selectors {
		selector, err := parseSelector(raw)
		if err != nil {
			return Desired{}, err
		}

		if _, ok := seenSelectors[selector]; ok {
			continue
		}
		seenSelectors[selector] = struct{}{}

		desired.Selectors = append(desired.Selectors, selector)
	}

	return desired, nil
}

// parseSelector accepts "0xaabbccdd" or a signature like "swap(uint256,address)".
func parseSelector(raw string) ([4]byte, error) {
	var selector [4]byte

	if strings.HasPrefix(raw, "0x") {
		decoded, err := hex.DecodeString(strings.TrimPrefix(raw, "0x"))
		if err != nil {
			return selector, fmt.Errorf("invalid selector %q: %w", raw, err)
		}
		if len(decoded) != 4 {
			return selector, fmt.Errorf("invalid selector %q: want 4 bytes, got %d", raw, len(decoded))
		}

		copy(selector[:], decoded)
		return selector, nil
	}

	if !strings.Contains(raw, "(") || !strings.HasSuffix(raw, ")") {
		return selector, fmt.Errorf("selector %q is neither 4-byte hex nor a function signature", raw)
	}

	copy(selector[:], crypto.Keccak256([]byte(raw))[:4])
	return selector, nil
}

// BuildPlan drops every entry the diamond already approves, preserving the
// desired order. Re-running approve against an up-to-date diamond yields an
// empty plan and no transactions.
func BuildPlan(desired Desired, approvedContracts map[common.Address]bool, approvedSelectors map[[4]byte]bool) Plan {
	var plan Plan

	for _, addr := range desired.Contracts {
		if approvedContracts[addr] {
			continue
		}
		plan.Contracts = append(plan.Contracts, addr)
	}

	for _, selector := range desired.Selectors {
		if approvedSelectors[selector] {
			continue
		}
		plan.Selectors = append(plan.Selectors, selector)
	}

	return plan
}

// Empty reports whether the plan requires no transactions.
func (p Plan) Empty() bool {
	return len(p.Contracts) == 0 && len(p.Selectors) == 0
}
