package approve

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestParseEntries(t *testing.T) {
	t.Run("parses addresses and hex selectors", func(t *testing.T) {
		desired, err := ParseEntries(Entries{
			Contracts: []string{"0x7a250d5630B4cF539739dF2C5dAcb4c659F2488D"},
			Selectors: []string{"0xa9059cbb"},
		})
		require.NoError(t, err)
		require.Equal(t, []common.Address{common.HexToAddress("0x7a250d5630b4cf539739df2c5dacb4c659f2488d")}, desired.Contracts)
		require.Equal(t, [][4]byte{{0xa9, 0x05, 0x9c, 0xbb}}, desired.Selectors)
	})

	t.Run("hashes function signatures to selectors", func(t *testing.T) {
		desired, err := ParseEntries(Entries{
			Selectors: []string{"transfer(address,uint256)"},
		})
		require.NoError(t, err)
		require.Equal(t, [][4]byte{{0xa9, 0x05, 0x9c, 0xbb}}, desired.Selectors)
	})

	t.Run("collapses duplicates keeping first occurrence order", func(t *testing.T) {
		desired, err := ParseEntries(Entries{
			Contracts: []string{
				"0x1111111254eeb25477b68fb85ed929f73a960582",
				"0x7a250d5630b4cf539739df2c5dacb4c659f2488d",
				"0x1111111254EEB25477B68fb85Ed929f73A960582",
			},
			Selectors: []string{"0xa9059cbb", "transfer(address,uint256)"},
		})
		require.NoError(t, err)
		require.Equal(t, []common.Address{
			common.HexToAddress("0x1111111254eeb25477b68fb85ed929f73a960582"),
			common.HexToAddress("0x7a250d5630b4cf539739df2c5dacb4c659f2488d"),
		}, desired.Contracts)
		require.Len(t, desired.Selectors, 1)
	})

	t.Run("rejects malformed entries", func(t *testing.T) {
		_, err := ParseEntries(Entries{Contracts: []string{"not-an-address"}})
		require.ErrorContains(t, err, "invalid contract address")

		_, err = ParseEntries(Entries{Selectors: []string{"0xaabb"}})
		require.ErrorContains(t, err, "want 4 bytes")

		_, err = ParseEntries(Entries{Selectors: []string{"0xzzzzzzzz"}})
		require.ErrorContains(t, err, "invalid selector")

		_, err = ParseEntries(Entries{Selectors: []string{"justaname"}})
		require.ErrorContains(t, err, "neither 4-byte hex nor a function signature")
	})
}

func TestBuildPlan(t *testing.T) {
	first := common.HexToAddress("0x1111111254eeb25477b68fb85ed929f73a960582")
	second := common.HexToAddress("0x7a250d5630b4cf539739df2c5dacb4c659f2488d")
	transfer := [4]byte{0xa9, 0x05, 0x9c, 0xbb}
	approve := [4]byte{0x09, 0x5e, 0xa7, 0xb3}

	desired := Desired{
		Contracts: []common.Address{first, second},
		Selectors: [][4]byte{transfer, approve},
	}

	t.Run("keeps only unapproved entries in order", func(t *testing.T) {
		plan := BuildPlan(desired,
			map[common.Address]bool{first: true},
			map[[4]byte]bool{approve: true},
		)
		require.Equal(t, []common.Address{second}, plan.Contracts)
		require.Equal(t, [][4]byte{transfer}, plan.Selectors)
		require.False(t, plan.Empty())
	})

	t.Run("fully approved whitelist yields an empty plan", func(t *testing.T) {
		plan := BuildPlan(desired,
			map[common.Address]bool{first: true, second: true},
			map[[4]byte]bool{transfer: true, approve: true},
		)
		require.True(t, plan.Empty())
	})

	t.Run("nothing approved keeps everything", func(t *testing.T) {
		plan := BuildPlan(desired, nil, nil)
		require.Equal(t, desired.Contracts, plan.Contracts)
		require.Equal(t, desired.Selectors, plan.Selectors)
	})
}
