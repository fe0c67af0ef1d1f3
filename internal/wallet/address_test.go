package wallet

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestAddressFromPrivateKey(t *testing.T) {
	// First dev account of the standard test mnemonic.
	const devKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	want := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

	t.Run("derives the address", func(t *testing.T) {
		addr, err := AddressFromPrivateKey(devKey)
		require.NoError(t, err)
		require.Equal(t, want, addr)
	})

	t.Run("tolerates a 0x prefix", func(t *testing.T) {
		addr, err := AddressFromPrivateKey("0x" + devKey)
		require.NoError(t, err)
		require.Equal(t, want, addr)
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		_, err := AddressFromPrivateKey("0xnope")
		require.Error(t, err)
	})
}
