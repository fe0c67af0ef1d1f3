package configs

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg, err := DefaultConfig()
	require.NoError(t, err)

	t.Run("ships a network catalogue", func(t *testing.T) {
		require.NotEmpty(t, cfg.Networks)

		mainnet, err := cfg.Network("mainnet")
		require.NoError(t, err)
		require.NotEmpty(t, mainnet.RPCURL)
		require.Equal(t, "0xcA11bde05977b3631167028862bE2a173976CA11", mainnet.Multicall)
	})

	t.Run("pins the default storage namespace", func(t *testing.T) {
		require.Equal(t, "com.diamond.ops.allow.list", cfg.Whitelist.Namespace)
	})
}

func TestNetworkLookup(t *testing.T) {
	cfg := Config{Networks: map[NetworkName]Network{
		"sepolia": {RPCURL: "http://localhost:8545"},
	}}

	t.Run("resolves configured networks", func(t *testing.T) {
		network, err := cfg.Network("sepolia")
		require.NoError(t, err)
		require.Equal(t, "http://localhost:8545", network.RPCURL)
	})

	t.Run("fails on unknown networks", func(t *testing.T) {
		_, err := cfg.Network("goerli")
		require.ErrorContains(t, err, "not configured")
	})
}

func TestValidate(t *testing.T) {
	t.Run("wallet requires a private key", func(t *testing.T) {
		require.ErrorContains(t, Wallet{}.Validate(), "wallet.private-key is required")
		require.NoError(t, Wallet{PrivateKey: "0xabc"}.Validate())
	})

	t.Run("whitelist requires a file", func(t *testing.T) {
		require.ErrorContains(t, Whitelist{}.Validate(), "whitelist.file is required")
		require.NoError(t, Whitelist{File: "whitelist.json"}.Validate())
	})
}
