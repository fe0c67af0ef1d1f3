package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "approve.yaml")

	model := &Model{
		Network: "sepolia",
		Diamond: "0x1231DEB6f5749EF6cE6943a275A1D3E7486F4EaE",
		Sender:  "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266",
		Contracts: Section{
			Desired:         2,
			AlreadyApproved: 1,
			Submitted:       []string{"0x7a250d5630b4cf539739df2c5dacb4c659f2488d"},
		},
		Selectors: Section{Desired: 1, AlreadyApproved: 1},
		Transactions: []Transaction{
			{Method: "batchSetContractApproval", Hash: "0xdead", Status: 1},
		},
	}

	require.NoError(t, NewGenerator().Generate(path, model))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Model
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, *model, decoded)
}

func TestGenerateOmitsEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "approve.yaml")

	require.NoError(t, NewGenerator().Generate(path, &Model{Network: "mainnet", DryRun: true}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "transactions")
	require.NotContains(t, string(data), "submitted")
	require.Contains(t, string(data), "dry-run: true")
}
