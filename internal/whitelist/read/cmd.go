package read

import (
	"fmt"

	"github.com/diamond-ops/diamondctl/configs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "read <network> <diamondAddress> [rpcURL]",
	Short: "Reconstruct the whitelist from raw contract storage",
	Long: `Read derives the storage slots of the diamond's approved-contracts and
approved-selectors arrays and reads them element by element via
eth_getStorageAt, without calling any contract method. The result is printed
to stdout as a single JSON object:

  {"contracts": ["0x..."], "selectors": ["0x..."]}

The rpcURL argument overrides the configured rpc-url of the network.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		networkName := args[0]

		if !common.IsHexAddress(args[1]) {
			return fmt.Errorf("invalid diamond address %q", args[1])
		}
		diamond := common.HexToAddress(args[1])

		rpcURL := ""
		if len(args) == 3 {
			rpcURL = args[2]
		} else {
			network, err := configs.Values.Network(networkName)
			if err != nil {
				return err
			}
			rpcURL = network.RPCURL
		}
		if rpcURL == "" {
			return fmt.Errorf("no RPC URL given and none configured for network %q", networkName)
		}

		output, _ := cmd.Flags().GetString("output")

		return NewService().Run(cmd.Context(), Options{
			Network:   networkName,
			RPCURL:    rpcURL,
			Diamond:   diamond,
			Namespace: configs.Values.Whitelist.Namespace,
			Output:    output,
		})
	},
}

func init() {
	CMD.Flags().String("output", "", "Also write the JSON result to this file")
}
