package approve

import (
	"fmt"

	"github.com/diamond-ops/diamondctl/configs"
	"github.com/diamond-ops/diamondctl/internal/whitelist/multicall"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "approve <network> [rpcURL]",
	Short: "Approve missing whitelist entries on the diamond",
	Long: `Approve loads the desired whitelist from a JSON file, checks the current
approval state of every entry in one Multicall3 batch, and submits batch
approval transactions for the entries the diamond does not approve yet.
Already-approved entries are skipped, so re-running is safe.

Examples:
  diamondctl whitelist approve mainnet --dry-run
  diamondctl whitelist approve sepolia --whitelist-file ./whitelist.json --report ./report.yaml
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		networkName := args[0]

		network, err := configs.Values.Network(networkName)
		if err != nil {
			return err
		}

		rpcURL := network.RPCURL
		if len(args) == 2 {
			rpcURL = args[1]
		}
		if rpcURL == "" {
			return fmt.Errorf("no RPC URL given and none configured for network %q", networkName)
		}

		if err := configs.Values.Wallet.Validate(); err != nil {
			return err
		}
		if err := configs.Values.Whitelist.Validate(); err != nil {
			return err
		}

		diamondHex, _ := cmd.Flags().GetString("diamond")
		if diamondHex == "" {
			diamondHex = network.Diamond
		}
		if !common.IsHexAddress(diamondHex) {
			return fmt.Errorf("invalid diamond address %q", diamondHex)
		}

		multicallAddress := multicall.DefaultAddress
		if network.Multicall != "" {
			if !common.IsHexAddress(network.Multicall) {
				return fmt.Errorf("invalid multicall address %q for network %q", network.Multicall, networkName)
			}
			multicallAddress = common.HexToAddress(network.Multicall)
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		reportPath, _ := cmd.Flags().GetString("report")

		return NewService().Run(cmd.Context(), Options{
			Network:       networkName,
			RPCURL:        rpcURL,
			Diamond:       common.HexToAddress(diamondHex),
			Multicall:     multicallAddress,
			PrivateKey:    configs.Values.Wallet.PrivateKey,
			WhitelistFile: configs.Values.Whitelist.File,
			DryRun:        dryRun,
			ReportPath:    reportPath,
		})
	},
}

func init() {
	CMD.Flags().String("diamond", "", "Diamond address (overrides the configured network diamond)")
	CMD.Flags().Bool("dry-run", false, "Compute and print the approval plan without sending transactions")
	CMD.Flags().String("report", "", "Write a YAML report of the run to this path")
}
