package whitelist

import (
	"github.com/diamond-ops/diamondctl/internal/whitelist/approve"
	"github.com/diamond-ops/diamondctl/internal/whitelist/read"
	"github.com/spf13/cobra"
)

var CMD = &cobra.Command{
	Use:   "whitelist",
	Short: "Inspect and maintain the diamond's contract and selector whitelist",
}

func init() {
	CMD.AddCommand(read.CMD)
	CMD.AddCommand(approve.CMD)
}
