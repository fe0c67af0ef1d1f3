// Package read reconstructs the diamond's whitelist from raw storage and
// prints it as a single JSON object.
package read

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/diamond-ops/diamondctl/internal/infra/jsonfile"
	"github.com/diamond-ops/diamondctl/internal/logger"
	"github.com/diamond-ops/diamondctl/internal/whitelist/storage"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

type (
	Options struct {
		Network   string
		RPCURL    string
		Diamond   common.Address
		Namespace string
		Output    string
	}

	Service struct {
		logger *slog.Logger
	}
)

func NewService() *Service {
	return &Service{
		logger: logger.Named("read_service"),
	}
}

// Run reads the whitelist and writes {"contracts": [...], "selectors": [...]}
// to stdout. On any read failure nothing reaches stdout and the error
// propagates to the command.
func (s *Service) Run(ctx context.Context, opts Options) error {
	s.logger.
		With("network", opts.Network).
		With("diamond", opts.Diamond).
		With("rpc_url", opts.RPCURL).
		Info("reading whitelist from raw storage")

	client, err := ethclient.DialContext(ctx, opts.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to dial RPC: %w", err)
	}
	defer client.Close()

	layout := storage.DefaultLayout()
	if opts.Namespace != "" {
		layout.Namespace = opts.Namespace
	}

	allowList, err := storage.NewReader(client, layout).Read(ctx, opts.Diamond)
	if err != nil {
		return err
	}

	s.logger.
		With("contracts", len(allowList.Contracts)).
		With("selectors", len(allowList.Selectors)).
		Info("whitelist reconstructed")

	payload, err := json.Marshal(allowList)
	if err != nil {
		return fmt.Errorf("failed to marshal whitelist: %w", err)
	}

	fmt.Fprintln(os.Stdout, string(payload))

	if opts.Output != "" {
		if err := jsonfile.Write(opts.Output, allowList); err != nil {
			return err
		}
		s.logger.With("path", opts.Output).Info("whitelist dump written")
	}

	return nil
}
