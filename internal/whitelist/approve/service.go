// Package approve reconciles a desired whitelist file against the diamond's
// on-chain approval state and submits the missing approvals.
package approve

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"github.com/diamond-ops/diamondctl/internal/infra/jsonfile"
	"github.com/diamond-ops/diamondctl/internal/logger"
	"github.com/diamond-ops/diamondctl/internal/wallet"
	"github.com/diamond-ops/diamondctl/internal/whitelist/facet"
	"github.com/diamond-ops/diamondctl/internal/whitelist/multicall"
	"github.com/diamond-ops/diamondctl/internal/whitelist/report"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

type (
	// Options carries everything one approval run needs.
	Options struct {
		Network       string
		RPCURL        string
		Diamond       common.Address
		Multicall     common.Address
		PrivateKey    string
		WhitelistFile string
		DryRun        bool
		ReportPath    string
	}

	// Service orchestrates one approval run end to end.
	Service struct {
		logger *slog.Logger
	}
)

func NewService() *Service {
	return &Service{
		logger: logger.Named("approve_service"),
	}
}

// Run loads the desired whitelist, checks the current approval state in a
// single multicall batch, and submits at most two batch transactions for the
// missing entries. Any failure aborts the run; no report is written on error.
func (s *Service) Run(ctx context.Context, opts Options) error {
	var entries Entries
	if err := jsonfile.Read(opts.WhitelistFile, &entries); err != nil {
		return fmt.Errorf("failed to load whitelist file: %w", err)
	}

	desired, err := ParseEntries(entries)
	if err != nil {
		return fmt.Errorf("invalid whitelist file %s: %w", opts.WhitelistFile, err)
	}

	sender, err := wallet.AddressFromPrivateKey(opts.PrivateKey)
	if err != nil {
		return err
	}

	s.logger.
		With("network", opts.Network).
		With("diamond", opts.Diamond).
		With("sender", sender).
		With("contracts", len(desired.Contracts)).
		With("selectors", len(desired.Selectors)).
		Info("starting approval run")

	client, err := ethclient.DialContext(ctx, opts.RPCURL)
	if err != nil {
		return fmt.Errorf("failed to dial RPC: %w", err)
	}
	defer client.Close()

	approvedContracts, approvedSelectors, err := s.fetchApprovalState(ctx, client, opts, desired)
	if err != nil {
		return fmt.Errorf("failed to fetch approval state: %w", err)
	}

	plan := BuildPlan(desired, approvedContracts, approvedSelectors)

	model := &report.Model{
		Network: opts.Network,
		Diamond: opts.Diamond.Hex(),
		Sender:  sender.Hex(),
		DryRun:  opts.DryRun,
		Contracts: report.Section{
			Desired:         len(desired.Contracts),
			AlreadyApproved: len(desired.Contracts) - len(plan.Contracts),
			Submitted:       contractStrings(plan.Contracts),
		},
		Selectors: report.Section{
			Desired:         len(desired.Selectors),
			AlreadyApproved: len(desired.Selectors) - len(plan.Selectors),
			Submitted:       selectorStrings(plan.Selectors),
		},
	}

	switch {
	case plan.Empty():
		s.logger.Info("whitelist is already up to date, nothing to submit")
	case opts.DryRun:
		s.logger.
			With("contracts", contractStrings(plan.Contracts)).
			With("selectors", selectorStrings(plan.Selectors)).
			Info("dry run, transactions not submitted")
	default:
		transactions, err := s.submit(ctx, client, opts, plan)
		if err != nil {
			return err
		}
		model.Transactions = transactions
	}

	if opts.ReportPath != "" {
		if err := report.NewGenerator().Generate(opts.ReportPath, model); err != nil {
			return err
		}
	}

	return nil
}

// fetchApprovalState batches one approval check per desired entry through
// Multicall3. Contract checks come first, selector checks after, so results
// split at len(desired.Contracts).
func (s *Service) fetchApprovalState(ctx context.Context, client *ethclient.Client, opts Options, desired Desired) (map[common.Address]bool, map[[4]byte]bool, error) {
	calls := make([]multicall.Call, 0, len(desired.Contracts)+len(desired.Selectors))

	for _, addr := range desired.Contracts {
		callData, err := facet.PackIsContractApproved(addr)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to pack isContractApproved(%s): %w", addr, err)
		}
		calls = append(calls, multicall.Call{Target: opts.Diamond, CallData: callData})
	}

	for _, selector := range desired.Selectors {
		callData, err := facet.PackIsFunctionApproved(selector)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to pack isFunctionApproved(0x%x): %w", selector, err)
		}
		calls = append(calls, multicall.Call{Target: opts.Diamond, CallData: callData})
	}

	results, err := multicall.New(client, opts.Multicall).Aggregate(ctx, calls)
	if err != nil {
		return nil, nil, err
	}

	approvedContracts := make(map[common.Address]bool, len(desired.Contracts))
	for i, addr := range desired.Contracts {
		approved, err := facet.UnpackApproved("isContractApproved", results[i].ReturnData)
		if err != nil {
			return nil, nil, err
		}
		approvedContracts[addr] = approved
	}

	approvedSelectors := make(map[[4]byte]bool, len(desired.Selectors))
	for i, selector := range desired.Selectors {
		approved, err := facet.UnpackApproved("isFunctionApproved", results[len(desired.Contracts)+i].ReturnData)
		if err != nil {
			return nil, nil, err
		}
		approvedSelectors[selector] = approved
	}

	return approvedContracts, approvedSelectors, nil
}

// submit sends the batch approval transactions and waits for their receipts.
func (s *Service) submit(ctx context.Context, client *ethclient.Client, opts Options, plan Plan) ([]report.Transaction, error) {
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(opts.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	auth, err := bind.NewKeyedTransactorWithChainID(privateKey, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	auth.Context = ctx
	auth.GasPrice = gasPrice

	contract := bind.NewBoundContract(opts.Diamond, facet.ABI, client, client, client)

	var transactions []report.Transaction

	if len(plan.Contracts) > 0 {
		record, err := s.transact(ctx, client, contract, auth, "batchSetContractApproval", plan.Contracts, true)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, record)
	}

	if len(plan.Selectors) > 0 {
		record, err := s.transact(ctx, client, contract, auth, "batchSetFunctionApprovalBySignature", plan.Selectors, true)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, record)
	}

	return transactions, nil
}

func (s *Service) transact(ctx context.Context, client *ethclient.Client, contract *bind.BoundContract, auth *bind.TransactOpts, method string, params ...any) (report.Transaction, error) {
	tx, err := contract.Transact(auth, method, params...)
	if err != nil {
		return report.Transaction{}, fmt.Errorf("failed to send %s: %w", method, err)
	}

	s.logger.With("method", method).With("tx_hash", tx.Hash().Hex()).Info("transaction sent")

	receipt, err := bind.WaitMined(ctx, client, tx)
	if err != nil {
		return report.Transaction{}, fmt.Errorf("failed to wait for %s receipt: %w", method, err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return report.Transaction{}, fmt.Errorf("%s transaction %s reverted with status %d", method, tx.Hash().Hex(), receipt.Status)
	}

	s.logger.With("method", method).With("tx_hash", tx.Hash().Hex()).Info("transaction confirmed")

	return report.Transaction{
		Method: method,
		Hash:   tx.Hash().Hex(),
		Status: receipt.Status,
	}, nil
}

func contractStrings(addrs []common.Address) []string {
	values := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		values = append(values, strings.ToLower(addr.Hex()))
	}
	return values
}

func selectorStrings(selectors [][4]byte) []string {
	values := make([]string, 0, len(selectors))
	for _, selector := range selectors {
		values = append(values, "0x"+hex.EncodeToString(selector[:]))
	}
	return values
}
