// Package multicall batches read-only contract calls through the canonical
// Multicall3 deployment.
package multicall

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/diamond-ops/diamondctl/internal/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// DefaultAddress is the Multicall3 deployment shared across most EVM chains.
var DefaultAddress = common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

const abiJSON = `[
	{
		"name": "aggregate3",
		"type": "function",
		"stateMutability": "payable",
		"inputs": [
			{
				"name": "calls",
				"type": "tuple[]",
				"components": [
					{"name": "target", "type": "address"},
					{"name": "allowFailure", "type": "bool"},
					{"name": "callData", "type": "bytes"}
				]
			}
		],
		"outputs": [
			{
				"name": "returnData",
				"type": "tuple[]",
				"components": [
					{"name": "success", "type": "bool"},
					{"name": "returnData", "type": "bytes"}
				]
			}
		]
	}
]`

var multicallABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

type (
	// Call is one entry of an aggregate3 batch.
	Call struct {
		Target       common.Address
		AllowFailure bool
		CallData     []byte
	}

	// Result is the per-call outcome of an aggregate3 batch.
	Result struct {
		Success    bool
		ReturnData []byte
	}
)

// ContractCaller is the eth_call view of the chain client.
// *ethclient.Client satisfies it.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// Client issues aggregate3 batches against one Multicall3 deployment.
type Client struct {
	caller  ContractCaller
	address common.Address
	logger  *slog.Logger
}

func New(caller ContractCaller, address common.Address) *Client {
	return &Client{
		caller:  caller,
		address: address,
		logger:  logger.Named("multicall"),
	}
}

// Aggregate executes all calls in a single eth_call round-trip and returns
// per-call results in request order.
func (c *Client) Aggregate(ctx context.Context, calls []Call) ([]Result, error) {
	if len(calls) == 0 {
		return nil, nil
	}

	data, err := multicallABI.Pack("aggregate3", calls)
	if err != nil {
		return nil, fmt.Errorf("failed to pack aggregate3 calldata: %w", err)
	}

	c.logger.With("calls", len(calls)).With("multicall", c.address).Debug("executing aggregate3 batch")

	raw, err := c.caller.CallContract(ctx, ethereum.CallMsg{To: &c.address, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("aggregate3 call failed: %w", err)
	}

	out, err := multicallABI.Unpack("aggregate3", raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack aggregate3 return data: %w", err)
	}

	results := *abi.ConvertType(out[0], new([]Result)).(*[]Result)
	if len(results) != len(calls) {
		return nil, fmt.Errorf("aggregate3 returned %d results for %d calls", len(results), len(calls))
	}

	return results, nil
}
