// Package facet holds the ABI fragment of the diamond's whitelist facet used
// for approval checks and batch updates.
package facet

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const abiJSON = `[
	{
		"name": "isContractApproved",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "contractAddress", "type": "address"}],
		"outputs": [{"name": "approved", "type": "bool"}]
	},
	{
		"name": "isFunctionApproved",
		"type": "function",
		"stateMutability": "view",
		"inputs": [{"name": "selector", "type": "bytes4"}],
		"outputs": [{"name": "approved", "type": "bool"}]
	},
	{
		"name": "batchSetContractApproval",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "contractAddresses", "type": "address[]"},
			{"name": "approval", "type": "bool"}
		],
		"outputs": []
	},
	{
		"name": "batchSetFunctionApprovalBySignature",
		"type": "function",
		"stateMutability": "nonpayable",
		"inputs": [
			{"name": "selectors", "type": "bytes4[]"},
			{"name": "approval", "type": "bool"}
		],
		"outputs": []
	}
]`

// ABI is the parsed whitelist facet ABI.
var ABI = func() abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		panic(err)
	}
	return parsed
}()

func PackIsContractApproved(contractAddress common.Address) ([]byte, error) {
	return ABI.Pack("isContractApproved", contractAddress)
}

func PackIsFunctionApproved(selector [4]byte) ([]byte, error) {
	return ABI.Pack("isFunctionApproved", selector)
}

func PackBatchSetContractApproval(contractAddresses []common.Address, approval bool) ([]byte, error) {
	return ABI.Pack("batchSetContractApproval", contractAddresses, approval)
}

func PackBatchSetFunctionApproval(selectors [][4]byte, approval bool) ([]byte, error) {
	return ABI.Pack("batchSetFunctionApprovalBySignature", selectors, approval)
}

// UnpackApproved decodes the bool returned by either approval check.
func UnpackApproved(method string, data []byte) (bool, error) {
	out, err := ABI.Unpack(method, data)
	if err != nil {
		return false, fmt.Errorf("failed to unpack %s return data: %w", method, err)
	}

	approved, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("unexpected %s return type %T", method, out[0])
	}

	return approved, nil
}
