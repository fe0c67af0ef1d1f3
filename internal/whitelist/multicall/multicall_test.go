package multicall

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

type fakeCaller struct {
	lastMsg  *ethereum.CallMsg
	response []byte
	err      error
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.lastMsg = &msg
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func packResults(t *testing.T, results []Result) []byte {
	t.Helper()

	data, err := multicallABI.Methods["aggregate3"].Outputs.Pack(results)
	require.NoError(t, err)
	return data
}

func TestAggregate(t *testing.T) {
	target := common.HexToAddress("0x1231deb6f5749ef6ce6943a275a1d3e7486f4eae")

	calls := []Call{
		{Target: target, CallData: []byte{0x07, 0x0d, 0x39, 0xd9}},
		{Target: target, AllowFailure: true, CallData: []byte{0x2d, 0x25, 0x06, 0xa9}},
	}

	t.Run("packs an aggregate3 batch against the configured deployment", func(t *testing.T) {
		caller := &fakeCaller{response: packResults(t, []Result{
			{Success: true, ReturnData: common.LeftPadBytes([]byte{1}, 32)},
			{Success: false},
		})}

		results, err := New(caller, DefaultAddress).Aggregate(context.Background(), calls)
		require.NoError(t, err)

		require.NotNil(t, caller.lastMsg)
		require.Equal(t, DefaultAddress, *caller.lastMsg.To)
		// aggregate3((address,bool,bytes)[])
		require.Equal(t, []byte{0x82, 0xad, 0x56, 0xcb}, caller.lastMsg.Data[:4])

		require.Len(t, results, 2)
		require.True(t, results[0].Success)
		require.Equal(t, common.LeftPadBytes([]byte{1}, 32), results[0].ReturnData)
		require.False(t, results[1].Success)
	})

	t.Run("empty batch issues no call", func(t *testing.T) {
		caller := &fakeCaller{}

		results, err := New(caller, DefaultAddress).Aggregate(context.Background(), nil)
		require.NoError(t, err)
		require.Nil(t, results)
		require.Nil(t, caller.lastMsg)
	})

	t.Run("propagates call errors", func(t *testing.T) {
		caller := &fakeCaller{err: errors.New("execution reverted")}

		_, err := New(caller, DefaultAddress).Aggregate(context.Background(), calls)
		require.ErrorContains(t, err, "execution reverted")
	})

	t.Run("rejects a result count mismatch", func(t *testing.T) {
		caller := &fakeCaller{response: packResults(t, []Result{{Success: true}})}

		_, err := New(caller, DefaultAddress).Aggregate(context.Background(), calls)
		require.ErrorContains(t, err, "2 calls")
	})
}
