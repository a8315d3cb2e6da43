package tests

import (
	"math/rand"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/callflag"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	stackItems := make([]stackitem.Item, 0)
	for iter.Next() {
		stackItems = append(stackItems, iter.Value())
	}
	return stackItems
}

// iterateInvoke test-invokes a method returning an iterator and expands it.
func iterateInvoke(t *testing.T, c *neotest.ContractInvoker, method string, args ...interface{}) []stackitem.Item {
	s, err := c.TestInvoke(t, method, args...)
	require.NoError(t, err)

	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok)

	return iteratorToArray(iter)
}

// testInvokeNextBlock test-invokes a method on a fake next block timestamped
// one TimePerBlock (a second) after the current top one, which is the timing
// the tests are written against.
func testInvokeNextBlock(t *testing.T, c *neotest.ContractInvoker, method string, args ...interface{}) *vm.Stack {
	tx := c.PrepareInvokeNoSign(t, method, args...)

	ic, err := c.Chain.GetTestVM(trigger.Application, tx, nil)
	require.NoError(t, err)
	t.Cleanup(ic.Finalize)

	ic.VM.LoadWithFlags(tx.Script, callflag.All)
	require.NoError(t, ic.VM.Run())

	return ic.VM.Estack()
}

// advanceTime appends an empty block timestamped the given number of seconds
// after the current top one. The next transaction lands one more second
// later.
func advanceTime(t *testing.T, e *neotest.Executor, seconds int) {
	b := e.NewUnsignedBlock(t)
	b.Timestamp = b.Timestamp + uint64(seconds-1)*1000
	e.SignBlock(b)
	require.NoError(t, e.Chain.AddBlock(b))
}

func gasBalance(t *testing.T, e *neotest.Executor, acc util.Uint160) int64 {
	gasHash := e.NativeHash(t, nativenames.Gas)

	s, err := e.CommitteeInvoker(gasHash).TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)

	return s.Pop().BigInt().Int64()
}
