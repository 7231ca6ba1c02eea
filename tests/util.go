package tests

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// newExecutor creates a single-node chain where the committee account owns
// the deployed contracts and signs owner-gated invocations.
func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// iteratorToArray drains an iterator returned by a test invocation.
func iteratorToArray(iter *storage.Iterator) []stackitem.Item {
	var items []stackitem.Item
	for iter.Next() {
		items = append(items, iter.Value())
	}
	return items
}
