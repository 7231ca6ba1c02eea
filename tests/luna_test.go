package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

const lunaPath = "../contracts/luna"

const lunaTotalSupply = int64(10_000)

func deployLunaContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	args := make([]interface{}, 2)
	args[0] = e.CommitteeHash
	args[1] = lunaTotalSupply

	c := neotest.CompileFile(t, e.CommitteeHash, lunaPath, path.Join(lunaPath, "config.yml"))
	e.DeployContract(t, c, args)
	return c.Hash
}

func newLunaInvoker(t *testing.T) *neotest.ContractInvoker {
	e := newExecutor(t)
	h := deployLunaContract(t, e)
	return e.CommitteeInvoker(h)
}

func TestLuna_Deploy(t *testing.T) {
	c := newLunaInvoker(t)

	c.Invoke(t, "LUNA", "symbol")
	c.Invoke(t, int64(8), "decimals")
	c.Invoke(t, lunaTotalSupply, "totalSupply")
	c.Invoke(t, lunaTotalSupply, "balanceOf", c.CommitteeHash)
}

func TestLuna_Transfer(t *testing.T) {
	c := newLunaInvoker(t)

	acc := c.NewAccount(t)
	c.Invoke(t, true, "transfer", c.CommitteeHash, acc.ScriptHash(), int64(100), nil)
	c.Invoke(t, int64(100), "balanceOf", acc.ScriptHash())
	c.Invoke(t, lunaTotalSupply-100, "balanceOf", c.CommitteeHash)

	// Spending someone else's lunas is not witnessed by the sender.
	cAcc := c.WithSigners(acc)
	cAcc.Invoke(t, false, "transfer", c.CommitteeHash, acc.ScriptHash(), int64(1), nil)

	cAcc.Invoke(t, false, "transfer", acc.ScriptHash(), c.CommitteeHash, int64(101), nil)
	cAcc.Invoke(t, true, "transfer", acc.ScriptHash(), c.CommitteeHash, int64(100), nil)
	c.Invoke(t, int64(0), "balanceOf", acc.ScriptHash())

	cAcc.InvokeFail(t, "negative amount", "transfer", acc.ScriptHash(), c.CommitteeHash, int64(-1), nil)
	cAcc.InvokeFail(t, "invalid account", "transfer", []byte{1, 2, 3}, c.CommitteeHash, int64(1), nil)
}

func TestLuna_TransferToSelf(t *testing.T) {
	c := newLunaInvoker(t)

	acc := c.NewAccount(t)
	c.Invoke(t, true, "transfer", c.CommitteeHash, acc.ScriptHash(), int64(42), nil)

	cAcc := c.WithSigners(acc)
	cAcc.Invoke(t, true, "transfer", acc.ScriptHash(), acc.ScriptHash(), int64(42), nil)
	c.Invoke(t, int64(42), "balanceOf", acc.ScriptHash())
}

func TestLuna_UpdateNotOwner(t *testing.T) {
	c := newLunaInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, "owner witness check failed", "update", []byte{}, []byte{}, nil)
}

func TestLuna_Version(t *testing.T) {
	c := newLunaInvoker(t)
	c.Invoke(t, stackitem.Make(1_000), "version")
}
