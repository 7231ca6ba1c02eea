// Package fakecoin contains an auxiliary NEP-17-like contract. It moves no
// real balances, it only replays the transfer notification protocol and is
// used to test that the Pixels contract rejects payments in foreign tokens.
package fakecoin

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

func Symbol() string {
	return "FAKE"
}

func Decimals() int {
	return 8
}

func TotalSupply() int {
	return 0
}

func BalanceOf(account interop.Hash160) int {
	return 0
}

// Transfer always succeeds and pushes the payment to the recipient contract
// the way a regular NEP-17 token does.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	runtime.Notify("Transfer", from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
	return true
}
