package luna

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/pixelchain/pixels-contract/common"
)

// Token holds all token info.
type Token struct {
	// Ticker symbol.
	Symbol string
	// Amount of decimals.
	Decimals int
	// Storage key for circulation value.
	CirculationKey string
}

const (
	symbol      = "LUNA"
	decimals    = 8
	circulation = "TotalSupply"

	accPrefix = 'a'

	contractOwnerKey = 'o'
)

var token Token

func createToken() Token {
	return Token{
		Symbol:         symbol,
		Decimals:       decimals,
		CirculationKey: circulation,
	}
}

func init() {
	token = createToken()
}

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner       interop.Hash160
		totalSupply int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect owner script hash length")
	}
	if args.totalSupply <= 0 {
		panic("non-positive total supply")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, contractOwnerKey, args.owner)
	storage.Put(ctx, append([]byte{accPrefix}, args.owner...), args.totalSupply)
	storage.Put(ctx, token.CirculationKey, args.totalSupply)

	runtime.Notify("Transfer", interop.Hash160(nil), args.owner, args.totalSupply)
	runtime.Log("luna contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	owner := storage.Get(ctx, contractOwnerKey).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("luna contract updated")
}

// Symbol is a NEP-17 standard method that returns the token symbol.
func Symbol() string {
	return token.Symbol
}

// Decimals is a NEP-17 standard method that returns the precision of the
// token.
func Decimals() int {
	return token.Decimals
}

// TotalSupply is a NEP-17 standard method that returns the total amount of
// lunas in circulation.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return token.getSupply(ctx)
}

// BalanceOf is a NEP-17 standard method that returns the luna balance of the
// specified account.
func BalanceOf(account interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return token.balanceOf(ctx, account)
}

// Transfer is a NEP-17 standard method that transfers lunas from one account
// to another. It can be invoked by the account owner or by a contract owning
// the account. If the recipient is a deployed contract, its onNEP17Payment
// callback is invoked with the attached data; a fault in the callback faults
// the transfer as well, so no lunas move on a rejected payment.
//
// It produces a Transfer notification.
func Transfer(from, to interop.Hash160, amount int, data any) bool {
	ctx := storage.GetContext()
	return token.transfer(ctx, from, to, amount, data)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// getSupply gets the token totalSupply value from VM storage.
func (t Token) getSupply(ctx storage.Context) int {
	supply := storage.Get(ctx, t.CirculationKey)
	if supply != nil {
		return supply.(int)
	}

	return 0
}

// balanceOf gets the token balance of a specific address.
func (t Token) balanceOf(ctx storage.Context, holder interop.Hash160) int {
	if len(holder) != interop.Hash160Len {
		panic("invalid account")
	}
	balance := storage.Get(ctx, append([]byte{accPrefix}, holder...))
	if balance == nil {
		return 0
	}

	return balance.(int)
}

func (t Token) transfer(ctx storage.Context, from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount < 0 {
		panic("negative amount")
	}
	if !isUsableAddress(from) {
		runtime.Log("transfer is not witnessed by the sender")
		return false
	}

	fromKey := append([]byte{accPrefix}, from...)
	balance := 0
	if b := storage.Get(ctx, fromKey); b != nil {
		balance = b.(int)
	}
	if balance < amount {
		runtime.Log("not enough lunas")
		return false
	}

	if balance == amount {
		storage.Delete(ctx, fromKey)
	} else {
		storage.Put(ctx, fromKey, balance-amount)
	}

	toKey := append([]byte{accPrefix}, to...)
	balanceTo := 0
	if b := storage.Get(ctx, toKey); b != nil {
		balanceTo = b.(int)
	}
	storage.Put(ctx, toKey, balanceTo+amount)

	postTransfer(from, to, amount, data)

	return true
}

// isUsableAddress checks if the sender is either a signer of the transaction
// or a smart contract calling on its own behalf.
func isUsableAddress(addr interop.Hash160) bool {
	if runtime.CheckWitness(addr) {
		return true
	}

	callingScriptHash := runtime.GetCallingScriptHash()
	return callingScriptHash.Equals(addr)
}

// postTransfer sends a Transfer notification to the network and calls
// onNEP17Payment method on the receiving contract, if any.
func postTransfer(from, to interop.Hash160, amount int, data any) {
	runtime.Notify("Transfer", from, to, amount)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}
