// Package nep11recv contains an auxiliary contract recording incoming NEP-11
// payments. It is only used to test the receiver hook of pixel custody
// transfers.
package nep11recv

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Call is the record of the last received NEP-11 payment.
type Call struct {
	From    interop.Hash160
	TokenID []byte
	Data    any
}

func OnNEP11Payment(from interop.Hash160, amount int, tokenID []byte, data any) {
	if amount != 1 {
		panic("wrong amount")
	}
	storage.Put(storage.GetContext(), "key", std.Serialize(Call{
		From:    from,
		TokenID: tokenID,
		Data:    data,
	}))
}

// Get returns the last received payment, zero Call if there was none.
func Get() Call {
	val := storage.Get(storage.GetReadOnlyContext(), "key")
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}
