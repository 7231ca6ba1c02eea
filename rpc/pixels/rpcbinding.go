// Package pixels contains RPC wrappers for the Pixels contract.
package pixels

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/nep11"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Pixel is a contract-specific pixels.Pixel type used by its methods.
type Pixel struct {
	Owner  util.Uint160
	Colour []byte
	Price  *big.Int
}

// Parameters is a contract-specific pixels.Parameters type used by its methods.
type Parameters struct {
	MinPriceIncrement *big.Int
	UpdateFee         *big.Int
}

// UpdateEvent represents "Update" event emitted by the contract.
type UpdateEvent struct {
	PixelID *big.Int
}

// OwnerAdminEvent represents "OwnerAdmin" event emitted by the contract.
type OwnerAdminEvent struct {
	Withdraw          bool
	MinPriceIncrement *big.Int
	UpdateFee         *big.Int
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	nep11.Invoker
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	nep11.Actor

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	nep11.NonDivisibleReader
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	nep11.BaseWriter
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract
// hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{*nep11.NewNonDivisibleReader(invoker, hash), invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the
// given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	var nep11ndt = nep11.NewNonDivisible(actor, hash)
	return &Contract{ContractReader{nep11ndt.NonDivisibleReader, actor, hash}, nep11ndt.BaseWriter, actor, hash}
}

// NewBuyPayload returns a payload buying the specified pixel, to be attached
// as data to a NEP-17 transfer of amount lunas to the Pixels contract.
func NewBuyPayload(id *big.Int, colour []byte, account util.Uint160, amount *big.Int) []any {
	return []any{"buy", id, colour, account, amount}
}

// NewUpdatePayload returns a payload repainting the specified pixel, to be
// attached as data to a NEP-17 transfer of amount lunas to the Pixels
// contract.
func NewUpdatePayload(id *big.Int, colour []byte, account util.Uint160, amount *big.Int) []any {
	return []any{"update", id, colour, account, amount}
}

// AcceptedToken invokes `acceptedToken` method of contract.
func (c *ContractReader) AcceptedToken() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "acceptedToken"))
}

// ContractOwner invokes `contractOwner` method of contract.
func (c *ContractReader) ContractOwner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "contractOwner"))
}

// GetPixel invokes `getPixel` method of contract.
func (c *ContractReader) GetPixel(id *big.Int) (*Pixel, error) {
	return itemToPixel(unwrap.Item(c.invoker.Call(c.hash, "getPixel", id)))
}

// GetParameters invokes `getParameters` method of contract.
func (c *ContractReader) GetParameters() (*Parameters, error) {
	return itemToParameters(unwrap.Item(c.invoker.Call(c.hash, "getParameters")))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// OwnerAdmin creates a transaction invoking `ownerAdmin` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) OwnerAdmin(withdraw bool, minPriceIncrement *big.Int, updateFee *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "ownerAdmin", withdraw, minPriceIncrement, updateFee)
}

// OwnerAdminTransaction creates a transaction invoking `ownerAdmin` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) OwnerAdminTransaction(withdraw bool, minPriceIncrement *big.Int, updateFee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "ownerAdmin", withdraw, minPriceIncrement, updateFee)
}

// OwnerAdminUnsigned creates a transaction invoking `ownerAdmin` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) OwnerAdminUnsigned(withdraw bool, minPriceIncrement *big.Int, updateFee *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "ownerAdmin", nil, withdraw, minPriceIncrement, updateFee)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// itemToPixel converts stack item into *Pixel.
func itemToPixel(item stackitem.Item, err error) (*Pixel, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Pixel)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Pixel from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Pixel) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Owner, err = func(item stackitem.Item) (util.Uint160, error) {
		// A pixel that was never bought has no owner.
		if _, ok := item.(stackitem.Null); ok {
			return util.Uint160{}, nil
		}
		b, err := item.TryBytes()
		if err != nil {
			return util.Uint160{}, err
		}
		if len(b) == 0 {
			return util.Uint160{}, nil
		}
		u, err := util.Uint160DecodeBytesBE(b)
		if err != nil {
			return util.Uint160{}, err
		}
		return u, nil
	}(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.Colour, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field Colour: %w", err)
	}

	index++
	res.Price, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Price: %w", err)
	}

	return nil
}

// itemToParameters converts stack item into *Parameters.
func itemToParameters(item stackitem.Item, err error) (*Parameters, error) {
	if err != nil {
		return nil, err
	}
	var res = new(Parameters)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of Parameters from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *Parameters) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.MinPriceIncrement, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MinPriceIncrement: %w", err)
	}

	index++
	res.UpdateFee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field UpdateFee: %w", err)
	}

	return nil
}

// UpdateEventsFromApplicationLog retrieves a set of all emitted events
// with "Update" name from the provided [result.ApplicationLog].
func UpdateEventsFromApplicationLog(log *result.ApplicationLog) ([]*UpdateEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UpdateEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Update" {
				continue
			}
			event := new(UpdateEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UpdateEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UpdateEvent or
// returns an error if it's not possible to do to so.
func (e *UpdateEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 1 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.PixelID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field PixelID: %w", err)
	}

	return nil
}

// OwnerAdminEventsFromApplicationLog retrieves a set of all emitted events
// with "OwnerAdmin" name from the provided [result.ApplicationLog].
func OwnerAdminEventsFromApplicationLog(log *result.ApplicationLog) ([]*OwnerAdminEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OwnerAdminEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OwnerAdmin" {
				continue
			}
			event := new(OwnerAdminEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OwnerAdminEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OwnerAdminEvent or
// returns an error if it's not possible to do to so.
func (e *OwnerAdminEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.Withdraw, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Withdraw: %w", err)
	}

	index++
	e.MinPriceIncrement, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field MinPriceIncrement: %w", err)
	}

	index++
	e.UpdateFee, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field UpdateFee: %w", err)
	}

	return nil
}
