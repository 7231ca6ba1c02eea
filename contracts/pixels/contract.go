package pixels

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/pixelchain/pixels-contract/common"
	"github.com/pixelchain/pixels-contract/contracts/pixels/pixelsconst"
)

type (
	// Pixel holds the market state of a single canvas cell. A pixel that
	// has never been bought has no stored record: its colour is black,
	// its price is zero and it has no owner.
	Pixel struct {
		// Current custodian of the pixel.
		Owner interop.Hash160
		// 24-bit RGB colour, exactly 3 bytes.
		Colour []byte
		// The amount of lunas paid on the last successful buy. Never
		// decreases across the pixel's history.
		Price int
	}

	// Parameters groups market settings managed via [OwnerAdmin].
	Parameters struct {
		// Minimum amount a buy must add on top of the current price.
		MinPriceIncrement int
		// Exact payment required to repaint an owned pixel.
		UpdateFee int
	}
)

// Prefixes used for contract data storage.
const (
	// prefixPixel contains map from pixel ID to serialized Pixel.
	prefixPixel byte = 0x01
	// prefixBalance contains map from the owner to the number of pixels owned.
	prefixBalance byte = 0x02
	// prefixAccountToken contains map from (owner + pixel ID) to pixel ID,
	// used for NEP-11 enumeration.
	prefixAccountToken byte = 0x03

	keyTotalSupply       = 't'
	keyContractOwner     = 'o'
	keyAcceptedToken     = 'x'
	keyMinPriceIncrement = 'm'
	keyUpdateFee         = 'u'
)

const (
	// colourLen is the size of the RGB colour attribute.
	colourLen = 3
	// defaultMinPriceIncrement is used when deploy data carries no value.
	defaultMinPriceIncrement = 10
	// defaultUpdateFee is used when deploy data carries no value.
	defaultUpdateFee = 10
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner             interop.Hash160
		token             interop.Hash160
		minPriceIncrement int
		updateFee         int
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect owner script hash length")
	}
	if len(args.token) != interop.Hash160Len {
		panic("incorrect token script hash length")
	}
	if args.minPriceIncrement < 0 || args.updateFee < 0 {
		panic("negative market parameter")
	}
	if args.minPriceIncrement == 0 {
		args.minPriceIncrement = defaultMinPriceIncrement
	}
	if args.updateFee == 0 {
		args.updateFee = defaultUpdateFee
	}

	ctx := storage.GetContext()
	storage.Put(ctx, keyContractOwner, args.owner)
	storage.Put(ctx, keyAcceptedToken, args.token)
	storage.Put(ctx, keyMinPriceIncrement, args.minPriceIncrement)
	storage.Put(ctx, keyUpdateFee, args.updateFee)
	storage.Put(ctx, []byte{keyTotalSupply}, 0)

	runtime.Log("pixels contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetReadOnlyContext()
	common.CheckOwnerWitness(contractOwner(ctx))

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("pixels contract updated")
}

// Symbol is a NEP-11 standard method that returns the pixel token symbol.
func Symbol() string {
	return "PIXL"
}

// Decimals is a NEP-11 standard method. Pixels are indivisible.
func Decimals() int {
	return 0
}

// TotalSupply is a NEP-11 standard method that returns the number of pixels
// bought at least once.
func TotalSupply() int {
	ctx := storage.GetReadOnlyContext()
	return getTotalSupply(ctx)
}

// BalanceOf is a NEP-11 standard method that returns the number of pixels
// owned by the specified account.
func BalanceOf(owner interop.Hash160) int {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	balance := storage.Get(ctx, append([]byte{prefixBalance}, owner...))
	if balance == nil {
		return 0
	}
	return balance.(int)
}

// OwnerOf is a NEP-11 standard method that returns the current owner of the
// specified pixel. It panics if the pixel has never been bought.
func OwnerOf(tokenID []byte) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	px := mustGetPixel(ctx, tokenIDToPixelID(tokenID))
	return px.Owner
}

// Properties is a NEP-11 standard method that returns the attributes of the
// specified pixel. It panics if the pixel has never been bought.
func Properties(tokenID []byte) map[string]any {
	id := tokenIDToPixelID(tokenID)
	ctx := storage.GetReadOnlyContext()
	px := mustGetPixel(ctx, id)
	return map[string]any{
		"id":     id,
		"name":   "pixel #" + std.Itoa(id, 10),
		"colour": px.Colour,
		"price":  px.Price,
	}
}

// Tokens is a NEP-11 standard method that returns an iterator over the IDs of
// all pixels bought at least once.
func Tokens() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixPixel}, storage.KeysOnly|storage.RemovePrefix)
}

// TokensOf is a NEP-11 standard method that returns an iterator over the IDs
// of pixels owned by the specified account.
func TokensOf(owner interop.Hash160) iterator.Iterator {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, append([]byte{prefixAccountToken}, owner...), storage.ValuesOnly)
}

// Transfer is a NEP-11 standard method that transfers the pixel to a new
// owner. It can be invoked only by the current owner. Market state of the
// pixel (colour, price) is not affected.
func Transfer(to interop.Hash160, tokenID []byte, data any) bool {
	if len(to) != interop.Hash160Len {
		panic("invalid receiver")
	}
	id := tokenIDToPixelID(tokenID)
	ctx := storage.GetContext()
	px := mustGetPixel(ctx, id)
	from := px.Owner
	if !runtime.CheckWitness(from) {
		return false
	}
	if !from.Equals(to) {
		px.Owner = to
		putPixel(ctx, id, px)
		updateBalance(ctx, id, from, -1)
		updateBalance(ctx, id, to, +1)
	}
	postTransfer(from, to, pixelIDToTokenID(id), data)
	return true
}

// AcceptedToken returns the script hash of the single NEP-17 token accepted
// for payments. It is set on deploy and never changes.
func AcceptedToken() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return acceptedToken(ctx)
}

// ContractOwner returns the script hash of the account that administers the
// market and receives withdrawals.
func ContractOwner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return contractOwner(ctx)
}

// GetPixel returns the market state of the specified pixel. For a pixel that
// has never been bought it returns a record with zero price, black colour and
// no owner.
func GetPixel(id int) Pixel {
	checkPixelID(id)
	ctx := storage.GetReadOnlyContext()
	return getPixel(ctx, id)
}

// GetParameters returns the current market parameters.
func GetParameters() Parameters {
	ctx := storage.GetReadOnlyContext()
	return getParameters(ctx)
}

// OnNEP17Payment is a callback for the accepted NEP-17 token contract. It is
// the only entry point to the market: the attached data must be a payload of
// the form [action, pixelID, colour, account, amount] which is dispatched to
// buy or update after validation. Any failure faults the transaction and
// thereby reverses the triggering token transfer.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()

	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(acceptedToken(ctx)) {
		common.AbortWithMessage(pixelsconst.WrongTokenError)
	}

	if data == nil {
		panic("no payment payload")
	}
	args := data.([]any)
	if len(args) != 5 {
		panic("bad payment payload")
	}

	action := args[0].(string)
	id := args[1].(int)
	colour := args[2].([]byte)
	account := interop.Hash160(args[3].([]byte))
	declared := args[4].(int)

	if !account.Equals(from) {
		panic("payload account differs from payer")
	}
	if declared != amount {
		panic("payload amount mismatch")
	}

	switch action {
	case pixelsconst.ActionBuy:
		buy(ctx, id, colour, from, amount)
	case pixelsconst.ActionUpdate:
		update(ctx, id, colour, from, amount)
	default:
		panic("unknown action")
	}
}

// BuyPixel mints the pixel to the buyer or transfers it from the current
// owner for any amount no less than the current price plus the minimal
// increment. It is reachable only via a payment through the accepted token
// contract; direct invocations fail.
//
// It produces a Transfer notification.
func BuyPixel(id int, colour []byte, buyer interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkTokenIsCaller(ctx)
	buy(ctx, id, colour, buyer, amount)
}

// UpdatePixel repaints the pixel without changing its owner or price. Only
// the current owner may repaint and the payment must equal the update fee
// exactly. It is reachable only via a payment through the accepted token
// contract; direct invocations fail.
//
// It produces an Update notification.
func UpdatePixel(id int, colour []byte, payer interop.Hash160, amount int) {
	ctx := storage.GetContext()
	checkTokenIsCaller(ctx)
	update(ctx, id, colour, payer, amount)
}

// OwnerAdmin unconditionally replaces both market parameters and, if withdraw
// is set, additionally transfers the whole accumulated token balance of the
// contract to the contract owner. It can be invoked only by the contract
// owner.
//
// It produces an OwnerAdmin notification.
func OwnerAdmin(withdraw bool, minPriceIncrement, updateFee int) {
	ctx := storage.GetContext()
	owner := contractOwner(ctx)
	common.CheckOwnerWitness(owner)

	if minPriceIncrement < 0 || updateFee < 0 {
		panic("negative market parameter")
	}

	storage.Put(ctx, keyMinPriceIncrement, minPriceIncrement)
	storage.Put(ctx, keyUpdateFee, updateFee)

	if withdraw {
		token := acceptedToken(ctx)
		self := runtime.GetExecutingScriptHash()
		balance := contract.Call(token, "balanceOf", contract.ReadOnly, self).(int)
		if balance > 0 {
			ok := contract.Call(token, "transfer", contract.All, self, owner, balance, nil).(bool)
			if !ok {
				panic("withdrawal transfer failed")
			}
		}
	}

	runtime.Notify("OwnerAdmin", withdraw, minPriceIncrement, updateFee)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func buy(ctx storage.Context, id int, colour []byte, buyer interop.Hash160, amount int) {
	checkPixelID(id)
	checkColour(colour)
	if amount == 0 {
		panic("no payment attached")
	}

	px := getPixel(ctx, id)
	params := getParameters(ctx)
	if amount < px.Price+params.MinPriceIncrement {
		panic("payment should increment on current price")
	}

	prevOwner := px.Owner
	if len(prevOwner) == 0 {
		updateTotalSupply(ctx, +1)
	} else {
		updateBalance(ctx, id, prevOwner, -1)
	}

	px.Owner = buyer
	px.Colour = colour
	px.Price = amount
	putPixel(ctx, id, px)
	updateBalance(ctx, id, buyer, +1)

	postTransfer(prevOwner, buyer, pixelIDToTokenID(id), nil)
}

func update(ctx storage.Context, id int, colour []byte, payer interop.Hash160, amount int) {
	checkPixelID(id)
	checkColour(colour)
	if amount == 0 {
		panic("no payment attached")
	}

	px := mustGetPixel(ctx, id)
	if !px.Owner.Equals(payer) {
		panic("only owner allowed")
	}
	if amount != getParameters(ctx).UpdateFee {
		panic("update requires exact fee")
	}

	px.Colour = colour
	putPixel(ctx, id, px)

	runtime.Notify("Update", id)
}

// checkTokenIsCaller ensures the market entry point is being called by the
// accepted token contract, i.e. from within its transfer.
func checkTokenIsCaller(ctx storage.Context) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(acceptedToken(ctx)) {
		panic(pixelsconst.WrongTokenError)
	}
}

func checkPixelID(id int) {
	if id < 0 || id >= pixelsconst.GridSize {
		panic("pixel id out of range")
	}
}

func checkColour(colour []byte) {
	if len(colour) != colourLen {
		panic("colour must be 3 bytes")
	}
}

func pixelIDToTokenID(id int) []byte {
	return []byte(std.Itoa(id, 10))
}

func tokenIDToPixelID(tokenID []byte) int {
	id := std.Atoi(string(tokenID), 10)
	checkPixelID(id)
	return id
}

func pixelKey(id int) []byte {
	return append([]byte{prefixPixel}, pixelIDToTokenID(id)...)
}

func getPixel(ctx storage.Context, id int) Pixel {
	data := storage.Get(ctx, pixelKey(id))
	if data == nil {
		return Pixel{Owner: nil, Colour: []byte{0x00, 0x00, 0x00}, Price: 0}
	}
	return std.Deserialize(data.([]byte)).(Pixel)
}

func mustGetPixel(ctx storage.Context, id int) Pixel {
	data := storage.Get(ctx, pixelKey(id))
	if data == nil {
		panic(pixelsconst.NotFoundError)
	}
	return std.Deserialize(data.([]byte)).(Pixel)
}

func putPixel(ctx storage.Context, id int, px Pixel) {
	common.SetSerialized(ctx, pixelKey(id), px)
}

func getParameters(ctx storage.Context) Parameters {
	return Parameters{
		MinPriceIncrement: storage.Get(ctx, keyMinPriceIncrement).(int),
		UpdateFee:         storage.Get(ctx, keyUpdateFee).(int),
	}
}

func acceptedToken(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, keyAcceptedToken).(interop.Hash160)
}

func contractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, keyContractOwner).(interop.Hash160)
}

func updateBalance(ctx storage.Context, id int, acc interop.Hash160, diff int) {
	balanceKey := append([]byte{prefixBalance}, acc...)
	var balance int
	if b := storage.Get(ctx, balanceKey); b != nil {
		balance = b.(int)
	}
	balance += diff
	if balance == 0 {
		storage.Delete(ctx, balanceKey)
	} else {
		storage.Put(ctx, balanceKey, balance)
	}

	tokenID := pixelIDToTokenID(id)
	accountTokenKey := append(append([]byte{prefixAccountToken}, acc...), tokenID...)
	if diff < 0 {
		storage.Delete(ctx, accountTokenKey)
	} else {
		storage.Put(ctx, accountTokenKey, tokenID)
	}
}

// postTransfer sends a Transfer notification to the network and calls
// onNEP11Payment method on the receiving contract, if any.
func postTransfer(from, to interop.Hash160, tokenID []byte, data any) {
	runtime.Notify("Transfer", from, to, 1, tokenID)
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP11Payment", contract.All, from, 1, tokenID, data)
	}
}

func getTotalSupply(ctx storage.Context) int {
	val := storage.Get(ctx, []byte{keyTotalSupply})
	return val.(int)
}

func updateTotalSupply(ctx storage.Context, diff int) {
	storage.Put(ctx, []byte{keyTotalSupply}, getTotalSupply(ctx)+diff)
}
