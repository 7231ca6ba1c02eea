/*
Package pixels contains implementation of the Pixels contract: a fixed-size
canvas of one million individually owned cells deployable to any
Neo-compatible network. Every pixel is a non-divisible NEP-11 token
minted on its first purchase. Purchases and repaints are paid for in a single
accepted NEP-17 token and are performed exclusively by attaching an
instruction payload to a token transfer addressed to this contract; the
contract's OnNEP17Payment callback validates the payment and applies the
requested state change. A rejected request faults the whole transaction, so
the payment never lands.

Buying an already owned pixel requires paying at least the current price plus
the configured minimal increment; the new payment becomes the new price and
the previous owner is not refunded. Repainting is available to the current
owner for the exact update fee. Collected payments accumulate on the contract
account until the contract owner withdraws them via OwnerAdmin.

# Contract notifications

Transfer notification as defined by the NEP-11 standard, produced on every
mint and custody change:

	Transfer
	  - name: from
	    type: Hash160
	  - name: to
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: tokenId
	    type: ByteArray

Update notification, produced on every successful repaint:

	Update
	  - name: pixelId
	    type: Integer

OwnerAdmin notification, produced on every successful administrative call:

	OwnerAdmin
	  - name: withdraw
	    type: Boolean
	  - name: minPriceIncrement
	    type: Integer
	  - name: updateFee
	    type: Integer
*/
package pixels
