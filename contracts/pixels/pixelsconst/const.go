package pixelsconst

const (
	// GridSize is the total number of pixels on the canvas. Valid pixel
	// identifiers are [0, GridSize).
	GridSize = 1_000_000

	// ActionBuy is a payload selector for pixel purchase.
	ActionBuy = "buy"
	// ActionUpdate is a payload selector for pixel repaint by its owner.
	ActionUpdate = "update"

	// WrongTokenError is returned on any payment or market call not coming
	// from the accepted NEP-17 token contract.
	WrongTokenError = "pixels contract accepts payments in lunas only"

	// NotFoundError is returned if the requested pixel has never been bought.
	NotFoundError = "token not found"
)
