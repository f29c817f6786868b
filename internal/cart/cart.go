// Package cart prices shopping carts and keeps a cart as an ordered log of
// edits that subscribers can follow.
package cart

import (
	"github.com/shopspring/decimal"
)

var (
	FreeShippingThreshold = decimal.NewFromInt(5000)
	ShippingFee           = decimal.NewFromInt(350)
)

// Item is one cart line, keyed by product. Price is a snapshot taken when the
// product was added.
type Item struct {
	ProductID string  `json:"productId" validate:"required"`
	Name      string  `json:"name"`
	Price     float64 `json:"price" validate:"gte=0"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Discount  float64 `json:"discount" validate:"gte=0,lte=100"`
}

type Summary struct {
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// Quote prices the cart. Shipping is free from FreeShippingThreshold upward
// and on an empty cart. Listed prices are charged; Discount is display only.
func Quote(items []Item) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, it := range items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(qty))))
		count += qty
	}

	shipping := ShippingFee
	if count == 0 || subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	return Summary{
		Subtotal:  subtotal.InexactFloat64(),
		Shipping:  shipping.InexactFloat64(),
		Total:     subtotal.Add(shipping).InexactFloat64(),
		ItemCount: count,
	}
}
