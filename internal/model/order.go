package model

import "github.com/shopspring/decimal"

type OrderSide string

const (
	OrderBuy  OrderSide = "buy"
	OrderSell OrderSide = "sell"
)

func ParseOrderSide(s string) (OrderSide, bool) {
	switch OrderSide(s) {
	case OrderBuy, OrderSell:
		return OrderSide(s), true
	}
	return "", false
}

// OrderRequest is the shape accepted by the external order-execution collaborator.
type OrderRequest struct {
	Symbol   string
	Side     OrderSide
	Quantity decimal.Decimal
}

// OrderConfirmation is the broker's acknowledgement of a placed order.
type OrderConfirmation struct {
	OrderID    string
	Symbol     string
	Side       OrderSide
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	TotalValue decimal.Decimal
}
