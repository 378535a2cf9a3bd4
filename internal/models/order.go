package models

import "time"

// Order links a customer to a purchased shoe. Orders are immutable once created.
type Order struct {
	ID         int64     `json:"order_id" db:"order_id"`
	CustomerID int64     `json:"customer_id" db:"customer_id"`
	ShoeID     int64     `json:"shoe_id" db:"shoe_id"`
	OrderDate  time.Time `json:"order_date" db:"order_date"`
}

// OrderHistoryLimit is the number of recent orders returned by a history lookup
const OrderHistoryLimit = 10

// NewOrder creates an order placed at the given time
func NewOrder(customerID, shoeID int64, placedAt time.Time) *Order {
	return &Order{
		CustomerID: customerID,
		ShoeID:     shoeID,
		OrderDate:  placedAt.UTC(),
	}
}
