package models

// CustomerContact holds contact details captured at registration. Rows are append-only.
type CustomerContact struct {
	ID          int64  `json:"contact_id" db:"contact_id"`
	CustomerID  int64  `json:"customer_id" db:"customer_id"`
	Email       string `json:"email" db:"email"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
}
