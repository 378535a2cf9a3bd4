package models

import "fmt"

// Shoe represents a catalog item. The catalog is read-only for the assistant.
type Shoe struct {
	ID          int64   `json:"shoe_id" db:"shoe_id"`
	ShoeType    string  `json:"shoe_type" db:"shoe_type"`
	ShoeStyle   string  `json:"shoe_style" db:"shoe_style"`
	Color       string  `json:"color" db:"color"`
	Size        float64 `json:"size" db:"size"`
	Price       float64 `json:"price" db:"price"`
	SuitableFor string  `json:"suitable_for" db:"suitable_for"`
}

// ShoeFilter narrows a catalog search. Empty fields and a nil MaxPrice are not applied.
type ShoeFilter struct {
	SuitableFor string
	Size        string
	Color       string
	MaxPrice    *float64
}

// NewShoeFilter builds a catalog filter from customer preferences and an optional price ceiling
func NewShoeFilter(prefs Preferences, maxPrice *float64) ShoeFilter {
	return ShoeFilter{
		SuitableFor: prefs.ActivityType,
		Size:        prefs.ShoeSize,
		Color:       prefs.ShoeColor,
		MaxPrice:    maxPrice,
	}
}

// IsEmpty reports whether no condition is set
func (f ShoeFilter) IsEmpty() bool {
	return f.SuitableFor == "" && f.Size == "" && f.Color == "" && f.MaxPrice == nil
}

// FormatPrice renders a price with two decimals
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatSize renders a shoe size without a trailing ".0" for whole sizes
func FormatSize(size float64) string {
	if size == float64(int64(size)) {
		return fmt.Sprintf("%d", int64(size))
	}
	return fmt.Sprintf("%g", size)
}
