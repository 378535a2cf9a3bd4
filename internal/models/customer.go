package models

import (
	"strings"
	"time"
)

// Customer represents a shopper known to the assistant
type Customer struct {
	ID                  int64      `json:"customer_id" db:"customer_id"`
	Name                string     `json:"name" db:"name"`
	ActivityType        *string    `json:"activity_type,omitempty" db:"activity_type"`
	ShoeSize            *string    `json:"shoe_size,omitempty" db:"shoe_size"`
	ShoeColorPreference *string    `json:"shoe_color_preference,omitempty" db:"shoe_color_preference"`
	LastPurchaseDate    *time.Time `json:"last_purchase_date,omitempty" db:"last_purchase_date"`
}

// Preferences is the set of attributes used to filter the shoe catalog
type Preferences struct {
	ActivityType string
	ShoeSize     string
	ShoeColor    string
}

// NewCustomer creates a customer with the given name and preferences
func NewCustomer(name string, prefs Preferences, now time.Time) *Customer {
	return &Customer{
		Name:                name,
		ActivityType:        optionalString(prefs.ActivityType),
		ShoeSize:            optionalString(prefs.ShoeSize),
		ShoeColorPreference: optionalString(prefs.ShoeColor),
		LastPurchaseDate:    &now,
	}
}

// NewPlaceholderCustomer creates a customer that only carries a name, used at registration
func NewPlaceholderCustomer(name string, now time.Time) *Customer {
	return &Customer{
		Name:             name,
		LastPurchaseDate: &now,
	}
}

// Preferences returns the stored preferences, empty strings for unset fields
func (c *Customer) Preferences() Preferences {
	return Preferences{
		ActivityType: stringValue(c.ActivityType),
		ShoeSize:     stringValue(c.ShoeSize),
		ShoeColor:    stringValue(c.ShoeColorPreference),
	}
}

// FillMissingPreferences copies supplied preferences into fields that are empty on
// the record and reports whether anything changed. Stored values are never overwritten.
func (c *Customer) FillMissingPreferences(prefs Preferences) bool {
	changed := false
	if stringValue(c.ActivityType) == "" && prefs.ActivityType != "" {
		c.ActivityType = optionalString(prefs.ActivityType)
		changed = true
	}
	if stringValue(c.ShoeSize) == "" && prefs.ShoeSize != "" {
		c.ShoeSize = optionalString(prefs.ShoeSize)
		changed = true
	}
	if stringValue(c.ShoeColorPreference) == "" && prefs.ShoeColor != "" {
		c.ShoeColorPreference = optionalString(prefs.ShoeColor)
		changed = true
	}
	return changed
}

// Backfill returns p with every empty field taken from the stored preferences
func (p Preferences) Backfill(stored Preferences) Preferences {
	if p.ActivityType == "" {
		p.ActivityType = stored.ActivityType
	}
	if p.ShoeSize == "" {
		p.ShoeSize = stored.ShoeSize
	}
	if p.ShoeColor == "" {
		p.ShoeColor = stored.ShoeColor
	}
	return p
}

// Missing returns the human-readable names of the unset preferences, in a fixed order
func (p Preferences) Missing() []string {
	var missing []string
	if p.ActivityType == "" {
		missing = append(missing, "preferred activity")
	}
	if p.ShoeSize == "" {
		missing = append(missing, "shoe size")
	}
	if p.ShoeColor == "" {
		missing = append(missing, "shoe color")
	}
	return missing
}

// DisplayValue renders an optional field for emails, "N/A" when unset
func DisplayValue(s *string) string {
	if v := stringValue(s); v != "" {
		return v
	}
	return "N/A"
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
