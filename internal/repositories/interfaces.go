package repositories

import (
	"context"

	"shoe-assistant-api/internal/models"
)

// CustomerRepository defines operations on the customers table
type CustomerRepository interface {
	// Create inserts a customer and sets its generated ID
	Create(ctx context.Context, customer *models.Customer) error

	// CreatePlaceholder inserts a name-only customer row without reading back its ID
	CreatePlaceholder(ctx context.Context, customer *models.Customer) error

	// GetByID retrieves a customer by ID
	GetByID(ctx context.Context, id int64) (*models.Customer, error)

	// FindByName retrieves the newest customer whose name matches case-insensitively
	FindByName(ctx context.Context, name string) (*models.Customer, error)

	// FindByExactName retrieves the newest customer whose name matches exactly
	FindByExactName(ctx context.Context, name string) (*models.Customer, error)

	// UpdatePreferences writes the preference columns of an existing customer
	UpdatePreferences(ctx context.Context, customer *models.Customer) error
}

// ContactRepository defines operations on the customer_contact table
type ContactRepository interface {
	// Create appends a contact row
	Create(ctx context.Context, contact *models.CustomerContact) error

	// ListByCustomer retrieves all contact rows of a customer
	ListByCustomer(ctx context.Context, customerID int64) ([]*models.CustomerContact, error)
}

// ShoeRepository defines read operations on the shoe catalog
type ShoeRepository interface {
	// GetByID retrieves a shoe by ID
	GetByID(ctx context.Context, id int64) (*models.Shoe, error)

	// Search returns every shoe matching the filter, ordered by ID
	Search(ctx context.Context, filter models.ShoeFilter) ([]*models.Shoe, error)
}

// OrderRepository defines operations on the orders table
type OrderRepository interface {
	// Create inserts an order
	Create(ctx context.Context, order *models.Order) error

	// ListRecentByCustomer returns up to limit orders, newest first
	ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]*models.Order, error)
}

// Session is one database connection scoped to a single handler invocation.
// Every statement auto-commits; Close must be called on every exit path.
type Session interface {
	Customers() CustomerRepository
	Contacts() ContactRepository
	Shoes() ShoeRepository
	Orders() OrderRepository
	Close() error
}

// SessionFactory opens a fresh Session per invocation
type SessionFactory interface {
	Open(ctx context.Context) (Session, error)
}
