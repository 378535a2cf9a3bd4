package sqldb

import (
	"context"
	"database/sql"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

const customerColumns = `customer_id, name, activity_type, shoe_size, shoe_color_preference, last_purchase_date`

// CustomerRepository implements repositories.CustomerRepository
type CustomerRepository struct {
	baseRepository
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *sql.DB, logger *logrus.Logger) repositories.CustomerRepository {
	return &CustomerRepository{
		baseRepository: newBaseRepository(db, "customers", logger),
	}
}

// Create inserts a customer with its preferences and sets the generated ID
func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (name, activity_type, shoe_size, shoe_color_preference, last_purchase_date)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query,
		customer.Name,
		customer.ActivityType,
		customer.ShoeSize,
		customer.ShoeColorPreference,
		customer.LastPurchaseDate,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "customer", "", err)
	}
	customer.ID = id

	return nil
}

// CreatePlaceholder inserts a name-only customer. The caller re-selects the row by
// name to learn its ID, so concurrent registrations of one name resolve to the newest row.
func (r *CustomerRepository) CreatePlaceholder(ctx context.Context, customer *models.Customer) error {
	query := `INSERT INTO customers (name, last_purchase_date) VALUES (?, ?)`

	_, err := r.executeExec(ctx, "create_placeholder", query, customer.Name, customer.LastPurchaseDate)
	return err
}

// GetByID retrieves a customer by ID
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	if err := r.validateID("customer", id); err != nil {
		return nil, err
	}

	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = ?`

	customer, err := scanCustomer(r.executeQueryRow(ctx, "get_by_id", query, id))
	if err != nil {
		return nil, r.scanError("get_by_id", "customer", formatID(id), err)
	}

	return customer, nil
}

// FindByName retrieves the newest customer whose name matches case-insensitively
func (r *CustomerRepository) FindByName(ctx context.Context, name string) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE LOWER(name) = LOWER(?)
		ORDER BY customer_id DESC
		LIMIT 1`

	customer, err := scanCustomer(r.executeQueryRow(ctx, "find_by_name", query, name))
	if err != nil {
		return nil, r.scanError("find_by_name", "customer", name, err)
	}

	return customer, nil
}

// FindByExactName retrieves the newest customer whose name matches exactly.
// Candidates are narrowed in SQL and compared in Go so the match stays
// case-sensitive regardless of the column collation.
func (r *CustomerRepository) FindByExactName(ctx context.Context, name string) (*models.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE LOWER(name) = LOWER(?)
		ORDER BY customer_id DESC`

	rows, err := r.executeQuery(ctx, "find_by_exact_name", query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, repositories.NewRepositoryError("find_by_exact_name", "customer", name, err)
		}
		if customer.Name == name {
			return customer, nil
		}
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("find_by_exact_name", "customer", name, err)
	}

	return nil, repositories.NotFoundError("customer", name)
}

// UpdatePreferences writes the preference columns of an existing customer
func (r *CustomerRepository) UpdatePreferences(ctx context.Context, customer *models.Customer) error {
	if err := r.validateID("customer", customer.ID); err != nil {
		return err
	}

	query := `
		UPDATE customers
		SET activity_type = ?, shoe_size = ?, shoe_color_preference = ?
		WHERE customer_id = ?`

	result, err := r.executeExec(ctx, "update_preferences", query,
		customer.ActivityType,
		customer.ShoeSize,
		customer.ShoeColorPreference,
		customer.ID,
	)
	if err != nil {
		return err
	}

	return r.checkRowsAffected(result, "update_preferences", "customer", customer.ID)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row rowScanner) (*models.Customer, error) {
	customer := &models.Customer{}
	err := row.Scan(
		&customer.ID,
		&customer.Name,
		&customer.ActivityType,
		&customer.ShoeSize,
		&customer.ShoeColorPreference,
		&customer.LastPurchaseDate,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}
