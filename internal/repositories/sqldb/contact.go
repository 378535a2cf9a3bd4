package sqldb

import (
	"context"
	"database/sql"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// ContactRepository implements repositories.ContactRepository
type ContactRepository struct {
	baseRepository
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB, logger *logrus.Logger) repositories.ContactRepository {
	return &ContactRepository{
		baseRepository: newBaseRepository(db, "customer_contact", logger),
	}
}

// Create appends a contact row. Contacts are never updated.
func (r *ContactRepository) Create(ctx context.Context, contact *models.CustomerContact) error {
	if err := r.validateID("customer", contact.CustomerID); err != nil {
		return err
	}

	query := `INSERT INTO customer_contact (customer_id, email, phone_number) VALUES (?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query, contact.CustomerID, contact.Email, contact.PhoneNumber)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "customer_contact", "", err)
	}
	contact.ID = id

	return nil
}

// ListByCustomer retrieves all contact rows of a customer in insertion order
func (r *ContactRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.CustomerContact, error) {
	query := `
		SELECT contact_id, customer_id, email, phone_number
		FROM customer_contact
		WHERE customer_id = ?
		ORDER BY contact_id`

	rows, err := r.executeQuery(ctx, "list_by_customer", query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []*models.CustomerContact
	for rows.Next() {
		contact := &models.CustomerContact{}
		if err := rows.Scan(&contact.ID, &contact.CustomerID, &contact.Email, &contact.PhoneNumber); err != nil {
			return nil, repositories.NewRepositoryError("list_by_customer", "customer_contact", formatID(customerID), err)
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_by_customer", "customer_contact", formatID(customerID), err)
	}

	return contacts, nil
}
