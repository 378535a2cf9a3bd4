package sqldb

import (
	"context"
	"database/sql"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// OrderRepository implements repositories.OrderRepository
type OrderRepository struct {
	baseRepository
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB, logger *logrus.Logger) repositories.OrderRepository {
	return &OrderRepository{
		baseRepository: newBaseRepository(db, "orders", logger),
	}
}

// Create inserts an order and sets its generated ID
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.validateID("customer", order.CustomerID); err != nil {
		return err
	}
	if err := r.validateID("shoe", order.ShoeID); err != nil {
		return err
	}

	query := `INSERT INTO orders (customer_id, shoe_id, order_date) VALUES (?, ?, ?)`

	result, err := r.executeExec(ctx, "create", query, order.CustomerID, order.ShoeID, order.OrderDate)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return repositories.NewRepositoryError("create", "order", "", err)
	}
	order.ID = id

	return nil
}

// ListRecentByCustomer returns up to limit orders of a customer, newest first
func (r *OrderRepository) ListRecentByCustomer(ctx context.Context, customerID int64, limit int) ([]*models.Order, error) {
	query := `
		SELECT order_id, customer_id, shoe_id, order_date
		FROM orders
		WHERE customer_id = ?
		ORDER BY order_date DESC, order_id DESC
		LIMIT ?`

	rows, err := r.executeQuery(ctx, "list_recent_by_customer", query, customerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.ShoeID, &order.OrderDate); err != nil {
			return nil, repositories.NewRepositoryError("list_recent_by_customer", "order", formatID(customerID), err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, repositories.NewRepositoryError("list_recent_by_customer", "order", formatID(customerID), err)
	}

	return orders, nil
}
