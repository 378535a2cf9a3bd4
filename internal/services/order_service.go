package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/models"
	"shoe-assistant-api/internal/repositories"
)

// Order operations
const (
	OperationCreate = "create"
	OperationFetch  = "fetch"
)

// OrderConfirmationSubject is the subject of the order confirmation email
const OrderConfirmationSubject = "Your Shoe Order Confirmation"

// OrderConfig holds the addresses used for order confirmations
type OrderConfig struct {
	Sender    string
	Recipient string
}

// orderService implements the OrderService interface
type orderService struct {
	sessions  repositories.SessionFactory
	mailer    Mailer
	config    OrderConfig
	validator *validator.Validate
	logger    *logrus.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(sessions repositories.SessionFactory, mailer Mailer, config OrderConfig, logger *logrus.Logger) OrderService {
	return &orderService{
		sessions:  sessions,
		mailer:    mailer,
		config:    config,
		validator: newValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

// HandleOrder places an order or lists recent orders depending on the operation
func (s *orderService) HandleOrder(ctx context.Context, req *OrderRequest) (string, error) {
	if req == nil {
		return "", ValidationError("order", "Missing required parameter: customer_id, operation")
	}

	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.Operation = strings.ToLower(strings.TrimSpace(req.Operation))

	if err := s.validator.Struct(req); err != nil {
		missing := fieldFailures(err)["required"]
		return "", ValidationError("order", "Missing required parameter: "+strings.Join(missing, ", "))
	}

	shoeID, hasShoe := parseShoeID(req.ShoeID)

	s.logger.WithFields(logrus.Fields{
		"customer_input": req.CustomerID,
		"shoe_id":        shoeID,
		"operation":      req.Operation,
	}).Info("Received order parameters")

	switch {
	case req.Operation == OperationCreate && hasShoe:
	case req.Operation == OperationFetch:
	default:
		return "", InvalidOperationError("order", "Invalid operation or missing parameters.")
	}

	session, err := s.sessions.Open(ctx)
	if err != nil {
		return "", InfraError("order", err)
	}
	defer session.Close()

	customerID, err := s.resolveCustomerID(ctx, session.Customers(), req.CustomerID)
	if err != nil {
		return "", err
	}

	if req.Operation == OperationFetch {
		return s.orderHistory(ctx, session, customerID)
	}
	return s.placeOrder(ctx, session, customerID, shoeID)
}

// resolveCustomerID accepts a numeric ID as is and resolves anything else by exact name
func (s *orderService) resolveCustomerID(ctx context.Context, customers repositories.CustomerRepository, input string) (int64, error) {
	if id, err := strconv.ParseInt(input, 10, 64); err == nil {
		return id, nil
	}

	customer, err := customers.FindByExactName(ctx, input)
	if err != nil {
		return 0, repositoryError("resolve_customer", err, fmt.Sprintf("No customer found with name %s", input))
	}

	return customer.ID, nil
}

func (s *orderService) placeOrder(ctx context.Context, session repositories.Session, customerID, shoeID int64) (string, error) {
	customer, err := session.Customers().GetByID(ctx, customerID)
	if err != nil {
		return "", repositoryError("place_order", err, fmt.Sprintf("No customer found with ID %d", customerID))
	}

	shoe, err := session.Shoes().GetByID(ctx, shoeID)
	if err != nil {
		return "", repositoryError("place_order", err, fmt.Sprintf("No shoe found with ID %d", shoeID))
	}

	order := models.NewOrder(customer.ID, shoe.ID, s.now())
	if err := session.Orders().Create(ctx, order); err != nil {
		return "", InfraError("place_order", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customer.ID,
		"shoe_id":     shoe.ID,
	}).Info("Order inserted successfully")

	// The order is already committed; a mail failure does not undo it.
	msg := &EmailMessage{
		From:    s.config.Sender,
		To:      s.config.Recipient,
		Subject: OrderConfirmationSubject,
		Body:    ComposeOrderConfirmation(customer, shoe),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return "", InfraError("send_confirmation", err)
	}

	return fmt.Sprintf("Order placed successfully and confirmation sent to %s!", s.config.Recipient), nil
}

func (s *orderService) orderHistory(ctx context.Context, session repositories.Session, customerID int64) (string, error) {
	orders, err := session.Orders().ListRecentByCustomer(ctx, customerID, models.OrderHistoryLimit)
	if err != nil {
		return "", InfraError("order_history", err)
	}

	return FormatOrderHistory(orders), nil
}

// FormatOrderHistory renders orders as "Shoe ID <id> on <date>" lines
func FormatOrderHistory(orders []*models.Order) string {
	if len(orders) == 0 {
		return "No past orders found for your profile."
	}

	lines := make([]string, 0, len(orders))
	for _, order := range orders {
		lines = append(lines, fmt.Sprintf("Shoe ID %d on %s", order.ShoeID, order.OrderDate.Format("2006-01-02")))
	}

	return "Here are your past orders:\n" + strings.Join(lines, "\n")
}

// ComposeOrderConfirmation builds the plain-text confirmation email body
func ComposeOrderConfirmation(customer *models.Customer, shoe *models.Shoe) string {
	lastPurchase := "N/A"
	if customer.LastPurchaseDate != nil {
		lastPurchase = customer.LastPurchaseDate.Format("2006-01-02 15:04:05")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", customer.Name)
	b.WriteString("Thank you for your order! Here are the details:\n\n")
	b.WriteString("Customer:\n")
	fmt.Fprintf(&b, "- Name: %s\n", customer.Name)
	fmt.Fprintf(&b, "- Activity Type: %s\n", models.DisplayValue(customer.ActivityType))
	fmt.Fprintf(&b, "- Preferred Size: %s\n", models.DisplayValue(customer.ShoeSize))
	fmt.Fprintf(&b, "- Color Preference: %s\n", models.DisplayValue(customer.ShoeColorPreference))
	fmt.Fprintf(&b, "- Last Purchase: %s\n\n", lastPurchase)
	b.WriteString("Shoe:\n")
	fmt.Fprintf(&b, "- Type: %s\n", shoe.ShoeType)
	fmt.Fprintf(&b, "- Style: %s\n", shoe.ShoeStyle)
	fmt.Fprintf(&b, "- Color: %s\n", shoe.Color)
	fmt.Fprintf(&b, "- Size: %s\n", models.FormatSize(shoe.Size))
	fmt.Fprintf(&b, "- Price: $%s\n", models.FormatPrice(shoe.Price))
	fmt.Fprintf(&b, "- Suitable For: %s\n\n", shoe.SuitableFor)
	b.WriteString("We appreciate your business!\n\n")
	b.WriteString("Thanks,\nRetail Shoe Store\n")

	return b.String()
}

// parseShoeID returns the shoe ID and whether it is a usable positive number
func parseShoeID(value string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
