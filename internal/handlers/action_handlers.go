package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/services"
	"shoe-assistant-api/pkg/lambda"
)

// ActionFunc handles one action group invocation
type ActionFunc func(ctx context.Context, req *lambda.ActionGroupRequest) (lambda.ActionGroupResponse, error)

// OrderHandler handles the order action group
type OrderHandler struct {
	orderService services.OrderService
	logger       *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderService, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// Handle places an order or returns order history
func (h *OrderHandler) Handle(ctx context.Context, req *lambda.ActionGroupRequest) (lambda.ActionGroupResponse, error) {
	params := req.ParamMap()
	orderReq := &services.OrderRequest{
		CustomerID: params["customer_id"],
		ShoeID:     params["shoe_id"],
		Operation:  params["operation"],
	}

	log := lambda.RequestLogger(ctx, h.logger).WithField("handler", "orders")

	text, err := h.orderService.HandleOrder(ctx, orderReq)
	if err != nil {
		status, body := failure(log, err)
		return lambda.NewFailureResponse(req, status, body), nil
	}

	return lambda.NewTextResponse(req, text), nil
}

// RecommendationHandler handles the customer lookup and recommendation action group
type RecommendationHandler struct {
	recommendationService services.RecommendationService
	logger                *logrus.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommendationService services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService, logger: logger}
}

// Handle recommends shoes for the named customer
func (h *RecommendationHandler) Handle(ctx context.Context, req *lambda.ActionGroupRequest) (lambda.ActionGroupResponse, error) {
	params := req.ParamMap()
	recReq := &services.RecommendationRequest{
		Name:         params["name"],
		ShoeSize:     params["shoe_size"],
		ActivityType: params["activity_type"],
		ShoeColor:    params["shoe_color"],
		PriceLimit:   params["price_limit"],
	}

	log := lambda.RequestLogger(ctx, h.logger).WithField("handler", "recommendations")
	log.WithField("parameters", params).Info("Received parameters")

	text, err := h.recommendationService.Recommend(ctx, recReq)
	if err != nil {
		status, body := failure(log, err)
		return lambda.NewFailureResponse(req, status, body), nil
	}

	return lambda.NewTextResponse(req, text), nil
}

// RegistrationHandler handles the new user registration action group
type RegistrationHandler struct {
	registrationService services.RegistrationService
	logger              *logrus.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService services.RegistrationService, logger *logrus.Logger) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService, logger: logger}
}

// Handle registers contact details for a customer
func (h *RegistrationHandler) Handle(ctx context.Context, req *lambda.ActionGroupRequest) (lambda.ActionGroupResponse, error) {
	params := req.ParamMap()
	regReq := &services.RegistrationRequest{
		Name:        params["name"],
		Email:       params["email"],
		PhoneNumber: params["phone_number"],
	}

	log := lambda.RequestLogger(ctx, h.logger).WithField("handler", "registration")
	log.WithField("name", regReq.Name).Info("Received new user details")

	text, err := h.registrationService.Register(ctx, regReq)
	if err != nil {
		status, body := failure(log, err)
		return lambda.NewFailureResponse(req, status, body), nil
	}

	return lambda.NewTextResponse(req, text), nil
}
