package handlers

import (
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/services"
	"shoe-assistant-api/pkg/lambda"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	OrderService          services.OrderService
	RecommendationService services.RecommendationService
	RegistrationService   services.RegistrationService
	AgentService          services.AgentService
	Logger                *logrus.Logger
}

// SetupRoutes exposes the action group handlers and the chat gateway over HTTP
// so the functions can be exercised without a Lambda runtime
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	logger := config.Logger
	if logger == nil {
		logger = logrus.New()
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "shoe-assistant-api",
			"version": "1.0.0",
		})
	})

	actions := router.Group("/actions")
	{
		if config.OrderService != nil {
			actions.POST("/orders", actionRoute(NewOrderHandler(config.OrderService, logger).Handle))
		}
		if config.RecommendationService != nil {
			actions.POST("/recommendations", actionRoute(NewRecommendationHandler(config.RecommendationService, logger).Handle))
		}
		if config.RegistrationService != nil {
			actions.POST("/registration", actionRoute(NewRegistrationHandler(config.RegistrationService, logger).Handle))
		}
	}

	if config.AgentService != nil {
		agent := gatewayRoute(NewAgentHandler(config.AgentService, logger))
		router.POST("/agent", agent)
		router.OPTIONS("/agent", agent)
	}
}

// actionRoute adapts an action group handler to gin. Failures are written with
// the status carried in the envelope.
func actionRoute(handle ActionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req lambda.ActionGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
			return
		}

		resp, err := handle(c.Request.Context(), &req)
		if err != nil {
			_ = c.Error(err)
			return
		}

		status := http.StatusOK
		if resp.StatusCode != 0 {
			status = resp.StatusCode
		}
		c.JSON(status, resp)
	}
}

// gatewayRoute replays the HTTP request as an API Gateway proxy event
func gatewayRoute(h *AgentHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			return
		}

		event := events.APIGatewayProxyRequest{
			HTTPMethod: c.Request.Method,
			Path:       c.Request.URL.Path,
			Body:       string(body),
		}

		resp, err := h.Handle(c.Request.Context(), event)
		if err != nil {
			_ = c.Error(err)
			return
		}

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, "application/json", []byte(resp.Body))
	}
}
