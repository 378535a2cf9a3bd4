package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/services"
	"shoe-assistant-api/pkg/lambda"
)

// corsHeaders are attached to every gateway response
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "*",
	"Access-Control-Allow-Methods": "OPTIONS,POST",
}

// AgentHandler handles chat requests from the web client
type AgentHandler struct {
	agentService services.AgentService
	logger       *logrus.Logger
}

// NewAgentHandler creates a new agent gateway handler
func NewAgentHandler(agentService services.AgentService, logger *logrus.Logger) *AgentHandler {
	return &AgentHandler{agentService: agentService, logger: logger}
}

// Handle answers CORS preflight requests and forwards chat input to the agent
func (h *AgentHandler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	log := lambda.RequestLogger(ctx, h.logger).WithField("handler", "agent")

	if strings.EqualFold(event.HTTPMethod, http.MethodOptions) {
		return gatewayResponse(http.StatusOK, ""), nil
	}

	body := event.Body
	if strings.TrimSpace(body) == "" {
		body = "{}"
	}

	var req services.ConversationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		log.WithError(err).Error("Invalid request body")
		return gatewayError(), nil
	}

	resp, err := h.agentService.Converse(ctx, &req)
	if err != nil {
		log.WithError(err).Error("Agent invocation failed")
		return gatewayError(), nil
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		log.WithError(err).Error("Failed to encode response")
		return gatewayError(), nil
	}

	log.WithField("session_id", resp.SessionID).Info("Agent response returned")
	return gatewayResponse(http.StatusOK, string(payload)), nil
}

func gatewayResponse(status int, body string) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(corsHeaders))
	for k, v := range corsHeaders {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}

func gatewayError() events.APIGatewayProxyResponse {
	return gatewayResponse(http.StatusInternalServerError, `{"error": "Internal Server Error"}`)
}
