package services

import (
	"context"
)

// OrderService places orders and reports order history
type OrderService interface {
	HandleOrder(ctx context.Context, req *OrderRequest) (string, error)
}

// RecommendationService resolves a customer and recommends catalog items
type RecommendationService interface {
	Recommend(ctx context.Context, req *RecommendationRequest) (string, error)
}

// RegistrationService records contact details for a customer
type RegistrationService interface {
	Register(ctx context.Context, req *RegistrationRequest) (string, error)
}

// AgentService forwards user input to a conversational agent session
type AgentService interface {
	Converse(ctx context.Context, req *ConversationRequest) (*ConversationResponse, error)
}

// Mailer sends a single plain-text email
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
}

// AgentClient invokes an agent session and delivers the reply chunks in arrival order
type AgentClient interface {
	InvokeAgent(ctx context.Context, sessionID, inputText string, onChunk func([]byte) error) error
}

// EmailMessage is a plain-text email with one recipient
type EmailMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}
