package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DefaultUserName is used in generated session IDs when the request has no user name
const DefaultUserName = "user"

// minSessionIDLength is the shortest session ID accepted from a client
const minSessionIDLength = 2

// agentService implements the AgentService interface
type agentService struct {
	client    AgentClient
	logger    *logrus.Logger
	newSuffix func() string
}

// NewAgentService creates a new agent gateway service
func NewAgentService(client AgentClient, logger *logrus.Logger) AgentService {
	return &agentService{
		client:    client,
		logger:    logger,
		newSuffix: randomSuffix,
	}
}

// Converse forwards the query to the agent and concatenates the reply chunks in arrival order
func (s *agentService) Converse(ctx context.Context, req *ConversationRequest) (*ConversationResponse, error) {
	if req == nil {
		return nil, ValidationError("converse", "request cannot be nil")
	}

	sessionID := ResolveSessionID(req.UserName, req.SessionID, s.newSuffix)

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"user_input": req.Query,
	}).Info("Forwarding input to agent")

	var reply strings.Builder
	err := s.client.InvokeAgent(ctx, sessionID, req.Query, func(chunk []byte) error {
		reply.Write(chunk)
		return nil
	})
	if err != nil {
		return nil, InfraError("converse", err)
	}

	s.logger.WithField("session_id", sessionID).Info("Agent response received")

	return &ConversationResponse{
		Response:  reply.String(),
		SessionID: sessionID,
	}, nil
}

// ResolveSessionID keeps a client session ID of at least two characters and otherwise
// generates "<user name>-<suffix>"
func ResolveSessionID(userName, sessionID string, newSuffix func() string) string {
	if utf8.RuneCountInString(sessionID) >= minSessionIDLength {
		return sessionID
	}

	if strings.TrimSpace(userName) == "" {
		userName = DefaultUserName
	}

	return fmt.Sprintf("%s-%s", userName, newSuffix())
}

// randomSuffix returns the first eight hex characters of a random UUID
func randomSuffix() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
