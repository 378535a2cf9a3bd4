package services

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	agenttypes "github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"
)

// BedrockAgentClient invokes an Amazon Bedrock agent alias
type BedrockAgentClient struct {
	client       *bedrockagentruntime.Client
	agentID      string
	agentAliasID string
}

// NewBedrockAgentClient creates an agent client for one agent alias
func NewBedrockAgentClient(client *bedrockagentruntime.Client, agentID, agentAliasID string) *BedrockAgentClient {
	return &BedrockAgentClient{
		client:       client,
		agentID:      agentID,
		agentAliasID: agentAliasID,
	}
}

// InvokeAgent sends inputText to the session and passes each completion chunk to onChunk
func (c *BedrockAgentClient) InvokeAgent(ctx context.Context, sessionID, inputText string, onChunk func([]byte) error) error {
	out, err := c.client.InvokeAgent(ctx, &bedrockagentruntime.InvokeAgentInput{
		AgentId:      aws.String(c.agentID),
		AgentAliasId: aws.String(c.agentAliasID),
		SessionId:    aws.String(sessionID),
		InputText:    aws.String(inputText),
	})
	if err != nil {
		return fmt.Errorf("failed to invoke agent: %w", err)
	}

	stream := out.GetStream()
	defer stream.Close()

	for event := range stream.Events() {
		chunk, ok := event.(*agenttypes.ResponseStreamMemberChunk)
		if !ok {
			continue
		}
		if err := onChunk(chunk.Value.Bytes); err != nil {
			return err
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("agent response stream failed: %w", err)
	}

	return nil
}
