package main

import (
	"context"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/internal/handlers"
	"shoe-assistant-api/pkg/lambda"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var handler *handlers.AgentHandler

func init() {
	container, err := lambda.GetRuntime().Initialize(context.Background(), config.ComponentAgent)
	if err != nil {
		panic("Failed to initialize runtime: " + err.Error())
	}

	if container.AgentService == nil {
		panic("Agent service is not configured")
	}

	handler = handlers.NewAgentHandler(container.AgentService, container.Logger)
}

func main() {
	awslambda.Start(handler.Handle)
}
