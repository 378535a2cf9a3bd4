package main

import (
	"context"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/internal/handlers"
	"shoe-assistant-api/pkg/lambda"

	awslambda "github.com/aws/aws-lambda-go/lambda"
)

var handler *handlers.RegistrationHandler

func init() {
	container, err := lambda.GetRuntime().Initialize(context.Background(), config.ComponentRegistration)
	if err != nil {
		panic("Failed to initialize runtime: " + err.Error())
	}

	handler = handlers.NewRegistrationHandler(container.RegistrationService, container.Logger)
}

func main() {
	awslambda.Start(handler.Handle)
}
