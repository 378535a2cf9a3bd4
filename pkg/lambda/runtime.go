package lambda

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"shoe-assistant-api/internal/config"
	"shoe-assistant-api/pkg/server"
)

// Runtime holds the process-wide dependencies of a Lambda function. It is created
// once per execution environment and reused by every warm invocation.
type Runtime struct {
	container *server.Container
	initOnce  sync.Once
	initErr   error
}

var (
	globalRuntime *Runtime
	runtimeOnce   sync.Once
)

// GetRuntime returns the global runtime instance
func GetRuntime() *Runtime {
	runtimeOnce.Do(func() {
		globalRuntime = &Runtime{}
	})
	return globalRuntime
}

// Initialize loads configuration, validates it for component and builds the container.
// Later calls return the result of the first one.
func (r *Runtime) Initialize(ctx context.Context, component string, opts ...server.Option) (*server.Container, error) {
	r.initOnce.Do(func() {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			r.initErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}

		if err := cfg.Validate(component); err != nil {
			r.initErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}

		logger := config.NewLogger(cfg)
		container, err := server.NewContainer(ctx, cfg, logger, opts...)
		if err != nil {
			r.initErr = fmt.Errorf("failed to initialize container: %w", err)
			return
		}

		r.container = container
		logger.WithFields(logrus.Fields{
			"component": component,
			"mode":      config.GetDeploymentMode(),
		}).Info("Runtime initialized")
	})

	return r.container, r.initErr
}

// RequestLogger returns a log entry tagged with the Lambda request ID, if any
func RequestLogger(ctx context.Context, logger *logrus.Logger) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		entry = entry.WithField("request_id", lc.AwsRequestID)
	}
	return entry
}
