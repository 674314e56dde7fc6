// Package lambda holds the process-wide state shared by the AWS Lambda
// entrypoints. A warm container keeps its dependency container alive across
// invocations, so the SQLite connection and migrations are paid for once per
// cold start.
package lambda

import (
	"sync"

	"github.com/sirupsen/logrus"

	"family-finance-api/internal/config"
	"family-finance-api/pkg/server"
)

var warm struct {
	mu        sync.Mutex
	container *server.Container
}

// Container returns the shared dependency container, building it on the
// first invocation after a cold start. A cached container whose database
// connection went away is discarded and rebuilt.
func Container() (*server.Container, error) {
	warm.mu.Lock()
	defer warm.mu.Unlock()

	if warm.container != nil {
		if err := warm.container.HealthCheck(); err == nil {
			return warm.container, nil
		}
		logrus.Warn("Cached container failed its health check, rebuilding")
		warm.container.Close()
		warm.container = nil
	}

	cfg, err := config.GetOptimizedConfig()
	if err != nil {
		return nil, err
	}
	container, err := server.NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	warm.container = container

	sc := config.GetServerlessConfig()
	logrus.WithFields(logrus.Fields{
		"runtime":  config.GetDeploymentMode(),
		"function": sc.FunctionName,
		"region":   sc.Region,
		"stage":    sc.Stage,
	}).Info("Cold start container initialized")
	return container, nil
}
