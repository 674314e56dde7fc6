package config

import (
	"os"
	"sync"
)

// Runtime identifies which serverless host (if any) the process runs under.
type Runtime string

const (
	RuntimeServer Runtime = "server"
	RuntimeLambda Runtime = "lambda"
	RuntimeAzure  Runtime = "azure"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	Runtime      Runtime
	FunctionName string
	Region       string
	Stage        string
}

// Global serverless configuration
var (
	serverlessConfig *ServerlessConfig
	serverlessOnce   sync.Once
)

// GetServerlessConfig returns the serverless configuration
func GetServerlessConfig() *ServerlessConfig {
	serverlessOnce.Do(func() {
		serverlessConfig = &ServerlessConfig{
			Runtime:      detectRuntime(),
			FunctionName: GetEnv("AWS_LAMBDA_FUNCTION_NAME", os.Getenv("WEBSITE_SITE_NAME")),
			Region:       os.Getenv("AWS_REGION"),
			Stage:        GetEnv("STAGE", "dev"),
		}
	})
	return serverlessConfig
}

func detectRuntime() Runtime {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		return RuntimeLambda
	}
	if os.Getenv("FUNCTIONS_CUSTOMHANDLER_PORT") != "" {
		return RuntimeAzure
	}
	return RuntimeServer
}

// IsServerlessMode returns true if running under a serverless host
func IsServerlessMode() bool {
	return GetServerlessConfig().Runtime != RuntimeServer
}

// GetDeploymentMode returns the current deployment mode
func GetDeploymentMode() string {
	return string(GetServerlessConfig().Runtime)
}

// AdaptConfigForServerless modifies configuration for serverless deployment.
// Lambda and the Functions sandbox only allow writes under /tmp and a mounted
// file share respectively, so the default on-disk database path moves there.
func AdaptConfigForServerless(config *Config) *Config {
	if !IsServerlessMode() {
		return config
	}

	if config.Database.Path == "./data/familyfinance.db" {
		if mount := os.Getenv("EFS_MOUNT_PATH"); mount != "" {
			config.Database.Path = mount + "/familyfinance.db"
		} else {
			config.Database.Path = "/tmp/familyfinance.db"
		}
	}

	return config
}

// GetOptimizedConfig returns configuration optimized for the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}
	return AdaptConfigForServerless(config), nil
}
