package config

import "fmt"

type Config interface {
	EnvConfig
	CorsConfig
	CognitoConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Cognito
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate checks the configuration that the auth routes cannot run without.
// It is called once at startup so misconfiguration fails the process instead
// of surfacing as per-request 500s.
func Validate(c Config) error {
	if c.GetAuthSecret() == "" {
		return fmt.Errorf("AUTH_SECRET is not set")
	}
	if c.GetCognitoClientID() == "" {
		return fmt.Errorf("COGNITO_CLIENT_ID is not set")
	}
	if c.GetAWSRegion() == "" {
		return fmt.Errorf("AWS_REGION is not set")
	}
	return nil
}
