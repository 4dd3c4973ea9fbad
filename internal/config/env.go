package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Env holds settings taken from the environment. The API key never touches
// the preferences file on disk.
type Env struct {
	// APIKey authenticates against the generation service.
	APIKey string `envconfig:"API_KEY"`
	// APIBase overrides the generation endpoint, used by tests and
	// self-hosted proxies.
	APIBase string `envconfig:"API_BASE"`
	// Model overrides the model from the preferences file.
	Model string `envconfig:"MODEL"`
}

// LoadEnv reads CELORA_* variables, merging in a .env file from the
// working directory when one exists.
func LoadEnv() (Env, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("celora", &env); err != nil {
		return Env{}, err
	}
	return env, nil
}
