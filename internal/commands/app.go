package commands

import (
	"errors"
	"fmt"

	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/auth"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/config"
	apierrors "github.com/qyf6zs2vmg-hue/CeloraAI/internal/errors"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/genai"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/models"
	"github.com/qyf6zs2vmg-hue/CeloraAI/internal/store"
)

// openStore opens the state store under the config directory.
func openStore() (*store.Store, error) {
	dir, err := config.EnsureConfigDir()
	if err != nil {
		return nil, err
	}
	return store.Open(dir)
}

// requireUser returns the logged-in user or a friendly instruction to log
// in first.
func requireUser(st *store.Store) (models.User, error) {
	user, err := auth.NewService(st).CurrentUser()
	if err != nil {
		if errors.Is(err, apierrors.ErrNotLoggedIn) || errors.Is(err, apierrors.ErrTokenInvalid) {
			return models.User{}, fmt.Errorf("you are not logged in; run 'celora login' first")
		}
		return models.User{}, err
	}
	return user, nil
}

// resolveModel applies the precedence flag > environment > config file.
func resolveModel(env config.Env, cfg config.Config) string {
	if modelFlag != "" {
		return modelFlag
	}
	if env.Model != "" {
		return env.Model
	}
	if cfg.Model != "" {
		return cfg.Model
	}
	return models.DefaultModel
}

// newGenerator builds the generation client from environment and config.
func newGenerator() (*genai.Client, string, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read environment: %w", err)
	}
	if env.APIKey == "" {
		return nil, "", fmt.Errorf("CELORA_API_KEY is not set")
	}

	cfg, _ := config.LoadConfig()
	model := resolveModel(env, cfg)

	client, err := genai.NewClient(env.APIKey,
		genai.WithModel(model),
		genai.WithBaseURL(env.APIBase),
	)
	if err != nil {
		return nil, "", err
	}
	return client, model, nil
}
