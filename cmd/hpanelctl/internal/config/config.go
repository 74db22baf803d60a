package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/hellopaaitech-arch/hellopaai-go/cmd/hpanelctl/internal/client"
)

type contextKey string

const configKey contextKey = "hpanelctl-config"

// Env is the CLI's environment configuration. Flags override these.
type Env struct {
	ServerURL      string `env:"HPANEL_SERVER_URL, default=http://localhost:4000"`
	StoreBackend   string `env:"HPANEL_CREDENTIAL_STORE, default=file"`
	StoreDSN       string `env:"HPANEL_CREDENTIAL_STORE_DSN"`
	BearerToken    string `env:"HPANEL_BEARER_TOKEN"`
	NonInteractive bool   `env:"HPANEL_NON_INTERACTIVE"`
}

// LoadEnv reads the HPANEL_* environment.
func LoadEnv(ctx context.Context) (Env, error) {
	var e Env
	if err := envconfig.Process(ctx, &e); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return e, nil
}

// GlobalConfig holds shared configuration for all hpanelctl commands.
// The root command's PersistentPreRun injects it into the cobra command
// context; subcommands consume it from there.
type GlobalConfig struct {
	ServerURL      string
	NonInteractive bool
	Provider       *client.Provider
}

// InjectConfig adds config to the cobra command context.
func InjectConfig(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the cobra command context.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics. Only for
// command RunE functions, where the root command has already injected it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("hpanelctl: config not found in context - this is a bug in hpanelctl")
	}
	return cfg
}
