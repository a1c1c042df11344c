package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/adzuna"
	"github.com/okliver/jobwatch/internal/jobcache"
	"github.com/okliver/jobwatch/internal/logger"
	"github.com/okliver/jobwatch/internal/registry"
	"github.com/okliver/jobwatch/internal/resend"
	"github.com/okliver/jobwatch/internal/runner"
	"github.com/okliver/jobwatch/internal/secrets"
)

// components bundles the wired application pieces shared by the serve, run
// and search commands.
type components struct {
	registry *registry.Registry
	cache    *jobcache.Cache
	runner   *runner.Runner
}

func mustSetup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func buildComponents(ctx context.Context, config *Config, logger *zap.Logger) (*components, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Adzuna == nil {
		return nil, errors.New("adzuna section is required in the config")
	}
	if config.Email == nil || config.Email.From == "" {
		return nil, errors.New("email.from address is required in the config")
	}

	appID, err := secrets.LoadFile("adzuna app id",
		fileSetting(config.Adzuna.AppIDFile, "adzuna.app-id-file"))
	if err != nil {
		return nil, err
	}

	appKey, err := secrets.LoadFile("adzuna app key",
		fileSetting(config.Adzuna.AppKeyFile, "adzuna.app-key-file"))
	if err != nil {
		return nil, err
	}

	apiKey, err := secrets.LoadFile("resend api key",
		fileSetting(config.Email.APIKeyFile, "email.api-key-file"))
	if err != nil {
		return nil, err
	}

	country := config.Adzuna.Country
	if country == "" {
		country = defaultCountry
	}
	if !adzuna.IsSupportedCountry(country) {
		return nil, fmt.Errorf("unsupported country code in config: %q", country)
	}

	reg := registry.New()
	for _, seed := range config.Users {
		if seed == nil {
			continue
		}
		user, err := reg.Add(seed.Name, seed.Email, seed.Location, seed.Roles, seed.Skills, seed.MinSalary)
		if err != nil {
			return nil, fmt.Errorf("seeding user %q: %w", seed.Name, err)
		}
		logger.Info("registered user from config", zap.String("user", user.Name))
	}

	client := adzuna.New(ctx, logger, appID, appKey)
	cache := jobcache.New(client, logger)
	mailer := resend.New(ctx, logger, apiKey)

	return &components{
		registry: reg,
		cache:    cache,
		runner:   runner.New(reg, cache, mailer, logger, config.Email.From, country),
	}, nil
}

// fileSetting prefers the value from the parsed config and falls back to
// the env-bound viper key.
func fileSetting(configured, key string) string {
	if configured != "" {
		return configured
	}
	return viper.GetString(key)
}
