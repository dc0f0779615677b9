package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	errs "github.com/edgard/chansearch/internal/errors"
)

// envBindings maps config keys to the environment variables that may set
// them, in precedence order. The unprefixed names match older deployments.
var envBindings = map[string][]string{
	"logger.level":             {"BOT_LOGGER_LEVEL", "LOG_LEVEL"},
	"logger.json":              {"BOT_LOGGER_JSON"},
	"database.path":            {"BOT_DATABASE_PATH", "DB_PATH"},
	"telegram.token":           {"BOT_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"},
	"telegram.owner_user_id":   {"BOT_TELEGRAM_OWNER_USER_ID", "OWNER_USER_ID"},
	"telegram.link_host":       {"BOT_TELEGRAM_LINK_HOST"},
	"search.max_results":       {"BOT_SEARCH_MAX_RESULTS", "MAX_RESULTS"},
	"search.snippet_length":    {"BOT_SEARCH_SNIPPET_LENGTH"},
	"search.min_query_length":  {"BOT_SEARCH_MIN_QUERY_LENGTH"},
	"search.operation_timeout": {"BOT_SEARCH_OPERATION_TIMEOUT"},
}

// LoadConfig loads configuration in three layers: built-in defaults, the YAML
// file at path (optional), and environment variables. The result is validated;
// any failure is returned as a configuration error and must abort startup.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, envs := range envBindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return nil, errs.NewConfigError("failed to bind environment for "+key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, errs.NewConfigError(fmt.Sprintf("failed to read config file %s", path), err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, errs.NewConfigError(fmt.Sprintf("failed to stat config file %s", path), err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errs.NewConfigError("failed to parse config", err)
	}
	cfg.Telegram.Token = strings.TrimSpace(cfg.Telegram.Token)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the struct rules. A missing or non-positive owner id is
// reported like every other rule violation, as a configuration error.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errs.NewConfigError("config is nil", nil)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return errs.NewConfigError("invalid configuration: "+strings.Join(fields, ", "), err)
		}
		return errs.NewConfigError("invalid configuration", err)
	}

	return nil
}
