package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/edgard/chansearch/internal/errors"
)

// clearEnv unsets every variable LoadConfig reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, envs := range envBindings {
		for _, name := range envs {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
}

func TestLoadConfig_DefaultsWithLegacyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "123456:abcdef")
	t.Setenv("OWNER_USER_ID", "42")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Telegram.Token != "123456:abcdef" {
		t.Errorf("Token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.OwnerUserID != 42 {
		t.Errorf("OwnerUserID = %d, want 42", cfg.Telegram.OwnerUserID)
	}
	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, DefaultDBPath)
	}
	if cfg.Search.MaxResults != DefaultMaxResults {
		t.Errorf("Search.MaxResults = %d, want %d", cfg.Search.MaxResults, DefaultMaxResults)
	}
	if cfg.Search.SnippetLength != DefaultSnippetLength {
		t.Errorf("Search.SnippetLength = %d, want %d", cfg.Search.SnippetLength, DefaultSnippetLength)
	}
	if cfg.Messages.NoResults != DefaultMessages.NoResults {
		t.Errorf("Messages.NoResults = %q", cfg.Messages.NoResults)
	}
	task, ok := cfg.Scheduler.Tasks[SQLMaintenanceTask]
	if !ok || !task.Enabled || task.Schedule != DefaultMaintenanceCron {
		t.Errorf("maintenance task = %+v, ok=%v", task, ok)
	}
}

func TestLoadConfig_PrefixedEnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "legacy-token")
	t.Setenv("BOT_TELEGRAM_TOKEN", "prefixed-token")
	t.Setenv("OWNER_USER_ID", "7")
	t.Setenv("MAX_RESULTS", "9")
	t.Setenv("DB_PATH", "/tmp/x.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Telegram.Token != "prefixed-token" {
		t.Errorf("Token = %q, want prefixed-token", cfg.Telegram.Token)
	}
	if cfg.Search.MaxResults != 9 {
		t.Errorf("MaxResults = %d, want 9", cfg.Search.MaxResults)
	}
	if cfg.Database.Path != "/tmp/x.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logger:
  level: debug
  json: true
database:
  path: data/index.db
telegram:
  token: "file-token"
  owner_user_id: 1001
search:
  max_results: 3
  operation_timeout: 5s
messages:
  no_results: "Nothing here."
scheduler:
  tasks:
    sql_maintenance:
      enabled: false
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Logger.Level != "debug" || !cfg.Logger.JSON {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if cfg.Telegram.OwnerUserID != 1001 {
		t.Errorf("OwnerUserID = %d", cfg.Telegram.OwnerUserID)
	}
	if cfg.Search.MaxResults != 3 {
		t.Errorf("MaxResults = %d", cfg.Search.MaxResults)
	}
	if cfg.Search.OperationTimeout != 5*time.Second {
		t.Errorf("OperationTimeout = %v", cfg.Search.OperationTimeout)
	}
	if cfg.Messages.NoResults != "Nothing here." {
		t.Errorf("NoResults = %q", cfg.Messages.NoResults)
	}
	if cfg.Messages.QuerySyntax != DefaultMessages.QuerySyntax {
		t.Errorf("unset message lost its default: %q", cfg.Messages.QuerySyntax)
	}
	if cfg.Scheduler.Tasks[SQLMaintenanceTask].Enabled {
		t.Errorf("maintenance task should be disabled")
	}
}

func TestLoadConfig_OwnerIsRequired(t *testing.T) {
	tests := []struct {
		name  string
		owner string
	}{
		{name: "missing", owner: ""},
		{name: "zero", owner: "0"},
		{name: "negative", owner: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("TELEGRAM_TOKEN", "token")
			if tt.owner != "" {
				t.Setenv("OWNER_USER_ID", tt.owner)
			}

			_, err := LoadConfig("")
			if err == nil {
				t.Fatal("LoadConfig() error = nil, want configuration error")
			}
			if !errs.Is(err, errs.CodeConfig) {
				t.Errorf("error code = %s, want %s", errs.Code(err), errs.CodeConfig)
			}
		})
	}
}

func TestLoadConfig_NonNumericOwner(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("OWNER_USER_ID", "not-a-number")

	_, err := LoadConfig("")
	if !errs.Is(err, errs.CodeConfig) {
		t.Fatalf("LoadConfig() error = %v, want configuration error", err)
	}
}

func TestValidate_RejectsOutOfRangeSearch(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Telegram.Token = "token"
	cfg.Telegram.OwnerUserID = 1
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate(valid) error = %v", err)
	}

	cfg.Search.MaxResults = 0
	if err := Validate(cfg); !errs.Is(err, errs.CodeConfig) {
		t.Errorf("Validate(max_results=0) error = %v, want configuration error", err)
	}
}

func TestValidate_LinkHost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host    string
		wantErr bool
	}{
		{host: DefaultLinkHost},
		{host: "telegram.me"},
		{host: "links.example.org"},
		{host: "", wantErr: true},
		{host: "not a host", wantErr: true},
		{host: "https://t.me", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			cfg.Telegram.Token = "123:abc"
			cfg.Telegram.OwnerUserID = 42
			cfg.Telegram.LinkHost = tt.host

			err := Validate(cfg)
			if tt.wantErr {
				if !errs.Is(err, errs.CodeConfig) {
					t.Errorf("Validate(link_host=%q) error = %v, want configuration error", tt.host, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate(link_host=%q) error = %v", tt.host, err)
			}
		})
	}
}
