// Package config provides configuration loading, validation, and defaults
// for the channel search bot. Values come from an optional YAML file and
// environment variables, in that order of precedence (environment wins).
package config

import (
	"time"

	"github.com/go-telegram/bot/models"
)

// Config defines the application configuration for all components.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Search    SearchConfig    `mapstructure:"search"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Messages  MessagesConfig  `mapstructure:"messages"`
}

// LoggerConfig controls log verbosity and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// DatabaseConfig holds the SQLite store location.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// TelegramConfig holds Bot API credentials and the owner identity.
type TelegramConfig struct {
	Token       string `mapstructure:"token"         validate:"required"`
	OwnerUserID int64  `mapstructure:"owner_user_id" validate:"required,gt=0"`
	// LinkHost is the host used in message permalinks (https://<host>/<handle>/<id>).
	LinkHost string `mapstructure:"link_host" validate:"required,hostname_rfc1123"`

	// BotInfo is filled at startup from getMe.
	BotInfo *models.User `mapstructure:"-" validate:"-"`
}

// SearchConfig tunes the query path.
type SearchConfig struct {
	MaxResults       int           `mapstructure:"max_results"       validate:"min=1,max=50"`
	SnippetLength    int           `mapstructure:"snippet_length"    validate:"min=10,max=1000"`
	MinQueryLength   int           `mapstructure:"min_query_length"  validate:"min=1,max=64"`
	OperationTimeout time.Duration `mapstructure:"operation_timeout" validate:"min=1s,max=5m"`
}

// SchedulerConfig lists scheduled tasks by registry name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a task and sets its cron schedule (with seconds field).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// MessagesConfig holds every text the bot sends back to users.
type MessagesConfig struct {
	Welcome  string `mapstructure:"welcome"   validate:"required"`
	SyncHelp string `mapstructure:"sync_help" validate:"required"`

	GeneralError string `mapstructure:"general_error" validate:"required"`
	NotManager   string `mapstructure:"not_manager"   validate:"required"`
	OwnerOnlyFmt string `mapstructure:"owner_only_fmt" validate:"required"`

	AddAdminUsage      string `mapstructure:"add_admin_usage"      validate:"required"`
	RemoveAdminUsage   string `mapstructure:"remove_admin_usage"   validate:"required"`
	AllowChannelUsage  string `mapstructure:"allow_channel_usage"  validate:"required"`
	RemoveChannelUsage string `mapstructure:"remove_channel_usage" validate:"required"`
	InvalidUserID      string `mapstructure:"invalid_user_id"      validate:"required"`
	InvalidChannelID   string `mapstructure:"invalid_channel_id"   validate:"required"`

	OwnerNotRemovable string `mapstructure:"owner_not_removable" validate:"required"`
	AdminAddedFmt     string `mapstructure:"admin_added_fmt"     validate:"required"`
	AdminRemovedFmt   string `mapstructure:"admin_removed_fmt"   validate:"required"`
	AdminsHeader      string `mapstructure:"admins_header"       validate:"required"`

	ChannelInaccessible string `mapstructure:"channel_inaccessible" validate:"required"`
	NotAChannel         string `mapstructure:"not_a_channel"        validate:"required"`
	ChannelAllowedFmt   string `mapstructure:"channel_allowed_fmt"  validate:"required"`
	ChannelRemovedFmt   string `mapstructure:"channel_removed_fmt"  validate:"required"`
	ChannelsHeader      string `mapstructure:"channels_header"      validate:"required"`
	NoChannels          string `mapstructure:"no_channels"          validate:"required"`
	ReindexDoneFmt      string `mapstructure:"reindex_done_fmt"     validate:"required"`

	ForwardNotApproved string `mapstructure:"forward_not_approved" validate:"required"`
	ForwardUnresolved  string `mapstructure:"forward_unresolved"   validate:"required"`
	ForwardSynced      string `mapstructure:"forward_synced"       validate:"required"`

	QueryTooShortFmt string `mapstructure:"query_too_short_fmt" validate:"required"`
	QuerySyntax      string `mapstructure:"query_syntax"        validate:"required"`
	NoResults        string `mapstructure:"no_results"          validate:"required"`
	ResultsHeader    string `mapstructure:"results_header"      validate:"required"`
	OpenMessage      string `mapstructure:"open_message"        validate:"required"`
	PrivateChannel   string `mapstructure:"private_channel"     validate:"required"`
	UnknownChannel   string `mapstructure:"unknown_channel"     validate:"required"`
}
