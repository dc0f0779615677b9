package config

import "time"

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	DefaultDBPath = "search_index.db"

	DefaultLinkHost = "t.me"

	DefaultMaxResults       = 5
	DefaultSnippetLength    = 160
	DefaultMinQueryLength   = 2
	DefaultOperationTimeout = 15 * time.Second

	// SQLMaintenanceTask is the registry name of the daily store maintenance job.
	SQLMaintenanceTask     = "sql_maintenance"
	DefaultMaintenanceCron = "0 0 4 * * *"
)

// DefaultMessages holds the stock reply texts. Texts sent with HTML parse
// mode (Welcome, ResultsHeader) must stay valid HTML.
var DefaultMessages = MessagesConfig{
	Welcome: "👋 <b>Hi! I can search channel posts.</b>\n\n" +
		"Normal usage:\n" +
		"1) Ask your bot manager to approve channels first.\n" +
		"2) Send any keywords, e.g. <code>invoice March</code>\n" +
		"3) I will show the top matching posts.\n\n" +
		"Bot manager commands:\n" +
		"/add_admin &lt;user_id&gt;\n" +
		"/remove_admin &lt;user_id&gt;\n" +
		"/list_admins\n" +
		"/allow_channel &lt;channel_id&gt;\n" +
		"/remove_channel &lt;channel_id&gt;\n" +
		"/list_channels\n" +
		"/reindex\n" +
		"/sync_help\n",
	SyncHelp: "Old data sync (manual but safe):\n" +
		"1) Open channel history.\n" +
		"2) Forward old posts to this bot in private chat.\n" +
		"3) I will index forwarded posts only if that source channel is allowed.\n\n" +
		"This protects the bot from random channels being indexed without approval.",

	GeneralError: "❌ An error occurred. Please try again later.",
	NotManager:   "Only bot managers can use this command.",
	OwnerOnlyFmt: "Only the bot owner can %s bot managers.",

	AddAdminUsage:      "Usage: /add_admin <user_id>",
	RemoveAdminUsage:   "Usage: /remove_admin <user_id>",
	AllowChannelUsage:  "Usage: /allow_channel <channel_id>",
	RemoveChannelUsage: "Usage: /remove_channel <channel_id>",
	InvalidUserID:      "user_id must be a number.",
	InvalidChannelID:   "channel_id must be a number.",

	OwnerNotRemovable: "Owner cannot be removed.",
	AdminAddedFmt:     "Added bot manager: %d",
	AdminRemovedFmt:   "Removed bot manager: %d",
	AdminsHeader:      "Bot managers:",

	ChannelInaccessible: "I can't access this channel. Add me as admin first, then retry.",
	NotAChannel:         "This chat_id is not a channel.",
	ChannelAllowedFmt:   "Channel allowed: %s (%d)",
	ChannelRemovedFmt:   "Channel removed: %d",
	ChannelsHeader:      "Allowed channels:",
	NoChannels:          "No channels are allowed yet.",
	ReindexDoneFmt:      "Search index rebuilt: %d messages.",

	ForwardNotApproved: "This source channel is not approved. Ask a bot manager to /allow_channel first.",
	ForwardUnresolved:  "I can't tell which channel post this is. Forward it directly from the channel.",
	ForwardSynced:      "Synced 1 old post into search index ✅",

	QueryTooShortFmt: "Please type at least %d characters to search.",
	QuerySyntax:      "I couldn't understand that search. Try simple keywords like: budget report",
	NoResults:        "No results found. Try another keyword.",
	ResultsHeader:    "🔎 <b>Search results</b>",
	OpenMessage:      "Open message",
	PrivateChannel:   "(Private channel: open it manually in Telegram.)",
	UnknownChannel:   "Unknown Channel",
}

// Default returns a configuration populated with defaults only. Token and
// owner are left empty, so it does not validate until they are set.
func Default() *Config {
	return &Config{
		Logger:   LoggerConfig{Level: DefaultLogLevel, JSON: DefaultLogJSON},
		Database: DatabaseConfig{Path: DefaultDBPath},
		Telegram: TelegramConfig{LinkHost: DefaultLinkHost},
		Search: SearchConfig{
			MaxResults:       DefaultMaxResults,
			SnippetLength:    DefaultSnippetLength,
			MinQueryLength:   DefaultMinQueryLength,
			OperationTimeout: DefaultOperationTimeout,
		},
		Scheduler: SchedulerConfig{
			Tasks: map[string]TaskConfig{
				SQLMaintenanceTask: {Enabled: true, Schedule: DefaultMaintenanceCron},
			},
		},
		Messages: DefaultMessages,
	}
}
