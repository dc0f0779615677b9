// Package admin implements the manager commands that maintain the admin set
// and the channel allow-list. Only the owner may change the admin set; any
// manager may change the allow-list.
package admin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/edgard/chansearch/internal/config"
	"github.com/edgard/chansearch/internal/database"
	errs "github.com/edgard/chansearch/internal/errors"
)

// Command names as typed after the slash.
const (
	CommandAddAdmin      = "add_admin"
	CommandRemoveAdmin   = "remove_admin"
	CommandListAdmins    = "list_admins"
	CommandAllowChannel  = "allow_channel"
	CommandRemoveChannel = "remove_channel"
	CommandListChannels  = "list_channels"
	CommandReindex       = "reindex"
)

// Commands lists every command handled by Execute.
var Commands = []string{
	CommandAddAdmin,
	CommandRemoveAdmin,
	CommandListAdmins,
	CommandAllowChannel,
	CommandRemoveChannel,
	CommandListChannels,
	CommandReindex,
}

// Command is an admin command issued by ActorID.
type Command struct {
	ActorID int64
	Name    string
	Args    []string
}

// ChannelInfo is what the transport knows about a chat.
type ChannelInfo struct {
	ID        int64
	Title     string
	Username  string
	IsChannel bool
}

// ChannelResolver looks up live chat metadata through the messaging platform.
type ChannelResolver interface {
	ResolveChannel(ctx context.Context, chatID int64) (*ChannelInfo, error)
}

// Service executes admin commands against the registry.
type Service struct {
	store    database.Store
	resolver ChannelResolver
	ownerID  int64
	messages config.MessagesConfig
	logger   *slog.Logger
}

// NewService creates a Service. ownerID is the configured bot owner.
func NewService(store database.Store, resolver ChannelResolver, ownerID int64, messages config.MessagesConfig, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:    store,
		resolver: resolver,
		ownerID:  ownerID,
		messages: messages,
		logger:   logger.With("component", "admin"),
	}
}

// Authorize returns a policy error with the "managers only" hint unless
// userID is in the admin set.
func (s *Service) Authorize(ctx context.Context, userID int64) error {
	ok, err := s.store.IsAdmin(ctx, userID)
	if err != nil {
		return errs.NewDatabaseError("failed to check manager", err)
	}
	if !ok {
		return errs.NewUnauthorizedError(fmt.Sprintf("user %d is not a manager", userID), s.messages.NotManager)
	}
	return nil
}

// Execute runs cmd and returns the plain-text reply. Policy and validation
// failures carry the reply text as their hint.
func (s *Service) Execute(ctx context.Context, cmd Command) (string, error) {
	if err := s.Authorize(ctx, cmd.ActorID); err != nil {
		return "", err
	}

	s.logger.DebugContext(ctx, "Executing admin command", "command", cmd.Name, "user_id", cmd.ActorID)

	switch cmd.Name {
	case CommandAddAdmin:
		return s.addAdmin(ctx, cmd)
	case CommandRemoveAdmin:
		return s.removeAdmin(ctx, cmd)
	case CommandListAdmins:
		return s.listAdmins(ctx)
	case CommandAllowChannel:
		return s.allowChannel(ctx, cmd)
	case CommandRemoveChannel:
		return s.removeChannel(ctx, cmd)
	case CommandListChannels:
		return s.listChannels(ctx)
	case CommandReindex:
		return s.reindex(ctx)
	default:
		return "", fmt.Errorf("unknown admin command %q", cmd.Name)
	}
}

func (s *Service) requireOwner(cmd Command, verb string) error {
	if cmd.ActorID != s.ownerID {
		return errs.NewUnauthorizedError(
			fmt.Sprintf("user %d is not the owner", cmd.ActorID),
			fmt.Sprintf(s.messages.OwnerOnlyFmt, verb))
	}
	return nil
}

func (s *Service) addAdmin(ctx context.Context, cmd Command) (string, error) {
	if err := s.requireOwner(cmd, "add"); err != nil {
		return "", err
	}
	userID, err := idArg(cmd.Args, s.messages.AddAdminUsage, s.messages.InvalidUserID)
	if err != nil {
		return "", err
	}
	if userID <= 0 {
		return "", errs.NewValidationError("non-positive user id", s.messages.InvalidUserID)
	}

	if err := s.store.AddAdmin(ctx, userID); err != nil {
		return "", errs.NewDatabaseError("failed to add admin", err)
	}
	return fmt.Sprintf(s.messages.AdminAddedFmt, userID), nil
}

func (s *Service) removeAdmin(ctx context.Context, cmd Command) (string, error) {
	if err := s.requireOwner(cmd, "remove"); err != nil {
		return "", err
	}
	userID, err := idArg(cmd.Args, s.messages.RemoveAdminUsage, s.messages.InvalidUserID)
	if err != nil {
		return "", err
	}
	if userID == s.ownerID {
		return "", errs.NewUnauthorizedError("owner cannot be removed", s.messages.OwnerNotRemovable)
	}

	if err := s.store.RemoveAdmin(ctx, userID); err != nil {
		return "", errs.NewDatabaseError("failed to remove admin", err)
	}
	return fmt.Sprintf(s.messages.AdminRemovedFmt, userID), nil
}

func (s *Service) listAdmins(ctx context.Context) (string, error) {
	admins, err := s.store.ListAdmins(ctx)
	if err != nil {
		return "", errs.NewDatabaseError("failed to list admins", err)
	}

	lines := make([]string, 0, len(admins)+1)
	lines = append(lines, s.messages.AdminsHeader)
	for _, a := range admins {
		lines = append(lines, strconv.FormatInt(a.UserID, 10))
	}
	return strings.Join(lines, "\n"), nil
}

// allowChannel grants a channel only after the platform confirms it exists,
// is reachable by the bot and is a channel.
func (s *Service) allowChannel(ctx context.Context, cmd Command) (string, error) {
	channelID, err := idArg(cmd.Args, s.messages.AllowChannelUsage, s.messages.InvalidChannelID)
	if err != nil {
		return "", err
	}

	info, err := s.resolver.ResolveChannel(ctx, channelID)
	if err != nil || info == nil {
		s.logger.WarnContext(ctx, "Channel lookup failed", "channel_id", channelID, "error", err)
		return "", errs.NewValidationError("channel not accessible", s.messages.ChannelInaccessible)
	}
	if !info.IsChannel {
		return "", errs.NewValidationError("chat is not a channel", s.messages.NotAChannel)
	}

	title := strings.TrimSpace(info.Title)
	if title == "" {
		title = s.messages.UnknownChannel
	}
	if err := s.store.GrantChannel(ctx, &database.AllowedChannel{
		ChannelID:       info.ID,
		ChannelTitle:    title,
		ChannelUsername: database.NullableString(info.Username),
		AddedBy:         cmd.ActorID,
	}); err != nil {
		return "", errs.NewDatabaseError("failed to grant channel", err)
	}

	display := info.Title
	if strings.TrimSpace(display) == "" {
		display = strconv.FormatInt(info.ID, 10)
	}
	return fmt.Sprintf(s.messages.ChannelAllowedFmt, display, info.ID), nil
}

func (s *Service) removeChannel(ctx context.Context, cmd Command) (string, error) {
	channelID, err := idArg(cmd.Args, s.messages.RemoveChannelUsage, s.messages.InvalidChannelID)
	if err != nil {
		return "", err
	}

	if err := s.store.RevokeChannel(ctx, channelID); err != nil {
		return "", errs.NewDatabaseError("failed to revoke channel", err)
	}
	return fmt.Sprintf(s.messages.ChannelRemovedFmt, channelID), nil
}

func (s *Service) listChannels(ctx context.Context) (string, error) {
	channels, err := s.store.ListChannels(ctx)
	if err != nil {
		return "", errs.NewDatabaseError("failed to list channels", err)
	}
	if len(channels) == 0 {
		return s.messages.NoChannels, nil
	}

	lines := make([]string, 0, len(channels)+1)
	lines = append(lines, s.messages.ChannelsHeader)
	for _, c := range channels {
		handle := "(private)"
		if c.ChannelUsername.Valid && c.ChannelUsername.String != "" {
			handle = "@" + c.ChannelUsername.String
		}
		lines = append(lines, fmt.Sprintf("- %s | %d | %s", c.ChannelTitle, c.ChannelID, handle))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Service) reindex(ctx context.Context) (string, error) {
	count, err := s.store.RebuildSearchIndex(ctx)
	if err != nil {
		return "", errs.NewDatabaseError("failed to rebuild search index", err)
	}
	return fmt.Sprintf(s.messages.ReindexDoneFmt, count), nil
}

// idArg parses the first argument as an integer id.
func idArg(args []string, usage, invalid string) (int64, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return 0, errs.NewValidationError("missing id argument", usage)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, errs.NewValidationError(fmt.Sprintf("invalid id %q", args[0]), invalid)
	}
	return id, nil
}
