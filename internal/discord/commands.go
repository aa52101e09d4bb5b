package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/cooldown"
	"github.com/osse101/SpellcastersBot_Go/internal/logger"
	"github.com/osse101/SpellcastersBot_Go/internal/metrics"
	"github.com/osse101/SpellcastersBot_Go/internal/stats"
)

// Services are the dependencies command handlers work with
type Services struct {
	Catalog         catalog.Service
	Stats           stats.Service
	Cooldowns       cooldown.Service
	Reporter        logger.Reporter
	RefreshLimiter  *rate.Limiter
	DefaultCooldown time.Duration
	AppID           string
	Version         string
}

// CommandHandler handles a slash command, autocomplete request or component click.
// A returned error is logged, counted and reported; the user sees a generic message.
type CommandHandler func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error

// Command bundles a slash command definition with its handlers
type Command struct {
	Definition   *discordgo.ApplicationCommand
	Handler      CommandHandler
	Autocomplete CommandHandler
	// Cooldown overrides Services.DefaultCooldown when non-zero
	Cooldown time.Duration
}

// CommandFactory creates a Discord command.
// Used to register all available commands in one place.
type CommandFactory func() Command

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands     map[string]*discordgo.ApplicationCommand
	Handlers     map[string]CommandHandler
	Autocomplete map[string]CommandHandler
	Components   map[string]CommandHandler
	Cooldowns    map[string]time.Duration

	order []string
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:     make(map[string]*discordgo.ApplicationCommand),
		Handlers:     make(map[string]CommandHandler),
		Autocomplete: make(map[string]CommandHandler),
		Components:   make(map[string]CommandHandler),
		Cooldowns:    make(map[string]time.Duration),
	}
}

// NewDefaultRegistry creates a registry holding every bot command
func NewDefaultRegistry() *CommandRegistry {
	r := NewCommandRegistry()
	for _, factory := range CommandFactories() {
		r.Register(factory())
	}
	r.RegisterComponent(ListComponentPrefix, handleListPage)
	return r
}

// CommandFactories returns every command the bot serves, in help order
func CommandFactories() []CommandFactory {
	return []CommandFactory{
		SearchCommand,
		HeroCommand,
		ListCommand,
		CompareCommand,
		RandomCommand,
		RefreshCommand,
		StatsCommand,
		HelpCommand,
		AboutCommand,
		InviteCommand,
		PingCommand,
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd Command) {
	name := cmd.Definition.Name
	if _, exists := r.Commands[name]; !exists {
		r.order = append(r.order, name)
	}
	r.Commands[name] = cmd.Definition
	r.Handlers[name] = cmd.Handler
	if cmd.Autocomplete != nil {
		r.Autocomplete[name] = cmd.Autocomplete
	}
	if cmd.Cooldown > 0 {
		r.Cooldowns[name] = cmd.Cooldown
	}
}

// RegisterComponent routes message components whose custom ID starts with prefix
func (r *CommandRegistry) RegisterComponent(prefix string, handler CommandHandler) {
	r.Components[prefix] = handler
}

// Definitions returns the command definitions in registration order
func (r *CommandRegistry) Definitions() []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.Commands[name])
	}
	return out
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		r.handleCommand(ctx, s, i, svc)
	case discordgo.InteractionApplicationCommandAutocomplete:
		r.handleAutocomplete(ctx, s, i, svc)
	case discordgo.InteractionMessageComponent:
		r.handleComponent(ctx, s, i, svc)
	}
}

func (r *CommandRegistry) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	name := i.ApplicationCommandData().Name
	log := logger.FromContext(ctx).With("command", name)

	h, ok := r.Handlers[name]
	if !ok {
		log.Error("No command matching interaction was found")
		return
	}

	if svc.Cooldowns != nil {
		if user := getInteractionUser(i); user != nil {
			if err := svc.Cooldowns.Enforce(name, user.ID, r.cooldownFor(name, svc)); err != nil {
				respondEphemeral(s, i, "⏳ "+err.Error())
				return
			}
		}
	}

	if svc.Stats != nil {
		svc.Stats.RecordCommand(name)
	}

	start := time.Now()
	err := safeCall(ctx, h, s, i, svc)
	metrics.CommandDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.CommandErrors.WithLabelValues(name).Inc()
		report(ctx, svc, ScopeCommand+name, err)
		replyError(s, i, MsgGenericError)
	}
}

func (r *CommandRegistry) handleAutocomplete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	name := i.ApplicationCommandData().Name
	h, ok := r.Autocomplete[name]
	if !ok {
		slog.Warn("Unhandled autocomplete command", "command", name)
		return
	}
	if err := safeCall(ctx, h, s, i, svc); err != nil {
		report(ctx, svc, ScopeAutocomplete+name, err)
	}
}

func (r *CommandRegistry) handleComponent(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) {
	customID := i.MessageComponentData().CustomID
	prefix, _, _ := strings.Cut(customID, CustomIDSeparator)

	h, ok := r.Components[prefix]
	if !ok {
		slog.Warn("Unhandled message component", "custom_id", customID)
		return
	}
	if err := safeCall(ctx, h, s, i, svc); err != nil {
		report(ctx, svc, ScopeComponent+prefix, err)
		respondEphemeral(s, i, MsgGenericError)
	}
}

func (r *CommandRegistry) cooldownFor(name string, svc *Services) time.Duration {
	if d, ok := r.Cooldowns[name]; ok {
		return d
	}
	return svc.DefaultCooldown
}

// safeCall runs a handler and turns a panic into an error
func safeCall(ctx context.Context, h CommandHandler, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
		}
	}()
	return h(ctx, s, i, svc)
}

func report(ctx context.Context, svc *Services, scope string, err error) {
	if svc.Reporter != nil {
		svc.Reporter.Report(ctx, scope, err)
		return
	}
	logger.FromContext(ctx).Error("Interaction failed", logger.AttrKeyScope, scope, logger.AttrKeyError, err)
}

// RegisterCommands intelligently registers/updates commands with Discord
// Only performs updates if commands have changed to avoid rate limits.
// Commands are registered to GuildID when set, globally otherwise.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...", "guild_id", b.GuildID)

	appID := b.ApplicationID()
	if appID == "" {
		return errors.New("application ID unknown: set DISCORD_APP_ID or open the session first")
	}

	existingCmds, err := b.Session.ApplicationCommands(appID, b.GuildID)
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := registry.Definitions()

	// If force update, use bulk overwrite
	if forceUpdate {
		slog.Info("Force update enabled - replacing all commands", "count", len(desiredCmds))
		_, err := b.Session.ApplicationCommandBulkOverwrite(appID, b.GuildID, desiredCmds)
		if err != nil {
			return fmt.Errorf("failed to bulk overwrite commands: %w", err)
		}
		slog.Info("Commands force updated successfully")
		return nil
	}

	if commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	slog.Info("Commands changed, updating...",
		"existing", len(existingCmds),
		"desired", len(desiredCmds))

	_, err = b.Session.ApplicationCommandBulkOverwrite(appID, b.GuildID, desiredCmds)
	if err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// ClearGuildCommands removes guild-scoped commands from every guild the bot
// is in, so they stop masking the global ones. Returns the number of guilds cleared.
func (b *Bot) ClearGuildCommands() (int, error) {
	appID := b.ApplicationID()
	if appID == "" {
		return 0, errors.New("application ID unknown: set DISCORD_APP_ID or open the session first")
	}

	guilds, err := b.Session.UserGuilds(200, "", "", false)
	if err != nil {
		return 0, fmt.Errorf("failed to list guilds: %w", err)
	}

	var errs []error
	cleared := 0
	for _, g := range guilds {
		cmds, err := b.Session.ApplicationCommands(appID, g.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", g.ID, err))
			continue
		}
		if len(cmds) == 0 {
			continue
		}
		slog.Info("Removing stale guild commands", "guild", g.Name, "count", len(cmds))
		if _, err := b.Session.ApplicationCommandBulkOverwrite(appID, g.ID, []*discordgo.ApplicationCommand{}); err != nil {
			errs = append(errs, fmt.Errorf("guild %s: %w", g.ID, err))
			continue
		}
		cleared++
	}
	return cleared, errors.Join(errs...)
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand)
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, desired := range desired {
		existing, ok := existingMap[desired.Name]
		if !ok {
			return false
		}
		if !commandEqual(existing, desired) {
			return false
		}
	}

	return true
}

// commandEqual checks if two commands are equivalent
func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && b.DefaultMemberPermissions != nil {
		if *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
			return false
		}
	}

	if len(a.Options) != len(b.Options) {
		return false
	}

	for i := range a.Options {
		if !optionEqual(a.Options[i], b.Options[i]) {
			return false
		}
	}

	return true
}

// optionEqual checks if two command options are equivalent
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}

	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}

	return true
}

// deferResponse acknowledges an interaction with a deferred message.
// Required before any async operations that might take longer than 3 seconds.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) bool {
	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		resp.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// respondEphemeral replies with a message only the invoker can see
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to send ephemeral response", "error", err)
	}
}

// respondMessage replaces a deferred response with a plain message
func respondMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondError replaces a deferred response with an error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondMessage(s, i, message)
}

// replyError answers an interaction whether or not it was already acknowledged
func replyError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		return
	}
	// Already acknowledged
	if _, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: message,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		slog.Error("Failed to send error follow-up", "error", err)
	}
}

// sendEmbed sends an embed message with standardized error handling.
// Logs errors internally - no need for callers to handle send errors.
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, content string, embed *discordgo.MessageEmbed) {
	edit := &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}
	if content != "" {
		edit.Content = &content
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// respondEmbed replies immediately with an embed
func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// getOptions extracts command options from an interaction.
func getOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	return i.ApplicationCommandData().Options
}

// stringOption returns the value of a named string option, or "" when absent
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range getOptions(i) {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

// loadStore returns the current catalog snapshot. On failure the deferred
// response is replaced with a friendly message and false is returned.
func loadStore(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) (*catalog.Store, bool) {
	store, err := svc.Catalog.FetchData(ctx, false)
	if err != nil {
		logger.FromContext(ctx).Warn("Catalog unavailable", "error", err)
		respondError(s, i, MsgDataUnavailable)
		return nil, false
	}
	return store, true
}
