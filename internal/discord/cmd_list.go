package discord

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/SpellcastersBot_Go/internal/catalog"
	"github.com/osse101/SpellcastersBot_Go/internal/domain"
)

// listState is everything a page button needs to rebuild its page. It lives in
// the button custom ID so no pagination state is held in memory.
type listState struct {
	Action string
	UserID string
	Type   string
	School string
	Rank   string
	Sort   catalog.SortOrder
	Page   int
	Issued time.Time
}

const listStateFields = 9

var errMalformedListID = errors.New("malformed list button id")

func (st listState) customID() string {
	return strings.Join([]string{
		ListComponentPrefix,
		st.Action,
		st.UserID,
		st.Type,
		st.School,
		st.Rank,
		string(st.Sort),
		strconv.Itoa(st.Page),
		strconv.FormatInt(st.Issued.Unix(), 10),
	}, CustomIDSeparator)
}

func parseListState(customID string) (listState, error) {
	parts := strings.Split(customID, CustomIDSeparator)
	if len(parts) != listStateFields || parts[0] != ListComponentPrefix {
		return listState{}, fmt.Errorf("%w: %q", errMalformedListID, customID)
	}
	page, err := strconv.Atoi(parts[7])
	if err != nil {
		return listState{}, fmt.Errorf("%w: page: %v", errMalformedListID, err)
	}
	issued, err := strconv.ParseInt(parts[8], 10, 64)
	if err != nil {
		return listState{}, fmt.Errorf("%w: issued: %v", errMalformedListID, err)
	}
	return listState{
		Action: parts[1],
		UserID: parts[2],
		Type:   parts[3],
		School: parts[4],
		Rank:   parts[5],
		Sort:   catalog.ParseSortOrder(parts[6]),
		Page:   page,
		Issued: time.Unix(issued, 0),
	}, nil
}

func (st listState) expired(now time.Time) bool {
	return now.Sub(st.Issued) > PaginationTimeout
}

func (st listState) filter() catalog.FilterOptions {
	return catalog.FilterOptions{Type: st.Type, School: st.School, Rank: st.Rank}
}

// ListCommand returns the list command definition and handler
func ListCommand() Command {
	typeChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.EntityTypes()))
	for _, t := range domain.EntityTypes() {
		typeChoices = append(typeChoices, &discordgo.ApplicationCommandOptionChoice{Name: pluralName(t), Value: string(t)})
	}
	schoolChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.MagicSchools))
	for _, school := range domain.MagicSchools {
		schoolChoices = append(schoolChoices, &discordgo.ApplicationCommandOptionChoice{Name: school, Value: school})
	}
	rankChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(domain.Ranks))
	for _, rank := range domain.Ranks {
		rankChoices = append(rankChoices, &discordgo.ApplicationCommandOptionChoice{Name: "Rank " + rank, Value: rank})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        "list",
		Description: "List entities with filters",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "type",
				Description: "Type of entity",
				Required:    true,
				Choices:     typeChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "school",
				Description: "Magic School filter",
				Choices:     schoolChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "rank",
				Description: "Rank filter",
				Choices:     rankChoices,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "sort",
				Description: "Sort order (default: Name)",
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Name (A-Z)", Value: string(catalog.SortByName)},
					{Name: "Rank", Value: string(catalog.SortByRank)},
				},
			},
		},
	}

	handler := func(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
		user := getInteractionUser(i)
		if user == nil {
			return errors.New("list: interaction has no user")
		}

		st := listState{
			UserID: user.ID,
			Type:   stringOption(i, "type"),
			School: stringOption(i, "school"),
			Rank:   stringOption(i, "rank"),
			Sort:   catalog.ParseSortOrder(stringOption(i, "sort")),
			Issued: time.Now(),
		}

		if !deferResponse(s, i, false) {
			return nil
		}

		store, ok := loadStore(ctx, s, i, svc)
		if !ok {
			return nil
		}

		entities := catalog.SortEntities(catalog.FilterStore(store, st.filter()), st.Sort)
		if len(entities) == 0 {
			respondError(s, i, MsgNoListResults)
			return nil
		}

		embed, components := listPage(entities, st, linksFor(store))
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &[]*discordgo.MessageEmbed{embed},
			Components: &components,
		}); err != nil {
			return fmt.Errorf("send list page: %w", err)
		}
		return nil
	}

	return Command{Definition: cmd, Handler: handler}
}

// handleListPage answers a prev/next click by re-filtering the current
// snapshot and rendering the requested page in place
func handleListPage(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, svc *Services) error {
	st, err := parseListState(i.MessageComponentData().CustomID)
	if err != nil {
		return err
	}

	user := getInteractionUser(i)
	if user == nil || user.ID != st.UserID {
		respondEphemeral(s, i, MsgNotYourButtons)
		return nil
	}
	if st.expired(time.Now()) {
		respondEphemeral(s, i, MsgButtonsExpired)
		return nil
	}

	store, err := svc.Catalog.FetchData(ctx, false)
	if err != nil {
		respondEphemeral(s, i, MsgDataUnavailable)
		return nil
	}

	entities := catalog.SortEntities(catalog.FilterStore(store, st.filter()), st.Sort)
	if len(entities) == 0 {
		respondEphemeral(s, i, MsgNoListResults)
		return nil
	}

	embed, components := listPage(entities, st, linksFor(store))
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// listPage renders one entity per page with prev/next buttons. The page is
// clamped so a refresh that shrinks the result set never goes out of range.
func listPage(entities []domain.Entity, st listState, links Links) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	total := len(entities)
	page := max(0, min(st.Page, total-1))

	entity := entities[page]
	embed := EntityEmbed(entity, links)
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf(FooterPageFormat, page+1, total, domain.SlugOf(entity)),
	}

	prev, next := st, st
	prev.Action, prev.Page = PagePrev, page-1
	next.Action, next.Page = PageNext, page+1

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "◀️ Prev",
					Style:    discordgo.PrimaryButton,
					CustomID: prev.customID(),
					Disabled: page == 0,
				},
				discordgo.Button{
					Label:    "Next ▶️",
					Style:    discordgo.PrimaryButton,
					CustomID: next.customID(),
					Disabled: page == total-1,
				},
			},
		},
	}
	return embed, components
}
