package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/oddsapi"
	"github.com/gridironlabs/gridiron-system/repositories"
)

// propMarketDefs seeds the supported prop markets; the feed market key is
// also the prop type key.
var propMarketDefs = []models.PlayerPropType{
	{Key: string(models.MarketPlayerPassTDs), DisplayName: "Passing Touchdowns", Category: "passing", StatType: "touchdowns", IsActive: true},
	{Key: string(models.MarketPlayerPassYards), DisplayName: "Passing Yards", Category: "passing", StatType: "yards", IsActive: true},
	{Key: string(models.MarketPlayerRushYards), DisplayName: "Rushing Yards", Category: "rushing", StatType: "yards", IsActive: true},
	{Key: string(models.MarketPlayerRecYards), DisplayName: "Receiving Yards", Category: "receiving", StatType: "yards", IsActive: true},
	{Key: string(models.MarketPlayerReceptions), DisplayName: "Receptions", Category: "receiving", StatType: "receptions", IsActive: true},
	{Key: string(models.MarketPlayerAnytimeTD), DisplayName: "Anytime Touchdown", Category: "scoring", StatType: "touchdowns", IsActive: true},
}

type PropSyncResult struct {
	GamesChecked int `json:"games_checked"`
	PropsUpdated int `json:"props_updated"`
	Unmatched    int `json:"unmatched_players"`
}

type PropService interface {
	// SeedPropTypes upserts the supported prop market catalogue.
	SeedPropTypes(ctx context.Context) error
	// SyncPlayerProps pulls prop markets for upcoming games and stores
	// each bookmaker's main line, matching players by name.
	SyncPlayerProps(ctx context.Context) (*PropSyncResult, error)

	ListPropTypes(ctx context.Context, activeOnly bool) ([]models.PlayerPropType, error)
	ListGameProps(ctx context.Context, gameID int) ([]models.PlayerProp, error)
	ListPlayerProps(ctx context.Context, playerID string, limit int) ([]models.PlayerProp, error)
}

type propService struct {
	feed          *oddsapi.Client
	propRepo      repositories.PropRepository
	gameRepo      repositories.GameRepository
	playerRepo    repositories.PlayerRepository
	bookmakerRepo repositories.BookmakerRepository
	logger        *slog.Logger
}

func NewPropService(
	feed *oddsapi.Client,
	propRepo repositories.PropRepository,
	gameRepo repositories.GameRepository,
	playerRepo repositories.PlayerRepository,
	bookmakerRepo repositories.BookmakerRepository,
	logger *slog.Logger,
) PropService {
	return &propService{
		feed:          feed,
		propRepo:      propRepo,
		gameRepo:      gameRepo,
		playerRepo:    playerRepo,
		bookmakerRepo: bookmakerRepo,
		logger:        logger,
	}
}

func (s *propService) SeedPropTypes(ctx context.Context) error {
	for i := range propMarketDefs {
		pt := propMarketDefs[i]
		if err := s.propRepo.UpsertPropType(ctx, &pt); err != nil {
			return err
		}
	}
	return nil
}

func (s *propService) SyncPlayerProps(ctx context.Context) (*PropSyncResult, error) {
	if s.feed == nil {
		return nil, ErrOddsFeedUnavailable
	}

	if err := s.SeedPropTypes(ctx); err != nil {
		return nil, err
	}
	propTypes, err := s.propRepo.ListPropTypes(ctx, true)
	if err != nil {
		return nil, err
	}
	typeByKey := make(map[string]*models.PlayerPropType, len(propTypes))
	markets := make([]string, 0, len(propTypes))
	for i := range propTypes {
		typeByKey[propTypes[i].Key] = &propTypes[i]
		markets = append(markets, propTypes[i].Key)
	}

	games, err := s.gameRepo.ListUpcoming(ctx, 32)
	if err != nil {
		return nil, err
	}

	result := &PropSyncResult{}
	playerCache := make(map[string]*string) // lowercase name -> gsis id (nil when unmatched)

	for i := range games {
		game := &games[i]
		event, err := s.feed.GetEventPlayerProps(ctx, game.OddsAPIID, markets)
		if err != nil {
			s.logger.Warn("failed to fetch player props",
				slog.Int("game_id", game.ID), slog.Any("error", err))
			continue
		}
		result.GamesChecked++

		updated, unmatched := s.storeEventProps(ctx, game, event, typeByKey, playerCache)
		result.PropsUpdated += updated
		result.Unmatched += unmatched
	}

	s.logger.Info("player prop sync complete",
		slog.Int("games", result.GamesChecked),
		slog.Int("props", result.PropsUpdated),
		slog.Int("unmatched", result.Unmatched))
	return result, nil
}

func (s *propService) storeEventProps(
	ctx context.Context,
	game *models.NFLGame,
	event *oddsapi.Event,
	typeByKey map[string]*models.PlayerPropType,
	playerCache map[string]*string,
) (updated, unmatched int) {
	for _, fb := range event.Bookmakers {
		bm := &models.Bookmaker{
			Key:            fb.Key,
			Title:          fb.Title,
			Region:         models.RegionUS,
			IsActive:       true,
			HasPlayerProps: true,
		}
		if err := s.bookmakerRepo.Upsert(ctx, bm); err != nil {
			s.logger.Warn("failed to upsert bookmaker", slog.String("key", fb.Key), slog.Any("error", err))
			continue
		}

		for _, market := range fb.Markets {
			propType, ok := typeByKey[market.Key]
			if !ok {
				continue
			}
			for _, prop := range collateOverUnder(market.Outcomes) {
				playerID := s.matchPlayer(ctx, prop.playerName, playerCache)
				if playerID == nil {
					unmatched++
					continue
				}
				row := &models.PlayerProp{
					NFLGameID:           game.ID,
					PlayerID:            *playerID,
					BookmakerID:         bm.ID,
					PropTypeID:          propType.ID,
					Line:                prop.line,
					OverPrice:           prop.overPrice,
					UnderPrice:          prop.underPrice,
					BookmakerLastUpdate: fb.LastUpdate,
				}
				if err := s.propRepo.UpsertMainLine(ctx, row); err != nil {
					if !errors.Is(err, repositories.ErrPlayerPropPlayerUnset) {
						s.logger.Warn("failed to upsert player prop",
							slog.String("player", prop.playerName), slog.Any("error", err))
					}
					continue
				}
				updated++
			}
		}
	}
	return updated, unmatched
}

type collatedProp struct {
	playerName string
	line       *float64
	overPrice  *float64
	underPrice *float64
}

// collateOverUnder pairs a market's Over/Under outcomes by player. The
// feed puts the player name in the outcome description and the side in
// the name; anytime-TD markets only carry a "Yes" side.
func collateOverUnder(outcomes []oddsapi.Outcome) []collatedProp {
	byPlayer := make(map[string]*collatedProp)
	order := make([]string, 0)

	for i := range outcomes {
		out := outcomes[i]
		if out.Description == "" {
			continue
		}
		prop, ok := byPlayer[out.Description]
		if !ok {
			prop = &collatedProp{playerName: out.Description}
			byPlayer[out.Description] = prop
			order = append(order, out.Description)
		}
		price := out.Price
		switch out.Name {
		case "Over", "Yes":
			prop.overPrice = &price
		case "Under", "No":
			prop.underPrice = &price
		}
		if out.Point != nil {
			prop.line = out.Point
		}
	}

	props := make([]collatedProp, 0, len(order))
	for _, name := range order {
		props = append(props, *byPlayer[name])
	}
	return props
}

func (s *propService) matchPlayer(ctx context.Context, name string, cache map[string]*string) *string {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return id
	}
	player, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		cache[key] = nil
		return nil
	}
	cache[key] = &player.GSISID
	return &player.GSISID
}

func (s *propService) ListPropTypes(ctx context.Context, activeOnly bool) ([]models.PlayerPropType, error) {
	return s.propRepo.ListPropTypes(ctx, activeOnly)
}

func (s *propService) ListGameProps(ctx context.Context, gameID int) ([]models.PlayerProp, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return s.propRepo.ListByGame(ctx, gameID)
}

func (s *propService) ListPlayerProps(ctx context.Context, playerID string, limit int) ([]models.PlayerProp, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.propRepo.ListByPlayer(ctx, playerID, limit)
}
