package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/oddsapi"
	"github.com/gridironlabs/gridiron-system/repositories"
	"golang.org/x/sync/errgroup"
)

const oddsSourceTheOddsAPI = "the_odds_api"

// syncConcurrency caps how many games are persisted at once during a sync.
const syncConcurrency = 4

// OddsBroadcaster pushes live odds updates to connected clients.
type OddsBroadcaster interface {
	BroadcastGameUpdate(gameID int, payload interface{})
}

// OddsUpdateEvent is the envelope pushed over websockets after a sync
// changes a game's lines.
type OddsUpdateEvent struct {
	Type      string                 `json:"type"`
	GameID    int                    `json:"game_id"`
	Movements []models.OddsMovement  `json:"movements,omitempty"`
	Consensus []models.ConsensusOdds `json:"consensus,omitempty"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type SyncResult struct {
	GamesSynced   int `json:"games_synced"`
	MovementsSeen int `json:"movements_seen"`
}

type OddsService interface {
	// SyncOdds pulls the current NFL board from the odds feed and persists
	// it: games are upserted, each game's odds are replaced, movements are
	// diffed against the previous lines, and consensus rows are rebuilt.
	SyncOdds(ctx context.Context) (*SyncResult, error)

	GetGame(ctx context.Context, gameID int) (*models.NFLGame, error)
	ListUpcomingGames(ctx context.Context, limit int) ([]models.NFLGame, error)
	ListGamesBySeasonWeek(ctx context.Context, season, week int) ([]models.NFLGame, error)

	ListGameOdds(ctx context.Context, gameID int) ([]models.GameOdds, error)
	CompareGame(ctx context.Context, gameID int) (*models.OddsComparison, error)
	ListMovements(ctx context.Context, gameID, limit int) ([]models.OddsMovement, error)
	ListConsensus(ctx context.Context, gameID int) ([]models.ConsensusOdds, error)

	ListBookmakers(ctx context.Context, activeOnly bool) ([]models.Bookmaker, error)
}

type oddsService struct {
	db            *sql.DB
	feed          *oddsapi.Client
	gameRepo      repositories.GameRepository
	bookmakerRepo repositories.BookmakerRepository
	oddsRepo      repositories.GameOddsRepository
	historyRepo   repositories.OddsHistoryRepository
	broadcaster   OddsBroadcaster
	logger        *slog.Logger
}

func NewOddsService(
	db *sql.DB,
	feed *oddsapi.Client,
	gameRepo repositories.GameRepository,
	bookmakerRepo repositories.BookmakerRepository,
	oddsRepo repositories.GameOddsRepository,
	historyRepo repositories.OddsHistoryRepository,
	broadcaster OddsBroadcaster,
	logger *slog.Logger,
) OddsService {
	return &oddsService{
		db:            db,
		feed:          feed,
		gameRepo:      gameRepo,
		bookmakerRepo: bookmakerRepo,
		oddsRepo:      oddsRepo,
		historyRepo:   historyRepo,
		broadcaster:   broadcaster,
		logger:        logger,
	}
}

func (s *oddsService) SyncOdds(ctx context.Context) (*SyncResult, error) {
	if s.feed == nil {
		return nil, ErrOddsFeedUnavailable
	}

	events, err := s.feed.GetNFLOdds(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOddsFeedUnavailable, err)
	}

	bookmakers, err := s.ensureBookmakers(ctx, events)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	var movementTotals = make([]int, len(events))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for i := range events {
		i := i
		g.Go(func() error {
			moved, err := s.syncEvent(gctx, &events[i], bookmakers)
			if err != nil {
				return err
			}
			movementTotals[i] = moved
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, moved := range movementTotals {
		result.MovementsSeen += moved
	}
	result.GamesSynced = len(events)

	s.logger.Info("odds sync complete",
		slog.Int("games", result.GamesSynced),
		slog.Int("movements", result.MovementsSeen))
	return result, nil
}

// ensureBookmakers upserts every bookmaker seen in the feed and returns
// them keyed by feed key.
func (s *oddsService) ensureBookmakers(ctx context.Context, events []oddsapi.Event) (map[string]*models.Bookmaker, error) {
	byKey := make(map[string]*models.Bookmaker)
	for _, ev := range events {
		for _, fb := range ev.Bookmakers {
			if _, ok := byKey[fb.Key]; ok {
				continue
			}
			bm := &models.Bookmaker{
				Key:      fb.Key,
				Title:    fb.Title,
				Region:   models.RegionUS,
				IsActive: true,
			}
			if err := s.bookmakerRepo.Upsert(ctx, bm); err != nil {
				return nil, fmt.Errorf("failed to upsert bookmaker %s: %w", fb.Key, err)
			}
			byKey[fb.Key] = bm
		}
	}
	return byKey, nil
}

func (s *oddsService) syncEvent(ctx context.Context, ev *oddsapi.Event, bookmakers map[string]*models.Bookmaker) (int, error) {
	game := &models.NFLGame{
		OddsAPIID:    ev.ID,
		SportKey:     ev.SportKey,
		SportTitle:   ev.SportTitle,
		Season:       seasonForKickoff(ev.CommenceTime),
		SeasonType:   models.SeasonTypeRegular,
		CommenceTime: ev.CommenceTime,
		HomeTeam:     ev.HomeTeam,
		AwayTeam:     ev.AwayTeam,
	}
	if err := s.gameRepo.UpsertByOddsAPIID(ctx, game); err != nil {
		return 0, fmt.Errorf("failed to upsert game %s: %w", ev.ID, err)
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal raw odds: %w", err)
	}
	snapshot := &models.OddsSnapshot{
		NFLGameID:         game.ID,
		SnapshotTimestamp: time.Now().UTC(),
		Source:            oddsSourceTheOddsAPI,
		RawOddsData:       raw,
	}
	if err := s.historyRepo.InsertSnapshot(ctx, snapshot); err != nil {
		return 0, fmt.Errorf("failed to insert odds snapshot: %w", err)
	}

	previous, err := s.oddsRepo.CurrentOutcomes(ctx, game.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to load current outcomes: %w", err)
	}

	newOdds := buildGameOdds(ev, bookmakers)
	movements := DetectMovements(game.ID, previous, newOdds, time.Now().UTC())
	consensus := ComputeConsensus(game.ID, newOdds, time.Now().UTC())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin odds transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.oddsRepo.ReplaceForGame(ctx, tx, game.ID, newOdds); err != nil {
		return 0, err
	}
	if err := s.historyRepo.InsertMovements(ctx, tx, movements); err != nil {
		return 0, err
	}
	if err := s.historyRepo.ReplaceConsensusForGame(ctx, tx, game.ID, consensus); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit odds transaction: %w", err)
	}

	if err := s.gameRepo.TouchOddsUpdate(ctx, game.ID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to touch odds update timestamp",
			slog.Int("game_id", game.ID), slog.Any("error", err))
	}

	if s.broadcaster != nil && len(movements) > 0 {
		s.broadcaster.BroadcastGameUpdate(game.ID, OddsUpdateEvent{
			Type:      "odds_update",
			GameID:    game.ID,
			Movements: movements,
			Consensus: consensus,
			UpdatedAt: time.Now().UTC(),
		})
	}
	return len(movements), nil
}

// buildGameOdds flattens a feed event into persistable rows, one per
// bookmaker+market, skipping bookmakers the feed introduced mid-sync.
func buildGameOdds(ev *oddsapi.Event, bookmakers map[string]*models.Bookmaker) []models.GameOdds {
	odds := make([]models.GameOdds, 0, len(ev.Bookmakers)*3)
	for _, fb := range ev.Bookmakers {
		bm, ok := bookmakers[fb.Key]
		if !ok {
			continue
		}
		for _, market := range fb.Markets {
			row := models.GameOdds{
				BookmakerID:         bm.ID,
				MarketType:          models.MarketType(market.Key),
				OddsFormat:          models.OddsFormatAmerican,
				BookmakerLastUpdate: fb.LastUpdate,
				Bookmaker:           bm,
			}
			for _, out := range market.Outcomes {
				outcome := models.BettingOutcome{
					Name:  out.Name,
					Price: out.Price,
					Point: out.Point,
				}
				if out.Description != "" {
					desc := out.Description
					outcome.Description = &desc
				}
				row.Outcomes = append(row.Outcomes, outcome)
			}
			odds = append(odds, row)
		}
	}
	return odds
}

type outcomeKey struct {
	bookmakerID int
	market      models.MarketType
	name        string
}

// DetectMovements diffs the stored lines against the incoming ones and
// returns one movement row per outcome whose price or point changed.
func DetectMovements(gameID int, previous []repositories.StoredOutcome, incoming []models.GameOdds, at time.Time) []models.OddsMovement {
	prior := make(map[outcomeKey]repositories.StoredOutcome, len(previous))
	for _, p := range previous {
		prior[outcomeKey{p.BookmakerID, p.MarketType, p.OutcomeName}] = p
	}

	movements := make([]models.OddsMovement, 0)
	for _, o := range incoming {
		for _, out := range o.Outcomes {
			key := outcomeKey{o.BookmakerID, o.MarketType, out.Name}
			prev, ok := prior[key]
			if !ok {
				continue
			}
			priceChanged := prev.Price != out.Price
			pointChanged := !pointsEqual(prev.Point, out.Point)
			if !priceChanged && !pointChanged {
				continue
			}

			m := models.OddsMovement{
				NFLGameID:          gameID,
				BookmakerID:        o.BookmakerID,
				MarketType:         o.MarketType,
				OutcomeName:        out.Name,
				PreviousPrice:      prev.Price,
				NewPrice:           out.Price,
				PreviousPoint:      prev.Point,
				NewPoint:           out.Point,
				PriceMovementCents: int(math.Round(out.Price - prev.Price)),
				Direction:          movementDirection(prev.Price, out.Price),
				MovementTimestamp:  at,
			}
			if prev.Point != nil && out.Point != nil {
				delta := *out.Point - *prev.Point
				m.PointMovement = &delta
			}
			movements = append(movements, m)
		}
	}
	return movements
}

func movementDirection(prev, next float64) models.MovementDirection {
	switch {
	case next > prev:
		return models.MovementUp
	case next < prev:
		return models.MovementDown
	default:
		return models.MovementNeutral
	}
}

func pointsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type consensusKey struct {
	market models.MarketType
	name   string
}

// ComputeConsensus aggregates every bookmaker's current line per
// (market, outcome) into average, median, best and worst american
// prices, plus the most common point and the point range.
func ComputeConsensus(gameID int, odds []models.GameOdds, at time.Time) []models.ConsensusOdds {
	type sample struct {
		price float64
		point *float64
		book  string
	}
	grouped := make(map[consensusKey][]sample)
	order := make([]consensusKey, 0)

	for _, o := range odds {
		book := ""
		if o.Bookmaker != nil {
			book = o.Bookmaker.Key
		} else {
			book = fmt.Sprintf("bookmaker_%d", o.BookmakerID)
		}
		for _, out := range o.Outcomes {
			key := consensusKey{o.MarketType, out.Name}
			if _, ok := grouped[key]; !ok {
				order = append(order, key)
			}
			grouped[key] = append(grouped[key], sample{price: out.Price, point: out.Point, book: book})
		}
	}

	rows := make([]models.ConsensusOdds, 0, len(order))
	for _, key := range order {
		samples := grouped[key]

		prices := make([]float64, len(samples))
		var sum float64
		best := samples[0]
		worst := samples[0]
		for i, sm := range samples {
			prices[i] = sm.price
			sum += sm.price
			if sm.price > best.price {
				best = sm
			}
			if sm.price < worst.price {
				worst = sm
			}
		}
		sort.Float64s(prices)

		row := models.ConsensusOdds{
			NFLGameID:      gameID,
			MarketType:     key.market,
			OutcomeName:    key.name,
			AvgPrice:       sum / float64(len(samples)),
			MedianPrice:    median(prices),
			BestPrice:      best.price,
			WorstPrice:     worst.price,
			BestBook:       best.book,
			BookmakerCount: len(samples),
			LastCalculated: at,
		}

		points := make([]float64, 0, len(samples))
		for _, sm := range samples {
			if sm.point != nil {
				points = append(points, *sm.point)
			}
		}
		if len(points) > 0 {
			consensusPoint := mostCommon(points)
			row.ConsensusPoint = &consensusPoint
			sort.Float64s(points)
			spread := points[len(points)-1] - points[0]
			row.PointSpreadRange = &spread
		}
		rows = append(rows, row)
	}
	return rows
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mostCommon returns the value appearing most often. Ties break toward
// the value closest to the sample mean; an exact distance tie takes the
// lower value so the result is deterministic.
func mostCommon(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	var sum float64
	for _, v := range values {
		counts[v]++
		sum += v
	}
	mean := sum / float64(len(values))

	var winner float64
	bestCount := -1
	for v, c := range counts {
		if c < bestCount {
			continue
		}
		if c > bestCount {
			winner, bestCount = v, c
			continue
		}
		dv, dw := math.Abs(v-mean), math.Abs(winner-mean)
		if dv < dw || (dv == dw && v < winner) {
			winner = v
		}
	}
	return winner
}

// seasonForKickoff maps a kickoff date to the NFL season year. Games in
// January and February belong to the previous calendar year's season.
func seasonForKickoff(kickoff time.Time) int {
	if kickoff.Month() <= time.February {
		return kickoff.Year() - 1
	}
	return kickoff.Year()
}

func (s *oddsService) GetGame(ctx context.Context, gameID int) (*models.NFLGame, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *oddsService) ListUpcomingGames(ctx context.Context, limit int) ([]models.NFLGame, error) {
	if limit <= 0 || limit > 100 {
		limit = 32
	}
	return s.gameRepo.ListUpcoming(ctx, limit)
}

func (s *oddsService) ListGamesBySeasonWeek(ctx context.Context, season, week int) ([]models.NFLGame, error) {
	if season < 1920 {
		return nil, ErrInvalidSeason
	}
	if week < 1 || week > 22 {
		return nil, ErrInvalidWeek
	}
	return s.gameRepo.ListBySeasonWeek(ctx, season, week)
}

func (s *oddsService) ListGameOdds(ctx context.Context, gameID int) ([]models.GameOdds, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.oddsRepo.ListByGame(ctx, gameID)
}

func (s *oddsService) CompareGame(ctx context.Context, gameID int) (*models.OddsComparison, error) {
	game, err := s.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	odds, err := s.oddsRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(odds) == 0 {
		return nil, ErrNoOddsForGame
	}
	return BuildComparison(game, odds), nil
}

// BuildComparison assembles the line-shopping view of a game: the full
// board per market and the best price per side.
func BuildComparison(game *models.NFLGame, odds []models.GameOdds) *models.OddsComparison {
	cmp := &models.OddsComparison{
		GameID:       game.ID,
		HomeTeam:     game.HomeTeam,
		AwayTeam:     game.AwayTeam,
		CommenceTime: game.CommenceTime,
	}

	boards := map[models.MarketType]map[string][]models.BookLine{
		models.MarketH2H:     {},
		models.MarketSpreads: {},
		models.MarketTotals:  {},
	}
	for _, o := range odds {
		board, ok := boards[o.MarketType]
		if !ok {
			continue
		}
		book := fmt.Sprintf("bookmaker_%d", o.BookmakerID)
		if o.Bookmaker != nil {
			book = o.Bookmaker.Key
		}
		for _, out := range o.Outcomes {
			board[out.Name] = append(board[out.Name], models.BookLine{
				Bookmaker: book,
				Price:     out.Price,
				Point:     out.Point,
			})
		}
	}

	if board := boards[models.MarketH2H]; len(board) > 0 {
		cmp.Moneyline = &models.MoneylineComparison{
			BestHome: bestOf(board[game.HomeTeam]),
			BestAway: bestOf(board[game.AwayTeam]),
			Board:    board,
		}
	}
	if board := boards[models.MarketSpreads]; len(board) > 0 {
		cmp.Spread = &models.SpreadComparison{
			BestHome: bestOf(board[game.HomeTeam]),
			BestAway: bestOf(board[game.AwayTeam]),
			Board:    board,
		}
	}
	if board := boards[models.MarketTotals]; len(board) > 0 {
		cmp.Total = &models.TotalComparison{
			BestOver:  bestOf(board["Over"]),
			BestUnder: bestOf(board["Under"]),
			Board:     board,
		}
	}
	return cmp
}

// bestOf picks the highest american price across books for one side.
func bestOf(lines []models.BookLine) models.BestLine {
	var best models.BestLine
	for i, l := range lines {
		if i == 0 || l.Price > best.Price {
			best = models.BestLine{Price: l.Price, Point: l.Point, Bookmaker: l.Bookmaker}
		}
	}
	return best
}

func (s *oddsService) ListMovements(ctx context.Context, gameID, limit int) ([]models.OddsMovement, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 1000 {
		limit = 200
	}
	return s.historyRepo.ListMovementsByGame(ctx, gameID, limit)
}

func (s *oddsService) ListConsensus(ctx context.Context, gameID int) ([]models.ConsensusOdds, error) {
	if _, err := s.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return s.historyRepo.ListConsensusByGame(ctx, gameID)
}

func (s *oddsService) ListBookmakers(ctx context.Context, activeOnly bool) ([]models.Bookmaker, error) {
	return s.bookmakerRepo.List(ctx, activeOnly)
}
