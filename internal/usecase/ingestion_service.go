package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/domain/player"
	"github.com/brfutdata/matchgraph/internal/domain/season"
	"github.com/brfutdata/matchgraph/internal/domain/stadium"
	"github.com/brfutdata/matchgraph/internal/domain/team"
	"github.com/brfutdata/matchgraph/internal/platform/keylock"
	"github.com/brfutdata/matchgraph/internal/platform/logging"
)

// MergeOutcome states what a merge did to the primary entity of a record.
type MergeOutcome string

const (
	MergeCreated   MergeOutcome = "created"
	MergeUpdated   MergeOutcome = "updated"
	MergeUnchanged MergeOutcome = "unchanged"
)

// Conflict records one rejected write against an immutable field. The stored
// value always wins; the conflict is reported, never applied.
type Conflict struct {
	Entity   string `json:"entity"`
	Key      string `json:"key"`
	Field    string `json:"field"`
	Stored   string `json:"stored"`
	Incoming string `json:"incoming"`
	Source   string `json:"source"`
}

// MergeResult is the outcome of merging one record.
type MergeResult struct {
	Outcome   MergeOutcome
	Conflicts []Conflict
}

// IngestionService merges resolved records into the canonical store. All
// fill-policy and conflict decisions live here so every storage backend
// shares the same semantics. Writes to one identity key are serialized
// through a key lock, which makes concurrent merging of a mixed batch safe.
type IngestionService struct {
	teams        team.Repository
	players      player.Repository
	matches      match.Repository
	competitions competition.Repository
	seasons      season.Repository
	stadiums     stadium.Repository
	locks        *keylock.KeyLock
	validate     *validator.Validate
	logger       *logging.Logger
}

func NewIngestionService(
	teams team.Repository,
	players player.Repository,
	matches match.Repository,
	competitions competition.Repository,
	seasons season.Repository,
	stadiums stadium.Repository,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &IngestionService{
		teams:        teams,
		players:      players,
		matches:      matches,
		competitions: competitions,
		seasons:      seasons,
		stadiums:     stadiums,
		locks:        keylock.New(),
		validate:     validator.New(),
		logger:       logger,
	}
}

// MergeMatch merges one match record: it ensures the competition, season,
// both teams and the stadium exist, then creates or fills the match and its
// played-home/played-away edges. Re-merging the same record is a no-op.
func (s *IngestionService) MergeMatch(ctx context.Context, rec MatchRecord) (MergeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.MergeMatch")
	defer span.End()

	if err := s.validate.Struct(rec); err != nil {
		return MergeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if rec.Home.Canonical == rec.Away.Canonical {
		return MergeResult{}, fmt.Errorf("%w: match pits %q against itself", ErrInvalidInput, rec.Home.Canonical)
	}
	rec.KickoffAt = rec.KickoffAt.UTC()

	var conflicts []Conflict

	compConflicts, err := s.ensureCompetition(ctx, rec)
	if err != nil {
		return MergeResult{}, err
	}
	conflicts = append(conflicts, compConflicts...)

	if err := s.ensureSeason(ctx, rec.SeasonYear, rec.Competition); err != nil {
		return MergeResult{}, err
	}
	if err := s.ensureTeam(ctx, rec.Home); err != nil {
		return MergeResult{}, err
	}
	if err := s.ensureTeam(ctx, rec.Away); err != nil {
		return MergeResult{}, err
	}
	if rec.StadiumName != "" {
		if err := s.ensureStadium(ctx, stadium.Stadium{Name: rec.StadiumName}); err != nil {
			return MergeResult{}, err
		}
	}

	outcome, matchConflicts, err := s.mergeMatchEntity(ctx, rec)
	if err != nil {
		return MergeResult{}, err
	}
	conflicts = append(conflicts, matchConflicts...)

	for _, t := range []string{rec.Home.Canonical, rec.Away.Canonical} {
		entry := competition.Entry{TeamName: t, CompetitionName: rec.Competition, SeasonYear: rec.SeasonYear}
		if _, err := s.competitions.UpsertEntry(ctx, entry); err != nil {
			return MergeResult{}, fmt.Errorf("upsert competition entry: %w", err)
		}
	}

	if len(conflicts) > 0 {
		s.logger.WarnContext(ctx, "match merge kept stored values over conflicting ones",
			"source", rec.Source,
			"match", match.Key(rec.KickoffAt, rec.Home.Canonical, rec.Away.Canonical),
			"conflicts", len(conflicts),
		)
	}
	return MergeResult{Outcome: outcome, Conflicts: conflicts}, nil
}

func (s *IngestionService) mergeMatchEntity(ctx context.Context, rec MatchRecord) (MergeOutcome, []Conflict, error) {
	key := match.Key(rec.KickoffAt, rec.Home.Canonical, rec.Away.Canonical)
	unlock := s.locks.Lock("match|" + key)
	defer unlock()

	stored, exists, err := s.matches.Get(ctx, key)
	if err != nil {
		return "", nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		item := match.Match{
			KickoffAt:   rec.KickoffAt,
			HomeTeam:    rec.Home.Canonical,
			AwayTeam:    rec.Away.Canonical,
			HomeGoals:   rec.HomeGoals,
			AwayGoals:   rec.AwayGoals,
			Round:       rec.Round,
			Stage:       rec.Stage,
			SeasonYear:  rec.SeasonYear,
			Competition: rec.Competition,
			Stadium:     rec.StadiumName,
			ExternalID:  rec.ExternalID,
			CreatedAt:   time.Now().UTC(),
		}
		if err := item.Validate(); err != nil {
			return "", nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.matches.Create(ctx, item); err != nil {
			return "", nil, fmt.Errorf("create match: %w", err)
		}
		if err := s.createEdges(ctx, item); err != nil {
			return "", nil, err
		}
		return MergeCreated, nil, nil
	}

	var conflicts []Conflict
	conflict := func(field, storedVal, incoming string) {
		conflicts = append(conflicts, Conflict{
			Entity: "match", Key: key, Field: field,
			Stored: storedVal, Incoming: incoming, Source: rec.Source,
		})
	}

	// Scores, competition and season pairing are set once. A source that
	// disagrees produces a conflict and the stored value stands.
	if stored.HomeGoals != rec.HomeGoals {
		conflict("home_goals", strconv.Itoa(stored.HomeGoals), strconv.Itoa(rec.HomeGoals))
	}
	if stored.AwayGoals != rec.AwayGoals {
		conflict("away_goals", strconv.Itoa(stored.AwayGoals), strconv.Itoa(rec.AwayGoals))
	}
	if stored.Competition != rec.Competition {
		conflict("competition", stored.Competition, rec.Competition)
	}
	if stored.SeasonYear != rec.SeasonYear {
		conflict("season_year", strconv.Itoa(stored.SeasonYear), strconv.Itoa(rec.SeasonYear))
	}

	next := stored
	if next.Round == "" && rec.Round != "" {
		next.Round = rec.Round
	}
	if next.Stage == "" && rec.Stage != "" {
		next.Stage = rec.Stage
	}
	if next.Stadium == "" && rec.StadiumName != "" {
		next.Stadium = rec.StadiumName
	}
	if next.ExternalID == "" && rec.ExternalID != "" {
		next.ExternalID = rec.ExternalID
	}

	if err := s.createEdges(ctx, stored); err != nil {
		return "", nil, err
	}

	if next == stored {
		return MergeUnchanged, conflicts, nil
	}
	if err := s.matches.Update(ctx, next); err != nil {
		return "", nil, fmt.Errorf("update match: %w", err)
	}
	return MergeUpdated, conflicts, nil
}

func (s *IngestionService) createEdges(ctx context.Context, m match.Match) error {
	key := m.Key()
	edges := []match.TeamEdge{
		{
			TeamName: m.HomeTeam, MatchKey: key, Side: match.SideHome, Opponent: m.AwayTeam,
			KickoffAt: m.KickoffAt, Competition: m.Competition, SeasonYear: m.SeasonYear,
			GoalsFor: m.HomeGoals, GoalsAgainst: m.AwayGoals,
			Result: match.DeriveResult(m.HomeGoals, m.AwayGoals),
		},
		{
			TeamName: m.AwayTeam, MatchKey: key, Side: match.SideAway, Opponent: m.HomeTeam,
			KickoffAt: m.KickoffAt, Competition: m.Competition, SeasonYear: m.SeasonYear,
			GoalsFor: m.AwayGoals, GoalsAgainst: m.HomeGoals,
			Result: match.DeriveResult(m.AwayGoals, m.HomeGoals),
		},
	}
	for _, e := range edges {
		if _, err := s.matches.CreateEdge(ctx, e); err != nil {
			return fmt.Errorf("create team edge: %w", err)
		}
	}
	return nil
}

// MergePlayer merges one roster row. Identity facts fill once; rating, club
// and wage are volatile and the latest import wins. A player belongs to at
// most one club, so a club move re-keys the affiliation edge.
func (s *IngestionService) MergePlayer(ctx context.Context, rec PlayerRecord) (MergeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.MergePlayer")
	defer span.End()

	if err := s.validate.Struct(rec); err != nil {
		return MergeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if rec.Club.Canonical != "" {
		if err := s.ensureTeam(ctx, rec.Club); err != nil {
			return MergeResult{}, err
		}
	}

	unlock := s.locks.Lock("player|" + strconv.FormatInt(rec.ExternalID, 10))
	defer unlock()

	stored, exists, err := s.players.Get(ctx, rec.ExternalID)
	if err != nil {
		return MergeResult{}, fmt.Errorf("get player: %w", err)
	}

	outcome := MergeUnchanged
	previousClub := ""
	if !exists {
		item := player.Player{
			ExternalID:   rec.ExternalID,
			Name:         rec.Name,
			Nationality:  rec.Nationality,
			Age:          rec.Age,
			Position:     rec.Position,
			Rating:       rec.Rating,
			Potential:    rec.Potential,
			Club:         rec.Club.Canonical,
			WageEUR:      rec.WageEUR,
			JerseyNumber: rec.JerseyNumber,
			ContractYear: rec.ContractYear,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.players.Create(ctx, item); err != nil {
			return MergeResult{}, fmt.Errorf("create player: %w", err)
		}
		stored = item
		outcome = MergeCreated
	} else {
		previousClub = stored.Club
		next := stored
		if next.Nationality == "" && rec.Nationality != "" {
			next.Nationality = rec.Nationality
		}
		if next.Position == "" && rec.Position != "" {
			next.Position = rec.Position
		}
		// Volatile attributes track the newest import whenever it carries
		// a value at all.
		if rec.Age > 0 {
			next.Age = rec.Age
		}
		if rec.Rating > 0 {
			next.Rating = rec.Rating
		}
		if rec.Potential > 0 {
			next.Potential = rec.Potential
		}
		if rec.Club.Canonical != "" {
			next.Club = rec.Club.Canonical
		}
		if rec.WageEUR > 0 {
			next.WageEUR = rec.WageEUR
		}
		if rec.JerseyNumber > 0 {
			next.JerseyNumber = rec.JerseyNumber
		}
		if rec.ContractYear > 0 {
			next.ContractYear = rec.ContractYear
		}
		if next != stored {
			if err := s.players.Update(ctx, next); err != nil {
				return MergeResult{}, fmt.Errorf("update player: %w", err)
			}
			stored = next
			outcome = MergeUpdated
		}
	}

	if previousClub != "" && previousClub != stored.Club {
		if err := s.players.DeleteAffiliation(ctx, stored.ExternalID, previousClub); err != nil {
			return MergeResult{}, fmt.Errorf("delete affiliation: %w", err)
		}
	}
	if stored.Club != "" {
		aff := player.Affiliation{
			PlayerID:     stored.ExternalID,
			TeamName:     stored.Club,
			JerseyNumber: stored.JerseyNumber,
			WageEUR:      stored.WageEUR,
			ContractYear: stored.ContractYear,
			JoinedAt:     time.Now().UTC(),
		}
		if _, err := s.players.UpsertAffiliation(ctx, aff); err != nil {
			return MergeResult{}, fmt.Errorf("upsert affiliation: %w", err)
		}
	}
	return MergeResult{Outcome: outcome}, nil
}

func (s *IngestionService) ensureCompetition(ctx context.Context, rec MatchRecord) ([]Conflict, error) {
	unlock := s.locks.Lock("competition|" + rec.Competition)
	defer unlock()

	stored, exists, err := s.competitions.Get(ctx, rec.Competition)
	if err != nil {
		return nil, fmt.Errorf("get competition: %w", err)
	}
	if !exists {
		item := competition.Competition{
			Name:      rec.Competition,
			Country:   rec.CompetitionCountry,
			Type:      rec.CompetitionType,
			CreatedAt: time.Now().UTC(),
		}
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.competitions.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("create competition: %w", err)
		}
		return nil, nil
	}

	var conflicts []Conflict
	next := stored
	switch {
	case stored.Country == "" && rec.CompetitionCountry != "":
		next.Country = rec.CompetitionCountry
	case rec.CompetitionCountry != "" && stored.Country != rec.CompetitionCountry:
		conflicts = append(conflicts, Conflict{
			Entity: "competition", Key: stored.Name, Field: "country",
			Stored: stored.Country, Incoming: rec.CompetitionCountry, Source: rec.Source,
		})
	}
	switch {
	case stored.Type == "" && rec.CompetitionType != "":
		next.Type = rec.CompetitionType
	case rec.CompetitionType != "" && stored.Type != rec.CompetitionType:
		conflicts = append(conflicts, Conflict{
			Entity: "competition", Key: stored.Name, Field: "type",
			Stored: string(stored.Type), Incoming: string(rec.CompetitionType), Source: rec.Source,
		})
	}
	if next != stored {
		if err := s.competitions.Update(ctx, next); err != nil {
			return nil, fmt.Errorf("update competition: %w", err)
		}
	}
	return conflicts, nil
}

func (s *IngestionService) ensureSeason(ctx context.Context, year int, competitionName string) error {
	unlock := s.locks.Lock("season|" + season.Key(year, competitionName))
	defer unlock()

	_, exists, err := s.seasons.Get(ctx, year, competitionName)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if exists {
		return nil
	}
	item := season.Season{Year: year, Competition: competitionName, CreatedAt: time.Now().UTC()}
	if err := s.seasons.Create(ctx, item); err != nil {
		return fmt.Errorf("create season: %w", err)
	}
	return nil
}

func (s *IngestionService) ensureTeam(ctx context.Context, ref TeamRef) error {
	unlock := s.locks.Lock("team|" + ref.Canonical)
	defer unlock()

	stored, exists, err := s.teams.Get(ctx, ref.Canonical)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	if !exists {
		item := team.Team{
			CanonicalName: ref.Canonical,
			Region:        ref.Region,
			DisplayName:   ref.Canonical,
			CreatedAt:     time.Now().UTC(),
		}
		if ref.Raw != "" && ref.Raw != ref.Canonical {
			item.Aliases = []string{ref.Raw}
		}
		if err := s.teams.Create(ctx, item); err != nil {
			return fmt.Errorf("create team: %w", err)
		}
		return nil
	}

	changed := false
	if stored.Region == "" && ref.Region != "" {
		stored.Region = ref.Region
		changed = true
	}
	if ref.Raw != "" && ref.Raw != stored.CanonicalName && !slices.Contains(stored.Aliases, ref.Raw) {
		stored.Aliases = append(stored.Aliases, ref.Raw)
		changed = true
	}
	if changed {
		if err := s.teams.Update(ctx, stored); err != nil {
			return fmt.Errorf("update team: %w", err)
		}
	}
	return nil
}

func (s *IngestionService) ensureStadium(ctx context.Context, incoming stadium.Stadium) error {
	unlock := s.locks.Lock("stadium|" + incoming.Name)
	defer unlock()

	stored, exists, err := s.stadiums.Get(ctx, incoming.Name)
	if err != nil {
		return fmt.Errorf("get stadium: %w", err)
	}
	if !exists {
		incoming.CreatedAt = time.Now().UTC()
		if err := incoming.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := s.stadiums.Create(ctx, incoming); err != nil {
			return fmt.Errorf("create stadium: %w", err)
		}
		return nil
	}

	next := stored
	if next.City == "" && incoming.City != "" {
		next.City = incoming.City
	}
	if next.Region == "" && incoming.Region != "" {
		next.Region = incoming.Region
	}
	if next.Capacity == 0 && incoming.Capacity > 0 {
		next.Capacity = incoming.Capacity
	}
	if next != stored {
		if err := s.stadiums.Update(ctx, next); err != nil {
			return fmt.Errorf("update stadium: %w", err)
		}
	}
	return nil
}
