package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/domain/player"
	"github.com/brfutdata/matchgraph/internal/domain/season"
	"github.com/brfutdata/matchgraph/internal/domain/stadium"
	"github.com/brfutdata/matchgraph/internal/domain/team"
)

type teamTableModel struct {
	CanonicalName string         `db:"canonical_name"`
	Region        sql.NullString `db:"region"`
	DisplayName   sql.NullString `db:"display_name"`
	Aliases       pq.StringArray `db:"aliases"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		CanonicalName: m.CanonicalName,
		Region:        fromNullString(m.Region),
		DisplayName:   fromNullString(m.DisplayName),
		Aliases:       []string(m.Aliases),
		CreatedAt:     m.CreatedAt,
	}
}

type matchTableModel struct {
	Key         string         `db:"key"`
	KickoffAt   time.Time      `db:"kickoff_at"`
	HomeTeam    string         `db:"home_team"`
	AwayTeam    string         `db:"away_team"`
	HomeGoals   int            `db:"home_goals"`
	AwayGoals   int            `db:"away_goals"`
	Round       sql.NullString `db:"round"`
	Stage       sql.NullString `db:"stage"`
	SeasonYear  int            `db:"season_year"`
	Competition string         `db:"competition"`
	Stadium     sql.NullString `db:"stadium"`
	ExternalID  sql.NullString `db:"external_id"`
	HomeShots   sql.NullInt64  `db:"home_shots"`
	AwayShots   sql.NullInt64  `db:"away_shots"`
	HomeCorners sql.NullInt64  `db:"home_corners"`
	AwayCorners sql.NullInt64  `db:"away_corners"`
	HomeAttacks sql.NullInt64  `db:"home_attacks"`
	AwayAttacks sql.NullInt64  `db:"away_attacks"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		KickoffAt:   m.KickoffAt.UTC(),
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeGoals:   m.HomeGoals,
		AwayGoals:   m.AwayGoals,
		Round:       fromNullString(m.Round),
		Stage:       fromNullString(m.Stage),
		SeasonYear:  m.SeasonYear,
		Competition: m.Competition,
		Stadium:     fromNullString(m.Stadium),
		ExternalID:  fromNullString(m.ExternalID),
		HomeShots:   fromNullIntPtr(m.HomeShots),
		AwayShots:   fromNullIntPtr(m.AwayShots),
		HomeCorners: fromNullIntPtr(m.HomeCorners),
		AwayCorners: fromNullIntPtr(m.AwayCorners),
		HomeAttacks: fromNullIntPtr(m.HomeAttacks),
		AwayAttacks: fromNullIntPtr(m.AwayAttacks),
		CreatedAt:   m.CreatedAt,
	}
}

type teamEdgeTableModel struct {
	TeamName     string        `db:"team_name"`
	MatchKey     string        `db:"match_key"`
	Side         string        `db:"side"`
	Opponent     string        `db:"opponent"`
	KickoffAt    time.Time     `db:"kickoff_at"`
	Competition  string        `db:"competition"`
	SeasonYear   int           `db:"season_year"`
	GoalsFor     int           `db:"goals_for"`
	GoalsAgainst int           `db:"goals_against"`
	Result       string        `db:"result"`
	Shots        sql.NullInt64 `db:"shots"`
	Corners      sql.NullInt64 `db:"corners"`
	Attacks      sql.NullInt64 `db:"attacks"`
}

func (m teamEdgeTableModel) toDomain() match.TeamEdge {
	return match.TeamEdge{
		TeamName:     m.TeamName,
		MatchKey:     m.MatchKey,
		Side:         match.Side(m.Side),
		Opponent:     m.Opponent,
		KickoffAt:    m.KickoffAt.UTC(),
		Competition:  m.Competition,
		SeasonYear:   m.SeasonYear,
		GoalsFor:     m.GoalsFor,
		GoalsAgainst: m.GoalsAgainst,
		Result:       match.Result(m.Result),
		Shots:        fromNullIntPtr(m.Shots),
		Corners:      fromNullIntPtr(m.Corners),
		Attacks:      fromNullIntPtr(m.Attacks),
	}
}

type playerTableModel struct {
	ExternalID   int64          `db:"external_id"`
	Name         string         `db:"name"`
	Nationality  sql.NullString `db:"nationality"`
	Age          int            `db:"age"`
	Position     sql.NullString `db:"position"`
	Rating       int            `db:"rating"`
	Potential    int            `db:"potential"`
	Club         sql.NullString `db:"club"`
	WageEUR      int            `db:"wage_eur"`
	JerseyNumber int            `db:"jersey_number"`
	ContractYear int            `db:"contract_year"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ExternalID:   m.ExternalID,
		Name:         m.Name,
		Nationality:  fromNullString(m.Nationality),
		Age:          m.Age,
		Position:     fromNullString(m.Position),
		Rating:       m.Rating,
		Potential:    m.Potential,
		Club:         fromNullString(m.Club),
		WageEUR:      m.WageEUR,
		JerseyNumber: m.JerseyNumber,
		ContractYear: m.ContractYear,
		CreatedAt:    m.CreatedAt,
	}
}

type affiliationTableModel struct {
	PlayerID     int64     `db:"player_id"`
	TeamName     string    `db:"team_name"`
	JerseyNumber int       `db:"jersey_number"`
	WageEUR      int       `db:"wage_eur"`
	ContractYear int       `db:"contract_year"`
	JoinedAt     time.Time `db:"joined_at"`
}

func (m affiliationTableModel) toDomain() player.Affiliation {
	return player.Affiliation{
		PlayerID:     m.PlayerID,
		TeamName:     m.TeamName,
		JerseyNumber: m.JerseyNumber,
		WageEUR:      m.WageEUR,
		ContractYear: m.ContractYear,
		JoinedAt:     m.JoinedAt,
	}
}

type competitionTableModel struct {
	Name      string         `db:"name"`
	Country   sql.NullString `db:"country"`
	Type      sql.NullString `db:"type"`
	CreatedAt time.Time      `db:"created_at"`
}

func (m competitionTableModel) toDomain() competition.Competition {
	return competition.Competition{
		Name:      m.Name,
		Country:   fromNullString(m.Country),
		Type:      competition.Type(fromNullString(m.Type)),
		CreatedAt: m.CreatedAt,
	}
}

type entryTableModel struct {
	TeamName        string `db:"team_name"`
	CompetitionName string `db:"competition_name"`
	SeasonYear      int    `db:"season_year"`
}

func (m entryTableModel) toDomain() competition.Entry {
	return competition.Entry{
		TeamName:        m.TeamName,
		CompetitionName: m.CompetitionName,
		SeasonYear:      m.SeasonYear,
	}
}

type seasonTableModel struct {
	Year        int       `db:"year"`
	Competition string    `db:"competition"`
	CreatedAt   time.Time `db:"created_at"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{Year: m.Year, Competition: m.Competition, CreatedAt: m.CreatedAt}
}

type stadiumTableModel struct {
	Name      string         `db:"name"`
	City      sql.NullString `db:"city"`
	Region    sql.NullString `db:"region"`
	Capacity  int            `db:"capacity"`
	CreatedAt time.Time      `db:"created_at"`
}

func (m stadiumTableModel) toDomain() stadium.Stadium {
	return stadium.Stadium{
		Name:      m.Name,
		City:      fromNullString(m.City),
		Region:    fromNullString(m.Region),
		Capacity:  m.Capacity,
		CreatedAt: m.CreatedAt,
	}
}
