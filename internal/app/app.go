package app

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	"github.com/brfutdata/matchgraph/external/csvdata"
	"github.com/brfutdata/matchgraph/internal/config"
	"github.com/brfutdata/matchgraph/internal/datasource"
	"github.com/brfutdata/matchgraph/internal/domain/competition"
	"github.com/brfutdata/matchgraph/internal/domain/match"
	"github.com/brfutdata/matchgraph/internal/domain/player"
	"github.com/brfutdata/matchgraph/internal/domain/season"
	"github.com/brfutdata/matchgraph/internal/domain/stadium"
	"github.com/brfutdata/matchgraph/internal/domain/team"
	"github.com/brfutdata/matchgraph/internal/infrastructure/repository/memory"
	"github.com/brfutdata/matchgraph/internal/infrastructure/repository/postgres"
	"github.com/brfutdata/matchgraph/internal/interfaces/httpapi"
	"github.com/brfutdata/matchgraph/internal/platform/aliasing"
	"github.com/brfutdata/matchgraph/internal/platform/logging"
	"github.com/brfutdata/matchgraph/internal/usecase"
)

// Stores bundles one backend's repository set. DB is nil for the in-memory
// backend.
type Stores struct {
	Teams        team.Repository
	Players      player.Repository
	Matches      match.Repository
	Competitions competition.Repository
	Seasons      season.Repository
	Stadiums     stadium.Repository
	DB           *sqlx.DB
}

func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func NewStores(cfg config.Config) (*Stores, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return &Stores{
			Teams:        memory.NewTeamRepository(),
			Players:      memory.NewPlayerRepository(),
			Matches:      memory.NewMatchRepository(),
			Competitions: memory.NewCompetitionRepository(),
			Seasons:      memory.NewSeasonRepository(),
			Stadiums:     memory.NewStadiumRepository(),
		}, nil
	case config.StorePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Stores{
			Teams:        postgres.NewTeamRepository(db),
			Players:      postgres.NewPlayerRepository(db),
			Matches:      postgres.NewMatchRepository(db),
			Competitions: postgres.NewCompetitionRepository(db),
			Seasons:      postgres.NewSeasonRepository(db),
			Stadiums:     postgres.NewStadiumRepository(db),
			DB:           db,
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// NewPipeline builds the full ingestion pipeline over whichever source files
// exist under the data directory. Missing files are skipped so a partial
// data set still ingests.
func NewPipeline(cfg config.Config, stores *Stores, logger *logging.Logger) *usecase.PipelineService {
	ingestion := usecase.NewIngestionService(
		stores.Teams, stores.Players, stores.Matches,
		stores.Competitions, stores.Seasons, stores.Stadiums,
		logger,
	)
	correlation := usecase.NewCorrelationService(stores.Matches, stores.Stadiums, logger)
	pipeline := usecase.NewPipelineService(ingestion, correlation, cfg.MergeWorkers, logger)

	resolver := aliasing.NewResolver()
	if path, ok := dataFile(cfg.DataDir, "league.csv"); ok {
		pipeline.AddMatchSource(datasource.NewLeagueSource(csvdata.NewFile("league", path), resolver))
	}
	if path, ok := dataFile(cfg.DataDir, "cup.csv"); ok {
		pipeline.AddMatchSource(datasource.NewCupSource(csvdata.NewFile("cup", path), resolver))
	}
	if path, ok := dataFile(cfg.DataDir, "international.csv"); ok {
		pipeline.AddMatchSource(datasource.NewInternationalSource(csvdata.NewFile("international", path), resolver))
	}
	if path, ok := dataFile(cfg.DataDir, "historical.csv"); ok {
		historical := datasource.NewHistoricalSource(csvdata.NewFile("historical", path), resolver)
		pipeline.AddMatchSource(historical)
		pipeline.AddVenueSource(historical)
	}
	if path, ok := dataFile(cfg.DataDir, "extended.csv"); ok {
		pipeline.AddStatsSource(datasource.NewExtendedStatsSource(csvdata.NewFile("extended", path), resolver))
	}
	if path, ok := dataFile(cfg.DataDir, "roster.csv"); ok {
		pipeline.AddPlayerSource(datasource.NewRosterSource(csvdata.NewFile("roster", path), resolver, cfg.RosterNationality))
	}

	return pipeline
}

func dataFile(dir, name string) (string, bool) {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

func NewHTTPServer(cfg config.Config, stores *Stores, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	queries := usecase.NewQueryService(
		aliasing.NewResolver(),
		stores.Teams, stores.Players, stores.Matches, stores.Competitions,
	)
	pipeline := NewPipeline(cfg, stores, logger)

	handler := httpapi.NewHandler(queries, pipeline, logger)
	router := httpapi.NewRouter(handler, logger)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
