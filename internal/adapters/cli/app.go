package cli

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	cacheredis "github.com/andrescamacho/evetrade/internal/adapters/cache/redis"
	"github.com/andrescamacho/evetrade/internal/adapters/esi"
	"github.com/andrescamacho/evetrade/internal/adapters/metrics"
	"github.com/andrescamacho/evetrade/internal/adapters/persistence"
	"github.com/andrescamacho/evetrade/internal/application/common"
	"github.com/andrescamacho/evetrade/internal/application/trading/queries"
	"github.com/andrescamacho/evetrade/internal/application/trading/services"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/shared"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
	"github.com/andrescamacho/evetrade/internal/infrastructure/config"
	"github.com/andrescamacho/evetrade/internal/infrastructure/database"
)

// App wires the full application: static data repositories, the Redis
// snapshot store, the ESI order source and the scan pipeline behind the
// mediator. Commands build one App, use it, and Close it.
type App struct {
	Config    *config.Config
	DB        *gorm.DB
	Mediator  common.Mediator
	Refresher *services.SnapshotRefresher
	RunRepo   trading.ScanRunRepository
	OppLog    trading.OpportunityLogRepository
	HubRepo   universe.HubRepository
	TopoRepo  universe.TopologyRepository
	ItemRepo  market.ItemRepository
	Collector *metrics.ScanCollector
	Logger    common.OperationLogger

	redisClient *cacheredis.Client
}

// appOptions control which optional subsystems are wired
type appOptions struct {
	withMetrics bool
}

// newApp builds the application container from configuration
func newApp(ctx context.Context, opts appOptions) (*App, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logOutput := os.Stdout
	if cfg.Logging.Output == "stderr" {
		logOutput = os.Stderr
	}
	logger := common.NewStdLogger(cfg.Logging.Level, logOutput)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	redisClient, err := cacheredis.New(ctx, &cfg.Redis)
	if err != nil {
		return nil, err
	}

	hubRepo := persistence.NewGormHubRepository(db)
	topoRepo := persistence.NewGormTopologyRepository(db)
	itemRepo := persistence.NewGormItemRepository(db)
	runRepo := persistence.NewGormScanRunRepository(db)
	oppLog := persistence.NewGormOpportunityLogRepository(db)
	snapshotStore := cacheredis.NewSnapshotStore(redisClient)

	esiClient := esi.NewClient(&cfg.ESI)
	orderSource := esi.NewOrderRepository(esiClient, nil)

	clock := shared.NewRealClock()
	engine := trading.NewEngine(clock, cfg.Engine.Workers)
	matrixCache := universe.NewMatrixCache()

	var collector *metrics.ScanCollector
	if opts.withMetrics {
		metrics.InitRegistry()
		collector = metrics.NewScanCollector()
		if err := collector.Register(); err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	var scanMetrics queries.ScanMetrics
	if collector != nil {
		scanMetrics = collector
	}

	mediator := common.NewMediator()
	scanHandler := queries.NewFindTradeRoutesHandler(
		hubRepo, topoRepo, itemRepo, snapshotStore, matrixCache, engine, clock, runRepo, scanMetrics,
	).WithOpportunityLog(oppLog).WithDefaults(queries.ScanDefaults{
		Wallet:        cfg.Engine.DefaultWallet,
		Cargo:         cfg.Engine.DefaultCargo,
		MinProfit:     cfg.Engine.DefaultMinProfit,
		Limit:         cfg.Engine.DefaultLimit,
		SecurityLimit: cfg.Engine.SecurityLimit,
	})
	if err := common.RegisterHandler[*queries.FindTradeRoutesQuery](mediator, scanHandler); err != nil {
		return nil, err
	}

	refresher := services.NewSnapshotRefresher(
		hubRepo, itemRepo, orderSource, snapshotStore,
		cfg.Engine.RefreshInterval, cfg.Engine.SnapshotTTL,
	)
	if collector != nil {
		refresher = refresher.WithMetrics(collector)
	}

	return &App{
		Config:      cfg,
		DB:          db,
		Mediator:    mediator,
		Refresher:   refresher,
		RunRepo:     runRepo,
		OppLog:      oppLog,
		HubRepo:     hubRepo,
		TopoRepo:    topoRepo,
		ItemRepo:    itemRepo,
		Collector:   collector,
		Logger:      logger,
		redisClient: redisClient,
	}, nil
}

// LoggerContext attaches the configured operation logger to the context
func (a *App) LoggerContext(ctx context.Context) context.Context {
	return common.WithLogger(ctx, a.Logger)
}

// Close releases database and Redis connections
func (a *App) Close() {
	if a.redisClient != nil {
		_ = a.redisClient.Close()
	}
	if a.DB != nil {
		_ = database.Close(a.DB)
	}
}

