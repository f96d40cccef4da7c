package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"designcanvas/application/ports"
	"designcanvas/application/services"
	domainconfig "designcanvas/domain/config"
	"designcanvas/domain/core/aggregates"
	"designcanvas/domain/history"
	"designcanvas/infrastructure/config"
	infraevents "designcanvas/infrastructure/events"
	"designcanvas/infrastructure/importers"
	"designcanvas/infrastructure/persistence/memory"
	"designcanvas/infrastructure/persistence/sqlite"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	DomainConfig *domainconfig.DomainConfig
	Logger       *zap.Logger
	Scene        *aggregates.Scene
	Timeline     *history.Timeline
	GraphStore   ports.GraphStore
	BlobStore    ports.BlobStore
	Publisher    ports.EventPublisher
	SceneService *services.SceneService
	ExportSvc    *services.ExportService
	ShareSvc     *services.ShareService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideScene,
	ProvideTimeline,
	ProvideGraphStore,
	ProvideBlobStore,
	ProvidePublisher,
	ProvideImporters,
	ProvideExportService,
	ProvideShareService,
	ProvideSceneService,
	wire.Struct(new(Container), "*"),
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideDomainConfig supplies the document model's tunables
func ProvideDomainConfig() *domainconfig.DomainConfig {
	return domainconfig.DefaultDomainConfig()
}

// ProvideScene creates the single live scene
func ProvideScene(domainCfg *domainconfig.DomainConfig) *aggregates.Scene {
	return aggregates.NewScene(domainCfg)
}

// ProvideTimeline creates an empty undo/redo timeline
func ProvideTimeline() *history.Timeline {
	return history.NewTimeline()
}

// ProvideGraphStore creates the graph persistence adapter
func ProvideGraphStore() ports.GraphStore {
	return memory.NewGraphStore()
}

// ProvideBlobStore opens the SQLite-backed blob store
func ProvideBlobStore(cfg *config.Config) (ports.BlobStore, error) {
	return sqlite.NewBlobStore(cfg.SQLitePath)
}

// ProvidePublisher creates the event delivery adapter
func ProvidePublisher(logger *zap.Logger) ports.EventPublisher {
	return infraevents.NewLogPublisher(logger)
}

// ProvideImporters assembles the supported document importers
func ProvideImporters(domainCfg *domainconfig.DomainConfig, logger *zap.Logger) []ports.SceneImporter {
	return []ports.SceneImporter{
		importers.NewExcalidrawImporter(domainCfg, logger),
		importers.NewTldrawImporter(domainCfg, logger),
	}
}

// ProvideExportService creates the export codec
func ProvideExportService(logger *zap.Logger) *services.ExportService {
	return services.NewExportService(logger)
}

// ProvideShareService creates the share token service
func ProvideShareService(cfg *config.Config, logger *zap.Logger) *services.ShareService {
	return services.NewShareService([]byte(cfg.ShareSecret), cfg.ShareTTL, logger)
}

// ProvideSceneService creates the scene orchestrator
func ProvideSceneService(
	scene *aggregates.Scene,
	timeline *history.Timeline,
	exporter *services.ExportService,
	share *services.ShareService,
	sceneImporters []ports.SceneImporter,
	graph ports.GraphStore,
	blobs ports.BlobStore,
	publisher ports.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *services.SceneService {
	return services.NewSceneService(
		scene,
		timeline,
		exporter,
		share,
		sceneImporters,
		graph,
		blobs,
		publisher,
		cfg.BlobKey,
		logger,
	)
}
