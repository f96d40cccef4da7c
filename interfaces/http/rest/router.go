package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"designcanvas/application/services"
	"designcanvas/interfaces/http/rest/handlers"
	"designcanvas/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	scenes     *services.SceneService
	enableCORS bool
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(scenes *services.SceneService, enableCORS bool, logger *zap.Logger) *Router {
	return &Router{
		scenes:     scenes,
		enableCORS: enableCORS,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		sceneHandler := handlers.NewSceneHandler(rt.scenes, rt.logger)
		r.Route("/scene", func(r chi.Router) {
			r.Get("/", sceneHandler.GetScene)
			r.Get("/snapshot", sceneHandler.GetSnapshot)
			r.Get("/settings", sceneHandler.GetSettings)
			r.Put("/settings", sceneHandler.UpdateSettings)
			r.Post("/tool", sceneHandler.SetTool)
			r.Post("/zoom-in", sceneHandler.ZoomIn)
			r.Post("/zoom-out", sceneHandler.ZoomOut)
			r.Post("/pan", sceneHandler.Pan)
			r.Post("/clear", sceneHandler.Clear)
			r.Delete("/selection", sceneHandler.ClearSelection)
		})

		shapeHandler := handlers.NewShapeHandler(rt.scenes, rt.logger)
		r.Route("/shapes", func(r chi.Router) {
			r.Post("/", shapeHandler.CreateShape)
			r.Put("/{shapeID}", shapeHandler.UpdateShape)
			r.Delete("/{shapeID}", shapeHandler.DeleteShape)
			r.Post("/{shapeID}/move", shapeHandler.MoveShape)
			r.Post("/{shapeID}/select", shapeHandler.SelectShape)
		})

		connectionHandler := handlers.NewConnectionHandler(rt.scenes, rt.logger)
		r.Put("/connections/{connectionID}", connectionHandler.UpdateConnection)

		annotationHandler := handlers.NewAnnotationHandler(rt.scenes, rt.logger)
		r.Route("/annotations", func(r chi.Router) {
			r.Post("/", annotationHandler.AddAnnotation)
			r.Delete("/{annotationID}", annotationHandler.RemoveAnnotation)
		})

		historyHandler := handlers.NewHistoryHandler(rt.scenes, rt.logger)
		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.GetHistory)
			r.Post("/undo", historyHandler.Undo)
			r.Post("/redo", historyHandler.Redo)
		})

		transferHandler := handlers.NewTransferHandler(rt.scenes, rt.logger)
		r.Post("/import/{format}", transferHandler.Import)
		r.Get("/export", transferHandler.Export)
		r.Post("/save", transferHandler.Save)
		r.Post("/load", transferHandler.Load)
		r.Post("/share", transferHandler.Share)
		r.Get("/shared", transferHandler.LoadShared)

		r.Get("/search", handlers.NewSearchHandler(rt.scenes, rt.logger).Search)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
