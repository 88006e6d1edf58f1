package routes

import (
	"net/http"

	"ecoleta/internal/config"
	"ecoleta/internal/handlers"
	"ecoleta/internal/logger"
	"ecoleta/internal/metrics"
	mdlwr "ecoleta/internal/middleware"
	"ecoleta/internal/serializer"
	"ecoleta/internal/services"
	"ecoleta/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

func NewRouter(db *bun.DB, cfg *config.Config, logr *logger.Logger) http.Handler {
	r := chi.NewRouter()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, "ecoleta"),
	)
	httpMetrics := metrics.NewHTTPMetrics()
	if err := httpMetrics.Register(reg); err != nil {
		logr.Fatal("failed to register http metrics", zap.Error(err))
	}

	// Basic middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mdlwr.RequestLogger(logr.Logger))
	r.Use(middleware.Recoverer)
	r.Use(httpMetrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	store, err := storage.New(cfg)
	if err != nil {
		logr.Fatal("failed to init upload storage", zap.Error(err))
	}
	uploader := storage.NewUploader(store, cfg.MaxUploadBytes())
	ser := serializer.New(cfg.PublicBaseURL)

	pointSvc := services.NewPointService(db, uploader, ser, logr.Logger)
	itemSvc := services.NewItemService(db, ser)

	pointHandler := handlers.NewPointHandler(pointSvc, logr.Logger, cfg.MaxUploadBytes())
	itemHandler := handlers.NewItemHandler(itemSvc, logr.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logr.Warn("health check failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// Images are only served from here for the disk backend; the s3 backend
	// relies on PUBLIC_BASE_URL pointing at the bucket.
	if disk, ok := store.(*storage.DiskStore); ok {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(disk.Dir())))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	api := func(r chi.Router) {
		r.Get("/items", itemHandler.ListItems)

		r.Route("/points", func(r chi.Router) {
			r.Get("/", pointHandler.ListPoints)
			r.Post("/", pointHandler.CreatePoint)
			r.Get("/{id}", pointHandler.GetPoint)
		})
	}

	// The web and mobile clients call the root paths.
	r.Group(api)
	r.Route("/api/v1", api)

	return r
}
