package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/adrianolorenzi02/conferencia-compra/internal/clock"
	conferencedomain "github.com/adrianolorenzi02/conferencia-compra/internal/conference/domain"
	"github.com/adrianolorenzi02/conferencia-compra/internal/config"
	"github.com/adrianolorenzi02/conferencia-compra/internal/notification"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/logger"
	"github.com/adrianolorenzi02/conferencia-compra/internal/observability/metrics"
	"github.com/adrianolorenzi02/conferencia-compra/internal/report"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server, engine *gin.Engine) {
		s.RegisterRoutes(engine)
	}),
	fx.Invoke(RunHTTP),
)

// Server binds the conference workflow to the HTTP API.
type Server struct {
	cfg         config.Config
	log         *zap.Logger
	session     conferencedomain.Service
	buffer      *notification.Buffer
	saver       report.Saver
	clk         clock.Clock
	scanLimiter *rateLimiter
}

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	Session conferencedomain.Service
	Buffer  *notification.Buffer
	Saver   report.Saver
	Clock   clock.Clock
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:         p.Config,
		log:         p.Log.Named("server"),
		session:     p.Session,
		buffer:      p.Buffer,
		saver:       p.Saver,
		clk:         p.Clock,
		scanLimiter: newRateLimiter(p.Config.HTTP.ScanRateLimit, p.Config.HTTP.ScanRateWindow),
	}
}

// NewEngine builds the gin engine with the observability middleware stack.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

// RegisterRoutes wires the workflow endpoints.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", s.Healthz)

	api := engine.Group("/api")
	api.GET("/conference", s.GetConference)
	api.GET("/conference/progress", s.GetProgress)
	api.POST("/conference/invoice", s.LoadInvoice)
	api.POST("/conference/start", s.StartConference)
	api.POST("/conference/scans", s.rateLimitScans(), s.RecordScan)
	api.POST("/conference/finish", s.FinishConference)
	api.POST("/conference/reset", s.ResetConference)
	api.GET("/conference/report", s.DownloadReport)
	api.GET("/notifications", s.DrainNotifications)
}

func (s *Server) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) rateLimitScans() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.scanLimiter.Allow(c.ClientIP()) {
			AbortWithError(c, errRateLimited)
			return
		}
		c.Next()
	}
}

// RunHTTP starts the HTTP listener under the fx lifecycle with graceful
// shutdown.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTP.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
