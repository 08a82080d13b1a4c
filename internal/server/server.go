package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	achievementdomain "github.com/medforce/fieldtrack/internal/achievement/domain"
	"github.com/medforce/fieldtrack/internal/config"
	"github.com/medforce/fieldtrack/internal/observability"
	obsmiddleware "github.com/medforce/fieldtrack/internal/observability/logger"
	obsmetrics "github.com/medforce/fieldtrack/internal/observability/metrics"
	obstracing "github.com/medforce/fieldtrack/internal/observability/tracing"
	performancedomain "github.com/medforce/fieldtrack/internal/performance/domain"
	"github.com/medforce/fieldtrack/internal/scope"
	targetdomain "github.com/medforce/fieldtrack/internal/target/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		Log:             log,
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	genID          *snowflake.Node
	targetSvc      targetdomain.Service
	achievementSvc achievementdomain.Service
	performanceSvc performancedomain.Service
	scopes         scope.Resolver
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	GenID          *snowflake.Node
	TargetSvc      targetdomain.Service
	AchievementSvc achievementdomain.Service
	PerformanceSvc performancedomain.Service
	Scopes         scope.Resolver
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		genID:          p.GenID,
		targetSvc:      p.TargetSvc,
		achievementSvc: p.AchievementSvc,
		performanceSvc: p.PerformanceSvc,
		scopes:         p.Scopes,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api", s.IdentityMiddleware())

	// -------- Targets --------
	api.POST("/targets", s.AssignTarget)
	api.GET("/targets", s.ListTargets)
	api.GET("/targets/:id", s.GetTargetByID)
	api.PATCH("/targets/:id", s.AuthRequired(), s.OverrideTarget)
	api.DELETE("/targets/:id", s.DeleteTarget)

	// -------- Achievements --------
	api.POST("/achievements", s.RecordAchievement)

	// -------- Dashboard --------
	api.GET("/dashboard", s.GetDashboard)
	api.GET("/representatives/:id/targets", s.ListRepresentativeTargets)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
