package server

import (
	"context"
	"net/http"
	"time"

	animaldomain "github.com/MegaDev007/farmheart-backend-sub000/internal/animal/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/config"
	notificationdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/notification/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/observability/appcontext"
	ownerdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/owner/domain"
	"github.com/MegaDev007/farmheart-backend-sub000/internal/realtime"
	vitalsdomain "github.com/MegaDev007/farmheart-backend-sub000/internal/vitals/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Config  config.Config
	Log     *zap.Logger
	DB      *gorm.DB
	GenID   *snowflake.Node
	Owners  ownerdomain.Repository
	Animals animaldomain.Service
	Vitals  vitalsdomain.Service
	Inbox   notificationdomain.Inbox
	Prefs   notificationdomain.PreferenceResolver
	Hub     *realtime.Hub
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	db       *gorm.DB
	genID    *snowflake.Node
	owners   ownerdomain.Repository
	animals  animaldomain.Service
	vitals   vitalsdomain.Service
	inbox    notificationdomain.Inbox
	prefs    notificationdomain.PreferenceResolver
	hub      *realtime.Hub
	limiters *ownerLimiters

	engine *gin.Engine
}

func NewEngine(cfg config.Config) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	return engine
}

func NewServer(p Params, engine *gin.Engine) *Server {
	return &Server{
		cfg:      p.Config,
		log:      p.Log.Named("server"),
		db:       p.DB,
		genID:    p.GenID,
		owners:   p.Owners,
		animals:  p.Animals,
		vitals:   p.Vitals,
		inbox:    p.Inbox,
		prefs:    p.Prefs,
		hub:      p.Hub,
		limiters: newOwnerLimiters(p.Config.RateLimitPerMinute),
		engine:   engine,
	}
}

func (s *Server) RegisterAPIRoutes() {
	s.engine.Use(s.RequestContext())

	s.engine.GET("/healthz", s.Health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.engine.Group("/v1", s.TokenRequired(), s.RateLimited())
	{
		v1.GET("/animals/:id", s.GetAnimal)
		v1.POST("/animals/:id/stats", s.UpdateAnimalStats)
		v1.POST("/animals/:id/retire", s.RetireAnimal)
		v1.POST("/animals/:id/archive", s.ArchiveAnimal)

		v1.GET("/notifications", s.ListNotifications)
		v1.POST("/notifications/:id/read", s.MarkNotificationRead)
		v1.POST("/notifications/:id/dismiss", s.DismissNotification)

		v1.GET("/preferences", s.GetPreferences)
		v1.PUT("/preferences", s.UpdatePreferences)

		v1.GET("/stream", s.StreamNotifications)
	}
}

// RequestContext stamps each request with a request id and logs completion.
func (s *Server) RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = s.genID.Generate().String()
		}
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Request = c.Request.WithContext(appcontext.WithRequestID(c.Request.Context(), requestID))

		start := time.Now()
		c.Next()

		s.log.Debug("request completed",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) Health(c *gin.Context) {
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:              s.cfg.HTTPAddr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				s.log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					s.log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(RunHTTP),
)
