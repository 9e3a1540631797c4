// Package server is the HTTP boundary: routing, auth, entitlement
// gating and error taxonomy mapping around the domain services.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/billing/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/config"
	diagnosticdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/diagnostic/domain"
	"github.com/vincentcrosswell-gif/truthradeo-sub000/internal/events"
	executiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/execution/domain"
	offerdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/offer/domain"
	snapshotdomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/snapshot/domain"
	subscriptiondomain "github.com/vincentcrosswell-gif/truthradeo-sub000/internal/subscription/domain"
)

type Params struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	DB         *gorm.DB
	SnapSvc    snapshotdomain.Service
	DiagSvc    diagnosticdomain.Service
	OfferSvc   offerdomain.Service
	ExecSvc    executiondomain.Service
	SubSvc     subscriptiondomain.Service
	EventSvc   events.Service
	BillingAdp billingdomain.Adapter
}

type Server struct {
	cfg config.Config
	log *zap.Logger
	db  *gorm.DB

	snapSvc  snapshotdomain.Service
	diagSvc  diagnosticdomain.Service
	offerSvc offerdomain.Service
	execSvc  executiondomain.Service
	subSvc   subscriptiondomain.Service
	eventSvc events.Service
	billing  billingdomain.Adapter
}

func NewServer(p Params) *Server {
	return &Server{
		cfg:      p.Cfg,
		log:      p.Log.Named("server"),
		db:       p.DB,
		snapSvc:  p.SnapSvc,
		diagSvc:  p.DiagSvc,
		offerSvc: p.OfferSvc,
		execSvc:  p.ExecSvc,
		subSvc:   p.SubSvc,
		eventSvc: p.EventSvc,
		billing:  p.BillingAdp,
	}
}

func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(log))
	return engine
}

// RegisterRoutes wires the API surface. Plan requirements per route
// follow the entitlement table: snapshot, diagnostic and roadmap are
// FREE; offer create/edit needs SOUTH_LOOP; runs, check-ins and
// collateral need RIVER_NORTH.
func (s *Server) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.POST("/billing/webhook", s.BillingWebhook)

	authed := api.Group("")
	authed.Use(s.RequireAuth())

	authed.POST("/billing/checkout", s.CreateCheckout)
	authed.GET("/billing/plan", s.GetPlan)

	authed.POST("/events", s.TrackEvent)
	authed.GET("/events/funnel", s.GetFunnel)

	free := authed.Group("")
	free.Use(s.RequirePlan(subscriptiondomain.PlanFree))
	free.PUT("/snapshot", s.UpsertSnapshot)
	free.GET("/snapshot", s.GetSnapshot)
	free.DELETE("/snapshot", s.ResetSnapshot)
	free.POST("/diagnostic/run", s.RunDiagnostic)
	free.GET("/diagnostic/history", s.DiagnosticHistory)
	free.GET("/roadmap", s.GetRoadmap)

	paid := authed.Group("")
	paid.Use(s.RequirePlan(subscriptiondomain.PlanSouthLoop))
	paid.POST("/offers", s.CreateOffer)
	paid.GET("/offers", s.ListOffers)
	paid.GET("/offers/:id", s.GetOffer)
	paid.PATCH("/offers/:id", s.UpdateOffer)
	paid.POST("/offers/:id/regenerate", s.RegenerateOffer)

	pro := authed.Group("")
	pro.Use(s.RequirePlan(subscriptiondomain.PlanRiverNorth))
	pro.GET("/offers/:id/assets", s.GetOfferAssets)
	pro.POST("/offers/:id/runs", s.LogRun)
	pro.GET("/offers/:id/runs", s.ListRuns)
	pro.POST("/offers/:id/checkins", s.UpsertCheckIn)
	pro.GET("/offers/:id/checkins", s.ListCheckIns)
}

// RunHTTP starts the HTTP server under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, s *Server, cfg config.Config, log *zap.Logger) {
	s.RegisterRoutes(engine)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("port", cfg.HTTP.Port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// track records an app event without letting a tracking failure touch
// the primary operation.
func (s *Server) track(c *gin.Context, userID string, req events.TrackRequest) {
	if req.Route == "" {
		req.Route = c.FullPath()
	}
	if err := s.eventSvc.Track(c.Request.Context(), userID, req); err != nil {
		s.log.Debug("event tracking failed", zap.String("event", req.Name), zap.Error(err))
	}
}
