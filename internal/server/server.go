package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/landedcost/internal/auth"
	authdomain "github.com/smallbiznis/landedcost/internal/auth/domain"
	"github.com/smallbiznis/landedcost/internal/auth/oauth"
	"github.com/smallbiznis/landedcost/internal/auth/session"
	"github.com/smallbiznis/landedcost/internal/cache"
	"github.com/smallbiznis/landedcost/internal/clock"
	"github.com/smallbiznis/landedcost/internal/config"
	"github.com/smallbiznis/landedcost/internal/dutycategory"
	dutydomain "github.com/smallbiznis/landedcost/internal/dutycategory/domain"
	"github.com/smallbiznis/landedcost/internal/events"
	"github.com/smallbiznis/landedcost/internal/observability"
	obslogger "github.com/smallbiznis/landedcost/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/landedcost/internal/observability/metrics"
	obstracing "github.com/smallbiznis/landedcost/internal/observability/tracing"
	"github.com/smallbiznis/landedcost/internal/product"
	productdomain "github.com/smallbiznis/landedcost/internal/product/domain"
	"github.com/smallbiznis/landedcost/internal/providers"
	"github.com/smallbiznis/landedcost/internal/providers/pdf"
	"github.com/smallbiznis/landedcost/internal/providers/spreadsheet"
	"github.com/smallbiznis/landedcost/internal/ratelimit"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	cache.Module,
	events.Module,
	auth.Module,
	dutycategory.Module,
	product.Module,
	providers.Module,
	ratelimit.Module,
	fx.Provide(registerGin),
	fx.Provide(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
		SkipRoutes:      obsCfg.QuietRoutes,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(httpMetrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, s *Server, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	log          *zap.Logger
	authsvc      authdomain.Service
	google       *oauth.Google
	sessions     *session.Manager
	loginLimiter *ratelimit.LoginLimiter
	dutySvc      dutydomain.Service
	productSvc   productdomain.Service
	settings     *config.CatalogSettingsHolder
	pdf          pdf.Provider
	spreadsheet  spreadsheet.Provider
	clock        clock.Clock
	obsMetrics   *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	Log          *zap.Logger
	Authsvc      authdomain.Service
	Google       *oauth.Google
	Sessions     *session.Manager
	LoginLimiter *ratelimit.LoginLimiter
	DutySvc      dutydomain.Service
	ProductSvc   productdomain.Service
	Settings     *config.CatalogSettingsHolder
	PDF          pdf.Provider
	Spreadsheet  spreadsheet.Provider
	Clock        clock.Clock
	ObsMetrics   *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}

	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		log:          log.Named("http.server"),
		authsvc:      p.Authsvc,
		google:       p.Google,
		sessions:     p.Sessions,
		loginLimiter: p.LoginLimiter,
		dutySvc:      p.DutySvc,
		productSvc:   p.ProductSvc,
		settings:     p.Settings,
		pdf:          p.PDF,
		spreadsheet:  p.Spreadsheet,
		clock:        p.Clock,
		obsMetrics:   p.ObsMetrics,
	}

	svc.registerAuthRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAuthRoutes() {
	auth := s.engine.Group("/auth")

	auth.POST("/signup", s.SignUp)
	auth.POST("/login", s.Login)
	auth.POST("/logout", s.Logout)
	auth.GET("/me", s.AuthRequired(), s.Me)
	auth.GET("/oauth/google", s.GoogleLogin)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.AuthRequired())

	api.GET("/settings", s.GetSettings)

	// -------- Duty categories --------
	api.GET("/duty-categories", s.ListDutyCategories)
	api.POST("/duty-categories", s.CreateDutyCategory)

	// -------- Pricing --------
	api.GET("/pricing/preview", s.PreviewPricingQuery)
	api.POST("/pricing/preview", s.PreviewPricing)

	// -------- Products --------
	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/new", s.NewProductForm)
	api.GET("/products/export.xlsx", s.ExportProductsSpreadsheet)
	api.GET("/products/export.pdf", s.ExportProductsPDF)
	api.GET("/products/:id", s.GetProductByID)
	api.PATCH("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)
	api.GET("/products/:id/edit", s.EditProduct)
}
