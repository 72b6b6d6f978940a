package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sol-ticker/internal/config"
	"sol-ticker/internal/handler"
	"sol-ticker/internal/job"
	"sol-ticker/internal/provider"
	"sol-ticker/internal/service"
	"sol-ticker/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "sol-ticker/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	newPriceFetcherFunc    = newCoinGeckoFetcher
	newPriceServiceFunc    = service.NewPriceService
	startSchedulerFunc     = startScheduler
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

func startScheduler(s *job.RefreshScheduler, ctx context.Context, svc *service.PriceService) *job.Handle {
	return s.Start(ctx, svc.OnPriceUpdate, svc.OnHistoryUpdate)
}

func newCoinGeckoFetcher(tracer trace.Tracer, cfg *config.Config) job.PriceFetcher {
	limiter := provider.NewRateLimiterPerMinute(cfg.CoinGeckoRateLimitMin)
	transport := provider.NewHTTPTransport(time.Duration(cfg.CoinGeckoTimeoutSecs)*time.Second, limiter)
	return provider.NewCoinGeckoClient(tracer, transport, cfg.CoinGeckoBaseURL)
}

// @title           SOL Ticker API
// @version         1.0
// @description     Current Solana price and 30-day chart for web widgets.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	schedule, err := job.ParseSchedule(cfg.RefreshSchedule, time.Duration(cfg.CoinGeckoPollSecs)*time.Second)
	if err != nil {
		log.Fatalf("invalid REFRESH_SCHEDULE: %v", err)
	}

	// Price state, kept fresh by the refresh scheduler
	priceService := newPriceServiceFunc(tracer)
	scheduler := job.NewRefreshScheduler(tracer, newPriceFetcherFunc(tracer, cfg), schedule,
		job.WithDropStale(cfg.RefreshDropStale))
	refresh := startSchedulerFunc(scheduler, ctx, priceService)

	h := newHandlerFunc(tracer, priceService, cfg.ChartWidth, cfg.ChartHeight)

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(handler.CORS(cfg.CORSAllowedOrigins))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		log.Printf("HTTP server listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	refresh.Cancel()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
