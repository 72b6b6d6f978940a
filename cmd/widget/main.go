package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"sol-ticker/internal/config"
	"sol-ticker/internal/job"
	"sol-ticker/internal/provider"
	"sol-ticker/internal/service"
	"sol-ticker/internal/tui"
	"sol-ticker/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initTracerFunc      = tracing.InitTracer
	newPriceFetcherFunc = newCoinGeckoFetcher
	setupLogFunc        = setupLog
	runProgramFunc      = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func newCoinGeckoFetcher(tracer trace.Tracer, cfg *config.Config) job.PriceFetcher {
	limiter := provider.NewRateLimiterPerMinute(cfg.CoinGeckoRateLimitMin)
	transport := provider.NewHTTPTransport(time.Duration(cfg.CoinGeckoTimeoutSecs)*time.Second, limiter)
	return provider.NewCoinGeckoClient(tracer, transport, cfg.CoinGeckoBaseURL)
}

// setupLog keeps log output off the alt screen. Logs go to path when set and
// are discarded otherwise.
func setupLog(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "sol-ticker")
	if err != nil {
		return nil, err
	}
	return f, nil
}

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup finishes first.
func run() int {
	loadEnvFunc()
	cfg := loadConfigFunc()

	logFile, err := setupLogFunc(cfg.WidgetLogFile)
	if err != nil {
		log.Printf("failed to open log file: %v", err)
		return 1
	}
	defer logFile.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Printf("failed to initialize tracer: %v", err)
		return 1
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	schedule, err := job.ParseSchedule(cfg.RefreshSchedule, time.Duration(cfg.CoinGeckoPollSecs)*time.Second)
	if err != nil {
		log.Printf("invalid REFRESH_SCHEDULE: %v", err)
		return 1
	}

	priceService := service.NewPriceService(tracer)
	scheduler := job.NewRefreshScheduler(tracer, newPriceFetcherFunc(tracer, cfg), schedule,
		job.WithDropStale(cfg.RefreshDropStale))
	refresh := scheduler.Start(ctx, priceService.OnPriceUpdate, priceService.OnHistoryUpdate)
	defer refresh.Cancel()

	model := tui.NewModel(priceService, lipgloss.NewRenderer(os.Stdout))
	defer model.Close()

	if err := runProgramFunc(model); err != nil {
		log.Printf("widget exited with error: %v", err)
		return 1
	}
	return 0
}
