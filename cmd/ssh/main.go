package main

import (
	"context"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"sol-ticker/internal/config"
	"sol-ticker/internal/job"
	"sol-ticker/internal/provider"
	"sol-ticker/internal/service"
	"sol-ticker/internal/tui"
	"sol-ticker/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	gossh "golang.org/x/crypto/ssh"
)

var (
	loadEnvFunc         = godotenv.Load
	loadConfigFunc      = config.Load
	initTracerFunc      = tracing.InitTracer
	newPriceFetcherFunc = newCoinGeckoFetcher
	newPriceServiceFunc = service.NewPriceService
	newWishServerFunc   = wish.NewServer
	setupSignalNotify   = ossignal.Notify
	waitForSignalFunc   = func(quit <-chan os.Signal) { <-quit }
)

func newCoinGeckoFetcher(tracer trace.Tracer, cfg *config.Config) job.PriceFetcher {
	limiter := provider.NewRateLimiterPerMinute(cfg.CoinGeckoRateLimitMin)
	transport := provider.NewHTTPTransport(time.Duration(cfg.CoinGeckoTimeoutSecs)*time.Second, limiter)
	return provider.NewCoinGeckoClient(tracer, transport, cfg.CoinGeckoBaseURL)
}

// The widget is public: any key or keyboard-interactive login is accepted,
// and only the key fingerprint is logged.
func acceptPublicKey(ctx ssh.Context, key ssh.PublicKey) bool {
	log.Printf("SSH auth accepted: user=%s fingerprint=%s", ctx.User(), gossh.FingerprintSHA256(key))
	return true
}

func acceptKeyboardInteractive(ctx ssh.Context, _ gossh.KeyboardInteractiveChallenge) bool {
	log.Printf("SSH auth accepted: user=%s keyboard-interactive", ctx.User())
	return true
}

// widgetHandler gives every session its own model over the shared price state.
func widgetHandler(prices tui.PriceSource) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		model := tui.NewModel(prices, bubbletea.MakeRenderer(s))
		pty, _, _ := s.Pty()
		model.SetSize(pty.Window.Width, pty.Window.Height)

		go func() {
			<-s.Context().Done()
			model.Close()
		}()

		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

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

	// One scheduler feeds every session
	priceService := newPriceServiceFunc(tracer)
	scheduler := job.NewRefreshScheduler(tracer, newPriceFetcherFunc(tracer, cfg), schedule,
		job.WithDropStale(cfg.RefreshDropStale))
	refresh := scheduler.Start(ctx, priceService.OnPriceUpdate, priceService.OnHistoryUpdate)

	// Build Wish SSH server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.SSHPort)

	srv, err := newWishServerFunc(
		wish.WithAddress(addr),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithPublicKeyAuth(acceptPublicKey),
		wish.WithKeyboardInteractiveAuth(acceptKeyboardInteractive),
		wish.WithMiddleware(
			bubbletea.Middleware(widgetHandler(priceService)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("failed to create SSH server: %v", err)
	}

	if srv != nil {
		go func() {
			log.Printf("SSH server listening on %s", addr)
			if err := srv.ListenAndServe(); err != nil {
				log.Printf("SSH server stopped: %v", err)
			}
		}()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down SSH server...")

	refresh.Cancel()
	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("SSH server shutdown error: %v", err)
		}
	}

	log.Println("SSH server exited")
}
