// Package main - MEB Kazanım Botu'nun giriş noktası.
//
// Bot, Türkiye'deki öğretmenler için haftalık MEB kazanımlarını Telegram
// üzerinden sunar: sınıf ve branş seçimi, güncel haftanın kazanımı ve
// /hafta ile belirli bir haftanın sorgulanması.
//
// Katmanlar:
// - Domain: hafta çözümü, kazanım tablosu, oturum durumu
// - Application: diyalog durum makinesi
// - Infrastructure: veri kaynakları, oturum depoları, Telegram istemcisi
// - Interface: Telegram bot, HTTP sunucusu
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kayrademirkan/mebtg/config"
	"github.com/kayrademirkan/mebtg/internal/application/dialog"
	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/session"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/persistence/memory"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/persistence/postgres"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/persistence/redis"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/scheduler"
	"github.com/kayrademirkan/mebtg/internal/infrastructure/source/file"
	httpserver "github.com/kayrademirkan/mebtg/internal/interface/http"
	"github.com/kayrademirkan/mebtg/internal/interface/telegram"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. KONFİGÜRASYON
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGLAMA
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	slog.SetDefault(log)
	log.Info("starting MEB Kazanım Botu",
		"env", cfg.App.Environment,
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. KAZANIM KAYNAĞI
	// ─────────────────────────────────────────────────────────────────────────
	var source curriculum.Source

	switch cfg.Curriculum.Source {
	case config.SourcePostgres:
		log.Info("connecting to database...")
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL, postgres.PoolSettings{
			MaxConns:        int32(cfg.Database.MaxOpenConns),
			MinConns:        int32(cfg.Database.MaxIdleConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer func() {
			log.Info("closing database connection...")
			conn.Close()
		}()

		log.Info("running database migrations...")
		if err := conn.RunMigrations(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		source = postgres.NewCurriculumSource(conn, cfg.Database.QueryTimeout)
	default:
		source = file.NewSource(cfg.Curriculum.FilePath)
	}

	// İlk yükleme başarısız olursa bot boş tabloyla başlar; her sorgu
	// "bulunamadı" cevabına düşer ve arka plan yenileyici yeniden dener.
	table, err := source.Load(ctx)
	if err != nil {
		log.Warn("curriculum load failed, starting with empty table", "error", err)
		table = curriculum.EmptyTable()
	}
	holder := curriculum.NewHolder(table)
	log.Info("curriculum table loaded", "entries", holder.Current().Size())

	// ─────────────────────────────────────────────────────────────────────────
	// 4. OTURUM DEPOSU
	// ─────────────────────────────────────────────────────────────────────────
	var sessions session.Store

	switch cfg.Session.Store {
	case config.StoreRedis:
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout
		redisCfg.SessionTTL = cfg.Session.TTL

		store, err := redis.NewSessionStore(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			log.Info("closing redis connection...")
			_ = store.Close()
		}()
		sessions = store
		log.Info("redis connection established")
	default:
		sessions = memory.NewSessionStore()
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. DİYALOG MAKİNESİ VE BOT
	// ─────────────────────────────────────────────────────────────────────────
	machine := dialog.NewMachine(sessions, holder)

	botConfig := telegram.DefaultBotConfig(cfg.Telegram.Token)
	botConfig.Debug = cfg.App.Debug
	botConfig.Logger = log
	botConfig.PollingTimeout = int(cfg.Telegram.PollingTimeout.Seconds())
	botConfig.MaxConcurrentUpdates = cfg.Telegram.MaxConcurrentUpdates
	botConfig.UserRateLimit = cfg.Telegram.UserRateLimit
	botConfig.GracefulShutdownTimeout = cfg.App.ShutdownTimeout
	if cfg.Telegram.UseWebhook {
		botConfig.Mode = "webhook"
		botConfig.WebhookURL = cfg.Telegram.WebhookURL
		botConfig.WebhookSecret = cfg.Telegram.WebhookSecret
	}

	bot, err := telegram.NewBot(botConfig, machine)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ARKA PLAN YENİLEYİCİ
	// ─────────────────────────────────────────────────────────────────────────
	var refresher *scheduler.Refresher
	if cfg.Curriculum.RefreshInterval > 0 {
		refresher = scheduler.NewRefresher(source, holder, cfg.Curriculum.RefreshInterval, log)
		go refresher.Run(ctx)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. HTTP SUNUCUSU
	// ─────────────────────────────────────────────────────────────────────────
	var server *httpserver.Server
	if cfg.HTTP.Enabled || cfg.Telegram.UseWebhook {
		httpConfig := httpserver.DefaultConfig()
		httpConfig.Host = cfg.HTTP.Host
		httpConfig.Port = cfg.HTTP.Port
		httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
		httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
		httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
		httpConfig.WebhookSecret = cfg.Telegram.WebhookSecret

		statsFn := bot.GetStats
		if refresher != nil {
			statsFn = func() map[string]any {
				stats := bot.GetStats()
				lastRun, lastErr := refresher.LastResult()
				refresh := map[string]any{"last_run": lastRun}
				if lastErr != nil {
					refresh["last_error"] = lastErr.Error()
				}
				stats["curriculum_refresh"] = refresh
				return stats
			}
		}

		server = httpserver.NewServer(httpConfig, httpserver.Dependencies{
			Logger: log,
			Sink:   bot,
			ReadyCheck: func(_ context.Context) error {
				if !bot.IsRunning() {
					return errors.New("bot is not running")
				}
				return nil
			},
			Stats: statsFn,
		})
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. SERVİSLERİN BAŞLATILMASI
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 2)

	if server != nil {
		serverErrCh := server.StartAsync()
		go func() {
			if err := <-serverErrCh; err != nil {
				errCh <- fmt.Errorf("http server error: %w", err)
			}
		}()
	}

	go func() {
		if err := bot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- fmt.Errorf("bot error: %w", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 9. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		log.Error("service failed", "error", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn("http server shutdown failed", "error", err)
		}
	}
	if err := bot.Stop(shutdownCtx); err != nil {
		log.Warn("bot shutdown failed", "error", err)
	}

	log.Info("shutdown complete")
	return nil
}

// setupLogger builds the process logger from the observability settings.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Observability.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
