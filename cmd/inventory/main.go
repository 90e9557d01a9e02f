package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Spok95/inventory-tracker/internal/analytics"
	"github.com/Spok95/inventory-tracker/internal/api"
	"github.com/Spok95/inventory-tracker/internal/bot"
	"github.com/Spok95/inventory-tracker/internal/config"
	"github.com/Spok95/inventory-tracker/internal/infra/db"
	httpx "github.com/Spok95/inventory-tracker/internal/infra/http"
	"github.com/Spok95/inventory-tracker/internal/infra/logger"
	"github.com/Spok95/inventory-tracker/internal/infra/memstore"
	"github.com/Spok95/inventory-tracker/internal/infra/metrics"
	"github.com/Spok95/inventory-tracker/internal/notify"
	"github.com/Spok95/inventory-tracker/internal/rules"
	"github.com/Spok95/inventory-tracker/internal/scheduler"
	"github.com/Spok95/inventory-tracker/internal/service"
)

func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/example.yaml"
}

func main() {
	cfg, err := config.Load(configPath())
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env, logger.File{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// 1) storage
	var stores service.Stores
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		mem := memstore.New()
		stores = service.Stores{
			Materials:    mem.Materials,
			Transactions: mem.Transactions,
			Defects:      mem.Defects,
			Alerts:       mem.Alerts,
			Users:        mem.Users,
			Categories:   mem.Categories,
		}
		log.Warn("using in-memory storage, data is lost on restart")
	default:
		if err := db.Migrate(cfg.Postgres.DSN); err != nil {
			log.Error("migrations failed", "err", err)
			return
		}
		log.Info("migrations applied")

		pool, err := db.Connect(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("db connect failed", "err", err)
			return
		}
		defer pool.Close()
		log.Info("db connected")
		stores = db.Stores(pool)
	}

	// 2) notification channels. svc is assigned below; recipients are only resolved at send time.
	var svc *service.Services
	channels := map[string]notify.Notifier{}

	var tg *tgbotapi.BotAPI
	if cfg.Telegram.Enabled {
		client := &http.Client{Timeout: time.Duration(cfg.Telegram.PollTimeout)*time.Second + cfg.Telegram.SendTimeout}
		tg, err = tgbotapi.NewBotAPIWithClient(cfg.Telegram.Token, tgbotapi.APIEndpoint, client)
		if err != nil {
			log.Error("telegram init failed", "err", err)
			return
		}
		log.Info("telegram authorized", "bot", tg.Self.UserName)
		channels["telegram"] = notify.NewTelegram(tg, cfg.Telegram.AdminChatID, func(ctx context.Context) ([]int64, error) {
			return svc.Users.AlertRecipients(ctx)
		})
	}
	if cfg.Webhook.Enabled {
		channels["webhook"] = notify.NewWebhook(cfg.Webhook.URL, cfg.Webhook.Timeout)
	}
	var notifier notify.Notifier = notify.Nop{}
	if len(channels) > 0 {
		multi := notify.NewMulti(log, m, channels)
		log.Info("notifications enabled", "channels", multi.Len())
		notifier = multi
	}

	svc = service.New(service.Deps{
		Stores:   stores,
		Engine:   rules.NewEngine(cfg.Alerts.Thresholds),
		Notifier: notifier,
		Metrics:  m,
		Log:      log,
		Settings: service.Settings{
			Timeout:    cfg.Storage.Timeout,
			Costs:      analytics.NewCostTable(cfg.Analytics.CategoryCosts, cfg.Analytics.DefaultUnitCost),
			LossFactor: cfg.Analytics.LossFactor,
			TrendDays:  cfg.Analytics.TrendDays,
			Location:   cfg.Location(),
		},
	})

	// 3) periodic alert check, once at startup and then on schedule
	if cfg.Alerts.CheckCron != "" {
		sched := scheduler.New(cfg.Alerts.CheckCron, cfg.Location(), svc.Alerts, time.Minute, log)
		sched.RunOnce()
		if err := sched.Start(); err != nil {
			log.Error("scheduler start failed", "err", err)
			return
		}
		defer sched.Stop()
	}

	// 4) HTTP API and metrics
	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		gatherer = reg
	}
	srv := httpx.New(cfg.HTTP.Addr, api.NewRouter(svc, log, cfg.App.Env == "dev"), gatherer)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	// 5) telegram commands
	if tg != nil {
		b := bot.New(tg, log, svc, cfg.Telegram.AdminChatID)
		go func() {
			if err := b.Run(ctx, cfg.Telegram.PollTimeout); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("bot stopped", "err", err)
			}
		}()
		log.Info("telegram bot started")
	}

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
