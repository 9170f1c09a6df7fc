// Command yatgbotd serves a subscription bot over a Telegram webhook.
//
// Configuration comes from BOT_* environment variables, see config.LoadBotConfig.
// Updates are de-duplicated in Redis when BOT_REDIS_ADDR is set and in process
// memory otherwise. Subscribers are kept in a sqlite database.
package main

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/YaCodeDev/GoYaTgBotKit/config"
	"github.com/YaCodeDev/GoYaTgBotKit/yacache"
	"github.com/YaCodeDev/GoYaTgBotKit/yaerrors"
	"github.com/YaCodeDev/GoYaTgBotKit/yalocales"
	"github.com/YaCodeDev/GoYaTgBotKit/yalogger"
	"github.com/YaCodeDev/GoYaTgBotKit/yaratelimit"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgbot/messagequeue"
	"github.com/YaCodeDev/GoYaTgBotKit/yatgsubscription"
	"github.com/YaCodeDev/GoYaTgBotKit/yawebhook"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

const (
	memoryCacheSweep = time.Minute

	rateLimitPerWindow = 20
	rateLimitWindow    = time.Minute

	outboxWorkers  = 4
	outboxInterval = time.Second
)

//go:embed locales/*.json
var embeddedLocales embed.FS

func main() {
	cfg := config.LoadBotConfig(yalogger.NewBaseLogger(nil).NewLogger())

	log := yalogger.NewBaseLogger(&yalogger.Config{
		BaseLoggerType: yalogger.Logrus,
		Level:          cfg.LogLevel,
		FullTimestamp:  true,
		JSON:           cfg.LogJSON,
	}).NewLogger()

	identity, err := yatgbot.ParseBotToken(cfg.Token)
	if err != nil {
		log.Fatalf("Invalid bot token: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := newCache(ctx, cfg, log)
	defer cache.Close()

	poolDB, err := openDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	store, err := yatgsubscription.NewGormStore(poolDB)
	if err != nil {
		log.Fatalf("Failed to prepare subscriber store: %v", err)
	}

	locales, err := loadLocales(cfg.DefaultLanguage)
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	b := newBot(
		identity,
		store,
		locales,
		messagequeue.NewDispatcher(ctx, newLogOutbox(log), outboxWorkers, outboxInterval, log),
		yaratelimit.NewRateLimit(cache, rateLimitPerWindow, rateLimitWindow),
		cfg.AdminIDs,
		log,
	)

	server := yawebhook.NewServer(b.dispatcher(), cache, log, yawebhook.Options{DedupTTL: cfg.DedupTTL})

	log.Infof("Serving bot %s on %s", identity, cfg.ListenAddr)

	if err := server.Run(ctx, cfg.ListenAddr); err != nil {
		log.Errorf("Webhook server stopped: %v", err)
	}
}

func newCache(ctx context.Context, cfg config.BotConfig, log yalogger.Logger) yacache.Cache {
	if cfg.RedisAddr == "" {
		log.Infof("BOT_REDIS_ADDR is empty, using in-memory cache")

		return yacache.NewMemory(memoryCacheSweep)
	}

	client, err := yacache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	return yacache.NewRedis(client)
}

func openDatabase(path string) (*gorm.DB, yaerrors.Error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, yaerrors.FromError(http.StatusInternalServerError, err, "[BOT] failed to open sqlite")
	}

	// sqlite allows a single writer.
	sqlDB.SetMaxOpenConns(1)

	poolDB, err := gorm.Open(
		sqlite.Dialector{
			Conn:       sqlDB,
			DriverName: "sqlite",
		},
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	if err != nil {
		return nil, yaerrors.FromError(http.StatusInternalServerError, err, "[BOT] failed to open gorm")
	}

	return poolDB, nil
}

func loadLocales(defaultLanguage string) (*yalocales.Localizer, yaerrors.Error) {
	files, err := fs.Sub(embeddedLocales, "locales")
	if err != nil {
		return nil, yaerrors.FromError(http.StatusInternalServerError, err, "[BOT] failed to open locales")
	}

	locales := yalocales.NewLocalizer(defaultLanguage)
	if err := locales.LoadLocales(files); err != nil {
		return nil, err.Wrap("[BOT] failed to load locales")
	}

	return locales, nil
}
