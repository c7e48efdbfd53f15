package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	redisCache "github.com/smsinvite/invite-service/internal/cache/redis"
	"github.com/smsinvite/invite-service/internal/carrier"
	"github.com/smsinvite/invite-service/internal/domain"
	httpHandler "github.com/smsinvite/invite-service/internal/handler/http"
	"github.com/smsinvite/invite-service/internal/persistant/postgresql"
	"github.com/smsinvite/invite-service/internal/quota"
	inviteRepo "github.com/smsinvite/invite-service/internal/repository/invite"
	"github.com/smsinvite/invite-service/internal/service"
	"gorm.io/gorm"
)

var (
	configFile = flag.String("config", "config.json", "config file path")
)

func main() {
	// create root context
	appCtx, appCtxCancel := context.WithCancel(context.Background())
	defer appCtxCancel()

	// listen for terminate signal
	notifyCtx, stop := signal.NotifyContext(appCtx, syscall.SIGTERM)
	defer stop()

	// parse flags
	flag.Parse()

	// parse config
	config, err := ReadConfigJson(*configFile)
	if err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	// initialize external dependencies
	db, rClient, err := initExternalDependencies(notifyCtx, config)
	if err != nil {
		log.Fatalf("failed to initialize external dependencies: %v", err)
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// init invite repository
	repo := inviteRepo.NewInviteRepository(db, rClient)

	// init quota tracker
	tracker := quota.NewTracker(repo, config.DailySendLimit)

	// init carrier integration
	webhookCarrier, err := carrier.NewWebhookCarrier(config.CarrierUrl, &config.CarrierMaxRetry)
	if err != nil {
		log.Fatalf("failed to initiate carrier client: %v", err)
	}

	// init dispatch service
	dispatcher := service.NewDispatcher(
		repo,
		tracker,
		webhookCarrier,
		logger.With(slog.String("component", "dispatcher")),
	)

	// init http handler
	httpHandler := httpHandler.NewHttpHandler(
		fmt.Sprintf(":%d", config.HttpPort),
		dispatcher,
	)

	wg := sync.WaitGroup{}
	// run http handler
	wg.Go(func() {
		if err := httpHandler.Run(); err != nil {
			logger.Error("http server encountered with an error and closed", "error", err.Error())
		}
		// cancel app context if http handler fails
		appCtxCancel()
	})

	// graceful shutdown
	wg.Go(func() {
		<-notifyCtx.Done()
		logger.Info("application shutting down...")

		shutDownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()

		httpHandler.Shutdown(shutDownCtx)
		postgresql.Close(db)
	})

	wg.Wait()
	os.Exit(0)
}

func initExternalDependencies(ctx context.Context, config *Config) (db *gorm.DB, rCache *redisCache.RedisCache, err error) {
	// initialize database
	db, err = postgresql.Connect(config.DbConnString)
	if err != nil {
		return
	}

	// bootstrap schema, idempotent across restarts
	if err = postgresql.Bootstrap(db, &domain.InviteMessage{}, &domain.SendLogEntry{}); err != nil {
		return
	}

	// initialize cache
	rCache, err = redisCache.NewRedisCache(ctx, config.RedisAddr)

	return
}
