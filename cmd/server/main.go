package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/freelance-lifecycle/internal/config"
	"github.com/ignatzorin/freelance-lifecycle/internal/db"
	"github.com/ignatzorin/freelance-lifecycle/internal/goroutine"
	"github.com/ignatzorin/freelance-lifecycle/internal/http/middleware"
	httpRouter "github.com/ignatzorin/freelance-lifecycle/internal/http/router"
	"github.com/ignatzorin/freelance-lifecycle/internal/infrastructure/persistence"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/dto"
	"github.com/ignatzorin/freelance-lifecycle/internal/interface/http/handler"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
	"github.com/ignatzorin/freelance-lifecycle/internal/service"
	"github.com/ignatzorin/freelance-lifecycle/internal/storage"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/admin"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/dispute"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/job"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/message"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/order"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/proposal"
	"github.com/ignatzorin/freelance-lifecycle/internal/usecase/wallet"
	"github.com/ignatzorin/freelance-lifecycle/internal/ws"
)

// Счётчики и списки навыков в панели администратора допускают небольшую задержку.
const adminCacheTTL = 30 * time.Second

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка загрузки конфигурации")
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: ошибка подключения к базе")
	}
	defer safeClose(dbConn)

	if cfg.MigrateOnStart {
		if _, err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
			logger.Log.WithError(err).Fatal("main: ошибка миграций")
		}
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось подготовить хранилище файлов")
	}

	rateStore, err := middleware.NewRateLimitStore(cfg.RedisURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось подготовить rate limit")
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret)

	cache := service.NewCacheService()
	goroutine.SafeGoWithContext(ctx, "cache-cleanup", cache.Run)

	// Вебсокеты. События уходят в том же виде, что и ответы REST API.
	hub := ws.NewHub(dto.EventPayload)
	goroutine.SafeGoWithContext(ctx, "ws-hub", hub.Run)

	// Хранилище и транзакции.
	store := persistence.NewStore(dbConn)
	uow := persistence.NewUnitOfWork(dbConn)
	wallets := persistence.NewWalletRepositoryAdapter(dbConn)
	lifecycle := order.NewLifecycle(uow, hub)

	handlers := httpRouter.Handlers{
		Health: handler.NewHealthHandler(dbConn),
		Jobs: handler.NewJobHandler(
			job.NewCreateJobUseCase(uow),
			job.NewEditJobUseCase(uow),
			job.NewGetJobUseCase(store),
			job.NewListOpenJobsUseCase(store),
			job.NewListMyJobsUseCase(store),
			job.NewAdminListJobsUseCase(store),
			job.NewSetApprovalUseCase(uow),
			job.NewCancelJobUseCase(uow, hub),
			job.NewDeleteJobUseCase(uow),
		),
		Proposals: handler.NewProposalHandler(
			proposal.NewSubmitProposalUseCase(uow),
			proposal.NewListJobProposalsUseCase(store),
			proposal.NewListMyProposalsUseCase(store),
			proposal.NewAcceptProposalUseCase(uow, hub),
			proposal.NewRejectProposalUseCase(uow, hub),
			proposal.NewEditProposalUseCase(uow),
			proposal.NewDeleteProposalUseCase(uow),
		),
		Orders: handler.NewOrderHandler(
			order.NewGetOrderUseCase(store),
			order.NewListOrdersUseCase(store),
			order.NewSubmitWorkUseCase(lifecycle, store, blobs),
			order.NewReviewDeliveryUseCase(lifecycle),
			order.NewUpdateStatusUseCase(lifecycle),
			order.NewAdminApproveDeliveryUseCase(lifecycle),
			order.NewAdminCancelUseCase(lifecycle),
			order.NewDeleteOrderUseCase(uow),
			cfg.MaxUploadBytes(),
		),
		Disputes: handler.NewDisputeHandler(
			dispute.NewOpenDisputeUseCase(uow, hub),
			dispute.NewGetDisputeUseCase(store),
			dispute.NewListDisputesUseCase(store),
			dispute.NewResolveDisputeUseCase(uow, hub),
			dispute.NewCloseDisputeUseCase(uow, hub),
			dispute.NewDeleteDisputeUseCase(store),
		),
		Messages: handler.NewMessageHandler(
			message.NewSendMessageUseCase(store, hub),
			message.NewListMessagesUseCase(uow),
		),
		Wallet: handler.NewWalletHandler(
			wallet.NewGetWalletUseCase(wallets),
			wallet.NewListTransactionsUseCase(wallets),
		),
		Admin: handler.NewAdminHandler(
			admin.NewGetStatsUseCase(store).WithCache(cache, adminCacheTTL),
			admin.NewListSkillsUseCase(store).WithCache(cache, adminCacheTTL),
			admin.NewRenameSkillUseCase(uow).WithCache(cache),
			admin.NewDeleteSkillUseCase(uow).WithCache(cache),
		),
		WS: handler.NewWSHandler(hub, tokenManager, handler.AllowedOrigins(cfg.AllowedOrigins)),
	}

	engine, err := httpRouter.SetupRouter(cfg, handlers, tokenManager, rateStore)
	if err != nil {
		logger.Log.WithError(err).Fatal("main: не удалось собрать роутер")
	}

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	goroutine.SafeGo("http-shutdown", func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("main: ошибка остановки http сервера")
		}
	})

	logger.Log.WithField("port", cfg.HTTPPort).Info("main: HTTP сервер запущен")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Log.WithError(err).Fatal("main: сервер завершился с ошибкой")
	}
}

func newBlobStore(ctx context.Context, cfg *config.Config) (order.BlobStore, error) {
	if cfg.BlobBackend == config.BlobBackendS3 {
		client, err := storage.NewS3Client(ctx, storage.S3Options{
			Region:          cfg.S3.Region,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Endpoint:        cfg.S3.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3.Bucket, "deliveries", cfg.MaxUploadBytes()), nil
	}
	local, err := storage.NewLocalStore(cfg.MediaStoragePath, cfg.MaxUploadBytes())
	if err != nil {
		return nil, err
	}
	return local, nil
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		logger.Log.WithError(err).Error("main: ошибка закрытия базы")
	}
}
