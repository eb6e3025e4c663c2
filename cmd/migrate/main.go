package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/ignatzorin/freelance-lifecycle/internal/config"
	"github.com/ignatzorin/freelance-lifecycle/internal/db"
	"github.com/ignatzorin/freelance-lifecycle/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Fatal("migrate: ошибка загрузки конфигурации")
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	dir := flag.String("dir", cfg.MigrationsPath, "каталог с *.sql миграциями")
	flag.Parse()

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Log.WithError(err).Fatal("migrate: ошибка подключения к базе")
	}
	defer conn.Close()

	applied, err := db.RunMigrations(ctx, conn, *dir)
	if err != nil {
		logger.Log.WithError(err).WithField("applied", applied).Fatal("migrate: миграции остановлены")
	}
	if len(applied) == 0 {
		logger.Log.Info("migrate: новых миграций нет")
		return
	}
	logger.Log.WithField("applied", applied).Info("migrate: готово")
}
