package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tu-usuario/contable-pro/internal/application/expenses"
	appledger "github.com/tu-usuario/contable-pro/internal/application/ledger"
	"github.com/tu-usuario/contable-pro/internal/infrastructure/excel"
	httpRouter "github.com/tu-usuario/contable-pro/internal/interfaces/http"
	"github.com/tu-usuario/contable-pro/pkg/config"
	"github.com/tu-usuario/contable-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("libro", cfg.Store.Path).
		Str("espejo", cfg.Store.MirrorPath).
		Msg("iniciando aplicación")

	store := excel.NewStore(cfg.Store.Path, cfg.Store.MirrorPath, log)

	ledgerSvc := appledger.NewService(store, log, appledger.Options{
		AmountLenient: cfg.Store.AmountLenient,
		StoreTimeout:  cfg.Store.Timeout,
	})
	expensesSvc := expenses.NewService(store, log, cfg.Store.AmountLenient, cfg.Store.Timeout)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:   ledgerSvc,
		Expenses: expensesSvc,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("servidor HTTP")
		}
	}()
	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("escuchando")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado forzado")
	}
}
