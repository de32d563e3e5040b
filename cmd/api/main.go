package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/contact-crm/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/contact-crm/internal/interfaces/http"
	"github.com/jhoicas/contact-crm/pkg/config"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	db, err := backend.Open(ctx, cfg.DB, log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión a la base de datos")
	}
	defer db.Close()

	if cfg.DB.AutoMigrate {
		n, err := db.Migrator.Up(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		log.Info().Int("aplicadas", n).Msg("esquema al día")
	}

	metrics, err := httpRouter.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("registrar métricas")
	}

	// PDF: ficha del contacto con notas y actividades
	sheetGenerator := infrapdf.NewContactSheetGenerator()

	app, err := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		CompanyUC:   usecase.NewCompanyUseCase(db.Tx),
		ContactUC:   usecase.NewContactUseCase(db.Tx, sheetGenerator),
		NoteUC:      usecase.NewNoteUseCase(db.Tx),
		ActivityUC:  usecase.NewActivityUseCase(db.Tx),
		DashboardUC: usecase.NewDashboardUseCase(db.Tx),
		Metrics:     metrics,
		Log:         log.Component("http"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("cargar vistas")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
