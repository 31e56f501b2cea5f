package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/resell-inventory/internal/application/analytics"
	"github.com/jhoicas/resell-inventory/internal/application/inventory"
	"github.com/jhoicas/resell-inventory/internal/application/usecase"
	"github.com/jhoicas/resell-inventory/internal/domain/repository"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/export"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/resell-inventory/internal/infrastructure/redis"
	"github.com/jhoicas/resell-inventory/internal/infrastructure/sqlite"
	httpRouter "github.com/jhoicas/resell-inventory/internal/interfaces/http"
	"github.com/jhoicas/resell-inventory/pkg/config"
	"github.com/jhoicas/resell-inventory/pkg/logger"
)

// store repositorios y transacciones del driver elegido.
type store struct {
	txRunner   inventory.TxRunner
	warehouses repository.WarehouseRepository
	products   repository.ProductRepository
	activities repository.ActivityRepository
	prefs      repository.PreferenceRepository
	ping       httpRouter.HealthCheck
	close      func()
}

func openStore(ctx context.Context, cfg config.DBConfig) (*store, error) {
	if cfg.Driver == config.DriverPostgres {
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			txRunner:   postgres.NewTxRunner(pool),
			warehouses: postgres.NewWarehouseRepository(pool),
			products:   postgres.NewProductRepository(pool),
			activities: postgres.NewActivityRepository(pool),
			prefs:      postgres.NewPreferenceRepository(pool),
			ping:       pool.Ping,
			close:      pool.Close,
		}, nil
	}

	db, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := sqlite.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &store{
		txRunner:   sqlite.NewTxRunner(db),
		warehouses: sqlite.NewWarehouseRepository(db),
		products:   sqlite.NewProductRepository(db),
		activities: sqlite.NewActivityRepository(db),
		prefs:      sqlite.NewPreferenceRepository(db),
		ping:       db.PingContext,
		close:      func() { _ = db.Close() },
	}, nil
}

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
		Str("db_driver", cfg.DB.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("abrir store")
	}
	defer st.close()

	checks := map[string]httpRouter.HealthCheck{"db": st.ping}

	// Preferencias del widget: redis si hay URL, si no la tabla preferences del store.
	prefs := st.prefs
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		redisPrefs := infraredis.NewPreferenceStore(rdb)
		prefs = redisPrefs
		checks["redis"] = redisPrefs.Ping
		log.Info().Msg("preferencias en Redis")
	}

	widgetUC := usecase.NewWidgetUseCase(st.products, st.activities, prefs, loc, log)
	ledgerUC := inventory.NewLedgerUseCase(st.txRunner, st.products, widgetUC, cfg.Inventory.DefaultPlatform)
	warehouseUC := usecase.NewWarehouseUseCase(st.warehouses, st.products, st.txRunner)
	productUC := usecase.NewProductUseCase(st.products, export.NewProductWorkbook(loc))
	activityUC := usecase.NewActivityUseCase(st.activities, loc)
	dashboardUC := appanalytics.NewDashboardUseCase(st.products, st.activities, st.warehouses, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC:    warehouseUC,
		ProductUC:      productUC,
		LedgerUC:       ledgerUC,
		ActivityUC:     activityUC,
		DashboardUC:    dashboardUC,
		WidgetUC:       widgetUC,
		HealthChecks:   checks,
		JWTSecret:      cfg.JWT.Secret,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})

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
