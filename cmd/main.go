package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"production_board/internal/handlers"
	"production_board/internal/logger"
	"production_board/internal/models"
	"production_board/internal/repository"
	"production_board/internal/server"
	"production_board/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	_ "production_board/docs"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, authConfig())
	apiHandler := handlers.NewHandler(services, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// load master data (machine list, orders, unit values) from config
	if err := seedMasterData(ctx, repos, log); err != nil {
		log.Fatalw("failed to seed master data", "err", err)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

func authConfig() service.AuthConfig {
	return service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
	}
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "board.db")
		dbPath = "board.db"
	}
	return repository.InitDB(dbPath)
}

// seedMasterData upserts the configured machine park, open orders and
// item unit values. Operators only append events; the static lookups
// live in configs/config.yml and are reloaded on every boot.
func seedMasterData(ctx context.Context, repos *repository.Repository, log *logger.Logger) error {
	var machines []models.Machine
	if err := viper.UnmarshalKey("machines", &machines); err != nil {
		return err
	}
	for _, m := range machines {
		if err := repos.Machines.Upsert(ctx, m); err != nil {
			return err
		}
	}

	var orders []models.Order
	if err := viper.UnmarshalKey("orders", &orders); err != nil {
		return err
	}
	for _, o := range orders {
		if err := repos.Orders.Save(ctx, o); err != nil {
			return err
		}
	}

	values := viper.GetStringMapString("item_values")
	for code, raw := range values {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			log.Infow("skipping unparseable item value", "code", code, "value", raw)
			continue
		}
		if err := repos.ItemValues.Save(ctx, code, v); err != nil {
			return err
		}
	}

	log.Infow("master data loaded",
		"machines", len(machines), "orders", len(orders), "item_values", len(values))
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
