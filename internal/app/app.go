package app

import (
	"net/http"

	"family-scheduler-go/internal/config"
	"family-scheduler-go/internal/db"
	activitydomain "family-scheduler-go/internal/domain/activity"
	familydomain "family-scheduler-go/internal/domain/family"
	userdomain "family-scheduler-go/internal/domain/user"
	activityrepo "family-scheduler-go/internal/repository/postgres/activity"
	familyrepo "family-scheduler-go/internal/repository/postgres/family"
	userrepo "family-scheduler-go/internal/repository/postgres/user"
	"family-scheduler-go/internal/transport/httpserver"
	"family-scheduler-go/internal/transport/httpserver/handler"
	"family-scheduler-go/internal/worker"
	"family-scheduler-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	rollover   *worker.Rollover
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load()

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	familyService := familydomain.NewService(familyrepo.NewPostgres(dbConn))
	activityService := activitydomain.NewService(activityrepo.NewPostgres(dbConn))
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn))

	handlers := handler.New(familyService, activityService, userService, log)
	router := httpserver.NewRouter(cfg, handlers)
	srv := httpserver.New(cfg, router)

	var rollover *worker.Rollover
	if cfg.RolloverEnabled {
		rollover = worker.NewRollover(familyService, cfg.RolloverInterval, log)
	}

	return &App{
		cfg:        cfg,
		httpServer: srv,
		rollover:   rollover,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// RolloverWorker is nil when the scheduled rollover is disabled.
func (a *App) RolloverWorker() *worker.Rollover {
	return a.rollover
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
