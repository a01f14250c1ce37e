package app

import (
	"net/http"

	"gorm.io/gorm"

	"trip-planner-go/internal/config"
	"trip-planner-go/internal/db"
	budgetdomain "trip-planner-go/internal/domain/budget"
	exportdomain "trip-planner-go/internal/domain/export"
	itinerarydomain "trip-planner-go/internal/domain/itinerary"
	tripdomain "trip-planner-go/internal/domain/trip"
	userdomain "trip-planner-go/internal/domain/user"
	weatherdomain "trip-planner-go/internal/domain/weather"
	"trip-planner-go/internal/integrations/openmeteo"
	budgetrepo "trip-planner-go/internal/repository/postgres/budget"
	exportrepo "trip-planner-go/internal/repository/postgres/export"
	itineraryrepo "trip-planner-go/internal/repository/postgres/itinerary"
	triprepo "trip-planner-go/internal/repository/postgres/trip"
	userrepo "trip-planner-go/internal/repository/postgres/user"
	weatherrepo "trip-planner-go/internal/repository/postgres/weather"
	"trip-planner-go/internal/transport/httpserver"
	"trip-planner-go/internal/transport/httpserver/handler"
	authhandler "trip-planner-go/internal/transport/httpserver/handler/auth"
	budgethandler "trip-planner-go/internal/transport/httpserver/handler/budget"
	commonhandler "trip-planner-go/internal/transport/httpserver/handler/common"
	itineraryhandler "trip-planner-go/internal/transport/httpserver/handler/itinerary"
	tripshandler "trip-planner-go/internal/transport/httpserver/handler/trips"
	"trip-planner-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn), cfg.Auth.SecretKey, cfg.Auth.AccessTokenTTL)
	trips := tripdomain.NewService(triprepo.NewPostgres(dbConn))
	itinerary := itinerarydomain.NewService(itineraryrepo.NewPostgres(dbConn))
	budget := budgetdomain.NewService(budgetrepo.NewPostgres(dbConn))
	weather := weatherdomain.NewService(openmeteo.NewClient(cfg.Weather), weatherrepo.NewPostgres(dbConn), log)
	export := exportdomain.NewService(exportrepo.NewPostgres(dbConn))

	handlers := &handler.Handlers{
		Common:    commonhandler.New(),
		Auth:      authhandler.New(users, log),
		Trips:     tripshandler.New(trips, weather, export, log),
		Itinerary: itineraryhandler.New(trips, itinerary, log),
		Budget:    budgethandler.New(trips, budget, log),
	}

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, users)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
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
