package router

import (
	"fmt"
	"net/http"

	"ledger-admin/internal/application/listing"
	ownsvc "ledger-admin/internal/application/ownership"
	"ledger-admin/internal/config"
	"ledger-admin/internal/domain"
	"ledger-admin/internal/infrastructure/database"
	healthhandler "ledger-admin/internal/interfaces/handlers/health"
	listhandler "ledger-admin/internal/interfaces/handlers/listings"
	ownhandler "ledger-admin/internal/interfaces/handlers/ownerships"
	"ledger-admin/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp opens the database and Redis from cfg and builds the Fiber app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, fmt.Errorf("migrate: %w", err)
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb = redis.NewClient(opt)
	}

	return NewApp(cfg, db, rdb), db, rdb, nil
}

// NewApp wires services and routes over already opened connections. rdb may be nil.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.HealthMarker(rdb))

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             database.Pinger{DB: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/health/reset", hh.Reset)

	listings := &listing.Service{Sources: map[domain.EntityType]listing.Source{
		domain.EntityFoboAccount: listing.FoboAccountSource(&database.FoboAccountFetcher{DB: db}),
		domain.EntityBalanceType: listing.BalanceTypeSource(&database.BalanceTypeFetcher{DB: db}),
	}}
	ownerships := &ownsvc.Service{
		Store:    &database.OwnershipStore{DB: db},
		Accounts: &database.AccountLookup{DB: db},
		Contacts: &database.ContactLookup{DB: db},
		Clock:    domain.SystemClock{},
	}

	api := app.Group("/api/v1")

	lh := &listhandler.Handlers{
		Service:         listings,
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	}
	oh := &ownhandler.Handlers{Service: ownerships}

	// FOBO accounts
	fa := api.Group("/fobo-accounts")
	fa.Get("/", lh.List(domain.EntityFoboAccount))
	fa.Post("/ag-grid", lh.AgGrid(domain.EntityFoboAccount))
	fa.Get("/:id/ownerships", oh.ListByAccount)

	// Balance types
	bt := api.Group("/balance-types")
	bt.Get("/", lh.List(domain.EntityBalanceType))
	bt.Post("/ag-grid", lh.AgGrid(domain.EntityBalanceType))

	// Ownerships
	og := api.Group("/fobo-account-ownerships")
	og.Post("/", oh.Create)
	og.Post("/add-temporary-owner", oh.AddTemporaryOwner)
	og.Get("/:id", oh.Get)
	og.Patch("/:id/update-temporary-owner", oh.Update)

	return app
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
