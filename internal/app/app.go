package app

import (
	"context"

	"renthub/config"
	"renthub/internal/controllers"
	"renthub/internal/database"
	"renthub/internal/events"
	"renthub/internal/handlers/middleware"
	"renthub/internal/jobs"
	"renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	repos := repositories.New(db, eventBus)
	appServices, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to initialize services", err)
	}

	appControllers := controllers.New(appServices, repos, eventBus)
	appMiddleware := middleware.New(db, config, repos)

	app := &App{
		Database:    db,
		Middleware:  appMiddleware,
		EventBus:    eventBus,
		Config:      config,
		Services:    appServices,
		Repos:       repos,
		Controllers: appControllers,
	}

	app.subscribeCacheInvalidation()
	app.subscribeNotifications()

	if config.SchedulerEnabled {
		if err := app.registerJobs(); err != nil {
			return &App{}, err
		}
		appServices.Scheduler.Start()
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

// subscribeCacheInvalidation drops locally cached users when any instance
// mutates one. Without it, a deactivated user's cached profile keeps
// authenticating on the other instances until the cache TTL runs out.
func (a *App) subscribeCacheInvalidation() {
	a.EventBus.Subscribe(events.CACHE_CHANNEL, func(event events.Event) error {
		user := userFromInvalidation(event)
		if user == nil {
			return nil
		}

		a.Repos.User.ClearCache(context.Background(), user)
		return nil
	})
}

// userFromInvalidation rebuilds just enough of the user to address its cache
// keys. Returns nil for events that are not user invalidations.
func userFromInvalidation(event events.Event) *models.User {
	if event.Type != events.USER_INVALIDATED || event.UserID == nil {
		return nil
	}

	user := &models.User{}
	user.ID = *event.UserID
	if email, ok := event.Data["email"].(string); ok {
		user.Email = email
	}
	return user
}

// subscribeNotifications fans resolved-event notifications out to mail. Mail
// failures here only log; the decision is already committed.
func (a *App) subscribeNotifications() {
	if !a.Services.Mail.Enabled() {
		return
	}
	log := logger.New("app").Function("subscribeNotifications")

	a.EventBus.Subscribe(events.NOTIFICATIONS_CHANNEL, func(event events.Event) error {
		if event.UserID == nil {
			return nil
		}

		ctx := context.Background()
		user, err := a.Repos.User.GetByID(ctx, *event.UserID)
		if err != nil {
			return err
		}

		switch event.Type {
		case events.PAYMENT_REVIEWED:
			paymentID, err := eventEntityID(event, "paymentId")
			if err != nil {
				return err
			}
			payment, err := a.Repos.Payment.GetByID(ctx, paymentID)
			if err != nil {
				return err
			}
			return a.Services.Mail.SendPaymentReviewed(user, payment)

		case events.BOOKING_RESOLVED:
			bookingID, err := eventEntityID(event, "bookingId")
			if err != nil {
				return err
			}
			booking, err := a.Repos.Laundry.GetByID(ctx, bookingID)
			if err != nil {
				return err
			}
			return a.Services.Mail.SendBookingResolved(user, booking)

		case events.CHANGE_REQUEST_RESOLVED:
			log.Info("change request resolved", "userID", user.ID)
			return nil
		}

		return nil
	})
}

func eventEntityID(event events.Event, key string) (uuid.UUID, error) {
	raw, _ := event.Data[key].(string)
	return uuid.Parse(raw)
}

func (a *App) registerJobs() error {
	log := logger.New("app").Function("registerJobs")

	overdueJob := jobs.NewOverdueSweepJob(
		a.Repos.Contract,
		a.Repos.Payment,
		a.Services.Transaction,
		services.Daily,
	)
	if err := a.Services.Scheduler.AddJob(overdueJob); err != nil {
		return log.Err("failed to register overdue sweep job", err)
	}

	cleanupJob := jobs.NewUploadCleanupJob(
		a.Services.Upload,
		a.Repos.User,
		a.Repos.Payment,
		a.Repos.Laundry,
		services.DailyCleanup,
	)
	if err := a.Services.Scheduler.AddJob(cleanupJob); err != nil {
		return log.Err("failed to register upload cleanup job", err)
	}

	return nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}
	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.EventBus,
		a.Services.Token,
		a.Services.Mail,
		a.Services.Upload,
		a.Services.Report,
		a.Services.Transaction,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Building,
		a.Controllers.Room,
		a.Controllers.Contract,
		a.Controllers.Payment,
		a.Controllers.Laundry,
		a.Controllers.ChangeRequest,
	}
	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
