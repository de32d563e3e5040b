package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/contact-crm/internal/application/usecase"
	"github.com/jhoicas/contact-crm/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC   *usecase.CompanyUseCase
	ContactUC   *usecase.ContactUseCase
	NoteUC      *usecase.NoteUseCase
	ActivityUC  *usecase.ActivityUseCase
	DashboardUC *usecase.DashboardUseCase
	Metrics     *Metrics // opcional: sin métricas no se expone /metrics
	Log         *logger.Logger
}

// NewApp crea la aplicación Fiber con vistas, manejo de errores, middlewares y rutas.
func NewApp(appName string, deps RouterDeps) (*fiber.App, error) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	views, err := NewRenderer()
	if err != nil {
		return nil, err
	}
	app := fiber.New(fiber.Config{
		AppName:      appName,
		Views:        views,
		ErrorHandler: ErrorHandler(deps.Log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	app.Use(requestid.New())
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	app.Use(RequestLogger(deps.Log))
	app.Use(recover.New())
	app.Use(VaryHeaderMiddleware())

	Router(app, deps)
	return app, nil
}

// Router registra las rutas HTML y operativas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health)
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	homeHandler := NewHomeHandler(deps.DashboardUC)
	app.Get("/", homeHandler.Index)

	// Companies
	companies := app.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Metrics)
	companies.Get("/", companyHandler.List)
	companies.Get("/new", companyHandler.New)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.Show)
	companies.Get("/:id/edit", companyHandler.Edit)
	companies.Post("/:id", companyHandler.Update)
	companies.Post("/:id/delete", companyHandler.Delete)

	// Contacts
	contacts := app.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC, deps.Metrics)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/new", contactHandler.New)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/:id", contactHandler.Show)
	contacts.Get("/:id/edit", contactHandler.Edit)
	contacts.Get("/:id/export.pdf", contactHandler.ExportPDF)
	contacts.Post("/:id", contactHandler.Update)
	contacts.Post("/:id/delete", contactHandler.Delete)

	// Notes y activities (fragmentos htmx)
	noteHandler := NewNoteHandler(deps.NoteUC, deps.Metrics)
	contacts.Post("/:id/notes", noteHandler.Create)
	app.Post("/notes/:id/delete", noteHandler.Delete)

	activityHandler := NewActivityHandler(deps.ActivityUC, deps.Metrics)
	contacts.Post("/:id/activities", activityHandler.Create)
	app.Post("/activities/:id/delete", activityHandler.Delete)
}
