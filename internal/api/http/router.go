package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/techhelpdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/techhelpdesk/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Users          *handlers.UsersHandler
	Categories     *handlers.CategoriesHandler
	Clients        *handlers.ClientsHandler
	Technicians    *handlers.TechniciansHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", auth.Require(auth.PermTicketCreate), cfg.Tickets.CreateTicket)
	tickets.Get("", auth.Require(auth.PermTicketListAll), cfg.Tickets.ListTickets)
	tickets.Get("/client/:clientId", auth.Require(auth.PermTicketRead), cfg.Tickets.ListByClient)
	tickets.Get("/technician/:technicianId", auth.Require(auth.PermTicketRead), cfg.Tickets.ListByTechnician)
	tickets.Get("/:id", auth.Require(auth.PermTicketRead), cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", auth.Require(auth.PermTicketChangeStatus), cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/assign", auth.Require(auth.PermTicketAssign), cfg.Tickets.AssignTicket)
	tickets.Delete("/:id", auth.Require(auth.PermTicketDelete), cfg.Tickets.DeleteTicket)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.Require(auth.PermUserManage))
	users.Post("", cfg.Users.CreateUser)
	users.Get("", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Patch("/:id", cfg.Users.UpdateUser)
	users.Delete("/:id", cfg.Users.DeleteUser)

	categories := app.Group("/categories", cfg.AuthMiddleware.Handle)
	categories.Get("", auth.Require(auth.PermReferenceRead), cfg.Categories.ListCategories)
	categories.Get("/:id", auth.Require(auth.PermReferenceRead), cfg.Categories.GetCategory)
	categories.Post("", auth.Require(auth.PermReferenceManage), cfg.Categories.CreateCategory)
	categories.Patch("/:id", auth.Require(auth.PermReferenceManage), cfg.Categories.UpdateCategory)
	categories.Delete("/:id", auth.Require(auth.PermReferenceManage), cfg.Categories.DeleteCategory)

	clients := app.Group("/clients", cfg.AuthMiddleware.Handle)
	clients.Get("", auth.Require(auth.PermReferenceRead), cfg.Clients.ListClients)
	clients.Get("/:id", auth.Require(auth.PermReferenceRead), cfg.Clients.GetClient)
	clients.Post("", auth.Require(auth.PermReferenceManage), cfg.Clients.CreateClient)
	clients.Patch("/:id", auth.Require(auth.PermReferenceManage), cfg.Clients.UpdateClient)
	clients.Delete("/:id", auth.Require(auth.PermReferenceManage), cfg.Clients.DeleteClient)

	technicians := app.Group("/technicians", cfg.AuthMiddleware.Handle)
	technicians.Get("", auth.Require(auth.PermReferenceRead), cfg.Technicians.ListTechnicians)
	technicians.Get("/:id", auth.Require(auth.PermReferenceRead), cfg.Technicians.GetTechnician)
	technicians.Get("/:id/workload", auth.Require(auth.PermReferenceRead), cfg.Technicians.GetWorkload)
	technicians.Post("", auth.Require(auth.PermReferenceManage), cfg.Technicians.CreateTechnician)
	technicians.Patch("/:id", auth.Require(auth.PermReferenceManage), cfg.Technicians.UpdateTechnician)
	technicians.Delete("/:id", auth.Require(auth.PermReferenceManage), cfg.Technicians.DeleteTechnician)
}
