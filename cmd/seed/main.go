package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/techhelpdesk/helpdesk-service/internal/auth"
	"github.com/techhelpdesk/helpdesk-service/internal/config"
	"github.com/techhelpdesk/helpdesk-service/internal/domain"
	"github.com/techhelpdesk/helpdesk-service/internal/observability"
	"github.com/techhelpdesk/helpdesk-service/internal/persistence"
	"github.com/techhelpdesk/helpdesk-service/internal/repository"
)

// seedPassword is shared by all demo accounts.
const seedPassword = "admin123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := run(ctx, pg, cfg, logger); err != nil {
		logger.Fatal("seed failed", zap.Error(err))
	}
	logger.Info("seed completed",
		zap.Int("users", 3),
		zap.Int("categories", 3),
		zap.Int("clients", 5),
		zap.Int("technicians", 3),
		zap.Int("tickets", 10))
}

func run(ctx context.Context, pg *persistence.Postgres, cfg *config.Config, logger *zap.Logger) error {
	pool := pg.PoolHandle()
	users := repository.NewUserRepository(pool)
	categories := repository.NewCategoryRepository(pool)
	clients := repository.NewClientRepository(pool)
	technicians := repository.NewTechnicianRepository(pool)
	tickets := repository.NewTicketRepository(pool)

	hash, err := auth.HashPassword(seedPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.User{Name: "Primary Administrator", Email: "admin@techhelpdesk.com", PasswordHash: hash, Role: domain.UserRoleAdmin}
	tech := &domain.User{Name: "Technician User", Email: "tech@techhelpdesk.com", PasswordHash: hash, Role: domain.UserRoleTechnician}
	client := &domain.User{Name: "Client User", Email: "client@techhelpdesk.com", PasswordHash: hash, Role: domain.UserRoleClient}
	for _, u := range []*domain.User{admin, tech, client} {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}
	logger.Info("seeded users")

	cats := []*domain.Category{
		{Name: "Service Request", Description: "General support requests and inquiries"},
		{Name: "Hardware Incident", Description: "Computer hardware and peripheral problems"},
		{Name: "Software Incident", Description: "Software, application and operating system problems"},
	}
	for _, c := range cats {
		if err := categories.Create(ctx, c); err != nil {
			return err
		}
	}
	logger.Info("seeded categories")

	cls := []*domain.Client{
		{Name: "Carlos Rodriguez", Company: "Tech Solutions S.A.", ContactEmail: "carlos.rodriguez@techsolutions.com"},
		{Name: "Maria Gonzalez", Company: "Innovatech Corp", ContactEmail: "maria.gonzalez@innovatech.com"},
		{Name: "Juan Perez", Company: "Digital Services Ltd", ContactEmail: "juan.perez@digitalservices.com"},
		{Name: "Ana Martinez", Company: "Cloud Systems Inc", ContactEmail: "ana.martinez@cloudsystems.com"},
		{Name: "Luis Fernandez", Company: "Data Analytics Co", ContactEmail: "luis.fernandez@dataanalytics.com"},
	}
	for _, c := range cls {
		if err := clients.Create(ctx, c); err != nil {
			return err
		}
	}
	logger.Info("seeded clients")

	techs := []*domain.Technician{
		{Name: "Pedro Sanchez", Specialty: "Hardware and Networking", Availability: true},
		{Name: "Laura Torres", Specialty: "Software and Applications", Availability: true},
		{Name: "Miguel Ruiz", Specialty: "Operating Systems", Availability: true},
	}
	for _, t := range techs {
		if err := technicians.Create(ctx, t); err != nil {
			return err
		}
	}
	logger.Info("seeded technicians")

	demo := []*domain.Ticket{
		{Title: "Computer does not power on", Description: "The sales area computer has not powered on since this morning", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh, CategoryID: cats[1].ID, ClientID: cls[0].ID, TechnicianID: &techs[0].ID, CreatedByID: admin.ID},
		{Title: "Error installing software", Description: "Cannot install the new accounting software package", Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityMedium, CategoryID: cats[2].ID, ClientID: cls[1].ID, TechnicianID: &techs[1].ID, CreatedByID: client.ID},
		{Title: "Shared folder access request", Description: "I need access to the shared projects folder", Status: domain.TicketStatusResolved, Priority: domain.TicketPriorityLow, CategoryID: cats[0].ID, ClientID: cls[2].ID, TechnicianID: &techs[2].ID, CreatedByID: client.ID},
		{Title: "Printer not printing", Description: "The third floor printer is not responding", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityMedium, CategoryID: cats[1].ID, ClientID: cls[3].ID, CreatedByID: admin.ID},
		{Title: "Blue screen on Windows", Description: "My computer shows a blue screen during startup", Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityCritical, CategoryID: cats[2].ID, ClientID: cls[4].ID, TechnicianID: &techs[2].ID, CreatedByID: client.ID},
		{Title: "New user request", Description: "I need a user account created for the new employee", Status: domain.TicketStatusClosed, Priority: domain.TicketPriorityLow, CategoryID: cats[0].ID, ClientID: cls[0].ID, TechnicianID: &techs[1].ID, CreatedByID: admin.ID},
		{Title: "Keyboard not working", Description: "Some keys on the keyboard are not responding", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityMedium, CategoryID: cats[1].ID, ClientID: cls[1].ID, CreatedByID: client.ID},
		{Title: "Antivirus update", Description: "The corporate antivirus needs to be updated", Status: domain.TicketStatusResolved, Priority: domain.TicketPriorityHigh, CategoryID: cats[2].ID, ClientID: cls[2].ID, TechnicianID: &techs[1].ID, CreatedByID: admin.ID},
		{Title: "Slow internet connection", Description: "The internet connection is very slow in my area", Status: domain.TicketStatusInProgress, Priority: domain.TicketPriorityMedium, CategoryID: cats[1].ID, ClientID: cls[3].ID, TechnicianID: &techs[0].ID, CreatedByID: client.ID},
		{Title: "Software license request", Description: "I need a license for Adobe Photoshop", Status: domain.TicketStatusOpen, Priority: domain.TicketPriorityLow, CategoryID: cats[0].ID, ClientID: cls[4].ID, CreatedByID: client.ID},
	}
	for _, t := range demo {
		if err := tickets.Create(ctx, t); err != nil {
			return err
		}
	}
	logger.Info("seeded tickets")

	return nil
}
