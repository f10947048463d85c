package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/techhelpdesk/helpdesk-service/internal/domain"
)

// In-memory repository fakes used across service tests. They mimic the
// postgres repositories: missing rows surface as pgx.ErrNoRows and list
// results come back newest first.

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	seq     int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket.ID = uuid.NewString()
	r.seq++
	ticket.CreatedAt = time.Unix(int64(r.seq), 0)
	ticket.UpdatedAt = ticket.CreatedAt
	cp := *ticket
	r.tickets[ticket.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, id string, status domain.TicketStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) UpdateAssignment(_ context.Context, id string, technicianID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return pgx.ErrNoRows
	}
	ticket.TechnicianID = technicianID
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *ticket
	return &cp, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tickets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(*domain.Ticket) bool { return true }), nil
}

func (r *fakeTicketRepo) ListByClient(_ context.Context, clientID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(t *domain.Ticket) bool { return t.ClientID == clientID }), nil
}

func (r *fakeTicketRepo) ListByTechnician(_ context.Context, technicianID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collect(func(t *domain.Ticket) bool {
		return t.TechnicianID != nil && *t.TechnicianID == technicianID
	}), nil
}

func (r *fakeTicketRepo) CountByTechnicianAndStatus(_ context.Context, technicianID string, status domain.TicketStatus) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, t := range r.tickets {
		if t.TechnicianID != nil && *t.TechnicianID == technicianID && t.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeTicketRepo) collect(match func(*domain.Ticket) bool) []domain.Ticket {
	var result []domain.Ticket
	for _, t := range r.tickets {
		if match(t) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// fakeWorkloadCache records reads and writes so tests can seed stale counts
// and observe invalidations.
type fakeWorkloadCache struct {
	mu          sync.Mutex
	counts      map[string]int
	setCalls    int
	invalidated []string
}

func newFakeWorkloadCache() *fakeWorkloadCache {
	return &fakeWorkloadCache{counts: map[string]int{}}
}

func (c *fakeWorkloadCache) GetActiveCount(_ context.Context, technicianID string) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	count, ok := c.counts[technicianID]
	return count, ok
}

func (c *fakeWorkloadCache) SetActiveCount(_ context.Context, technicianID string, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[technicianID] = count
	c.setCalls++
}

func (c *fakeWorkloadCache) Invalidate(_ context.Context, technicianID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, technicianID)
	c.invalidated = append(c.invalidated, technicianID)
}

type fakeCategoryRepo struct {
	mu         sync.Mutex
	categories map[string]*domain.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*domain.Category{}}
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	category.ID = uuid.NewString()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[category.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *category
	r.categories[category.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *category
	return &cp, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, name string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeCategoryRepo) ListAll(_ context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Category
	for _, c := range r.categories {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.categories, id)
	return nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	clients map[string]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: map[string]*domain.Client{}}
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client.ID = uuid.NewString()
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, client *domain.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *client
	r.clients[client.ID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *client
	return &cp, nil
}

func (r *fakeClientRepo) GetByContactEmail(_ context.Context, email string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ContactEmail == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeClientRepo) ListAll(_ context.Context) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Client
	for _, c := range r.clients {
		result = append(result, *c)
	}
	return result, nil
}

func (r *fakeClientRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.clients, id)
	return nil
}

type fakeTechnicianRepo struct {
	mu          sync.Mutex
	technicians map[string]*domain.Technician
}

func newFakeTechnicianRepo() *fakeTechnicianRepo {
	return &fakeTechnicianRepo{technicians: map[string]*domain.Technician{}}
}

func (r *fakeTechnicianRepo) Create(_ context.Context, tech *domain.Technician) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tech.ID = uuid.NewString()
	tech.CreatedAt = time.Now()
	tech.UpdatedAt = tech.CreatedAt
	cp := *tech
	r.technicians[tech.ID] = &cp
	return nil
}

func (r *fakeTechnicianRepo) Update(_ context.Context, tech *domain.Technician) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.technicians[tech.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *tech
	r.technicians[tech.ID] = &cp
	return nil
}

func (r *fakeTechnicianRepo) GetByID(_ context.Context, id string) (*domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tech, ok := r.technicians[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *tech
	return &cp, nil
}

func (r *fakeTechnicianRepo) ListAll(_ context.Context) ([]domain.Technician, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Technician
	for _, t := range r.technicians {
		result = append(result, *t)
	}
	return result, nil
}

func (r *fakeTechnicianRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.technicians[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.technicians, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.User
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}
