package memstore

import (
	"context"

	"github.com/Spok95/inventory-tracker/internal/domain/catalog"
	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type UserRepo struct{ db *db }

func (r *UserRepo) GetByTelegramID(_ context.Context, tgID int64) (*users.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if tgID == 0 {
		return nil, nil
	}
	for _, u := range r.db.users {
		if u.TelegramID == tgID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]users.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return values(r.db.users, func(a, b users.User) bool { return a.Username < b.Username }), nil
}

// Upsert by username. An existing admin keeps the admin role.
func (r *UserRepo) Upsert(_ context.Context, u users.User) (*users.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := r.db.now()
	for id, cur := range r.db.users {
		if cur.Username != u.Username {
			continue
		}
		cur.TelegramID = u.TelegramID
		cur.FullName = u.FullName
		cur.Email = u.Email
		if cur.Role != users.RoleAdmin {
			cur.Role = u.Role
		}
		cur.UpdatedAt = now
		r.db.users[id] = cur
		return &cur, nil
	}
	u.CreatedAt, u.UpdatedAt = now, now
	r.db.users[u.ID] = u
	return &u, nil
}

func (r *UserRepo) SetRole(_ context.Context, id string, role users.Role) (*users.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	u.Role = role
	u.UpdatedAt = r.db.now()
	r.db.users[id] = u
	return &u, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return apperrors.NotFound("user", id)
	}
	delete(r.db.users, id)
	return nil
}

type CategoryRepo struct{ db *db }

func (r *CategoryRepo) UpsertCategory(_ context.Context, name string, unitCost float64) (*catalog.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[name]
	if !ok {
		r.db.nextCatID++
		c = catalog.Category{ID: r.db.nextCatID, Name: name, Active: true, CreatedAt: r.db.now()}
	}
	c.UnitCost = unitCost
	r.db.categories[name] = c
	return &c, nil
}

func (r *CategoryRepo) GetCategoryByName(_ context.Context, name string) (*catalog.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[name]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) ListCategories(_ context.Context) ([]catalog.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return values(r.db.categories, func(a, b catalog.Category) bool { return a.Name < b.Name }), nil
}

func (r *CategoryRepo) SetCategoryActive(_ context.Context, name string, active bool) (*catalog.Category, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	c, ok := r.db.categories[name]
	if !ok {
		return nil, nil
	}
	c.Active = active
	r.db.categories[name] = c
	return &c, nil
}
