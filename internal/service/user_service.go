package service

import (
	"context"
	"strings"

	"github.com/Spok95/inventory-tracker/internal/domain/users"
	"github.com/Spok95/inventory-tracker/internal/pkg/apperrors"
)

type UserService struct {
	base
	users UserStore
}

func (s *UserService) List(ctx context.Context, actor Actor) ([]users.User, error) {
	if err := authorize(actor, users.CanManageUsers, "manage users"); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.users.List(ctx)
	return out, storeErr("list users", err)
}

// Upsert creates or updates a user by username.
func (s *UserService) Upsert(ctx context.Context, actor Actor, u users.User) (*users.User, error) {
	if err := authorize(actor, users.CanManageUsers, "manage users"); err != nil {
		return nil, err
	}
	u.Username = strings.TrimSpace(u.Username)
	if u.Username == "" {
		return nil, apperrors.Validation("username", "required")
	}
	role, ok := users.ParseRole(string(u.Role))
	if !ok {
		return nil, apperrors.Validation("role", "must be admin, manager, staff or viewer")
	}
	u.Role = role
	if u.ID == "" {
		u.ID = s.newID()
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.users.Upsert(ctx, u)
	return out, storeErr("upsert user", err)
}

func (s *UserService) SetRole(ctx context.Context, actor Actor, id string, role users.Role) (*users.User, error) {
	if err := authorize(actor, users.CanManageUsers, "manage users"); err != nil {
		return nil, err
	}
	r, ok := users.ParseRole(string(role))
	if !ok {
		return nil, apperrors.Validation("role", "must be admin, manager, staff or viewer")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.users.SetRole(ctx, id, r)
	return out, storeErr("set role", err)
}

func (s *UserService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, users.CanManageUsers, "manage users"); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return storeErr("delete user", s.users.Delete(ctx, id))
}

// ByTelegramID resolves a chat user. Unknown ids return nil, nil.
func (s *UserService) ByTelegramID(ctx context.Context, tgID int64) (*users.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	u, err := s.users.GetByTelegramID(ctx, tgID)
	return u, storeErr("get user", err)
}

// AlertRecipients lists Telegram chats of users allowed to act on alerts.
func (s *UserService) AlertRecipients(ctx context.Context) ([]int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	var out []int64
	for _, u := range all {
		if u.TelegramID != 0 && users.CanAcknowledgeAlerts(u.Role) {
			out = append(out, u.TelegramID)
		}
	}
	return out, nil
}
