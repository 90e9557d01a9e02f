package users

import (
	"strings"
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
	RoleViewer  Role = "viewer"
)

// ParseRole accepts a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleStaff, RoleViewer:
		return r, true
	}
	return "", false
}

// CanManageUsers Only admins create users and change roles.
func CanManageUsers(r Role) bool { return r == RoleAdmin }

// CanManageInventory covers materials, transactions and defect reports.
func CanManageInventory(r Role) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

func CanAcknowledgeAlerts(r Role) bool { return r == RoleAdmin || r == RoleManager }

func CanDeleteRecords(r Role) bool { return r == RoleAdmin || r == RoleManager }

func CanExport(r Role) bool { return r == RoleAdmin || r == RoleManager }

// CanManageCatalog covers category unit costs used for valuation.
func CanManageCatalog(r Role) bool { return r == RoleAdmin || r == RoleManager }

func CanViewAnalytics(r Role) bool {
	_, ok := ParseRole(string(r))
	return ok
}

type User struct {
	ID         string    `json:"id"`
	TelegramID int64     `json:"telegramId,omitempty"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email,omitempty"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
