package models

import (
	"admin/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	RoleFan  = "fan"
	RoleStar = "star"
)

// UserRoles lists the roles an admin may assign.
var UserRoles = []domain.Status{RoleFan, RoleStar, RoleAdmin}

var UserRoleLabels = map[domain.Status]string{
	RoleFan:   "Fan",
	RoleStar:  "Zvezda",
	RoleAdmin: "Admin",
}

type UserListItem struct {
	ID        domain.ID `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt string    `json:"createdAt"`
}

// LinkedCelebrity is the celebrity profile owned by a "star" user.
type LinkedCelebrity struct {
	ID       domain.ID `json:"id"`
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Verified bool      `json:"verified"`
}

type UserDetail struct {
	UserListItem
	OrdersCount int              `json:"ordersCount"`
	TotalSpent  decimal.Decimal  `json:"totalSpent"`
	Celebrity   *LinkedCelebrity `json:"celebrity,omitempty"`
}

// UserFilter drives the users list.
type UserFilter struct {
	Page     int
	PageSize int
	Search   string
	Role     string
}

// UserPatch is a partial update; nil fields are not sent.
type UserPatch struct {
	Role *string `json:"role,omitempty"`
}
