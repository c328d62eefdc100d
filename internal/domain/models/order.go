package models

import (
	"admin/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	OrderPending   domain.Status = "pending"
	OrderApproved  domain.Status = "approved"
	OrderCompleted domain.Status = "completed"
	OrderRejected  domain.Status = "rejected"
)

// VideoOrderStatuses is the closed set of video order states, in display order.
var VideoOrderStatuses = []domain.Status{OrderPending, OrderApproved, OrderCompleted, OrderRejected}

var VideoOrderStatusLabels = map[domain.Status]string{
	OrderPending:   "Na čekanju",
	OrderApproved:  "Odobreno",
	OrderCompleted: "Završeno",
	OrderRejected:  "Odbijeno",
}

type VideoOrderListItem struct {
	ID            domain.ID       `json:"id"`
	BuyerName     string          `json:"buyerName"`
	BuyerEmail    string          `json:"buyerEmail"`
	CelebrityName string          `json:"celebrityName"`
	CelebritySlug string          `json:"celebritySlug"`
	VideoType     string          `json:"videoType"`
	Price         decimal.Decimal `json:"price"`
	Status        domain.Status   `json:"status"`
	CreatedAt     string          `json:"createdAt"`
}

type VideoOrderDetail struct {
	VideoOrderListItem
	BuyerID       string  `json:"buyerId"`
	CelebrityID   string  `json:"celebrityId"`
	RecipientName string  `json:"recipientName"`
	Instructions  string  `json:"instructions"`
	VideoURL      *string `json:"videoUrl"`
	Deadline      string  `json:"deadline"`
	UpdatedAt     string  `json:"updatedAt"`
}

// StatusFilter is shared by every list filtered by a status tag.
type StatusFilter struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}

type StatusPatch struct {
	Status *domain.Status `json:"status,omitempty"`
}
