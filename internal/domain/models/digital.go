package models

import (
	"admin/internal/domain"

	"github.com/shopspring/decimal"
)

type DigitalProductListItem struct {
	ID              domain.ID       `json:"id"`
	Name            string          `json:"name"`
	PreviewImageURL *string         `json:"previewImageUrl"`
	CelebrityName   string          `json:"celebrityName"`
	CategoryName    *string         `json:"categoryName"`
	Price           decimal.Decimal `json:"price"`
	FileType        string          `json:"fileType"`
	DownloadCount   int             `json:"downloadCount"`
	IsActive        bool            `json:"isActive"`
	Featured        bool            `json:"featured"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	CreatedAt       string          `json:"createdAt"`
}

type DigitalProductDetail struct {
	DigitalProductListItem
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	FileName     string                 `json:"fileName"`
	FileSize     int64                  `json:"fileSize"`
	RecentOrders []DigitalOrderListItem `json:"recentOrders"`
	UpdatedAt    string                 `json:"updatedAt"`
}

type DigitalProductFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
}

const (
	DigitalPending   domain.Status = "pending"
	DigitalConfirmed domain.Status = "confirmed"
	DigitalCompleted domain.Status = "completed"
	DigitalCancelled domain.Status = "cancelled"
)

var DigitalOrderStatuses = []domain.Status{DigitalPending, DigitalConfirmed, DigitalCompleted, DigitalCancelled}

var DigitalOrderStatusLabels = map[domain.Status]string{
	DigitalPending:   "Na čekanju",
	DigitalConfirmed: "Potvrđeno",
	DigitalCompleted: "Završeno",
	DigitalCancelled: "Otkazano",
}

type DigitalOrderListItem struct {
	ID            domain.ID       `json:"id"`
	BuyerName     string          `json:"buyerName"`
	BuyerEmail    string          `json:"buyerEmail"`
	CelebrityName string          `json:"celebrityName"`
	ProductName   string          `json:"productName"`
	FileType      string          `json:"fileType"`
	Price         decimal.Decimal `json:"price"`
	Status        domain.Status   `json:"status"`
	DownloadCount int             `json:"downloadCount"`
	CreatedAt     string          `json:"createdAt"`
}

// DigitalOrderDetail exposes the download token only for display; issuing and
// expiring it is the API's job.
type DigitalOrderDetail struct {
	DigitalOrderListItem
	BuyerPhone             *string `json:"buyerPhone"`
	DownloadToken          *string `json:"downloadToken"`
	DownloadTokenExpiresAt *string `json:"downloadTokenExpiresAt"`
	ConfirmedAt            *string `json:"confirmedAt"`
	CompletedAt            *string `json:"completedAt"`
	UpdatedAt              string  `json:"updatedAt"`
}
