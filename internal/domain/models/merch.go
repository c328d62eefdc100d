package models

import (
	"admin/internal/domain"

	"github.com/shopspring/decimal"
)

type ProductListItem struct {
	ID            domain.ID       `json:"id"`
	Name          string          `json:"name"`
	ImageURL      *string         `json:"imageUrl"`
	CelebrityName string          `json:"celebrityName"`
	CategoryName  *string         `json:"categoryName"`
	Price         decimal.Decimal `json:"price"`
	VariantCount  int             `json:"variantCount"`
	IsActive      bool            `json:"isActive"`
	Featured      bool            `json:"featured"`
	TotalOrders   int             `json:"totalOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	CreatedAt     string          `json:"createdAt"`
}

type ProductVariant struct {
	ID            domain.ID        `json:"id"`
	Name          string           `json:"name"`
	SKU           *string          `json:"sku"`
	PriceOverride *decimal.Decimal `json:"priceOverride"`
	Stock         int              `json:"stock"`
	IsActive      bool             `json:"isActive"`
}

type ProductImage struct {
	ID        domain.ID `json:"id"`
	URL       string    `json:"url"`
	AltText   *string   `json:"altText"`
	SortOrder int       `json:"sortOrder"`
}

type ProductDetail struct {
	ProductListItem
	Slug         string               `json:"slug"`
	Description  string               `json:"description"`
	Variants     []ProductVariant     `json:"variants"`
	Images       []ProductImage       `json:"images"`
	RecentOrders []MerchOrderListItem `json:"recentOrders"`
	UpdatedAt    string               `json:"updatedAt"`
}

type ProductFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
}

// ProductPatch toggles visibility flags on merch and digital products.
type ProductPatch struct {
	IsActive *bool `json:"isActive,omitempty"`
	Featured *bool `json:"featured,omitempty"`
}

const (
	MerchPending   domain.Status = "pending"
	MerchConfirmed domain.Status = "confirmed"
	MerchShipped   domain.Status = "shipped"
	MerchDelivered domain.Status = "delivered"
	MerchCancelled domain.Status = "cancelled"
)

var MerchOrderStatuses = []domain.Status{MerchPending, MerchConfirmed, MerchShipped, MerchDelivered, MerchCancelled}

var MerchOrderStatusLabels = map[domain.Status]string{
	MerchPending:   "Na čekanju",
	MerchConfirmed: "Potvrđeno",
	MerchShipped:   "Poslato",
	MerchDelivered: "Isporučeno",
	MerchCancelled: "Otkazano",
}

type MerchOrderListItem struct {
	ID            domain.ID       `json:"id"`
	BuyerName     string          `json:"buyerName"`
	BuyerEmail    string          `json:"buyerEmail"`
	CelebrityName string          `json:"celebrityName"`
	ProductName   string          `json:"productName"`
	VariantName   *string         `json:"variantName"`
	Quantity      int             `json:"quantity"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Status        domain.Status   `json:"status"`
	CreatedAt     string          `json:"createdAt"`
}

type MerchOrderDetail struct {
	MerchOrderListItem
	BuyerPhone      *string         `json:"buyerPhone"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	ShippingName    string          `json:"shippingName"`
	ShippingAddress string          `json:"shippingAddress"`
	ShippingCity    string          `json:"shippingCity"`
	ShippingPostal  string          `json:"shippingPostal"`
	ShippingNote    *string         `json:"shippingNote"`
	TrackingNumber  *string         `json:"trackingNumber"`
	ConfirmedAt     *string         `json:"confirmedAt"`
	ShippedAt       *string         `json:"shippedAt"`
	DeliveredAt     *string         `json:"deliveredAt"`
	CancelledAt     *string         `json:"cancelledAt"`
	UpdatedAt       string          `json:"updatedAt"`
}

// MerchStatusPatch carries the tracking number only for the shipped transition.
type MerchStatusPatch struct {
	Status         *domain.Status `json:"status,omitempty"`
	TrackingNumber *string        `json:"trackingNumber,omitempty"`
}
