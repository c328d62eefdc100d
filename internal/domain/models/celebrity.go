package models

import (
	"admin/internal/domain"

	"github.com/shopspring/decimal"
)

// The API expects JSON numbers for amounts, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

type CelebrityListItem struct {
	ID                domain.ID       `json:"id"`
	Name              string          `json:"name"`
	Slug              string          `json:"slug"`
	Image             string          `json:"image"`
	CategoryName      string          `json:"categoryName"`
	CategoryID        string          `json:"categoryId"`
	Price             decimal.Decimal `json:"price"`
	Rating            float64         `json:"rating"`
	ReviewCount       int             `json:"reviewCount"`
	Verified          bool            `json:"verified"`
	AcceptingRequests bool            `json:"acceptingRequests"`
	TotalOrders       int             `json:"totalOrders"`
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	CreatedAt         string          `json:"createdAt"`
}

// VideoType is one of the greeting formats a celebrity offers.
type VideoType struct {
	ID         domain.ID `json:"id"`
	Title      string    `json:"title"`
	Occasion   string    `json:"occasion"`
	Emoji      string    `json:"emoji"`
	AccentFrom string    `json:"accentFrom"`
	AccentTo   string    `json:"accentTo"`
	Message    string    `json:"message"`
}

type CelebrityDetail struct {
	CelebrityListItem
	ProfileID    string               `json:"profileId"`
	Bio          string               `json:"bio"`
	ExtendedBio  string               `json:"extendedBio"`
	ResponseTime int                  `json:"responseTime"`
	Tags         []string             `json:"tags"`
	VideoTypes   []VideoType          `json:"videoTypes"`
	RecentOrders []VideoOrderListItem `json:"recentOrders"`
}

type CelebrityFilter struct {
	Page     int
	PageSize int
	Search   string
	Category string
}

type CelebrityPatch struct {
	Name              *string          `json:"name,omitempty"`
	Bio               *string          `json:"bio,omitempty"`
	ExtendedBio       *string          `json:"extendedBio,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	CategoryID        *string          `json:"categoryId,omitempty"`
	Verified          *bool            `json:"verified,omitempty"`
	AcceptingRequests *bool            `json:"acceptingRequests,omitempty"`
	ResponseTime      *int             `json:"responseTime,omitempty"`
	Tags              *[]string        `json:"tags,omitempty"`
}
