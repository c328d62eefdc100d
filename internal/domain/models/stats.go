package models

import "github.com/shopspring/decimal"

// DailyCount is one point of the dashboard orders chart.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DashboardStats is the /admin/stats payload. Every number is computed by the API.
type DashboardStats struct {
	TotalUsers            int                   `json:"totalUsers"`
	TotalCelebrities      int                   `json:"totalCelebrities"`
	TotalOrders           int                   `json:"totalOrders"`
	MonthlyRevenue        decimal.Decimal       `json:"monthlyRevenue"`
	PendingApplications   int                   `json:"pendingApplications"`
	TotalProducts         int                   `json:"totalProducts"`
	TotalMerchOrders      int                   `json:"totalMerchOrders"`
	MonthlyMerchRevenue   decimal.Decimal       `json:"monthlyMerchRevenue"`
	TotalDigitalProducts  int                   `json:"totalDigitalProducts"`
	TotalDigitalOrders    int                   `json:"totalDigitalOrders"`
	MonthlyDigitalRevenue decimal.Decimal       `json:"monthlyDigitalRevenue"`
	RecentOrders          []VideoOrderListItem  `json:"recentOrders"`
	RecentApplications    []ApplicationListItem `json:"recentApplications"`
	DailyOrders           []DailyCount          `json:"dailyOrders"`
}

// MaxDaily returns the highest daily count, used to scale the chart bars.
func (s DashboardStats) MaxDaily() int {
	max := 0
	for _, d := range s.DailyOrders {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}
