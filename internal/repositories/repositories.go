package repositories

import "admin/internal/apiclient"

// Repositories bundles every API-backed repository the dashboard uses.
type Repositories struct {
	Auth              AuthRepository
	Stats             StatsRepository
	Users             UserRepository
	Celebrities       CelebrityRepository
	VideoOrders       VideoOrderRepository
	Applications      ApplicationRepository
	Categories        Taxonomy
	Products          ProductRepository
	MerchOrders       MerchOrderRepository
	ProductCategories Taxonomy
	DigitalProducts   DigitalProductRepository
	DigitalOrders     DigitalOrderRepository
	DigitalCategories Taxonomy
}

func New(client *apiclient.Client) Repositories {
	return Repositories{
		Auth:              NewAuthRepository(client),
		Stats:             NewStatsRepository(client),
		Users:             NewUserRepository(client),
		Celebrities:       NewCelebrityRepository(client),
		VideoOrders:       NewVideoOrderRepository(client),
		Applications:      NewApplicationRepository(client),
		Categories:        NewTaxonomy(client, "/admin/categories", "kategorija", "zvezda"),
		Products:          NewProductRepository(client),
		MerchOrders:       NewMerchOrderRepository(client),
		ProductCategories: NewTaxonomy(client, "/admin/product-categories", "kategorija proizvoda", "proizvoda"),
		DigitalProducts:   NewDigitalProductRepository(client),
		DigitalOrders:     NewDigitalOrderRepository(client),
		DigitalCategories: NewTaxonomy(client, "/admin/digital-product-categories", "digitalna kategorija", "proizvoda"),
	}
}
