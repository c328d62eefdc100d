package domain

// ID identifies an entity within its resource family. The API treats it as
// opaque; it is only used as a route segment and row key.
type ID = string

// Status represents a lightweight state value.
type Status string

// Meta is the pagination block of a list envelope.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize,omitempty"`
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the {data, meta?} wrapper every API response shares.
type Envelope[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Paginated is one page of a collection. Items keep the server's order.
type Paginated[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// PageFrom builds a Paginated from a list envelope. requested is used when
// the server omits meta; a missing totalPages means a single page.
func PageFrom[T any](env Envelope[[]T], requested int) Paginated[T] {
	p := Paginated[T]{Items: env.Data, Page: requested, TotalPages: 1}
	if p.Items == nil {
		p.Items = []T{}
	}
	if env.Meta != nil {
		if env.Meta.Page > 0 {
			p.Page = env.Meta.Page
		}
		if env.Meta.TotalPages > 0 {
			p.TotalPages = env.Meta.TotalPages
		}
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// Ptr returns a pointer to v. Handy for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}
