package handlers

import (
	"admin/internal/domain/models"
	"admin/internal/http/middleware"
	"admin/internal/nav"
)

// Layout wraps every full page.
type Layout struct {
	Title     string
	User      models.AdminUser
	Initial   string
	Nav       []nav.ViewGroup
	Path      string
	Flash     *middleware.Flash
	RequestID string
	Content   any
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Cell is one table cell. Badge cells render Text as a coloured pill.
type Cell struct {
	Text      string
	Sub       string
	Image     string
	BadgeKind string
	Mono      bool
}

type Row struct {
	Href  string
	Cells []Cell
}

type Table struct {
	Columns []string
	Rows    []Row
}

type Pager struct {
	Show       bool
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

// ListView is the generic paginated list page.
type ListView struct {
	Title             string
	Path              string
	SearchURL         string
	Search            string
	SearchPlaceholder string
	FilterName        string
	FilterLabel       string
	Filters           []Option
	Table             Table
	Pager             Pager
	Loading           bool
	Error             string
}

type Field struct {
	Label     string
	Value     string
	Href      string
	Multiline bool
}

type Section struct {
	Title  string
	Fields []Field
	Table  *Table
}

// Action is one submit button of an ActionGroup.
type Action struct {
	Label string
	// Name overrides the group's field name for this button.
	Name     string
	Value    string
	Current  bool
	Disabled bool
}

// ActionGroup is a form whose buttons post Name=Value to URL, together with
// any Extra inputs.
type ActionGroup struct {
	Title   string
	Note    string
	URL     string
	Name    string
	Actions []Action
	Extra   []FormField
}

type FormField struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Options     []Option
	Required    bool
}

type Form struct {
	Title  string
	URL    string
	Submit string
	Fields []FormField
}

// DetailView is the generic detail page.
type DetailView struct {
	Title        string
	Subtitle     string
	Image        string
	Badge        string
	BadgeKind    string
	BackURL      string
	BackLabel    string
	Sections     []Section
	ActionGroups []ActionGroup
	Forms        []Form
	DeleteURL    string
	PDFURL       string
	Busy         bool
	Error        string
}

type ConfirmView struct {
	Title     string
	Message   string
	Blocked   bool
	ActionURL string
	CancelURL string
	Error     string
}

type CategoryRow struct {
	ID         string
	Name       string
	Icon       string
	Slug       string
	Dependents string
	Created    string
	EditURL    string
	DeleteURL  string
}

type CategoriesView struct {
	Title     string
	Path      string
	CreateURL string
	Rows      []CategoryRow
	Name      string
	Icon      string
	Error     string
}

type StatCard struct {
	Label string
	Value string
	Href  string
}

type Bar struct {
	Label   string
	Count   int
	Percent int
}

type DashboardView struct {
	Cards        []StatCard
	Orders       Table
	Applications Table
	Daily        []Bar
	Error        string
}

type LoginView struct {
	From  string
	Email string
	Error string
}

type ErrorView struct {
	Status  int
	Title   string
	Message string
	BackURL string
}
