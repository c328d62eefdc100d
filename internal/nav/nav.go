// Package nav holds the sidebar: a static table of grouped links, active
// route detection and the collapsed-group preference.
package nav

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// CookieName stores the collapsed group keys, comma separated.
const CookieName = "viveo_nav"

//go:embed nav.yaml
var defaultTable []byte

type Item struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
	Icon  string `yaml:"icon"`
}

type Group struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Items []Item `yaml:"items"`
}

type Table struct {
	Groups []Group `yaml:"groups"`
}

// Default returns the embedded sidebar table.
func Default() (Table, error) {
	return Parse(defaultTable)
}

func Parse(raw []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Table{}, fmt.Errorf("parse nav table: %w", err)
	}
	seen := map[string]bool{}
	for _, g := range t.Groups {
		if g.Key == "" || strings.Contains(g.Key, ",") {
			return Table{}, fmt.Errorf("nav group %q: invalid key", g.Label)
		}
		if seen[g.Key] {
			return Table{}, fmt.Errorf("nav group %q declared twice", g.Key)
		}
		seen[g.Key] = true
		for _, it := range g.Items {
			if !strings.HasPrefix(it.Href, "/") {
				return Table{}, fmt.Errorf("nav item %q: href must be an absolute path", it.Label)
			}
		}
	}
	return t, nil
}

func (t Table) HasGroup(key string) bool {
	return slices.ContainsFunc(t.Groups, func(g Group) bool { return g.Key == key })
}

// IsActive matches "/" only exactly; any other href matches itself and the
// paths below it, segment-wise, so /kategorije is not active on
// /kategorije-proizvoda.
func IsActive(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

type ViewItem struct {
	Item
	Active bool
}

type ViewGroup struct {
	Key      string
	Label    string
	Items    []ViewItem
	Active   bool
	Expanded bool
}

// Render prepares the sidebar for path. A group holding the active route is
// always expanded, whatever the stored preference says.
func (t Table) Render(path string, collapsed map[string]bool) []ViewGroup {
	out := make([]ViewGroup, 0, len(t.Groups))
	for _, g := range t.Groups {
		vg := ViewGroup{Key: g.Key, Label: g.Label, Items: make([]ViewItem, 0, len(g.Items))}
		for _, it := range g.Items {
			active := IsActive(it.Href, path)
			vg.Active = vg.Active || active
			vg.Items = append(vg.Items, ViewItem{Item: it, Active: active})
		}
		vg.Expanded = vg.Active || !collapsed[g.Key]
		out = append(out, vg)
	}
	return out
}

// ParseCollapsed reads the cookie value, ignoring keys the table does not know.
func (t Table) ParseCollapsed(value string) map[string]bool {
	set := map[string]bool{}
	for _, key := range strings.Split(value, ",") {
		if key = strings.TrimSpace(key); key != "" && t.HasGroup(key) {
			set[key] = true
		}
	}
	return set
}

func EncodeCollapsed(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k, on := range set {
		if on {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return strings.Join(keys, ",")
}

// Toggle flips key in set and returns set.
func Toggle(set map[string]bool, key string) map[string]bool {
	if set == nil {
		set = map[string]bool{}
	}
	if set[key] {
		delete(set, key)
	} else {
		set[key] = true
	}
	return set
}
