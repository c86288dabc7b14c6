// Package nav describes the navigation tree rendered by the panel. The tree is supplied by
// the application and is never modified by the panel.
package nav

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrRead    = errors.New("failed to read navigation file")
	ErrDecode  = errors.New("failed to decode navigation file")
	ErrInvalid = errors.New("invalid navigation tree")
)

type Item struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
	Icon  string `yaml:"icon,omitempty"`
}

type Group struct {
	Name  string `yaml:"name"`
	Icon  string `yaml:"icon,omitempty"`
	Items []Item `yaml:"items"`
}

type Tree struct {
	Groups []Group `yaml:"groups"`
}

// Default is the built in administration menu.
func Default() Tree {
	return Tree{Groups: []Group{
		{Name: "Overview", Icon: "◉", Items: []Item{
			{Label: "Dashboard", Path: "/dashboard", Icon: "▦"},
			{Label: "Reports", Path: "/reports", Icon: "▤"},
		}},
		{Name: "Masters", Icon: "◆", Items: []Item{
			{Label: "Products", Path: "/masters/products", Icon: "□"},
			{Label: "Customers", Path: "/masters/customers", Icon: "☺"},
			{Label: "Suppliers", Path: "/masters/suppliers", Icon: "⛟"},
			{Label: "Warehouses", Path: "/masters/warehouses", Icon: "⌂"},
		}},
		{Name: "Inventory", Icon: "▣", Items: []Item{
			{Label: "Stock Levels", Path: "/inventory/stock", Icon: "≡"},
			{Label: "Transfers", Path: "/inventory/transfers", Icon: "⇄"},
			{Label: "Adjustments", Path: "/inventory/adjustments", Icon: "±"},
		}},
		{Name: "Finance", Icon: "$", Items: []Item{
			{Label: "Invoices", Path: "/finance/invoices", Icon: "▧"},
			{Label: "Payments", Path: "/finance/payments", Icon: "¤"},
			{Label: "Ledger", Path: "/finance/ledger", Icon: "▥"},
		}},
		{Name: "Marketing", Icon: "✦", Items: []Item{
			{Label: "Campaigns", Path: "/marketing/campaigns", Icon: "➤"},
			{Label: "Leads", Path: "/marketing/leads", Icon: "☆"},
		}},
	}}
}

// Load reads a YAML navigation tree from path.
func Load(path string) (Tree, error) {
	body, errRead := os.ReadFile(path)
	if errRead != nil {
		return Tree{}, errors.Join(errRead, ErrRead)
	}

	return Parse(body)
}

func Parse(body []byte) (Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal(body, &tree); err != nil {
		return Tree{}, errors.Join(err, ErrDecode)
	}

	if err := tree.Validate(); err != nil {
		return Tree{}, err
	}

	return tree, nil
}

// Validate checks that group names, which key the persisted collapse flags, are present and unique.
func (t Tree) Validate() error {
	seen := map[string]bool{}
	for idx, group := range t.Groups {
		name := strings.TrimSpace(group.Name)
		if name == "" {
			return fmt.Errorf("%w: group %d has no name", ErrInvalid, idx)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate group %q", ErrInvalid, name)
		}
		seen[name] = true

		for itemIdx, item := range group.Items {
			if item.Label == "" || item.Path == "" {
				return fmt.Errorf("%w: group %q item %d requires a label and path", ErrInvalid, name, itemIdx)
			}
		}
	}

	return nil
}

// Active returns the item whose path best matches the current path. A longer path prefix
// wins so that /masters/products/12 highlights Products.
func (t Tree) Active(current string) (Item, bool) {
	var (
		best  Item
		found bool
	)

	for _, group := range t.Groups {
		for _, item := range group.Items {
			if !matches(item.Path, current) {
				continue
			}
			if !found || len(item.Path) > len(best.Path) {
				best = item
				found = true
			}
		}
	}

	return best, found
}

// Find returns the item with the exact path.
func (t Tree) Find(path string) (Item, bool) {
	for _, group := range t.Groups {
		for _, item := range group.Items {
			if item.Path == path {
				return item, true
			}
		}
	}

	return Item{}, false
}

func matches(itemPath string, current string) bool {
	if itemPath == current {
		return true
	}

	return strings.HasPrefix(current, strings.TrimSuffix(itemPath, "/")+"/")
}
