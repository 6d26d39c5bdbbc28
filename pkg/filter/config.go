package filter

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// Item is one entry of a configuration category. Values are carried as
// strings in the host's category format; typed access goes through the
// Category accessors.
type Item struct {
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	Default     string `json:"default,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Value       string `json:"value,omitempty"`
	ReadOnly    string `json:"readonly,omitempty"`
	Order       string `json:"order,omitempty"`
}

// Category is a parsed configuration category: a set of named items, each
// carrying a current value and a default.
type Category map[string]Item

// ParseCategory parses a raw configuration category blob.
func ParseCategory(raw string) (Category, error) {
	var c Category
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("failed to parse configuration category: %w", err)
	}
	return c, nil
}

// ItemExists reports whether the named item is present in the category.
func (c Category) ItemExists(name string) bool {
	_, ok := c[name]
	return ok
}

// Value returns the named item's current value, falling back to its
// default when no value has been set. Missing items yield "".
func (c Category) Value(name string) string {
	item, ok := c[name]
	if !ok {
		return ""
	}
	if item.Value != "" {
		return item.Value
	}
	return item.Default
}

// BoolValue returns the named item's value interpreted as a boolean.
// "true"/"True"/"1" and friends parse as true; anything else is false.
func (c Category) BoolValue(name string) bool {
	return cast.ToBool(c.Value(name))
}
