// Package search filters already-fetched records by a free text term.
package search

import (
	"strings"

	"kovan/store"
)

// Filter returns the items whose fields contain term, ignoring case and
// surrounding whitespace. Fields may be dotted; string values and arrays of
// strings are searched. An empty term returns items unchanged. Order is
// preserved.
func Filter(items []store.Document, term string, fields []string) []store.Document {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return items
	}
	out := make([]store.Document, 0, len(items))
	for _, item := range items {
		if matches(item, needle, fields) {
			out = append(out, item)
		}
	}
	return out
}

func matches(item store.Document, needle string, fields []string) bool {
	for _, field := range fields {
		v, ok := item.Lookup(field)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if strings.Contains(strings.ToLower(t), needle) {
				return true
			}
		case []interface{}:
			for _, el := range t {
				if s, ok := el.(string); ok && strings.Contains(strings.ToLower(s), needle) {
					return true
				}
			}
		case []string:
			for _, s := range t {
				if strings.Contains(strings.ToLower(s), needle) {
					return true
				}
			}
		}
	}
	return false
}

// Fields searched by the discovery page.
var DiscoverFields = []string{"name", "headline", "location"}

// Discover narrows users to those matching query and, when skill is not
// empty, listing that exact skill.
func Discover(users []store.Document, query, skill string) []store.Document {
	found := Filter(users, query, DiscoverFields)
	if skill == "" {
		return found
	}
	out := make([]store.Document, 0, len(found))
	for _, u := range found {
		for _, s := range u.Strings("skills") {
			if s == skill {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

// Skills lists the distinct skills of users in first-seen order.
func Skills(users []store.Document) []string {
	seen := make(map[string]bool)
	var out []string
	for _, u := range users {
		for _, s := range u.Strings("skills") {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
