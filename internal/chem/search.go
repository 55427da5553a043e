package chem

import (
	"strconv"
	"strings"
)

const DefaultSearchLimit = 10

// Search returns elements whose name, symbol, atomic number or category
// contains query, case-insensitively, in atomic-number order. A limit <= 0
// uses DefaultSearchLimit.
func (c *Catalog) Search(query string, limit int) []Element {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	var out []Element
	for _, e := range c.elements {
		if matches(e, q) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

func matches(e Element, q string) bool {
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Symbol), q) ||
		strings.Contains(strconv.Itoa(e.Number), q) ||
		strings.Contains(strings.ReplaceAll(string(e.Category), "-", " "), q)
}
