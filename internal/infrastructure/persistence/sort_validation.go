package persistence

import "strings"

// Sort columns accepted from user input, per listing. Anything else falls
// back to the default so raw request values never reach an ORDER BY clause.
var (
	mutationSortColumns = map[string]struct{}{
		"created_at":        {},
		"updated_at":        {},
		"mutation_quantity": {},
		"previous_stock":    {},
		"stock":             {},
		"status":            {},
		"mutation_type":     {},
	}
	journalSortColumns = map[string]struct{}{
		"created_at":        {},
		"updated_at":        {},
		"mutation_quantity": {},
		"stock":             {},
		"status":            {},
		"mutation_type":     {},
	}
)

// orderClause builds a safe ORDER BY expression from user-supplied column and
// direction, falling back to created_at DESC.
func orderClause(allowed map[string]struct{}, column, direction string) string {
	col := "created_at"
	if _, ok := allowed[strings.ToLower(column)]; ok {
		col = strings.ToLower(column)
	}
	dir := "DESC"
	if strings.EqualFold(direction, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}
