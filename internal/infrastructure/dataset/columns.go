package dataset

import "strings"

// Default column names used when headers cannot be inspected
const (
	DefaultNameColumn        = "Name"
	DefaultCompositionColumn = "Composition"
	PriceColumn              = "Price"
)

// Header fragments identifying each column, checked case-insensitively
var (
	nameHints        = []string{"name", "brand", "product"}
	compositionHints = []string{"comp", "gener", "formu", "strength", "ingredient"}
)

// ResolveColumns picks the product-name and composition columns from a header row.
//
// The name column is the first header containing any name hint, falling back to
// the first header. The composition column is the first header containing any
// composition hint, falling back to the second header. With fewer than two
// headers the fixed defaults are returned.
func ResolveColumns(headers []string) (nameCol, compCol string) {
	if len(headers) <= 1 {
		return DefaultNameColumn, DefaultCompositionColumn
	}

	nameCol = firstMatching(headers, nameHints)
	if nameCol == "" {
		nameCol = headers[0]
	}

	compCol = firstMatching(headers, compositionHints)
	if compCol == "" {
		compCol = headers[1]
	}

	return nameCol, compCol
}

// firstMatching returns the first header whose lowercase form contains any hint
func firstMatching(headers, hints []string) string {
	for _, h := range headers {
		lower := strings.ToLower(h)
		for _, hint := range hints {
			if strings.Contains(lower, hint) {
				return h
			}
		}
	}
	return ""
}

// indexOf returns the position of col in headers, or -1
func indexOf(headers []string, col string) int {
	for i, h := range headers {
		if h == col {
			return i
		}
	}
	return -1
}
