package catalog

import "strings"

type SortOption int

const (
	SortRelevant SortOption = iota
	SortLowToHigh
	SortHighToLow
)

var sortNames = map[SortOption]string{
	SortRelevant:  "relevant",
	SortLowToHigh: "price_asc",
	SortHighToLow: "price_desc",
}

var sortAliases = map[string]SortOption{
	"":            SortRelevant,
	"relevant":    SortRelevant,
	"low to high": SortLowToHigh,
	"price_asc":   SortLowToHigh,
	"high to low": SortHighToLow,
	"price_desc":  SortHighToLow,
}

// ParseSortOption accepts both the storefront labels ("Low to High") and the
// query-string forms ("price_asc"), case-insensitively.
func ParseSortOption(s string) (SortOption, error) {
	opt, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortRelevant, ErrInvalidSortOption
	}
	return opt, nil
}

func (o SortOption) String() string {
	if name, ok := sortNames[o]; ok {
		return name
	}
	return "unknown"
}
