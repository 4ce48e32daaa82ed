package aggregator

import (
	"bukuinduk/internal/registry/models"
	"bukuinduk/pkg/platform/strings"
)

// Options narrows an aggregation. Empty Categories means every domain.
type Options struct {
	AcademicYear string
	Categories   []string
}

// NormalizeCategories trims, lower-cases and de-duplicates categories and
// returns them in document order. Unknown names are rejected.
func NormalizeCategories(categories []string) ([]models.Domain, error) {
	names := strings.DedupeAndTrimLower(categories)
	if len(names) == 0 {
		return append([]models.Domain(nil), models.AllDomains...), nil
	}
	requested := make(map[models.Domain]struct{}, len(names))
	for _, name := range names {
		d, err := models.ParseDomain(name)
		if err != nil {
			return nil, err
		}
		requested[d] = struct{}{}
	}
	out := make([]models.Domain, 0, len(requested))
	for _, d := range models.AllDomains {
		if _, ok := requested[d]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}
