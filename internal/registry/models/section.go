package models

import (
	"sort"
	"time"

	id "bukuinduk/pkg/domain"
)

// Stats is a flat, JSON-friendly summary. Values are strings (two-decimal
// figures), ints, bools, string slices or string maps so encoding is
// deterministic.
type Stats map[string]any

// Section holds one domain's records and the stats derived from them.
// Total always equals len(Records).
type Section struct {
	Domain   Domain   `json:"domain"`
	Total    int      `json:"total"`
	Records  []Record `json:"records"`
	Stats    Stats    `json:"stats"`
	Degraded bool     `json:"degraded,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// NewSection wraps records, keeping Total in step.
func NewSection(domain Domain, records []Record) *Section {
	if records == nil {
		records = []Record{}
	}
	return &Section{Domain: domain, Total: len(records), Records: records}
}

// DegradedSection is the placeholder for a domain whose fetch failed.
func DegradedSection(domain Domain, cause string) *Section {
	return &Section{Domain: domain, Records: []Record{}, Degraded: true, Error: cause}
}

// RecordsOf returns the section's records of concrete type T.
func RecordsOf[T Record](s *Section) []T {
	if s == nil {
		return nil
	}
	out := make([]T, 0, len(s.Records))
	for _, r := range s.Records {
		if t, ok := r.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// SortRecords orders records most recent first, ties broken by ID descending.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, tj := records[i].OccurredAt(), records[j].OccurredAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return records[i].Meta().ID > records[j].Meta().ID
	})
}

// FetchKey scopes a domain fetch. AcademicYear is optional.
type FetchKey struct {
	StudentID    id.StudentID
	TenantID     id.TenantID
	AcademicYear string
}

// RegistryRecord is the aggregate produced for one student.
type RegistryRecord struct {
	Identity     StudentIdentity     `json:"identity"`
	Sections     map[Domain]*Section `json:"sections"`
	Domains      []Domain            `json:"domains"`
	GeneratedAt  time.Time           `json:"generated_at"`
	AcademicYear string              `json:"academic_year,omitempty"`
	GlobalStats  Stats               `json:"global_stats"`
}

// Section returns the named section or nil when it was not requested.
func (r *RegistryRecord) Section(d Domain) *Section {
	if r == nil || r.Sections == nil {
		return nil
	}
	return r.Sections[d]
}

// DegradedDomains lists failed domains in document order.
func (r *RegistryRecord) DegradedDomains() []Domain {
	var out []Domain
	for _, d := range r.Domains {
		if s := r.Sections[d]; s != nil && s.Degraded {
			out = append(out, d)
		}
	}
	return out
}

// LoadedCount is the number of requested sections that did not degrade.
func (r *RegistryRecord) LoadedCount() int {
	return len(r.Domains) - len(r.DegradedDomains())
}
