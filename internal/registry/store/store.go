// Package store reads the per-domain record tables, student identities and
// signature attachments the registry is assembled from. Reads only: nothing
// here mutates a domain store.
package store

import (
	"strings"

	"bukuinduk/internal/platform/database"
)

// Guardian relations stored in the guardians table.
const (
	RelationFather   = "father"
	RelationMother   = "mother"
	RelationGuardian = "guardian"
)

// rebind rewrites ? placeholders into the dialect's bind syntax.
func rebind(d database.Dialect, query string) string {
	if d == database.SQLite {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
