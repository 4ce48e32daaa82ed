package models

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bukuinduk/pkg/domain-errors"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAllDomains(t *testing.T) {
	assert.Len(t, AllDomains, 17)
	seen := map[Domain]bool{}
	for i, d := range AllDomains {
		assert.False(t, seen[d], "duplicate domain %s", d)
		seen[d] = true
		assert.Equal(t, i, d.Order())
		assert.NotEqual(t, string(d), d.Label(), "domain %s needs a printed label", d)
	}
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("report_cards")
	require.NoError(t, err)
	assert.Equal(t, DomainReportCards, d)

	_, err = ParseDomain("sports")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
}

func TestSortRecords_MostRecentFirstThenIDDesc(t *testing.T) {
	records := []Record{
		AttendanceRecord{RecordMeta: RecordMeta{ID: "a"}, Date: day("2025-01-02")},
		AttendanceRecord{RecordMeta: RecordMeta{ID: "c"}, Date: day("2025-01-03")},
		AttendanceRecord{RecordMeta: RecordMeta{ID: "b"}, Date: day("2025-01-02")},
	}

	SortRecords(records)

	ids := []string{records[0].Meta().ID, records[1].Meta().ID, records[2].Meta().ID}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestRecordsOf(t *testing.T) {
	section := NewSection(DomainGrades, []Record{
		GradeRecord{Subject: "Matematika", Score: 90},
		AttendanceRecord{Status: AttendancePresent},
	})

	grades := RecordsOf[GradeRecord](section)
	require.Len(t, grades, 1)
	assert.Equal(t, "Matematika", grades[0].Subject)
	assert.Nil(t, RecordsOf[GradeRecord](nil))
}

func TestNewSection_TotalMatchesRecords(t *testing.T) {
	empty := NewSection(DomainEvents, nil)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.Records)

	degraded := DegradedSection(DomainHealth, "timeout")
	assert.True(t, degraded.Degraded)
	assert.Equal(t, 0, degraded.Total)
	assert.Empty(t, degraded.Records)
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	birth := day("2010-05-01")
	src := StudentIdentity{
		FullName:         "Budi Santoso",
		BirthDate:        &birth,
		Father:           &Guardian{Name: "Slamet"},
		EmergencyContact: &EmergencyContact{Name: "Sri"},
	}

	snap := src.Snapshot()
	src.Father.Name = "changed"
	*src.BirthDate = day("1999-01-01")
	src.EmergencyContact.Name = "changed"

	assert.Equal(t, "Slamet", snap.Father.Name)
	assert.Equal(t, day("2010-05-01"), *snap.BirthDate)
	assert.Equal(t, "Sri", snap.EmergencyContact.Name)
}

func TestRegistryRecord_DegradedDomains(t *testing.T) {
	rec := &RegistryRecord{
		Domains: []Domain{DomainGrades, DomainHealth, DomainEvents},
		Sections: map[Domain]*Section{
			DomainGrades: NewSection(DomainGrades, nil),
			DomainHealth: DegradedSection(DomainHealth, "timeout"),
			DomainEvents: DegradedSection(DomainEvents, "store_error"),
		},
	}

	assert.Equal(t, []Domain{DomainHealth, DomainEvents}, rec.DegradedDomains())
	assert.Equal(t, 1, rec.LoadedCount())
	assert.Nil(t, rec.Section(DomainFinance))
}

func TestParseImageSource(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	encoded := base64.StdEncoding.EncodeToString(png)

	tests := []struct {
		name string
		raw  string
		want ImageSource
	}{
		{"empty", "  ", nil},
		{"data uri", "data:image/png;base64," + encoded, InlineImage{Data: png, Format: "png"}},
		{"bare base64", encoded, InlineImage{Data: png}},
		{"relative path", "signatures/kepsek.png", FileReference{Key: "signatures/kepsek.png"}},
		{"absolute path", "/signatures/kepsek.JPG", FileReference{Key: "signatures/kepsek.JPG"}},
		{"bare key", "kepsek.png", FileReference{Key: "kepsek.png"}},
		{"broken data uri", "data:image/png;base64,@@@", InlineImage{Format: "png"}},
		{"base64-looking key", "abcd", FileReference{Key: "abcd"}},
		{"base64-looking key with extension", "kepsek2024.png", FileReference{Key: "kepsek2024.png"}},
		{"bare base64 jpeg", base64.StdEncoding.EncodeToString([]byte{0xff, 0xd8, 0xff, 0xe0}), InlineImage{Data: []byte{0xff, 0xd8, 0xff, 0xe0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseImageSource(tt.raw))
		})
	}
}
