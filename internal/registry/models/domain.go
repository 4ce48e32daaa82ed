package models

import (
	"fmt"

	dErrors "bukuinduk/pkg/domain-errors"
)

// Domain names one category of student history with its own store.
type Domain string

const (
	DomainGrades          Domain = "grades"
	DomainAttendance      Domain = "attendance"
	DomainHealth          Domain = "health"
	DomainDiscipline      Domain = "discipline"
	DomainCounseling      Domain = "counseling"
	DomainExtracurricular Domain = "extracurricular"
	DomainExams           Domain = "exams"
	DomainAchievements    Domain = "achievements"
	DomainScholarships    Domain = "scholarships"
	DomainReportCards     Domain = "report_cards"
	DomainPromotion       Domain = "promotion"
	DomainTransfer        Domain = "transfer"
	DomainGraduation      Domain = "graduation"
	DomainAlumni          Domain = "alumni"
	DomainLibrary         Domain = "library"
	DomainFinance         Domain = "finance"
	DomainEvents          Domain = "events"
)

// AllDomains lists every domain in document order.
var AllDomains = []Domain{
	DomainGrades,
	DomainAttendance,
	DomainHealth,
	DomainDiscipline,
	DomainCounseling,
	DomainExtracurricular,
	DomainExams,
	DomainAchievements,
	DomainScholarships,
	DomainReportCards,
	DomainPromotion,
	DomainTransfer,
	DomainGraduation,
	DomainAlumni,
	DomainLibrary,
	DomainFinance,
	DomainEvents,
}

var domainLabels = map[Domain]string{
	DomainGrades:          "Nilai Akademik",
	DomainAttendance:      "Kehadiran",
	DomainHealth:          "Catatan Kesehatan",
	DomainDiscipline:      "Catatan Kedisiplinan",
	DomainCounseling:      "Bimbingan Konseling",
	DomainExtracurricular: "Ekstrakurikuler",
	DomainExams:           "Ujian",
	DomainAchievements:    "Prestasi",
	DomainScholarships:    "Beasiswa",
	DomainReportCards:     "Rapor",
	DomainPromotion:       "Kenaikan Kelas",
	DomainTransfer:        "Mutasi",
	DomainGraduation:      "Kelulusan",
	DomainAlumni:          "Alumni",
	DomainLibrary:         "Perpustakaan",
	DomainFinance:         "Keuangan",
	DomainEvents:          "Kegiatan",
}

var domainOrder = func() map[Domain]int {
	m := make(map[Domain]int, len(AllDomains))
	for i, d := range AllDomains {
		m[d] = i
	}
	return m
}()

// Label is the heading printed for the domain.
func (d Domain) Label() string {
	if l, ok := domainLabels[d]; ok {
		return l
	}
	return string(d)
}

// Order is the domain's position in AllDomains, or -1.
func (d Domain) Order() int {
	if i, ok := domainOrder[d]; ok {
		return i
	}
	return -1
}

func (d Domain) Valid() bool { return d.Order() >= 0 }

// ParseDomain validates a normalized category name.
func ParseDomain(s string) (Domain, error) {
	d := Domain(s)
	if !d.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidArgument, fmt.Sprintf("unknown category: %s", s))
	}
	return d, nil
}
