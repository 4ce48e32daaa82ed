package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bukuinduk/internal/registry/models"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func attendance(present, absent, late int) []models.AttendanceRecord {
	var out []models.AttendanceRecord
	add := func(n int, status string) {
		for range n {
			out = append(out, models.AttendanceRecord{
				RecordMeta: models.RecordMeta{ID: fmt.Sprintf("att-%03d", len(out))},
				Date:       day("2025-01-01").AddDate(0, 0, len(out)),
				Status:     status,
			})
		}
	}
	add(present, models.AttendancePresent)
	add(absent, models.AttendanceAbsent)
	add(late, models.AttendanceLate)
	return out
}

func TestAttendance_RateScenario(t *testing.T) {
	got := Attendance(attendance(40, 3, 2))

	assert.Equal(t, "88.89", got["attendance_rate"])
	assert.Equal(t, 40, got["present"])
	assert.Equal(t, 3, got["absent"])
	assert.Equal(t, 2, got["late"])
	assert.Equal(t, 0, got["sick"])
}

func TestAttendance_EmptyIsZero(t *testing.T) {
	got := Attendance(nil)
	assert.Equal(t, "0.00", got["attendance_rate"])
}

func TestAttendanceRate_Bounds(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for present := 0; present <= total+2; present++ {
			rate := AttendanceRate(present, total)
			var v float64
			_, err := fmt.Sscanf(rate, "%f", &v)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0, "present=%d total=%d", present, total)
		}
	}
	assert.Equal(t, "0.00", AttendanceRate(5, 0))
	assert.Equal(t, "100.00", AttendanceRate(3, 3))
}

func TestFormat2(t *testing.T) {
	assert.Equal(t, "0.00", Format2(math.NaN()))
	assert.Equal(t, "0.00", Format2(math.Inf(1)))
	assert.Equal(t, "88.89", Format2(40.0/45.0*100))
	assert.Equal(t, "2.50", Format2(2.5))
}

func TestGrades(t *testing.T) {
	t.Run("empty student renders 0.00", func(t *testing.T) {
		got := Grades(nil)
		assert.Equal(t, "0.00", got["average"])
		assert.Equal(t, 0, got["subject_count"])
	})

	t.Run("per subject and overall mean", func(t *testing.T) {
		got := Grades([]models.GradeRecord{
			{Subject: "Matematika", Score: 80},
			{Subject: "Matematika", Score: 91},
			{Subject: "IPA", Score: 70},
		})
		assert.Equal(t, "80.33", got["average"])
		assert.Equal(t, map[string]string{"Matematika": "85.50", "IPA": "70.00"}, got["subjects"])
		assert.Equal(t, 2, got["subject_count"])
		assert.Equal(t, "91.00", got["highest"])
		assert.Equal(t, "70.00", got["lowest"])
	})
}

func TestDomainStats(t *testing.T) {
	returned := day("2025-02-10")
	tests := []struct {
		name string
		got  models.Stats
		want models.Stats
	}{
		{
			name: "discipline",
			got: Discipline([]models.DisciplineRecord{
				{Points: 5, Status: models.CaseOpen},
				{Points: 10, Status: models.CaseResolved},
			}),
			want: models.Stats{"total_points": 15, "open_cases": 1},
		},
		{
			name: "counseling",
			got: Counseling([]models.CounselingRecord{
				{FollowUpRequired: true},
				{FollowUpRequired: true, FollowUpDone: true},
				{},
			}),
			want: models.Stats{"follow_ups_pending": 1},
		},
		{
			name: "exams pass at 75 percent",
			got: Exams([]models.ExamRecord{
				{Score: 75, MaxScore: 100},
				{Score: 74, MaxScore: 100},
			}),
			want: models.Stats{"average_score": "74.50", "passed": 1, "failed": 1},
		},
		{
			name: "promotion",
			got: Promotion([]models.PromotionRecord{
				{Status: models.PromotionPromoted},
				{Status: models.PromotionPromoted},
				{Status: models.PromotionRetained},
			}),
			want: models.Stats{"promoted": 2, "retained": 1},
		},
		{
			name: "transfer",
			got:  Transfer([]models.TransferRecord{{Direction: models.TransferIn}}),
			want: models.Stats{"transfers_in": 1, "transfers_out": 0},
		},
		{
			name: "library overdue",
			got: Library([]models.LibraryRecord{
				{BorrowedOn: day("2025-01-01"), DueOn: day("2025-01-08"), ReturnedOn: &returned, Fine: 2000},
				{BorrowedOn: day("2025-03-01"), DueOn: day("2025-03-08")},
				{BorrowedOn: day("2025-02-20"), DueOn: day("2025-02-27")},
			}),
			want: models.Stats{"borrowed": 3, "returned": 1, "overdue": 2, "total_fines": "2000.00"},
		},
		{
			name: "finance",
			got: Finance([]models.FinanceRecord{
				{Amount: 150000, PaidAmount: 150000, Status: models.PaymentPaid},
				{Amount: 150000, PaidAmount: 50000, Status: models.PaymentPartial},
			}),
			want: models.Stats{"paid_count": 1, "pending_count": 1, "total_paid": "200000.00", "total_outstanding": "100000.00"},
		},
		{
			name: "events distinct",
			got:  Events([]models.EventRecord{{EventName: "Pramuka"}, {EventName: "Pramuka"}, {EventName: "HUT RI"}}),
			want: models.Stats{"event_count": 2},
		},
		{
			name: "scholarships",
			got: Scholarships([]models.ScholarshipRecord{
				{Amount: 1000000, Status: models.ScholarshipActive},
				{Amount: 500000.5, Status: models.ScholarshipEnded},
			}),
			want: models.Stats{"active": 1, "total_amount": "1500000.50"},
		},
		{
			name: "report cards best rank ignores unranked",
			got: ReportCards([]models.ReportCardRecord{
				{IssuedOn: day("2024-12-20"), AverageScore: 85.5, Rank: 3},
				{IssuedOn: day("2025-06-20"), AverageScore: 88, Rank: 0},
			}),
			want: models.Stats{"latest_average": "88.00", "best_rank": 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestHealth_LatestCheck(t *testing.T) {
	got := Health([]models.HealthRecord{
		{CheckDate: day("2024-08-01"), HeightCM: 140, WeightKG: 35},
		{CheckDate: day("2025-08-01"), HeightCM: 146.5, WeightKG: 38.25},
	})
	assert.Equal(t, "146.50", got["latest_height_cm"])
	assert.Equal(t, "38.25", got["latest_weight_kg"])
	assert.Equal(t, "2025-08-01", got["latest_check_date"])
}

func TestForSection_AlwaysCarriesTotal(t *testing.T) {
	for _, d := range models.AllDomains {
		got := ForSection(d, nil)
		assert.Equal(t, 0, got["total"], "domain %s", d)
	}

	records := []models.Record{
		models.AttendanceRecord{Status: models.AttendancePresent},
		models.AttendanceRecord{Status: models.AttendanceAbsent},
	}
	got := ForSection(models.DomainAttendance, records)
	assert.Equal(t, 2, got["total"])
	assert.Equal(t, "50.00", got["attendance_rate"])
}

func TestGlobal(t *testing.T) {
	grades := models.NewSection(models.DomainGrades, []models.Record{models.GradeRecord{Score: 90}})
	grades.Stats = ForSection(models.DomainGrades, grades.Records)
	health := models.DegradedSection(models.DomainHealth, "timeout")
	health.Stats = ForSection(models.DomainHealth, nil)
	events := models.DegradedSection(models.DomainEvents, "store_error")
	events.Stats = ForSection(models.DomainEvents, nil)

	domains := []models.Domain{models.DomainGrades, models.DomainHealth, models.DomainEvents}
	sections := map[models.Domain]*models.Section{
		models.DomainGrades: grades,
		models.DomainHealth: health,
		models.DomainEvents: events,
	}

	got := Global(domains, sections)

	assert.Equal(t, 1, got["grades_total"])
	assert.Equal(t, 0, got["health_total"])
	assert.Equal(t, true, got["health_degraded"])
	assert.Equal(t, true, got["events_degraded"])
	assert.NotContains(t, got, "grades_degraded")
	assert.Equal(t, []string{"events", "health"}, got["degraded_domains"])
	assert.Equal(t, 3, got["sections_total"])
	assert.Equal(t, 1, got["sections_loaded"])
	assert.Equal(t, 2, got["sections_degraded"])
	assert.Equal(t, "90.00", got["average_grade"])
	assert.NotContains(t, got, "attendance_rate", "attendance not requested")
}

func TestGlobal_Deterministic(t *testing.T) {
	sections := map[models.Domain]*models.Section{}
	for _, d := range models.AllDomains {
		s := models.NewSection(d, nil)
		s.Stats = ForSection(d, nil)
		sections[d] = s
	}

	first, err := json.Marshal(Global(models.AllDomains, sections))
	require.NoError(t, err)
	second, err := json.Marshal(Global(models.AllDomains, sections))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}
