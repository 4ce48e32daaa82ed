// Package stats derives per-domain and global summaries. Every function is
// pure: the output depends only on the records or section stats passed in.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"bukuinduk/internal/registry/models"
)

const zero = "0.00"

// Format2 renders v with two decimals, mapping NaN and Inf to "0.00".
func Format2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return zero
	}
	return strconv.FormatFloat(round2(v), 'f', 2, 64)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func mean(sum float64, n int) string {
	if n == 0 {
		return zero
	}
	return Format2(sum / float64(n))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.DateOnly)
}

// ForSection computes the stats of one domain's records.
func ForSection(domain models.Domain, records []models.Record) models.Stats {
	s := models.NewSection(domain, records)
	var out models.Stats
	switch domain {
	case models.DomainGrades:
		out = Grades(models.RecordsOf[models.GradeRecord](s))
	case models.DomainAttendance:
		out = Attendance(models.RecordsOf[models.AttendanceRecord](s))
	case models.DomainHealth:
		out = Health(models.RecordsOf[models.HealthRecord](s))
	case models.DomainDiscipline:
		out = Discipline(models.RecordsOf[models.DisciplineRecord](s))
	case models.DomainCounseling:
		out = Counseling(models.RecordsOf[models.CounselingRecord](s))
	case models.DomainExtracurricular:
		out = Extracurricular(models.RecordsOf[models.ExtracurricularRecord](s))
	case models.DomainExams:
		out = Exams(models.RecordsOf[models.ExamRecord](s))
	case models.DomainAchievements:
		out = Achievements(models.RecordsOf[models.AchievementRecord](s))
	case models.DomainScholarships:
		out = Scholarships(models.RecordsOf[models.ScholarshipRecord](s))
	case models.DomainReportCards:
		out = ReportCards(models.RecordsOf[models.ReportCardRecord](s))
	case models.DomainPromotion:
		out = Promotion(models.RecordsOf[models.PromotionRecord](s))
	case models.DomainTransfer:
		out = Transfer(models.RecordsOf[models.TransferRecord](s))
	case models.DomainGraduation:
		out = Graduation(models.RecordsOf[models.GraduationRecord](s))
	case models.DomainAlumni:
		out = Alumni(models.RecordsOf[models.AlumniRecord](s))
	case models.DomainLibrary:
		out = Library(models.RecordsOf[models.LibraryRecord](s))
	case models.DomainFinance:
		out = Finance(models.RecordsOf[models.FinanceRecord](s))
	case models.DomainEvents:
		out = Events(models.RecordsOf[models.EventRecord](s))
	default:
		out = models.Stats{}
	}
	out["total"] = len(records)
	return out
}

// Grades reports the overall and per-subject arithmetic mean of Score.
func Grades(records []models.GradeRecord) models.Stats {
	out := models.Stats{"average": zero, "subjects": map[string]string{}, "subject_count": 0}
	if len(records) == 0 {
		return out
	}
	var sum float64
	highest, lowest := records[0].Score, records[0].Score
	bySubject := map[string][]float64{}
	for _, r := range records {
		sum += r.Score
		highest = math.Max(highest, r.Score)
		lowest = math.Min(lowest, r.Score)
		bySubject[r.Subject] = append(bySubject[r.Subject], r.Score)
	}
	subjects := make(map[string]string, len(bySubject))
	for subject, scores := range bySubject {
		var s float64
		for _, v := range scores {
			s += v
		}
		subjects[subject] = mean(s, len(scores))
	}
	out["average"] = mean(sum, len(records))
	out["subjects"] = subjects
	out["subject_count"] = len(subjects)
	out["highest"] = Format2(highest)
	out["lowest"] = Format2(lowest)
	return out
}

// Attendance counts statuses and the present rate, clamped to [0, 100].
func Attendance(records []models.AttendanceRecord) models.Stats {
	counts := map[string]int{
		models.AttendancePresent: 0,
		models.AttendanceAbsent:  0,
		models.AttendanceLate:    0,
		models.AttendanceSick:    0,
		models.AttendancePermit:  0,
	}
	for _, r := range records {
		if _, ok := counts[r.Status]; ok {
			counts[r.Status]++
		}
	}
	out := models.Stats{"attendance_rate": AttendanceRate(counts[models.AttendancePresent], len(records))}
	for status, n := range counts {
		out[status] = n
	}
	return out
}

// AttendanceRate is present/total*100 with two decimals, "0.00" for total 0.
func AttendanceRate(present, total int) string {
	if total <= 0 {
		return zero
	}
	rate := float64(present) / float64(total) * 100
	return Format2(math.Max(0, math.Min(100, rate)))
}

func Health(records []models.HealthRecord) models.Stats {
	if len(records) == 0 {
		return models.Stats{}
	}
	latest := latestBy(records, func(r models.HealthRecord) time.Time { return r.CheckDate })
	return models.Stats{
		"latest_height_cm":  Format2(latest.HeightCM),
		"latest_weight_kg":  Format2(latest.WeightKG),
		"latest_check_date": formatDate(latest.CheckDate),
	}
}

func Discipline(records []models.DisciplineRecord) models.Stats {
	points, open := 0, 0
	for _, r := range records {
		points += r.Points
		if r.Status != models.CaseResolved {
			open++
		}
	}
	return models.Stats{"total_points": points, "open_cases": open}
}

func Counseling(records []models.CounselingRecord) models.Stats {
	pending := 0
	for _, r := range records {
		if r.FollowUpRequired && !r.FollowUpDone {
			pending++
		}
	}
	return models.Stats{"follow_ups_pending": pending}
}

func Extracurricular(records []models.ExtracurricularRecord) models.Stats {
	return models.Stats{"activity_count": distinct(records, func(r models.ExtracurricularRecord) string { return r.Activity })}
}

// Exams counts a pass when the score reaches 75% of the exam's maximum.
func Exams(records []models.ExamRecord) models.Stats {
	var sum float64
	passed, failed := 0, 0
	for _, r := range records {
		sum += r.Score
		if r.MaxScore > 0 && r.Score >= 0.75*r.MaxScore {
			passed++
		} else {
			failed++
		}
	}
	return models.Stats{"average_score": mean(sum, len(records)), "passed": passed, "failed": failed}
}

func Achievements(records []models.AchievementRecord) models.Stats {
	levels := map[string]int{}
	for _, r := range records {
		levels[r.Level]++
	}
	out := models.Stats{}
	for level, n := range levels {
		out["level_"+level] = n
	}
	return out
}

func Scholarships(records []models.ScholarshipRecord) models.Stats {
	active := 0
	var amount float64
	for _, r := range records {
		amount += r.Amount
		if r.Status == models.ScholarshipActive {
			active++
		}
	}
	return models.Stats{"active": active, "total_amount": Format2(amount)}
}

func ReportCards(records []models.ReportCardRecord) models.Stats {
	if len(records) == 0 {
		return models.Stats{"latest_average": zero}
	}
	latest := latestBy(records, func(r models.ReportCardRecord) time.Time { return r.IssuedOn })
	best := 0
	for _, r := range records {
		if r.Rank > 0 && (best == 0 || r.Rank < best) {
			best = r.Rank
		}
	}
	return models.Stats{"latest_average": Format2(latest.AverageScore), "best_rank": best}
}

func Promotion(records []models.PromotionRecord) models.Stats {
	promoted, retained := 0, 0
	for _, r := range records {
		switch r.Status {
		case models.PromotionPromoted:
			promoted++
		case models.PromotionRetained:
			retained++
		}
	}
	return models.Stats{"promoted": promoted, "retained": retained}
}

func Transfer(records []models.TransferRecord) models.Stats {
	in, out := 0, 0
	for _, r := range records {
		switch r.Direction {
		case models.TransferIn:
			in++
		case models.TransferOut:
			out++
		}
	}
	return models.Stats{"transfers_in": in, "transfers_out": out}
}

func Graduation(records []models.GraduationRecord) models.Stats {
	if len(records) == 0 {
		return models.Stats{"graduated": false}
	}
	latest := latestBy(records, func(r models.GraduationRecord) time.Time { return r.GraduationDate })
	return models.Stats{
		"graduated":   latest.Status == models.GraduationGraduated,
		"final_score": Format2(latest.FinalScore),
	}
}

func Alumni(records []models.AlumniRecord) models.Stats {
	if len(records) == 0 {
		return models.Stats{}
	}
	latest := latestBy(records, func(r models.AlumniRecord) time.Time { return r.RecordedOn })
	return models.Stats{"latest_occupation": latest.Occupation}
}

// Library treats an unreturned loan past its due date (at the latest
// borrow date in the set) as overdue, keeping the result input-only.
func Library(records []models.LibraryRecord) models.Stats {
	returned, overdue := 0, 0
	var fines float64
	var asOf time.Time
	for _, r := range records {
		if r.BorrowedOn.After(asOf) {
			asOf = r.BorrowedOn
		}
	}
	for _, r := range records {
		fines += r.Fine
		switch {
		case r.ReturnedOn != nil:
			returned++
			if r.ReturnedOn.After(r.DueOn) {
				overdue++
			}
		case asOf.After(r.DueOn):
			overdue++
		}
	}
	return models.Stats{
		"borrowed":    len(records),
		"returned":    returned,
		"overdue":     overdue,
		"total_fines": Format2(fines),
	}
}

func Finance(records []models.FinanceRecord) models.Stats {
	paidCount, pendingCount := 0, 0
	var paid, outstanding float64
	for _, r := range records {
		paid += r.PaidAmount
		outstanding += math.Max(0, r.Amount-r.PaidAmount)
		if r.Status == models.PaymentPaid {
			paidCount++
		} else {
			pendingCount++
		}
	}
	return models.Stats{
		"paid_count":        paidCount,
		"pending_count":     pendingCount,
		"total_paid":        Format2(paid),
		"total_outstanding": Format2(outstanding),
	}
}

func Events(records []models.EventRecord) models.Stats {
	return models.Stats{"event_count": distinct(records, func(r models.EventRecord) string { return r.EventName })}
}

// Global summarizes section stats ("stats of stats"); it never reads records.
func Global(domains []models.Domain, sections map[models.Domain]*models.Section) models.Stats {
	out := models.Stats{
		"sections_total":    len(domains),
		"sections_loaded":   0,
		"sections_degraded": 0,
		"degraded_domains":  []string{},
	}
	var degraded []string
	for _, d := range domains {
		s := sections[d]
		if s == nil {
			continue
		}
		out[string(d)+"_total"] = totalOf(s)
		if s.Degraded {
			degraded = append(degraded, string(d))
			out[string(d)+"_degraded"] = true
		}
	}
	sort.Strings(degraded)
	if degraded == nil {
		degraded = []string{}
	}
	out["degraded_domains"] = degraded
	out["sections_degraded"] = len(degraded)
	out["sections_loaded"] = len(domains) - len(degraded)

	if s := sections[models.DomainGrades]; s != nil {
		out["average_grade"] = stringStat(s.Stats, "average")
	}
	if s := sections[models.DomainAttendance]; s != nil {
		out["attendance_rate"] = stringStat(s.Stats, "attendance_rate")
	}
	return out
}

func totalOf(s *models.Section) int {
	if v, ok := s.Stats["total"].(int); ok {
		return v
	}
	return s.Total
}

func stringStat(st models.Stats, key string) string {
	if v, ok := st[key].(string); ok {
		return v
	}
	return zero
}

func latestBy[T any](records []T, at func(T) time.Time) T {
	latest := records[0]
	for _, r := range records[1:] {
		if at(r).After(at(latest)) {
			latest = r
		}
	}
	return latest
}

func distinct[T any](records []T, key func(T) string) int {
	seen := map[string]struct{}{}
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}
