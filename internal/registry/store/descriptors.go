package store

import (
	"strings"

	"bukuinduk/internal/registry/models"
)

// scanFunc reads one row into a typed record. base carries the tenant and
// student the query was scoped to; the row supplies id and academic year
// first, then the descriptor's columns in order.
type scanFunc func(scan func(dest ...any) error, base models.RecordMeta) (models.Record, error)

// descriptor maps a domain onto its table. Every domain table shares the
// id, tenant_id, student_id and academic_year columns.
type descriptor struct {
	table      string
	dateColumn string
	columns    []string
	scan       scanFunc
}

func (d descriptor) selectList() string {
	return "id, academic_year, " + strings.Join(d.columns, ", ")
}

var descriptors = map[models.Domain]descriptor{
	models.DomainGrades: {
		table:      "grades",
		dateColumn: "recorded_on",
		columns:    []string{"subject", "semester", "assessment_type", "score", "teacher", "recorded_on"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.GradeRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Subject, &r.Semester, &r.AssessmentType, &r.Score, &r.Teacher, date(&r.RecordedOn))
			return r, err
		},
	},
	models.DomainAttendance: {
		table:      "attendance",
		dateColumn: "date",
		columns:    []string{"date", "status", "notes"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.AttendanceRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, date(&r.Date), &r.Status, &r.Notes)
			return r, err
		},
	},
	models.DomainHealth: {
		table:      "health_records",
		dateColumn: "check_date",
		columns:    []string{"check_date", "height_cm", "weight_kg", "blood_pressure", "vision", "examiner", "notes"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.HealthRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, date(&r.CheckDate), &r.HeightCM, &r.WeightKG, &r.BloodPressure, &r.Vision, &r.Examiner, &r.Notes)
			return r, err
		},
	},
	models.DomainDiscipline: {
		table:      "discipline_records",
		dateColumn: "incident_date",
		columns:    []string{"incident_date", "category", "description", "points", "sanction", "status"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.DisciplineRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, date(&r.IncidentDate), &r.Category, &r.Description, &r.Points, &r.Sanction, &r.Status)
			return r, err
		},
	},
	models.DomainCounseling: {
		table:      "counseling_sessions",
		dateColumn: "session_date",
		columns:    []string{"session_date", "topic", "counselor", "summary", "follow_up_required", "follow_up_done"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.CounselingRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, date(&r.SessionDate), &r.Topic, &r.Counselor, &r.Summary, &r.FollowUpRequired, &r.FollowUpDone)
			return r, err
		},
	},
	models.DomainExtracurricular: {
		table:      "extracurriculars",
		dateColumn: "start_date",
		columns:    []string{"activity", "role", "grade", "start_date", "end_date"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.ExtracurricularRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Activity, &r.Role, &r.Grade, date(&r.StartDate), nullDate(&r.EndDate))
			return r, err
		},
	},
	models.DomainExams: {
		table:      "exams",
		dateColumn: "exam_date",
		columns:    []string{"exam_name", "subject", "exam_date", "score", "max_score"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.ExamRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.ExamName, &r.Subject, date(&r.ExamDate), &r.Score, &r.MaxScore)
			return r, err
		},
	},
	models.DomainAchievements: {
		table:      "achievements",
		dateColumn: "awarded_on",
		columns:    []string{"title", "level", "rank", "organizer", "awarded_on"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.AchievementRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Title, &r.Level, &r.Rank, &r.Organizer, date(&r.AwardedOn))
			return r, err
		},
	},
	models.DomainScholarships: {
		table:      "scholarships",
		dateColumn: "start_date",
		columns:    []string{"name", "provider", "amount", "status", "start_date", "end_date"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.ScholarshipRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Name, &r.Provider, &r.Amount, &r.Status, date(&r.StartDate), nullDate(&r.EndDate))
			return r, err
		},
	},
	models.DomainReportCards: {
		table:      "report_cards",
		dateColumn: "issued_on",
		columns:    []string{"semester", "class_name", "average_score", "rank", "homeroom_note", "issued_on"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.ReportCardRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Semester, &r.ClassName, &r.AverageScore, &r.Rank, &r.HomeroomNote, date(&r.IssuedOn))
			return r, err
		},
	},
	models.DomainPromotion: {
		table:      "promotions",
		dateColumn: "decided_on",
		columns:    []string{"from_class", "to_class", "status", "notes", "decided_on"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.PromotionRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.FromClass, &r.ToClass, &r.Status, &r.Notes, date(&r.DecidedOn))
			return r, err
		},
	},
	models.DomainTransfer: {
		table:      "transfers",
		dateColumn: "transfer_date",
		columns:    []string{"direction", "school_name", "reason", "transfer_date"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.TransferRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Direction, &r.SchoolName, &r.Reason, date(&r.TransferDate))
			return r, err
		},
	},
	models.DomainGraduation: {
		table:      "graduations",
		dateColumn: "graduation_date",
		columns:    []string{"certificate_number", "final_score", "status", "graduation_date"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.GraduationRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.CertificateNumber, &r.FinalScore, &r.Status, date(&r.GraduationDate))
			return r, err
		},
	},
	models.DomainAlumni: {
		table:      "alumni",
		dateColumn: "recorded_on",
		columns:    []string{"occupation", "institution", "contact", "recorded_on"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.AlumniRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Occupation, &r.Institution, &r.Contact, date(&r.RecordedOn))
			return r, err
		},
	},
	models.DomainLibrary: {
		table:      "library_loans",
		dateColumn: "borrowed_on",
		columns:    []string{"book_title", "borrowed_on", "due_on", "returned_on", "fine"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.LibraryRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.BookTitle, date(&r.BorrowedOn), date(&r.DueOn), nullDate(&r.ReturnedOn), &r.Fine)
			return r, err
		},
	},
	models.DomainFinance: {
		table:      "finance_bills",
		dateColumn: "billed_on",
		columns:    []string{"description", "amount", "paid_amount", "status", "billed_on", "paid_on"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.FinanceRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.Description, &r.Amount, &r.PaidAmount, &r.Status, date(&r.BilledOn), nullDate(&r.PaidOn))
			return r, err
		},
	},
	models.DomainEvents: {
		table:      "events",
		dateColumn: "event_date",
		columns:    []string{"event_name", "role", "location", "event_date"},
		scan: func(scan func(...any) error, base models.RecordMeta) (models.Record, error) {
			r := models.EventRecord{RecordMeta: base}
			err := scan(&r.ID, &r.AcademicYear, &r.EventName, &r.Role, &r.Location, date(&r.EventDate))
			return r, err
		},
	},
}
