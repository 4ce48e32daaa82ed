package models

import (
	"time"

	id "bukuinduk/pkg/domain"
)

// Record is one row of domain history. Each domain has its own concrete type;
// OccurredAt is the natural reverse-chronological ordering key.
type Record interface {
	Domain() Domain
	Meta() RecordMeta
	OccurredAt() time.Time
}

// RecordMeta carries the columns every domain table shares.
type RecordMeta struct {
	ID           string       `json:"id"`
	StudentID    id.StudentID `json:"student_id"`
	TenantID     id.TenantID  `json:"tenant_id"`
	AcademicYear string       `json:"academic_year"`
}

func (m RecordMeta) Meta() RecordMeta { return m }

type GradeRecord struct {
	RecordMeta
	Subject        string    `json:"subject"`
	Semester       string    `json:"semester"`
	AssessmentType string    `json:"assessment_type"`
	Score          float64   `json:"score"`
	Teacher        string    `json:"teacher,omitempty"`
	RecordedOn     time.Time `json:"recorded_on"`
}

func (GradeRecord) Domain() Domain          { return DomainGrades }
func (r GradeRecord) OccurredAt() time.Time { return r.RecordedOn }

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
	AttendanceSick    = "sick"
	AttendancePermit  = "permit"
)

type AttendanceRecord struct {
	RecordMeta
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
	Notes  string    `json:"notes,omitempty"`
}

func (AttendanceRecord) Domain() Domain          { return DomainAttendance }
func (r AttendanceRecord) OccurredAt() time.Time { return r.Date }

type HealthRecord struct {
	RecordMeta
	CheckDate     time.Time `json:"check_date"`
	HeightCM      float64   `json:"height_cm"`
	WeightKG      float64   `json:"weight_kg"`
	BloodPressure string    `json:"blood_pressure,omitempty"`
	Vision        string    `json:"vision,omitempty"`
	Examiner      string    `json:"examiner,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

func (HealthRecord) Domain() Domain          { return DomainHealth }
func (r HealthRecord) OccurredAt() time.Time { return r.CheckDate }

// Discipline case statuses.
const (
	CaseOpen     = "open"
	CaseResolved = "resolved"
)

type DisciplineRecord struct {
	RecordMeta
	IncidentDate time.Time `json:"incident_date"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Points       int       `json:"points"`
	Sanction     string    `json:"sanction,omitempty"`
	Status       string    `json:"status"`
}

func (DisciplineRecord) Domain() Domain          { return DomainDiscipline }
func (r DisciplineRecord) OccurredAt() time.Time { return r.IncidentDate }

type CounselingRecord struct {
	RecordMeta
	SessionDate      time.Time `json:"session_date"`
	Topic            string    `json:"topic"`
	Counselor        string    `json:"counselor"`
	Summary          string    `json:"summary,omitempty"`
	FollowUpRequired bool      `json:"follow_up_required"`
	FollowUpDone     bool      `json:"follow_up_done"`
}

func (CounselingRecord) Domain() Domain          { return DomainCounseling }
func (r CounselingRecord) OccurredAt() time.Time { return r.SessionDate }

type ExtracurricularRecord struct {
	RecordMeta
	Activity  string     `json:"activity"`
	Role      string     `json:"role"`
	Grade     string     `json:"grade,omitempty"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (ExtracurricularRecord) Domain() Domain          { return DomainExtracurricular }
func (r ExtracurricularRecord) OccurredAt() time.Time { return r.StartDate }

type ExamRecord struct {
	RecordMeta
	ExamName string    `json:"exam_name"`
	Subject  string    `json:"subject"`
	ExamDate time.Time `json:"exam_date"`
	Score    float64   `json:"score"`
	MaxScore float64   `json:"max_score"`
}

func (ExamRecord) Domain() Domain          { return DomainExams }
func (r ExamRecord) OccurredAt() time.Time { return r.ExamDate }

type AchievementRecord struct {
	RecordMeta
	Title     string    `json:"title"`
	Level     string    `json:"level"`
	Rank      string    `json:"rank,omitempty"`
	Organizer string    `json:"organizer,omitempty"`
	AwardedOn time.Time `json:"awarded_on"`
}

func (AchievementRecord) Domain() Domain          { return DomainAchievements }
func (r AchievementRecord) OccurredAt() time.Time { return r.AwardedOn }

// Scholarship statuses.
const (
	ScholarshipActive = "active"
	ScholarshipEnded  = "ended"
)

type ScholarshipRecord struct {
	RecordMeta
	Name      string     `json:"name"`
	Provider  string     `json:"provider"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func (ScholarshipRecord) Domain() Domain          { return DomainScholarships }
func (r ScholarshipRecord) OccurredAt() time.Time { return r.StartDate }

type ReportCardRecord struct {
	RecordMeta
	Semester     string    `json:"semester"`
	ClassName    string    `json:"class_name"`
	AverageScore float64   `json:"average_score"`
	Rank         int       `json:"rank"`
	HomeroomNote string    `json:"homeroom_note,omitempty"`
	IssuedOn     time.Time `json:"issued_on"`
}

func (ReportCardRecord) Domain() Domain          { return DomainReportCards }
func (r ReportCardRecord) OccurredAt() time.Time { return r.IssuedOn }

// Promotion outcomes.
const (
	PromotionPromoted = "promoted"
	PromotionRetained = "retained"
)

type PromotionRecord struct {
	RecordMeta
	FromClass string    `json:"from_class"`
	ToClass   string    `json:"to_class"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	DecidedOn time.Time `json:"decided_on"`
}

func (PromotionRecord) Domain() Domain          { return DomainPromotion }
func (r PromotionRecord) OccurredAt() time.Time { return r.DecidedOn }

// Transfer directions.
const (
	TransferIn  = "in"
	TransferOut = "out"
)

type TransferRecord struct {
	RecordMeta
	Direction    string    `json:"direction"`
	SchoolName   string    `json:"school_name"`
	Reason       string    `json:"reason,omitempty"`
	TransferDate time.Time `json:"transfer_date"`
}

func (TransferRecord) Domain() Domain          { return DomainTransfer }
func (r TransferRecord) OccurredAt() time.Time { return r.TransferDate }

const (
	GraduationGraduated    = "graduated"
	GraduationNotGraduated = "not_graduated"
)

type GraduationRecord struct {
	RecordMeta
	CertificateNumber string    `json:"certificate_number"`
	FinalScore        float64   `json:"final_score"`
	Status            string    `json:"status"`
	GraduationDate    time.Time `json:"graduation_date"`
}

func (GraduationRecord) Domain() Domain          { return DomainGraduation }
func (r GraduationRecord) OccurredAt() time.Time { return r.GraduationDate }

type AlumniRecord struct {
	RecordMeta
	Occupation  string    `json:"occupation,omitempty"`
	Institution string    `json:"institution,omitempty"`
	Contact     string    `json:"contact,omitempty"`
	RecordedOn  time.Time `json:"recorded_on"`
}

func (AlumniRecord) Domain() Domain          { return DomainAlumni }
func (r AlumniRecord) OccurredAt() time.Time { return r.RecordedOn }

type LibraryRecord struct {
	RecordMeta
	BookTitle  string     `json:"book_title"`
	BorrowedOn time.Time  `json:"borrowed_on"`
	DueOn      time.Time  `json:"due_on"`
	ReturnedOn *time.Time `json:"returned_on,omitempty"`
	Fine       float64    `json:"fine"`
}

func (LibraryRecord) Domain() Domain          { return DomainLibrary }
func (r LibraryRecord) OccurredAt() time.Time { return r.BorrowedOn }

// Finance statuses.
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentPartial = "partial"
)

type FinanceRecord struct {
	RecordMeta
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	PaidAmount  float64    `json:"paid_amount"`
	Status      string     `json:"status"`
	BilledOn    time.Time  `json:"billed_on"`
	PaidOn      *time.Time `json:"paid_on,omitempty"`
}

func (FinanceRecord) Domain() Domain          { return DomainFinance }
func (r FinanceRecord) OccurredAt() time.Time { return r.BilledOn }

type EventRecord struct {
	RecordMeta
	EventName string    `json:"event_name"`
	Role      string    `json:"role,omitempty"`
	Location  string    `json:"location,omitempty"`
	EventDate time.Time `json:"event_date"`
}

func (EventRecord) Domain() Domain          { return DomainEvents }
func (r EventRecord) OccurredAt() time.Time { return r.EventDate }
