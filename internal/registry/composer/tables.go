package composer

import (
	"fmt"

	"bukuinduk/internal/registry/models"
	dErrors "bukuinduk/pkg/domain-errors"
)

// summaryField prints one section stat above the table.
type summaryField struct {
	label  string
	key    string
	suffix string
}

// tableLayout describes how one domain prints: optional stat summary, then a
// table whose column widths are relative weights of the content width.
type tableLayout struct {
	columns []string
	weights []float64
	row     func(models.Record) ([]string, error)
	summary []summaryField
}

// rows adapts a typed row printer. A record of another type in the section
// is a wiring defect and fails the table.
func rows[T models.Record](fn func(T) []string) func(models.Record) ([]string, error) {
	return func(r models.Record) ([]string, error) {
		t, ok := r.(T)
		if !ok {
			var want T
			return nil, dErrors.New(dErrors.CodeInvalidArgument,
				fmt.Sprintf("%s table cannot print %T record", want.Domain(), r))
		}
		return fn(t), nil
	}
}

var tables = map[models.Domain]tableLayout{
	models.DomainGrades: {
		columns: []string{"Tanggal", "Mata Pelajaran", "Semester", "Jenis Penilaian", "Nilai", "Guru"},
		weights: []float64{2, 3, 1.5, 2.5, 1.2, 3},
		row: rows(func(r models.GradeRecord) []string {
			return []string{shortDate(r.RecordedOn), r.Subject, r.Semester, r.AssessmentType, num(r.Score), r.Teacher}
		}),
	},
	models.DomainAttendance: {
		columns: []string{"Tanggal", "Status", "Keterangan"},
		weights: []float64{2, 2, 6},
		row: rows(func(r models.AttendanceRecord) []string {
			return []string{shortDate(r.Date), attendanceLabel(r.Status), r.Notes}
		}),
		summary: []summaryField{
			{label: "Hadir", key: models.AttendancePresent},
			{label: "Alpa", key: models.AttendanceAbsent},
			{label: "Terlambat", key: models.AttendanceLate},
			{label: "Sakit", key: models.AttendanceSick},
			{label: "Izin", key: models.AttendancePermit},
		},
	},
	models.DomainHealth: {
		columns: []string{"Tanggal", "Tinggi (cm)", "Berat (kg)", "Tekanan Darah", "Penglihatan", "Pemeriksa"},
		weights: []float64{2, 1.6, 1.6, 2, 2, 2.8},
		row: rows(func(r models.HealthRecord) []string {
			return []string{shortDate(r.CheckDate), num(r.HeightCM), num(r.WeightKG), r.BloodPressure, r.Vision, r.Examiner}
		}),
		summary: []summaryField{
			{label: "Tinggi Terakhir", key: "latest_height_cm", suffix: " cm"},
			{label: "Berat Terakhir", key: "latest_weight_kg", suffix: " kg"},
		},
	},
	models.DomainDiscipline: {
		columns: []string{"Tanggal", "Kategori", "Uraian", "Poin", "Sanksi", "Status"},
		weights: []float64{2, 2, 4, 1, 2.5, 1.5},
		row: rows(func(r models.DisciplineRecord) []string {
			return []string{shortDate(r.IncidentDate), r.Category, r.Description, itoa(r.Points), r.Sanction, r.Status}
		}),
		summary: []summaryField{
			{label: "Total Poin", key: "total_points"},
			{label: "Kasus Terbuka", key: "open_cases"},
		},
	},
	models.DomainCounseling: {
		columns: []string{"Tanggal", "Topik", "Konselor", "Ringkasan", "Tindak Lanjut"},
		weights: []float64{2, 3, 2.5, 4, 1.5},
		row: rows(func(r models.CounselingRecord) []string {
			follow := "-"
			if r.FollowUpRequired {
				follow = "Belum"
				if r.FollowUpDone {
					follow = "Selesai"
				}
			}
			return []string{shortDate(r.SessionDate), r.Topic, r.Counselor, r.Summary, follow}
		}),
	},
	models.DomainExtracurricular: {
		columns: []string{"Mulai", "Selesai", "Kegiatan", "Peran", "Nilai"},
		weights: []float64{2, 2, 4, 3, 1.5},
		row: rows(func(r models.ExtracurricularRecord) []string {
			return []string{shortDate(r.StartDate), optDate(r.EndDate), r.Activity, r.Role, r.Grade}
		}),
	},
	models.DomainExams: {
		columns: []string{"Tanggal", "Ujian", "Mata Pelajaran", "Nilai", "Maks"},
		weights: []float64{2, 3.5, 3.5, 1.5, 1.5},
		row: rows(func(r models.ExamRecord) []string {
			return []string{shortDate(r.ExamDate), r.ExamName, r.Subject, num(r.Score), num(r.MaxScore)}
		}),
		summary: []summaryField{
			{label: "Rata-rata Ujian", key: "average_score"},
			{label: "Lulus", key: "passed"},
			{label: "Tidak Lulus", key: "failed"},
		},
	},
	models.DomainAchievements: {
		columns: []string{"Tanggal", "Prestasi", "Tingkat", "Peringkat", "Penyelenggara"},
		weights: []float64{2, 4, 2, 1.5, 3},
		row: rows(func(r models.AchievementRecord) []string {
			return []string{shortDate(r.AwardedOn), r.Title, r.Level, r.Rank, r.Organizer}
		}),
	},
	models.DomainScholarships: {
		columns: []string{"Mulai", "Beasiswa", "Pemberi", "Jumlah", "Status"},
		weights: []float64{2, 3.5, 3, 2, 1.5},
		row: rows(func(r models.ScholarshipRecord) []string {
			return []string{shortDate(r.StartDate), r.Name, r.Provider, num(r.Amount), r.Status}
		}),
		summary: []summaryField{{label: "Total Beasiswa", key: "total_amount"}},
	},
	models.DomainReportCards: {
		columns: []string{"Tanggal", "Semester", "Kelas", "Rata-rata", "Peringkat", "Catatan Wali Kelas"},
		weights: []float64{2, 1.5, 1.5, 1.5, 1.5, 4},
		row: rows(func(r models.ReportCardRecord) []string {
			return []string{shortDate(r.IssuedOn), r.Semester, r.ClassName, num(r.AverageScore), itoa(r.Rank), r.HomeroomNote}
		}),
	},
	models.DomainPromotion: {
		columns: []string{"Tanggal", "Dari Kelas", "Ke Kelas", "Keputusan", "Catatan"},
		weights: []float64{2, 2, 2, 2, 4},
		row: rows(func(r models.PromotionRecord) []string {
			return []string{shortDate(r.DecidedOn), r.FromClass, r.ToClass, promotionLabel(r.Status), r.Notes}
		}),
	},
	models.DomainTransfer: {
		columns: []string{"Tanggal", "Arah", "Sekolah", "Alasan"},
		weights: []float64{2, 1.5, 4, 4},
		row: rows(func(r models.TransferRecord) []string {
			return []string{shortDate(r.TransferDate), transferLabel(r.Direction), r.SchoolName, r.Reason}
		}),
	},
	models.DomainGraduation: {
		columns: []string{"Tanggal", "Nomor Ijazah", "Nilai Akhir", "Status"},
		weights: []float64{2, 4, 2, 2.5},
		row: rows(func(r models.GraduationRecord) []string {
			status := "Lulus"
			if r.Status != models.GraduationGraduated {
				status = "Tidak Lulus"
			}
			return []string{shortDate(r.GraduationDate), r.CertificateNumber, num(r.FinalScore), status}
		}),
	},
	models.DomainAlumni: {
		columns: []string{"Tanggal", "Pekerjaan", "Instansi", "Kontak"},
		weights: []float64{2, 3, 4, 3},
		row: rows(func(r models.AlumniRecord) []string {
			return []string{shortDate(r.RecordedOn), r.Occupation, r.Institution, r.Contact}
		}),
	},
	models.DomainLibrary: {
		columns: []string{"Pinjam", "Judul Buku", "Jatuh Tempo", "Kembali", "Denda"},
		weights: []float64{2, 4.5, 2, 2, 1.5},
		row: rows(func(r models.LibraryRecord) []string {
			return []string{shortDate(r.BorrowedOn), r.BookTitle, shortDate(r.DueOn), optDate(r.ReturnedOn), num(r.Fine)}
		}),
		summary: []summaryField{
			{label: "Terlambat", key: "overdue"},
			{label: "Total Denda", key: "total_fines"},
		},
	},
	models.DomainFinance: {
		columns: []string{"Tanggal", "Uraian", "Tagihan", "Dibayar", "Status", "Tgl Bayar"},
		weights: []float64{2, 3.5, 2, 2, 1.5, 2},
		row: rows(func(r models.FinanceRecord) []string {
			return []string{shortDate(r.BilledOn), r.Description, num(r.Amount), num(r.PaidAmount), r.Status, optDate(r.PaidOn)}
		}),
		summary: []summaryField{
			{label: "Total Dibayar", key: "total_paid"},
			{label: "Sisa Tagihan", key: "total_outstanding"},
		},
	},
	models.DomainEvents: {
		columns: []string{"Tanggal", "Kegiatan", "Peran", "Tempat"},
		weights: []float64{2, 4, 3, 3},
		row: rows(func(r models.EventRecord) []string {
			return []string{shortDate(r.EventDate), r.EventName, r.Role, r.Location}
		}),
	},
}

func attendanceLabel(status string) string {
	switch status {
	case models.AttendancePresent:
		return "Hadir"
	case models.AttendanceAbsent:
		return "Alpa"
	case models.AttendanceLate:
		return "Terlambat"
	case models.AttendanceSick:
		return "Sakit"
	case models.AttendancePermit:
		return "Izin"
	}
	return status
}

func promotionLabel(status string) string {
	switch status {
	case models.PromotionPromoted:
		return "Naik Kelas"
	case models.PromotionRetained:
		return "Tinggal Kelas"
	}
	return status
}

func transferLabel(direction string) string {
	switch direction {
	case models.TransferIn:
		return "Masuk"
	case models.TransferOut:
		return "Keluar"
	}
	return direction
}

// widths scales column weights to the printable width.
func (t tableLayout) widths(total float64) []float64 {
	var sum float64
	for _, w := range t.weights {
		sum += w
	}
	out := make([]float64, len(t.weights))
	for i, w := range t.weights {
		out[i] = total * w / sum
	}
	return out
}
