// Package composer turns an aggregated RegistryRecord into a Buku Induk
// document. Sections are emitted in a fixed order; the composer owns no state
// between documents and each call gets its own layout engine.
package composer

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"bukuinduk/internal/layout"
	"bukuinduk/internal/registry/models"
	"bukuinduk/internal/registry/signature"
	"bukuinduk/internal/registry/stats"
	dErrors "bukuinduk/pkg/domain-errors"
)

var tracer = otel.Tracer("bukuinduk/internal/registry/composer")

const (
	DocumentTitle   = "BUKU INDUK SISWA"
	signatureWidth  = 60
	signatureHeight = 25
)

// groups are the history pages after the academic section.
var (
	healthGroup = []models.Domain{
		models.DomainHealth,
		models.DomainDiscipline,
		models.DomainCounseling,
	}
	historyGroup = []models.Domain{
		models.DomainExtracurricular,
		models.DomainExams,
		models.DomainAchievements,
		models.DomainScholarships,
		models.DomainReportCards,
		models.DomainPromotion,
		models.DomainTransfer,
		models.DomainGraduation,
		models.DomainAlumni,
		models.DomainLibrary,
		models.DomainFinance,
		models.DomainEvents,
	}
)

// Options control a single composition.
type Options struct {
	IncludeSignature bool
	// Signature is the resolved attachment, nil when none could be loaded.
	Signature *signature.Resolved
}

// Result is the rendered document.
type Result struct {
	Content []byte
	Pages   int
}

type Composer struct {
	logger     *slog.Logger
	cfg        layout.Config
	schoolName string
}

type Option func(*Composer)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) { c.logger = logger }
}

func WithLayout(cfg layout.Config) Option {
	return func(c *Composer) { c.cfg = cfg }
}

// WithSchoolName sets the institution printed on the cover and footer.
func WithSchoolName(name string) Option {
	return func(c *Composer) { c.schoolName = name }
}

func New(opts ...Option) *Composer {
	c := &Composer{
		logger: slog.Default(),
		cfg:    layout.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders rec to PDF.
func (c *Composer) Compose(ctx context.Context, rec *models.RegistryRecord, opts Options) (*Result, error) {
	ctx, span := tracer.Start(ctx, "registry.compose")
	defer span.End()

	if rec == nil {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "registry record is required")
	}
	span.SetAttributes(attribute.String("student_id", rec.Identity.StudentID.String()))

	canvas := layout.NewPDFCanvas(c.cfg, layout.Metadata{
		Title:      fmt.Sprintf("%s - %s", DocumentTitle, rec.Identity.FullName),
		Author:     c.schoolName,
		Subject:    "Buku Induk Siswa",
		FooterText: c.footer(rec),
		CreatedAt:  rec.GeneratedAt,
	})
	engine, err := c.Render(ctx, canvas, rec, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	content, err := engine.Bytes()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to write document")
	}
	span.SetAttributes(attribute.Int("pages", engine.PageCount()))
	return &Result{Content: content, Pages: engine.PageCount()}, nil
}

// CountPages lays the document out on a Recorder and reports the page count
// without producing PDF bytes. Text widths are estimates, so the figure can
// differ slightly from the rendered document.
func (c *Composer) CountPages(ctx context.Context, rec *models.RegistryRecord, opts Options) (int, error) {
	if rec == nil {
		return 0, dErrors.New(dErrors.CodeInvalidArgument, "registry record is required")
	}
	engine, err := c.Render(ctx, layout.NewRecorder(), rec, opts)
	if err != nil {
		return 0, err
	}
	return engine.PageCount(), nil
}

// Render drives every section onto canvas and returns the finished engine.
func (c *Composer) Render(ctx context.Context, canvas layout.Canvas, rec *models.RegistryRecord, opts Options) (*layout.Engine, error) {
	e := layout.New(canvas, c.cfg)
	steps := []func(context.Context, *layout.Engine, *models.RegistryRecord) error{
		c.cover,
		c.identity,
		c.family,
		c.academic,
		func(ctx context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
			return c.group(ctx, e, rec, "KESEHATAN DAN KEDISIPLINAN", healthGroup)
		},
		func(ctx context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
			return c.group(ctx, e, rec, "RIWAYAT SISWA", historyGroup)
		},
		func(ctx context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
			c.signature(ctx, e, rec, opts)
			return nil
		},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeCancelled, "composition cancelled")
		}
		if err := step(ctx, e, rec); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (c *Composer) footer(rec *models.RegistryRecord) string {
	parts := []string{DocumentTitle}
	if c.schoolName != "" {
		parts = append(parts, c.schoolName)
	}
	if rec.Identity.FullName != "" {
		parts = append(parts, rec.Identity.FullName)
	}
	return strings.Join(parts, " - ")
}

func (c *Composer) cover(_ context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
	id := rec.Identity
	e.DrawSpacer(20)
	e.DrawTitle(DocumentTitle)
	if c.schoolName != "" {
		e.DrawTitle(c.schoolName)
	}
	e.DrawSpacer(15)
	e.DrawField("Nama Lengkap", id.FullName)
	e.DrawField("NIK", id.NIK)
	e.DrawField("NISN", id.NISN)
	e.DrawField("NIS", id.NIS)
	e.DrawField("Tahun Pelajaran", academicYear(rec.AcademicYear))
	e.DrawField("Tanggal Dibuat", longDate(rec.GeneratedAt))
	e.DrawSpacer(5)
	e.DrawField("Bagian Dimuat", fmt.Sprintf("%d/%d", rec.LoadedCount(), len(rec.Domains)))
	if degraded := rec.DegradedDomains(); len(degraded) > 0 {
		labels := make([]string, len(degraded))
		for i, d := range degraded {
			labels[i] = d.Label()
		}
		e.DrawNote("Data tidak tersedia: " + strings.Join(labels, ", "))
	}
	return nil
}

func academicYear(y string) string {
	if y == "" {
		return "Semua"
	}
	return y
}

func (c *Composer) identity(_ context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
	id := rec.Identity
	e.NewPage()
	e.DrawHeading("A. KETERANGAN DIRI SISWA")
	e.DrawField("Nama Lengkap", id.FullName)
	e.DrawField("Nama Panggilan", id.NickName)
	e.DrawField("Jenis Kelamin", gender(id.Gender))
	e.DrawField("Tempat, Tanggal Lahir", birth(id.BirthPlace, id.BirthDate))
	e.DrawField("Agama", id.Religion)
	e.DrawField("Kewarganegaraan", id.Citizenship)
	e.DrawField("Anak Ke", itoa(id.ChildOrder))
	e.DrawField("Jumlah Saudara", itoa(id.SiblingsCount))
	e.DrawField("Bahasa Sehari-hari", id.Language)

	e.DrawHeading("B. KETERANGAN TEMPAT TINGGAL")
	e.DrawField("Alamat", id.Address)
	e.DrawField("Desa/Kelurahan", id.Village)
	e.DrawField("Kecamatan", id.District)
	e.DrawField("Kabupaten/Kota", id.City)
	e.DrawField("Provinsi", id.Province)
	e.DrawField("Kode Pos", id.PostalCode)
	e.DrawField("Nomor Telepon", id.Phone)
	e.DrawField("Tinggal Bersama", id.LivingWith)
	e.DrawField("Jarak ke Sekolah (km)", id.DistanceKM)
	e.DrawField("Transportasi", id.Transport)

	e.DrawHeading("C. KETERANGAN KESEHATAN")
	e.DrawField("Golongan Darah", id.BloodType)
	e.DrawField("Tinggi Badan (cm)", id.HeightCM)
	e.DrawField("Berat Badan (kg)", id.WeightKG)
	e.DrawField("Riwayat Penyakit", id.Disease)
	e.DrawField("Kebutuhan Khusus", id.SpecialNeed)

	e.DrawHeading("D. KETERANGAN PENDIDIKAN")
	e.DrawField("Sekolah Asal", id.PreviousSchool)
	e.DrawField("Nomor Ijazah", id.DiplomaNumber)
	e.DrawField("Tanggal Diterima", optLongDate(id.EnrollmentDate))
	e.DrawField("Diterima di Kelas", id.EnrollmentClass)
	e.DrawField("Kelas Saat Ini", id.CurrentClass)
	e.DrawField("Status", id.EnrollmentStatus)
	return nil
}

func gender(g string) string {
	switch strings.ToUpper(g) {
	case "L", "M", "MALE":
		return "Laki-laki"
	case "P", "F", "FEMALE":
		return "Perempuan"
	}
	return g
}

func birth(place string, date *time.Time) string {
	d := optLongDate(date)
	switch {
	case place == "":
		return d
	case d == "":
		return place
	}
	return place + ", " + d
}

func optLongDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return longDate(*t)
}

func (c *Composer) family(_ context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
	id := rec.Identity
	e.NewPage()
	e.DrawHeading("E. KETERANGAN ORANG TUA DAN WALI")
	guardian(e, "Ayah", id.Father)
	guardian(e, "Ibu", id.Mother)
	if id.Guardian != nil {
		guardian(e, "Wali", id.Guardian)
	}
	if ec := id.EmergencyContact; ec != nil {
		e.DrawHeading("Kontak Darurat")
		e.DrawField("Nama", ec.Name)
		e.DrawField("Hubungan", ec.Relationship)
		e.DrawField("Telepon", ec.Phone)
	}
	return nil
}

func guardian(e *layout.Engine, role string, g *models.Guardian) {
	e.DrawHeading(role)
	if g == nil {
		g = &models.Guardian{}
	}
	e.DrawField("Nama", g.Name)
	e.DrawField("NIK", g.NIK)
	e.DrawField("Tahun Lahir", itoa(g.BirthYear))
	e.DrawField("Pendidikan", g.Education)
	e.DrawField("Pekerjaan", g.Occupation)
	e.DrawField("Penghasilan", g.Income)
	e.DrawField("Telepon", g.Phone)
	e.DrawField("Alamat", g.Address)
}

func (c *Composer) academic(_ context.Context, e *layout.Engine, rec *models.RegistryRecord) error {
	grades := rec.Section(models.DomainGrades)
	attendance := rec.Section(models.DomainAttendance)

	e.NewPage()
	e.DrawHeading("F. PRESTASI BELAJAR")
	e.DrawField("Rata-rata Nilai", statOr(grades, "average"))
	e.DrawField("Tingkat Kehadiran (%)", statOr(attendance, "attendance_rate"))
	if grades != nil {
		if subjects, ok := grades.Stats["subjects"].(map[string]string); ok && len(subjects) > 0 {
			names := slices.Sorted(maps.Keys(subjects))
			parts := make([]string, len(names))
			for i, n := range names {
				parts[i] = n + " " + subjects[n]
			}
			e.DrawField("Rata-rata per Mapel", strings.Join(parts, "; "))
		}
	}
	for _, s := range []*models.Section{grades, attendance} {
		if s == nil {
			continue
		}
		if s.Degraded {
			e.DrawNote(fmt.Sprintf("%s tidak tersedia.", s.Domain.Label()))
			continue
		}
		if s.Total == 0 {
			continue
		}
		if err := c.section(e, s); err != nil {
			return err
		}
	}
	return nil
}

// group renders a heading followed by every populated domain of ds. Nothing
// is drawn when none of them has records.
func (c *Composer) group(_ context.Context, e *layout.Engine, rec *models.RegistryRecord, title string, ds []models.Domain) error {
	var populated []*models.Section
	for _, d := range ds {
		if s := rec.Section(d); s != nil && s.Total > 0 {
			populated = append(populated, s)
		}
	}
	if len(populated) == 0 {
		return nil
	}
	e.NewPage()
	e.DrawHeading(title)
	for _, s := range populated {
		if err := c.section(e, s); err != nil {
			return err
		}
	}
	return nil
}

// section prints one domain: label, stat summary, then the record table.
func (c *Composer) section(e *layout.Engine, s *models.Section) error {
	tbl, ok := tables[s.Domain]
	if !ok {
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("no table layout for %s", s.Domain))
	}
	e.DrawHeading(fmt.Sprintf("%s (%d)", s.Domain.Label(), s.Total))
	for _, f := range tbl.summary {
		if v := statString(s.Stats[f.key]); v != "" {
			e.DrawField(f.label, v+f.suffix)
		}
	}
	widths := tbl.widths(e.ContentWidth())
	if err := e.DrawTableHeader(tbl.columns, widths); err != nil {
		return err
	}
	for _, r := range s.Records {
		cells, err := tbl.row(r)
		if err != nil {
			return err
		}
		if err := e.DrawTableRow(cells, widths); err != nil {
			return err
		}
	}
	e.EndTable()
	e.DrawSpacer(4)
	return nil
}

func statOr(s *models.Section, key string) string {
	if s != nil {
		if v := statString(s.Stats[key]); v != "" {
			return v
		}
	}
	return stats.Format2(0)
}

func (c *Composer) signature(ctx context.Context, e *layout.Engine, rec *models.RegistryRecord, opts Options) {
	e.NewPage()
	e.DrawHeading("PENGESAHAN")
	e.DrawText(fmt.Sprintf("Dokumen ini dibuat pada %s.", longDate(rec.GeneratedAt)))
	e.DrawSpacer(10)

	if opts.IncludeSignature && opts.Signature != nil {
		att := opts.Signature.Attachment
		err := e.DrawImage("signature", opts.Signature.Image, signatureWidth, signatureHeight)
		if err == nil {
			e.DrawField("Nama", att.DisplayName)
			e.DrawField("Jabatan", att.RoleLabel)
			e.DrawField("Kode Verifikasi", truncateHash(att.SignatureHash))
			return
		}
		c.logger.WarnContext(ctx, "signature image could not be rendered, using placeholder",
			"signature_id", att.ID.String(),
			"tenant_id", rec.Identity.TenantID.String(),
			"error", err,
		)
	}
	e.DrawBox(signatureWidth+20, signatureHeight+15, "Tanda Tangan", "Kepala Sekolah")
}
