package composer

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bukuinduk/internal/layout"
	"bukuinduk/internal/registry/models"
	"bukuinduk/internal/registry/signature"
	"bukuinduk/internal/registry/stats"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
)

var generatedAt = time.Date(2025, time.July, 14, 8, 0, 0, 0, time.UTC)

func section(d models.Domain, records ...models.Record) *models.Section {
	models.SortRecords(records)
	s := models.NewSection(d, records)
	s.Stats = stats.ForSection(d, records)
	return s
}

func degraded(d models.Domain) *models.Section {
	s := models.DegradedSection(d, "timeout: context deadline exceeded")
	s.Stats = stats.ForSection(d, nil)
	return s
}

// registry builds a record with every domain requested and empty unless
// overridden.
func registry(overrides ...*models.Section) *models.RegistryRecord {
	rec := &models.RegistryRecord{
		Identity: models.StudentIdentity{
			StudentID: id.StudentID(uuid.New()),
			TenantID:  id.TenantID(uuid.New()),
			NIK:       "3201010101010001",
			NISN:      "0051234567",
			FullName:  "Siti Aminah",
			Father:    &models.Guardian{Name: "Ahmad"},
		},
		Sections:    map[models.Domain]*models.Section{},
		Domains:     models.AllDomains,
		GeneratedAt: generatedAt,
	}
	for _, d := range models.AllDomains {
		rec.Sections[d] = section(d)
	}
	for _, s := range overrides {
		rec.Sections[s.Domain] = s
	}
	rec.GlobalStats = stats.Global(rec.Domains, rec.Sections)
	return rec
}

func grades(n int) *models.Section {
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.GradeRecord{
			RecordMeta: models.RecordMeta{ID: fmt.Sprintf("g-%03d", i)},
			Subject:    "Matematika",
			Semester:   "1",
			Score:      80,
			RecordedOn: generatedAt.AddDate(0, 0, -i),
		}
	}
	return section(models.DomainGrades, records...)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 4))))
	return buf.Bytes()
}

func render(t *testing.T, rec *models.RegistryRecord, opts Options) (*layout.Recorder, *layout.Engine) {
	t.Helper()
	canvas := layout.NewRecorder()
	e, err := New(WithSchoolName("SMA Negeri 1 Bandung")).Render(context.Background(), canvas, rec, opts)
	require.NoError(t, err)
	return canvas, e
}

func TestCoverAlwaysRenders(t *testing.T) {
	canvas, e := render(t, registry(), Options{})

	cover := canvas.TextsOnPage(0)
	assert.Contains(t, cover, DocumentTitle)
	assert.Contains(t, cover, "SMA Negeri 1 Bandung")
	assert.Contains(t, cover, ": 3201010101010001")
	assert.Contains(t, cover, ": 0051234567")
	assert.Contains(t, cover, ": Siti Aminah")
	assert.Contains(t, cover, ": Semua")
	assert.Contains(t, cover, ": 14 Juli 2025")
	assert.Contains(t, cover, ": 17/17")
	assert.False(t, canvas.Contains("Data tidak tersedia"))

	assert.False(t, canvas.Contains("KESEHATAN DAN KEDISIPLINAN"), "empty groups are skipped")
	assert.False(t, canvas.Contains("RIWAYAT SISWA"))
	assert.True(t, canvas.Contains("F. PRESTASI BELAJAR"), "academic summary always renders")
	assert.GreaterOrEqual(t, e.PageCount(), 5)
}

func TestCoverListsDegradedDomains(t *testing.T) {
	canvas, _ := render(t, registry(degraded(models.DomainHealth), degraded(models.DomainEvents)), Options{})

	cover := canvas.TextsOnPage(0)
	assert.Contains(t, cover, ": 15/17")
	assert.True(t, canvas.Contains("Data tidak tersedia: Catatan Kesehatan, Kegiatan"))
}

func TestAcademicSummary(t *testing.T) {
	t.Run("empty domains print zero figures", func(t *testing.T) {
		canvas, _ := render(t, registry(), Options{})
		assert.Equal(t, 2, canvas.Count(": 0.00"))
		assert.Zero(t, canvas.Count("Mata Pelajaran"), "no grade table without records")
	})

	t.Run("degraded grades are noted", func(t *testing.T) {
		canvas, _ := render(t, registry(degraded(models.DomainGrades)), Options{})
		assert.True(t, canvas.Contains("Nilai Akademik tidak tersedia."))
		assert.Equal(t, 2, canvas.Count(": 0.00"))
	})

	t.Run("grades table paginates with repeated header", func(t *testing.T) {
		canvas, _ := render(t, registry(grades(60)), Options{})
		assert.True(t, canvas.Contains(": 80.00"))
		assert.True(t, canvas.Contains("Matematika 80.00"))
		assert.Equal(t, 60, canvas.Count("Matematika"))
		assert.GreaterOrEqual(t, canvas.Count("Mata Pelajaran"), 2)
	})
}

func TestGroupsSkipEmptyDomains(t *testing.T) {
	health := section(models.DomainHealth, models.HealthRecord{
		RecordMeta: models.RecordMeta{ID: "h-1"},
		CheckDate:  generatedAt,
		HeightCM:   160,
		WeightKG:   50,
	})
	library := section(models.DomainLibrary, models.LibraryRecord{
		RecordMeta: models.RecordMeta{ID: "l-1"},
		BookTitle:  "Laskar Pelangi",
		BorrowedOn: generatedAt,
		DueOn:      generatedAt.AddDate(0, 0, 7),
	})
	canvas, _ := render(t, registry(health, library, degraded(models.DomainDiscipline)), Options{})

	assert.True(t, canvas.Contains("KESEHATAN DAN KEDISIPLINAN"))
	assert.True(t, canvas.Contains("Catatan Kesehatan (1)"))
	assert.True(t, canvas.Contains(": 160.00 cm"))
	assert.False(t, canvas.Contains("Catatan Kedisiplinan ("), "degraded domains have no records")
	assert.False(t, canvas.Contains("Bimbingan Konseling"))

	assert.True(t, canvas.Contains("RIWAYAT SISWA"))
	assert.True(t, canvas.Contains("Perpustakaan (1)"))
	assert.True(t, canvas.Contains("Laskar Pelangi"))
	assert.False(t, canvas.Contains("Kenaikan Kelas"))
}

func TestMismatchedRecordFailsTable(t *testing.T) {
	misfiled := models.GradeRecord{RecordMeta: models.RecordMeta{ID: "g-x"}, Subject: "Fisika", RecordedOn: generatedAt}
	rec := registry(section(models.DomainHealth, misfiled))

	_, err := New().Render(context.Background(), layout.NewRecorder(), rec, Options{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	assert.Contains(t, dErrors.MessageOf(err), "health table cannot print models.GradeRecord")
}

func TestSectionOrder(t *testing.T) {
	promotion := section(models.DomainPromotion, models.PromotionRecord{
		RecordMeta: models.RecordMeta{ID: "p-1"},
		FromClass:  "X", ToClass: "XI", Status: models.PromotionPromoted, DecidedOn: generatedAt,
	})
	counseling := section(models.DomainCounseling, models.CounselingRecord{
		RecordMeta: models.RecordMeta{ID: "c-1"}, Topic: "Karier", SessionDate: generatedAt,
	})
	canvas, _ := render(t, registry(promotion, counseling), Options{})

	order := []string{
		DocumentTitle,
		"A. KETERANGAN DIRI SISWA",
		"E. KETERANGAN ORANG TUA DAN WALI",
		"F. PRESTASI BELAJAR",
		"KESEHATAN DAN KEDISIPLINAN",
		"RIWAYAT SISWA",
		"PENGESAHAN",
	}
	texts := canvas.Texts()
	last := -1
	for _, want := range order {
		idx := indexOf(texts, want)
		require.NotEqual(t, -1, idx, want)
		assert.Greater(t, idx, last, want)
		last = idx
	}
	assert.True(t, canvas.Contains("Naik Kelas"))
}

func indexOf(texts []string, want string) int {
	for i, t := range texts {
		if t == want {
			return i
		}
	}
	return -1
}

func TestSignaturePage(t *testing.T) {
	resolved := &signature.Resolved{
		Attachment: models.SignatureAttachment{
			ID:            id.SignatureID(uuid.New()),
			DisplayName:   "Drs. Hartono",
			RoleLabel:     "Kepala Sekolah",
			SignatureHash: "0123456789abcdef0123456789abcdef",
		},
	}

	t.Run("valid image is embedded", func(t *testing.T) {
		sig := *resolved
		sig.Image = pngBytes(t)
		canvas, e := render(t, registry(), Options{IncludeSignature: true, Signature: &sig})

		images := canvas.Images()
		require.Len(t, images, 1)
		assert.Equal(t, e.PageCount()-1, images[0].Page)
		assert.True(t, canvas.Contains(": Drs. Hartono"))
		assert.True(t, canvas.Contains(": 0123456789abcdef"))
		assert.False(t, canvas.Contains("0123456789abcdef0"))
		assert.Zero(t, canvas.Count("Tanda Tangan"))
	})

	t.Run("undecodable image falls back to placeholder", func(t *testing.T) {
		sig := *resolved
		sig.Image = []byte("not an image")
		canvas, _ := render(t, registry(), Options{IncludeSignature: true, Signature: &sig})

		assert.Empty(t, canvas.Images())
		assert.Equal(t, 1, canvas.Count("Tanda Tangan"))
		assert.Equal(t, 1, canvas.Count("Kepala Sekolah"))
	})

	t.Run("missing signature draws placeholder", func(t *testing.T) {
		canvas, e := render(t, registry(), Options{IncludeSignature: true})

		assert.Empty(t, canvas.Images())
		last := canvas.TextsOnPage(e.PageCount() - 1)
		assert.Contains(t, last, "Tanda Tangan")
		assert.Contains(t, last, "Kepala Sekolah")
	})

	t.Run("signature not requested", func(t *testing.T) {
		sig := *resolved
		sig.Image = pngBytes(t)
		canvas, _ := render(t, registry(), Options{Signature: &sig})
		assert.Empty(t, canvas.Images())
		assert.Equal(t, 1, canvas.Count("Tanda Tangan"))
	})
}

func TestCompose(t *testing.T) {
	c := New(WithSchoolName("SMA Negeri 1 Bandung"))

	t.Run("produces a pdf", func(t *testing.T) {
		res, err := c.Compose(context.Background(), registry(grades(5)), Options{})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(res.Content, []byte("%PDF-")))
		assert.GreaterOrEqual(t, res.Pages, 5)
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := c.Compose(context.Background(), nil, Options{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidArgument))
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := c.Compose(ctx, registry(), Options{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeCancelled))
	})
}

func TestCountPagesGrowsWithRecords(t *testing.T) {
	c := New()
	small, err := c.CountPages(context.Background(), registry(), Options{})
	require.NoError(t, err)
	large, err := c.CountPages(context.Background(), registry(grades(120)), Options{})
	require.NoError(t, err)
	assert.Greater(t, large, small)
}

func TestLongDate(t *testing.T) {
	assert.Equal(t, "1 Januari 2024", longDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 Desember 2024", longDate(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Empty(t, longDate(time.Time{}))
	assert.Equal(t, "abcdef", truncateHash("abcdef"))
}
