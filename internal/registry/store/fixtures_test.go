package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"bukuinduk/internal/platform/database"
	id "bukuinduk/pkg/domain"
)

type fixture struct {
	tenant      id.TenantID
	otherTenant id.TenantID
	student     id.StudentID
	signature   id.SignatureID
	fileSig     id.SignatureID
}

func newFixture() fixture {
	return fixture{
		tenant:      id.TenantID(uuid.New()),
		otherTenant: id.TenantID(uuid.New()),
		student:     id.StudentID(uuid.New()),
		signature:   id.SignatureID(uuid.New()),
		fileSig:     id.SignatureID(uuid.New()),
	}
}

// seed writes one student with guardians, a few records and two signatures,
// plus rows for the same student id under another tenant.
func seed(t *testing.T, ctx context.Context, db *sql.DB, dialect database.Dialect, f fixture) {
	t.Helper()
	exec := func(query string, args ...any) {
		_, err := db.ExecContext(ctx, rebind(dialect, query), args...)
		require.NoError(t, err, query)
	}
	tenant, other, student := f.tenant.String(), f.otherTenant.String(), f.student.String()

	exec(`INSERT INTO students (id, tenant_id, nik, nisn, full_name, birth_place, birth_date, child_order, emergency_name, emergency_phone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		student, tenant, "3174000000000001", "0051234567", "Siti Aminah", "Bandung", "2010-03-14", 2, "Budi", "0812000")
	exec(`INSERT INTO guardians (tenant_id, student_id, relation, name, occupation, birth_year) VALUES (?, ?, ?, ?, ?, ?)`,
		tenant, student, RelationFather, "Ahmad", "Guru", 1978)
	exec(`INSERT INTO guardians (tenant_id, student_id, relation, name, occupation, birth_year) VALUES (?, ?, ?, ?, ?, ?)`,
		tenant, student, RelationMother, "Rina", "Perawat", 1981)

	grade := `INSERT INTO grades (id, tenant_id, student_id, academic_year, subject, score, recorded_on) VALUES (?, ?, ?, ?, ?, ?, ?)`
	exec(grade, "g-001", tenant, student, "2024/2025", "Matematika", 80.0, "2024-09-10")
	exec(grade, "g-002", tenant, student, "2024/2025", "IPA", 90.0, "2025-02-01")
	exec(grade, "g-003", tenant, student, "2024/2025", "IPS", 70.0, "2025-02-01")
	exec(grade, "g-004", tenant, student, "2023/2024", "Matematika", 60.0, "2023-10-01")
	exec(grade, "g-900", other, student, "2024/2025", "Matematika", 10.0, "2025-03-01")

	exec(`INSERT INTO library_loans (id, tenant_id, student_id, academic_year, book_title, borrowed_on, due_on, returned_on, fine)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"l-001", tenant, student, "2024/2025", "Laskar Pelangi", "2025-01-02", "2025-01-09", "2025-01-12", 1500.0)
	exec(`INSERT INTO library_loans (id, tenant_id, student_id, academic_year, book_title, borrowed_on, due_on, returned_on, fine)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"l-002", tenant, student, "2024/2025", "Bumi Manusia", "2025-02-02", "2025-02-09", nil, 0.0)

	exec(`INSERT INTO counseling_sessions (id, tenant_id, student_id, academic_year, session_date, topic, follow_up_required, follow_up_done)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		"c-001", tenant, student, "2024/2025", "2024-11-20", "Motivasi belajar", true, false)

	exec(`INSERT INTO signatures (id, tenant_id, display_name, role_label, signature_hash, image) VALUES (?, ?, ?, ?, ?, ?)`,
		f.signature.String(), tenant, "Drs. Hartono", "Kepala Sekolah", "abcdef0123456789abcdef", "data:image/png;base64,iVBORw0KGgo=")
	exec(`INSERT INTO signatures (id, tenant_id, display_name, role_label, signature_hash, image) VALUES (?, ?, ?, ?, ?, ?)`,
		f.fileSig.String(), tenant, "Drs. Hartono", "Kepala Sekolah", "", "signatures/hartono.png")
}
