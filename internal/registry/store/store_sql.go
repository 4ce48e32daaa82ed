package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bukuinduk/internal/platform/database"
	"bukuinduk/internal/registry/models"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/sentinel"
)

// SQLStore reads registry data through database/sql. It works with the pgx
// and lib/pq PostgreSQL drivers and with SQLite.
type SQLStore struct {
	db      *sql.DB
	dialect database.Dialect
}

// NewSQLStore constructs a store over an open pool.
func NewSQLStore(db *sql.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Fetch returns one domain's records for the key, newest first with ties
// broken by id descending. No rows yields an empty slice.
func (s *SQLStore) Fetch(ctx context.Context, domain models.Domain, key models.FetchKey) ([]models.Record, error) {
	desc, ok := descriptors[domain]
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "unknown category: "+string(domain))
	}

	query := "SELECT " + desc.selectList() + " FROM " + desc.table + " WHERE tenant_id = ? AND student_id = ?"
	args := []any{key.TenantID.String(), key.StudentID.String()}
	if key.AcademicYear != "" {
		query += " AND academic_year = ?"
		args = append(args, key.AcademicYear)
	}
	query += " ORDER BY " + desc.dateColumn + " DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, rebind(s.dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", domain, err)
	}
	defer rows.Close()

	base := models.RecordMeta{StudentID: key.StudentID, TenantID: key.TenantID}
	records := make([]models.Record, 0)
	for rows.Next() {
		rec, err := desc.scan(rows.Scan, base)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", domain, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", domain, err)
	}
	return records, nil
}

const studentColumns = `nik, nisn, nis, full_name, nick_name, gender, birth_place, birth_date,
	religion, citizenship, child_order, siblings_count, language,
	address, village, district, city, province, postal_code, living_with, distance_km,
	phone, transport, blood_type, height_cm, weight_kg, disease_history, special_need,
	previous_school, diploma_number, enrollment_date, enrollment_class, current_class,
	enrollment_status, emergency_name, emergency_relationship, emergency_phone`

// FindStudent loads the identity and its guardians. A missing student
// returns an error wrapping sentinel.ErrNotFound.
func (s *SQLStore) FindStudent(ctx context.Context, studentID id.StudentID, tenantID id.TenantID) (*models.StudentIdentity, error) {
	query := rebind(s.dialect, "SELECT "+studentColumns+" FROM students WHERE tenant_id = ? AND id = ?")
	st := models.StudentIdentity{StudentID: studentID, TenantID: tenantID}
	var ec models.EmergencyContact
	err := s.db.QueryRowContext(ctx, query, tenantID.String(), studentID.String()).Scan(
		&st.NIK, &st.NISN, &st.NIS, &st.FullName, &st.NickName, &st.Gender, &st.BirthPlace, nullDate(&st.BirthDate),
		&st.Religion, &st.Citizenship, &st.ChildOrder, &st.SiblingsCount, &st.Language,
		&st.Address, &st.Village, &st.District, &st.City, &st.Province, &st.PostalCode, &st.LivingWith, &st.DistanceKM,
		&st.Phone, &st.Transport, &st.BloodType, &st.HeightCM, &st.WeightKG, &st.Disease, &st.SpecialNeed,
		&st.PreviousSchool, &st.DiplomaNumber, nullDate(&st.EnrollmentDate), &st.EnrollmentClass, &st.CurrentClass,
		&st.EnrollmentStatus, &ec.Name, &ec.Relationship, &ec.Phone,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student %s: %w", studentID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	if ec.Name != "" {
		st.EmergencyContact = &ec
	}
	if err := s.loadGuardians(ctx, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *SQLStore) loadGuardians(ctx context.Context, st *models.StudentIdentity) error {
	query := rebind(s.dialect, `SELECT relation, name, nik, birth_year, education, occupation, income, phone, address
		FROM guardians WHERE tenant_id = ? AND student_id = ?`)
	rows, err := s.db.QueryContext(ctx, query, st.TenantID.String(), st.StudentID.String())
	if err != nil {
		return fmt.Errorf("find guardians: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var relation string
		var g models.Guardian
		if err := rows.Scan(&relation, &g.Name, &g.NIK, &g.BirthYear, &g.Education, &g.Occupation, &g.Income, &g.Phone, &g.Address); err != nil {
			return fmt.Errorf("scan guardian: %w", err)
		}
		switch relation {
		case RelationFather:
			st.Father = &g
		case RelationMother:
			st.Mother = &g
		case RelationGuardian:
			st.Guardian = &g
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("find guardians: %w", err)
	}
	return nil
}

// FindSignature loads a signature attachment. The image column is
// classified into an InlineImage or FileReference here, once.
func (s *SQLStore) FindSignature(ctx context.Context, tenantID id.TenantID, signatureID id.SignatureID) (*models.SignatureAttachment, error) {
	query := rebind(s.dialect, `SELECT display_name, role_label, signature_hash, image
		FROM signatures WHERE tenant_id = ? AND id = ?`)
	att := models.SignatureAttachment{ID: signatureID, TenantID: tenantID}
	var image string
	err := s.db.QueryRowContext(ctx, query, tenantID.String(), signatureID.String()).
		Scan(&att.DisplayName, &att.RoleLabel, &att.SignatureHash, &image)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("signature %s: %w", signatureID, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find signature: %w", err)
	}
	att.Image = models.ParseImageSource(image)
	return &att, nil
}
