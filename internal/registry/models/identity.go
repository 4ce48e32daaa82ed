package models

import (
	"time"

	id "bukuinduk/pkg/domain"
)

// Guardian is a parent or legal guardian entry.
type Guardian struct {
	Name       string `json:"name"`
	NIK        string `json:"nik,omitempty"`
	BirthYear  int    `json:"birth_year,omitempty"`
	Education  string `json:"education,omitempty"`
	Occupation string `json:"occupation,omitempty"`
	Income     string `json:"income,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
}

type EmergencyContact struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// StudentIdentity is the point-in-time snapshot printed on the identity pages.
type StudentIdentity struct {
	StudentID     id.StudentID `json:"student_id"`
	TenantID      id.TenantID  `json:"tenant_id"`
	NIK           string       `json:"nik"`
	NISN          string       `json:"nisn"`
	NIS           string       `json:"nis,omitempty"`
	FullName      string       `json:"full_name"`
	NickName      string       `json:"nick_name,omitempty"`
	Gender        string       `json:"gender,omitempty"`
	BirthPlace    string       `json:"birth_place,omitempty"`
	BirthDate     *time.Time   `json:"birth_date,omitempty"`
	Religion      string       `json:"religion,omitempty"`
	Citizenship   string       `json:"citizenship,omitempty"`
	ChildOrder    int          `json:"child_order,omitempty"`
	SiblingsCount int          `json:"siblings_count,omitempty"`
	Language      string       `json:"language,omitempty"`

	Address     string `json:"address,omitempty"`
	Village     string `json:"village,omitempty"`
	District    string `json:"district,omitempty"`
	City        string `json:"city,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	LivingWith  string `json:"living_with,omitempty"`
	DistanceKM  string `json:"distance_km,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Transport   string `json:"transport,omitempty"`
	BloodType   string `json:"blood_type,omitempty"`
	HeightCM    string `json:"height_cm,omitempty"`
	WeightKG    string `json:"weight_kg,omitempty"`
	Disease     string `json:"disease_history,omitempty"`
	SpecialNeed string `json:"special_need,omitempty"`

	PreviousSchool   string     `json:"previous_school,omitempty"`
	DiplomaNumber    string     `json:"diploma_number,omitempty"`
	EnrollmentDate   *time.Time `json:"enrollment_date,omitempty"`
	EnrollmentClass  string     `json:"enrollment_class,omitempty"`
	CurrentClass     string     `json:"current_class,omitempty"`
	EnrollmentStatus string     `json:"enrollment_status,omitempty"`

	Father           *Guardian         `json:"father,omitempty"`
	Mother           *Guardian         `json:"mother,omitempty"`
	Guardian         *Guardian         `json:"guardian,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
}

// Snapshot returns a deep copy so later mutation of the source cannot leak
// into an aggregated record.
func (s StudentIdentity) Snapshot() StudentIdentity {
	out := s
	out.BirthDate = cloneTime(s.BirthDate)
	out.EnrollmentDate = cloneTime(s.EnrollmentDate)
	out.Father = cloneGuardian(s.Father)
	out.Mother = cloneGuardian(s.Mother)
	out.Guardian = cloneGuardian(s.Guardian)
	if s.EmergencyContact != nil {
		ec := *s.EmergencyContact
		out.EmergencyContact = &ec
	}
	return out
}

func cloneGuardian(g *Guardian) *Guardian {
	if g == nil {
		return nil
	}
	c := *g
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
