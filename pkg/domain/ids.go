// Package domain holds typed identifiers shared across packages.
//
// Identifiers are parsed once at trust boundaries (HTTP handlers, config)
// so services never handle raw strings for tenant or student scoping.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "bukuinduk/pkg/domain-errors"
)

type (
	TenantID    uuid.UUID
	StudentID   uuid.UUID
	SignatureID uuid.UUID
	DocumentID  uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidArgument, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidArgument, kind+" must not be nil")
	}
	return u, nil
}

// ParseTenantID validates s as a non-nil UUID.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID("tenant id", s)
	return TenantID(u), err
}

// ParseStudentID validates s as a non-nil UUID.
func ParseStudentID(s string) (StudentID, error) {
	u, err := parseUUID("student id", s)
	return StudentID(u), err
}

// ParseSignatureID validates s as a non-nil UUID.
func ParseSignatureID(s string) (SignatureID, error) {
	u, err := parseUUID("signature id", s)
	return SignatureID(u), err
}

func NewDocumentID() DocumentID { return DocumentID(uuid.New()) }

func (id TenantID) String() string    { return uuid.UUID(id).String() }
func (id StudentID) String() string   { return uuid.UUID(id).String() }
func (id SignatureID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) String() string  { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id StudentID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SignatureID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func (id TenantID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id StudentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *TenantID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = TenantID(u)
	return nil
}

func (id *StudentID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return err
	}
	*id = StudentID(u)
	return nil
}
