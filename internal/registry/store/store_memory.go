package store

import (
	"context"
	"fmt"
	"sync"

	"bukuinduk/internal/registry/models"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/sentinel"
)

type studentKey struct {
	tenant  id.TenantID
	student id.StudentID
}

type signatureKey struct {
	tenant    id.TenantID
	signature id.SignatureID
}

// InMemoryStore is the map-backed twin of SQLStore, used in tests and demos.
type InMemoryStore struct {
	mu         sync.RWMutex
	students   map[studentKey]models.StudentIdentity
	records    map[models.Domain][]models.Record
	signatures map[signatureKey]models.SignatureAttachment
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		students:   make(map[studentKey]models.StudentIdentity),
		records:    make(map[models.Domain][]models.Record),
		signatures: make(map[signatureKey]models.SignatureAttachment),
	}
}

// PutStudent stores a copy of the identity.
func (s *InMemoryStore) PutStudent(st models.StudentIdentity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[studentKey{st.TenantID, st.StudentID}] = st.Snapshot()
}

// AddRecords appends records; each lands in its own domain.
func (s *InMemoryStore) AddRecords(records ...models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.Domain()] = append(s.records[r.Domain()], r)
	}
}

func (s *InMemoryStore) PutSignature(att models.SignatureAttachment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signatures[signatureKey{att.TenantID, att.ID}] = att
}

func (s *InMemoryStore) Fetch(ctx context.Context, domain models.Domain, key models.FetchKey) ([]models.Record, error) {
	if !domain.Valid() {
		return nil, dErrors.New(dErrors.CodeInvalidArgument, "unknown category: "+string(domain))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Record, 0)
	for _, r := range s.records[domain] {
		m := r.Meta()
		if m.TenantID != key.TenantID || m.StudentID != key.StudentID {
			continue
		}
		if key.AcademicYear != "" && m.AcademicYear != key.AcademicYear {
			continue
		}
		out = append(out, r)
	}
	models.SortRecords(out)
	return out, nil
}

func (s *InMemoryStore) FindStudent(_ context.Context, studentID id.StudentID, tenantID id.TenantID) (*models.StudentIdentity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[studentKey{tenantID, studentID}]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", studentID, sentinel.ErrNotFound)
	}
	snap := st.Snapshot()
	return &snap, nil
}

func (s *InMemoryStore) FindSignature(_ context.Context, tenantID id.TenantID, signatureID id.SignatureID) (*models.SignatureAttachment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	att, ok := s.signatures[signatureKey{tenantID, signatureID}]
	if !ok {
		return nil, fmt.Errorf("signature %s: %w", signatureID, sentinel.ErrNotFound)
	}
	return &att, nil
}
