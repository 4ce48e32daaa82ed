package signature

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"bukuinduk/internal/blob"
	"bukuinduk/internal/registry/models"
	"bukuinduk/internal/registry/store"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
)

type failingStore struct{}

func (failingStore) FindSignature(context.Context, id.TenantID, id.SignatureID) (*models.SignatureAttachment, error) {
	return nil, errors.New("connection reset")
}

type LoaderSuite struct {
	suite.Suite
	ctx    context.Context
	store  *store.InMemoryStore
	files  *blob.Memory
	tenant id.TenantID
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = store.NewInMemoryStore()
	s.files = blob.NewMemory()
	s.tenant = id.TenantID(uuid.New())
}

func (s *LoaderSuite) put(image models.ImageSource) id.SignatureID {
	sigID := id.SignatureID(uuid.New())
	s.store.PutSignature(models.SignatureAttachment{
		ID: sigID, TenantID: s.tenant, Image: image,
		DisplayName: "Drs. Hartono", RoleLabel: "Kepala Sekolah",
	})
	return sigID
}

func (s *LoaderSuite) TestInline() {
	sigID := s.put(models.InlineImage{Data: []byte{1, 2, 3}, Format: "png"})

	got, err := NewLoader(s.store).Load(s.ctx, s.tenant, sigID)
	s.Require().NoError(err)
	s.Equal([]byte{1, 2, 3}, got.Image)
	s.Equal("Drs. Hartono", got.Attachment.DisplayName)
}

func (s *LoaderSuite) TestBrokenInline() {
	sigID := s.put(models.ParseImageSource("data:image/png;base64,@@@"))

	_, err := NewLoader(s.store).Load(s.ctx, s.tenant, sigID)
	s.True(dErrors.HasCode(err, dErrors.CodeSignatureDecodeFailed))
}

func (s *LoaderSuite) TestFileReference() {
	_, err := s.files.Put(s.ctx, "signatures/hartono.png", bytes.NewReader([]byte("png-bytes")), blob.PutOptions{ContentType: "image/png"})
	s.Require().NoError(err)

	s.Run("read from the blob store", func() {
		sigID := s.put(models.FileReference{Key: "signatures/hartono.png"})
		got, err := NewLoader(s.store, WithFiles(s.files)).Load(s.ctx, s.tenant, sigID)
		s.Require().NoError(err)
		s.Equal([]byte("png-bytes"), got.Image)
	})

	s.Run("missing file", func() {
		sigID := s.put(models.FileReference{Key: "signatures/gone.png"})
		_, err := NewLoader(s.store, WithFiles(s.files)).Load(s.ctx, s.tenant, sigID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("no blob store configured", func() {
		sigID := s.put(models.FileReference{Key: "signatures/hartono.png"})
		_, err := NewLoader(s.store).Load(s.ctx, s.tenant, sigID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("file over the size cap", func() {
		sigID := s.put(models.FileReference{Key: "signatures/hartono.png"})
		_, err := NewLoader(s.store, WithFiles(s.files), WithMaxImageBytes(4)).Load(s.ctx, s.tenant, sigID)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *LoaderSuite) TestLookupFailures() {
	s.Run("unknown signature", func() {
		_, err := NewLoader(s.store).Load(s.ctx, s.tenant, id.SignatureID(uuid.New()))
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("other tenant", func() {
		sigID := s.put(models.InlineImage{Data: []byte{1}})
		_, err := NewLoader(s.store).Load(s.ctx, id.TenantID(uuid.New()), sigID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("store error", func() {
		_, err := NewLoader(failingStore{}).Load(s.ctx, s.tenant, id.SignatureID(uuid.New()))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})

	s.Run("no image", func() {
		sigID := s.put(nil)
		_, err := NewLoader(s.store).Load(s.ctx, s.tenant, sigID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
