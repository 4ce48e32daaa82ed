package blob

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"

	"bukuinduk/internal/platform/config"
	"bukuinduk/pkg/platform/sentinel"
)

// StoreSuite runs the same contract against every local backend.
type StoreSuite struct {
	suite.Suite
	newStore func() Store
	store    Store
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func() Store { return NewMemory() }})
}

func TestFilesystemStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func() Store {
		fs, err := NewFilesystem(t.TempDir())
		if err != nil {
			t.Fatalf("new filesystem store: %v", err)
		}
		return fs
	}})
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore()
}

func (s *StoreSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	_, err := s.store.Put(ctx, "registry/t1/s1/doc.pdf", bytes.NewReader([]byte("%PDF-1.3")), PutOptions{
		ContentType: "application/pdf",
		Metadata:    map[string]string{"pages": "3"},
	})
	s.Require().NoError(err)

	info, rc, err := s.store.Get(ctx, "registry/t1/s1/doc.pdf")
	s.Require().NoError(err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	s.Require().NoError(err)

	s.Equal("%PDF-1.3", string(body))
	s.Equal(int64(8), info.Size)
	s.Equal("application/pdf", info.ContentType)
	s.Equal("3", info.Metadata["pages"])
}

func (s *StoreSuite) TestPutOverwrites() {
	ctx := context.Background()
	_, err := s.store.Put(ctx, "sig/a.png", bytes.NewReader([]byte("one")), PutOptions{})
	s.Require().NoError(err)
	_, err = s.store.Put(ctx, "sig/a.png", bytes.NewReader([]byte("three")), PutOptions{})
	s.Require().NoError(err)

	data, err := ReadAll(ctx, s.store, "sig/a.png", 1024)
	s.Require().NoError(err)
	s.Equal("three", string(data))
}

func (s *StoreSuite) TestMissingKeyIsNotFound() {
	ctx := context.Background()
	_, _, err := s.store.Get(ctx, "missing/key")
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.Head(ctx, "missing/key")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *StoreSuite) TestListByPrefix() {
	ctx := context.Background()
	for _, key := range []string{"registry/t1/b.pdf", "registry/t1/a.pdf", "registry/t2/c.pdf"} {
		_, err := s.store.Put(ctx, key, bytes.NewReader([]byte("x")), PutOptions{})
		s.Require().NoError(err)
	}

	infos, err := s.store.List(ctx, "registry/t1/")
	s.Require().NoError(err)
	s.Require().Len(infos, 2)
	s.Equal("registry/t1/a.pdf", infos[0].Key)
	s.Equal("registry/t1/b.pdf", infos[1].Key)
}

func (s *StoreSuite) TestReadAllEnforcesLimit() {
	ctx := context.Background()
	_, err := s.store.Put(ctx, "big.bin", bytes.NewReader(make([]byte, 64)), PutOptions{})
	s.Require().NoError(err)

	_, err = ReadAll(ctx, s.store, "big.bin", 32)
	s.Error(err)
}

func TestFilesystem_RejectsTraversal(t *testing.T) {
	fs, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../etc/passwd", "/abs/key"} {
		if _, err := fs.Put(context.Background(), key, bytes.NewReader(nil), PutOptions{}); err == nil {
			t.Errorf("expected error for key %q", key)
		}
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, config.BlobConfig{Driver: "none"})
	if err != nil || store != nil {
		t.Fatalf("none driver: store=%v err=%v", store, err)
	}

	store, err = Open(ctx, config.BlobConfig{Driver: "memory"})
	if err != nil || store.Driver() != DriverMemory {
		t.Fatalf("memory driver: err=%v", err)
	}

	store, err = Open(ctx, config.BlobConfig{Driver: "fs", FSRoot: t.TempDir()})
	if err != nil || store.Driver() != DriverFilesystem {
		t.Fatalf("fs driver: err=%v", err)
	}

	if _, err := Open(ctx, config.BlobConfig{Driver: "gcs"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
