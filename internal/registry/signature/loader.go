// Package signature resolves a stored signature attachment into image bytes
// ready for the document's signature page.
package signature

import (
	"context"
	"errors"
	"log/slog"

	"bukuinduk/internal/blob"
	"bukuinduk/internal/registry/models"
	id "bukuinduk/pkg/domain"
	dErrors "bukuinduk/pkg/domain-errors"
	"bukuinduk/pkg/platform/sentinel"
)

// DefaultMaxImageBytes caps signature files read from the blob store.
const DefaultMaxImageBytes = 2 << 20

type Store interface {
	FindSignature(ctx context.Context, tenantID id.TenantID, signatureID id.SignatureID) (*models.SignatureAttachment, error)
}

// Resolved is an attachment whose image source has been read into memory.
type Resolved struct {
	Attachment models.SignatureAttachment
	Image      []byte
}

type Loader struct {
	store    Store
	files    blob.Store
	maxBytes int64
	logger   *slog.Logger
}

type Option func(*Loader)

// WithFiles sets the blob store FileReference images are read from.
func WithFiles(files blob.Store) Option {
	return func(l *Loader) {
		l.files = files
	}
}

func WithMaxImageBytes(n int64) Option {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(store Store, opts ...Option) *Loader {
	l := &Loader{store: store, maxBytes: DefaultMaxImageBytes, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the attachment and its image bytes. Missing attachments or
// files map to CodeNotFound and empty inline data to
// CodeSignatureDecodeFailed. Image bytes are not decoded here; the layout
// engine validates them when drawing.
func (l *Loader) Load(ctx context.Context, tenantID id.TenantID, signatureID id.SignatureID) (*Resolved, error) {
	att, err := l.store.FindSignature(ctx, tenantID, signatureID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "signature not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load signature")
	}

	var data []byte
	switch src := att.Image.(type) {
	case models.InlineImage:
		if len(src.Data) == 0 {
			return nil, dErrors.New(dErrors.CodeSignatureDecodeFailed, "signature image is not valid base64")
		}
		data = src.Data
	case models.FileReference:
		data, err = l.readFile(ctx, src.Key)
		if err != nil {
			return nil, err
		}
	default:
		return nil, dErrors.New(dErrors.CodeNotFound, "signature has no image")
	}

	l.logger.DebugContext(ctx, "signature resolved",
		"tenant_id", tenantID,
		"signature_id", signatureID,
		"bytes", len(data),
	)
	return &Resolved{Attachment: *att, Image: data}, nil
}

func (l *Loader) readFile(ctx context.Context, key string) ([]byte, error) {
	if l.files == nil {
		return nil, dErrors.New(dErrors.CodeNotFound, "signature file store is not configured")
	}
	data, err := blob.ReadAll(ctx, l.files, key, l.maxBytes)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, "signature file not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read signature file")
	}
	return data, nil
}
