package storage

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NoopArchive discards documents. Used when archiving is disabled;
// generated PDFs are still returned to the caller, just not retained.
type NoopArchive struct {
	logger *zap.Logger
}

// NewNoopArchive creates a no-op document archive.
func NewNoopArchive(logger *zap.Logger) *NoopArchive {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoopArchive{logger: logger}
}

func (a *NoopArchive) Put(ctx context.Context, key, contentType string, data []byte) error {
	a.logger.Debug("document archiving disabled, discarding",
		zap.String("key", key),
		zap.Int("bytes", len(data)))
	return nil
}

func (a *NoopArchive) DownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (a *NoopArchive) Delete(ctx context.Context, key string) error {
	return nil
}

var _ DocumentArchive = (*NoopArchive)(nil)
