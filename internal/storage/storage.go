package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/maxaizer/placement-portal/internal/config"
	log "github.com/sirupsen/logrus"
)

// ResumeStore keeps uploaded resumes under opaque keys.
type ResumeStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Close() error
}

// New prefers the GCS bucket when both a bucket and a directory are configured.
func New(ctx context.Context, cfg config.StorageConfig) (ResumeStore, error) {
	if cfg.ResumeBucket != "" {
		log.Infof("storing resumes in bucket %v", cfg.ResumeBucket)
		return NewGCS(ctx, cfg.ResumeBucket)
	}

	log.Infof("storing resumes in directory %v", cfg.ResumeDir)
	return NewLocal(cfg.ResumeDir)
}

func NewResumeKey(userID string) string {
	return path.Join("resumes", userID, fmt.Sprintf("%s.pdf", uuid.NewString()))
}
