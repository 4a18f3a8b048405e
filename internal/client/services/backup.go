package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mlukyanov/promptstash/internal/client/library"
	"github.com/mlukyanov/promptstash/internal/client/remote"
	"github.com/mlukyanov/promptstash/internal/filex"
	"github.com/mlukyanov/promptstash/internal/logging"
	"github.com/mlukyanov/promptstash/internal/netx"
)

const exportPrefix = "prompts-export"

// Seams for tests.
var (
	uploadFunc = netx.UploadToPresignedURL
	writeFunc  = filex.WriteTimestamped
)

// BackupService turns the catalogue into export archives: a local timestamped
// file, or an upload to replica-managed object storage via a presigned URL.
type BackupService struct {
	lib *library.Library
	gw  remote.Gateway
	log logging.Logger
}

func NewBackupService(lib *library.Library, gw remote.Gateway, log logging.Logger) *BackupService {
	return &BackupService{lib: lib, gw: gw, log: log}
}

// ExportToFile writes the export document into dir and returns the path.
func (b *BackupService) ExportToFile(ctx context.Context, dir string) (string, error) {
	data, err := b.lib.Export()
	if err != nil {
		return "", fmt.Errorf("error exporting: %w", err)
	}
	path, err := writeFunc(dir, exportPrefix, "json", data)
	if err != nil {
		return "", fmt.Errorf("error writing export file: %w", err)
	}
	return path, nil
}

// Upload exports the catalogue and uploads the archive to object storage
// through a presigned URL issued by the replica.
func (b *BackupService) Upload(ctx context.Context) error {
	data, err := b.lib.Export()
	if err != nil {
		return fmt.Errorf("error exporting: %w", err)
	}

	name := fmt.Sprintf("%s-%s.json", exportPrefix, time.Now().UTC().Format("2006-01-02"))
	url, err := b.gw.PresignExportUpload(ctx, name)
	if err != nil {
		return fmt.Errorf("error requesting upload url: %w", err)
	}

	if err := uploadFunc(ctx, url, data); err != nil {
		return fmt.Errorf("error uploading export: %w", err)
	}
	b.log.Info(ctx, "export uploaded", "name", name)
	return nil
}
