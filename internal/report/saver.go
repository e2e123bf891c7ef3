package report

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Saver hands a serialized report to persistent storage. The core does not
// verify the save succeeded beyond the returned error.
type Saver interface {
	Save(ctx context.Context, filename string, payload []byte) error
}

// DiskSaver writes reports to a local directory.
type DiskSaver struct {
	dir string
	log *zap.Logger
}

func NewDiskSaver(dir string, log *zap.Logger) *DiskSaver {
	return &DiskSaver{dir: dir, log: log.Named("report.saver")}
}

func (s *DiskSaver) Save(_ context.Context, filename string, payload []byte) error {
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return err
	}
	s.log.Info("report saved", zap.String("path", path))
	return nil
}
