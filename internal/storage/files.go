package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/trendprints/storefront/internal/config"
)

// EnsureDirs creates the upload and public image folders served by the
// storefront.
func EnsureDirs(cfg config.Static) error {
	for _, dir := range []string{cfg.UploadsDir, filepath.Join(cfg.PublicDir, "images")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return nil
}
