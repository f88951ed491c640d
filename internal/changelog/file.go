package changelog

import (
	"os"

	"github.com/google/renameio/v2/maybe"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// CheckWritable fails with ChangelogAlreadyExists when path exists and
// override is off. Callers run it before any API work so a refused run
// does no network traffic.
func CheckWritable(path string, override bool) error {
	if override {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return clierrors.ChangelogAlreadyExists(path)
	}
	return nil
}

// Write stores content at path. Parent directories are not created. The
// file is replaced atomically where the platform allows it; a failed write
// leaves neither partial output nor a temp file behind.
func Write(path, content string, override bool) error {
	if err := CheckWritable(path, override); err != nil {
		return err
	}
	if err := maybe.WriteFile(path, []byte(content), 0o644); err != nil {
		return clierrors.FileWrite(path, err)
	}
	return nil
}
