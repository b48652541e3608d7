package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/letta-mcp/internal/errors"
)

// MaxFileSize caps how much of a client config is read. Claude Code's
// ~/.claude.json grows with project history, so the cap is generous.
const MaxFileSize = 16 << 20

var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads at most MaxFileSize bytes of path. A missing file
// yields an error satisfying errors.Is(err, os.ErrNotExist).
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	// One extra byte distinguishes "exactly at the cap" from "over it".
	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	switch {
	case err != nil:
		return nil, errors.Wrapf(err, "reading %s", path)
	case len(data) > MaxFileSize:
		return nil, errors.Wrap(ErrFileTooLarge, path)
	}
	return data, nil
}

// Exists reports whether path names an existing regular file or symlink to one.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
