package doctor

import (
	"fmt"
	"os"

	"github.com/thoreinstein/letta-mcp/internal/errors"
)

// Fixer is implemented by checks that can repair what their last Run found.
type Fixer interface {
	CanFix() bool
	Fix() []FixResult
}

// FixResult is one attempted repair.
type FixResult struct {
	Path        string `json:"path"`
	Fixed       bool   `json:"fixed"`
	Description string `json:"description"`
	Error       error  `json:"-"`
}

// privateFilePerm is the mode for files that contain the API key.
const privateFilePerm os.FileMode = 0o600

// looseFile is a key-bearing file that group or other can access.
type looseFile struct {
	path string
	perm os.FileMode
}

// restrict chmods f to privateFilePerm.
func (f looseFile) restrict() FixResult {
	if err := os.Chmod(f.path, privateFilePerm); err != nil {
		return FixResult{
			Path:        f.path,
			Description: fmt.Sprintf("failed to chmod %04o: %v", privateFilePerm, err),
			Error:       errors.Wrapf(err, "chmod %04o %s", privateFilePerm, f.path),
		}
	}
	return FixResult{
		Path:        f.path,
		Fixed:       true,
		Description: fmt.Sprintf("chmod %04o (was %04o)", privateFilePerm, f.perm),
	}
}
