//go:build windows

package filesystem

import (
	"os"

	"github.com/pkg/errors"
)

// DeviceAndInode is unsupported on Windows; the standard library does not
// expose a stable inode-equivalent through os.FileInfo.Sys() on this
// platform. Callers that can't identify a symlink target conservatively
// decline to recurse into it rather than risk an undetected cycle.
func DeviceAndInode(_ os.FileInfo) (uint64, uint64, error) {
	return 0, 0, errors.New("device/inode identification is not supported on windows")
}
