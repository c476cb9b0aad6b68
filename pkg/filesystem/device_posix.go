//go:build !windows

package filesystem

import (
	"os"
	"syscall"

	"github.com/pkg/errors"
)

// DeviceAndInode extracts the (device, inode) pair from previously-obtained
// file metadata. It's used to key the inode tracker used for symbolic link
// cycle detection: it requires no additional syscall because callers already
// have FileInfo in hand from resolving the symbolic link target.
func DeviceAndInode(info os.FileInfo) (uint64, uint64, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, errors.New("unable to extract raw filesystem information")
	}
	return uint64(stat.Dev), uint64(stat.Ino), nil
}
