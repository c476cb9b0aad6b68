// Package traversal implements the recursive directory walker: the engine
// that enforces exclusion patterns, the symlink policy matrix, and the
// binary-file policy matrix across two passes (structure, then content)
// over the same tree.
package traversal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/fconcat/fconcat/internal/pathbuffer"
	"github.com/fconcat/fconcat/pkg/binaryclassifier"
	"github.com/fconcat/fconcat/pkg/config"
	"github.com/fconcat/fconcat/pkg/filesystem"
	"github.com/fconcat/fconcat/pkg/inodetracker"
	"github.com/fconcat/fconcat/pkg/logging"
	"github.com/fconcat/fconcat/pkg/output"
)

// Walker drives the two-pass traversal: a structure pass that renders the
// decorated tree, and a content pass that streams
// every kept file's body through the plugin chain. Both passes share the
// same exclusion, symlink, and binary policies, and each starts with its
// own fresh inode tracker so that a symlink followed in one pass can't
// suppress its counterpart in the other.
type Walker struct {
	cfg       *config.Config
	formatter *output.Formatter
	logger    *logging.Logger
}

// New creates a Walker bound to cfg, writing tree lines and file content
// through formatter.
func New(cfg *config.Config, formatter *output.Formatter) *Walker {
	return &Walker{
		cfg:       cfg,
		formatter: formatter,
		logger:    cfg.Logger().Sublogger("traversal"),
	}
}

// entryKind classifies a directory entry by its un-dereferenced (lstat-like)
// type.
type entryKind int

const (
	kindOther entryKind = iota
	kindRegular
	kindDirectory
	kindSymlink
)

func classifyEntry(e os.DirEntry) entryKind {
	switch {
	case e.Type()&os.ModeSymlink != 0:
		return kindSymlink
	case e.IsDir():
		return kindDirectory
	case e.Type().IsRegular():
		return kindRegular
	default:
		return kindOther
	}
}

// RunStructurePass walks the tree once, writing the structure section
// (header, tree lines, and the total-size footer if requested) to the
// formatter. It returns the accumulated total size across every kept
// regular file and followed/included symlink-to-file.
func (w *Walker) RunStructurePass() (uint64, error) {
	if err := w.formatter.StructureHeader(); err != nil {
		return 0, err
	}
	tracker := inodetracker.New()
	total, err := w.walkStructure(w.cfg.BasePath, "", 0, tracker)
	if err != nil {
		return 0, err
	}
	if w.cfg.ShowSize {
		if err := w.formatter.TotalSizeFooter(total); err != nil {
			return total, err
		}
	}
	return total, nil
}

// RunContentPass walks the tree a second time, writing the content section
// (header, then one header/body/trailer group per kept file) to the
// formatter.
func (w *Walker) RunContentPass() error {
	if err := w.formatter.ContentHeader(); err != nil {
		return err
	}
	tracker := inodetracker.New()
	return w.walkContent(w.cfg.BasePath, "", tracker)
}

// readDir lists absDir's entries, logging and returning an empty slice (not
// an error) on failure, per the "entry unreachable" disposition: directory
// enumeration failures are logged at verbose level and the entry is
// skipped, they never abort the run.
func (w *Walker) readDir(absDir, relativeDir string) []os.DirEntry {
	entries, err := os.ReadDir(absDir)
	if err != nil {
		w.logger.Verbosef("unable to read directory %q: %v", relativeDir, err)
		return nil
	}
	return entries
}

// join computes the child relative path, logging and signaling skip on
// overflow.
func (w *Walker) join(relative, name string) (string, bool) {
	joined, err := pathbuffer.Join(relative, name)
	if err != nil {
		w.logger.Verbosef("skipping %q: %v", name, err)
		return "", false
	}
	return joined, true
}

// resolveSymlink stats through a symlink (dereferencing it) and reports
// whether it resolves, plus the target's os.FileInfo when it does.
func resolveSymlink(absPath string) (os.FileInfo, bool) {
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, false
	}
	return info, true
}

// walkStructure implements the structure pass over one directory, returning
// the accumulated size of every kept descendant.
func (w *Walker) walkStructure(absDir, relative string, level int, tracker *inodetracker.Tracker) (uint64, error) {
	var total uint64
	for _, entry := range w.readDir(absDir, relative) {
		joined, ok := w.join(relative, entry.Name())
		if !ok {
			continue
		}
		if w.cfg.Excludes.Matches(joined) {
			continue
		}
		absPath := filepath.Join(absDir, entry.Name())

		switch classifyEntry(entry) {
		case kindDirectory:
			if err := w.formatter.DirectoryLine(level, entry.Name()); err != nil {
				return total, err
			}
			childTotal, err := w.walkStructure(absPath, joined, level+1, tracker)
			if err != nil {
				return total, err
			}
			total += childTotal

		case kindRegular:
			info, err := entry.Info()
			if err != nil {
				w.logger.Verbosef("unable to stat %q: %v", joined, err)
				continue
			}
			if err := w.formatter.FileLine(level, entry.Name(), uint64(info.Size()), w.cfg.ShowSize); err != nil {
				return total, err
			}
			total += uint64(info.Size())

		case kindSymlink:
			size, err := w.structureSymlink(absPath, entry.Name(), joined, level, tracker)
			if err != nil {
				return total, err
			}
			total += size

		default:
			// Ignored entry kinds (devices, sockets, etc.) are silently
			// skipped; they carry no content worth rendering.
		}
	}
	return total, nil
}

// structureSymlink renders the tree line(s) for a symlink entry according to
// the symlink policy matrix, recursing into followed directories. It
// returns the size contribution of the entry (nonzero only for
// followed/included files and for the contents of followed directories).
func (w *Walker) structureSymlink(absPath, name, joined string, level int, tracker *inodetracker.Tracker) (uint64, error) {
	policy := w.cfg.SymlinkPolicy

	if policy == config.SymlinkPolicySkip {
		return 0, w.formatter.SymlinkMarkerLine(level, name, output.MarkerSkipped, 0, false)
	}

	target, resolves := resolveSymlink(absPath)

	if policy == config.SymlinkPolicyPlaceholder {
		if !resolves {
			return 0, w.formatter.SymlinkMarkerLine(level, name, output.MarkerBroken, 0, false)
		}
		if target.IsDir() {
			return 0, w.formatter.SymlinkMarkerLine(level, name, output.MarkerSymlinkDir, 0, false)
		}
		size := uint64(target.Size())
		return 0, w.formatter.SymlinkMarkerLine(level, name, output.MarkerPlaceholder, size, w.cfg.ShowSize)
	}

	// Follow or Include from here on.
	if !resolves {
		return 0, w.formatter.SymlinkMarkerLine(level, name, output.MarkerBroken, 0, false)
	}

	if target.IsDir() {
		device, inode, err := filesystem.DeviceAndInode(target)
		if err != nil {
			w.logger.Verbosef("unable to identify symlink target %q: %v", joined, err)
			return 0, nil
		}
		if tracker.Contains(device, inode) {
			return 0, w.formatter.SymlinkMarkerLine(level, name, output.MarkerLoop, 0, false)
		}
		tracker.Add(device, inode)

		if policy == config.SymlinkPolicyInclude {
			// Treated as absent: no tree line, no recursion.
			return 0, nil
		}

		if err := w.formatter.SymlinkMarkerLine(level, name, output.MarkerFollowing, 0, false); err != nil {
			return 0, err
		}
		return w.walkStructure(absPath, joined, level+1, tracker)
	}

	// Target is a file: same (dev, ino) check as a directory target, so two
	// links to the same file are only ever rendered once per pass. A repeat
	// isn't a directory cycle, so it's dropped silently rather than marked.
	device, inode, err := filesystem.DeviceAndInode(target)
	if err != nil {
		w.logger.Verbosef("unable to identify symlink target %q: %v", joined, err)
		return 0, nil
	}
	if tracker.Contains(device, inode) {
		return 0, nil
	}
	tracker.Add(device, inode)

	size := uint64(target.Size())
	return size, w.formatter.FileLine(level, name, size, w.cfg.ShowSize)
}

// walkContent implements the content pass over one directory.
func (w *Walker) walkContent(absDir, relative string, tracker *inodetracker.Tracker) error {
	for _, entry := range w.readDir(absDir, relative) {
		joined, ok := w.join(relative, entry.Name())
		if !ok {
			continue
		}
		if w.cfg.Excludes.Matches(joined) {
			continue
		}
		absPath := filepath.Join(absDir, entry.Name())

		switch classifyEntry(entry) {
		case kindDirectory:
			if err := w.walkContent(absPath, joined, tracker); err != nil {
				return err
			}

		case kindRegular:
			if err := w.streamRegularFile(absPath, joined, false); err != nil {
				return err
			}

		case kindSymlink:
			if err := w.contentSymlink(absPath, joined, tracker); err != nil {
				return err
			}

		default:
			// Ignored.
		}
	}
	return nil
}

// contentSymlink implements the content-pass action column of the symlink
// policy matrix.
func (w *Walker) contentSymlink(absPath, joined string, tracker *inodetracker.Tracker) error {
	policy := w.cfg.SymlinkPolicy

	if policy == config.SymlinkPolicySkip {
		return nil
	}

	target, resolves := resolveSymlink(absPath)

	if policy == config.SymlinkPolicyPlaceholder {
		if !resolves || target.IsDir() {
			return nil
		}
		if err := w.formatter.FileHeader(joined, true); err != nil {
			return err
		}
		if err := w.formatter.SymlinkPlaceholderComment(); err != nil {
			return err
		}
		return w.formatter.FileTrailer()
	}

	// Follow or Include.
	if !resolves {
		return nil
	}
	if target.IsDir() {
		device, inode, err := filesystem.DeviceAndInode(target)
		if err != nil {
			return nil
		}
		if tracker.Contains(device, inode) {
			return nil
		}
		tracker.Add(device, inode)
		if policy == config.SymlinkPolicyInclude {
			return nil
		}
		return w.walkContent(absPath, joined, tracker)
	}

	device, inode, err := filesystem.DeviceAndInode(target)
	if err != nil {
		return nil
	}
	if tracker.Contains(device, inode) {
		return nil
	}
	tracker.Add(device, inode)

	return w.streamRegularFile(absPath, joined, true)
}

// streamRegularFile implements the binary-policy matrix for one file's
// content-pass action. isSymlink marks the file header as a followed or
// included symlink-to-file.
func (w *Walker) streamRegularFile(absPath, joined string, isSymlink bool) error {
	binary, err := binaryclassifier.IsBinary(absPath)
	if err != nil {
		// Classifier I/O errors treat the file as unreadable: skip its
		// content entirely.
		w.logger.Verbosef("unable to classify %q: %v", joined, err)
		return nil
	}

	if binary {
		switch w.cfg.BinaryPolicy {
		case config.BinaryPolicySkip:
			return nil
		case config.BinaryPolicyPlaceholder:
			if err := w.formatter.FileHeader(joined, isSymlink); err != nil {
				return err
			}
			if err := w.formatter.BinaryPlaceholderComment(); err != nil {
				return err
			}
			return w.formatter.FileTrailer()
		case config.BinaryPolicyInclude:
			// Fall through to the open-and-stream path below.
		}
	}

	file, err := os.Open(absPath)
	if err != nil {
		w.logger.Verbosef("unable to open %q: %v", joined, err)
		return nil
	}
	defer file.Close()

	if err := w.formatter.FileHeader(joined, isSymlink); err != nil {
		return err
	}
	if err := w.cfg.Plugins.StreamFile(joined, io.Reader(file), w.formatter); err != nil {
		return errors.Wrapf(err, "unable to stream %q", joined)
	}
	return w.formatter.FileTrailer()
}
