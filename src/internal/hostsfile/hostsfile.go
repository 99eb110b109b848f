package hostsfile

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lost-hosts/lost/src/internal/errors"
	"github.com/lost-hosts/lost/src/internal/log"
	"golang.org/x/sys/unix"
)

const DefaultPath = "/etc/hosts"

// File persists documents to a hosts file on disk.
type File struct {
	Path string
}

// New returns a File for path.
func New(path string) *File {
	return &File{Path: path}
}

// Read returns the whole file as text.
func (f *File) Read() (string, error) {
	return Read(f.Path)
}

// Persist writes data to the file.
func (f *File) Persist(data []byte) error {
	return Write(f.Path, data)
}

// Read returns the contents of the hosts file at path.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewIOError(fmt.Sprintf("failed to read %s", path), err)
	}
	return string(data), nil
}

// CheckWritable reports whether the current process may write path.
func CheckWritable(path string) error {
	if err := unix.Access(path, unix.W_OK); err != nil {
		if stderrors.Is(err, unix.EACCES) || stderrors.Is(err, unix.EROFS) || stderrors.Is(err, unix.EPERM) {
			return errors.NewIOError(fmt.Sprintf("no permission to modify %s, run lost as a user that can write it", path), err)
		}
		return errors.NewIOError(fmt.Sprintf("cannot access %s", path), err)
	}
	return nil
}

// Write replaces the file at path with data.
//
// The data goes to a temporary file in the same directory which is then
// renamed over path, keeping the original mode and owner. If the rename is
// impossible, e.g. because path is a bind mount, the file is rewritten in place.
func Write(path string, data []byte) error {
	var st unix.Stat_t
	hasStat := unix.Stat(path, &st) == nil

	err := writeAtomic(path, data, st, hasStat)
	if err == nil {
		return nil
	}
	if stderrors.Is(err, unix.EBUSY) || stderrors.Is(err, unix.EXDEV) {
		log.Debugf("Cannot replace %s (%v), rewriting it in place", path, err)
		err = writeInPlace(path, data)
	}
	if err != nil {
		return errors.NewIOError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

func writeAtomic(path string, data []byte, st unix.Stat_t, hasStat bool) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".lost-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	mode := os.FileMode(0o644)
	if hasStat {
		mode = os.FileMode(st.Mode & 0o7777)
	}
	if err = tmp.Chmod(mode); err != nil {
		return err
	}
	if hasStat {
		if chownErr := tmp.Chown(int(st.Uid), int(st.Gid)); chownErr != nil {
			log.Debugf("Failed to keep owner of %s: %v", path, chownErr)
		}
	}

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func writeInPlace(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
