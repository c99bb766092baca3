package reconcile

import (
	"io"
	"os"
	"path/filepath"
)

// Archiver moves a processed submission file out of the intake
// directory. The driver invokes it exactly once per file, success or
// failure, which is what makes reprocessing across runs impossible.
type Archiver interface {
	Move(path string) error
}

// DirArchiver archives files into a fixed directory, creating it on
// first use. Moves fall back to copy-and-delete across filesystems.
type DirArchiver struct {
	Dir string
}

// Move implements Archiver.
func (a DirArchiver) Move(path string) error {
	if err := os.MkdirAll(a.Dir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(a.Dir, filepath.Base(path))
	if err := os.Rename(path, dest); err == nil {
		return nil
	}
	return copyAndRemove(path, dest)
}

func copyAndRemove(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
