package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/mindexport/errors"
)

// DefaultName is the file stem used when the caller suggests none.
const DefaultName = "mindmap"

// Artifact is the finished output of one export. The coordinator keeps no
// reference to it after returning.
type Artifact struct {
	MimeType          string
	Bytes             []byte
	SuggestedFileName string
}

// Sink delivers artifacts, for example by saving them to disk.
type Sink interface {
	Deliver(ctx context.Context, a Artifact) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, a Artifact) error

func (f SinkFunc) Deliver(ctx context.Context, a Artifact) error { return f(ctx, a) }

// FileSink writes artifacts into Dir under their suggested file name.
type FileSink struct {
	Dir string
}

// Deliver writes through a temporary file in the same directory and renames
// it into place, so readers never see a partial artifact.
func (s FileSink) Deliver(_ context.Context, a Artifact) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	name := filepath.Base(a.SuggestedFileName)
	if name == "." || name == string(filepath.Separator) {
		return errors.New(errors.ErrCodeInvalidInput, "artifact has no file name")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "write %s", name)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(a.Bytes); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "write %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "write %s", name)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "write %s", name)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return errors.Wrap(errors.ErrCodeSinkUnavailable, err, "write %s", name)
	}
	return nil
}

// FileName returns the suggested file name for an export called name with
// the given extension. An empty name becomes DefaultName; a name that
// already carries the extension is kept as is.
func FileName(name, ext string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}
	if strings.HasSuffix(strings.ToLower(name), strings.ToLower(ext)) {
		return name
	}
	return name + ext
}
