package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"

	perr "pixivrank/internal/platform/errors"
)

// Dir is a Sink over a local directory
type Dir struct {
	root string
}

// NewDir creates root if needed (idempotent) and returns a Dir over it
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStorage, "create output dir %s", root)
	}
	return &Dir{root: root}, nil
}

// Root returns the directory files are written to
func (d *Dir) Root() string { return d.root }

// Put streams r into root/name. The file appears under its final name only
// after the body is fully written and synced
func (d *Dir) Put(ctx context.Context, name string, r io.Reader) (int64, error) {
	if name == "" || filepath.Base(name) != name {
		return 0, perr.InvalidArgf("bad asset name %q", name)
	}
	path := filepath.Join(d.root, name)
	tmp := path + ".part"

	out, err := os.Create(tmp)
	if err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeStorage, "create %s", tmp)
	}
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmp)
	}()

	n, werr := io.Copy(out, readerCtx{ctx: ctx, r: r})
	if werr == nil {
		werr = out.Sync()
	}
	cerr := out.Close()
	if werr != nil {
		return n, werr
	}
	if cerr != nil {
		return n, cerr
	}
	if err := os.Rename(tmp, path); err != nil {
		return n, perr.Wrapf(err, perr.ErrorCodeStorage, "rename %s", tmp)
	}
	return n, nil
}

// readerCtx stops a copy once ctx is done
type readerCtx struct {
	ctx context.Context
	r   io.Reader
}

func (rc readerCtx) Read(p []byte) (int, error) {
	if err := rc.ctx.Err(); err != nil {
		return 0, err
	}
	return rc.r.Read(p)
}
