// core/treeio/open.go
package treeio

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// gzipReadCloser closes both the gzip layer and the underlying file.
type gzipReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (g *gzipReadCloser) Close() error {
	var first error
	for _, c := range g.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open returns a reader for a tree file path. "-" selects stdin. Gzip input
// is transparent, detected by the 1F 8B magic bytes or a .gz suffix.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var magic [2]byte
	n, _ := fh.Read(magic[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if (n == 2 && magic[0] == 0x1f && magic[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &gzipReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
