package dataset

import (
	"archive/zip"    // For reading .zip archives
	"compress/bzip2" // For reading .bz2 compressed data
	"compress/gzip"  // For reading .gz compressed data
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	"bikeshare/internal/logger"
)

// ErrNoCSV is returned when an archive holds no .csv entry.
var ErrNoCSV = errors.New("no .csv file in archive")

// readCloser chains a decompressing reader with every underlying closer,
// closed in reverse order of opening.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open returns the CSV content stored at path, decompressing it based on
// the file extension. Archives (.zip, .7z) yield their first .csv entry.
func Open(path string) (io.ReadCloser, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".zip"):
		logger.Debug("[DEBUG] %s: compression type is zip\n", path)
		return openZip(path)
	case strings.HasSuffix(lower, ".7z"):
		logger.Debug("[DEBUG] %s: compression type is .7z\n", path)
		return open7z(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	switch {
	case strings.HasSuffix(lower, ".gz"):
		logger.Debug("[DEBUG] %s: compression type is gzip\n", path)
		gr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		return &readCloser{Reader: gr, closers: []io.Closer{f, gr}}, nil
	case strings.HasSuffix(lower, ".bz2"):
		logger.Debug("[DEBUG] %s: compression type is bzip2\n", path)
		return &readCloser{Reader: bzip2.NewReader(f), closers: []io.Closer{f}}, nil
	case strings.HasSuffix(lower, ".xz"):
		logger.Debug("[DEBUG] %s: compression type is xz\n", path)
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("xz %s: %w", path, err)
		}
		return &readCloser{Reader: xzr, closers: []io.Closer{f}}, nil
	default:
		return f, nil
	}
}

func isCSV(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".csv")
}

// openZip opens the first .csv entry of a .zip archive
func openZip(path string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip archive: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isCSV(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("zip entry %s: %w", f.Name, err)
		}
		logger.Debug("[DEBUG] Reading %s from %s\n", f.Name, path)
		return &readCloser{Reader: rc, closers: []io.Closer{r, rc}}, nil
	}

	r.Close()
	return nil, fmt.Errorf("%s: %w", path, ErrNoCSV)
}

// open7z opens the first .csv entry of a .7z archive using the sevenzip library
func open7z(path string) (io.ReadCloser, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z archive: %w", err)
	}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !isCSV(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("7z entry %s: %w", f.Name, err)
		}
		logger.Debug("[DEBUG] Reading %s from %s\n", f.Name, path)
		return &readCloser{Reader: rc, closers: []io.Closer{r, rc}}, nil
	}

	r.Close()
	return nil, fmt.Errorf("%s: %w", path, ErrNoCSV)
}
