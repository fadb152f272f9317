package cartridge

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// LoadROM reads path and transparently decompresses it if it carries a
// recognized archive extension, mirroring the teacher's loader
// (pkg/utils/files.go) so a front-end can hand this module a compressed
// ROM dump without doing its own archive handling. Uncompressed .gb/.gbc
// images and anything with an unrecognized extension are returned as-is.
func LoadROM(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: read %s: %w", path, err)
	}

	switch filepath.Ext(path) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("cartridge: gzip %s: %w", path, err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			return nil, fmt.Errorf("cartridge: zip %s: %w", path, err)
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("cartridge: %s is an empty archive", path)
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	case ".7z":
		zr, err := sevenzip.NewReader(bytes.NewReader(raw), int64(len(raw)))
		if err != nil {
			return nil, fmt.Errorf("cartridge: 7z %s: %w", path, err)
		}
		if len(zr.File) == 0 {
			return nil, fmt.Errorf("cartridge: %s is an empty archive", path)
		}
		rc, err := zr.File[0].Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	default:
		return raw, nil
	}
}
