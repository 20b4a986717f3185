package tabfile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/colfit/pkg/errors"
	"github.com/matzehuels/colfit/pkg/observability"
	"github.com/matzehuels/colfit/pkg/table"
)

// =============================================================================
// Reading API
// =============================================================================

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, error) {
	if err := errs.ValidateTablePath(path); err != nil {
		return "", err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON, nil
	}
	return FormatTOML, nil
}

// Decode reads a table file in the given format without building a table.
// Unknown keys are rejected so misspelled options do not go unnoticed.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&f)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format %q", format)
	}
	return &f, nil
}

// Read decodes and builds a table from r.
func Read(r io.Reader, format Format) (*table.Table, error) {
	f, err := Decode(r, format)
	if err != nil {
		return nil, err
	}
	return Build(f)
}

// ReadFile reads the table file at path. The format follows the extension.
func ReadFile(ctx context.Context, path string) (tb *table.Table, err error) {
	start := time.Now()
	defer func() {
		cols, rows := 0, 0
		if tb != nil {
			cols, rows = len(tb.Columns()), len(tb.Rows())
		}
		observability.Load().OnLoad(ctx, path, cols, rows, time.Since(start), err)
	}()

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "table file %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "read %s", path)
	}
	return Read(bytes.NewReader(data), format)
}
