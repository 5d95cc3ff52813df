// Package loader reads the compressed Storm Events CSV into raw records.
package loader

import (
	"compress/bzip2"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// requiredColumns are the header names the dataset must carry, matched
// exactly.
var requiredColumns = []string{
	"EVTYPE",
	"BGN_DATE",
	"FATALITIES",
	"INJURIES",
	"PROPDMG",
	"PROPDMGEXP",
	"CROPDMG",
	"CROPDMGEXP",
}

// LoadError is fatal: the file is missing, unreadable, or not the expected
// delimited format. It names the file and the reason.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("load %s: %s: %v", e.Path, e.Reason, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads one dataset file per call. It holds no state between calls.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader.
func New(logger *slog.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load opens the dataset at path, decompressing by extension (.bz2, .gz, or
// plain CSV), and parses every row into a RawEventRecord. The header row is
// validated against the required columns before any data row is read.
func (l *Loader) Load(path string) ([]domain.RawEventRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "open file", Err: err}
	}
	defer f.Close()

	reader, closeReader, err := decompress(f, path)
	if err != nil {
		return nil, err
	}
	defer closeReader()

	records, err := l.readCSV(reader, path)
	if err != nil {
		return nil, err
	}

	l.logger.Info("dataset loaded", "path", path, "rows", len(records))
	return records, nil
}

// decompress wraps the file reader according to the path's extension.
func decompress(f *os.File, path string) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bz2":
		return bzip2.NewReader(f), func() {}, nil
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, &LoadError{Path: path, Reason: "gzip header", Err: err}
		}
		return zr, func() { zr.Close() }, nil
	default:
		return f, func() {}, nil
	}
}

func (l *Loader) readCSV(r io.Reader, path string) ([]domain.RawEventRecord, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "read header", Err: err}
	}

	cols, err := indexColumns(header, path)
	if err != nil {
		return nil, err
	}

	var records []domain.RawEventRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Path: path, Reason: "read row", Err: err}
		}
		// Fields are subslices of the full row line; clone so the kept
		// columns don't pin the dropped ones in memory.
		records = append(records, domain.RawEventRecord{
			EventType:     strings.Clone(row[cols["EVTYPE"]]),
			BeginDate:     strings.Clone(row[cols["BGN_DATE"]]),
			Fatalities:    strings.Clone(row[cols["FATALITIES"]]),
			Injuries:      strings.Clone(row[cols["INJURIES"]]),
			PropDamage:    strings.Clone(row[cols["PROPDMG"]]),
			PropDamageExp: strings.Clone(row[cols["PROPDMGEXP"]]),
			CropDamage:    strings.Clone(row[cols["CROPDMG"]]),
			CropDamageExp: strings.Clone(row[cols["CROPDMGEXP"]]),
		})
	}

	return records, nil
}

// indexColumns maps required column names to their positions, trimming
// whitespace around header cells but matching names exactly.
func indexColumns(header []string, path string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &LoadError{Path: path, Reason: fmt.Sprintf("missing required column %q", name)}
		}
	}
	return cols, nil
}
