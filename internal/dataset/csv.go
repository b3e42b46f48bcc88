package dataset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/klauspost/compress/zstd"

	"github.com/lifecourse/careergen/internal/career"
)

// zstExt marks output paths that get zstd compression.
const zstExt = ".zst"

// Shared zstd coders, reused across calls. Both are safe for concurrent
// use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("dataset: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("dataset: zstd decoder initialization failed: " + err.Error())
	}
}

// WriteFile exports the dataset to path as a comma-delimited table with
// a header row, creating parent directories as needed. Paths ending in
// ".zst" are zstd-compressed. Float columns use the shortest
// representation that round-trips, so ReadFile recovers incomes
// bit-for-bit.
func (d *Dataset) WriteFile(path string) error {
	data, err := d.encodeCSV()
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, zstExt) {
		data = zstdEncoder.EncodeAll(data, nil)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}

// ReadFile loads a dataset previously written by WriteFile. Compression
// is detected from the ".zst" suffix, matching the write side.
func ReadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}
	if strings.HasSuffix(path, zstExt) {
		data, err = zstdDecoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress dataset %s: %w", path, err)
		}
	}

	records, err := decodeCSV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return New(records), nil
}

// encodeCSV renders the dataset as delimited text in memory.
func (d *Dataset) encodeCSV() ([]byte, error) {
	rec := d.Record(memory.NewGoAllocator())
	defer rec.Release()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf, Schema(), csv.WithComma(','), csv.WithHeader(true))
	if err := w.Write(rec); err != nil {
		return nil, fmt.Errorf("failed to encode csv: %w", err)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeCSV parses delimited text produced by encodeCSV.
func decodeCSV(data []byte) ([]career.Record, error) {
	rdr := csv.NewReader(bytes.NewReader(data), Schema(),
		csv.WithComma(','), csv.WithHeader(true), csv.WithChunk(-1))
	defer rdr.Release()

	var records []career.Record
	for rdr.Next() {
		rows, err := fromRecord(rdr.Record())
		if err != nil {
			return nil, err
		}
		records = append(records, rows...)
	}
	if err := rdr.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
