package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	d := testDataset(t, 5, 42)
	path := filepath.Join(t.TempDir(), "careers.csv")

	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Records, d.Records) {
		t.Error("round-trip changed records")
	}
}

func TestWriteReadRoundTrip_Compressed(t *testing.T) {
	d := testDataset(t, 5, 42)
	path := filepath.Join(t.TempDir(), "careers.csv.zst")

	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0x28, 0xb5, 0x2f, 0xfd}) {
		t.Error("expected zstd frame magic at start of .zst output")
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Records, d.Records) {
		t.Error("compressed round-trip changed records")
	}
}

func TestWriteReadRoundTrip_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := New(nil).WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	loaded, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty dataset, got %d records", loaded.Len())
	}
}

func TestWriteFile_Header(t *testing.T) {
	d := testDataset(t, 1, 42)
	path := filepath.Join(t.TempDir(), "careers.csv")
	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	first := strings.SplitN(string(data), "\n", 2)[0]
	if first != "person_id,year,age,state,income,state_name" {
		t.Errorf("unexpected header: %q", first)
	}
}

func TestWriteFile_CreatesDirectories(t *testing.T) {
	d := testDataset(t, 1, 42)
	path := filepath.Join(t.TempDir(), "out", "nested", "careers.csv")

	if err := d.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestReadFile_Missing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadFile_UnknownStateCode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "person_id,year,age,state,income,state_name\n1,2020,25,9,0,employed\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := ReadFile(path); err == nil {
		t.Error("expected error for unknown state code")
	}
}

func TestReadFile_MismatchedStateName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	content := "person_id,year,age,state,income,state_name\n1,2020,25,1,50000,retired\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	if _, err := ReadFile(path); err == nil {
		t.Error("expected error for state_name that contradicts the code")
	}
}
