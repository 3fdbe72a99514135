package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mongoetl/internal/reader"
	"mongoetl/internal/transform"
)

func writeFixture(t *testing.T, rows int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(transform.Columns); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i := 0; i < rows; i++ {
		row := make([]string, len(transform.Columns))
		for j, c := range transform.Columns {
			switch c {
			case "Name":
				row[j] = "Patient " + string(rune('A'+i))
			case "Gender":
				row[j] = "Female"
			case "Blood Type":
				row[j] = "O-"
			case "Date of Admission":
				row[j] = "01/02/2022"
			case "Hospital":
				row[j] = "General"
			case "Age":
				row[j] = "40"
			}
		}
		if err := w.Write(row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("flush fixture: %v", err)
	}
	return path
}

func TestPreviewCapsAtFiveDocuments(t *testing.T) {
	path := writeFixture(t, 8)
	r, err := reader.Open(path, 100)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	var out bytes.Buffer
	if err := preview(&out, r); err != nil {
		t.Fatalf("preview: %v", err)
	}

	var docs []map[string]any
	if err := json.Unmarshal(out.Bytes(), &docs); err != nil {
		t.Fatalf("preview output is not a JSON array: %v\n%s", err, out.String())
	}
	if len(docs) != previewDocs {
		t.Fatalf("previewed %d documents, want %d", len(docs), previewDocs)
	}
	if docs[0]["name"] != "patient a" {
		t.Fatalf("first preview doc name=%v, want %q", docs[0]["name"], "patient a")
	}
	if docs[0]["source"] != "csv_migration_v2" {
		t.Fatalf("first preview doc source=%v", docs[0]["source"])
	}
}

func TestPreviewEmptyCSV(t *testing.T) {
	orig := log.Writer()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(orig)

	path := writeFixture(t, 0)
	r, err := reader.Open(path, 100)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	var out bytes.Buffer
	if err := preview(&out, r); err != nil {
		t.Fatalf("preview: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("empty CSV produced preview output:\n%s", out.String())
	}
	if !strings.Contains(buf.String(), "nothing to preview") {
		t.Fatalf("missing empty-file warning:\n%s", buf.String())
	}
}
