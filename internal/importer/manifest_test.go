package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("File,Caption\nstar.svg,Star\narrow.svg,Arrow\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("File;Caption\nstar.svg;Star\narrow.svg;Arrow\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("File\tCaption\nstar.svg\tStar\narrow.svg\tArrow\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("File|Caption\nstar.svg|Star\narrow.svg|Arrow\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_BarePathList(t *testing.T) {
	data := []byte("star.svg\narrow.svg\ncircle.svg\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma fallback for single column, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"File", "Caption"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Path != 0 {
		t.Errorf("expected Path at 0, got %d", mapping.Path)
	}
	if mapping.Caption != 1 {
		t.Errorf("expected Caption at 1, got %d", mapping.Caption)
	}
}

func TestDetectColumns_CaseInsensitiveAndReordered(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"LABEL", "SOURCE"})

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Path != 1 {
		t.Errorf("expected Path at 1, got %d", mapping.Path)
	}
	if mapping.Caption != 0 {
		t.Errorf("expected Caption at 0, got %d", mapping.Caption)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"star.svg", "Star"})

	if isHeader {
		t.Error("expected no header detection for data row")
	}
	if mapping.Path != 0 || mapping.Caption != 1 {
		t.Errorf("expected positional mapping (0, 1), got (%d, %d)", mapping.Path, mapping.Caption)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeader(t *testing.T) {
	csv := "File,Caption\nstar.svg,Star shape\narrow.svg,\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[0].Path != "star.svg" || result.Entries[0].Caption != "Star shape" {
		t.Errorf("entry 0 = %+v", result.Entries[0])
	}
	if result.Entries[1].Caption != "" {
		t.Errorf("entry 1 caption = %q, want empty", result.Entries[1].Caption)
	}
}

func TestImportCSVFromReader_BareList(t *testing.T) {
	csv := "star.svg\narrow.svg\ncircle.dxf\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result.Entries))
	}
}

func TestImportCSVFromReader_MissingPath(t *testing.T) {
	csv := "File,Caption\n,Orphan caption\nok.svg,Fine\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) != 1 {
		t.Fatalf("expected 1 error, got %v", result.Errors)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
}

func TestImportCSVFromReader_UnknownExtensionWarns(t *testing.T) {
	csv := "File\nphoto.png\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "unrecognized extension") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected extension warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.csv")
	content := "File;Caption\nstar.svg;Star\narrow.svg;Arrow\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) == 0 {
		t.Error("expected an error for empty file")
	}
}

func TestImportCSV_MissingFile(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "nope.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for missing file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func writeTestWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, val := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", cell, val); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "manifest.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportExcel_WithHeader(t *testing.T) {
	path := writeTestWorkbook(t, [][]interface{}{
		{"File", "Caption"},
		{"star.svg", "Star"},
		{"arrow.svg", "Arrow"},
	})

	result := ImportExcel(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	if result.Entries[1].Path != "arrow.svg" || result.Entries[1].Caption != "Arrow" {
		t.Errorf("entry 1 = %+v", result.Entries[1])
	}
}

func TestImportExcel_MissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "nope.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected an error for missing file")
	}
}

// ─── LoadManifest Tests ────────────────────────────────────

func TestLoadManifest_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.csv")
	content := "File\nstar.svg\n" + filepath.Join(dir, "abs.svg") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	entries, result := LoadManifest(path)
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Path != filepath.Join(dir, "star.svg") {
		t.Errorf("relative path not resolved: %q", entries[0].Path)
	}
	if entries[1].Path != filepath.Join(dir, "abs.svg") {
		t.Errorf("absolute path was altered: %q", entries[1].Path)
	}
}
