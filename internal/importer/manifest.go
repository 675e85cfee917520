package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ManifestEntry is one row of a source manifest: a file path and an
// optional caption override.
type ManifestEntry struct {
	Path    string
	Caption string
}

// ImportResult holds the results of a manifest import.
type ImportResult struct {
	Entries  []ManifestEntry
	Errors   []string
	Warnings []string
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"path":    {"path", "file", "filename", "file name", "source", "image", "svg"},
	"caption": {"caption", "label", "name", "title", "description"},
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Path    int
	Caption int
}

// DetectCSVDelimiter reads the file content and determines the most likely
// CSV delimiter. It tries comma, semicolon, tab, and pipe; the delimiter
// that produces the most consistent multi-column split wins. Single-column
// manifests (bare path lists) fall back to comma.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. It
// performs case-insensitive matching against known aliases for each
// column role. Returns the mapping and true if a header was detected, or
// a default positional mapping (path, caption) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Path: -1, Caption: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "path":
					if mapping.Path == -1 {
						mapping.Path = i
					}
				case "caption":
					if mapping.Caption == -1 {
						mapping.Caption = i
					}
				}
			}
		}
	}

	if !isHeader || mapping.Path == -1 {
		return ColumnMapping{Path: 0, Caption: 1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseEntry extracts a ManifestEntry from a row using the given column
// mapping. Returns the entry, any error message, and any warning message.
func parseEntry(row []string, mapping ColumnMapping, rowLabel string) (ManifestEntry, string, string) {
	path := getCell(row, mapping.Path)
	if path == "" {
		return ManifestEntry{}, fmt.Sprintf("%s: missing file path", rowLabel), ""
	}

	var warning string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg", ".dxf":
	default:
		warning = fmt.Sprintf("%s: %q has an unrecognized extension, treating as SVG", rowLabel, path)
	}

	return ManifestEntry{
		Path:    path,
		Caption: getCell(row, mapping.Caption),
	}, "", warning
}

// ImportCSV imports a source manifest from a CSV file. It automatically
// detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importFromReader(bytes.NewReader(data), delimiter, "Line", result.Warnings)
}

// ImportCSVFromReader imports a manifest from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already
// known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importFromReader(reader, delimiter, "Line", nil)
}

// ImportExcel imports a source manifest from an Excel (.xlsx) file. Reads
// the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromReader parses CSV records and hands them to importFromRows.
func importFromReader(reader io.Reader, delimiter rune, rowPrefix string, initialWarnings []string) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{
			Warnings: initialWarnings,
			Errors:   []string{fmt.Sprintf("Cannot read CSV: %v", err)},
		}
	}

	if len(records) == 0 {
		return ImportResult{
			Warnings: initialWarnings,
			Errors:   []string{"File is empty"},
		}
	}

	return importFromRows(records, rowPrefix, initialWarnings)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into entries.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg, warning := parseEntry(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Entries = append(result.Entries, entry)
	}

	return result
}

// LoadManifest imports a manifest by extension (.xlsx for Excel, anything
// else as CSV). Relative entry paths are resolved against the manifest
// file's directory.
func LoadManifest(path string) ([]ManifestEntry, ImportResult) {
	var result ImportResult
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		result = ImportExcel(path)
	} else {
		result = ImportCSV(path)
	}

	dir := filepath.Dir(path)
	entries := make([]ManifestEntry, 0, len(result.Entries))
	for _, e := range result.Entries {
		if !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(dir, e.Path)
		}
		entries = append(entries, e)
	}
	return entries, result
}
