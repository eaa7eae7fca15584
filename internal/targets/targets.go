// Package targets reads audit target lists from text, CSV and Excel files or
// from inline text.
package targets

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoTargets is returned when a source yields no targets.
var ErrNoTargets = errors.New("no targets")

// headerCells are first-column values treated as a header row in tabular files.
var headerCells = map[string]struct{}{
	"url":     {},
	"urls":    {},
	"website": {},
	"domain":  {},
	"target":  {},
}

// ReadFile reads targets from path, choosing the format by extension:
// .csv and .xlsx use the first column, anything else is one target per line.
// limit <= 0 means no limit.
func ReadFile(path string, limit int) ([]string, error) {
	var (
		out []string
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		out, err = readCSV(path)
	case ".xlsx":
		out, err = readXLSX(path)
	default:
		out, err = readLines(path)
	}
	if err != nil {
		return nil, err
	}

	return finish(out, limit, path)
}

// ParseInline splits newline-delimited text into targets.
func ParseInline(text string, limit int) ([]string, error) {
	out, err := scanLines(strings.NewReader(text))
	if err != nil {
		return nil, err
	}
	return finish(out, limit, "inline text")
}

// Resolve returns pathOrName when it exists, otherwise fallbackDir/pathOrName.
func Resolve(pathOrName, fallbackDir string) (string, error) {
	if _, err := os.Stat(pathOrName); err == nil {
		return pathOrName, nil
	}

	if fallbackDir != "" && !filepath.IsAbs(pathOrName) {
		candidate := filepath.Join(fallbackDir, pathOrName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("targets file not found: %s", pathOrName)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets: %w", err)
	}
	defer f.Close()

	return scanLines(f)
}

func scanLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read targets: %w", err)
	}
	return out, nil
}

func readCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, readErr := r.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("parse csv targets: %w", readErr)
		}
		rows = append(rows, rec)
	}
	return firstColumn(rows), nil
}

func readXLSX(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx targets: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return firstColumn(rows), nil
}

func firstColumn(rows [][]string) []string {
	var out []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" {
			continue
		}
		if i == 0 {
			if _, header := headerCells[strings.ToLower(cell)]; header {
				continue
			}
		}
		out = append(out, cell)
	}
	return out
}

func finish(out []string, limit int, source string) ([]string, error) {
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoTargets, source)
	}
	return out, nil
}
