package report

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Per-project outcome labels. The branch-missing label keeps the exact
// wording of the historical reports so downstream consumers keep
// matching on it.
const (
	StatusFound         = "Found"
	StatusNotFound      = "Not Found"
	StatusBranchMissing = "Master branch not found"
	StatusError         = "Error"
)

// Header is the fixed 5-column schema of the search report.
var Header = []string{"Project", "Branch", "File", "Snippet", "Status"}

// Row is one report line. Absent fields stay empty strings, never
// omitted, so the report is uniformly tabular across all outcomes.
type Row struct {
	Project string
	Branch  string
	File    string
	Snippet string
	Status  string
}

func (r Row) record() []string {
	return []string{r.Project, r.Branch, r.File, r.Snippet, r.Status}
}

// Writer assembles the search report: header first, then rows in the
// order they are handed over. It is the only writer of the report
// file; workers never touch it directly.
type Writer struct {
	file *os.File
	csv  *csv.Writer
}

// NewWriter creates the report file and writes the header immediately,
// so even a run that fails before the first search leaves a readable,
// header-only report behind.
func NewWriter(path string) (*Writer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file %q: %w", path, err)
	}

	w := &Writer{file: file, csv: csv.NewWriter(file)}
	if err := w.csv.Write(Header); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write report header: %w", err)
	}
	w.csv.Flush()

	return w, w.csv.Error()
}

// Append writes the given rows to the report.
func (w *Writer) Append(rows []Row) error {
	for _, row := range rows {
		if err := w.csv.Write(row.record()); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

func (w *Writer) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
