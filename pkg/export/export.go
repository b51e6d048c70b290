// Package export writes resolved profile rows to delimited-text and JSON
// files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"igcollector/pkg/collector"
)

// columns is the row shape consumed by external rendering collaborators.
var columns = []string{
	"username", "full_name", "emails_count", "emails",
	"bio", "external_url", "is_private", "email_sources", "error",
}

// Row is one exported result row.
type Row struct {
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	EmailsCount  int    `json:"emails_count"`
	Emails       string `json:"emails"`
	Bio          string `json:"bio"`
	ExternalURL  string `json:"external_url"`
	IsPrivate    *bool  `json:"is_private"`
	EmailSources string `json:"email_sources"`
	Error        string `json:"error,omitempty"`
}

// RowFor maps a record to its export row. Email lists are joined with
// ", " the way the rendering collaborator expects them.
func RowFor(rec *collector.ProfileRecord) Row {
	return Row{
		Username:     rec.Username,
		FullName:     rec.FullName,
		EmailsCount:  rec.EmailsCount(),
		Emails:       strings.Join(rec.Emails, ", "),
		Bio:          rec.Bio,
		ExternalURL:  rec.ExternalURL,
		IsPrivate:    rec.IsPrivate,
		EmailSources: strings.Join(rec.EmailSources, ", "),
		Error:        rec.Error,
	}
}

// Manager writes result files into one output directory.
type Manager struct {
	outputDir string
}

// NewManager creates the output directory if needed.
func NewManager(outputDir string) (*Manager, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{outputDir: outputDir}, nil
}

// WriteCSV writes the records as <base>.csv and returns the file path.
func (m *Manager) WriteCSV(records []*collector.ProfileRecord, base string) (string, error) {
	path := filepath.Join(m.outputDir, base+".csv")
	return path, m.writeAtomically(path, func(f *os.File) error {
		w := csv.NewWriter(f)
		if err := w.Write(columns); err != nil {
			return err
		}
		for _, rec := range records {
			row := RowFor(rec)
			if err := w.Write([]string{
				row.Username,
				row.FullName,
				strconv.Itoa(row.EmailsCount),
				row.Emails,
				row.Bio,
				row.ExternalURL,
				formatPrivate(row.IsPrivate),
				row.EmailSources,
				row.Error,
			}); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}

// WriteJSON writes the records as <base>.json and returns the file path.
func (m *Manager) WriteJSON(records []*collector.ProfileRecord, base string) (string, error) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, RowFor(rec))
	}

	path := filepath.Join(m.outputDir, base+".json")
	return path, m.writeAtomically(path, func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	})
}

// writeAtomically writes through a temporary file so a failed export never
// leaves a truncated result behind.
func (m *Manager) writeAtomically(path string, write func(*os.File) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	werr := write(f)
	cerr := f.Close()
	if werr != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write export: %w", werr)
	}
	if cerr != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close export: %w", cerr)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to finalize export: %w", err)
	}
	return nil
}

// formatPrivate renders the tri-state privacy flag: empty when unknown.
func formatPrivate(p *bool) string {
	if p == nil {
		return ""
	}
	return strconv.FormatBool(*p)
}
