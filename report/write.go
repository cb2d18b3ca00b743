package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// WriteJSON writes the report as formatted JSON to the writer.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}

// SaveJSON persists the report to path. A failure here is the one fatal,
// propagating error of a run: every per-link failure is already recorded in
// the report itself.
func SaveJSON(path string, rep *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if err := WriteJSON(f, rep); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync report file %s: %w", path, err)
	}
	return nil
}

// WriteCSV writes every bucketed report entry as CSV to the writer, one row
// per link with its bucket in the category column. Always includes a header
// row, even when all buckets are empty.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)

	header := []string{"category", "url", "status", "error", "total_occurrences"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	buckets := []struct {
		name  string
		links []LinkInfo
	}{
		{"broken", rep.BrokenLinks},
		{"inactive", rep.InactiveLinks},
		{"error", rep.ErrorLinks},
		{"active", rep.ActiveLinksSample},
	}

	for _, b := range buckets {
		for _, link := range b.links {
			record := []string{
				b.name,
				link.URL,
				statusStr(link.Status),
				link.Error,
				strconv.Itoa(link.TotalOccurrences),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("write csv record for %s: %w", link.URL, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

// statusStr converts a nullable HTTP status to a string.
// Returns empty string when the status never resolved.
func statusStr(status *int) string {
	if status == nil {
		return ""
	}
	return strconv.Itoa(*status)
}
