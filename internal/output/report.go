package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fdtrack/valuation/internal/domain"
)

// FormatAll expands to every registered formatter in GenerateReportFiles.
const FormatAll = "all"

// GenerateReport renders report in the named format to w.
func GenerateReport(w io.Writer, report *domain.Report, format string) error {
	f, err := ResolveFormatter(format)
	if err != nil {
		return err
	}
	return WriteFormatted(w, f, report)
}

// GenerateReportFiles writes one report file per format into dir and returns
// the paths written. "all" selects every registered formatter.
func GenerateReportFiles(dir string, report *domain.Report, formats ...string) ([]string, error) {
	var selected []Formatter
	for _, name := range formats {
		if NormalizeFormatName(name) == FormatAll {
			selected = append(selected, builtInFormatters...)
			continue
		}
		f, err := ResolveFormatter(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, f)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	var paths []string
	seen := map[string]bool{}
	for _, f := range selected {
		if seen[f.Name()] {
			continue
		}
		seen[f.Name()] = true
		path, err := WriteReportFile(dir, f, report)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
