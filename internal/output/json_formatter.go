package output

import (
	"encoding/json"

	"github.com/fdtrack/valuation/internal/domain"
)

// JSONFormatter serializes the report as pretty-printed JSON. Amounts are
// emitted unrounded, as decimal strings.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
