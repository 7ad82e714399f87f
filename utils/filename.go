package utils

import (
	"fmt"
	"strings"
)

// ExportFilename builds the download filename for a payments export,
// encoding the active filters so the saved file is self-describing, e.g.
// payments_2024-01-01_2024-01-31_success.xlsx.
func ExportFilename(format string, dateRange *DateRange, status string) string {
	parts := []string{"payments"}
	if dateRange != nil {
		parts = append(parts, dateRange.Start.Format(DateLayout), dateRange.End.Format(DateLayout))
	} else {
		parts = append(parts, "all")
	}
	if status != "" {
		parts = append(parts, strings.ToLower(status))
	}
	return fmt.Sprintf("%s.%s", strings.Join(parts, "_"), exportExtension(format))
}

func exportExtension(format string) string {
	switch strings.ToLower(format) {
	case "excel", "xlsx":
		return "xlsx"
	case "pdf":
		return "pdf"
	default:
		return "csv"
	}
}
