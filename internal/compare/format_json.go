package compare

import (
	"encoding/json"
	"fmt"
	"strings"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(compSet, "", "  ")
	} else {
		data, err = json.Marshal(compSet)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Render formats compSet as "table", "csv" or "json"
func Render(compSet *ComparisonSet, format string, table *TableFormatter) (string, error) {
	switch strings.ToLower(format) {
	case "", "table", "console", "text":
		if table == nil {
			table = &TableFormatter{}
		}
		return table.Format(compSet), nil
	case "csv":
		return (&CSVFormatter{}).Format(compSet)
	case "json":
		return (&JSONFormatter{Pretty: true}).Format(compSet)
	default:
		return "", fmt.Errorf("unsupported comparison format: %s (use table, csv or json)", format)
	}
}
