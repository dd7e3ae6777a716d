package report

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

type CSVExporter struct {
	OutputDir string
}

func NewCSVExporter(outputDir string) *CSVExporter {
	return &CSVExporter{OutputDir: outputDir}
}

// Export writes table to <name>.csv in the output directory, replacing any
// previous run's file.
func (e *CSVExporter) Export(name string, table Table) (string, error) {
	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create output directory", goerr.V("dir", e.OutputDir))
	}

	filename := filepath.Join(e.OutputDir, name+".csv")
	file, err := os.Create(filename)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create csv file", goerr.V("file", filename))
	}
	defer file.Close()

	if err := WriteCSV(file, table); err != nil {
		return "", goerr.Wrap(err, "failed to write csv table", goerr.V("file", filename))
	}

	return filename, nil
}

// WriteCSV writes a header of "Week" plus the column names, then one row per week.
func WriteCSV(w io.Writer, table Table) error {
	writer := csv.NewWriter(w)

	header := append([]string{"Week"}, table.Columns...)
	if err := writer.Write(header); err != nil {
		return err
	}

	labels := table.Labels()
	for i := range table.Weeks {
		row := []string{labels[i]}
		for _, n := range table.Counts[i] {
			row = append(row, strconv.Itoa(n))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
