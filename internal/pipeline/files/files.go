package files

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/osbp/contract_insights/internal/logger"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// ReadTable loads a tabular source into a dataframe. Workbook exports are
// converted to CSV first; CSV files are decoded as Windows-1252 because that
// is what the agency export tooling emits.
func ReadTable(path string, appLogger *logger.Logger) (dataframe.DataFrame, error) {
	const component = "FileDecoder"

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		converted, err := ConvertWorkbookToCSV(path)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		appLogger.Info(component, "Workbook converted: source=%s csv=%s", path, converted)
		path = converted
	}

	file, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to open file %s: %v", path, err)
	}
	defer file.Close()

	decoded := charmap.Windows1252.NewDecoder().Reader(file)
	df := dataframe.ReadCSV(decoded, dataframe.WithLazyQuotes(true))
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("dataframe is empty")
	}

	return df, df.Error()
}

// ConvertWorkbookToCSV writes the first sheet of an xlsx workbook as a CSV
// next to the source file and returns the CSV path.
func ConvertWorkbookToCSV(xlsxPath string) (string, error) {
	wb, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return "", fmt.Errorf("failed to open workbook %s: %v", xlsxPath, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook %s has no sheets", xlsxPath)
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %s: %v", sheets[0], err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %s is empty", sheets[0])
	}

	csvPath := strings.TrimSuffix(xlsxPath, filepath.Ext(xlsxPath)) + ".csv"
	out, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	width := len(rows[0])
	for _, row := range rows {
		// Sheet rows come back ragged; pad to the header width.
		for len(row) < width {
			row = append(row, "")
		}
		if err := w.Write(row[:width]); err != nil {
			return "", err
		}
	}
	w.Flush()

	return csvPath, w.Error()
}

// WriteRecords writes a header plus rows as a CSV artifact.
func WriteRecords(header []string, rows [][]string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}

	// An empty cohort is a valid artifact: header only.
	if len(rows) == 0 {
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		defer out.Close()

		w := csv.NewWriter(out)
		if err := w.Write(header); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	records = append(records, rows...)

	df := dataframe.LoadRecords(records, dataframe.DefaultType(series.String), dataframe.DetectTypes(false))
	if df.Error() != nil {
		return fmt.Errorf("failed to build artifact dataframe for %s: %v", path, df.Error())
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	return df.WriteCSV(out)
}

// FindLatestFile returns the most recently modified regular file in dir whose
// name starts with prefix (any prefix when empty).
func FindLatestFile(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	latest := ""
	var latestMod time.Time
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if prefix != "" && !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestMod) {
			latest = filepath.Join(dir, e.Name())
			latestMod = info.ModTime()
		}
	}

	if latest == "" {
		return "", fmt.Errorf("no file matching prefix %q in %s", prefix, dir)
	}
	return latest, nil
}

// ArchiveFolderFiles moves every CSV artifact in dir into dir/archive so a
// fresh run never mixes with stale outputs.
func ArchiveFolderFiles(dir string, appLogger *logger.Logger) error {
	const component = "Archiver"

	archiveDir := filepath.Join(dir, "archive")
	if err := os.MkdirAll(archiveDir, os.ModePerm); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	moved := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		src := filepath.Join(dir, e.Name())
		dst := filepath.Join(archiveDir, e.Name())
		if err := os.Rename(src, dst); err != nil {
			appLogger.Warn(component, "Failed to archive file: file=%s error=%v", src, err)
			continue
		}
		moved++
	}

	appLogger.Info(component, "Archive pass completed: dir=%s movedFiles=%d", dir, moved)
	return nil
}

// AppendRunLog appends timestamped lines to the plain-text run log.
func AppendRunLog(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	stamp := time.Now().Format("2006-01-02 15:04:05")
	for _, line := range lines {
		if _, err := fmt.Fprintf(f, "%s %s\n", stamp, line); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(f)
	return err
}
