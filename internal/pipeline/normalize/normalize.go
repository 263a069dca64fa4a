package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/osbp/contract_insights/internal/logger"
	"github.com/osbp/contract_insights/internal/pipeline/converter"
	"github.com/osbp/contract_insights/internal/pipeline/files"
	"github.com/osbp/contract_insights/internal/pipeline/types"
	"github.com/osbp/contract_insights/internal/pipeline/utils"
)

const microPurchaseThreshold = 10000.0

// requiredColumns per source shape. A missing required column aborts the
// whole extract; there is no partial-success mode.
var requiredColumns = map[types.Source][]string{
	types.SourceACCRI: {
		"Contract No",
		"Award Date",
		"NAICS",
	},
	types.SourceArmy: {
		"Contract No",
		"Contract Action Type",
		"NAICS",
	},
}

var sizeStatusColumns = []string{"Small Business Actions", "Size Status"}
var sbDollarsColumns = []string{"Small Business Dollars", "SB Dollars"}

// Run maps one raw extract dataframe into canonical records. Empty and
// duplicate rows are dropped first, then each surviving row is converted and
// source-specific exclusions are applied.
func Run(df dataframe.DataFrame, src types.Source, now time.Time, appLogger *logger.Logger) ([]types.ContractRecord, error) {
	const component = "Normalizer"

	if err := checkRequiredColumns(df, src); err != nil {
		return nil, err
	}

	cleaned := dropEmptyAndDuplicates(df)
	appLogger.Info(component, "Raw extract cleaned: source=%s rawRows=%d cleanRows=%d", types.SourceNames[src], df.Nrow(), cleaned.Nrow())

	records := make([]types.ContractRecord, 0, cleaned.Nrow())
	dropped := 0
	for i := 0; i < cleaned.Nrow(); i++ {
		record := converter.DfRowToContractRecord(cleaned, i, src, now)

		if src == types.SourceArmy && shouldDropArmyRow(record) {
			dropped++
			continue
		}

		records = append(records, record)
	}

	appLogger.Info(component, "Normalization completed: source=%s canonicalRows=%d droppedRows=%d", types.SourceNames[src], len(records), dropped)
	return records, nil
}

// shouldDropArmyRow applies the source B exclusions: modifications and
// umbrella vehicles are not tracked awards, and other-than-small actions
// under the micro-purchase threshold are noise.
func shouldDropArmyRow(record types.ContractRecord) bool {
	if types.IsExcludedActionType(record.ContractActionType) {
		return true
	}
	if record.SizeStatus == types.SizeStatusOTSB && record.SBDollars < microPurchaseThreshold {
		return true
	}
	return false
}

func checkRequiredColumns(df dataframe.DataFrame, src types.Source) error {
	for _, col := range requiredColumns[src] {
		if !utils.HasColumn(&df, col) {
			return fmt.Errorf("required column %q missing from %s extract", col, types.SourceNames[src])
		}
	}

	if !hasAnyColumn(df, sizeStatusColumns) {
		return fmt.Errorf("required column %q missing from %s extract", "Small Business Actions", types.SourceNames[src])
	}
	if !hasAnyColumn(df, sbDollarsColumns) {
		return fmt.Errorf("required column %q missing from %s extract", "Small Business Dollars", types.SourceNames[src])
	}
	return nil
}

func hasAnyColumn(df dataframe.DataFrame, cols []string) bool {
	for _, col := range cols {
		if utils.HasColumn(&df, col) {
			return true
		}
	}
	return false
}

// dropEmptyAndDuplicates removes fully-empty rows and columns, then exact
// duplicate rows, preserving first-seen order.
func dropEmptyAndDuplicates(df dataframe.DataFrame) dataframe.DataFrame {
	records := df.Records()
	if len(records) < 2 {
		return df
	}

	header := records[0]
	body := records[1:]

	// Columns with no value in any row.
	keepCol := make([]bool, len(header))
	for c := range header {
		for _, row := range body {
			if c < len(row) && !isEmptyCell(row[c]) {
				keepCol[c] = true
				break
			}
		}
	}

	out := [][]string{filterRow(header, keepCol)}
	seen := make(map[string]bool, len(body))
	for _, row := range body {
		filtered := filterRow(row, keepCol)

		empty := true
		for _, v := range filtered {
			if !isEmptyCell(v) {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		key := strings.Join(filtered, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, filtered)
	}

	return dataframe.LoadRecords(out, dataframe.DefaultType(series.String), dataframe.DetectTypes(false))
}

func isEmptyCell(v string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == "NaN"
}

func filterRow(row []string, keep []bool) []string {
	out := make([]string, 0, len(row))
	for i, v := range row {
		if i < len(keep) && keep[i] {
			out = append(out, v)
		}
	}
	return out
}

// WriteArtifact persists canonical records as the durable table artifact.
func WriteArtifact(records []types.ContractRecord, path string) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return files.WriteRecords(types.CanonicalColumns, rows, path)
}
