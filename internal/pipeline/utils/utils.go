package utils

import "github.com/go-gota/gota/dataframe"

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// HasColumn reports whether the dataframe carries the named column.
func HasColumn(df *dataframe.DataFrame, col string) bool {
	if df == nil {
		return false
	}
	return containsString(df.Names(), col)
}

func GetStr(col string, rowIdx int, df *dataframe.DataFrame) string {
	if df == nil {
		return ""
	}

	if containsString(df.Names(), col) {
		v := df.Col(col).Elem(rowIdx).String()
		if v == "NaN" {
			return ""
		}
		return v
	}
	return ""
}

// GetStrAny returns the first named column that exists, so converters can
// accept both the raw source label and an already-renamed canonical label.
func GetStrAny(cols []string, rowIdx int, df *dataframe.DataFrame) string {
	for _, col := range cols {
		if HasColumn(df, col) {
			return GetStr(col, rowIdx, df)
		}
	}
	return ""
}
