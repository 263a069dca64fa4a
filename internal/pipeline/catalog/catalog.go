package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/osbp/contract_insights/internal/logger"
	"github.com/osbp/contract_insights/internal/pipeline/files"
	"github.com/osbp/contract_insights/internal/pipeline/utils"
)

// Reference workbook base names inside the reference folder. Either a .csv or
// an .xlsx variant may be present; xlsx wins only when no csv exists.
const (
	SizeStandardsFile = "naics_size_standards"
	WOSBFile          = "wosb_eligible_naics"
	NMRWaiversFile    = "nmr_waivers"
	ForecastFile      = "forecast_listing"
	HyperlinksFile    = "pcf_hyperlinks"
)

// SizeStandard is one row of the SBA size-standard table. Thresholds are kept
// as the table's display strings; exactly one of the two is normally set.
type SizeStandard struct {
	Millions  string
	Employees string
}

// Set bundles every reference catalog, loaded once per batch and treated as
// immutable afterwards. All NAICS keys are normalized to 6 characters.
type Set struct {
	SizeStandards map[string]SizeStandard
	WOSB          map[string]string
	NMRWaivers    map[string]string
	Forecast      map[string]string
	OrderLinks    map[string]string
	ContractLinks map[string]string
}

// Load reads every catalog from the reference folder. A missing catalog file
// is fatal for the run.
func Load(refDir string, appLogger *logger.Logger) (*Set, error) {
	const component = "CatalogLoader"

	set := &Set{}

	sizeDf, err := readCatalog(refDir, SizeStandardsFile, appLogger)
	if err != nil {
		return nil, err
	}
	set.SizeStandards = SizeStandardsFromDf(sizeDf)

	wosbDf, err := readCatalog(refDir, WOSBFile, appLogger)
	if err != nil {
		return nil, err
	}
	set.WOSB = WOSBFromDf(wosbDf)

	nmrDf, err := readCatalog(refDir, NMRWaiversFile, appLogger)
	if err != nil {
		return nil, err
	}
	set.NMRWaivers = NMRWaiversFromDf(nmrDf)

	forecastDf, err := readCatalog(refDir, ForecastFile, appLogger)
	if err != nil {
		return nil, err
	}
	set.Forecast = ForecastFromDf(forecastDf)

	linksDf, err := readCatalog(refDir, HyperlinksFile, appLogger)
	if err != nil {
		return nil, err
	}
	set.OrderLinks, set.ContractLinks = HyperlinksFromDf(linksDf)

	appLogger.Info(component, "Catalogs loaded: sizeStandards=%d wosb=%d nmrWaivers=%d forecast=%d links=%d",
		len(set.SizeStandards), len(set.WOSB), len(set.NMRWaivers), len(set.Forecast), len(set.OrderLinks)+len(set.ContractLinks))
	return set, nil
}

func readCatalog(refDir, baseName string, appLogger *logger.Logger) (dataframe.DataFrame, error) {
	for _, ext := range []string{".csv", ".xlsx"} {
		path := filepath.Join(refDir, baseName+ext)
		if _, err := os.Stat(path); err == nil {
			return files.ReadTable(path, appLogger)
		}
	}
	return dataframe.DataFrame{}, fmt.Errorf("reference catalog %s not found in %s", baseName, refDir)
}

// SizeStandardsFromDf keys the SBA size-standard table by 6-character NAICS.
func SizeStandardsFromDf(df dataframe.DataFrame) map[string]SizeStandard {
	out := make(map[string]SizeStandard, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		naics := utils.NormalizeNAICS(utils.GetStr("NAICS Codes", i, &df))
		if naics == "" {
			continue
		}
		out[naics] = SizeStandard{
			Millions:  cleanValue(utils.GetStr("Size standards in millions of dollars", i, &df)),
			Employees: cleanValue(utils.GetStr("Size standards in number of employees", i, &df)),
		}
	}
	return out
}

// WOSBFromDf maps NAICS to its WOSB/EDWOSB set-aside class.
func WOSBFromDf(df dataframe.DataFrame) map[string]string {
	out := make(map[string]string, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		naics := utils.NormalizeNAICS(utils.GetStr("NAICS Code", i, &df))
		if naics == "" {
			continue
		}
		out[naics] = cleanValue(utils.GetStr("Set-aside", i, &df))
	}
	return out
}

// NMRWaiversFromDf maps NAICS to the waived-industry descriptor.
func NMRWaiversFromDf(df dataframe.DataFrame) map[string]string {
	out := make(map[string]string, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		naics := utils.NormalizeNAICS(utils.GetStr("NAICS CODE", i, &df))
		if naics == "" {
			continue
		}
		out[naics] = cleanValue(utils.GetStr("NAICS DESCRIPTOR", i, &df))
	}
	return out
}

// ForecastFromDf maps a follow-on contract number to its forecast cabinet.
func ForecastFromDf(df dataframe.DataFrame) map[string]string {
	out := make(map[string]string, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		contract := cleanValue(utils.GetStr("FOLLOWON CONTRACT", i, &df))
		if contract == "" {
			continue
		}
		out[contract] = cleanValue(utils.GetStr("VCE-PCF Cabinet Name", i, &df))
	}
	return out
}

// HyperlinksFromDf maps order and contract identifiers to PCF access links.
// Order links take precedence at lookup time; both maps are returned.
func HyperlinksFromDf(df dataframe.DataFrame) (orderLinks, contractLinks map[string]string) {
	orderLinks = make(map[string]string, df.Nrow())
	contractLinks = make(map[string]string, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		link := cleanValue(utils.GetStr("PCF Access", i, &df))
		if link == "" {
			continue
		}
		if order := cleanValue(utils.GetStr("Order", i, &df)); order != "" {
			orderLinks[order] = link
		}
		if contract := cleanValue(utils.GetStr("Contract", i, &df)); contract != "" {
			contractLinks[contract] = link
		}
	}
	return orderLinks, contractLinks
}

func cleanValue(v string) string {
	if v == "NaN" {
		return ""
	}
	return v
}
