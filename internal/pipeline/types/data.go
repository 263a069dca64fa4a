package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type Source int

const (
	SourceACCRI Source = iota
	SourceArmy
)

var SourceNames = map[Source]string{
	SourceACCRI: "acc_ri",
	SourceArmy:  "army",
}

// SourceFromPath resolves which extract shape a file carries based on the
// source token embedded in its name.
func SourceFromPath(path string) (Source, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.Contains(lower, "army"):
		return SourceArmy, nil
	case strings.Contains(lower, "acc_ri"):
		return SourceACCRI, nil
	default:
		return 0, fmt.Errorf("cannot determine source shape from path %s", path)
	}
}

// CanonicalColumns is the header of the canonical table artifact. Order is
// stable across runs so downstream diffs stay meaningful.
var CanonicalColumns = []string{
	"Contract No",
	"Order No",
	"Modification No",
	"Award Date",
	"Effective Date",
	"Expiration",
	"Months Remaining",
	"Contract Type",
	"Contract Action Type",
	"NAICS",
	"Requirements Description",
	"Place of Performance",
	"Type Set Aside Description",
	"Size Status",
	"SB Dollars",
	"Awardee",
	"SDB Concern Actions",
	"Service Disabled Veterans Actions",
	"Women Owned Actions",
	"HUB Zone Actions",
	"NAICS Description",
	"PSC Description",
	"OMB Level 1",
	"OMB Level 2",
}

const (
	SizeStatusSB   = "SB"
	SizeStatusOTSB = "OTSB"

	NoSetAsideUsed = "NO SET ASIDE USED"
)

// ExcludedActionTypes are contract action types that never count as new
// awards: modifications and task-order umbrella vehicles.
var ExcludedActionTypes = []string{"MODIFICATION", "SATOC", "MATOC"}

func IsExcludedActionType(actionType string) bool {
	upper := strings.ToUpper(strings.TrimSpace(actionType))
	for _, t := range ExcludedActionTypes {
		if upper == t {
			return true
		}
	}
	return false
}

// ContractRecord is one row of the canonical table. Dates use the zero
// time.Time as the null value; MonthsRemaining is only meaningful when
// HasMonthsRemaining reports true.
type ContractRecord struct {
	ContractNo              string
	OrderNo                 string
	ModificationNo          string
	AwardDate               time.Time
	EffectiveDate           time.Time
	ExpirationDate          time.Time
	MonthsRemaining         int
	ContractType            string
	ContractActionType      string
	NAICS                   string
	RequirementsDescription string
	PlaceOfPerformance      string
	SetAsideDescription     string
	SizeStatus              string
	SBDollars               float64
	Awardee                 string

	SDBActions     int
	SDVOSBActions  int
	WOSBActions    int
	HUBZoneActions int

	NAICSDescription string
	PSCDescription   string
	OMBLevel1        string
	OMBLevel2        string

	Source Source
}

func (r ContractRecord) HasMonthsRemaining() bool {
	return !r.ExpirationDate.IsZero()
}

func (r ContractRecord) IsSmallBusiness() bool {
	return r.SizeStatus == SizeStatusSB
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// Row serializes the record into the canonical artifact column order.
func (r ContractRecord) Row() []string {
	months := ""
	if r.HasMonthsRemaining() {
		months = strconv.Itoa(r.MonthsRemaining)
	}

	return []string{
		r.ContractNo,
		r.OrderNo,
		r.ModificationNo,
		formatDate(r.AwardDate),
		formatDate(r.EffectiveDate),
		formatDate(r.ExpirationDate),
		months,
		r.ContractType,
		r.ContractActionType,
		r.NAICS,
		r.RequirementsDescription,
		r.PlaceOfPerformance,
		r.SetAsideDescription,
		r.SizeStatus,
		strconv.FormatFloat(r.SBDollars, 'f', 2, 64),
		r.Awardee,
		strconv.Itoa(r.SDBActions),
		strconv.Itoa(r.SDVOSBActions),
		strconv.Itoa(r.WOSBActions),
		strconv.Itoa(r.HUBZoneActions),
		r.NAICSDescription,
		r.PSCDescription,
		r.OMBLevel1,
		r.OMBLevel2,
	}
}
