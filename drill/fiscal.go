package drill

import "time"

// =============================================================================
// FISCAL YEAR - Oct 1 through Sep 30
// =============================================================================

// FiscalYearOf returns the fiscal year containing the date. October
// belongs to the NEXT fiscal year: Oct 1 2024 is FY2025.
func FiscalYearOf(date time.Time) int {
	if date.Month() >= time.October {
		return date.Year() + 1
	}
	return date.Year()
}

// FiscalYearBounds returns the inclusive start and end dates of a fiscal
// year: Oct 1 of the prior calendar year through Sep 30.
func FiscalYearBounds(fiscalYear int) (start, end time.Time) {
	start = time.Date(fiscalYear-1, time.October, 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(fiscalYear, time.September, 30, 0, 0, 0, 0, time.UTC)
	return start, end
}

// InFiscalYear reports whether the date falls inside the fiscal year.
func InFiscalYear(date time.Time, fiscalYear int) bool {
	return FiscalYearOf(date) == fiscalYear
}
