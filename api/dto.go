/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON structures for the HTTP boundary. These decouple the internal
  domain model from the external contract and carry the validation tags
  the engine itself deliberately omits: the core coerces bad numbers to
  zero, so anything that SHOULD be rejected is rejected here, above it.

NAMING CONVENTION:
  - *Request: request body types from clients
  - Responses reuse domain types directly where they are already
    JSON-shaped (results, reports, series)

SEE ALSO:
  - handlers.go: parsing, validation, and domain calls
*/
package api

import (
	"time"

	"github.com/scott198989/milpay-engine/les"
)

// =============================================================================
// CALCULATOR REQUESTS
// =============================================================================

type DrillPayRequest struct {
	PayGrade       string  `json:"pay_grade" validate:"required"`
	YearsOfService int     `json:"years_of_service" validate:"min=0"`
	Branch         string  `json:"branch"`
	MUTACount      int     `json:"muta_count" validate:"required,min=1,max=8"`
	IncludeBAH     bool    `json:"include_bah"`
	BAHMonthly     float64 `json:"bah_monthly" validate:"min=0"`
}

type ATPayRequest struct {
	PayGrade       string  `json:"pay_grade" validate:"required"`
	YearsOfService int     `json:"years_of_service" validate:"min=0"`
	Branch         string  `json:"branch"`
	Days           int     `json:"days" validate:"required,min=1,max=365"`
	IncludeBAH     bool    `json:"include_bah"`
	BAHMonthly     float64 `json:"bah_monthly" validate:"min=0"`
	IncludeBAS     bool    `json:"include_bas"`
	IncludePerDiem bool    `json:"include_per_diem"`
	PerDiemDaily   float64 `json:"per_diem_daily" validate:"min=0"`
}

type CompareOrdersRequest struct {
	MilitaryTotal         float64 `json:"military_total" validate:"min=0"`
	MilitaryTaxFree       float64 `json:"military_tax_free" validate:"min=0"`
	CivilianDailyRate     float64 `json:"civilian_daily_rate" validate:"min=0"`
	TotalDays             int     `json:"total_days" validate:"required,min=1"`
	HasDifferentialPolicy bool    `json:"has_differential_policy"`
}

// =============================================================================
// RECORD REQUESTS
// =============================================================================

type PayPeriodRequest struct {
	Type      string    `json:"type" validate:"required,oneof=mid_month end_of_month"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	PayDate   time.Time `json:"pay_date" validate:"required"`
	Month     int       `json:"month" validate:"required,min=1,max=12"`
	Year      int       `json:"year" validate:"required,min=2000"`
}

type EntitlementRequest struct {
	Type        string  `json:"type" validate:"required,oneof=base_pay drill_pay bah bas hazardous_duty special_duty hostile_fire bonus other"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"min=0"`
	YTDAmount   float64 `json:"ytd_amount" validate:"min=0"`
	Taxable     bool    `json:"taxable"`
	Note        string  `json:"note"`
}

type DeductionRequest struct {
	Type        string  `json:"type" validate:"required,oneof=federal_tax state_tax fica_soc_security fica_medicare sgli dental tsp other"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"min=0"`
	YTDAmount   float64 `json:"ytd_amount" validate:"min=0"`
	Mandatory   bool    `json:"mandatory"`
	Note        string  `json:"note"`
}

type AllotmentRequest struct {
	Type        string  `json:"type" validate:"required,oneof=savings insurance dependent charity other"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"min=0"`
	Note        string  `json:"note"`
}

type LeaveBalanceRequest struct {
	Type    string  `json:"type" validate:"required"`
	Balance float64 `json:"balance"`
	Earned  float64 `json:"earned" validate:"min=0"`
	Used    float64 `json:"used" validate:"min=0"`
}

type CreateRecordRequest struct {
	PayPeriod    PayPeriodRequest      `json:"pay_period" validate:"required"`
	Member       MemberRequest         `json:"member"`
	Entitlements []EntitlementRequest  `json:"entitlements" validate:"dive"`
	Deductions   []DeductionRequest    `json:"deductions" validate:"dive"`
	Allotments   []AllotmentRequest    `json:"allotments" validate:"dive"`
	Leave        []LeaveBalanceRequest `json:"leave" validate:"dive"`
	Notes        string                `json:"notes"`
}

type MemberRequest struct {
	Name           string `json:"name"`
	Grade          string `json:"grade"`
	YearsOfService int    `json:"years_of_service" validate:"min=0"`
	Branch         string `json:"branch"`
}

// UpdateRecordRequest carries a partial update; absent fields stay
// untouched. Line-item lists are FULL replacements, never deltas.
type UpdateRecordRequest struct {
	PayPeriod    *PayPeriodRequest      `json:"pay_period"`
	Member       *MemberRequest         `json:"member"`
	Entitlements *[]EntitlementRequest  `json:"entitlements" validate:"omitempty,dive"`
	Deductions   *[]DeductionRequest    `json:"deductions" validate:"omitempty,dive"`
	Allotments   *[]AllotmentRequest    `json:"allotments" validate:"omitempty,dive"`
	Leave        *[]LeaveBalanceRequest `json:"leave" validate:"omitempty,dive"`
	IsVerified   *bool                  `json:"is_verified"`
	Notes        *string                `json:"notes"`
}

type CompareRecordsRequest struct {
	PreviousID string `json:"previous_id" validate:"required"`
	CurrentID  string `json:"current_id" validate:"required"`
}

// =============================================================================
// DRILL SCHEDULE REQUESTS
// =============================================================================

type CreateScheduleRequest struct {
	FiscalYear int    `json:"fiscal_year" validate:"required,min=2000"`
	Branch     string `json:"branch" validate:"required"`
}

type AddWeekendRequest struct {
	EventType string    `json:"event_type" validate:"required,oneof=drill_weekend annual_training additional_duty"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	MUTACount int       `json:"muta_count" validate:"required,min=1,max=8"`
}

type SetPeriodStatusRequest struct {
	PeriodIndex int    `json:"period_index" validate:"min=0"`
	Status      string `json:"status" validate:"required,oneof=scheduled completed excused unexcused rescheduled cancelled"`
}

type SetATDaysRequest struct {
	Scheduled int `json:"scheduled" validate:"min=0"`
	Completed int `json:"completed" validate:"min=0"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func (r CreateRecordRequest) toRecord() les.Record {
	rec := les.Record{
		PayPeriod: r.PayPeriod.toPayPeriod(),
		Member: les.MemberSnapshot{
			Name:           r.Member.Name,
			Grade:          r.Member.Grade,
			YearsOfService: r.Member.YearsOfService,
			Branch:         r.Member.Branch,
		},
		Notes:       r.Notes,
		EntryMethod: les.EntryManual,
	}
	rec.Entitlements = toEntitlements(r.Entitlements)
	rec.Deductions = toDeductions(r.Deductions)
	rec.Allotments = toAllotments(r.Allotments)
	rec.Leave = toLeave(r.Leave)
	return rec
}

func (p PayPeriodRequest) toPayPeriod() les.PayPeriod {
	return les.PayPeriod{
		Type:      les.PayPeriodType(p.Type),
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		PayDate:   p.PayDate,
		Month:     p.Month,
		Year:      p.Year,
	}
}

func toEntitlements(in []EntitlementRequest) []les.EntitlementLine {
	out := make([]les.EntitlementLine, len(in))
	for i, e := range in {
		out[i] = les.EntitlementLine{
			Type:        les.EntitlementType(e.Type),
			Description: e.Description,
			Amount:      e.Amount,
			YTDAmount:   e.YTDAmount,
			Taxable:     e.Taxable,
			Note:        e.Note,
		}
	}
	return out
}

func toDeductions(in []DeductionRequest) []les.DeductionLine {
	out := make([]les.DeductionLine, len(in))
	for i, d := range in {
		out[i] = les.DeductionLine{
			Type:        les.DeductionType(d.Type),
			Description: d.Description,
			Amount:      d.Amount,
			YTDAmount:   d.YTDAmount,
			Mandatory:   d.Mandatory,
			Note:        d.Note,
		}
	}
	return out
}

func toAllotments(in []AllotmentRequest) []les.AllotmentLine {
	out := make([]les.AllotmentLine, len(in))
	for i, a := range in {
		out[i] = les.AllotmentLine{
			Type:        les.AllotmentType(a.Type),
			Description: a.Description,
			Amount:      a.Amount,
			Note:        a.Note,
		}
	}
	return out
}

func toLeave(in []LeaveBalanceRequest) []les.LeaveBalance {
	out := make([]les.LeaveBalance, len(in))
	for i, l := range in {
		out[i] = les.LeaveBalance{
			Type:    les.LeaveType(l.Type),
			Balance: l.Balance,
			Earned:  l.Earned,
			Used:    l.Used,
		}
	}
	return out
}
