/*
handlers.go - HTTP API handlers for the compensation engine

PURPOSE:
  Exposes the calculators and the LES ledger via REST. Handles HTTP
  request/response, JSON serialization, and DTO validation, then
  delegates to domain logic.

ENDPOINTS:
  Calculators:
    POST /api/calc/drill            Drill weekend pay
    POST /api/calc/at               Annual training / order pay
    POST /api/calc/compare-orders   Military vs civilian comparison

  Records:
    GET/POST        /api/records
    GET/PUT/DELETE  /api/records/{id}
    POST            /api/records/{id}/entitlements (+ deductions, allotments)
    DELETE          /api/records/{id}/entitlements/{lineID} (+ ...)
    GET             /api/records/{id}/validate

  Analysis:
    POST /api/comparisons           Diff two records (persisted)
    GET  /api/comparisons           Most recent first
    GET  /api/comparisons/latest
    DELETE /api/comparisons/{id}
    GET  /api/trends/{metric}?months=N

  Schedules:
    GET/POST       /api/schedules
    GET/DELETE     /api/schedules/{id}
    POST           /api/schedules/{id}/weekends
    DELETE         /api/schedules/{id}/weekends/{weekendID}
    POST           /api/schedules/{id}/weekends/{weekendID}/periods
    POST           /api/schedules/{id}/at-days

ERROR HANDLING:
  JSON envelope {"error": "..."} with:
  - 400: malformed JSON, failed DTO validation
  - 404: unknown record/comparison/schedule
  - 500: store failures

SEE ALSO:
  - dto.go: request structures and validation tags
  - server.go: router and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/scott198989/milpay-engine/drill"
	"github.com/scott198989/milpay-engine/les"
	"github.com/scott198989/milpay-engine/paycalc"
	"github.com/scott198989/milpay-engine/rates"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger   *les.Ledger
	Drill    drill.Store
	Rates    rates.Provider
	Logger   *zap.Logger
	validate *validator.Validate
}

func NewHandler(ledger *les.Ledger, drillStore drill.Store, rateProvider rates.Provider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Ledger:   ledger,
		Drill:    drillStore,
		Rates:    rateProvider,
		Logger:   logger,
		validate: validator.New(),
	}
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func (h *Handler) respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.Logger.Error("encode response", zap.Error(err))
		}
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respond(w, status, map[string]string{"error": msg})
}

// decode parses and validates a request body in one step.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

func (h *Handler) domainError(w http.ResponseWriter, err error) {
	switch {
	case les.IsNotFound(err) || err == drill.ErrScheduleNotFound:
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.Logger.Error("store failure", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// =============================================================================
// CALCULATORS
// =============================================================================

func (h *Handler) ComputeDrillPay(w http.ResponseWriter, r *http.Request) {
	var req DrillPayRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := paycalc.PayContext{
		Grade:          rates.PayGrade(req.PayGrade),
		YearsOfService: req.YearsOfService,
		Branch:         rates.Branch(req.Branch),
	}
	result := paycalc.ComputeDrillPay(ctx, h.Rates, paycalc.DrillPayParams{
		MUTACount:  req.MUTACount,
		IncludeBAH: req.IncludeBAH,
		BAHMonthly: req.BAHMonthly,
	})
	h.respond(w, http.StatusOK, result)
}

func (h *Handler) ComputeATPay(w http.ResponseWriter, r *http.Request) {
	var req ATPayRequest
	if !h.decode(w, r, &req) {
		return
	}
	ctx := paycalc.PayContext{
		Grade:          rates.PayGrade(req.PayGrade),
		YearsOfService: req.YearsOfService,
		Branch:         rates.Branch(req.Branch),
	}
	result := paycalc.ComputeATPay(ctx, h.Rates, paycalc.ATPayParams{
		Days:           req.Days,
		IncludeBAH:     req.IncludeBAH,
		BAHMonthly:     req.BAHMonthly,
		IncludeBAS:     req.IncludeBAS,
		IncludePerDiem: req.IncludePerDiem,
		PerDiemDaily:   req.PerDiemDaily,
	})
	h.respond(w, http.StatusOK, result)
}

func (h *Handler) CompareOrders(w http.ResponseWriter, r *http.Request) {
	var req CompareOrdersRequest
	if !h.decode(w, r, &req) {
		return
	}
	result := paycalc.CompareOrders(paycalc.CompareParams{
		MilitaryTotal:         req.MilitaryTotal,
		MilitaryTaxFree:       req.MilitaryTaxFree,
		CivilianDailyRate:     req.CivilianDailyRate,
		TotalDays:             req.TotalDays,
		HasDifferentialPolicy: req.HasDifferentialPolicy,
	})
	h.respond(w, http.StatusOK, result)
}

// =============================================================================
// RECORDS
// =============================================================================

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.Ledger.Records(r.Context())
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, records)
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var req CreateRecordRequest
	if !h.decode(w, r, &req) {
		return
	}
	saved, err := h.Ledger.AddRecord(r.Context(), req.toRecord())
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, saved)
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.Ledger.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, record)
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	var req UpdateRecordRequest
	if !h.decode(w, r, &req) {
		return
	}

	upd := les.RecordUpdate{IsVerified: req.IsVerified, Notes: req.Notes}
	if req.PayPeriod != nil {
		pp := req.PayPeriod.toPayPeriod()
		upd.PayPeriod = &pp
	}
	if req.Member != nil {
		m := les.MemberSnapshot{
			Name:           req.Member.Name,
			Grade:          req.Member.Grade,
			YearsOfService: req.Member.YearsOfService,
			Branch:         req.Member.Branch,
		}
		upd.Member = &m
	}
	if req.Entitlements != nil {
		lines := toEntitlements(*req.Entitlements)
		upd.Entitlements = &lines
	}
	if req.Deductions != nil {
		lines := toDeductions(*req.Deductions)
		upd.Deductions = &lines
	}
	if req.Allotments != nil {
		lines := toAllotments(*req.Allotments)
		upd.Allotments = &lines
	}
	if req.Leave != nil {
		leave := toLeave(*req.Leave)
		upd.Leave = &leave
	}

	updated, err := h.Ledger.UpdateRecord(r.Context(), chi.URLParam(r, "id"), upd)
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) ValidateRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.Ledger.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, les.Validate(record))
}

// =============================================================================
// LINE-ITEM SUB-MUTATORS
// =============================================================================

func (h *Handler) AddEntitlement(w http.ResponseWriter, r *http.Request) {
	var req EntitlementRequest
	if !h.decode(w, r, &req) {
		return
	}
	line := toEntitlements([]EntitlementRequest{req})[0]
	updated, err := h.Ledger.AddEntitlement(r.Context(), chi.URLParam(r, "id"), line)
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) RemoveEntitlement(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Ledger.RemoveEntitlement(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) AddDeduction(w http.ResponseWriter, r *http.Request) {
	var req DeductionRequest
	if !h.decode(w, r, &req) {
		return
	}
	line := toDeductions([]DeductionRequest{req})[0]
	updated, err := h.Ledger.AddDeduction(r.Context(), chi.URLParam(r, "id"), line)
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) RemoveDeduction(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Ledger.RemoveDeduction(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) AddAllotment(w http.ResponseWriter, r *http.Request) {
	var req AllotmentRequest
	if !h.decode(w, r, &req) {
		return
	}
	line := toAllotments([]AllotmentRequest{req})[0]
	updated, err := h.Ledger.AddAllotment(r.Context(), chi.URLParam(r, "id"), line)
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

func (h *Handler) RemoveAllotment(w http.ResponseWriter, r *http.Request) {
	updated, err := h.Ledger.RemoveAllotment(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

// =============================================================================
// COMPARISONS AND TRENDS
// =============================================================================

func (h *Handler) CompareRecords(w http.ResponseWriter, r *http.Request) {
	var req CompareRecordsRequest
	if !h.decode(w, r, &req) {
		return
	}
	comparison, err := h.Ledger.CompareRecords(r.Context(), req.PreviousID, req.CurrentID)
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, comparison)
}

func (h *Handler) ListComparisons(w http.ResponseWriter, r *http.Request) {
	comparisons, err := h.Ledger.Comparisons(r.Context())
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, comparisons)
}

func (h *Handler) LatestComparison(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.Ledger.LatestComparison(r.Context())
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, comparison)
}

func (h *Handler) DeleteComparison(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.DeleteComparison(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) GetTrend(w http.ResponseWriter, r *http.Request) {
	metric := les.Metric(chi.URLParam(r, "metric"))
	switch metric {
	case les.MetricGrossPay, les.MetricNetPay, les.MetricTotalDeductions:
	default:
		h.respondError(w, http.StatusBadRequest, "unknown metric: "+string(metric))
		return
	}

	months := 6
	if q := r.URL.Query().Get("months"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 {
			h.respondError(w, http.StatusBadRequest, "months must be a positive integer")
			return
		}
		months = parsed
	}

	series, err := h.Ledger.Trend(r.Context(), metric, months)
	if err == les.ErrInsufficientHistory {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, series)
}

// =============================================================================
// DRILL SCHEDULES
// =============================================================================

// ListSchedules returns all schedules, or a single one when the
// fiscal_year and branch query parameters are both present.
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	fyQ := r.URL.Query().Get("fiscal_year")
	branchQ := r.URL.Query().Get("branch")
	if fyQ != "" && branchQ != "" {
		fy, err := strconv.Atoi(fyQ)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "fiscal_year must be an integer")
			return
		}
		sched, err := h.Drill.ScheduleForYear(r.Context(), fy, rates.Branch(branchQ))
		if err != nil {
			h.domainError(w, err)
			return
		}
		h.respond(w, http.StatusOK, sched)
		return
	}

	schedules, err := h.Drill.Schedules(r.Context())
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, schedules)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if !h.decode(w, r, &req) {
		return
	}
	sched := drill.NewSchedule(req.FiscalYear, rates.Branch(req.Branch))
	if err := h.Drill.SaveSchedule(r.Context(), *sched); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, sched)
}

func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Drill.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, sched)
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	if err := h.Drill.DeleteSchedule(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusNoContent, nil)
}

func (h *Handler) AddWeekend(w http.ResponseWriter, r *http.Request) {
	var req AddWeekendRequest
	if !h.decode(w, r, &req) {
		return
	}
	sched, err := h.Drill.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	weekend := drill.NewWeekend(drill.EventType(req.EventType), req.StartDate, req.EndDate, req.MUTACount)
	sched.AddWeekend(weekend)
	if err := h.Drill.SaveSchedule(r.Context(), sched); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusCreated, sched)
}

func (h *Handler) RemoveWeekend(w http.ResponseWriter, r *http.Request) {
	sched, err := h.Drill.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	if !sched.RemoveWeekend(chi.URLParam(r, "weekendID")) {
		h.respondError(w, http.StatusNotFound, "weekend not found")
		return
	}
	if err := h.Drill.SaveSchedule(r.Context(), sched); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, sched)
}

func (h *Handler) SetPeriodStatus(w http.ResponseWriter, r *http.Request) {
	var req SetPeriodStatusRequest
	if !h.decode(w, r, &req) {
		return
	}
	sched, err := h.Drill.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	if !sched.SetPeriodStatus(chi.URLParam(r, "weekendID"), req.PeriodIndex, drill.Status(req.Status)) {
		h.respondError(w, http.StatusNotFound, "weekend or period not found")
		return
	}
	if err := h.Drill.SaveSchedule(r.Context(), sched); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, sched)
}

func (h *Handler) SetATDays(w http.ResponseWriter, r *http.Request) {
	var req SetATDaysRequest
	if !h.decode(w, r, &req) {
		return
	}
	sched, err := h.Drill.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.domainError(w, err)
		return
	}
	sched.SetATDays(req.Scheduled, req.Completed)
	if err := h.Drill.SaveSchedule(r.Context(), sched); err != nil {
		h.domainError(w, err)
		return
	}
	h.respond(w, http.StatusOK, sched)
}
