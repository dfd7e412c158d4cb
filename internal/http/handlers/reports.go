package handlers

import (
	"net/http"
	"time"

	"adisyon-report-service/internal/middleware"
	"adisyon-report-service/internal/report"
	"adisyon-report-service/pkg/response"
)

// ReportSummary serves GET /api/reports/summary: totals, the canceled
// bucket and the channel/payment breakdowns for the requested day or span.
func (h *Handler) ReportSummary(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, false)
}

// ReportCouriers serves GET /api/reports/couriers: the summary plus the
// per-courier delivery timelines and next-pickup wait metrics.
func (h *Handler) ReportCouriers(w http.ResponseWriter, r *http.Request) {
	h.serveReport(w, r, true)
}

func (h *Handler) serveReport(w http.ResponseWriter, r *http.Request, courierMetrics bool) {
	ctx := r.Context()
	authCtx, ok := middleware.GetAuthContext(ctx)
	if !ok {
		response.Error(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization required")
		return
	}

	branchID, err := resolveBranchID(r, authCtx)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "BRANCH_REQUIRED", "Branch ID is required")
		return
	}

	req, err := ParseReportingRequest(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	opts := EngineOptions(h.Config, courierMetrics)
	interval := report.BuildRange(req, opts.Location)

	records, err := h.Orders.ListOrders(ctx, branchID, interval)
	if err != nil {
		h.Logger.Error("order query failed", zapError(err))
		response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch orders")
		return
	}

	summary := report.ClassifyAndAggregate(records, req, opts)

	response.SuccessWith(w, summary, map[string]any{
		"request": req,
		"dateRange": map[string]string{
			"start": interval.Start.Format(time.RFC3339),
			"end":   interval.End.Format(time.RFC3339),
		},
	})
}

type requestError struct {
	message string
}

func (e *requestError) Error() string {
	return e.message
}

// ParseReportingRequest validates query params into an immutable request
// value. The engine itself never validates (an inverted range just matches
// nothing), so rejecting nonsense input with a 400 happens here.
func ParseReportingRequest(r *http.Request) (report.ReportingRequest, error) {
	query := r.URL.Query()

	req := report.ReportingRequest{
		Mode:      report.Mode(query.Get("mode")),
		DailyDate: query.Get("date"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
		StartTime: query.Get("startTime"),
		EndTime:   query.Get("endTime"),
	}

	if (req.StartTime == "") != (req.EndTime == "") {
		return report.ReportingRequest{}, &requestError{message: "startTime and endTime must be given together"}
	}
	for _, clock := range []string{req.StartTime, req.EndTime} {
		if clock == "" {
			continue
		}
		if _, err := time.Parse("15:04", clock); err != nil {
			return report.ReportingRequest{}, &requestError{message: "Invalid time, expected HH:mm"}
		}
	}

	switch req.Mode {
	case report.ModeDaily:
		if _, err := time.Parse("2006-01-02", req.DailyDate); err != nil {
			return report.ReportingRequest{}, &requestError{message: "Invalid date, expected YYYY-MM-DD"}
		}
	case report.ModeRange:
		start, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return report.ReportingRequest{}, &requestError{message: "Invalid startDate, expected YYYY-MM-DD"}
		}
		end, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return report.ReportingRequest{}, &requestError{message: "Invalid endDate, expected YYYY-MM-DD"}
		}
		if start.After(end) {
			return report.ReportingRequest{}, &requestError{message: "startDate must not be after endDate"}
		}
	default:
		return report.ReportingRequest{}, &requestError{message: "mode must be daily or range"}
	}

	return req, nil
}
