package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/staffhub/staffhub-backend-go/internal/domain/report"
	"github.com/staffhub/staffhub-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceReport(w http.ResponseWriter, r *http.Request)
	AttendanceReportCSV(w http.ResponseWriter, r *http.Request)
	LeaveReport(w http.ResponseWriter, r *http.Request)
	LeaveReportCSV(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func attendanceReportFilter(r *http.Request) *report.AttendanceReportFilter {
	return &report.AttendanceReportFilter{
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
		EmployeeID: queryString(r, "employee_id"),
	}
}

// AttendanceReport implements ReportHandler.
func (h *reportHandlerImpl) AttendanceReport(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.AttendanceReport(r.Context(), actor, attendanceReportFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AttendanceReportCSV implements ReportHandler.
func (h *reportHandlerImpl) AttendanceReportCSV(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendanceReportFilter(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="attendance_%s_%s.csv"`, filter.StartDate, filter.EndDate))

	if err := h.reportService.AttendanceReportCSV(r.Context(), actor, filter, w); err != nil {
		// Headers may already be out; a partial download is the best signal
		// left.
		response.HandleError(w, err)
	}
}

// LeaveReport implements ReportHandler.
func (h *reportHandlerImpl) LeaveReport(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year := queryInt(r, "year", time.Now().Year())
	result, err := h.reportService.LeaveReport(r.Context(), actor, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LeaveReportCSV implements ReportHandler.
func (h *reportHandlerImpl) LeaveReportCSV(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year := queryInt(r, "year", time.Now().Year())

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="leave_%d.csv"`, year))

	if err := h.reportService.LeaveReportCSV(r.Context(), actor, year, w); err != nil {
		response.HandleError(w, err)
	}
}
