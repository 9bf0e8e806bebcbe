package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	SignIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	SignOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// decodeSignInRequest tolerates an empty body: all four actions default to
// the current day.
func decodeSignInRequest(r *http.Request) (*attendance.SignInRequest, error) {
	var req attendance.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		return nil, err
	}
	return &req, nil
}

type attendanceAction func(r *http.Request, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error)

func (h *attendanceHandlerImpl) act(w http.ResponseWriter, r *http.Request, message string, action attendanceAction) {
	req, err := decodeSignInRequest(r)
	if err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := action(r, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// SignIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Signed in successfully", func(r *http.Request, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
		actor, err := ActorFromContext(r.Context())
		if err != nil {
			return nil, err
		}
		return h.attendanceService.SignIn(r.Context(), actor, req)
	})
}

// StartBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Break started", func(r *http.Request, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
		actor, err := ActorFromContext(r.Context())
		if err != nil {
			return nil, err
		}
		return h.attendanceService.StartBreak(r.Context(), actor, req)
	})
}

// EndBreak implements AttendanceHandler.
func (h *attendanceHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Break ended", func(r *http.Request, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
		actor, err := ActorFromContext(r.Context())
		if err != nil {
			return nil, err
		}
		return h.attendanceService.EndBreak(r.Context(), actor, req)
	})
}

// SignOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) SignOut(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "Signed out successfully", func(r *http.Request, req *attendance.SignInRequest) (*attendance.AttendanceResponse, error) {
		actor, err := ActorFromContext(r.Context())
		if err != nil {
			return nil, err
		}
		return h.attendanceService.SignOut(r.Context(), actor, req)
	})
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.GetToday(r.Context(), actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func queryString(r *http.Request, key string) *string {
	if value := r.URL.Query().Get(key); value != "" {
		return &value
	}
	return nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if value := r.URL.Query().Get(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

// GetMyAttendance implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := &attendance.MyAttendanceFilter{
		Date:      queryString(r, "date"),
		StartDate: queryString(r, "start_date"),
		EndDate:   queryString(r, "end_date"),
		Status:    queryString(r, "status"),
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 10),
		SortBy:    r.URL.Query().Get("sort_by"),
		SortOrder: r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.GetMyAttendance(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := &attendance.AttendanceFilter{
		EmployeeID:   queryString(r, "employee_id"),
		EmployeeName: queryString(r, "employee_name"),
		Date:         queryString(r, "date"),
		StartDate:    queryString(r, "start_date"),
		EndDate:      queryString(r, "end_date"),
		Status:       queryString(r, "status"),
		Page:         queryInt(r, "page", 1),
		Limit:        queryInt(r, "limit", 10),
		SortBy:       r.URL.Query().Get("sort_by"),
		SortOrder:    r.URL.Query().Get("sort_order"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), actor, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements AttendanceHandler.
func (h *attendanceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	actor, err := ActorFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	result, err := h.attendanceService.GetAttendance(r.Context(), actor, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
