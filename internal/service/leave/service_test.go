package leave

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staffhub-backend-go/internal/domain/employee"
	"github.com/staffhub/staffhub-backend-go/internal/domain/leave"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLeaveRepo struct {
	requests map[string]*leave.LeaveRequest
	nextID   int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]*leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, r *leave.LeaveRequest) error {
	f.nextID++
	r.ID = fmt.Sprintf("req-%d", f.nextID)
	r.CreatedAt = time.Now()
	stored := *r
	f.requests[r.ID] = &stored
	return nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, leave.ErrLeaveRequestNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeLeaveRepo) Update(ctx context.Context, r *leave.LeaveRequest) error {
	if _, ok := f.requests[r.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	stored := *r
	f.requests[r.ID] = &stored
	return nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, companyID string, filter *leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.CompanyID == companyID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string, filter *leave.LeaveFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ListActiveInRange(ctx context.Context, employeeID string, start, end time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Active() && r.Overlaps(start, end) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) SumApprovedDays(ctx context.Context, employeeID string, leaveType leave.Type, year int) (int, error) {
	total := 0
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.Type == leaveType &&
			r.Status == leave.StatusApproved && r.StartDate.Year() == year {
			total += r.NumberOfDays
		}
	}
	return total, nil
}

func (f *fakeLeaveRepo) CountPendingByCompany(ctx context.Context, companyID string) (int64, error) {
	var total int64
	for _, r := range f.requests {
		if r.CompanyID == companyID && r.Status == leave.StatusPending {
			total++
		}
	}
	return total, nil
}

type fakeEmployeeRepo struct {
	employees map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			copied := *e
			return &copied, nil
		}
	}
	return nil, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) CountByCompany(ctx context.Context, companyID string) (int64, error) {
	return int64(len(f.employees)), nil
}

func (f *fakeEmployeeRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	return []string{"comp-1"}, nil
}

type fakeUserRepo struct{}

func (fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (fakeUserRepo) GetByID(ctx context.Context, id string) (*user.User, error) {
	return nil, user.ErrUserNotFound
}

func (fakeUserRepo) ListApproverEmails(ctx context.Context, companyID string, roles []user.Role) ([]string, error) {
	return nil, nil
}

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) Upload(ctx context.Context, file io.Reader, path string) (string, error) {
	return path, nil
}

func (f *fakeFileStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, nil
}

func (f *fakeFileStorage) Delete(ctx context.Context, path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeFileStorage) GetURL(ctx context.Context, path string) (string, error) {
	return "http://localhost:8080/uploads/" + path, nil
}

type fakeEmailService struct {
	decisions []string
}

func (f *fakeEmailService) SendLeaveDecision(to, employeeName, leaveType, startDate, endDate, decision string, comment *string) error {
	f.decisions = append(f.decisions, decision)
	return nil
}

func (f *fakeEmailService) SendLeaveSubmitted(to, approverName, employeeName, leaveType, startDate, endDate string) error {
	return nil
}

var (
	employeeActor = user.Actor{UserID: "u-1", EmployeeID: "emp-1", CompanyID: "comp-1", Role: user.RoleEmployee}
	adminActor    = user.Actor{UserID: "u-2", EmployeeID: "emp-2", CompanyID: "comp-1", Role: user.RoleAdmin}
	superActor    = user.Actor{UserID: "u-3", EmployeeID: "emp-3", CompanyID: "comp-1", Role: user.RoleSuperadmin}
)

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (leave.LeaveService, *fakeLeaveRepo, *fakeEmailService) {
	t.Helper()
	svc, repo, emailSvc, _ := newTestServiceWithStorage(t)
	return svc, repo, emailSvc
}

func newTestServiceWithStorage(t *testing.T) (leave.LeaveService, *fakeLeaveRepo, *fakeEmailService, *fakeFileStorage) {
	t.Helper()
	repo := newFakeLeaveRepo()
	employees := &fakeEmployeeRepo{employees: map[string]*employee.Employee{
		"emp-1": {ID: "emp-1", CompanyID: "comp-1", FirstName: "Ada", LastName: "Osei",
			Email: "ada@example.com", Department: "Engineering", JobTitle: "Engineer", Contact: "+233200000001"},
		"emp-2": {ID: "emp-2", CompanyID: "comp-1", FirstName: "Kofi", LastName: "Mensah",
			Email: "kofi@example.com", Department: "HR", JobTitle: "HR Manager", Contact: "+233200000002"},
	}}
	emailSvc := &fakeEmailService{}
	fileStorage := &fakeFileStorage{}

	quotas := map[string]int{"Annual Leave": 21, "Sick Leave": 14}
	svc := NewLeaveService(
		passthroughTx{},
		repo,
		employees,
		fakeUserRepo{},
		emailSvc,
		fileStorage,
		clock.Fixed(testNow),
		user.NewRoleConfig(user.DefaultGrants()),
		quotas,
	)
	return svc, repo, emailSvc, fileStorage
}

func submitRequest(t *testing.T, svc leave.LeaveService, actor user.Actor, start, end string) *leave.LeaveResponse {
	t.Helper()
	resp, err := svc.Submit(context.Background(), actor, &leave.CreateLeaveRequest{
		Type:      string(leave.TypeAnnual),
		StartDate: start,
		EndDate:   end,
		Reason:    "family trip",
	})
	require.NoError(t, err)
	return resp
}

func TestSubmitSnapshotsEmployee(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")
	assert.Equal(t, 3, resp.NumberOfDays)
	assert.Equal(t, "Ada Osei", resp.EmployeeName)
	assert.Equal(t, "Engineering", resp.Department)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Nil(t, resp.SuperadminStatus)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, stored.RequesterRole)
}

func TestSubmitByAdminStampsGate(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp := submitRequest(t, svc, adminActor, "2025-06-10", "2025-06-12")
	require.NotNil(t, resp.SuperadminStatus)
	assert.Equal(t, string(leave.StatusPending), *resp.SuperadminStatus)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.True(t, stored.RequiresSuperadmin())
}

func TestSubmitOverlapRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")

	_, err := svc.Submit(context.Background(), employeeActor, &leave.CreateLeaveRequest{
		Type:      string(leave.TypeSick),
		StartDate: "2025-06-12",
		EndDate:   "2025-06-14",
		Reason:    "flu",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestSubmitQuotaExceeded(t *testing.T) {
	svc, _, _ := newTestService(t)

	// 21-day annual quota: a 22-day request cannot fit.
	_, err := svc.Submit(context.Background(), employeeActor, &leave.CreateLeaveRequest{
		Type:      string(leave.TypeAnnual),
		StartDate: "2025-06-01",
		EndDate:   "2025-06-22",
		Reason:    "sabbatical",
	})
	assert.ErrorIs(t, err, leave.ErrQuotaExceeded)
}

func TestSubmitValidation(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Submit(context.Background(), employeeActor, &leave.CreateLeaveRequest{
		Type:      "Vacation",
		StartDate: "2025-06-12",
		EndDate:   "2025-06-10",
	})
	require.Error(t, err)
}

func TestDecideApprove(t *testing.T) {
	svc, repo, emailSvc := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")

	decided, err := svc.Decide(context.Background(), adminActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), decided.Status)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "emp-2", *stored.DecidedBy)
	assert.Equal(t, testNow, *stored.DecidedAt)

	require.Len(t, emailSvc.decisions, 1)
	assert.Equal(t, "approved", emailSvc.decisions[0])
}

func TestDecideRequiresApprovePermission(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := submitRequest(t, svc, adminActor, "2025-06-10", "2025-06-12")

	_, err := svc.Decide(context.Background(), employeeActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	assert.ErrorIs(t, err, user.ErrPermissionRequired)
}

func TestDecideAdminRequestNeedsSuperadmin(t *testing.T) {
	svc, repo, _ := newTestService(t)

	resp := submitRequest(t, svc, adminActor, "2025-06-10", "2025-06-12")

	otherAdmin := user.Actor{UserID: "u-4", EmployeeID: "emp-4", CompanyID: "comp-1", Role: user.RoleAdmin}
	_, err := svc.Decide(context.Background(), otherAdmin, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientRank)

	decided, err := svc.Decide(context.Background(), superActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	require.NoError(t, err)
	require.NotNil(t, decided.SuperadminStatus)
	assert.Equal(t, string(leave.StatusApproved), *decided.SuperadminStatus)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)
	assert.Equal(t, leave.StatusApproved, *stored.SuperadminStatus)
}

func TestDecideTwiceRejected(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")

	_, err := svc.Decide(context.Background(), adminActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), adminActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusDeclined),
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestDecideOtherCompanyHidden(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")

	foreignAdmin := user.Actor{UserID: "u-9", EmployeeID: "emp-9", CompanyID: "comp-2", Role: user.RoleAdmin}
	_, err := svc.Decide(context.Background(), foreignAdmin, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestCancel(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")

	cancelled, err := svc.Cancel(context.Background(), employeeActor, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)

	// Cancelled requests free the range for a new submission.
	submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")
}

func TestCancelDeletesAttachment(t *testing.T) {
	svc, repo, _, fileStorage := newTestServiceWithStorage(t)

	url := "http://localhost:8080/uploads/leave-attachments/2025/06/note.pdf"
	path := "leave-attachments/2025/06/note.pdf"
	resp, err := svc.Submit(context.Background(), employeeActor, &leave.CreateLeaveRequest{
		Type:           string(leave.TypeSick),
		StartDate:      "2025-06-10",
		EndDate:        "2025-06-12",
		Reason:         "flu",
		AttachmentURL:  &url,
		AttachmentPath: &path,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.AttachmentURL)

	cancelled, err := svc.Cancel(context.Background(), employeeActor, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusCancelled), cancelled.Status)
	assert.Nil(t, cancelled.AttachmentURL)

	assert.Equal(t, []string{path}, fileStorage.deleted)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.AttachmentURL)
	assert.Nil(t, stored.AttachmentPath)
}

func TestCancelApprovedRequestRejected(t *testing.T) {
	svc, _, _, fileStorage := newTestServiceWithStorage(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")
	_, err := svc.Decide(context.Background(), adminActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), employeeActor, resp.ID)
	assert.ErrorIs(t, err, leave.ErrNotPending)
	assert.Empty(t, fileStorage.deleted)
}

func TestCancelByNonOwner(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")

	_, err := svc.Cancel(context.Background(), adminActor, resp.ID)
	assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
}

func TestGetMyQuota(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := submitRequest(t, svc, employeeActor, "2025-06-10", "2025-06-12")
	_, err := svc.Decide(context.Background(), adminActor, resp.ID, &leave.DecideLeaveRequest{
		Status: string(leave.StatusApproved),
	})
	require.NoError(t, err)

	quota, err := svc.GetMyQuota(context.Background(), employeeActor)
	require.NoError(t, err)
	assert.Equal(t, 2025, quota.Year)
	require.Len(t, quota.Entries, 2)

	// Entries sort alphabetically: Annual Leave first.
	annual := quota.Entries[0]
	assert.Equal(t, "Annual Leave", annual.Type)
	assert.Equal(t, 21, annual.Total)
	assert.Equal(t, 3, annual.Used)
	assert.Equal(t, 18, annual.Remaining)
}
