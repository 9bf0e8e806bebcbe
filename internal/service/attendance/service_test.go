package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/user"
	"github.com/staffhub/staffhub-backend-go/internal/pkg/clock"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]*attendance.Attendance)}
}

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	f.nextID++
	a.ID = fmt.Sprintf("att-%d", f.nextID)
	stored := *a
	f.records[key(a.EmployeeID, a.Date)] = &stored
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	for _, a := range f.records {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	a, ok := f.records[key(employeeID, date)]
	if !ok {
		return nil, attendance.ErrAttendanceNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	stored := *a
	f.records[key(a.EmployeeID, a.Date)] = &stored
	return nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, companyID string, filter *attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.CompanyID == companyID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, filter *attendance.MyAttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, a := range f.records {
		if a.EmployeeID == employeeID {
			out = append(out, *a)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeAttendanceRepo) ListEmployeesWithoutRecord(ctx context.Context, companyID string, date time.Time) ([]string, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) BulkCreateAbsences(ctx context.Context, companyID string, employeeIDs []string, date time.Time) (int, error) {
	return 0, nil
}

func newTestService(t *testing.T, now time.Time) (attendance.AttendanceService, *fakeAttendanceRepo) {
	t.Helper()
	cutoff, err := attendance.ParseCutoff("09:00")
	require.NoError(t, err)

	repo := newFakeAttendanceRepo()
	svc := NewAttendanceService(
		passthroughTx{},
		repo,
		clock.Fixed(now),
		cutoff,
		user.NewRoleConfig(user.DefaultGrants()),
	)
	return svc, repo
}

var (
	employeeActor = user.Actor{UserID: "u-1", EmployeeID: "emp-1", CompanyID: "comp-1", Role: user.RoleEmployee}
	adminActor    = user.Actor{UserID: "u-2", EmployeeID: "emp-2", CompanyID: "comp-1", Role: user.RoleAdmin}
)

func TestSignInCreatesRecord(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	resp, err := svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)

	assert.Equal(t, "Present", resp.Status.Status)
	assert.Equal(t, "green", resp.Status.Color)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "08:30", *resp.CheckInTime)

	stored, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
}

func TestSignInAfterCutoffIsLate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 45, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	resp, err := svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Late", resp.Status.Status)
	assert.Equal(t, "orange", resp.Status.Color)
}

func TestSignInTwice(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)

	_, err = svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadySignedIn)
}

func TestSignInRevivesAbsentRecord(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(context.Background(), &attendance.Attendance{
		EmployeeID:  "emp-1",
		CompanyID:   "comp-1",
		Date:        day,
		BreakStatus: attendance.BreakNone,
		Status:      attendance.StatusAbsent,
	}))

	resp, err := svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Present", resp.Status.Status)
}

func TestBreakFlow(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	_, err := svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)

	resp, err := svc.StartBreak(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "On Break", resp.Status.Status)

	resp, err = svc.EndBreak(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Present", resp.Status.Status)
	assert.Equal(t, string(attendance.BreakEnded), resp.BreakStatus)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	stored, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.BreakEnded, stored.BreakStatus)
	assert.Nil(t, stored.CurrentBreakStart)
}

func TestStartBreakWithoutSignIn(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.StartBreak(context.Background(), employeeActor, &attendance.SignInRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotSignedInYet)
}

func TestSignOutWithoutRecord(t *testing.T) {
	now := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.SignOut(context.Background(), employeeActor, &attendance.SignInRequest{})
	assert.ErrorIs(t, err, attendance.ErrMustSignInFirst)
}

func TestGetTodayWithoutRecord(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	resp, err := svc.GetToday(context.Background(), employeeActor)
	require.NoError(t, err)
	assert.Equal(t, "Absent", resp.Status.Status)
	assert.Equal(t, "red", resp.Status.Color)
	assert.Nil(t, resp.CheckInTime)
}

func TestListAttendancePermission(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	_, err := svc.ListAttendance(context.Background(), employeeActor, &attendance.AttendanceFilter{})
	assert.ErrorIs(t, err, user.ErrPermissionRequired)

	_, err = svc.ListAttendance(context.Background(), adminActor, &attendance.AttendanceFilter{})
	assert.NoError(t, err)
}

func TestGetAttendanceOwnership(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	_, err := svc.SignIn(context.Background(), employeeActor, &attendance.SignInRequest{})
	require.NoError(t, err)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	stored, err := repo.GetByEmployeeAndDate(context.Background(), "emp-1", day)
	require.NoError(t, err)

	// Owner and admin can read it; another employee cannot.
	_, err = svc.GetAttendance(context.Background(), employeeActor, stored.ID)
	assert.NoError(t, err)

	_, err = svc.GetAttendance(context.Background(), adminActor, stored.ID)
	assert.NoError(t, err)

	other := user.Actor{UserID: "u-3", EmployeeID: "emp-3", CompanyID: "comp-1", Role: user.RoleEmployee}
	_, err = svc.GetAttendance(context.Background(), other, stored.ID)
	assert.ErrorIs(t, err, user.ErrPermissionRequired)
}
