package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func newRecord() *Attendance {
	return &Attendance{
		ID:          "att-1",
		EmployeeID:  "emp-1",
		CompanyID:   "comp-1",
		Date:        testDay,
		BreakStatus: BreakNone,
	}
}

func mustCutoff(t *testing.T) Cutoff {
	t.Helper()
	c, err := ParseCutoff("09:00")
	require.NoError(t, err)
	return c
}

func TestParseCutoff(t *testing.T) {
	c, err := ParseCutoff("09:30")
	require.NoError(t, err)
	assert.Equal(t, Cutoff(9*60+30), c)

	_, err = ParseCutoff("25:00")
	assert.Error(t, err)

	_, err = ParseCutoff("not-a-time")
	assert.Error(t, err)
}

func TestSignIn(t *testing.T) {
	cutoff := mustCutoff(t)

	tests := []struct {
		name       string
		now        time.Time
		wantStatus DayStatus
	}{
		{"before cutoff is present", at(8, 15), StatusPresent},
		{"exactly at cutoff is present", at(9, 0), StatusPresent},
		{"one minute past cutoff is late", at(9, 1), StatusLate},
		{"afternoon sign-in is late", at(14, 30), StatusLate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newRecord()
			require.NoError(t, a.SignIn(tt.now, cutoff))

			require.NotNil(t, a.CheckIn)
			assert.Equal(t, tt.now, *a.CheckIn)
			assert.Equal(t, tt.wantStatus, a.Status)
		})
	}
}

func TestSignInTwiceRejected(t *testing.T) {
	a := newRecord()
	require.NoError(t, a.SignIn(at(8, 0), mustCutoff(t)))

	err := a.SignIn(at(8, 5), mustCutoff(t))
	assert.ErrorIs(t, err, ErrAlreadySignedIn)
	assert.Equal(t, at(8, 0), *a.CheckIn)
}

func TestStartBreakGuards(t *testing.T) {
	cutoff := mustCutoff(t)

	t.Run("requires sign-in", func(t *testing.T) {
		a := newRecord()
		assert.ErrorIs(t, a.StartBreak(at(10, 0)), ErrNotSignedInYet)
	})

	t.Run("rejected after sign-out", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(8, 0), cutoff))
		require.NoError(t, a.SignOut(at(17, 0)))
		assert.ErrorIs(t, a.StartBreak(at(17, 30)), ErrAlreadySignedOut)
	})

	t.Run("rejected while already on break", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(8, 0), cutoff))
		require.NoError(t, a.StartBreak(at(12, 0)))
		assert.ErrorIs(t, a.StartBreak(at(12, 5)), ErrAlreadyOnBreak)
	})
}

func TestBreakAccumulation(t *testing.T) {
	cutoff := mustCutoff(t)
	a := newRecord()
	require.NoError(t, a.SignIn(at(8, 0), cutoff))

	require.NoError(t, a.StartBreak(at(12, 0)))
	assert.Equal(t, BreakOngoing, a.BreakStatus)
	require.NoError(t, a.EndBreak(at(12, 30)))
	assert.Equal(t, 30, a.TotalBreakMinutes)
	assert.Equal(t, BreakEnded, a.BreakStatus)
	assert.Nil(t, a.CurrentBreakStart)

	// A second break the same day accumulates on top of the first.
	require.NoError(t, a.StartBreak(at(15, 0)))
	require.NoError(t, a.EndBreak(at(15, 10)))
	assert.Equal(t, 40, a.TotalBreakMinutes)
}

func TestEndBreakWithoutActiveBreak(t *testing.T) {
	a := newRecord()
	require.NoError(t, a.SignIn(at(8, 0), mustCutoff(t)))
	assert.ErrorIs(t, a.EndBreak(at(12, 0)), ErrNoActiveBreak)
}

func TestEndBreakNeverDecreasesTotal(t *testing.T) {
	a := newRecord()
	require.NoError(t, a.SignIn(at(8, 0), mustCutoff(t)))
	a.TotalBreakMinutes = 25

	// Clock skew: end stamped before start. The delta clamps to zero.
	require.NoError(t, a.StartBreak(at(12, 30)))
	require.NoError(t, a.EndBreak(at(12, 20)))
	assert.Equal(t, 25, a.TotalBreakMinutes)
}

func TestSignOut(t *testing.T) {
	cutoff := mustCutoff(t)

	t.Run("work minutes exclude break time", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(9, 0), cutoff))
		require.NoError(t, a.StartBreak(at(12, 0)))
		require.NoError(t, a.EndBreak(at(13, 0)))
		require.NoError(t, a.SignOut(at(17, 0)))

		require.NotNil(t, a.WorkMinutes)
		assert.Equal(t, 7*60, *a.WorkMinutes)
	})

	t.Run("floors at zero", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(9, 0), cutoff))
		a.TotalBreakMinutes = 600
		require.NoError(t, a.SignOut(at(10, 0)))
		assert.Equal(t, 0, *a.WorkMinutes)
	})

	t.Run("requires sign-in", func(t *testing.T) {
		a := newRecord()
		assert.ErrorIs(t, a.SignOut(at(17, 0)), ErrMustSignInFirst)
	})

	t.Run("terminal", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(9, 0), cutoff))
		require.NoError(t, a.SignOut(at(17, 0)))
		assert.ErrorIs(t, a.SignOut(at(18, 0)), ErrAlreadySignedOut)
	})

	t.Run("blocked while on break", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(9, 0), cutoff))
		require.NoError(t, a.StartBreak(at(12, 0)))
		assert.ErrorIs(t, a.SignOut(at(17, 0)), ErrCannotSignOutWhileOnBreak)
	})
}

func TestDisplayStatusPriority(t *testing.T) {
	cutoff := mustCutoff(t)

	t.Run("no sign-in shows absent", func(t *testing.T) {
		a := newRecord()
		assert.Equal(t, "Absent", a.DisplayStatus())
	})

	t.Run("signed out wins over late", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(10, 0), cutoff))
		require.NoError(t, a.SignOut(at(17, 0)))
		assert.Equal(t, StatusLate, a.Status)
		assert.Equal(t, "Signed Out", a.DisplayStatus())
	})

	t.Run("on break wins over late", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(10, 0), cutoff))
		require.NoError(t, a.StartBreak(at(12, 0)))
		assert.Equal(t, "On Break", a.DisplayStatus())
	})

	t.Run("late after break ends", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(10, 0), cutoff))
		require.NoError(t, a.StartBreak(at(12, 0)))
		require.NoError(t, a.EndBreak(at(12, 30)))
		assert.Equal(t, "Late", a.DisplayStatus())
	})

	t.Run("present otherwise", func(t *testing.T) {
		a := newRecord()
		require.NoError(t, a.SignIn(at(8, 0), cutoff))
		assert.Equal(t, "Present", a.DisplayStatus())
	})
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "red", StatusColor("Absent"))
	assert.Equal(t, "gray", StatusColor("Signed Out"))
	assert.Equal(t, "blue", StatusColor("On Break"))
	assert.Equal(t, "orange", StatusColor("Late"))
	assert.Equal(t, "green", StatusColor("Present"))
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "0h 0m", FormatMinutes(0))
	assert.Equal(t, "1h 30m", FormatMinutes(90))
	assert.Equal(t, "8h 0m", FormatMinutes(480))
	assert.Equal(t, "0h 0m", FormatMinutes(-5))
}
