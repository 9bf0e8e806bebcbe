package report

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/staffhub/staffhub-backend-go/internal/domain/attendance"
	"github.com/staffhub/staffhub-backend-go/internal/domain/report"
)

func writeAttendanceCSV(w io.Writer, rows []report.AttendanceSummaryRow) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Employee ID", "Employee Name", "Department",
		"Days Present", "Days Late", "Days Absent",
		"Total Work Time", "Total Break Time",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.EmployeeID,
			row.EmployeeName,
			row.Department,
			strconv.Itoa(row.DaysPresent),
			strconv.Itoa(row.DaysLate),
			strconv.Itoa(row.DaysAbsent),
			attendance.FormatMinutes(row.TotalWorkMinutes),
			attendance.FormatMinutes(row.TotalBreakMinutes),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeLeaveCSV(w io.Writer, rows []report.LeaveSummaryRow) error {
	cw := csv.NewWriter(w)

	// Column set is the union of leave types seen, in stable order.
	typeSet := make(map[string]struct{})
	for _, row := range rows {
		for t := range row.DaysByType {
			typeSet[t] = struct{}{}
		}
	}
	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	header := append([]string{"Employee ID", "Employee Name", "Department"}, types...)
	header = append(header, "Total Days")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{row.EmployeeID, row.EmployeeName, row.Department}
		for _, t := range types {
			record = append(record, strconv.Itoa(row.DaysByType[t]))
		}
		record = append(record, strconv.Itoa(row.TotalDays))
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
