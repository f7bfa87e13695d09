package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// buildLeaveReportWorkbook renders the dashboard aggregates as a spreadsheet
// with one sheet per section.
func buildLeaveReportWorkbook(dashboard DashboardResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Monthly Summary"
	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(summarySheet, "A", "A", 12)
	f.SetColWidth(summarySheet, "B", "D", 18)
	f.SetCellValue(summarySheet, "A1", "Month")
	f.SetCellValue(summarySheet, "B1", "Total Days")
	f.SetCellValue(summarySheet, "C1", "Employees")
	f.SetCellValue(summarySheet, "D1", "Requests")
	f.SetCellStyle(summarySheet, "A1", "D1", headerStyle)

	for i, bucket := range dashboard.MonthlySeries {
		row := i + 2
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), bucket.Month)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), bucket.TotalDays)
		f.SetCellValue(summarySheet, fmt.Sprintf("C%d", row), bucket.UniqueEmployee)
		f.SetCellValue(summarySheet, fmt.Sprintf("D%d", row), bucket.RequestCount)
	}

	const takersSheet = "Top Leave Takers"
	if _, err := f.NewSheet(takersSheet); err != nil {
		return nil, err
	}
	f.SetColWidth(takersSheet, "A", "A", 30)
	f.SetColWidth(takersSheet, "B", "B", 14)
	f.SetCellValue(takersSheet, "A1", "Employee")
	f.SetCellValue(takersSheet, "B1", "Total Days")
	f.SetCellStyle(takersSheet, "A1", "B1", headerStyle)

	for i, taker := range dashboard.TopLeaveTakers {
		row := i + 2
		f.SetCellValue(takersSheet, fmt.Sprintf("A%d", row), taker.EmployeeName)
		f.SetCellValue(takersSheet, fmt.Sprintf("B%d", row), taker.TotalDays)
	}

	const distSheet = "Type Distribution"
	if _, err := f.NewSheet(distSheet); err != nil {
		return nil, err
	}
	f.SetColWidth(distSheet, "A", "A", 30)
	f.SetColWidth(distSheet, "B", "B", 14)
	f.SetCellValue(distSheet, "A1", "Leave Type")
	f.SetCellValue(distSheet, "B1", "Requests")
	f.SetCellStyle(distSheet, "A1", "B1", headerStyle)

	typeNames := make([]string, 0, len(dashboard.TypeDistribution))
	for name := range dashboard.TypeDistribution {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for i, name := range typeNames {
		row := i + 2
		f.SetCellValue(distSheet, fmt.Sprintf("A%d", row), name)
		f.SetCellValue(distSheet, fmt.Sprintf("B%d", row), dashboard.TypeDistribution[name])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
