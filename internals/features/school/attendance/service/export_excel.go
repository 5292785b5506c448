package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"schoolku_backend/internals/features/school/attendance/dto"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetExporter renders a header plus data rows into spreadsheet bytes.
// The workbook format itself is opaque to the managers.
type SheetExporter interface {
	Export(header []string, rows [][]string) ([]byte, error)
}

// ExportExcel produces one sheet with a row per enrolled student and a
// column per attendance row; cells carry the recorded status. Locale only
// changes the header text.
func (s *AttendanceService) ExportExcel(ctx context.Context, subjectID uuid.UUID, actorID uuid.UUID, locale string) (*dto.ExportExcelResult, error) {
	if err := s.ValidateAccess(ctx, actorID, subjectID); err != nil {
		return nil, err
	}

	students, err := s.store.ListStudentsBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.ListRowsBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	atts, err := s.store.ListAttendancesBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	// status per (attendance row, student)
	statusByRowStudent := make(map[uuid.UUID]map[uuid.UUID]string, len(rows))
	for _, a := range atts {
		byStudent, ok := statusByRowStudent[a.AttendanceAttendanceRowID]
		if !ok {
			byStudent = make(map[uuid.UUID]string)
			statusByRowStudent[a.AttendanceAttendanceRowID] = byStudent
		}
		byStudent[a.AttendanceStudentID] = a.AttendanceStatus
	}

	numberHeader, nameHeader := exportHeaders(locale)
	header := make([]string, 0, len(rows)+2)
	header = append(header, numberHeader, nameHeader)
	for _, row := range rows {
		header = append(header, row.AttendanceRowStartDate.Format("2006-01-02"))
	}

	grid := make([][]string, 0, len(students))
	for _, st := range students {
		line := make([]string, 0, len(rows)+2)
		line = append(line, st.StudentNumber, st.StudentTitle)
		for _, row := range rows {
			line = append(line, statusByRowStudent[row.AttendanceRowID][st.StudentID])
		}
		grid = append(grid, line)
	}

	data, err := s.exporter.Export(header, grid)
	if err != nil {
		return nil, err
	}
	return &dto.ExportExcelResult{
		DataURI: fmt.Sprintf("data:%s;base64,%s", xlsxMime, base64.StdEncoding.EncodeToString(data)),
	}, nil
}

func exportHeaders(locale string) (number, name string) {
	switch locale {
	case "th":
		return "เลขที่", "ชื่อนักเรียน"
	default:
		return "Number", "Student"
	}
}

/* =========================
   excelize implementation
========================= */

type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

func (e *ExcelExporter) Export(header []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	toAny := func(ss []string) []interface{} {
		out := make([]interface{}, len(ss))
		for i, s := range ss {
			out[i] = s
		}
		return out
	}

	if err := f.SetSheetRow(sheet, "A1", toAnyPtr(toAny(header))); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, toAnyPtr(toAny(row))); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toAnyPtr(vs []interface{}) *[]interface{} { return &vs }
