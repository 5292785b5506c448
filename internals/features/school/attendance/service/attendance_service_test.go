package service

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/access"
	"schoolku_backend/internals/features/school/attendance/dto"
)

// attendanceFixture builds a table with default statuses, one row and the
// given number of enrolled students, returning the seeded UNKNOWN records.
type attendanceFixture struct {
	store     *fakeStore
	engine    *access.Engine
	svc       *AttendanceService
	teacherID uuid.UUID
	subjectID uuid.UUID
	schoolID  uuid.UUID
	tableID   uuid.UUID
	row       dto.AttendanceRowWithAttendances
}

func newAttendanceFixture(t *testing.T, students int, rowReq func(tableID uuid.UUID) dto.CreateAttendanceRowRequest) *attendanceFixture {
	t.Helper()
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()

	tableSvc := newTableService(store, engine)
	table, err := tableSvc.Create(ctx, dto.CreateAttendanceTableRequest{SubjectID: subjectID, Title: "T"}, teacherID)
	require.NoError(t, err)

	for i := 0; i < students; i++ {
		store.seedEnrolledStudent(subjectID, schoolID, "Student")
	}

	rowSvc := NewRowService(store, engine)
	row, err := rowSvc.Create(ctx, rowReq(table.AttendanceTableID), teacherID)
	require.NoError(t, err)

	return &attendanceFixture{
		store:     store,
		engine:    engine,
		svc:       NewAttendanceService(store, engine, NewExcelExporter()),
		teacherID: teacherID,
		subjectID: subjectID,
		schoolID:  schoolID,
		tableID:   table.AttendanceTableID,
		row:       *row,
	}
}

func strPtr(s string) *string { return &s }

func TestAttendanceCreateDuplicatePairConflicts(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 0, manualRowRequest)

	sosID := fx.store.seedEnrolledStudent(fx.subjectID, fx.schoolID, "Late Joiner")
	req := dto.CreateAttendanceRequest{
		AttendanceRowID:    fx.row.AttendanceRowID,
		StudentOnSubjectID: sosID,
		Status:             "Present",
	}
	_, err := fx.svc.Create(ctx, req, fx.teacherID)
	require.NoError(t, err)

	_, err = fx.svc.Create(ctx, req, fx.teacherID)
	requireFiberError(t, err, fiber.StatusConflict, "Attendance already exists")
}

func TestAttendanceCreateUnknownStatusForbidden(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 0, manualRowRequest)

	sosID := fx.store.seedEnrolledStudent(fx.subjectID, fx.schoolID, "Late Joiner")
	_, err := fx.svc.Create(ctx, dto.CreateAttendanceRequest{
		AttendanceRowID:    fx.row.AttendanceRowID,
		StudentOnSubjectID: sosID,
		Status:             "NoSuchStatus",
	}, fx.teacherID)
	requireFiberError(t, err, fiber.StatusForbidden, "Status not found")
}

func TestAttendanceCreateDenialsCollapseToAccessDenied(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)

	sosID := fx.row.Attendances[0].AttendanceStudentOnSubjectID
	_, err := fx.svc.Create(ctx, dto.CreateAttendanceRequest{
		AttendanceRowID:    fx.row.AttendanceRowID,
		StudentOnSubjectID: sosID,
		Status:             "Present",
	}, uuid.New())
	requireFiberError(t, err, fiber.StatusForbidden, "Access denied")
}

func TestAttendanceTeacherUpdate(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)
	att := fx.row.Attendances[0]

	res, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Late"),
		Note:   strPtr("overslept"),
	}, fx.teacherID)
	require.NoError(t, err)
	require.Equal(t, "Late", res.AttendanceStatus)
	require.Equal(t, "overslept", res.AttendanceNote)
}

func TestAttendanceUpdateStatusOutsideVocabulary(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)
	att := fx.row.Attendances[0]

	_, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Vacation"),
	}, fx.teacherID)
	requireFiberError(t, err, fiber.StatusForbidden, "Status not found")
}

func TestAnonymousScanWithinWindow(t *testing.T) {
	ctx := context.Background()
	allow := time.Now().Add(-time.Minute)
	expire := time.Now().Add(time.Hour)
	fx := newAttendanceFixture(t, 1, func(tableID uuid.UUID) dto.CreateAttendanceRowRequest {
		return scanRowRequest(tableID, allow, expire, false)
	})
	att := fx.row.Attendances[0]

	res, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Present"),
	}, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, "Present", res.AttendanceStatus)
}

func TestAnonymousScanAfterExpiry(t *testing.T) {
	ctx := context.Background()
	allow := time.Now().Add(-2 * time.Hour)
	expire := time.Now().Add(-time.Hour)
	fx := newAttendanceFixture(t, 1, func(tableID uuid.UUID) dto.CreateAttendanceRowRequest {
		return scanRowRequest(tableID, allow, expire, false)
	})
	att := fx.row.Attendances[0]

	_, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Present"),
	}, uuid.Nil)
	requireFiberError(t, err, fiber.StatusBadRequest, "Time's up! for update attendance")
}

func TestAnonymousScanAfterExpiryAllowedWhenManyTimes(t *testing.T) {
	ctx := context.Background()
	allow := time.Now().Add(-2 * time.Hour)
	expire := time.Now().Add(-time.Hour)
	fx := newAttendanceFixture(t, 1, func(tableID uuid.UUID) dto.CreateAttendanceRowRequest {
		return scanRowRequest(tableID, allow, expire, true)
	})
	att := fx.row.Attendances[0]

	res, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Present"),
	}, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, "Present", res.AttendanceStatus)
}

func TestAnonymousRepeatScanBlocked(t *testing.T) {
	ctx := context.Background()
	allow := time.Now().Add(-time.Minute)
	expire := time.Now().Add(time.Hour)
	fx := newAttendanceFixture(t, 1, func(tableID uuid.UUID) dto.CreateAttendanceRowRequest {
		return scanRowRequest(tableID, allow, expire, false)
	})
	att := fx.row.Attendances[0]

	_, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Present"),
	}, uuid.Nil)
	require.NoError(t, err)

	_, err = fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Late"),
	}, uuid.Nil)
	requireFiberError(t, err, fiber.StatusBadRequest, "You already check-in")
}

func TestAnonymousManualRowSkipsWindowChecks(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)
	att := fx.row.Attendances[0]

	// MANUAL rows carry no scan window; the anonymous path patches freely.
	res, err := fx.svc.Update(ctx, att.AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Sick"),
	}, uuid.Nil)
	require.NoError(t, err)
	require.Equal(t, "Sick", res.AttendanceStatus)
}

func TestUpdateManyFailsFastOnFirstItemAccess(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 2, manualRowRequest)

	items := []dto.UpdateManyAttendanceItem{
		{AttendanceID: fx.row.Attendances[0].AttendanceID, Body: dto.UpdateAttendanceRequest{Status: strPtr("Present")}},
		{AttendanceID: fx.row.Attendances[1].AttendanceID, Body: dto.UpdateAttendanceRequest{Status: strPtr("Present")}},
	}
	_, err := fx.svc.UpdateMany(ctx, items, uuid.New())
	requireFiberError(t, err, fiber.StatusForbidden, "Access denied")
}

func TestUpdateManyFirstItemMissing(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)

	items := []dto.UpdateManyAttendanceItem{
		{AttendanceID: uuid.New(), Body: dto.UpdateAttendanceRequest{Status: strPtr("Present")}},
		{AttendanceID: fx.row.Attendances[0].AttendanceID, Body: dto.UpdateAttendanceRequest{Status: strPtr("Present")}},
	}
	_, err := fx.svc.UpdateMany(ctx, items, fx.teacherID)
	requireFiberError(t, err, fiber.StatusNotFound, "Attendance not found")
}

func TestUpdateManyDropsFailedItemsSilently(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 2, manualRowRequest)

	items := []dto.UpdateManyAttendanceItem{
		{AttendanceID: fx.row.Attendances[0].AttendanceID, Body: dto.UpdateAttendanceRequest{Status: strPtr("Present")}},
		// Unknown status: this item fails per-item and is dropped, not reported.
		{AttendanceID: fx.row.Attendances[1].AttendanceID, Body: dto.UpdateAttendanceRequest{Status: strPtr("Bogus")}},
	}
	out, err := fx.svc.UpdateMany(ctx, items, fx.teacherID)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, fx.row.Attendances[0].AttendanceID, out[0].AttendanceID)
	require.Equal(t, "Present", out[0].AttendanceStatus)
}

func TestUpdateManyPreservesInputOrder(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 3, manualRowRequest)

	items := make([]dto.UpdateManyAttendanceItem, 0, 3)
	for _, att := range fx.row.Attendances {
		items = append(items, dto.UpdateManyAttendanceItem{
			AttendanceID: att.AttendanceID,
			Body:         dto.UpdateAttendanceRequest{Status: strPtr("Present")},
		})
	}
	out, err := fx.svc.UpdateMany(ctx, items, fx.teacherID)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range items {
		require.Equal(t, items[i].AttendanceID, out[i].AttendanceID)
	}
}

func TestUpdateManyEmptyInput(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 0, manualRowRequest)

	out, err := fx.svc.UpdateMany(ctx, nil, fx.teacherID)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 0, manualRowRequest)

	_, err := fx.svc.GetByID(ctx, uuid.New(), fx.teacherID)
	requireFiberError(t, err, fiber.StatusNotFound, "Attendance not found")
}

// stubExporter records what the service asked it to render.
type stubExporter struct {
	header []string
	grid   [][]string
	out    []byte
}

func (s *stubExporter) Export(header []string, rows [][]string) ([]byte, error) {
	s.header = header
	s.grid = rows
	return s.out, nil
}

func TestExportExcelBuildsGridAndDataURI(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)

	// One recorded status; the second student joins after the row was
	// created, so their cell stays blank.
	_, err := fx.svc.Update(ctx, fx.row.Attendances[0].AttendanceID, dto.UpdateAttendanceRequest{
		Status: strPtr("Present"),
	}, fx.teacherID)
	require.NoError(t, err)
	fx.store.seedEnrolledStudent(fx.subjectID, fx.schoolID, "Late Joiner")

	stub := &stubExporter{out: []byte("sheet-bytes")}
	svc := NewAttendanceService(fx.store, fx.engine, stub)

	res, err := svc.ExportExcel(ctx, fx.subjectID, fx.teacherID, "")
	require.NoError(t, err)

	dateCol := fx.row.AttendanceRowStartDate.Format("2006-01-02")
	require.Equal(t, []string{"Number", "Student", dateCol}, stub.header)
	require.ElementsMatch(t, [][]string{
		{"1", "Student", "Present"},
		{"1", "Late Joiner", ""},
	}, stub.grid)

	want := "data:application/vnd.openxmlformats-officedocument.spreadsheetml.sheet;base64," +
		base64.StdEncoding.EncodeToString([]byte("sheet-bytes"))
	require.Equal(t, want, res.DataURI)
}

func TestExportExcelThaiHeaders(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 1, manualRowRequest)

	stub := &stubExporter{out: []byte("x")}
	svc := NewAttendanceService(fx.store, fx.engine, stub)

	_, err := svc.ExportExcel(ctx, fx.subjectID, fx.teacherID, "th")
	require.NoError(t, err)
	require.Equal(t, "เลขที่", stub.header[0])
	require.Equal(t, "ชื่อนักเรียน", stub.header[1])
}

func TestExportExcelDeniedForOutsider(t *testing.T) {
	ctx := context.Background()
	fx := newAttendanceFixture(t, 0, manualRowRequest)

	stub := &stubExporter{out: []byte("x")}
	svc := NewAttendanceService(fx.store, fx.engine, stub)

	_, err := svc.ExportExcel(ctx, fx.subjectID, uuid.New(), "")
	requireFiberError(t, err, fiber.StatusForbidden, "Access denied")
}
