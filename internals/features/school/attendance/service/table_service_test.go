package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/access"
	"schoolku_backend/internals/features/school/attendance/dto"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
)

// requireFiberError asserts both the HTTP status and the exact message.
func requireFiberError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, status, fe.Code)
	require.Equal(t, message, fe.Message)
}

// newFixture seeds one school with an ACCEPT teacher on one subject.
func newFixture() (store *fakeStore, engine *access.Engine, teacherID, subjectID, schoolID uuid.UUID) {
	store = newFakeStore()
	schoolID = store.seedSchool()
	subjectID = store.seedSubject(schoolID)
	teacherID = uuid.New()
	store.seedMember(teacherID, schoolID, schoolModel.MemberRoleTeacher, schoolModel.MemberStatusAccept)
	store.seedTeacher(teacherID, subjectID, schoolID, schoolModel.MemberStatusAccept)
	engine = access.NewEngine(store)
	return store, engine, teacherID, subjectID, schoolID
}

func newTableService(store *fakeStore, engine *access.Engine) *TableService {
	return NewTableService(store, engine, NewStatusListService(store, engine))
}

func TestTableCreateSeedsDefaultStatuses(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, _ := newFixture()
	svc := newTableService(store, engine)

	res, err := svc.Create(ctx, dto.CreateAttendanceTableRequest{
		SubjectID: subjectID,
		Title:     "Semester 1",
	}, teacherID)
	require.NoError(t, err)
	require.Len(t, res.StatusLists, 5)

	titles := make(map[string]bool, 5)
	values := make(map[int]bool, 5)
	for _, sl := range res.StatusLists {
		titles[sl.AttendanceStatusListTitle] = true
		values[sl.AttendanceStatusListValue] = true
		require.NotEmpty(t, sl.AttendanceStatusListColor)
	}
	for _, want := range []string{"Present", "Late", "Sick", "Absent", "Holiday"} {
		require.True(t, titles[want], "missing default status %q", want)
	}
	require.Len(t, values, 5, "default status values must be distinct")
}

func TestTableCreateDeniedForOutsider(t *testing.T) {
	ctx := context.Background()
	store, engine, _, subjectID, _ := newFixture()
	svc := newTableService(store, engine)

	_, err := svc.Create(ctx, dto.CreateAttendanceTableRequest{
		SubjectID: subjectID,
		Title:     "Semester 1",
	}, uuid.New())
	requireFiberError(t, err, fiber.StatusForbidden, "not a member of this school")
}

func TestTableGetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, _, _ := newFixture()
	svc := newTableService(store, engine)

	_, err := svc.GetByID(ctx, uuid.New(), teacherID)
	requireFiberError(t, err, fiber.StatusNotFound, "Attendance table not found")
}

func TestTableUpdateNotFoundUsesCallSiteMessage(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, _, _ := newFixture()
	svc := newTableService(store, engine)

	title := "x"
	_, err := svc.Update(ctx, uuid.New(), dto.UpdateAttendanceTableRequest{Title: &title}, teacherID)
	requireFiberError(t, err, fiber.StatusNotFound, "attendanceTableId not found")
}

func TestTableStudentSelfServiceRead(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()
	svc := newTableService(store, engine)

	sosID := store.seedEnrolledStudent(subjectID, schoolID, "Alice")
	sos, err := store.GetStudentOnSubject(ctx, sosID)
	require.NoError(t, err)
	studentID := sos.StudentOnSubjectStudentID

	table, err := svc.Create(ctx, dto.CreateAttendanceTableRequest{SubjectID: subjectID, Title: "T"}, teacherID)
	require.NoError(t, err)

	rowSvc := NewRowService(store, engine)
	_, err = rowSvc.Create(ctx, manualRowRequest(table.AttendanceTableID), teacherID)
	require.NoError(t, err)

	t.Run("caller mismatch forbidden", func(t *testing.T) {
		_, err := svc.GetBySubjectIDOnStudentOnSubject(ctx, subjectID, studentID, uuid.New())
		requireFiberError(t, err, fiber.StatusForbidden, "You don't have access to this student")
	})

	t.Run("unenrolled student forbidden not notfound", func(t *testing.T) {
		other := uuid.New()
		_, err := svc.GetBySubjectIDOnStudentOnSubject(ctx, subjectID, other, other)
		requireFiberError(t, err, fiber.StatusForbidden, "Student not found")
	})

	t.Run("returns only own attendance per row", func(t *testing.T) {
		out, err := svc.GetBySubjectIDOnStudentOnSubject(ctx, subjectID, studentID, studentID)
		require.NoError(t, err)
		require.Len(t, out, 1)
		require.Len(t, out[0].Rows, 1)
		require.Len(t, out[0].Rows[0].Attendances, 1)
		require.Equal(t, studentID, out[0].Rows[0].Attendances[0].AttendanceStudentID)
	})
}

func TestTableDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()
	svc := newTableService(store, engine)

	store.seedEnrolledStudent(subjectID, schoolID, "Bob")
	table, err := svc.Create(ctx, dto.CreateAttendanceTableRequest{SubjectID: subjectID, Title: "T"}, teacherID)
	require.NoError(t, err)

	rowSvc := NewRowService(store, engine)
	row, err := rowSvc.Create(ctx, manualRowRequest(table.AttendanceTableID), teacherID)
	require.NoError(t, err)
	require.Len(t, row.Attendances, 1)

	require.NoError(t, svc.Delete(ctx, table.AttendanceTableID, teacherID))

	gone, err := store.GetTable(ctx, table.AttendanceTableID)
	require.NoError(t, err)
	require.Nil(t, gone)
	atts, err := store.ListAttendancesByRow(ctx, row.AttendanceRowID)
	require.NoError(t, err)
	require.Empty(t, atts)
}
