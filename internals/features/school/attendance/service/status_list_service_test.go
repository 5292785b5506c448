package service

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"schoolku_backend/internals/features/school/attendance/dto"
)

func TestStatusListCreateDuplicateTitle(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()
	svc := NewStatusListService(store, engine)
	tableID := seedTable(t, store, subjectID, schoolID)

	// Non-ASCII titles are normal here; exact-match comparison must hold.
	_, err := svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID,
		Title:             "มา",
		Value:             10,
		Color:             "#112233",
	}, teacherID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID,
		Title:             "มา",
		Value:             11,
		Color:             "#445566",
	}, teacherID)
	requireFiberError(t, err, fiber.StatusBadRequest, "Duplicate title")
}

func TestStatusListTitleUniquenessIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()
	svc := NewStatusListService(store, engine)
	tableID := seedTable(t, store, subjectID, schoolID)

	_, err := svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID,
		Title:             "present",
		Value:             10,
		Color:             "#112233",
	}, teacherID)
	require.NoError(t, err)

	// Differs only by case; allowed.
	_, err = svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID,
		Title:             "Present",
		Value:             11,
		Color:             "#445566",
	}, teacherID)
	require.NoError(t, err)
}

func TestStatusListUpdateKeepingOwnTitle(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()
	svc := NewStatusListService(store, engine)
	tableID := seedTable(t, store, subjectID, schoolID)

	created, err := svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID,
		Title:             "Excused",
		Value:             10,
		Color:             "#112233",
	}, teacherID)
	require.NoError(t, err)

	// Same title on itself is not a duplicate.
	title := "Excused"
	value := 12
	updated, err := svc.Update(ctx, created.AttendanceStatusListID, dto.UpdateAttendanceStatusListRequest{
		Title: &title,
		Value: &value,
	}, teacherID)
	require.NoError(t, err)
	require.Equal(t, 12, updated.AttendanceStatusListValue)
}

func TestStatusListUpdateToSiblingTitleRejected(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, subjectID, schoolID := newFixture()
	svc := NewStatusListService(store, engine)
	tableID := seedTable(t, store, subjectID, schoolID)

	_, err := svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID, Title: "A", Value: 10, Color: "#111111",
	}, teacherID)
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: tableID, Title: "B", Value: 11, Color: "#222222",
	}, teacherID)
	require.NoError(t, err)

	title := "A"
	_, err = svc.Update(ctx, b.AttendanceStatusListID, dto.UpdateAttendanceStatusListRequest{Title: &title}, teacherID)
	requireFiberError(t, err, fiber.StatusBadRequest, "Duplicate title")
}

func TestStatusListCreateTableMissing(t *testing.T) {
	ctx := context.Background()
	store, engine, teacherID, _, _ := newFixture()
	svc := NewStatusListService(store, engine)

	_, err := svc.Create(ctx, dto.CreateAttendanceStatusListRequest{
		AttendanceTableID: uuid.New(), Title: "X", Value: 1, Color: "#111111",
	}, teacherID)
	requireFiberError(t, err, fiber.StatusNotFound, "Attendance table not found")
}
