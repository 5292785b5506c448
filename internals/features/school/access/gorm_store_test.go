package access

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockStore(t *testing.T) (*GormMembershipStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewGormMembershipStore(db), mock
}

func TestGormStoreGetSchoolNotFoundIsNilNil(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "schools" WHERE school_id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_title"}))

	m, err := store.GetSchool(context.Background(), id)
	require.NoError(t, err)
	require.Nil(t, m)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetSchoolFound(t *testing.T) {
	store, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "schools" WHERE school_id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"school_id", "school_title", "school_plan"}).
			AddRow(id, "Wat Arun School", "FREE"))

	m, err := store.GetSchool(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, id, m.SchoolID)
	require.Equal(t, "Wat Arun School", m.SchoolTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetMemberOnSchoolNotFoundIsNilNil(t *testing.T) {
	store, mock := newMockStore(t)
	userID := uuid.New()
	schoolID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "member_on_schools" WHERE member_on_school_user_id = \$1 AND member_on_school_school_id = \$2`).
		WithArgs(userID, schoolID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"member_on_school_id"}))

	m, err := store.GetMemberOnSchool(context.Background(), userID, schoolID)
	require.NoError(t, err)
	require.Nil(t, m)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStoreGetTeacherOnSubjectFound(t *testing.T) {
	store, mock := newMockStore(t)
	userID := uuid.New()
	subjectID := uuid.New()
	rowID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "teacher_on_subjects" WHERE teacher_on_subject_user_id = \$1 AND teacher_on_subject_subject_id = \$2`).
		WithArgs(userID, subjectID, 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"teacher_on_subject_id", "teacher_on_subject_user_id",
			"teacher_on_subject_subject_id", "teacher_on_subject_status",
		}).AddRow(rowID, userID, subjectID, "ACCEPT"))

	m, err := store.GetTeacherOnSubject(context.Background(), userID, subjectID)
	require.NoError(t, err)
	require.NotNil(t, m)
	require.Equal(t, rowID, m.TeacherOnSubjectID)
	require.NoError(t, mock.ExpectationsWereMet())
}
