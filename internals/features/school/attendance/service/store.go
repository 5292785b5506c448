package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/attendance/model"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

// ErrDuplicateAttendance surfaces the unique (row, student_on_subject)
// constraint; the index is the sole serialization point for concurrent scans.
var ErrDuplicateAttendance = errors.New("attendance already exists for this row and student")

// Store is the persistence surface of the attendance managers. The GORM
// implementation lives in gorm_store.go; tests inject an in-memory fake.
type Store interface {
	// attendance tables
	GetTable(ctx context.Context, id uuid.UUID) (*model.AttendanceTableModel, error)
	ListTablesBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.AttendanceTableModel, error)
	CreateTable(ctx context.Context, m *model.AttendanceTableModel) error
	UpdateTable(ctx context.Context, m *model.AttendanceTableModel) error
	// DeleteTable removes the table together with its status lists, rows
	// and attendances in one transaction.
	DeleteTable(ctx context.Context, id uuid.UUID) error

	// status lists
	GetStatusList(ctx context.Context, id uuid.UUID) (*model.AttendanceStatusListModel, error)
	ListStatusListsByTable(ctx context.Context, tableID uuid.UUID) ([]model.AttendanceStatusListModel, error)
	CreateStatusLists(ctx context.Context, ms []model.AttendanceStatusListModel) ([]model.AttendanceStatusListModel, error)
	UpdateStatusList(ctx context.Context, m *model.AttendanceStatusListModel) error
	DeleteStatusList(ctx context.Context, id uuid.UUID) error

	// rows
	GetRow(ctx context.Context, id uuid.UUID) (*model.AttendanceRowModel, error)
	ListRowsByTable(ctx context.Context, tableID uuid.UUID) ([]model.AttendanceRowModel, error)
	ListRowsBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.AttendanceRowModel, error)
	// CreateRowWithAttendances persists the row and its fan-out attendances
	// atomically; a partial fan-out never survives.
	CreateRowWithAttendances(ctx context.Context, row *model.AttendanceRowModel, attendances []model.AttendanceModel) ([]model.AttendanceModel, error)
	UpdateRow(ctx context.Context, m *model.AttendanceRowModel) error
	DeleteRow(ctx context.Context, id uuid.UUID) error

	// attendances
	GetAttendance(ctx context.Context, id uuid.UUID) (*model.AttendanceModel, error)
	ListAttendancesByRow(ctx context.Context, rowID uuid.UUID) ([]model.AttendanceModel, error)
	ListAttendancesBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.AttendanceModel, error)
	GetAttendanceByRowAndStudentOnSubject(ctx context.Context, rowID, studentOnSubjectID uuid.UUID) (*model.AttendanceModel, error)
	// CreateAttendance returns ErrDuplicateAttendance when the unique pair
	// already exists.
	CreateAttendance(ctx context.Context, m *model.AttendanceModel) error
	UpdateAttendance(ctx context.Context, m *model.AttendanceModel) error

	// enrollment reads used by record/table managers
	GetStudentOnSubject(ctx context.Context, id uuid.UUID) (*subjectModel.StudentOnSubjectModel, error)
	GetStudentOnSubjectBySubjectAndStudent(ctx context.Context, subjectID, studentID uuid.UUID) (*subjectModel.StudentOnSubjectModel, error)
	GetStudent(ctx context.Context, id uuid.UUID) (*schoolModel.StudentModel, error)
	ListStudentsBySubject(ctx context.Context, subjectID uuid.UUID) ([]schoolModel.StudentModel, error)
}
