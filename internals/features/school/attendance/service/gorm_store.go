package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/attendance/model"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

const pgUniqueViolation = "23505"

// GormStore is the postgres-backed Store.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

/* =========================
   Tables
========================= */

func (s *GormStore) GetTable(ctx context.Context, id uuid.UUID) (*model.AttendanceTableModel, error) {
	var m model.AttendanceTableModel
	err := s.DB.WithContext(ctx).Where("attendance_table_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListTablesBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.AttendanceTableModel, error) {
	var rows []model.AttendanceTableModel
	err := s.DB.WithContext(ctx).
		Where("attendance_table_subject_id = ?", subjectID).
		Order("attendance_table_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) CreateTable(ctx context.Context, m *model.AttendanceTableModel) error {
	if m.AttendanceTableID == uuid.Nil {
		m.AttendanceTableID = uuid.New()
	}
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *GormStore) UpdateTable(ctx context.Context, m *model.AttendanceTableModel) error {
	return s.DB.WithContext(ctx).Save(m).Error
}

func (s *GormStore) DeleteTable(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attendance_attendance_table_id = ?", id).
			Delete(&model.AttendanceModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attendance_row_attendance_table_id = ?", id).
			Delete(&model.AttendanceRowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("attendance_status_list_attendance_table_id = ?", id).
			Delete(&model.AttendanceStatusListModel{}).Error; err != nil {
			return err
		}
		return tx.Where("attendance_table_id = ?", id).
			Delete(&model.AttendanceTableModel{}).Error
	})
}

/* =========================
   Status lists
========================= */

func (s *GormStore) GetStatusList(ctx context.Context, id uuid.UUID) (*model.AttendanceStatusListModel, error) {
	var m model.AttendanceStatusListModel
	err := s.DB.WithContext(ctx).Where("attendance_status_list_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListStatusListsByTable(ctx context.Context, tableID uuid.UUID) ([]model.AttendanceStatusListModel, error) {
	var rows []model.AttendanceStatusListModel
	err := s.DB.WithContext(ctx).
		Where("attendance_status_list_attendance_table_id = ?", tableID).
		Order("attendance_status_list_value ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) CreateStatusLists(ctx context.Context, ms []model.AttendanceStatusListModel) ([]model.AttendanceStatusListModel, error) {
	for i := range ms {
		if ms[i].AttendanceStatusListID == uuid.Nil {
			ms[i].AttendanceStatusListID = uuid.New()
		}
	}
	if err := s.DB.WithContext(ctx).Create(&ms).Error; err != nil {
		return nil, err
	}
	return ms, nil
}

func (s *GormStore) UpdateStatusList(ctx context.Context, m *model.AttendanceStatusListModel) error {
	return s.DB.WithContext(ctx).Save(m).Error
}

func (s *GormStore) DeleteStatusList(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).
		Where("attendance_status_list_id = ?", id).
		Delete(&model.AttendanceStatusListModel{}).Error
}

/* =========================
   Rows
========================= */

func (s *GormStore) GetRow(ctx context.Context, id uuid.UUID) (*model.AttendanceRowModel, error) {
	var m model.AttendanceRowModel
	err := s.DB.WithContext(ctx).Where("attendance_row_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListRowsByTable(ctx context.Context, tableID uuid.UUID) ([]model.AttendanceRowModel, error) {
	var rows []model.AttendanceRowModel
	err := s.DB.WithContext(ctx).
		Where("attendance_row_attendance_table_id = ?", tableID).
		Order("attendance_row_start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) ListRowsBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.AttendanceRowModel, error) {
	var rows []model.AttendanceRowModel
	err := s.DB.WithContext(ctx).
		Where("attendance_row_subject_id = ?", subjectID).
		Order("attendance_row_start_date ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) CreateRowWithAttendances(ctx context.Context, row *model.AttendanceRowModel, attendances []model.AttendanceModel) ([]model.AttendanceModel, error) {
	if row.AttendanceRowID == uuid.Nil {
		row.AttendanceRowID = uuid.New()
	}
	for i := range attendances {
		if attendances[i].AttendanceID == uuid.Nil {
			attendances[i].AttendanceID = uuid.New()
		}
		attendances[i].AttendanceAttendanceRowID = row.AttendanceRowID
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if len(attendances) == 0 {
			return nil
		}
		return tx.Create(&attendances).Error
	})
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (s *GormStore) UpdateRow(ctx context.Context, m *model.AttendanceRowModel) error {
	return s.DB.WithContext(ctx).Save(m).Error
}

func (s *GormStore) DeleteRow(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attendance_attendance_row_id = ?", id).
			Delete(&model.AttendanceModel{}).Error; err != nil {
			return err
		}
		return tx.Where("attendance_row_id = ?", id).
			Delete(&model.AttendanceRowModel{}).Error
	})
}

/* =========================
   Attendances
========================= */

func (s *GormStore) GetAttendance(ctx context.Context, id uuid.UUID) (*model.AttendanceModel, error) {
	var m model.AttendanceModel
	err := s.DB.WithContext(ctx).Where("attendance_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListAttendancesByRow(ctx context.Context, rowID uuid.UUID) ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("attendance_attendance_row_id = ?", rowID).
		Order("attendance_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) ListAttendancesBySubject(ctx context.Context, subjectID uuid.UUID) ([]model.AttendanceModel, error) {
	var rows []model.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("attendance_subject_id = ?", subjectID).
		Order("attendance_created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (s *GormStore) GetAttendanceByRowAndStudentOnSubject(ctx context.Context, rowID, studentOnSubjectID uuid.UUID) (*model.AttendanceModel, error) {
	var m model.AttendanceModel
	err := s.DB.WithContext(ctx).
		Where("attendance_attendance_row_id = ? AND attendance_student_on_subject_id = ?", rowID, studentOnSubjectID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) CreateAttendance(ctx context.Context, m *model.AttendanceModel) error {
	if m.AttendanceID == uuid.Nil {
		m.AttendanceID = uuid.New()
	}
	err := s.DB.WithContext(ctx).Create(m).Error
	if isUniqueViolation(err) {
		return ErrDuplicateAttendance
	}
	return err
}

func (s *GormStore) UpdateAttendance(ctx context.Context, m *model.AttendanceModel) error {
	return s.DB.WithContext(ctx).Save(m).Error
}

/* =========================
   Enrollment reads
========================= */

func (s *GormStore) GetStudentOnSubject(ctx context.Context, id uuid.UUID) (*subjectModel.StudentOnSubjectModel, error) {
	var m subjectModel.StudentOnSubjectModel
	err := s.DB.WithContext(ctx).Where("student_on_subject_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) GetStudentOnSubjectBySubjectAndStudent(ctx context.Context, subjectID, studentID uuid.UUID) (*subjectModel.StudentOnSubjectModel, error) {
	var m subjectModel.StudentOnSubjectModel
	err := s.DB.WithContext(ctx).
		Where("student_on_subject_subject_id = ? AND student_on_subject_student_id = ?", subjectID, studentID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) GetStudent(ctx context.Context, id uuid.UUID) (*schoolModel.StudentModel, error) {
	var m schoolModel.StudentModel
	err := s.DB.WithContext(ctx).Where("student_id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ListStudentsBySubject(ctx context.Context, subjectID uuid.UUID) ([]schoolModel.StudentModel, error) {
	var rows []schoolModel.StudentModel
	err := s.DB.WithContext(ctx).
		Table("students").
		Joins("JOIN student_on_subjects ON student_on_subject_student_id = student_id").
		Where("student_on_subject_subject_id = ? AND student_on_subject_deleted_at IS NULL AND student_deleted_at IS NULL", subjectID).
		Order("student_number ASC, student_created_at ASC").
		Find(&rows).Error
	return rows, err
}
