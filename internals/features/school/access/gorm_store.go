package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

// GormMembershipStore reads memberships straight from postgres.
type GormMembershipStore struct {
	DB *gorm.DB
}

func NewGormMembershipStore(db *gorm.DB) *GormMembershipStore {
	return &GormMembershipStore{DB: db}
}

func (s *GormMembershipStore) GetSchool(ctx context.Context, id uuid.UUID) (*schoolModel.SchoolModel, error) {
	var m schoolModel.SchoolModel
	err := s.DB.WithContext(ctx).
		Where("school_id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormMembershipStore) GetMemberOnSchool(ctx context.Context, userID, schoolID uuid.UUID) (*schoolModel.MemberOnSchoolModel, error) {
	var m schoolModel.MemberOnSchoolModel
	err := s.DB.WithContext(ctx).
		Where("member_on_school_user_id = ? AND member_on_school_school_id = ?", userID, schoolID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormMembershipStore) GetSubject(ctx context.Context, id uuid.UUID) (*subjectModel.SubjectModel, error) {
	var m subjectModel.SubjectModel
	err := s.DB.WithContext(ctx).
		Where("subject_id = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormMembershipStore) GetTeacherOnSubject(ctx context.Context, userID, subjectID uuid.UUID) (*subjectModel.TeacherOnSubjectModel, error) {
	var m subjectModel.TeacherOnSubjectModel
	err := s.DB.WithContext(ctx).
		Where("teacher_on_subject_user_id = ? AND teacher_on_subject_subject_id = ?", userID, subjectID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *GormMembershipStore) ListStudentOnSubjectsBySubject(ctx context.Context, subjectID uuid.UUID) ([]subjectModel.StudentOnSubjectModel, error) {
	var rows []subjectModel.StudentOnSubjectModel
	err := s.DB.WithContext(ctx).
		Where("student_on_subject_subject_id = ? AND student_on_subject_is_active", subjectID).
		Order("student_on_subject_created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
