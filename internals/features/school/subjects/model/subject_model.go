package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	schoolModel "schoolku_backend/internals/features/school/schools/model"
)

/* =========================================
   Model: subjects
   Code is unique within a school.
========================================= */

type SubjectModel struct {
	SubjectID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:subject_id" json:"subject_id"`
	SubjectSchoolID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_subject_school_code;index;column:subject_school_id" json:"subject_school_id"`
	SubjectClassID       uuid.UUID `gorm:"type:uuid;not null;index;column:subject_class_id" json:"subject_class_id"`
	SubjectTitle         string    `gorm:"type:text;not null;column:subject_title" json:"subject_title"`
	SubjectDescription   string    `gorm:"type:text;not null;default:'';column:subject_description" json:"subject_description"`
	SubjectCode          string    `gorm:"type:varchar(32);not null;uniqueIndex:uq_subject_school_code;column:subject_code" json:"subject_code"`
	SubjectEducationYear string    `gorm:"type:varchar(16);not null;default:'';column:subject_education_year" json:"subject_education_year"`

	SubjectCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:subject_created_at" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:subject_updated_at" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

/* =========================================
   Model: teacher_on_subjects
   Authorizes subject-scoped writes.
========================================= */

type TeacherOnSubjectModel struct {
	TeacherOnSubjectID        uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:teacher_on_subject_id" json:"teacher_on_subject_id"`
	TeacherOnSubjectUserID    uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_on_subject_user_subject;column:teacher_on_subject_user_id" json:"teacher_on_subject_user_id"`
	TeacherOnSubjectSubjectID uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex:uq_teacher_on_subject_user_subject;index;column:teacher_on_subject_subject_id" json:"teacher_on_subject_subject_id"`
	TeacherOnSubjectSchoolID  uuid.UUID                `gorm:"type:uuid;not null;index;column:teacher_on_subject_school_id" json:"teacher_on_subject_school_id"`
	TeacherOnSubjectRole      schoolModel.MemberRole   `gorm:"type:text;not null;column:teacher_on_subject_role" json:"teacher_on_subject_role"`
	TeacherOnSubjectStatus    schoolModel.MemberStatus `gorm:"type:text;not null;default:'PENDING';column:teacher_on_subject_status" json:"teacher_on_subject_status"`

	TeacherOnSubjectCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:teacher_on_subject_created_at" json:"teacher_on_subject_created_at"`
	TeacherOnSubjectUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:teacher_on_subject_updated_at" json:"teacher_on_subject_updated_at"`
	TeacherOnSubjectDeletedAt gorm.DeletedAt `gorm:"column:teacher_on_subject_deleted_at;index" json:"teacher_on_subject_deleted_at,omitempty"`
}

func (TeacherOnSubjectModel) TableName() string { return "teacher_on_subjects" }

/* =========================================
   Model: student_on_subjects
   Enrollment record keying a student to a subject offering;
   attendance records hang off this, not the bare student id.
========================================= */

type StudentOnSubjectModel struct {
	StudentOnSubjectID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_on_subject_id" json:"student_on_subject_id"`
	StudentOnSubjectStudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_on_subject_student_subject;column:student_on_subject_student_id" json:"student_on_subject_student_id"`
	StudentOnSubjectSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_student_on_subject_student_subject;index;column:student_on_subject_subject_id" json:"student_on_subject_subject_id"`
	StudentOnSubjectSchoolID  uuid.UUID `gorm:"type:uuid;not null;index;column:student_on_subject_school_id" json:"student_on_subject_school_id"`
	StudentOnSubjectIsActive  bool      `gorm:"not null;default:true;column:student_on_subject_is_active" json:"student_on_subject_is_active"`

	StudentOnSubjectCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_on_subject_created_at" json:"student_on_subject_created_at"`
	StudentOnSubjectUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_on_subject_updated_at" json:"student_on_subject_updated_at"`
	StudentOnSubjectDeletedAt gorm.DeletedAt `gorm:"column:student_on_subject_deleted_at;index" json:"student_on_subject_deleted_at,omitempty"`
}

func (StudentOnSubjectModel) TableName() string { return "student_on_subjects" }
