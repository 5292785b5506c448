package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================
   Model: classes
========================================= */

type ClassModel struct {
	ClassID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:class_school_id" json:"class_school_id"`
	ClassTitle    string    `gorm:"type:text;not null;column:class_title" json:"class_title"`
	ClassLevel    string    `gorm:"type:text;not null;default:'';column:class_level" json:"class_level"`

	ClassCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:class_updated_at" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

/* =========================================
   Model: students (belongs to school + class)
========================================= */

type StudentModel struct {
	StudentID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:student_id" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:student_school_id" json:"student_school_id"`
	StudentClassID  uuid.UUID `gorm:"type:uuid;not null;index;column:student_class_id" json:"student_class_id"`
	StudentTitle    string    `gorm:"type:text;not null;column:student_title" json:"student_title"`
	StudentNumber   string    `gorm:"type:text;not null;default:'';column:student_number" json:"student_number"`

	StudentCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }
