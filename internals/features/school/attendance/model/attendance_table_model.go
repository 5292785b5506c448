package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================
   Model: attendance_tables
   A named check-in campaign for one subject.
========================================= */

type AttendanceTableModel struct {
	AttendanceTableID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_table_id" json:"attendance_table_id"`
	AttendanceTableSubjectID   uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_table_subject_id" json:"attendance_table_subject_id"`
	AttendanceTableSchoolID    uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_table_school_id" json:"attendance_table_school_id"`
	AttendanceTableTitle       string    `gorm:"type:text;not null;column:attendance_table_title" json:"attendance_table_title"`
	AttendanceTableDescription string    `gorm:"type:text;not null;default:'';column:attendance_table_description" json:"attendance_table_description"`

	AttendanceTableCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_table_created_at" json:"attendance_table_created_at"`
	AttendanceTableUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_table_updated_at" json:"attendance_table_updated_at"`
	AttendanceTableDeletedAt gorm.DeletedAt `gorm:"column:attendance_table_deleted_at;index" json:"attendance_table_deleted_at,omitempty"`
}

func (AttendanceTableModel) TableName() string { return "attendance_tables" }
