package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttendanceStatusUnknown seeds every fan-out record before anyone checks in.
const AttendanceStatusUnknown = "UNKNOWN"

/* =========================================
   Model: attendances
   One per (row, student_on_subject) pair; the unique index is the
   sole serialization point for concurrent scans.
   Status is free text but must match a status-list title at write time.
========================================= */

type AttendanceModel struct {
	AttendanceID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_id" json:"attendance_id"`
	AttendanceAttendanceRowID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_row_student;column:attendance_attendance_row_id" json:"attendance_attendance_row_id"`
	AttendanceStudentOnSubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_attendance_row_student;index;column:attendance_student_on_subject_id" json:"attendance_student_on_subject_id"`

	// Denormalized for query locality
	AttendanceAttendanceTableID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_attendance_table_id" json:"attendance_attendance_table_id"`
	AttendanceSubjectID         uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_subject_id" json:"attendance_subject_id"`
	AttendanceSchoolID          uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_school_id" json:"attendance_school_id"`
	AttendanceStudentID         uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_student_id" json:"attendance_student_id"`

	AttendanceStatus string `gorm:"type:text;not null;default:'UNKNOWN';column:attendance_status" json:"attendance_status"`
	AttendanceNote   string `gorm:"type:text;not null;default:'';column:attendance_note" json:"attendance_note"`

	AttendanceCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_created_at" json:"attendance_created_at"`
	AttendanceUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_updated_at" json:"attendance_updated_at"`
	AttendanceDeletedAt gorm.DeletedAt `gorm:"column:attendance_deleted_at;index" json:"attendance_deleted_at,omitempty"`
}

func (AttendanceModel) TableName() string { return "attendances" }
