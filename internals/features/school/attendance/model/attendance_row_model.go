package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type AttendanceRowType string

const (
	AttendanceRowTypeScan   AttendanceRowType = "SCAN"
	AttendanceRowTypeManual AttendanceRowType = "MANUAL"
)

func (t AttendanceRowType) Valid() bool {
	return t == AttendanceRowTypeScan || t == AttendanceRowTypeManual
}

/* =========================================
   Model: attendance_rows
   One timed check-in window within a table.
   SCAN rows carry the [allow_scan_at, expire_at] window;
   closure is implied by now > expire_at, there is no closed state.
========================================= */

type AttendanceRowModel struct {
	AttendanceRowID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_row_id" json:"attendance_row_id"`
	AttendanceRowAttendanceTableID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_row_attendance_table_id" json:"attendance_row_attendance_table_id"`
	// Denormalized for query locality
	AttendanceRowSubjectID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_row_subject_id" json:"attendance_row_subject_id"`
	AttendanceRowSchoolID  uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_row_school_id" json:"attendance_row_school_id"`

	AttendanceRowStartDate time.Time         `gorm:"type:timestamptz;not null;column:attendance_row_start_date" json:"attendance_row_start_date"`
	AttendanceRowEndDate   time.Time         `gorm:"type:timestamptz;not null;column:attendance_row_end_date" json:"attendance_row_end_date"`
	AttendanceRowNote      string            `gorm:"type:text;not null;default:'';column:attendance_row_note" json:"attendance_row_note"`
	AttendanceRowType      AttendanceRowType `gorm:"type:text;not null;column:attendance_row_type" json:"attendance_row_type"`

	AttendanceRowAllowScanAt         *time.Time `gorm:"type:timestamptz;column:attendance_row_allow_scan_at" json:"attendance_row_allow_scan_at,omitempty"`
	AttendanceRowExpireAt            *time.Time `gorm:"type:timestamptz;column:attendance_row_expire_at" json:"attendance_row_expire_at,omitempty"`
	AttendanceRowIsAllowScanManyTime bool       `gorm:"not null;default:false;column:attendance_row_is_allow_scan_many_time" json:"attendance_row_is_allow_scan_many_time"`

	AttendanceRowCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_row_created_at" json:"attendance_row_created_at"`
	AttendanceRowUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_row_updated_at" json:"attendance_row_updated_at"`
	AttendanceRowDeletedAt gorm.DeletedAt `gorm:"column:attendance_row_deleted_at;index" json:"attendance_row_deleted_at,omitempty"`
}

func (AttendanceRowModel) TableName() string { return "attendance_rows" }
