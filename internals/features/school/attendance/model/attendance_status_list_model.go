package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================
   Model: attendance_status_lists
   Per-table vocabulary of named, colored, valued statuses.
   Title is unique within its table (case-sensitive).
========================================= */

type AttendanceStatusListModel struct {
	AttendanceStatusListID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_status_list_id" json:"attendance_status_list_id"`
	AttendanceStatusListAttendanceTableID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_status_list_attendance_table_id" json:"attendance_status_list_attendance_table_id"`
	// Denormalized for query locality
	AttendanceStatusListSubjectID uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_status_list_subject_id" json:"attendance_status_list_subject_id"`
	AttendanceStatusListSchoolID  uuid.UUID `gorm:"type:uuid;not null;index;column:attendance_status_list_school_id" json:"attendance_status_list_school_id"`

	AttendanceStatusListTitle string `gorm:"type:text;not null;column:attendance_status_list_title" json:"attendance_status_list_title"`
	AttendanceStatusListValue int    `gorm:"not null;column:attendance_status_list_value" json:"attendance_status_list_value"`
	AttendanceStatusListColor string `gorm:"type:varchar(16);not null;column:attendance_status_list_color" json:"attendance_status_list_color"`

	AttendanceStatusListCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_status_list_created_at" json:"attendance_status_list_created_at"`
	AttendanceStatusListUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:attendance_status_list_updated_at" json:"attendance_status_list_updated_at"`
	AttendanceStatusListDeletedAt gorm.DeletedAt `gorm:"column:attendance_status_list_deleted_at;index" json:"attendance_status_list_deleted_at,omitempty"`
}

func (AttendanceStatusListModel) TableName() string { return "attendance_status_lists" }

// DefaultStatusSeed is one entry of the fixed vocabulary seeded at table creation.
type DefaultStatusSeed struct {
	Title string
	Value int
	Color string
}

// DefaultStatusSeeds are inserted synchronously when a table is created,
// each with a distinct value. Teachers may add more afterwards.
var DefaultStatusSeeds = []DefaultStatusSeed{
	{Title: "Present", Value: 1, Color: "#4CAF50"},
	{Title: "Late", Value: 2, Color: "#FFC107"},
	{Title: "Sick", Value: 3, Color: "#2196F3"},
	{Title: "Absent", Value: 4, Color: "#F44336"},
	{Title: "Holiday", Value: 5, Color: "#9E9E9E"},
}
