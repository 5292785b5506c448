package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/attendance/model"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

/* =========================
   Requests
========================= */

type CreateAttendanceRowRequest struct {
	AttendanceTableID uuid.UUID               `json:"attendance_table_id" validate:"required"`
	StartDate         time.Time               `json:"start_date" validate:"required"`
	EndDate           time.Time               `json:"end_date" validate:"required"`
	Note              string                  `json:"note" validate:"max=1000"`
	Type              model.AttendanceRowType `json:"type" validate:"required,oneof=SCAN MANUAL"`

	// Mandatory as a triple when Type == SCAN
	AllowScanAt         *time.Time `json:"allow_scan_at,omitempty"`
	ExpireAt            *time.Time `json:"expire_at,omitempty"`
	IsAllowScanManyTime *bool      `json:"is_allow_scan_many_time,omitempty"`
}

func (r *CreateAttendanceRowRequest) Normalize() {
	r.Note = strings.TrimSpace(r.Note)
}

// HasScanFields reports whether the SCAN triple is fully present.
func (r *CreateAttendanceRowRequest) HasScanFields() bool {
	return r.AllowScanAt != nil && r.ExpireAt != nil && r.IsAllowScanManyTime != nil
}

func (r *CreateAttendanceRowRequest) ToModel() model.AttendanceRowModel {
	m := model.AttendanceRowModel{
		AttendanceRowAttendanceTableID: r.AttendanceTableID,
		AttendanceRowStartDate:         r.StartDate,
		AttendanceRowEndDate:           r.EndDate,
		AttendanceRowNote:              r.Note,
		AttendanceRowType:              r.Type,
		AttendanceRowAllowScanAt:       r.AllowScanAt,
		AttendanceRowExpireAt:          r.ExpireAt,
	}
	if r.IsAllowScanManyTime != nil {
		m.AttendanceRowIsAllowScanManyTime = *r.IsAllowScanManyTime
	}
	return m
}

type UpdateAttendanceRowRequest struct {
	StartDate           *time.Time `json:"start_date,omitempty"`
	EndDate             *time.Time `json:"end_date,omitempty"`
	Note                *string    `json:"note,omitempty" validate:"omitempty,max=1000"`
	AllowScanAt         *time.Time `json:"allow_scan_at,omitempty"`
	ExpireAt            *time.Time `json:"expire_at,omitempty"`
	IsAllowScanManyTime *bool      `json:"is_allow_scan_many_time,omitempty"`
}

func (r *UpdateAttendanceRowRequest) Normalize() {
	if r.Note != nil {
		v := strings.TrimSpace(*r.Note)
		r.Note = &v
	}
}

/* =========================
   Responses
========================= */

type AttendanceRowWithAttendances struct {
	model.AttendanceRowModel
	Attendances []model.AttendanceModel `json:"attendances"`
}

// QrCodeStudent pairs an enrolled student with its attendance for the row,
// if one exists yet.
type QrCodeStudent struct {
	StudentOnSubjectID uuid.UUID                `json:"student_on_subject_id"`
	Student            schoolModel.StudentModel `json:"student"`
	Attendance         *model.AttendanceModel   `json:"attendance,omitempty"`
}

// QrCodePayload is the unauthenticated read backing client-side QR
// rendering on a projector.
type QrCodePayload struct {
	Row      model.AttendanceRowModel          `json:"row"`
	Subject  subjectModel.SubjectModel         `json:"subject"`
	Status   []model.AttendanceStatusListModel `json:"status"`
	Students []QrCodeStudent                   `json:"students"`
}
