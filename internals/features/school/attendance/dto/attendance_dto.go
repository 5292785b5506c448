package dto

import (
	"strings"

	"github.com/google/uuid"
)

type CreateAttendanceRequest struct {
	AttendanceRowID    uuid.UUID `json:"attendance_row_id" validate:"required"`
	StudentOnSubjectID uuid.UUID `json:"student_on_subject_id" validate:"required"`
	Status             string    `json:"status" validate:"required,min=1,max=64"`
	Note               string    `json:"note" validate:"max=1000"`
}

func (r *CreateAttendanceRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
	r.Note = strings.TrimSpace(r.Note)
}

// UpdateAttendanceRequest is a partial patch; nil fields are untouched.
type UpdateAttendanceRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,min=1,max=64"`
	Note   *string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateAttendanceRequest) Normalize() {
	if r.Status != nil {
		v := strings.TrimSpace(*r.Status)
		r.Status = &v
	}
	if r.Note != nil {
		v := strings.TrimSpace(*r.Note)
		r.Note = &v
	}
}

type UpdateManyAttendanceItem struct {
	AttendanceID uuid.UUID               `json:"attendance_id" validate:"required"`
	Body         UpdateAttendanceRequest `json:"body"`
}

type UpdateManyAttendanceRequest struct {
	Items []UpdateManyAttendanceItem `json:"items" validate:"required,min=1,dive"`
}

func (r *UpdateManyAttendanceRequest) Normalize() {
	for i := range r.Items {
		r.Items[i].Body.Normalize()
	}
}

// ExportExcelResult wraps the spreadsheet as a base64 data URI.
type ExportExcelResult struct {
	DataURI string `json:"data_uri"`
}
