package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/attendance/model"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
)

/* =========================
   Requests
========================= */

type CreateAttendanceTableRequest struct {
	SubjectID   uuid.UUID `json:"subject_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=1,max=160"`
	Description string    `json:"description" validate:"max=1000"`
}

func (r *CreateAttendanceTableRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

type UpdateAttendanceTableRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (r *UpdateAttendanceTableRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
}

/* =========================
   Responses
========================= */

// AttendanceTableWithStatusLists is the create/list shape; callers rely on
// status_lists being populated in the same response, never lazily.
type AttendanceTableWithStatusLists struct {
	model.AttendanceTableModel
	StatusLists []model.AttendanceStatusListModel `json:"status_lists"`
}

// AttendanceTableDetail nests rows with their attendances plus the
// currently enrolled students.
type AttendanceTableDetail struct {
	model.AttendanceTableModel
	StatusLists []model.AttendanceStatusListModel `json:"status_lists"`
	Rows        []AttendanceRowWithAttendances    `json:"rows"`
	Students    []schoolModel.StudentModel        `json:"students"`
}
