package dto

import (
	"strings"

	"github.com/google/uuid"
)

type CreateAttendanceStatusListRequest struct {
	AttendanceTableID uuid.UUID `json:"attendance_table_id" validate:"required"`
	Title             string    `json:"title" validate:"required,min=1,max=64"`
	Value             int       `json:"value"`
	Color             string    `json:"color" validate:"required,hexcolor"`
}

func (r *CreateAttendanceStatusListRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Color = strings.TrimSpace(r.Color)
}

type UpdateAttendanceStatusListRequest struct {
	Title *string `json:"title,omitempty" validate:"omitempty,min=1,max=64"`
	Value *int    `json:"value,omitempty"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

func (r *UpdateAttendanceStatusListRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.Color != nil {
		v := strings.TrimSpace(*r.Color)
		r.Color = &v
	}
}
