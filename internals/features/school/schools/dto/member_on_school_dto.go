package dto

import (
	"strings"

	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/schools/model"
)

/* =========================
   Requests: memberships
========================= */

type InviteMemberRequest struct {
	SchoolID uuid.UUID `json:"school_id" validate:"required"`
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	Role     string    `json:"role" validate:"required"`
}

func (r *InviteMemberRequest) Normalize() {
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

func (r *InviteMemberRequest) ToModel() *model.MemberOnSchoolModel {
	return &model.MemberOnSchoolModel{
		MemberOnSchoolUserID:   r.UserID,
		MemberOnSchoolSchoolID: r.SchoolID,
		MemberOnSchoolRole:     model.MemberRole(r.Role),
		MemberOnSchoolStatus:   model.MemberStatusPending,
	}
}

// RespondInviteRequest flips a PENDING membership to ACCEPT or REJECT.
type RespondInviteRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *RespondInviteRequest) Normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

/* =========================
   Requests: classes & students
========================= */

type CreateClassRequest struct {
	SchoolID uuid.UUID `json:"school_id" validate:"required"`
	Title    string    `json:"title" validate:"required,min=1,max=160"`
	Level    string    `json:"level" validate:"max=40"`
}

func (r *CreateClassRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Level = strings.TrimSpace(r.Level)
}

func (r *CreateClassRequest) ToModel() *model.ClassModel {
	return &model.ClassModel{
		ClassSchoolID: r.SchoolID,
		ClassTitle:    r.Title,
		ClassLevel:    r.Level,
	}
}

type CreateStudentRequest struct {
	SchoolID uuid.UUID `json:"school_id" validate:"required"`
	ClassID  uuid.UUID `json:"class_id" validate:"required"`
	Title    string    `json:"title" validate:"required,min=1,max=160"`
	Number   string    `json:"number" validate:"max=20"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Number = strings.TrimSpace(r.Number)
}

func (r *CreateStudentRequest) ToModel() *model.StudentModel {
	return &model.StudentModel{
		StudentSchoolID: r.SchoolID,
		StudentClassID:  r.ClassID,
		StudentTitle:    r.Title,
		StudentNumber:   r.Number,
	}
}
