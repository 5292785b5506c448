package dto

import (
	"strings"

	"github.com/google/uuid"

	schoolModel "schoolku_backend/internals/features/school/schools/model"
	"schoolku_backend/internals/features/school/subjects/model"
)

/* =========================
   Requests: subjects
========================= */

type CreateSubjectRequest struct {
	SchoolID      uuid.UUID `json:"school_id" validate:"required"`
	ClassID       uuid.UUID `json:"class_id" validate:"required"`
	Title         string    `json:"title" validate:"required,min=1,max=160"`
	Description   string    `json:"description" validate:"max=1000"`
	Code          string    `json:"code" validate:"required,min=1,max=32"`
	EducationYear string    `json:"education_year" validate:"max=16"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Code = strings.ToUpper(strings.TrimSpace(r.Code))
	r.EducationYear = strings.TrimSpace(r.EducationYear)
}

func (r *CreateSubjectRequest) ToModel() *model.SubjectModel {
	return &model.SubjectModel{
		SubjectSchoolID:      r.SchoolID,
		SubjectClassID:       r.ClassID,
		SubjectTitle:         r.Title,
		SubjectDescription:   r.Description,
		SubjectCode:          r.Code,
		SubjectEducationYear: r.EducationYear,
	}
}

type UpdateSubjectRequest struct {
	Title         *string `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Code          *string `json:"code,omitempty" validate:"omitempty,min=1,max=32"`
	EducationYear *string `json:"education_year,omitempty" validate:"omitempty,max=16"`
}

func (r *UpdateSubjectRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
	if r.Code != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Code))
		r.Code = &v
	}
	if r.EducationYear != nil {
		v := strings.TrimSpace(*r.EducationYear)
		r.EducationYear = &v
	}
}

func (r *UpdateSubjectRequest) Apply(m *model.SubjectModel) {
	if r.Title != nil {
		m.SubjectTitle = *r.Title
	}
	if r.Description != nil {
		m.SubjectDescription = *r.Description
	}
	if r.Code != nil {
		m.SubjectCode = *r.Code
	}
	if r.EducationYear != nil {
		m.SubjectEducationYear = *r.EducationYear
	}
}

/* =========================
   Requests: teacher-on-subject
========================= */

type InviteTeacherOnSubjectRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	UserID    uuid.UUID `json:"user_id" validate:"required"`
	Role      string    `json:"role" validate:"required"`
}

func (r *InviteTeacherOnSubjectRequest) Normalize() {
	r.Role = strings.ToUpper(strings.TrimSpace(r.Role))
}

type RespondTeacherOnSubjectRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *RespondTeacherOnSubjectRequest) Normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

func (r *RespondTeacherOnSubjectRequest) ParsedStatus() (schoolModel.MemberStatus, bool) {
	s := schoolModel.MemberStatus(r.Status)
	return s, s == schoolModel.MemberStatusAccept || s == schoolModel.MemberStatusReject
}
