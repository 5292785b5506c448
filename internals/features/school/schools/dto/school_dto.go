package dto

import (
	"strings"

	"gorm.io/datatypes"

	"schoolku_backend/internals/features/school/schools/model"
)

/* =========================
   Requests: schools
========================= */

type CreateSchoolRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=160"`
	Description string            `json:"description" validate:"max=1000"`
	Plan        string            `json:"plan" validate:"omitempty,oneof=FREE PREMIUM"`
	Config      datatypes.JSONMap `json:"config,omitempty"`
}

func (r *CreateSchoolRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Plan = strings.ToUpper(strings.TrimSpace(r.Plan))
}

func (r *CreateSchoolRequest) ToModel() *model.SchoolModel {
	plan := model.SchoolPlanFree
	if r.Plan != "" {
		plan = model.SchoolPlan(r.Plan)
	}
	return &model.SchoolModel{
		SchoolTitle:       r.Title,
		SchoolDescription: r.Description,
		SchoolPlan:        plan,
		SchoolConfig:      r.Config,
	}
}

type UpdateSchoolRequest struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=1,max=160"`
	Description *string            `json:"description,omitempty" validate:"omitempty,max=1000"`
	Plan        *string            `json:"plan,omitempty" validate:"omitempty,oneof=FREE PREMIUM"`
	Config      *datatypes.JSONMap `json:"config,omitempty"`
}

func (r *UpdateSchoolRequest) Normalize() {
	if r.Title != nil {
		v := strings.TrimSpace(*r.Title)
		r.Title = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
	if r.Plan != nil {
		v := strings.ToUpper(strings.TrimSpace(*r.Plan))
		r.Plan = &v
	}
}

// Apply patches only the provided fields onto the row.
func (r *UpdateSchoolRequest) Apply(m *model.SchoolModel) {
	if r.Title != nil {
		m.SchoolTitle = *r.Title
	}
	if r.Description != nil {
		m.SchoolDescription = *r.Description
	}
	if r.Plan != nil {
		m.SchoolPlan = model.SchoolPlan(*r.Plan)
	}
	if r.Config != nil {
		m.SchoolConfig = *r.Config
	}
}
