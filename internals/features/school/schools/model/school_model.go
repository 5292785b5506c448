package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Enums
========================= */

type SchoolPlan string

const (
	SchoolPlanFree    SchoolPlan = "FREE"
	SchoolPlanPremium SchoolPlan = "PREMIUM"
)

/* =========================================
   Model: schools (tenant root)
========================================= */

type SchoolModel struct {
	SchoolID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:school_id" json:"school_id"`
	SchoolTitle       string            `gorm:"type:text;not null;column:school_title" json:"school_title"`
	SchoolDescription string            `gorm:"type:text;not null;default:'';column:school_description" json:"school_description"`
	SchoolPlan        SchoolPlan        `gorm:"type:text;not null;default:'FREE';column:school_plan" json:"school_plan"`
	SchoolConfig      datatypes.JSONMap `gorm:"type:jsonb;column:school_config" json:"school_config,omitempty"`

	SchoolCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:school_created_at" json:"school_created_at"`
	SchoolUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:school_updated_at" json:"school_updated_at"`
	SchoolDeletedAt gorm.DeletedAt `gorm:"column:school_deleted_at;index" json:"school_deleted_at,omitempty"`
}

func (SchoolModel) TableName() string { return "schools" }
