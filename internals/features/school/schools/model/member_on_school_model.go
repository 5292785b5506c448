package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enums (shared with subject memberships)
========================= */

type MemberRole string

const (
	MemberRoleAdmin   MemberRole = "ADMIN"
	MemberRoleTeacher MemberRole = "TEACHER"
)

func (r MemberRole) Valid() bool {
	return r == MemberRoleAdmin || r == MemberRoleTeacher
}

type MemberStatus string

const (
	MemberStatusPending MemberStatus = "PENDING"
	MemberStatusAccept  MemberStatus = "ACCEPT"
	MemberStatusReject  MemberStatus = "REJECT"
)

func (s MemberStatus) Valid() bool {
	return s == MemberStatusPending || s == MemberStatusAccept || s == MemberStatusReject
}

/* =========================================
   Model: member_on_schools
   Unique: one membership per (user, school)
========================================= */

type MemberOnSchoolModel struct {
	MemberOnSchoolID       uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:member_on_school_id" json:"member_on_school_id"`
	MemberOnSchoolUserID   uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_member_on_school_user_school;column:member_on_school_user_id" json:"member_on_school_user_id"`
	MemberOnSchoolSchoolID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_member_on_school_user_school;index;column:member_on_school_school_id" json:"member_on_school_school_id"`
	MemberOnSchoolRole     MemberRole   `gorm:"type:text;not null;column:member_on_school_role" json:"member_on_school_role"`
	MemberOnSchoolStatus   MemberStatus `gorm:"type:text;not null;default:'PENDING';column:member_on_school_status" json:"member_on_school_status"`

	MemberOnSchoolCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:member_on_school_created_at" json:"member_on_school_created_at"`
	MemberOnSchoolUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:member_on_school_updated_at" json:"member_on_school_updated_at"`
	MemberOnSchoolDeletedAt gorm.DeletedAt `gorm:"column:member_on_school_deleted_at;index" json:"member_on_school_deleted_at,omitempty"`
}

func (MemberOnSchoolModel) TableName() string { return "member_on_schools" }
