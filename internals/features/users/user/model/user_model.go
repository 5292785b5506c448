package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================
   Model: users
========================================= */

type UserModel struct {
	UserID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`
	UserEmail    string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email;column:user_email" json:"user_email"`
	UserPassword string    `gorm:"type:text;not null;column:user_password" json:"-"`
	UserName     string    `gorm:"type:text;not null;column:user_name" json:"user_name"`

	UserCreatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:user_created_at" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"type:timestamptz;not null;default:now();column:user_updated_at" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }
