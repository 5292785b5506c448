package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/access"
	schoolDTO "schoolku_backend/internals/features/school/schools/dto"
	"schoolku_backend/internals/features/school/schools/model"
	helper "schoolku_backend/internals/helpers"
)

var validate = validator.New()

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SchoolController struct {
	DB     *gorm.DB
	Engine *access.Engine
}

func NewSchoolController(db *gorm.DB) *SchoolController {
	return &SchoolController{
		DB:     db,
		Engine: access.NewEngine(access.NewGormMembershipStore(db)),
	}
}

// POST /schools
// The creator becomes an ACCEPT ADMIN member in the same transaction, so a
// fresh school is administrable the moment it exists.
func (ctrl *SchoolController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req schoolDTO.CreateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	school := req.ToModel()
	school.SchoolID = uuid.New()
	member := &model.MemberOnSchoolModel{
		MemberOnSchoolID:       uuid.New(),
		MemberOnSchoolUserID:   userID,
		MemberOnSchoolSchoolID: school.SchoolID,
		MemberOnSchoolRole:     model.MemberRoleAdmin,
		MemberOnSchoolStatus:   model.MemberStatusAccept,
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(school).Error; err != nil {
			return err
		}
		return tx.Create(member).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create school")
	}

	return helper.JsonCreated(c, "School created", fiber.Map{
		"school": school,
		"member": member,
	})
}

// GET /schools/:id
func (ctrl *SchoolController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	schoolID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	if _, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, schoolID); err != nil {
		return err
	}

	var school model.SchoolModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&school, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load school")
	}
	return helper.JsonOK(c, "ok", school)
}

// PATCH /schools/:id
func (ctrl *SchoolController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	schoolID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	member, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, schoolID)
	if err != nil {
		return err
	}
	if member.MemberOnSchoolRole != model.MemberRoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Admin role required")
	}

	var req schoolDTO.UpdateSchoolRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var school model.SchoolModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&school, "school_id = ?", schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "School not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load school")
	}

	req.Apply(&school)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&school).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update school")
	}
	return helper.JsonUpdated(c, "School updated", school)
}

// DELETE /schools/:id (soft delete; memberships stay for audit)
func (ctrl *SchoolController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	schoolID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid school id")
	}

	member, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, schoolID)
	if err != nil {
		return err
	}
	if member.MemberOnSchoolRole != model.MemberRoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Admin role required")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.SchoolModel{}, "school_id = ?", schoolID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete school")
	}
	return helper.JsonDeleted(c, "School deleted", fiber.Map{"school_id": schoolID})
}
