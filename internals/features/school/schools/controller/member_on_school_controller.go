package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/notifications"
	"schoolku_backend/internals/features/school/access"
	schoolDTO "schoolku_backend/internals/features/school/schools/dto"
	"schoolku_backend/internals/features/school/schools/model"
	helper "schoolku_backend/internals/helpers"
)

type MemberOnSchoolController struct {
	DB       *gorm.DB
	Engine   *access.Engine
	Notifier notifications.Notifier
}

func NewMemberOnSchoolController(db *gorm.DB) *MemberOnSchoolController {
	return &MemberOnSchoolController{
		DB:       db,
		Engine:   access.NewEngine(access.NewGormMembershipStore(db)),
		Notifier: notifications.NewLogNotifier(),
	}
}

// POST /member-on-schools
// Admin invites a user; the membership starts PENDING and grants nothing
// until the user accepts.
func (ctrl *MemberOnSchoolController) Invite(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req schoolDTO.InviteMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !model.MemberRole(req.Role).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
	}

	member, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, req.SchoolID)
	if err != nil {
		return err
	}
	if member.MemberOnSchoolRole != model.MemberRoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Admin role required")
	}

	invite := req.ToModel()
	invite.MemberOnSchoolID = uuid.New()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(invite).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Member already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create invitation")
	}

	notifications.Dispatch(ctrl.Notifier, notifications.Notification{
		UserID:  req.UserID,
		Title:   "School invitation",
		Message: "You have been invited to join a school as " + req.Role,
	})

	return helper.JsonCreated(c, "Member invited", invite)
}

// PATCH /member-on-schools/:id/respond
// Only the invited user may settle its own PENDING invite.
func (ctrl *MemberOnSchoolController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	memberID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid member id")
	}

	var req schoolDTO.RespondInviteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	status := model.MemberStatus(req.Status)
	if status != model.MemberStatusAccept && status != model.MemberStatusReject {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	var member model.MemberOnSchoolModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&member, "member_on_school_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load member")
	}
	if member.MemberOnSchoolUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Not your invitation")
	}

	member.MemberOnSchoolStatus = status
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&member).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update member")
	}

	notifications.Dispatch(ctrl.Notifier, notifications.Notification{
		UserID:  member.MemberOnSchoolUserID,
		Title:   "Invitation " + strings.ToLower(string(status)) + "ed",
		Message: "Your school membership is now " + string(status),
	})

	return helper.JsonUpdated(c, "Member updated", member)
}

// GET /schools/:id/members
func (ctrl *MemberOnSchoolController) ListBySchool(c *fiber.Ctx) error {
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

	var members []model.MemberOnSchoolModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("member_on_school_school_id = ?", schoolID).
		Order("member_on_school_created_at ASC").
		Find(&members).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list members")
	}
	return helper.JsonOK(c, "ok", members)
}

// DELETE /member-on-schools/:id
// A school must keep at least one ACCEPT ADMIN; the guard sits on
// deletion only, never on membership creation.
func (ctrl *MemberOnSchoolController) Remove(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	memberID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid member id")
	}

	var target model.MemberOnSchoolModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&target, "member_on_school_id = ?", memberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Member not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load member")
	}

	actor, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, target.MemberOnSchoolSchoolID)
	if err != nil {
		return err
	}
	if actor.MemberOnSchoolRole != model.MemberRoleAdmin && actor.MemberOnSchoolUserID != target.MemberOnSchoolUserID {
		return fiber.NewError(fiber.StatusForbidden, "Admin role required")
	}

	if target.MemberOnSchoolRole == model.MemberRoleAdmin && target.MemberOnSchoolStatus == model.MemberStatusAccept {
		var admins int64
		if err := ctrl.DB.WithContext(c.UserContext()).
			Model(&model.MemberOnSchoolModel{}).
			Where("member_on_school_school_id = ? AND member_on_school_role = ? AND member_on_school_status = ?",
				target.MemberOnSchoolSchoolID, model.MemberRoleAdmin, model.MemberStatusAccept).
			Count(&admins).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to count admins")
		}
		if admins <= 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Cannot remove the last admin of this school")
		}
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Delete(&model.MemberOnSchoolModel{}, "member_on_school_id = ?", memberID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to remove member")
	}
	return helper.JsonDeleted(c, "Member removed", fiber.Map{"member_on_school_id": memberID})
}
