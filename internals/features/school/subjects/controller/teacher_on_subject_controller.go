package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/notifications"
	"schoolku_backend/internals/features/school/access"
	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectDTO "schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

type TeacherOnSubjectController struct {
	DB       *gorm.DB
	Engine   *access.Engine
	Notifier notifications.Notifier
}

func NewTeacherOnSubjectController(db *gorm.DB) *TeacherOnSubjectController {
	return &TeacherOnSubjectController{
		DB:       db,
		Engine:   access.NewEngine(access.NewGormMembershipStore(db)),
		Notifier: notifications.NewLogNotifier(),
	}
}

// POST /teacher-on-subjects
// An existing subject teacher (or school admin) invites another member.
func (ctrl *TeacherOnSubjectController) Invite(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req subjectDTO.InviteTeacherOnSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if !schoolModel.MemberRole(req.Role).Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
	}

	grant, err := ctrl.Engine.AuthorizeSubjectTeacher(c.UserContext(), userID, req.SubjectID)
	if err != nil {
		return err
	}

	// The invited user must already hold an ACCEPT school membership.
	if _, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), req.UserID, grant.Subject.SubjectSchoolID); err != nil {
		return err
	}

	invite := &model.TeacherOnSubjectModel{
		TeacherOnSubjectID:        uuid.New(),
		TeacherOnSubjectUserID:    req.UserID,
		TeacherOnSubjectSubjectID: req.SubjectID,
		TeacherOnSubjectSchoolID:  grant.Subject.SubjectSchoolID,
		TeacherOnSubjectRole:      schoolModel.MemberRole(req.Role),
		TeacherOnSubjectStatus:    schoolModel.MemberStatusPending,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(invite).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Teacher already exists on this subject")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create invitation")
	}

	notifications.Dispatch(ctrl.Notifier, notifications.Notification{
		UserID:  req.UserID,
		Title:   "Subject invitation",
		Message: "You have been invited to teach " + grant.Subject.SubjectTitle,
	})

	return helper.JsonCreated(c, "Teacher invited", invite)
}

// PATCH /teacher-on-subjects/:id/respond
func (ctrl *TeacherOnSubjectController) Respond(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	inviteID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teacher id")
	}

	var req subjectDTO.RespondTeacherOnSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	status, ok := req.ParsedStatus()
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	var invite model.TeacherOnSubjectModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&invite, "teacher_on_subject_id = ?", inviteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Teacher not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load invitation")
	}
	if invite.TeacherOnSubjectUserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Not your invitation")
	}

	invite.TeacherOnSubjectStatus = status
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&invite).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update invitation")
	}
	return helper.JsonUpdated(c, "Teacher updated", invite)
}

// GET /subjects/:id/teachers
func (ctrl *TeacherOnSubjectController) ListBySubject(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	var subject model.SubjectModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&subject, "subject_id = ?", subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Subject not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load subject")
	}

	if _, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, subject.SubjectSchoolID); err != nil {
		return err
	}

	var teachers []model.TeacherOnSubjectModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("teacher_on_subject_subject_id = ?", subjectID).
		Order("teacher_on_subject_created_at ASC").
		Find(&teachers).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list teachers")
	}
	return helper.JsonOK(c, "ok", teachers)
}
