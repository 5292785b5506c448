package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/access"
	attendanceDTO "schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/service"
	helper "schoolku_backend/internals/helpers"
)

type AttendanceStatusListController struct {
	svc *service.StatusListService
}

func NewAttendanceStatusListController(db *gorm.DB) *AttendanceStatusListController {
	store := service.NewGormStore(db)
	engine := access.NewEngine(access.NewGormMembershipStore(db))
	return &AttendanceStatusListController{svc: service.NewStatusListService(store, engine)}
}

// POST /attendance-status-lists
func (ctrl *AttendanceStatusListController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.CreateAttendanceStatusListRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.svc.Create(c.UserContext(), req, userID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Attendance status created", res)
}

// PATCH /attendance-status-lists/:id
func (ctrl *AttendanceStatusListController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	statusID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status id")
	}

	var req attendanceDTO.UpdateAttendanceStatusListRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.svc.Update(c.UserContext(), statusID, req, userID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Attendance status updated", res)
}

// DELETE /attendance-status-lists/:id
func (ctrl *AttendanceStatusListController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	statusID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status id")
	}

	if err := ctrl.svc.Delete(c.UserContext(), statusID, userID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Attendance status deleted", fiber.Map{"attendance_status_list_id": statusID})
}
