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

type AttendanceRowController struct {
	svc *service.RowService
}

func NewAttendanceRowController(db *gorm.DB) *AttendanceRowController {
	store := service.NewGormStore(db)
	engine := access.NewEngine(access.NewGormMembershipStore(db))
	return &AttendanceRowController{svc: service.NewRowService(store, engine)}
}

// POST /attendance-rows
func (ctrl *AttendanceRowController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.CreateAttendanceRowRequest
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
	return helper.JsonCreated(c, "Attendance row created", res)
}

// GET /attendance-tables/:tableId/attendance-rows
func (ctrl *AttendanceRowController) GetAttendanceRows(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	tableID, err := uuid.Parse(strings.TrimSpace(c.Params("tableId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance table id")
	}

	res, err := ctrl.svc.GetAttendanceRows(c.UserContext(), tableID, userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /attendance-rows/:id
func (ctrl *AttendanceRowController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	rowID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance row id")
	}

	res, err := ctrl.svc.GetAttendanceRowByID(c.UserContext(), rowID, userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /public/attendance-rows/:id/qr-code
// No auth on purpose; the payload is shown on a projector.
func (ctrl *AttendanceRowController) GetQrCode(c *fiber.Ctx) error {
	rowID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance row id")
	}

	res, err := ctrl.svc.GetAttendanceQrCode(c.UserContext(), rowID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// PATCH /attendance-rows/:id
func (ctrl *AttendanceRowController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	rowID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance row id")
	}

	var req attendanceDTO.UpdateAttendanceRowRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.svc.Update(c.UserContext(), rowID, req, userID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Attendance row updated", res)
}

// DELETE /attendance-rows/:id
func (ctrl *AttendanceRowController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	rowID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance row id")
	}

	if err := ctrl.svc.Delete(c.UserContext(), rowID, userID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Attendance row deleted", fiber.Map{"attendance_row_id": rowID})
}
