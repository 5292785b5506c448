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

type AttendanceController struct {
	svc *service.AttendanceService
}

func NewAttendanceController(db *gorm.DB) *AttendanceController {
	store := service.NewGormStore(db)
	engine := access.NewEngine(access.NewGormMembershipStore(db))
	return &AttendanceController{svc: service.NewAttendanceService(store, engine, service.NewExcelExporter())}
}

// POST /attendances
func (ctrl *AttendanceController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.CreateAttendanceRequest
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
	return helper.JsonCreated(c, "Attendance created", res)
}

// GET /attendances/:id
func (ctrl *AttendanceController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	attendanceID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	res, err := ctrl.svc.GetByID(c.UserContext(), attendanceID, userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// PATCH /attendances/:id (authenticated teacher/admin path)
func (ctrl *AttendanceController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	return ctrl.update(c, userID)
}

// PATCH /public/attendances/:id (anonymous scan path; time-gated, no identity)
func (ctrl *AttendanceController) UpdateAnonymous(c *fiber.Ctx) error {
	return ctrl.update(c, uuid.Nil)
}

func (ctrl *AttendanceController) update(c *fiber.Ctx, userID uuid.UUID) error {
	attendanceID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance id")
	}

	var req attendanceDTO.UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.svc.Update(c.UserContext(), attendanceID, req, userID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Attendance updated", res)
}

// PATCH /attendances
func (ctrl *AttendanceController) UpdateMany(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.UpdateManyAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.svc.UpdateMany(c.UserContext(), req.Items, userID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Attendances updated", res)
}

// GET /subjects/:subjectId/attendance-export?locale=th
func (ctrl *AttendanceController) ExportExcel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("subjectId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}
	locale := strings.TrimSpace(c.Query("locale", "en"))

	res, err := ctrl.svc.ExportExcel(c.UserContext(), subjectID, userID, locale)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}
