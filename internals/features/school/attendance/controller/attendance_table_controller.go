package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/school/access"
	attendanceDTO "schoolku_backend/internals/features/school/attendance/dto"
	"schoolku_backend/internals/features/school/attendance/service"
	helper "schoolku_backend/internals/helpers"
)

var validate = validator.New()

type AttendanceTableController struct {
	svc *service.TableService
}

func NewAttendanceTableController(db *gorm.DB) *AttendanceTableController {
	store := service.NewGormStore(db)
	engine := access.NewEngine(access.NewGormMembershipStore(db))
	statusLists := service.NewStatusListService(store, engine)
	return &AttendanceTableController{svc: service.NewTableService(store, engine, statusLists)}
}

// POST /attendance-tables
func (ctrl *AttendanceTableController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req attendanceDTO.CreateAttendanceTableRequest
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
	return helper.JsonCreated(c, "Attendance table created", res)
}

// GET /subjects/:subjectId/attendance-tables
func (ctrl *AttendanceTableController) GetBySubjectID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("subjectId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	res, err := ctrl.svc.GetBySubjectID(c.UserContext(), subjectID, userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /attendance-tables/:id
func (ctrl *AttendanceTableController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	tableID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance table id")
	}

	res, err := ctrl.svc.GetByID(c.UserContext(), tableID, userID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// GET /student/subjects/:subjectId/students/:studentId/attendance-tables
// Student self-service read; the caller's student id comes from its token.
func (ctrl *AttendanceTableController) GetBySubjectIDOnStudentOnSubject(c *fiber.Ctx) error {
	callerStudentID, err := helper.GetStudentIDFromLocals(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("subjectId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("studentId")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	res, err := ctrl.svc.GetBySubjectIDOnStudentOnSubject(c.UserContext(), subjectID, studentID, callerStudentID)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "ok", res)
}

// PATCH /attendance-tables/:id
func (ctrl *AttendanceTableController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	tableID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance table id")
	}

	var req attendanceDTO.UpdateAttendanceTableRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	res, err := ctrl.svc.Update(c.UserContext(), tableID, req, userID)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Attendance table updated", res)
}

// DELETE /attendance-tables/:id
func (ctrl *AttendanceTableController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	tableID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid attendance table id")
	}

	if err := ctrl.svc.Delete(c.UserContext(), tableID, userID); err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Attendance table deleted", fiber.Map{"attendance_table_id": tableID})
}
