package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	"schoolku_backend/internals/features/school/access"
	schoolDTO "schoolku_backend/internals/features/school/schools/dto"
	"schoolku_backend/internals/features/school/schools/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	authService "schoolku_backend/internals/features/users/auth/service"
	helper "schoolku_backend/internals/helpers"
)

type ClassController struct {
	DB     *gorm.DB
	Engine *access.Engine
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{
		DB:     db,
		Engine: access.NewEngine(access.NewGormMembershipStore(db)),
	}
}

func (ctrl *ClassController) requireAdmin(c *fiber.Ctx, userID, schoolID uuid.UUID) error {
	member, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, schoolID)
	if err != nil {
		return err
	}
	if member.MemberOnSchoolRole != model.MemberRoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Admin role required")
	}
	return nil
}

// POST /classes
func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req schoolDTO.CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.requireAdmin(c, userID, req.SchoolID); err != nil {
		return err
	}

	class := req.ToModel()
	class.ClassID = uuid.New()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(class).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
	}
	return helper.JsonCreated(c, "Class created", class)
}

// GET /schools/:id/classes
func (ctrl *ClassController) ListBySchool(c *fiber.Ctx) error {
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

	var classes []model.ClassModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("class_school_id = ?", schoolID).
		Order("class_created_at ASC").
		Find(&classes).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list classes")
	}
	return helper.JsonOK(c, "ok", classes)
}

// POST /students
// Enrolling a student into a class also enrolls them into every subject
// already taught in that class, in one transaction.
func (ctrl *ClassController) CreateStudent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req schoolDTO.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.requireAdmin(c, userID, req.SchoolID); err != nil {
		return err
	}

	var class model.ClassModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&class, "class_id = ? AND class_school_id = ?", req.ClassID, req.SchoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load class")
	}

	student := req.ToModel()
	student.StudentID = uuid.New()

	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}

		var subjects []subjectModel.SubjectModel
		if err := tx.Where("subject_class_id = ?", req.ClassID).Find(&subjects).Error; err != nil {
			return err
		}
		if len(subjects) == 0 {
			return nil
		}

		enrollments := make([]subjectModel.StudentOnSubjectModel, 0, len(subjects))
		for _, subj := range subjects {
			enrollments = append(enrollments, subjectModel.StudentOnSubjectModel{
				StudentOnSubjectID:        uuid.New(),
				StudentOnSubjectStudentID: student.StudentID,
				StudentOnSubjectSubjectID: subj.SubjectID,
				StudentOnSubjectSchoolID:  subj.SubjectSchoolID,
				StudentOnSubjectIsActive:  true,
			})
		}
		return tx.Create(&enrollments).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.JsonCreated(c, "Student created", student)
}

// POST /students/:id/token
// Students have no credentials of their own; a school admin mints the
// student-scoped token and hands it to the student's device.
func (ctrl *ClassController) IssueStudentToken(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}

	if err := ctrl.requireAdmin(c, userID, student.StudentSchoolID); err != nil {
		return err
	}

	token, err := authService.CreateStudentAccessToken(configs.JWTSecret, userID, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to issue token")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"access_token": token,
		"student_id":   studentID,
	})
}

// GET /classes/:id/students
func (ctrl *ClassController) ListStudents(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	classID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid class id")
	}

	var class model.ClassModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Take(&class, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Class not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load class")
	}

	if _, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, class.ClassSchoolID); err != nil {
		return err
	}

	var students []model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_class_id = ?", classID).
		Order("student_number ASC").
		Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}
	return helper.JsonOK(c, "ok", students)
}
