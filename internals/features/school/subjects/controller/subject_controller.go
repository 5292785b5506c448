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
	schoolModel "schoolku_backend/internals/features/school/schools/model"
	subjectDTO "schoolku_backend/internals/features/school/subjects/dto"
	"schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

var validate = validator.New()

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type SubjectController struct {
	DB     *gorm.DB
	Engine *access.Engine
}

func NewSubjectController(db *gorm.DB) *SubjectController {
	return &SubjectController{
		DB:     db,
		Engine: access.NewEngine(access.NewGormMembershipStore(db)),
	}
}

// POST /subjects
// Any ACCEPT member may open a subject. Students of the subject's class
// are enrolled in the same transaction, so attendance fan-out always sees
// the full roster.
func (ctrl *SubjectController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req subjectDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	member, err := ctrl.Engine.AuthorizeSchoolMember(c.UserContext(), userID, req.SchoolID)
	if err != nil {
		return err
	}

	subject := req.ToModel()
	subject.SubjectID = uuid.New()

	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subject).Error; err != nil {
			return err
		}

		// Creator teaches the subject unless they are a school admin,
		// who already administers every subject.
		if member.MemberOnSchoolRole != schoolModel.MemberRoleAdmin {
			teacher := &model.TeacherOnSubjectModel{
				TeacherOnSubjectID:        uuid.New(),
				TeacherOnSubjectUserID:    userID,
				TeacherOnSubjectSubjectID: subject.SubjectID,
				TeacherOnSubjectSchoolID:  subject.SubjectSchoolID,
				TeacherOnSubjectRole:      schoolModel.MemberRoleTeacher,
				TeacherOnSubjectStatus:    schoolModel.MemberStatusAccept,
			}
			if err := tx.Create(teacher).Error; err != nil {
				return err
			}
		}

		var students []schoolModel.StudentModel
		if err := tx.Where("student_class_id = ?", req.ClassID).Find(&students).Error; err != nil {
			return err
		}
		if len(students) == 0 {
			return nil
		}

		enrollments := make([]model.StudentOnSubjectModel, 0, len(students))
		for _, st := range students {
			enrollments = append(enrollments, model.StudentOnSubjectModel{
				StudentOnSubjectID:        uuid.New(),
				StudentOnSubjectStudentID: st.StudentID,
				StudentOnSubjectSubjectID: subject.SubjectID,
				StudentOnSubjectSchoolID:  subject.SubjectSchoolID,
				StudentOnSubjectIsActive:  true,
			})
		}
		return tx.Create(&enrollments).Error
	}); err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Subject code already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create subject")
	}

	return helper.JsonCreated(c, "Subject created", subject)
}

// GET /subjects/:id
func (ctrl *SubjectController) GetByID(c *fiber.Ctx) error {
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
	return helper.JsonOK(c, "ok", subject)
}

// PATCH /subjects/:id
func (ctrl *SubjectController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	grant, err := ctrl.Engine.AuthorizeSubjectTeacher(c.UserContext(), userID, subjectID)
	if err != nil {
		return err
	}

	var req subjectDTO.UpdateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	req.Normalize()
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	subject := *grant.Subject
	req.Apply(&subject)
	if err := ctrl.DB.WithContext(c.UserContext()).Save(&subject).Error; err != nil {
		if isUniqueViolation(err) {
			return fiber.NewError(fiber.StatusConflict, "Subject code already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update subject")
	}
	return helper.JsonUpdated(c, "Subject updated", subject)
}

// DELETE /subjects/:id
func (ctrl *SubjectController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	subjectID, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid subject id")
	}

	if _, err := ctrl.Engine.AuthorizeSubjectTeacher(c.UserContext(), userID, subjectID); err != nil {
		return err
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.StudentOnSubjectModel{}, "student_on_subject_subject_id = ?", subjectID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.TeacherOnSubjectModel{}, "teacher_on_subject_subject_id = ?", subjectID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.SubjectModel{}, "subject_id = ?", subjectID).Error
	}); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete subject")
	}
	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"subject_id": subjectID})
}
