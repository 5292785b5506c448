package route

import (
	subjectCtrl "schoolku_backend/internals/features/school/subjects/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubjectRoutes mounts subject CRUD and teacher assignment endpoints.
func SubjectRoutes(r fiber.Router, db *gorm.DB) {
	subjectCtl := subjectCtrl.NewSubjectController(db)
	sGroup := r.Group("/subjects")
	sGroup.Post("/", subjectCtl.Create)
	sGroup.Get("/:id", subjectCtl.GetByID)
	sGroup.Patch("/:id", subjectCtl.Update)
	sGroup.Delete("/:id", subjectCtl.Delete)

	teacherCtl := subjectCtrl.NewTeacherOnSubjectController(db)
	sGroup.Get("/:id/teachers", teacherCtl.ListBySubject)
	tGroup := r.Group("/teacher-on-subjects")
	tGroup.Post("/", teacherCtl.Invite)
	tGroup.Patch("/:id/respond", teacherCtl.Respond)
}
