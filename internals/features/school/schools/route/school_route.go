package route

import (
	schoolCtrl "schoolku_backend/internals/features/school/schools/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SchoolRoutes mounts school, membership, class and student endpoints.
// All of them require an authenticated user; per-school authorization
// happens inside the controllers.
func SchoolRoutes(r fiber.Router, db *gorm.DB) {
	schoolCtl := schoolCtrl.NewSchoolController(db)
	sGroup := r.Group("/schools")
	sGroup.Post("/", schoolCtl.Create)
	sGroup.Get("/:id", schoolCtl.GetByID)
	sGroup.Patch("/:id", schoolCtl.Update)
	sGroup.Delete("/:id", schoolCtl.Delete)

	memberCtl := schoolCtrl.NewMemberOnSchoolController(db)
	sGroup.Get("/:id/members", memberCtl.ListBySchool)
	mGroup := r.Group("/member-on-schools")
	mGroup.Post("/", memberCtl.Invite)
	mGroup.Patch("/:id/respond", memberCtl.Respond)
	mGroup.Delete("/:id", memberCtl.Remove)

	classCtl := schoolCtrl.NewClassController(db)
	sGroup.Get("/:id/classes", classCtl.ListBySchool)
	cGroup := r.Group("/classes")
	cGroup.Post("/", classCtl.Create)
	cGroup.Get("/:id/students", classCtl.ListStudents)
	r.Post("/students", classCtl.CreateStudent)
	r.Post("/students/:id/token", classCtl.IssueStudentToken)
}
