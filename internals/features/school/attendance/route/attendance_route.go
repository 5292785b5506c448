package route

import (
	attendanceCtrl "schoolku_backend/internals/features/school/attendance/controller"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AttendanceTeacherRoutes mounts everything a teacher or school admin works
// with: tables, status lists, rows and single/bulk attendance edits.
func AttendanceTeacherRoutes(r fiber.Router, db *gorm.DB) {
	tableCtl := attendanceCtrl.NewAttendanceTableController(db)
	tGroup := r.Group("/attendance-tables")
	tGroup.Post("/", tableCtl.Create)
	tGroup.Get("/:id", tableCtl.GetByID)
	tGroup.Patch("/:id", tableCtl.Update)
	tGroup.Delete("/:id", tableCtl.Delete)

	rowCtl := attendanceCtrl.NewAttendanceRowController(db)
	tGroup.Get("/:tableId/attendance-rows", rowCtl.GetAttendanceRows)

	rGroup := r.Group("/attendance-rows")
	rGroup.Post("/", rowCtl.Create)
	rGroup.Get("/:id", rowCtl.GetByID)
	rGroup.Patch("/:id", rowCtl.Update)
	rGroup.Delete("/:id", rowCtl.Delete)

	statusCtl := attendanceCtrl.NewAttendanceStatusListController(db)
	sGroup := r.Group("/attendance-status-lists")
	sGroup.Post("/", statusCtl.Create)
	sGroup.Patch("/:id", statusCtl.Update)
	sGroup.Delete("/:id", statusCtl.Delete)

	attCtl := attendanceCtrl.NewAttendanceController(db)
	aGroup := r.Group("/attendances")
	aGroup.Post("/", attCtl.Create)
	aGroup.Patch("/", attCtl.UpdateMany) // bulk; body carries the ids
	aGroup.Get("/:id", attCtl.GetByID)
	aGroup.Patch("/:id", attCtl.Update)

	subjGroup := r.Group("/subjects")
	subjGroup.Get("/:subjectId/attendance-tables", tableCtl.GetBySubjectID)
	subjGroup.Get("/:subjectId/attendance-export", attCtl.ExportExcel)
}

// AttendanceStudentRoutes mounts the student self-service reads.
func AttendanceStudentRoutes(r fiber.Router, db *gorm.DB) {
	tableCtl := attendanceCtrl.NewAttendanceTableController(db)
	r.Get("/subjects/:subjectId/students/:studentId/attendance-tables", tableCtl.GetBySubjectIDOnStudentOnSubject)
}

// AttendancePublicRoutes mounts the anonymous QR flow: reading the
// projected payload and submitting a time-boxed scan update.
func AttendancePublicRoutes(r fiber.Router, db *gorm.DB) {
	rowCtl := attendanceCtrl.NewAttendanceRowController(db)
	r.Get("/attendance-rows/:id/qr-code", rowCtl.GetQrCode)

	attCtl := attendanceCtrl.NewAttendanceController(db)
	r.Patch("/attendances/:id", attCtl.UpdateAnonymous)
}
