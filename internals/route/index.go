// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	attendanceRoute "schoolku_backend/internals/features/school/attendance/route"
	schoolRoute "schoolku_backend/internals/features/school/schools/route"
	subjectRoute "schoolku_backend/internals/features/school/subjects/route"
	authRoute "schoolku_backend/internals/features/users/auth/route"
	authMiddleware "schoolku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// PUBLIC → no JWT; anonymous QR read + time-boxed scan submit
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/v1/public")
	attendanceRoute.AttendancePublicRoutes(public, db)

	// PRIVATE → JWT required; per-school/subject authorization in controllers
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/v1",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
	)

	log.Println("[INFO] Mounting School routes...")
	schoolRoute.SchoolRoutes(private, db)

	log.Println("[INFO] Mounting Subject routes...")
	subjectRoute.SubjectRoutes(private, db)

	log.Println("[INFO] Mounting Attendance routes...")
	attendanceRoute.AttendanceTeacherRoutes(private, db)

	// STUDENT → student-scoped token (student_id claim)
	log.Println("[INFO] Mounting Student routes...")
	student := private.Group("/student")
	attendanceRoute.AttendanceStudentRoutes(student, db)
}
