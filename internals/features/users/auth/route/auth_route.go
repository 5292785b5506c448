package route

import (
	authCtrl "schoolku_backend/internals/features/users/auth/controller"
	"schoolku_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authCtrl.NewAuthController(db)
	group := app.Group("/auth")
	group.Post("/register", middlewares.RegisterRateLimiter(), ctl.Register)
	group.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
}
