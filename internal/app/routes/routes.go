package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/studentportal/internal/app/controllers"
	"github.com/yigit/studentportal/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth         *controllers.AuthController
	Registration *controllers.RegistrationController
	Student      *controllers.StudentController
	Stream       *controllers.StreamController
	Taxonomy     *controllers.TaxonomyController
	File         *controllers.FileController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	// --- Site pages ---
	router.GET("/", c.Stream.ShowFront)

	user := router.Group("/user")
	{
		user.GET("/register", c.Registration.ShowForm)
		user.POST("/register", c.Registration.Submit)
		user.GET("/login", c.Auth.ShowLogin)
		user.POST("/login", c.Auth.SubmitLogin)
		user.POST("/logout", c.Auth.Logout)
		// Anonymous visitors are sent to the front page by the redirector itself
		user.GET("/stream", authMiddleware.OptionalAuth(), c.Stream.RedirectToStream)
	}

	router.GET("/taxonomy/term/:id", c.Taxonomy.ShowTerm)
	router.POST("/file/upload", authMiddleware.OptionalAuth(), c.File.Upload)

	// Everything else may be a path alias
	router.NoRoute(c.Taxonomy.ResolveAlias)

	// --- API ---
	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	v1.GET("/streams", c.Stream.ListStreams)

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/students", c.Student.ListStudents)
	}
}
