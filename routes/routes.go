package routes

import (
	"net/http"

	"pulse/controllers"
	"pulse/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, feedController *controllers.FeedController, postController *controllers.PostController, profileController *controllers.ProfileController, authController *controllers.AuthController) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", feedController.Index)
	r.GET("/group/:slug", feedController.GroupPosts)
	r.GET("/follow", middleware.LoginRequired(), feedController.FollowIndex)

	r.GET("/create", middleware.LoginRequired(), postController.CreateForm)
	r.POST("/create", middleware.LoginRequired(), postController.Create)

	posts := r.Group("/posts")
	{
		posts.GET("/access-denied", postController.AccessDenied)
		posts.GET("/:id", postController.Detail)
		posts.GET("/:id/edit", middleware.LoginRequired(), postController.EditForm)
		posts.POST("/:id/edit", middleware.LoginRequired(), postController.Edit)
		posts.POST("/:id/comment", middleware.LoginRequired(), postController.AddComment)
	}

	profile := r.Group("/profile")
	{
		profile.GET("/:username", middleware.OptionalAuth(), profileController.Show)
		profile.POST("/:username/follow", middleware.LoginRequired(), profileController.Follow)
		profile.POST("/:username/unfollow", middleware.LoginRequired(), profileController.Unfollow)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/signup", authController.Signup)
		auth.GET("/login", authController.LoginPage)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.GET("/me", middleware.AuthRequired(), authController.Me)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found", "path": c.Request.URL.Path})
	})
}
