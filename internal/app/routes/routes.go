package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/demir/classhub/internal/app/controllers"
	"github.com/demir/classhub/internal/app/models"
	"github.com/demir/classhub/internal/app/models/dto"
	"github.com/demir/classhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	classController *controllers.ClassController,
	lessonController *controllers.LessonController,
	assignmentController *controllers.AssignmentController,
	submissionController *controllers.SubmissionController,
	questionController *controllers.QuestionController,
	announcementController *controllers.AnnouncementController,
	dashboardController *controllers.DashboardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	// Logout and refresh authenticate by possession of the refresh token
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile routes (any role)
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)
			users.PUT("/me/password", userController.ChangePassword)
		}

		// Class routes
		classes := authenticated.Group("/classes")
		{
			// Routes shared by owners and enrolled students
			classes.GET("", classController.GetMyClasses)
			classes.GET("/:classID", classController.GetClass)
			classes.GET("/:classID/lessons", lessonController.GetLessonsByClass)
			classes.GET("/:classID/assignments", assignmentController.GetAssignmentsByClass)
			classes.GET("/:classID/announcements", announcementController.GetAnnouncementsByClass)

			// Teacher-only class management
			classesTeacher := classes.Group("")
			classesTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
			{
				classesTeacher.POST("", classController.CreateClass)
				classesTeacher.PUT("/:classID", classController.UpdateClass)
				classesTeacher.DELETE("/:classID", classController.DeleteClass)
				classesTeacher.POST("/:classID/archive", classController.ArchiveClass)
				classesTeacher.POST("/:classID/unarchive", classController.UnarchiveClass)
				classesTeacher.GET("/:classID/students", classController.GetRoster)
				classesTeacher.POST("/:classID/lessons", lessonController.CreateLesson)
				classesTeacher.POST("/:classID/assignments", assignmentController.CreateAssignment)
				classesTeacher.POST("/:classID/announcements", announcementController.CreateAnnouncement)
			}

			// Student-only enrollment routes
			classesStudent := classes.Group("")
			classesStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				classesStudent.POST("/join", classController.JoinClass)
				classesStudent.DELETE("/:classID/leave", classController.LeaveClass)
			}
		}

		// Lesson routes
		lessons := authenticated.Group("/lessons")
		{
			lessons.GET("/:lessonID", lessonController.GetLesson)
			lessons.GET("/:lessonID/questions", questionController.GetQuestionsByLesson)

			lessonsTeacher := lessons.Group("")
			lessonsTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
			{
				lessonsTeacher.PUT("/:lessonID", lessonController.UpdateLesson)
				lessonsTeacher.DELETE("/:lessonID", lessonController.DeleteLesson)
				lessonsTeacher.POST("/:lessonID/files", lessonController.UploadFile)
				lessonsTeacher.DELETE("/:lessonID/files/:fileID", lessonController.DeleteFile)
			}

			lessonsStudent := lessons.Group("")
			lessonsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				lessonsStudent.POST("/:lessonID/questions", questionController.AskQuestion)
			}
		}

		// Assignment routes
		assignments := authenticated.Group("/assignments")
		{
			assignments.GET("/:assignmentID", assignmentController.GetAssignment)

			assignmentsTeacher := assignments.Group("")
			assignmentsTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
			{
				assignmentsTeacher.PUT("/:assignmentID", assignmentController.UpdateAssignment)
				assignmentsTeacher.DELETE("/:assignmentID", assignmentController.DeleteAssignment)
				assignmentsTeacher.GET("/:assignmentID/submissions", submissionController.GetSubmissionsByAssignment)
			}

			assignmentsStudent := assignments.Group("")
			assignmentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				assignmentsStudent.POST("/:assignmentID/submissions", submissionController.SubmitAssignment)
				assignmentsStudent.GET("/:assignmentID/submissions/me", submissionController.GetMySubmission)
			}
		}

		// Grading route
		submissions := authenticated.Group("/submissions")
		submissions.Use(authMiddleware.RoleRequired(models.RoleTeacher))
		{
			submissions.PUT("/:submissionID/grade", submissionController.GradeSubmission)
		}

		// Q&A answer route
		questions := authenticated.Group("/questions")
		questions.Use(authMiddleware.RoleRequired(models.RoleTeacher))
		{
			questions.POST("/:questionID/answer", questionController.AnswerQuestion)
		}

		// Announcement management routes
		announcements := authenticated.Group("/announcements")
		announcements.Use(authMiddleware.RoleRequired(models.RoleTeacher))
		{
			announcements.PUT("/:announcementID", announcementController.UpdateAnnouncement)
			announcements.DELETE("/:announcementID", announcementController.DeleteAnnouncement)
		}

		// Role dashboards
		dashboard := authenticated.Group("/dashboard")
		{
			dashboardTeacher := dashboard.Group("")
			dashboardTeacher.Use(authMiddleware.RoleRequired(models.RoleTeacher))
			{
				dashboardTeacher.GET("/teacher", dashboardController.GetTeacherDashboard)
			}

			dashboardStudent := dashboard.Group("")
			dashboardStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				dashboardStudent.GET("/student", dashboardController.GetStudentDashboard)
			}
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap already
}
