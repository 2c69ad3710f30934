package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/emre/campushub/internal/app/controllers"
	"github.com/emre/campushub/internal/app/models"
	"github.com/emre/campushub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	departmentController *controllers.DepartmentController,
	ticketController *controllers.TicketController,
	announcementController *controllers.AnnouncementController,
	appointmentController *controllers.AppointmentController,
	forumController *controllers.ForumController,
	chatController *controllers.ChatController,
	lostFoundController *controllers.LostFoundController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// Department listing is public so signup forms can populate it
	v1.GET("/departments", departmentController.GetAllDepartments)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.GET("/auth/me", authController.GetProfile)

		users := authenticated.Group("/users")
		{
			users.PUT("/me/password", userController.ChangePassword)
			users.PUT("/me/status", userController.UpdateStatus)

			usersAdmin := users.Group("")
			usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				usersAdmin.POST("/password-reset", userController.ResetPassword)
			}
		}

		departmentsAdmin := authenticated.Group("/departments")
		departmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			departmentsAdmin.POST("", departmentController.CreateDepartment)
		}

		tickets := authenticated.Group("/tickets")
		{
			tickets.GET("", ticketController.ListTickets)
			tickets.POST("/:id/replies", ticketController.AddReply)

			ticketsStudent := tickets.Group("")
			ticketsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				ticketsStudent.POST("", ticketController.CreateTicket)
			}

			ticketsAdmin := tickets.Group("")
			ticketsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				ticketsAdmin.PUT("/:id/assign", ticketController.AssignTicket)
			}

			ticketsStaff := tickets.Group("")
			ticketsStaff.Use(authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin))
			{
				ticketsStaff.PUT("/:id/status", ticketController.UpdateStatus)
			}
		}

		announcements := authenticated.Group("/announcements")
		{
			announcements.GET("", announcementController.ListAnnouncements)

			announcementsStaff := announcements.Group("")
			announcementsStaff.Use(authMiddleware.RoleRequired(models.RoleLecturer, models.RoleAdmin))
			{
				announcementsStaff.POST("", announcementController.CreateAnnouncement)
				announcementsStaff.DELETE("/:id", announcementController.DeleteAnnouncement)
			}
		}

		appointments := authenticated.Group("/appointments")
		{
			appointments.GET("", appointmentController.ListAppointments)
			appointments.PUT("/:id/status", appointmentController.UpdateStatus)

			appointmentsStudent := appointments.Group("")
			appointmentsStudent.Use(authMiddleware.RoleRequired(models.RoleStudent))
			{
				appointmentsStudent.POST("", appointmentController.CreateAppointment)
			}

			appointmentsAdmin := appointments.Group("")
			appointmentsAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				appointmentsAdmin.DELETE("/:id", appointmentController.DeleteAppointment)
			}
		}

		forum := authenticated.Group("/forum")
		{
			forum.GET("/posts", forumController.ListPosts)
			forum.POST("/posts", forumController.CreatePost)
			forum.GET("/posts/:id", forumController.GetPost)
			forum.POST("/posts/:id/replies", forumController.AddReply)
			forum.POST("/posts/:id/vote", forumController.Vote)
			forum.PUT("/posts/:id/resolve", forumController.Resolve)
			forum.GET("/stats", forumController.GetStats)
		}

		chats := authenticated.Group("/chats")
		{
			chats.GET("", chatController.ListConversations)
			chats.GET("/:userId/messages", chatController.GetThread)
			chats.POST("/:userId/messages", chatController.SendMessage)
			chats.PUT("/:userId/read", chatController.MarkRead)
		}

		lostFound := authenticated.Group("/lost-found")
		{
			lostFound.GET("", lostFoundController.ListListings)
			lostFound.POST("", lostFoundController.CreateListing)
			lostFound.PUT("/:id/status", lostFoundController.UpdateStatus)
			lostFound.DELETE("/:id", lostFoundController.DeleteListing)
		}
	}
}
