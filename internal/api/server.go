package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Ryan-gomezzz/IEEE-dashboard/docs"
	v1 "github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/handler/v1"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/api/middleware"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/clock"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/config"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/domain"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/repository/dao"
	"github.com/Ryan-gomezzz/IEEE-dashboard/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	calendarRepo := repository.NewCalendarRepository(dao.NewCalendarDAO(db, domain.MaxEventsPerDay))
	proctorRepo := repository.NewProctorRepository(dao.NewProctorDAO(db))
	documentRepo := repository.NewDocumentRepository(dao.NewDocumentDAO(db))
	notificationRepo := repository.NewNotificationRepository(dao.NewNotificationDAO(db))

	userSvc := service.NewUserService(userRepo)
	authSvc := service.NewAuthService(userRepo)
	notificationSvc := service.NewNotificationService(notificationRepo, userRepo, zap.L())
	calendarSvc := service.NewCalendarService(calendarRepo, eventRepo, clock.NewSystem())
	eventSvc := service.NewEventService(eventRepo, userRepo, calendarSvc, notificationSvc, zap.L())
	proctorSvc := service.NewProctorService(proctorRepo, userRepo)
	documentSvc := service.NewDocumentService(documentRepo, eventSvc, notificationSvc, zap.L())

	s.MountHandlers(
		userSvc,
		v1.NewAuthHandler(conf.API, authSvc),
		v1.NewUserHandler(userSvc),
		v1.NewEventHandler(eventSvc),
		v1.NewCalendarHandler(calendarSvc),
		v1.NewProctorHandler(proctorSvc),
		v1.NewDocumentHandler(documentSvc),
		v1.NewNotificationHandler(notificationSvc),
	)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc *service.UserService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	calendarHandler *v1.CalendarHandler,
	proctorHandler *v1.ProctorHandler,
	documentHandler *v1.DocumentHandler,
	notificationHandler *v1.NotificationHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	verifyJWT := middleware.NewAuthenticator(s.Config.API.JWTSigningKey, userSvc).VerifyJWT()

	protected := s.Router.Group(basePath, verifyJWT)
	{
		protected.GET("/users/:userID", userHandler.HandleGetUser)
		protected.GET("/approvers", userHandler.HandleListApprovers)

		protected.POST("/events", eventHandler.HandleProposeEvent)
		protected.GET("/events", eventHandler.HandleListEvents)
		protected.GET("/events/:eventID", eventHandler.HandleGetEvent)
		protected.POST("/events/:eventID/approvals", eventHandler.HandleSubmitApproval)
		protected.GET("/events/:eventID/approvals", eventHandler.HandleGetEventApprovals)
		protected.POST("/events/:eventID/refresh", eventHandler.HandleRefreshStatus)
		protected.GET("/approvals/pending", eventHandler.HandleListPendingApprovals)

		protected.GET("/calendar", calendarHandler.HandleGetCalendar)
		protected.GET("/calendar/availability", calendarHandler.HandleCheckAvailability)

		protected.POST("/proctors/mappings", proctorHandler.HandleAssignProctor)
		protected.GET("/proctors/mappings", proctorHandler.HandleListMappings)
		protected.DELETE("/proctors/mappings/:proctorID/:execomID", proctorHandler.HandleUnassignProctor)
		protected.POST("/proctors/updates", proctorHandler.HandleRecordUpdate)
		protected.GET("/proctors/updates", proctorHandler.HandleListUpdates)

		protected.POST("/events/:eventID/assignments", documentHandler.HandleAssignTeamMember)
		protected.GET("/events/:eventID/assignments", documentHandler.HandleListAssignments)
		protected.POST("/events/:eventID/documents", documentHandler.HandleSubmitDocument)
		protected.GET("/events/:eventID/documents", documentHandler.HandleListDocuments)
		protected.POST("/documents/:documentID/review", documentHandler.HandleReviewDocument)

		protected.GET("/notifications", notificationHandler.HandleListNotifications)
		protected.POST("/notifications/:notificationID/read", notificationHandler.HandleMarkRead)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "IEEE Student Branch Dashboard API"
	docs.SwaggerInfo.Description = "Event lifecycle, calendar admission and proctor ledger for an IEEE student branch."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
