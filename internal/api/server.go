package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/acadflow/academy-api/docs"
	v1 "github.com/acadflow/academy-api/internal/api/handler/v1"
	"github.com/acadflow/academy-api/internal/api/middleware"
	"github.com/acadflow/academy-api/internal/config"
	"github.com/acadflow/academy-api/internal/repository"
	"github.com/acadflow/academy-api/internal/repository/dao"
	"github.com/acadflow/academy-api/internal/service"
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

	users := repository.NewUserRepository(dao.NewUserDAO(db))
	students := repository.NewStudentRepository(dao.NewStudentDAO(db))
	sessions := repository.NewSessionRepository(dao.NewSessionDAO(db))
	leads := repository.NewLeadRepository(dao.NewLeadDAO(db))
	classroom := repository.NewClassroomRepository(dao.NewClassroomDAO(db))

	authSvc := service.NewAuthService(users, students, sessions)

	authHandler := v1.NewAuthHandler(authSvc)
	userHandler := v1.NewUserHandler(authSvc)
	studentHandler := v1.NewStudentHandler(service.NewStudentService(students))
	leadHandler := v1.NewLeadHandler(service.NewLeadService(leads, students))
	dashboardHandler := v1.NewDashboardHandler(service.NewDashboardService(students, leads))
	classroomHandler := v1.NewClassroomHandler(service.NewClassroomService(classroom))

	s.MountHandlers(
		authSvc,
		authHandler,
		userHandler,
		studentHandler,
		leadHandler,
		dashboardHandler,
		classroomHandler,
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
	authSvc middleware.SessionAuthenticator,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	studentHandler *v1.StudentHandler,
	leadHandler *v1.LeadHandler,
	dashboardHandler *v1.DashboardHandler,
	classroomHandler *v1.ClassroomHandler,
) {
	const basePath = "/api/v1"

	healthcheckHandler := v1.NewHealthcheckHandler()
	s.Router.GET("/", healthcheckHandler.Healthcheck)

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/login", authHandler.HandleLogin)
	}

	private := s.Router.Group(basePath, middleware.Authenticate(authSvc))
	{
		private.DELETE("/auth/logout", authHandler.HandleLogout)
		private.GET("/auth/me", authHandler.HandleMe)

		private.POST("/users", userHandler.HandleCreateUser)

		private.GET("/students", studentHandler.HandleListStudents)
		private.GET("/students/:id", studentHandler.HandleGetStudent)
		private.POST("/students", studentHandler.HandleCreateStudent)
		private.PUT("/students/:id", studentHandler.HandleUpdateStudent)
		private.DELETE("/students/:id", studentHandler.HandleDeleteStudent)
		private.PUT("/students/:id/installments/:slot/proof", studentHandler.HandleUploadProof)
		private.POST("/students/:id/installments/:slot/review", studentHandler.HandleReviewProof)
		private.POST("/students/:id/installments/:slot/toggle", studentHandler.HandleToggleInstallment)

		private.GET("/leads", leadHandler.HandleListLeads)
		private.GET("/leads/:id", leadHandler.HandleGetLead)
		private.POST("/leads", leadHandler.HandleCreateLead)
		private.PUT("/leads/:id", leadHandler.HandleUpdateLead)
		private.DELETE("/leads/:id", leadHandler.HandleDeleteLead)

		private.GET("/dashboard", dashboardHandler.HandleStats)

		private.GET("/materials", classroomHandler.HandleListMaterials)
		private.GET("/materials/:id", classroomHandler.HandleGetMaterial)
		private.POST("/materials", classroomHandler.HandleCreateMaterial)
		private.PUT("/materials/:id", classroomHandler.HandleUpdateMaterial)
		private.DELETE("/materials/:id", classroomHandler.HandleDeleteMaterial)

		private.GET("/lessons", classroomHandler.HandleListLessons)
		private.GET("/lessons/:id", classroomHandler.HandleGetLesson)
		private.POST("/lessons", classroomHandler.HandleCreateLesson)
		private.PUT("/lessons/:id", classroomHandler.HandleUpdateLesson)
		private.DELETE("/lessons/:id", classroomHandler.HandleDeleteLesson)

		private.GET("/assignments", classroomHandler.HandleListAssignments)
		private.GET("/assignments/:id", classroomHandler.HandleGetAssignment)
		private.POST("/assignments", classroomHandler.HandleCreateAssignment)
		private.PUT("/assignments/:id", classroomHandler.HandleUpdateAssignment)
		private.DELETE("/assignments/:id", classroomHandler.HandleDeleteAssignment)
		private.POST("/assignments/:id/submissions", classroomHandler.HandleSubmitAssignment)
		private.GET("/assignments/:id/submissions", classroomHandler.HandleListSubmissions)

		private.GET("/quizzes", classroomHandler.HandleListQuizzes)
		private.GET("/quizzes/:id", classroomHandler.HandleGetQuiz)
		private.POST("/quizzes", classroomHandler.HandleCreateQuiz)
		private.PUT("/quizzes/:id", classroomHandler.HandleUpdateQuiz)
		private.DELETE("/quizzes/:id", classroomHandler.HandleDeleteQuiz)
		private.POST("/quizzes/:id/attempts", classroomHandler.HandleAttemptQuiz)
		private.GET("/quizzes/:id/attempts", classroomHandler.HandleListAttempts)

		private.POST("/progress", classroomHandler.HandleRecordProgress)
		private.GET("/students/:id/progress", classroomHandler.HandleListProgress)

		private.POST("/grades", classroomHandler.HandleRecordGrade)
		private.GET("/grades", classroomHandler.HandleListGrades)
	}

	s.mountSwaggerUI(basePath)
}

func (s *Server) mountSwaggerUI(basePath string) {
	docs.SwaggerInfo.Title = "Academy API"
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Host = s.Config.API.BaseURL

	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
