package v1

import (
	"net/http"

	"candidate-pipeline-backend/config"
	"candidate-pipeline-backend/internal/delivery/http/middleware"
	"candidate-pipeline-backend/internal/delivery/http/response"
	"candidate-pipeline-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	CandidateUC domain.CandidateUsecase
	InterviewUC domain.InterviewUsecase
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must run before anything that can short-circuit the request.
	r.Use(middleware.CORS(deps.Config.AllowedOrigins))
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	candidate := r.Group("/candidate")
	{
		NewCandidateHandler(candidate, deps.CandidateUC)
		NewInterviewHandler(candidate, deps.InterviewUC)
	}

	return r
}
