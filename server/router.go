package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if s.Config.AccessControlAllowOrigin != "" {
		corsConfig.AllowOrigins = []string{s.Config.AccessControlAllowOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))
	r.MaxMultipartMemory = 8 << 20

	s.defineRoutes(r)
	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 5})

	apirouter := router.Group("/api/admin")
	apirouter.POST("/register", s.handleRegister())
	apirouter.POST("/login", limitRateForLogin(store), s.handleLogin())
	apirouter.GET("/auth/google", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.GET("/users/monthly-users", s.handleGetMonthlyUsers())
	apirouter.POST("/", s.handleSubmitUser())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/users", s.handleGetUsers())
	authorized.GET("/users/rewarded", s.handleGetRewardedUsers())
	authorized.GET("/users/rewarded/total", s.handleSumAllRewards())
	authorized.GET("/users/rewarded/export", s.handleExportRewarded())
	authorized.GET("/users/count", s.handleGetUserCount())
	authorized.PATCH("/users/:id/reward", s.handleUpdateRewardStatus())
	authorized.PUT("/me/picture", s.handleUpdateProfilePicture())
	authorized.GET("/logout", s.handleLogout())

	router.GET("/ws", s.handleWS())
}
