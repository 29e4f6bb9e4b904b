package router

import (
	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，用于记住最近浏览的日期
	if sessionSecret == "" {
		sessionSecret = "energyledger-dev-secret"
	}
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("energyledger_session", store))

	api := handler.NewAPI(db.DB)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	group := r.Group("/api")
	{
		group.GET("/activities", api.ListActivities)
		group.POST("/activities", api.CreateActivity)
		group.PUT("/activities/:id", api.UpdateActivity)
		group.DELETE("/activities/:id", api.DeleteActivity)

		group.GET("/days", api.GetCurrentDay)
		group.GET("/days/:date", api.GetDay)
		group.POST("/days/:date/log", api.LogActivity)
		group.POST("/days/:date/unlog", api.UnlogActivity)
		group.PUT("/days/:date/setup", api.UpdateSetup)
		group.PUT("/days/:date/reflection", api.UpdateReflection)
		group.GET("/days/:date/reflection/html", api.GetReflectionHTML)
		group.POST("/days/:date/close", api.CloseDay)
		group.POST("/days/:date/reset", api.ResetDay)
		group.GET("/days/:date/energy", api.GetDayEnergy)

		group.GET("/summary", api.GetSummary)

		group.GET("/theme", api.GetTheme)
		group.PUT("/theme", api.UpdateTheme)

		group.GET("/export", api.ExportData)
	}

	return r
}
