package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSummary 返回 90 天窗口内的周/月能量汇总与模式观察。
func (a *API) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"weekly":   a.summaries.Weekly(),
		"monthly":  a.summaries.Monthly(),
		"patterns": a.summaries.Patterns(),
	})
}
