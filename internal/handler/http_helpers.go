package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// parseDateParam 校验并返回路径中的日期参数（YYYY-MM-DD，本地时间）。
func parseDateParam(c *gin.Context) (string, bool) {
	raw := strings.TrimSpace(c.Param("date"))
	if _, err := time.ParseInLocation(dateFormat, raw, time.Local); err != nil {
		respondError(c, http.StatusBadRequest, "无效的日期")
		return "", false
	}
	return raw, true
}
