package handler

import (
	"errors"
	"net/http"

	"github.com/energyledger/internal/service"
	"github.com/gin-gonic/gin"
)

// GetTheme 返回当前界面主题。
func (a *API) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": a.theme.Get()})
}

// UpdateTheme 保存界面主题偏好。
func (a *API) UpdateTheme(c *gin.Context) {
	var payload struct {
		Theme string `json:"theme"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	theme, err := a.theme.Set(payload.Theme)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTheme) {
			respondError(c, http.StatusBadRequest, "无效的主题")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存主题失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

// ExportData 导出全部本地数据的快照。
func (a *API) ExportData(c *gin.Context) {
	c.JSON(http.StatusOK, a.exports.Snapshot())
}
