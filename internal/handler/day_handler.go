package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionLastViewedDay = "last_viewed_day"

// GetDay 返回指定日期的记录，并在会话中记住这次浏览的日期。
func (a *API) GetDay(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	day := a.days.Load(date)

	session := sessions.Default(c)
	session.Set(sessionLastViewedDay, date)
	_ = session.Save()

	c.JSON(http.StatusOK, gin.H{"day": day})
}

// GetCurrentDay 返回会话中最近浏览的日期的记录，没有则返回今天。
func (a *API) GetCurrentDay(c *gin.Context) {
	date := time.Now().In(time.Local).Format(dateFormat)

	session := sessions.Default(c)
	if stored, ok := session.Get(sessionLastViewedDay).(string); ok {
		if _, err := time.ParseInLocation(dateFormat, stored, time.Local); err == nil {
			date = stored
		}
	}

	c.JSON(http.StatusOK, gin.H{"day": a.days.Load(date)})
}

// LogActivity 记一次活动（次数加一，按顺序追加意图标记）。
func (a *API) LogActivity(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var payload struct {
		ActivityID     string `json:"activity_id"`
		Intentionality string `json:"intentionality"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if _, err := a.activities.Find(payload.ActivityID); err != nil {
		respondError(c, http.StatusNotFound, "活动不存在")
		return
	}

	day, err := a.days.Log(date, payload.ActivityID, payload.Intentionality)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIntentionality) {
			respondError(c, http.StatusBadRequest, "无效的意图标记")
			return
		}
		respondError(c, http.StatusInternalServerError, "保存记录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": day})
}

// UnlogActivity 撤销最近一次活动记录。
func (a *API) UnlogActivity(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var payload struct {
		ActivityID string `json:"activity_id"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": a.days.Unlog(date, payload.ActivityID)})
}

// UpdateSetup 处理早晨设置：意图文本、幅值 override 与单位。
// overrides 中取值为 null 表示清除该活动的 override。
func (a *API) UpdateSetup(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var payload struct {
		Intention *string             `json:"intention"`
		Overrides map[string]*float64 `json:"overrides"`
		Units     map[string]string   `json:"units"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if payload.Intention != nil {
		a.days.SetIntention(date, *payload.Intention)
	}

	for activityID, value := range payload.Overrides {
		if _, err := a.activities.Find(activityID); err != nil {
			respondError(c, http.StatusNotFound, "活动不存在")
			return
		}
		if _, err := a.days.SetOverride(date, activityID, value); err != nil {
			respondError(c, http.StatusBadRequest, "无效的能量幅值")
			return
		}
	}

	for activityID, unit := range payload.Units {
		if _, err := a.activities.Find(activityID); err != nil {
			respondError(c, http.StatusNotFound, "活动不存在")
			return
		}
		a.days.SetUnit(date, activityID, unit)
	}

	c.JSON(http.StatusOK, gin.H{"day": a.days.Load(date)})
}

// UpdateReflection 写入当天的复盘文本。
func (a *API) UpdateReflection(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var payload db.DayReflection
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": a.days.SetReflection(date, payload)})
}

// GetReflectionHTML 返回复盘文本渲染为安全 HTML 后的结果。
func (a *API) GetReflectionHTML(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	day := a.days.Load(date)
	c.JSON(http.StatusOK, gin.H{"reflection": service.RenderReflectionHTML(day.Reflection)})
}

// CloseDay 结束一天。
func (a *API) CloseDay(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": a.days.Close(date)})
}

// ResetDay 将一天重置为空白记录。
func (a *API) ResetDay(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"day": a.days.Reset(date)})
}

// GetDayEnergy 返回当天的能量汇总与设置完成状态。
func (a *API) GetDayEnergy(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	day := a.days.Load(date)
	activities := a.activities.Load()

	c.JSON(http.StatusOK, gin.H{
		"date":           date,
		"gained":         service.EnergyGained(day, activities),
		"drained":        service.EnergyDrained(day, activities),
		"net":            service.DayEnergy(day, activities),
		"setup_complete": service.IsSetupComplete(day, activities),
	})
}
