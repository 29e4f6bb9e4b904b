package handler

import (
	"errors"
	"net/http"

	"github.com/energyledger/internal/db"
	"github.com/energyledger/internal/service"
	"github.com/gin-gonic/gin"
)

type activityPayload struct {
	Label           string   `json:"label"`
	Direction       string   `json:"direction"`
	PairID          string   `json:"pair_id"`
	EnergyMagnitude *float64 `json:"energy_magnitude"`
	Unit            string   `json:"unit"`
	Intensity       string   `json:"intensity"`
}

// ListActivities 返回完整活动目录 JSON
func (a *API) ListActivities(c *gin.Context) {
	activities := a.activities.Load()

	items := make([]gin.H, 0, len(activities))
	for _, activity := range activities {
		items = append(items, activityToPayload(activity))
	}

	c.JSON(http.StatusOK, gin.H{"activities": items})
}

// CreateActivity 新建活动，ID 冲突时自动追加后缀去重
func (a *API) CreateActivity(c *gin.Context) {
	var payload activityPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	activity, err := a.activities.Add(service.ActivityInput{
		Label:           payload.Label,
		Direction:       payload.Direction,
		PairID:          payload.PairID,
		EnergyMagnitude: payload.EnergyMagnitude,
		Unit:            payload.Unit,
		Intensity:       payload.Intensity,
	})
	if err != nil {
		handleActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activityToPayload(*activity)})
}

// UpdateActivity 更新活动定义
func (a *API) UpdateActivity(c *gin.Context) {
	var payload activityPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	activity, err := a.activities.Update(c.Param("id"), service.ActivityInput{
		Label:           payload.Label,
		Direction:       payload.Direction,
		PairID:          payload.PairID,
		EnergyMagnitude: payload.EnergyMagnitude,
		Unit:            payload.Unit,
		Intensity:       payload.Intensity,
	})
	if err != nil {
		handleActivityError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": activityToPayload(*activity)})
}

// DeleteActivity 删除活动
func (a *API) DeleteActivity(c *gin.Context) {
	a.activities.Remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func activityToPayload(activity db.ActivityDefinition) gin.H {
	item := gin.H{
		"id":        activity.ID,
		"label":     activity.Label,
		"direction": activity.Direction,
	}

	if activity.PairID != "" {
		item["pair_id"] = activity.PairID
	}
	if activity.EnergyMagnitude != nil {
		item["energy_magnitude"] = *activity.EnergyMagnitude
	}
	if activity.Unit != "" {
		item["unit"] = activity.Unit
	}
	if activity.Intensity != "" {
		item["intensity"] = activity.Intensity
	}

	return item
}

func handleActivityError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrActivityNotFound):
		respondError(c, http.StatusNotFound, "活动不存在")
	case errors.Is(err, service.ErrActivityLabelRequired):
		respondError(c, http.StatusBadRequest, "活动名称不能为空")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败")
	}
}
