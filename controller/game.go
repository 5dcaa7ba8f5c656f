package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-splendor/dto"
)

func (rc *RoomController) GetGlossary(c *gin.Context) {
	glossary, err := rc.rooms.GetGlossary(c.Param("roomID"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        gin.H{"cards": glossary.Cards, "collections": glossary.Collections},
	})
}

func (rc *RoomController) GetHistory(c *gin.Context) {
	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status_code": http.StatusBadRequest, "msg": "limit 必须是数字"})
		return
	}
	results, err := rc.rooms.GetHistory(c.Request.Context(), query.Limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "获取成功",
		"data":        results,
	})
}
