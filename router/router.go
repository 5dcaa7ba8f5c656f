package router

import (
	"github.com/gin-gonic/gin"

	"go-splendor/controller"
	"go-splendor/middleware"
	"go-splendor/ws"
)

func InitRouter(r *gin.Engine, rooms *controller.RoomController, hub *ws.Hub, adminToken string) {
	// 房间接口路由
	api := r.Group("/room")
	{
		api.POST("/create", rooms.CreateRoom)
		api.GET("/list", rooms.GetRoomList)
		api.GET("/:roomID", rooms.GetRoomInfo)
		api.GET("/:roomID/glossary", rooms.GetGlossary)
		api.DELETE("/:roomID", middleware.AuthMiddleware(adminToken), rooms.DeleteRoom)
	}
	r.GET("/history", rooms.GetHistory)

	// WebSocket 路由
	r.GET("/ws", hub.HandleWebSocket)
}
