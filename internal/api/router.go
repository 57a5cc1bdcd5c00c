package api

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"waitlist/internal/handlers"
	"waitlist/internal/ws"
)

func (s *Server) SetupAPIRoutes(
	queueHandler *handlers.QueueHandler,
	profileHandler *handlers.ProfileHandler,
	pushHandler *handlers.PushHandler,
	hub *ws.Hub,
) {
	r := s.engine

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/push", pushHandler.SendPushHandler)
	}

	customers := api.Group("/customers")
	{
		customers.GET("", profileHandler.GetCustomerHandler)
		customers.POST("", profileHandler.PostCustomerHandler)
		customers.POST("/new", profileHandler.NewCustomerHandler)
	}

	businesses := api.Group("/businesses")
	{
		businesses.GET("", profileHandler.GetBusinessHandler)
		businesses.POST("", profileHandler.PostBusinessHandler)
	}

	queues := api.Group("/queues")
	{
		queues.GET("", queueHandler.GetQueueHandler)
		queues.POST("", queueHandler.ReplaceQueueHandler)
		queues.POST("/new", queueHandler.CreateQueueHandler)
		queues.GET("/info", queueHandler.QueueInfoHandler)

		queues.POST("/:uid", queueHandler.AppendPartyHandler)
		queues.PUT("/:uid/open", queueHandler.SetOpenHandler)
		queues.POST("/:uid/next", queueHandler.ServeNextHandler)
		queues.DELETE("/:uid/parties", queueHandler.RemovePartyByPhoneHandler)
		queues.DELETE("/:uid/parties/:position", queueHandler.RemovePartyHandler)
		queues.POST("/:uid/parties/:position/messages", queueHandler.AppendMessageHandler)
		queues.GET("/:uid/ws", hub.QueueWebSocketHandler)
	}
}
