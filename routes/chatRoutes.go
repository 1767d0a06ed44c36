package routes

import (
	"pasarin/chats"
	"pasarin/middleware"
	"pasarin/newchat"
	"pasarin/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddChatRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *newchat.Hub) {
	router.POST("/api/chats", rl.Limit(middleware.Authenticate(chats.GetOrCreateChat)))
	router.GET("/api/chats", middleware.Authenticate(chats.GetChats))
	router.GET("/api/chats/:chatid", middleware.Authenticate(chats.GetMessages))
	router.POST("/api/chats/:chatid/messages", rl.Limit(middleware.Authenticate(chats.SendMessage(hub))))
	router.POST("/api/chats-upload", rl.Limit(middleware.Authenticate(newchat.UploadHandler(hub))))

	// JWT rides in the token query parameter; validated in the handler.
	router.GET("/ws/chat/:room", newchat.WebSocketHandler(hub))
}
