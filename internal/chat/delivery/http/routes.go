package http

import (
	"github.com/gin-gonic/gin"

	"edupal/internal/middleware"
	"edupal/internal/ratelimit"
)

// RegisterRoutes maps HTTP verbs and paths to handler methods. Every route
// sits behind auth plus its category rate limit.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	chatbot := rg.Group("/chatbot")
	{
		chatbot.POST("/query", mw.Auth(), mw.RateLimit(ratelimit.CategoryQuery), h.Query)
		chatbot.POST("/voice-query", mw.Auth(), mw.RateLimit(ratelimit.CategoryVoice), h.VoiceQuery)
		chatbot.POST("/image-query", mw.Auth(), mw.RateLimit(ratelimit.CategoryQuery), h.ImageQuery)
		chatbot.POST("/documents", mw.Auth(), mw.RateLimit(ratelimit.CategoryDocument), h.IngestDocument)
		chatbot.GET("/history", mw.Auth(), mw.RateLimit(ratelimit.CategoryHistory), h.History)
	}
}
