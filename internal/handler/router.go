package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "LeraAssistant/docs"
	"LeraAssistant/internal/middleware"
)

type RouterOptions struct {
	Logger        zerolog.Logger
	CORSOrigins   []string
	InviteCode    string
	RatePerMin    int
	RateBurst     int
	EnableSwagger bool
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger))

	config := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = opts.CORSOrigins
	}
	config.AllowHeaders = append(config.AllowHeaders, "Authorization", "X-Invite-Code")
	router.Use(cors.New(config))

	limited := middleware.RateLimitMiddleware(opts.RatePerMin, opts.RateBurst)
	router.POST("/register", limited, middleware.InviteCodeMiddleware(opts.InviteCode), h.Register)
	router.POST("/login", limited, h.Login)

	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware(h.tokens))
	{
		protected.POST("/chat", h.Chat)
		protected.POST("/voice", h.Voice)
		protected.POST("/math-pdf", h.MathPDF)
		protected.GET("/history", h.GetHistory)
		protected.GET("/files/:filename", h.ServeFile)
	}

	router.GET("/ws/chat", h.HandleChatConnection)
	router.GET("/healthz", h.Healthz)
	if opts.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return router
}
