package router

import (
	"doc-agent-backend/controller"
	"doc-agent-backend/middleware"

	"github.com/gin-gonic/gin"
)

func Register() *gin.Engine {
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	api := r.Group("/api")
	{
		public := api.Group("/user")
		{
			public.POST("/register", controller.UserRegister)
			public.POST("/login", controller.UserLogin)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/session", controller.CreateSession)
			protected.GET("/sessions", controller.GetSessions)
			protected.DELETE("/session/:id", controller.DeleteSession)
			protected.GET("/session/:id/messages", controller.GetSessionMessages)
			protected.PUT("/session/:id/title", controller.UpdateSessionTitle)

			protected.POST("/chat", controller.Chat)

			protected.POST("/voice-recognition", controller.ChatVoiceRecognition)

			protected.POST("/documents/parse", controller.ParseDocuments)
			protected.POST("/documents/validate", controller.ValidateDocuments)

			protected.GET("/oss/policy-token", controller.GetPolicyToken)
			protected.GET("/documents/metadata", controller.GetDocumentMetadata)
			protected.POST("/documents/metadata", controller.UploadDocumentMetadata)
			protected.DELETE("/documents", controller.DeleteDocument)
			protected.GET("/documents/download-link", controller.GetPresignedURL)
			protected.GET("/documents/metadata/search", controller.SearchDocumentMetadata)
		}
	}

	return r
}
