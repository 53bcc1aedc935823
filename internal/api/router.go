package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"notodo/internal/middleware"
)

type RouterConfig struct {
	// BasePath prefixes every route, e.g. "/api". Empty mounts at the root.
	BasePath    string
	CORSOrigins []string
	Tokens      middleware.TokenValidator
	// MCP is mounted at /mcp behind authentication when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// NewRouter wires the handlers into a gin engine.
func NewRouter(h *Handlers, cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logging(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(middleware.CORS(cfg.CORSOrigins))
	}

	root := r.Group(cfg.BasePath)
	root.GET("/health", h.Health)

	public := root.Group("/auth")
	public.POST("/register", h.Register)
	public.POST("/login", h.Login)
	public.POST("/guest", h.Guest)

	private := root.Group("", middleware.Auth(cfg.Tokens))
	private.GET("/auth/me", h.Me)

	tasks := private.Group("/tasks")
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)

	notes := private.Group("/notes")
	notes.GET("", h.ListNotes)
	notes.POST("", h.CreateNote)
	notes.POST("/ask", h.AskNotes)
	notes.GET("/:id", h.GetNote)
	notes.PUT("/:id", h.UpdateNote)
	notes.DELETE("/:id", h.DeleteNote)

	categories := private.Group("/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.DELETE("/:id", h.DeleteCategory)

	private.GET("/dashboard", h.Dashboard)

	if cfg.MCP != nil {
		mcp := gin.WrapH(cfg.MCP)
		private.POST("/mcp", mcp)
		private.GET("/mcp", mcp)
		private.DELETE("/mcp", mcp)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	})
	return r
}
