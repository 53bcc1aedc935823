package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"notodo/internal/middleware"
	"notodo/internal/models"
	"notodo/internal/query"
	"notodo/internal/service"
	"notodo/internal/store"
)

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	svc    *service.Services
	store  store.Store
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance. store is only used by the health check.
func NewHandlers(svc *service.Services, s store.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{svc: svc, store: s, logger: logger}
}

func (h *Handlers) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Auth

func (h *Handlers) Register(c *gin.Context) {
	var in service.RegisterInput
	if !h.bind(c, &in) {
		return
	}
	u, err := h.svc.Accounts.Register(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handlers) Login(c *gin.Context) {
	var in service.LoginInput
	if !h.bind(c, &in) {
		return
	}
	sess, err := h.svc.Accounts.Authenticate(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (h *Handlers) Guest(c *gin.Context) {
	sess, err := h.svc.Accounts.Guest(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

func (h *Handlers) Me(c *gin.Context) {
	u, err := h.svc.Accounts.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// Tasks

func (h *Handlers) ListTasks(c *gin.Context) {
	q := query.TaskQuery{
		Search:   c.Query("search"),
		Status:   query.Status(c.Query("status")),
		Category: c.Query("category"),
		Sort:     query.SortOrder(c.Query("sort")),
	}
	tasks, err := h.svc.Tasks.List(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	views := make([]query.TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = h.taskView(t)
	}
	c.JSON(http.StatusOK, views)
}

func (h *Handlers) GetTask(c *gin.Context) {
	t, err := h.svc.Tasks.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.taskView(t))
}

func (h *Handlers) CreateTask(c *gin.Context) {
	var in service.TaskInput
	if !h.bind(c, &in) {
		return
	}
	t, err := h.svc.Tasks.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.taskView(t))
}

func (h *Handlers) UpdateTask(c *gin.Context) {
	var p service.TaskPatch
	if !h.bind(c, &p) {
		return
	}
	t, err := h.svc.Tasks.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, h.taskView(t))
}

func (h *Handlers) DeleteTask(c *gin.Context) {
	if err := h.svc.Tasks.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task removed"})
}

func (h *Handlers) taskView(t models.Task) query.TaskView {
	return query.TaskView{Task: t, IsOverdue: h.svc.Tasks.IsOverdue(t)}
}

// Notes

func (h *Handlers) ListNotes(c *gin.Context) {
	q := query.NoteQuery{Search: c.Query("search"), Category: c.Query("category")}
	notes, err := h.svc.Notes.List(c.Request.Context(), middleware.UserID(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (h *Handlers) GetNote(c *gin.Context) {
	n, err := h.svc.Notes.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handlers) CreateNote(c *gin.Context) {
	var in service.NoteInput
	if !h.bind(c, &in) {
		return
	}
	n, err := h.svc.Notes.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *Handlers) UpdateNote(c *gin.Context) {
	var p service.NotePatch
	if !h.bind(c, &p) {
		return
	}
	n, err := h.svc.Notes.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handlers) DeleteNote(c *gin.Context) {
	if err := h.svc.Notes.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Note deleted"})
}

func (h *Handlers) AskNotes(c *gin.Context) {
	var in service.AskInput
	if !h.bind(c, &in) {
		return
	}
	answer, err := h.svc.Notes.Ask(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Categories

func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.svc.Categories.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handlers) CreateCategory(c *gin.Context) {
	var in service.CategoryInput
	if !h.bind(c, &in) {
		return
	}
	cat, err := h.svc.Categories.Create(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handlers) DeleteCategory(c *gin.Context) {
	if err := h.svc.Categories.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category removed"})
}

// Dashboard

func (h *Handlers) Dashboard(c *gin.Context) {
	d, err := h.svc.Dashboard.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}
