package handlers

import (
	"errors"
	"net/http"

	"github.com/hueyning/kanban-app/internal/auth"
	dom "github.com/hueyning/kanban-app/internal/domain"
	"github.com/hueyning/kanban-app/internal/dto"
	"github.com/hueyning/kanban-app/internal/service"

	"github.com/gin-gonic/gin"
)

// BoardHandler serves the board and its task mutations. Every route here sits
// behind auth.RequireSession, so the owner is always the session's user.
type BoardHandler struct {
	svc *service.BoardService
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// Show godoc
// @Summary      Show the caller's board in three columns
// @Tags         board
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.BoardResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       / [get]
func (h *BoardHandler) Show(c *gin.Context) {
	ownerID := auth.UserIDFromContext(c)
	board, err := h.svc.Board(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load board"})
		return
	}
	c.JSON(http.StatusOK, dto.FromBoard(board))
}

// Create godoc
// @Summary      Create a task in the TODO column
// @Tags         board
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task body"
// @Success      201   {object}  dto.TaskResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /do [post]
func (h *BoardHandler) Create(c *gin.Context) {
	ownerID := auth.UserIDFromContext(c)
	var req dto.CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), ownerID, req.Title, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create task"})
		return
	}
	c.JSON(http.StatusCreated, dto.FromTask(t))
}

// Doing godoc
// @Summary      Move a task to the DOING column
// @Tags         board
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.TaskIDRequest  true  "Task id"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /doing [post]
func (h *BoardHandler) Doing(c *gin.Context) {
	h.setStatus(c, dom.StatusDoing)
}

// Done godoc
// @Summary      Move a task to the DONE column
// @Tags         board
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.TaskIDRequest  true  "Task id"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /done [post]
func (h *BoardHandler) Done(c *gin.Context) {
	h.setStatus(c, dom.StatusDone)
}

func (h *BoardHandler) setStatus(c *gin.Context, status dom.Status) {
	ownerID := auth.UserIDFromContext(c)
	var req dto.TaskIDRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.SetStatus(c.Request.Context(), ownerID, req.ID, status); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "not your task"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update task"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status.String()})
}

// Delete godoc
// @Summary      Delete a task
// @Tags         board
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.TaskIDRequest  true  "Task id"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /delete [post]
func (h *BoardHandler) Delete(c *gin.Context) {
	ownerID := auth.UserIDFromContext(c)
	var req dto.TaskIDRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), ownerID, req.ID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your task"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete task"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
