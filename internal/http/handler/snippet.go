// Package handler provides HTTP handler functions for the Canopy API.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roguepikachu/canopy/internal/domain"
	"github.com/roguepikachu/canopy/pkg"
	"github.com/roguepikachu/canopy/pkg/logger"
)

// SnippetService defines the handler's dependency contract.
type SnippetService interface {
	CreateSnippet(ctx context.Context, userID int, req domain.CreateSnippetRequest) (domain.Snippet, error)
	GetSnippet(ctx context.Context, uid string, viewerID *int) (domain.Snippet, error)
	UnlockPrivateSnippet(ctx context.Context, uid, passCode string) (domain.Snippet, error)
	GetSnippetForEdit(ctx context.Context, uid string, viewerID int) (domain.Snippet, error)
	UpdateSnippet(ctx context.Context, uid string, viewerID int, req domain.UpdateSnippetRequest) error
	DeleteSnippet(ctx context.Context, uid string, viewerID int) error
	ListMine(ctx context.Context, userID int, q string, page, limit int) ([]domain.Snippet, error)
	ListPublic(ctx context.Context, q string, page, limit int) ([]domain.Snippet, int, error)
}

// Reviewer forwards source text to the external code review service.
type Reviewer interface {
	Review(ctx context.Context, req domain.ReviewSnippetRequest) (string, error)
}

// SnippetHandler handles HTTP requests for snippets.
type SnippetHandler struct {
	svc     SnippetService
	reviews Reviewer
}

// NewSnippetHandler constructs a SnippetHandler.
func NewSnippetHandler(svc SnippetService, reviews Reviewer) *SnippetHandler {
	return &SnippetHandler{svc: svc, reviews: reviews}
}

type listQuery struct {
	Q     string `form:"q"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
}

// Create handles POST /snippets.
func (h *SnippetHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req domain.CreateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	snippet, err := h.svc.CreateSnippet(ctx, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.With(ctx, map[string]any{"uid": snippet.UID, "user_id": userID}).Info("snippet created")
	c.JSON(http.StatusCreated, pkg.NewResponse("Snippet created successfully", gin.H{
		"snippet": domain.OwnerView(snippet),
	}))
}

// Mine handles GET /snippets/my.
func (h *SnippetHandler) Mine(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	items, err := h.svc.ListMine(ctx, userID, q.Q, q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, pkg.Message("No snippets found"))
		return
	}
	views := make([]domain.SnippetView, 0, len(items))
	for _, s := range items {
		views = append(views, domain.MineListItemView(s))
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Snippets fetched successfully", gin.H{
		"snippets": views,
	}))
}

// List handles GET /snippets, the public listing with total match count.
func (h *SnippetHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	items, total, err := h.svc.ListPublic(ctx, q.Q, q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, pkg.Message("No snippets found"))
		return
	}
	views := make([]domain.SnippetView, 0, len(items))
	for _, s := range items {
		views = append(views, domain.PublicListItemView(s))
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Snippets fetched successfully", gin.H{
		"snippets": views,
		"total":    total,
	}))
}

// Show handles GET /snippets/:uid.
func (h *SnippetHandler) Show(c *gin.Context) {
	ctx := c.Request.Context()
	snippet, err := h.svc.GetSnippet(ctx, c.Param("uid"), viewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Snippet fetched successfully", gin.H{
		"snippet": domain.DetailView(snippet),
	}))
}

// ShowPrivate handles POST /snippets/private/:uid, the pass-code unlock.
func (h *SnippetHandler) ShowPrivate(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.PrivateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	snippet, err := h.svc.UnlockPrivateSnippet(ctx, c.Param("uid"), req.PassCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Snippet fetched successfully", gin.H{
		"snippet": domain.DetailView(snippet),
	}))
}

// Edit handles GET /snippets/:uid/edit, the owner-only editable projection.
func (h *SnippetHandler) Edit(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	snippet, err := h.svc.GetSnippetForEdit(ctx, c.Param("uid"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Snippet fetched successfully", gin.H{
		"snippet": domain.EditView(snippet),
	}))
}

// Update handles PUT /snippets/:uid.
func (h *SnippetHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req domain.UpdateSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	uid := c.Param("uid")
	if err := h.svc.UpdateSnippet(ctx, uid, userID, req); err != nil {
		respondError(c, err)
		return
	}
	logger.With(ctx, map[string]any{"uid": uid, "user_id": userID}).Info("snippet updated")
	c.JSON(http.StatusOK, pkg.Message("Snippet updated successfully"))
}

// Delete handles DELETE /snippets/:uid.
func (h *SnippetHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	uid := c.Param("uid")
	if err := h.svc.DeleteSnippet(ctx, uid, userID); err != nil {
		respondError(c, err)
		return
	}
	logger.With(ctx, map[string]any{"uid": uid, "user_id": userID}).Info("snippet deleted")
	c.Status(http.StatusNoContent)
}

// Review handles POST /snippets/review, forwarding the source text to the
// external review service.
func (h *SnippetHandler) Review(c *gin.Context) {
	ctx := c.Request.Context()
	var req domain.ReviewSnippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, pkg.Message(err.Error()))
		return
	}
	message, err := h.reviews.Review(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pkg.NewResponse("Code reviewed successfully", gin.H{
		"message": message,
	}))
}
