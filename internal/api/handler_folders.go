package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"riverdesk/internal/desk"
)

type folderSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ListFolders handles GET /api/folders. Folders come back in display order
// with the unspecified folder last.
func (h *Handler) ListFolders(c *gin.Context) {
	groups, err := h.folders.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]folderSummary, 0, len(groups))
	for _, name := range desk.FolderNames(groups) {
		out = append(out, folderSummary{Name: name, Count: len(groups[name])})
	}
	c.JSON(http.StatusOK, out)
}

// GetFolder handles GET /api/folders/:name.
func (h *Handler) GetFolder(c *gin.Context) {
	items, err := h.folders.Contents(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if items == nil {
		items = []desk.Equipment{}
	}
	c.JSON(http.StatusOK, gin.H{"name": c.Param("name"), "items": items})
}

type folderRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateFolder handles POST /api/folders.
func (h *Handler) CreateFolder(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	if err := h.folders.Create(c.Request.Context(), req.Name); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, folderSummary{Name: req.Name})
}

// RenameFolder handles PUT /api/folders/:name with the new name in the body.
func (h *Handler) RenameFolder(c *gin.Context) {
	var req folderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	n, err := h.folders.Rename(c.Request.Context(), c.Param("name"), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, folderSummary{Name: req.Name, Count: n})
}

// DeleteFolder handles DELETE /api/folders/:name. Items of the folder lose
// their location but are kept.
func (h *Handler) DeleteFolder(c *gin.Context) {
	n, err := h.folders.Delete(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"released": n})
}

type moveRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// MoveToFolder handles POST /api/folders/:name/items.
func (h *Handler) MoveToFolder(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, fmt.Errorf("invalid request: %w", err))
		return
	}
	n, err := h.folders.Move(c.Request.Context(), req.IDs, c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": n})
}
