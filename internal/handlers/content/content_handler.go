// internal/handlers/content/content_handler.go
package content

import (
	"net/http"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/domain/content"
	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	contentSvc "github.com/kubilayakkiz/wawainteriorsNL/internal/service/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ContentHandler struct {
	contentService *contentSvc.Service
	logger         *zap.Logger
}

func NewContentHandler(contentService *contentSvc.Service, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
		logger:         logger,
	}
}

// ========== Public routes ==========

// BlogPosts returns published posts for a locale
func (h *ContentHandler) BlogPosts(c *gin.Context) {
	posts, err := h.contentService.PublishedPosts(c.Request.Context(), c.Query("locale"))
	if err != nil {
		response.FromError(c, "failed to list blog posts", err)
		return
	}

	response.Success(c, http.StatusOK, "blog posts", posts)
}

// Projects returns published portfolio projects for a locale
func (h *ContentHandler) Projects(c *gin.Context) {
	projects, err := h.contentService.PublishedProjects(c.Request.Context(), c.Query("locale"))
	if err != nil {
		response.FromError(c, "failed to list projects", err)
		return
	}

	response.Success(c, http.StatusOK, "projects", projects)
}

// BlogPost returns one post by id
func (h *ContentHandler) BlogPost(c *gin.Context) {
	p, err := h.contentService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, "failed to get blog post", err)
		return
	}

	response.Success(c, http.StatusOK, "blog post", p)
}

// Project returns one published project by slug
func (h *ContentHandler) Project(c *gin.Context) {
	p, err := h.contentService.GetProject(c.Request.Context(), c.Query("locale"), c.Param("slug"))
	if err != nil {
		response.FromError(c, "failed to get project", err)
		return
	}

	response.Success(c, http.StatusOK, "project", p)
}

// ========== Admin routes ==========

// AdminBlogPosts returns all posts for a locale, drafts included
func (h *ContentHandler) AdminBlogPosts(c *gin.Context) {
	posts, err := h.contentService.AllPosts(c.Request.Context(), c.Query("locale"))
	if err != nil {
		response.FromError(c, "failed to list blog posts", err)
		return
	}

	response.Success(c, http.StatusOK, "blog posts", posts)
}

// CreateBlogPost creates a post
func (h *ContentHandler) CreateBlogPost(c *gin.Context) {
	var req content.BlogPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.contentService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create blog post", err)
		return
	}

	response.Success(c, http.StatusCreated, "blog post created", created)
}

// UpdateBlogPost updates a post
func (h *ContentHandler) UpdateBlogPost(c *gin.Context) {
	var req content.BlogPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.contentService.UpdatePost(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update blog post", err)
		return
	}

	response.Success(c, http.StatusOK, "blog post updated", updated)
}

// DeleteBlogPost removes a post
func (h *ContentHandler) DeleteBlogPost(c *gin.Context) {
	if err := h.contentService.DeletePost(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete blog post", err)
		return
	}

	response.Success(c, http.StatusOK, "blog post deleted", nil)
}

// AdminProjects returns all projects for a locale, drafts included
func (h *ContentHandler) AdminProjects(c *gin.Context) {
	projects, err := h.contentService.AllProjects(c.Request.Context(), c.Query("locale"))
	if err != nil {
		response.FromError(c, "failed to list projects", err)
		return
	}

	response.Success(c, http.StatusOK, "projects", projects)
}

// CreateProject creates a portfolio project
func (h *ContentHandler) CreateProject(c *gin.Context) {
	var req content.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	created, err := h.contentService.CreateProject(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create project", err)
		return
	}

	response.Success(c, http.StatusCreated, "project created", created)
}

// UpdateProject updates a portfolio project
func (h *ContentHandler) UpdateProject(c *gin.Context) {
	var req content.ProjectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	updated, err := h.contentService.UpdateProject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.FromError(c, "failed to update project", err)
		return
	}

	response.Success(c, http.StatusOK, "project updated", updated)
}

// DeleteProject removes a portfolio project
func (h *ContentHandler) DeleteProject(c *gin.Context) {
	if err := h.contentService.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, "failed to delete project", err)
		return
	}

	response.Success(c, http.StatusOK, "project deleted", nil)
}
