package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
)

type blogPostHandler struct {
	responder    Responder
	logger       zerolog.Logger
	blogPostRepo *database.BlogPostRepo
}

func newBlogPostHandler(blogPostRepo *database.BlogPostRepo) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		blogPostRepo: blogPostRepo,
	}
}

// BlogPostRequest is a post payload whose tags are given by skill ID.
type BlogPostRequest struct {
	*models.BlogPost
	TagIDs *[]uint `json:"tag_ids"`
}

func (req BlogPostRequest) apply() {
	if req.TagIDs != nil {
		req.BlogPost.Tags = skillRefs(*req.TagIDs)
	}
}

// createBlogPost adds a blog post
// @Summary Create blog post
// @Description Publishing a post stamps published_at once
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param blogPost body BlogPostRequest true "Blog post"
// @Success 201 {object} models.BlogPost
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post"
// @Failure 409 {object} ErrorResponse "Conflict - Slug already used"
// @Router /admin/blog-posts [post]
func (h blogPostHandler) createBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := BlogPostRequest{BlogPost: &models.BlogPost{}}
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.apply()
		post := req.BlogPost
		post.ID = 0

		if err := h.blogPostRepo.Add(r.Context(), post); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, post)
	}
}

// getBlogPost retrieves a post by ID, drafts included
// @Summary Get blog post
// @Tags Blog Posts
// @Produce json
// @Param id path int true "Blog post ID"
// @Success 200 {object} models.BlogPost
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /admin/blog-posts/{id} [get]
func (h blogPostHandler) getBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// updateBlogPost applies the submitted fields onto an existing post
// @Summary Update blog post
// @Tags Blog Posts
// @Accept json
// @Produce json
// @Param id path int true "Blog post ID"
// @Param blogPost body BlogPostRequest true "Fields to change"
// @Success 200 {object} models.BlogPost
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid blog post"
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /admin/blog-posts/{id} [put]
func (h blogPostHandler) updateBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.blogPostRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req := BlogPostRequest{BlogPost: post}
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		req.apply()
		post.ID = id

		if err := h.blogPostRepo.Update(r.Context(), post); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, post)
	}
}

// deleteBlogPost removes a post and its tag links
// @Summary Delete blog post
// @Tags Blog Posts
// @Param id path int true "Blog post ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Blog post not found"
// @Router /admin/blog-posts/{id} [delete]
func (h blogPostHandler) deleteBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.blogPostRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
