package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/errs"
)

// setupPublicRoutes serves the HTML pages, the contact and newsletter forms and the public JSON API.
// Unknown paths and methods go back to the home page.
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(RedirectHomeOnPanic)

		r.Get("/", handlers.pageHandler.home())
		r.Get("/about/", handlers.pageHandler.about())
		r.Get("/projects/", handlers.pageHandler.projectList())
		r.Get("/project/{slug}/", handlers.pageHandler.projectDetail())
		r.Get("/contact/", handlers.pageHandler.contactForm())
		r.Post("/contact/", handlers.pageHandler.submitContact())
		r.Get("/work/", handlers.pageHandler.work())
		r.Get("/blog/", handlers.pageHandler.blog())
		r.Get("/blog/{slug}/", handlers.pageHandler.blogPost())
		r.Post("/newsletter/", handlers.pageHandler.newsletter())
		r.Get("/api/projects/", handlers.pageHandler.apiProjects())
	})

	redirectHome := func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	}
	r.NotFound(redirectHome)
	r.MethodNotAllowed(redirectHome)
}

// setupAdminRoutes mounts the token-protected management API under /admin.
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Route("/admin", func(r chi.Router) {
		responder := handlers.adminHandler.responder
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			responder.WriteError(w, errs.NewNotFoundError("not found"))
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			responder.WriteError(w, errs.NewApiErr(http.StatusMethodNotAllowed, "method not allowed"))
		})

		r.Post("/login", handlers.authHandler.login())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Get("/", handlers.adminHandler.index())
			r.Get("/schema", handlers.adminHandler.schema())

			// Skill Handler endpoints
			r.Get("/skills", handlers.adminHandler.list(admin.EntitySkills))
			r.Post("/skills", handlers.skillHandler.createSkill())
			r.Get("/skills/{id}", handlers.skillHandler.getSkill())
			r.Put("/skills/{id}", handlers.skillHandler.updateSkill())
			r.Delete("/skills/{id}", handlers.skillHandler.deleteSkill())

			// Project Handler endpoints
			r.Get("/projects", handlers.adminHandler.list(admin.EntityProjects))
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Get("/projects/{id}", handlers.projectHandler.getProject())
			r.Put("/projects/{id}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{id}", handlers.projectHandler.deleteProject())

			// Blog Post Handler endpoints
			r.Get("/blog-posts", handlers.adminHandler.list(admin.EntityBlogPosts))
			r.Post("/blog-posts", handlers.blogPostHandler.createBlogPost())
			r.Get("/blog-posts/{id}", handlers.blogPostHandler.getBlogPost())
			r.Put("/blog-posts/{id}", handlers.blogPostHandler.updateBlogPost())
			r.Delete("/blog-posts/{id}", handlers.blogPostHandler.deleteBlogPost())

			// Contact Message Handler endpoints
			r.Get("/messages", handlers.adminHandler.list(admin.EntityMessages))
			r.Post("/messages", handlers.messageHandler.createMessage())
			r.Post("/messages/mark-read", handlers.messageHandler.markRead())
			r.Post("/messages/mark-replied", handlers.messageHandler.markReplied())
			r.Get("/messages/{id}", handlers.messageHandler.getMessage())
			r.Put("/messages/{id}", handlers.messageHandler.updateMessage())
			r.Delete("/messages/{id}", handlers.messageHandler.deleteMessage())

			// Personal Info Handler endpoints
			r.Get("/personal-info", handlers.personalInfoHandler.getPersonalInfo())
			r.Post("/personal-info", handlers.personalInfoHandler.createPersonalInfo())
			r.Put("/personal-info", handlers.personalInfoHandler.updatePersonalInfo())
			r.Delete("/personal-info", handlers.personalInfoHandler.deletePersonalInfo())
		})
	})
}
