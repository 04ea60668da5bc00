package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/config"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
)

// initializeHandlers creates all handlers
func initializeHandlers(db database.Database, portfolio *services.Portfolio, renderer Renderer, adminCfg config.AdminConfig, secret []byte, now func() time.Time) *routeHandlers {
	return &routeHandlers{
		pageHandler:         newPageHandler(portfolio, renderer, newFlashJar(secret), now),
		authHandler:         newAuthHandler(adminCfg.Password, secret, adminCfg.TokenTTL, now),
		adminHandler:        newAdminHandler(db, admin.DefaultRegistry()),
		skillHandler:        newSkillHandler(db.SkillRepo()),
		projectHandler:      newProjectHandler(db.ProjectRepo()),
		blogPostHandler:     newBlogPostHandler(db.BlogPostRepo()),
		messageHandler:      newMessageHandler(db.ContactMessageRepo()),
		personalInfoHandler: newPersonalInfoHandler(db.PersonalInfoStore()),
	}
}

// parseID reads the numeric {id} path parameter
func parseID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return 0, errs.NewMissingRequiredFieldError("id")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.NewInvalidFieldError("id", "expected a positive integer")
	}
	return uint(id), nil
}

// skillRefs turns submitted skill IDs into link targets
func skillRefs(ids []uint) []models.Skill {
	skills := make([]models.Skill, len(ids))
	for i, id := range ids {
		skills[i] = models.Skill{ID: id}
	}
	return skills
}
