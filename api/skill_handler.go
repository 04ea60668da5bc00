package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

// createSkill adds a skill
// @Summary Create skill
// @Description Category defaults to "other", proficiency to 2 and featured to true
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body models.Skill true "Skill"
// @Success 201 {object} models.Skill
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid skill"
// @Failure 409 {object} ErrorResponse "Conflict - Name already used"
// @Router /admin/skills [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skill := models.Skill{IsFeatured: true}
		if err := decodeJSON(w, r, &skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skill.ID = 0

		if err := h.skillRepo.Add(r.Context(), &skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, skill)
	}
}

// getSkill retrieves a skill by ID
// @Summary Get skill
// @Tags Skills
// @Produce json
// @Param id path int true "Skill ID"
// @Success 200 {object} models.Skill
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /admin/skills/{id} [get]
func (h skillHandler) getSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill applies the submitted fields onto an existing skill
// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param id path int true "Skill ID"
// @Param skill body models.Skill true "Fields to change"
// @Success 200 {object} models.Skill
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid skill"
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /admin/skills/{id} [put]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill, err := h.skillRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := decodeJSON(w, r, skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		skill.ID = id

		if err := h.skillRepo.Update(r.Context(), skill); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// deleteSkill removes a skill and its project and blog links
// @Summary Delete skill
// @Tags Skills
// @Param id path int true "Skill ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Skill not found"
// @Router /admin/skills/{id} [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
