package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/models"
)

type personalInfoHandler struct {
	responder         Responder
	logger            zerolog.Logger
	personalInfoStore *database.PersonalInfoStore
}

func newPersonalInfoHandler(personalInfoStore *database.PersonalInfoStore) personalInfoHandler {
	logger := log.With().Str("handlerName", "personalInfoHandler").Logger()

	return personalInfoHandler{
		responder:         NewResponder(logger),
		logger:            logger,
		personalInfoStore: personalInfoStore,
	}
}

// getPersonalInfo returns the site owner's profile, creating the default one on first use
// @Summary Get personal info
// @Tags Personal Info
// @Produce json
// @Success 200 {object} models.PersonalInfo
// @Router /admin/personal-info [get]
func (h personalInfoHandler) getPersonalInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.personalInfoStore.Load(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, info)
	}
}

// createPersonalInfo creates the profile while none exists
// @Summary Create personal info
// @Tags Personal Info
// @Accept json
// @Produce json
// @Param personalInfo body models.PersonalInfo true "Personal info"
// @Success 201 {object} models.PersonalInfo
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid personal info"
// @Failure 409 {object} ErrorResponse "Conflict - Personal info already exists"
// @Router /admin/personal-info [post]
func (h personalInfoHandler) createPersonalInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := models.PersonalInfo{IsActive: true}
		if err := decodeJSON(w, r, &info); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.personalInfoStore.Create(r.Context(), &info); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, info)
	}
}

// updatePersonalInfo applies the submitted fields onto the profile
// @Summary Update personal info
// @Tags Personal Info
// @Accept json
// @Produce json
// @Param personalInfo body models.PersonalInfo true "Fields to change"
// @Success 200 {object} models.PersonalInfo
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid personal info"
// @Router /admin/personal-info [put]
func (h personalInfoHandler) updatePersonalInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := h.personalInfoStore.Load(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := decodeJSON(w, r, info); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.personalInfoStore.Update(r.Context(), info); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		subject, _ := ctxGetAdminSubject(r.Context())
		h.logger.Info().Str("admin", subject).Msg("personal info updated")
		h.responder.WriteJSON(w, info)
	}
}

// deletePersonalInfo is always refused
// @Summary Delete personal info
// @Tags Personal Info
// @Failure 403 {object} ErrorResponse "Forbidden - Personal info cannot be deleted"
// @Router /admin/personal-info [delete]
func (h personalInfoHandler) deletePersonalInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteError(w, h.personalInfoStore.Delete(r.Context()))
	}
}
