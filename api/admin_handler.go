package api

import (
	"net/http"
	"reflect"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/admin"
	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
)

// AdminIndex is the landing payload of the admin API
type AdminIndex struct {
	SiteHeader string             `json:"site_header"`
	SiteTitle  string             `json:"site_title"`
	IndexTitle string             `json:"index_title"`
	Entities   []admin.Descriptor `json:"entities"`
}

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
	registry  *admin.Registry
}

func newAdminHandler(db database.Database, registry *admin.Registry) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
		registry:  registry,
	}
}

// index describes the admin site
// @Summary Admin index
// @Tags Admin
// @Produce json
// @Success 200 {object} AdminIndex
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/ [get]
func (h adminHandler) index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, AdminIndex{
			SiteHeader: admin.SiteHeader,
			SiteTitle:  admin.SiteTitle,
			IndexTitle: admin.IndexTitle,
			Entities:   h.registry.All(),
		})
	}
}

// schema lists every entity descriptor
// @Summary Admin schema
// @Tags Admin
// @Produce json
// @Success 200 {array} admin.Descriptor
// @Router /admin/schema [get]
func (h adminHandler) schema() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.registry.All())
	}
}

// list searches, filters and orders one entity
// @Summary List records
// @Tags Admin
// @Produce json
// @Param q query string false "Search term over the searchable fields"
// @Param o query string false "Comma separated ordering, '-' for descending"
// @Param limit query int false "Maximum rows"
// @Success 200 {object} ListResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid filter or ordering"
// @Router /admin/{entity} [get]
func (h adminHandler) list(entity string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := h.registry.Lookup(entity)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError("unknown entity "+entity))
			return
		}

		rows, err := d.List(r.Context(), h.db, r.URL.Query())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, ListResponse{
			Entity:  d.Entity,
			Count:   reflect.ValueOf(rows).Elem().Len(),
			Results: rows,
		})
	}
}
