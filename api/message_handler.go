package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/database"
	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/models"
)

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.ContactMessageRepo
}

func newMessageHandler(messageRepo *database.ContactMessageRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
	}
}

// createMessage records a message on the owner's behalf
// @Summary Create contact message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body models.ContactMessage true "Message"
// @Success 201 {object} models.ContactMessage
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid message"
// @Router /admin/messages [post]
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var message models.ContactMessage
		if err := decodeJSON(w, r, &message); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message.ID = 0

		if err := h.messageRepo.Add(r.Context(), &message); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, message)
	}
}

// getMessage retrieves a message by ID
// @Summary Get contact message
// @Tags Messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /admin/messages/{id} [get]
func (h messageHandler) getMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.messageRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// updateMessage applies the submitted fields, typically the read and replied flags
// @Summary Update contact message
// @Tags Messages
// @Accept json
// @Produce json
// @Param id path int true "Message ID"
// @Param message body models.ContactMessage true "Fields to change"
// @Success 200 {object} models.ContactMessage
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /admin/messages/{id} [put]
func (h messageHandler) updateMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.messageRepo.FindByID(r.Context(), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := decodeJSON(w, r, message); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		message.ID = id

		if err := h.messageRepo.Update(r.Context(), message); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// deleteMessage removes a message
// @Summary Delete contact message
// @Tags Messages
// @Param id path int true "Message ID"
// @Success 204
// @Failure 404 {object} ErrorResponse "Not Found - Message not found"
// @Router /admin/messages/{id} [delete]
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.messageRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// markRead flags the selected messages as read
// @Summary Mark messages as read
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body IDsRequest true "Message IDs"
// @Success 200 {object} BulkActionResponse
// @Router /admin/messages/mark-read [post]
func (h messageHandler) markRead() http.HandlerFunc {
	return h.bulkAction("read", h.messageRepo.MarkRead)
}

// markReplied flags the selected messages as replied
// @Summary Mark messages as replied
// @Tags Messages
// @Accept json
// @Produce json
// @Param request body IDsRequest true "Message IDs"
// @Success 200 {object} BulkActionResponse
// @Router /admin/messages/mark-replied [post]
func (h messageHandler) markReplied() http.HandlerFunc {
	return h.bulkAction("replied", h.messageRepo.MarkReplied)
}

func (h messageHandler) bulkAction(state string, mark func(ctx context.Context, ids []uint) (int64, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IDsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if len(req.IDs) == 0 {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("ids"))
			return
		}

		updated, err := mark(r.Context(), req.IDs)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, BulkActionResponse{
			Updated: updated,
			Message: fmt.Sprintf("%d messages marked as %s.", updated, state),
		})
	}
}
