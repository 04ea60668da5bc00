package api

import (
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site/errs"
	"github.com/rpupo63/portfolio-site/forms"
	"github.com/rpupo63/portfolio-site/models"
	"github.com/rpupo63/portfolio-site/services"
)

const (
	msgContactThanks  = "Thank you for your message! I'll get back to you soon."
	msgContactFailed  = "Sorry, there was an error sending your message. Please try again."
	msgFormErrors     = "Please check your form for errors."
	msgNewsletterOK   = "Thanks for subscribing!"
	msgWorkPageFailed = "An error occurred loading the work page."
)

// ContactPage is the data of the contact template.
type ContactPage struct {
	Form         forms.ContactForm
	Errors       map[string][]string
	PersonalInfo *models.PersonalInfo
	InquiryTypes models.Choices
}

type pageHandler struct {
	responder Responder
	logger    zerolog.Logger
	portfolio *services.Portfolio
	renderer  Renderer
	flashes   flashJar
	now       func() time.Time
}

func newPageHandler(portfolio *services.Portfolio, renderer Renderer, flashes flashJar, now func() time.Time) pageHandler {
	logger := log.With().Str("handlerName", "pageHandler").Logger()

	return pageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		portfolio: portfolio,
		renderer:  renderer,
		flashes:   flashes,
		now:       now,
	}
}

// isAJAX reports whether the caller asked for a JSON answer instead of a page.
func isAJAX(r *http.Request) bool {
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func isJSONRequest(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

// render writes a page with the pending flash messages plus any extra ones.
// A failed render sends the visitor home, except for the home page itself.
func (h pageHandler) render(w http.ResponseWriter, r *http.Request, name string, data any, extra ...Flash) {
	view := View{
		Messages: append(h.flashes.pop(w, r), extra...),
		Year:     h.now().Year(),
		Data:     data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, name, view); err != nil {
		h.logger.Error().Err(err).Str("template", name).Str("requestId", ctxGetRequestID(r.Context())).Msg("error rendering page")
		if name == "home" {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		redirectHome(w, r)
	}
}

// home renders the landing page. It always renders, falling back to the owner's profile alone.
// @Summary Home page
// @Tags Pages
// @Produce html
// @Success 200
// @Router / [get]
func (h pageHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := h.portfolio.Home(r.Context())
		h.render(w, r, "home", page)
	}
}

// about has no page of its own
// @Summary About page
// @Tags Pages
// @Success 302
// @Router /about/ [get]
func (h pageHandler) about() http.HandlerFunc {
	return redirectHome
}

// projectList renders published projects filtered by technology and free text.
// @Summary Project listing
// @Tags Pages
// @Produce html
// @Param tech query string false "Technology name substring"
// @Param search query string false "Title or description substring"
// @Success 200
// @Router /projects/ [get]
func (h pageHandler) projectList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, err := h.portfolio.ProjectList(r.Context(), query.Get("tech"), query.Get("search"))
		if err != nil {
			h.logger.Error().Err(err).Msg("error loading project list")
			redirectHome(w, r)
			return
		}
		h.render(w, r, "projects", page)
	}
}

// projectDetail renders one published project with related work.
// @Summary Project detail
// @Tags Pages
// @Produce html
// @Param slug path string true "Project slug"
// @Success 200
// @Failure 302 "Unknown or unpublished project"
// @Router /project/{slug}/ [get]
func (h pageHandler) projectDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.portfolio.ProjectDetail(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if !errs.IsNotFound(err) {
				h.logger.Error().Err(err).Msg("error loading project detail")
			}
			redirectHome(w, r)
			return
		}
		h.render(w, r, "project_detail", page)
	}
}

// contactForm renders an empty contact form.
// @Summary Contact form
// @Tags Pages
// @Produce html
// @Success 200
// @Router /contact/ [get]
func (h pageHandler) contactForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderContact(w, r, forms.ContactForm{}, nil)
	}
}

func (h pageHandler) renderContact(w http.ResponseWriter, r *http.Request, form forms.ContactForm, fieldErrors map[string][]string, extra ...Flash) {
	info, err := h.portfolio.PersonalInfo(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("error loading personal info for contact page")
		redirectHome(w, r)
		return
	}
	page := ContactPage{
		Form:         form,
		Errors:       fieldErrors,
		PersonalInfo: info,
		InquiryTypes: models.InquiryTypes,
	}
	h.render(w, r, "contact", page, extra...)
}

// submitContact stores a contact message and notifies the owner.
// AJAX callers always get status 200 with a FormResponse; others are redirected home on success
// and shown the form again on failure.
// @Summary Submit contact form
// @Tags Pages
// @Accept json,x-www-form-urlencoded,multipart/form-data
// @Produce json,html
// @Param X-Requested-With header string false "XMLHttpRequest for a JSON answer"
// @Success 200 {object} FormResponse "AJAX acknowledgment"
// @Success 302 "Redirect home with a flash message"
// @Router /contact/ [post]
func (h pageHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ajax := isAJAX(r)

		form, err := readContactForm(w, r)
		if err == nil {
			_, err = h.portfolio.SubmitContact(r.Context(), form)
		}

		switch {
		case err == nil:
			if ajax {
				h.responder.WriteJSON(w, FormResponse{Success: true, Message: msgContactThanks})
				return
			}
			h.flashes.add(w, r, flashSuccess, msgContactThanks)
			redirectHome(w, r)

		case errs.IsValidationError(err) || errs.IsBadRequest(err):
			fieldErrors := errs.FieldErrors(err)
			if ajax {
				h.responder.WriteJSON(w, FormResponse{Success: false, Message: msgFormErrors, Errors: fieldErrors})
				return
			}
			h.renderContact(w, r, form, fieldErrors, Flash{Level: flashError, Text: msgFormErrors})

		default:
			h.logger.Error().Err(err).Str("requestId", ctxGetRequestID(r.Context())).Msg("error saving contact form")
			if ajax {
				h.responder.WriteJSON(w, FormResponse{Success: false, Message: msgContactFailed})
				return
			}
			h.renderContact(w, r, form, nil, Flash{Level: flashError, Text: msgContactFailed})
		}
	}
}

// readContactForm accepts a JSON body or an urlencoded/multipart form.
func readContactForm(w http.ResponseWriter, r *http.Request) (forms.ContactForm, error) {
	var form forms.ContactForm
	if isJSONRequest(r) {
		err := decodeJSON(w, r, &form)
		return form, err
	}
	if err := parseForm(w, r); err != nil {
		return form, err
	}
	return forms.ContactFormFromValues(r.PostForm), nil
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseMultipartForm(maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return errs.NewMalformedPayloadError("form", err)
	}
	return nil
}

// work lists published projects newest first.
// @Summary Work page
// @Tags Pages
// @Produce html
// @Success 200
// @Router /work/ [get]
func (h pageHandler) work() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.portfolio.Work(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("error in work view")
			h.flashes.add(w, r, flashError, msgWorkPageFailed)
			redirectHome(w, r)
			return
		}
		h.render(w, r, "work", page)
	}
}

// @Summary Blog index
// @Tags Pages
// @Produce html
// @Success 200
// @Router /blog/ [get]
func (h pageHandler) blog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.portfolio.Blog(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Msg("error loading blog")
			redirectHome(w, r)
			return
		}
		h.render(w, r, "blog", page)
	}
}

// @Summary Blog post
// @Tags Pages
// @Produce html
// @Param slug path string true "Post slug"
// @Success 200
// @Router /blog/{slug}/ [get]
func (h pageHandler) blogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.portfolio.BlogPost(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			if !errs.IsNotFound(err) {
				h.logger.Error().Err(err).Msg("error loading blog post")
			}
			redirectHome(w, r)
			return
		}
		h.render(w, r, "blog_detail", page)
	}
}

// newsletter records interest in the newsletter by notifying the owner.
// @Summary Newsletter signup
// @Tags Pages
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} FormResponse
// @Router /newsletter/ [post]
func (h pageHandler) newsletter() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form forms.NewsletterForm
		var err error
		if isJSONRequest(r) {
			err = decodeJSON(w, r, &form)
		} else if err = parseForm(w, r); err == nil {
			form = forms.NewsletterFormFromValues(r.PostForm)
		}
		if err == nil {
			_, err = h.portfolio.Subscribe(r.Context(), form)
		}

		ajax := isAJAX(r)
		if err != nil {
			if ajax {
				h.responder.WriteJSON(w, FormResponse{Success: false, Message: msgFormErrors, Errors: errs.FieldErrors(err)})
				return
			}
			h.flashes.add(w, r, flashError, msgFormErrors)
			redirectHome(w, r)
			return
		}

		if ajax {
			h.responder.WriteJSON(w, FormResponse{Success: true, Message: msgNewsletterOK})
			return
		}
		h.flashes.add(w, r, flashSuccess, msgNewsletterOK)
		redirectHome(w, r)
	}
}

// apiProjects serves every published project as JSON.
// @Summary List published projects
// @Tags API
// @Produce json
// @Success 200 {object} services.ProjectsResponse
// @Failure 302 "Redirect home when the projects cannot be loaded"
// @Router /api/projects/ [get]
func (h pageHandler) apiProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := h.portfolio.APIProjects(r.Context())
		if err != nil {
			h.logger.Error().Err(err).Str("requestId", ctxGetRequestID(r.Context())).Msg("error loading projects api")
			redirectHome(w, r)
			return
		}
		h.responder.WriteRawJSON(w, http.StatusOK, body)
	}
}
