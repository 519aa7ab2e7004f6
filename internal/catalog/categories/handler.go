package categories

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *internalShared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *internalShared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/admin_categories.html", map[string]any{
		"Categories": list,
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/admin_category_form.html", map[string]any{
		"Errors":   map[string]string{},
		"Category": nil,
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	category := categoryFromForm(r)

	if _, err := h.service.Create(r.Context(), category); err != nil {
		h.render(w, r, "pages/admin_category_form.html", map[string]any{
			"Errors":   map[string]string{"general": err.Error()},
			"Category": nil,
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/admin/categories", "success", "Category created successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, "pages/admin_category_form.html", map[string]any{
		"Errors":   map[string]string{},
		"Category": category,
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	category := categoryFromForm(r)

	if err := h.service.Update(r.Context(), id, category); err != nil {
		category.ID = id
		h.render(w, r, "pages/admin_category_form.html", map[string]any{
			"Errors":   map[string]string{"general": err.Error()},
			"Category": category,
		}, http.StatusBadRequest)
		return
	}

	h.redirectWithFlash(w, r, "/admin/categories", "success", "Category updated successfully")
}

func categoryFromForm(r *http.Request) Category {
	category := Category{Name: r.PostFormValue("name")}
	if v := r.PostFormValue("description"); v != "" {
		category.Description = &v
	}
	if v := r.PostFormValue("image_url"); v != "" {
		category.ImageURL = &v
	}
	category.DisplayOrder, _ = strconv.Atoi(r.PostFormValue("display_order"))
	return category
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.redirectWithFlash(w, r, "/admin/categories", "error", err.Error())
		return
	}
	h.redirectWithFlash(w, r, "/admin/categories", "success", "Category deleted successfully")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *internalShared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Categories",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		CartCount:   internalShared.CartCountFromContext(r.Context()),
		Data:        data,
	}
	w.WriteHeader(status)
	if err := h.templates.Render(w, template, viewData); err != nil {
		h.logger.Error("render template", "error", err, "template", template)
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	if sess := internalShared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(internalShared.FlashMessage{Kind: kind, Message: message})
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
