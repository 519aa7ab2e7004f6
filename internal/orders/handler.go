package orders

import (
	"encoding/json"
	"fmt"
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
	notifier  *Notifier
	templates *view.Engine
	csrf      *internalShared.CSRFManager
}

func NewHandler(logger *slog.Logger, service *Service, notifier *Notifier, templates *view.Engine, csrf *internalShared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		notifier:  notifier,
		templates: templates,
		csrf:      csrf,
	}
}

// MyOrders shows a shopper their past orders looked up by the email
// they checked out with. Without an email it just renders the lookup
// form.
func (h *Handler) MyOrders(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	data := map[string]any{
		"Email":    email,
		"Searched": email != "",
	}
	if email != "" {
		list, err := h.service.ListByEmail(r.Context(), email)
		if err != nil {
			h.logger.Error("list orders by email failed", "error", err)
			http.Error(w, "Failed to load orders", http.StatusInternalServerError)
			return
		}
		data["Orders"] = list
	}

	h.render(w, r, "pages/my_orders.html", data, http.StatusOK)
}

// AdminList renders the order table with search, status filter and paging.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filters := Filters{
		Page:   page,
		Limit:  internalShared.DefaultPageSize,
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		if status, err := ParseStatus(raw); err == nil {
			filters.Status = status
		}
	}

	list, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list orders failed", "error", err)
		http.Error(w, "Failed to load orders", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/admin_orders.html", map[string]any{
		"Orders":     list,
		"Filters":    filters,
		"Statuses":   AllStatuses(),
		"Pagination": internalShared.NewPagination(page, filters.Limit, total),
	}, http.StatusOK)
}

func (h *Handler) AdminDetail(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, "pages/admin_order_detail.html", map[string]any{
		"Order":    order,
		"Statuses": AllStatuses(),
	}, http.StatusOK)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	actorID := ""
	if sess := internalShared.SessionFromContext(r.Context()); sess != nil {
		actorID = sess.User()
	}

	if err := h.service.UpdateStatus(r.Context(), actorID, id, r.PostFormValue("status")); err != nil {
		h.redirectWithFlash(w, r, "/admin/orders/"+id, "error", err.Error())
		return
	}

	h.redirectWithFlash(w, r, "/admin/orders/"+id, "success", "Order status updated")
}

// Events streams new-order notifications as server-sent events for the
// admin badge.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	events, cancel := h.notifier.Subscribe(r.Context())
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			payload, err := json.Marshal(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: order\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *internalShared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Orders",
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
