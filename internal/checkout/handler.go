package checkout

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sparkbazaar/sparkbazaar/internal/cart"
	"github.com/sparkbazaar/sparkbazaar/internal/orders"
	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	service   *Service
	carts     cart.Store
	orders    *orders.Service
	templates *view.Engine
	csrf      *internalShared.CSRFManager
}

func NewHandler(
	logger *slog.Logger,
	service *Service,
	carts cart.Store,
	orderService *orders.Service,
	templates *view.Engine,
	csrf *internalShared.CSRFManager,
) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		carts:     carts,
		orders:    orderService,
		templates: templates,
		csrf:      csrf,
	}
}

// Form renders the checkout page with the cart summary.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	sess := internalShared.SessionFromContext(r.Context())
	c, err := h.carts.Get(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("load cart failed", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}
	if c.IsEmpty() {
		h.redirectWithFlash(w, r, "/cart", "error", "Your cart is empty")
		return
	}

	h.render(w, r, "pages/checkout.html", map[string]any{
		"Cart":   c,
		"Errors": map[string]string{},
		"Info":   CustomerInfo{},
	}, http.StatusOK)
}

// Submit places the order and redirects to the confirmation page.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	info := CustomerInfo{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Phone:   r.PostFormValue("phone"),
		Address: r.PostFormValue("address"),
	}

	sess := internalShared.SessionFromContext(r.Context())
	orderID, err := h.service.PlaceOrder(r.Context(), sess.ID, info)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCart):
			h.redirectWithFlash(w, r, "/cart", "error", "Your cart is empty")
		case errors.Is(err, ErrDuplicateSubmission):
			h.redirectWithFlash(w, r, "/cart", "error", "This order was already placed")
		default:
			c, cartErr := h.carts.Get(r.Context(), sess.ID)
			if cartErr != nil {
				h.logger.Error("load cart failed", "error", cartErr)
				http.Error(w, "Checkout failed", http.StatusInternalServerError)
				return
			}
			h.render(w, r, "pages/checkout.html", map[string]any{
				"Cart":   c,
				"Errors": map[string]string{"general": err.Error()},
				"Info":   info,
			}, http.StatusBadRequest)
		}
		return
	}

	http.Redirect(w, r, "/checkout/success?order="+orderID, http.StatusSeeOther)
}

// Success renders the order confirmation page.
func (h *Handler) Success(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), r.URL.Query().Get("order"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, "pages/checkout_success.html", map[string]any{
		"Order": order,
	}, http.StatusOK)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *internalShared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Checkout",
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
