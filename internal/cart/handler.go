package cart

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/products"
	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/view"
)

type Handler struct {
	logger    *slog.Logger
	store     Store
	products  *products.Service
	templates *view.Engine
	csrf      *internalShared.CSRFManager
}

func NewHandler(logger *slog.Logger, store Store, productService *products.Service, templates *view.Engine, csrf *internalShared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		store:     store,
		products:  productService,
		templates: templates,
		csrf:      csrf,
	}
}

// View renders the cart page.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	sess := internalShared.SessionFromContext(r.Context())
	c, err := h.store.Get(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("load cart failed", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/cart.html", map[string]any{
		"Cart": c,
	}, c.ItemCount(), http.StatusOK)
}

// Add puts a product in the cart. The unit price is snapshotted from
// the product's current discount price.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	quantity, _ := strconv.Atoi(r.PostFormValue("quantity"))
	if quantity < 1 {
		quantity = 1
	}

	product, err := h.products.Get(r.Context(), r.PostFormValue("product_id"))
	if err != nil || !product.IsActive {
		h.redirectWithFlash(w, r, "/", "error", "Product is not available")
		return
	}
	if product.StockQuantity < quantity {
		h.redirectWithFlash(w, r, "/products/"+product.ID, "error", "Not enough stock available")
		return
	}

	sess := internalShared.SessionFromContext(r.Context())
	c, err := h.store.Get(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("load cart failed", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	var categoryID string
	if product.CategoryID != nil {
		categoryID = *product.CategoryID
	}
	c.Add(Item{
		ProductID:  product.ID,
		Name:       product.Name,
		ImageURL:   product.ImageURL,
		CategoryID: categoryID,
		UnitPrice:  product.DiscountPrice,
		Quantity:   quantity,
	})

	if err := h.store.Save(r.Context(), sess.ID, c); err != nil {
		h.logger.Error("save cart failed", "error", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	h.redirectWithFlash(w, r, "/cart", "success", product.Name+" added to cart")
}

// Update sets the quantity of a cart line; zero removes it.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	quantity, _ := strconv.Atoi(r.PostFormValue("quantity"))

	sess := internalShared.SessionFromContext(r.Context())
	c, err := h.store.Get(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("load cart failed", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	c.SetQuantity(r.PostFormValue("product_id"), quantity)

	if err := h.store.Save(r.Context(), sess.ID, c); err != nil {
		h.logger.Error("save cart failed", "error", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Clear empties the whole cart.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sess := internalShared.SessionFromContext(r.Context())
	if err := h.store.Clear(r.Context(), sess.ID); err != nil {
		h.logger.Error("clear cart failed", "error", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	h.redirectWithFlash(w, r, "/cart", "success", "Cart cleared")
}

// Remove drops a cart line.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	sess := internalShared.SessionFromContext(r.Context())
	c, err := h.store.Get(r.Context(), sess.ID)
	if err != nil {
		h.logger.Error("load cart failed", "error", err)
		http.Error(w, "Failed to load cart", http.StatusInternalServerError)
		return
	}

	c.Remove(r.PostFormValue("product_id"))

	if err := h.store.Save(r.Context(), sess.ID, c); err != nil {
		h.logger.Error("save cart failed", "error", err)
		http.Error(w, "Failed to update cart", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, cartCount, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *internalShared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "Your Cart",
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		CartCount:   cartCount,
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
