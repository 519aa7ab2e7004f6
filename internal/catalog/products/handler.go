package products

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/categories"
	"github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/media"
	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/view"
)

const maxUploadBytes = 5 << 20

type Handler struct {
	logger          *slog.Logger
	service         *Service
	categoryService *categories.Service
	media           *media.Store
	templates       *view.Engine
	csrf            *internalShared.CSRFManager
}

func NewHandler(
	logger *slog.Logger,
	service *Service,
	categoryService *categories.Service,
	mediaStore *media.Store,
	templates *view.Engine,
	csrf *internalShared.CSRFManager,
) *Handler {
	return &Handler{
		logger:          logger,
		service:         service,
		categoryService: categoryService,
		media:           mediaStore,
		templates:       templates,
		csrf:            csrf,
	}
}

// Storefront renders the public catalog grouped by category.
func (h *Handler) Storefront(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("list storefront products failed", "error", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}
	cats, err := h.categoryService.List(r.Context())
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		http.Error(w, "Failed to load categories", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/home.html", map[string]any{
		"Grouped":    GroupByCategory(list),
		"Categories": cats,
	}, http.StatusOK)
}

// Detail renders a single storefront product page.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil || !product.IsActive {
		http.NotFound(w, r)
		return
	}

	h.render(w, r, "pages/product_detail.html", map[string]any{
		"Product": product,
	}, http.StatusOK)
}

// AdminList renders the admin product table with search, sort and paging.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	filters := shared.ListFilters{
		Page:   page,
		Limit:  internalShared.DefaultPageSize,
		Search: r.URL.Query().Get("search"),
		SortBy: r.URL.Query().Get("sort"),
	}
	if v := r.URL.Query().Get("category_id"); v != "" {
		filters.CategoryID = &v
	}

	list, total, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products failed", "error", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}
	cats, _ := h.categoryService.List(r.Context())

	h.render(w, r, "pages/admin_products.html", map[string]any{
		"Products":   list,
		"Categories": cats,
		"Filters":    filters,
		"Pagination": internalShared.NewPagination(page, filters.Limit, total),
	}, http.StatusOK)
}

func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	cats, _ := h.categoryService.List(r.Context())
	h.render(w, r, "pages/admin_product_form.html", map[string]any{
		"Errors":     map[string]string{},
		"Product":    nil,
		"Categories": cats,
	}, http.StatusOK)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	product, err := h.parseForm(r, "")
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	created, err := h.service.Create(r.Context(), product)
	if err != nil {
		cats, _ := h.categoryService.List(r.Context())
		h.render(w, r, "pages/admin_product_form.html", map[string]any{
			"Errors":     map[string]string{"general": err.Error()},
			"Product":    nil,
			"Categories": cats,
		}, http.StatusBadRequest)
		return
	}

	h.logger.Info("product created", "product_id", created.ID, "name", created.Name)
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product created successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	cats, _ := h.categoryService.List(r.Context())

	h.render(w, r, "pages/admin_product_form.html", map[string]any{
		"Errors":     map[string]string{},
		"Product":    product,
		"Categories": cats,
	}, http.StatusOK)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, err := h.service.Get(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	product, err := h.parseForm(r, current.ImageURL)
	if err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	if err := h.service.Update(r.Context(), id, product); err != nil {
		product.ID = id
		cats, _ := h.categoryService.List(r.Context())
		h.render(w, r, "pages/admin_product_form.html", map[string]any{
			"Errors":     map[string]string{"general": err.Error()},
			"Product":    product,
			"Categories": cats,
		}, http.StatusBadRequest)
		return
	}

	if product.ImageURL != current.ImageURL {
		h.media.Remove(current.ImageURL)
	}
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product updated successfully")
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.redirectWithFlash(w, r, "/admin/products", "error", err.Error())
		return
	}
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product deactivated")
}

func (h *Handler) Reactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.redirectWithFlash(w, r, "/admin/products", "error", err.Error())
		return
	}
	h.redirectWithFlash(w, r, "/admin/products", "success", "Product reactivated")
}

// parseForm reads the multipart product form. When no new image is
// uploaded the current URL is kept.
func (h *Handler) parseForm(r *http.Request, currentImageURL string) (Product, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return Product{}, err
	}

	originalPrice, _ := strconv.ParseFloat(r.PostFormValue("original_price"), 64)
	discountPrice, _ := strconv.ParseFloat(r.PostFormValue("discount_price"), 64)
	stock, _ := strconv.Atoi(r.PostFormValue("stock_quantity"))

	product := Product{
		Name:          r.PostFormValue("name"),
		Content:       r.PostFormValue("content"),
		ImageURL:      currentImageURL,
		OriginalPrice: originalPrice,
		DiscountPrice: discountPrice,
		StockQuantity: stock,
	}
	if v := r.PostFormValue("description"); v != "" {
		product.Description = &v
	}
	if v := r.PostFormValue("category_id"); v != "" {
		product.CategoryID = &v
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		url, err := h.media.Save(file, header)
		if err != nil {
			return Product{}, err
		}
		product.ImageURL = url
	case errors.Is(err, http.ErrMissingFile):
	default:
		return Product{}, err
	}

	return product, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, template string, data map[string]any, status int) {
	sess := internalShared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	var flash *internalShared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	viewData := view.TemplateData{
		Title:       "SparkBazaar",
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
