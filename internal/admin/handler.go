package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sparkbazaar/sparkbazaar/internal/catalog/products"
	catalogShared "github.com/sparkbazaar/sparkbazaar/internal/catalog/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/customers"
	"github.com/sparkbazaar/sparkbazaar/internal/orders"
	internalShared "github.com/sparkbazaar/sparkbazaar/internal/shared"
	"github.com/sparkbazaar/sparkbazaar/internal/view"
)

// Handler serves the admin dashboard and customer views.
type Handler struct {
	logger    *slog.Logger
	orders    *orders.Service
	products  *products.Service
	customers customers.Repository
	templates *view.Engine
	csrf      *internalShared.CSRFManager
}

func NewHandler(
	logger *slog.Logger,
	orderService *orders.Service,
	productService *products.Service,
	customerRepo customers.Repository,
	templates *view.Engine,
	csrf *internalShared.CSRFManager,
) *Handler {
	return &Handler{
		logger:    logger,
		orders:    orderService,
		products:  productService,
		customers: customerRepo,
		templates: templates,
		csrf:      csrf,
	}
}

// Dashboard shows order counts per status, the newest orders and the
// products closest to running out.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.orders.CountByStatus(r.Context())
	if err != nil {
		h.logger.Error("dashboard order counts failed", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	recent, _, err := h.orders.List(r.Context(), orders.Filters{Page: 1, Limit: 5})
	if err != nil {
		h.logger.Error("dashboard recent orders failed", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	active := true
	lowStock, _, err := h.products.List(r.Context(), catalogShared.ListFilters{
		Page:     1,
		Limit:    5,
		SortBy:   catalogShared.SortStock,
		IsActive: &active,
	})
	if err != nil {
		h.logger.Error("dashboard low stock failed", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	revenue, err := h.orders.Revenue(r.Context())
	if err != nil {
		h.logger.Error("dashboard revenue failed", "error", err)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	total := 0
	for _, count := range counts {
		total += count
	}

	h.render(w, r, "pages/admin_dashboard.html", map[string]any{
		"StatusCounts": counts,
		"TotalOrders":  total,
		"PendingCount": counts[orders.StatusPending],
		"Revenue":      revenue,
		"RecentOrders": recent,
		"LowStock":     lowStock,
	}, http.StatusOK)
}

// Customers lists buyers with search and paging.
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	search := r.URL.Query().Get("search")

	list, total, err := h.customers.List(r.Context(), search, page, internalShared.DefaultPageSize)
	if err != nil {
		h.logger.Error("list customers failed", "error", err)
		http.Error(w, "Failed to load customers", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/admin_customers.html", map[string]any{
		"Customers":  list,
		"Search":     search,
		"Pagination": internalShared.NewPagination(page, internalShared.DefaultPageSize, total),
	}, http.StatusOK)
}

// CustomerDetail shows one buyer and their full order history.
func (h *Handler) CustomerDetail(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	orderHistory, err := h.orders.ListByEmail(r.Context(), customer.Email)
	if err != nil {
		h.logger.Error("list customer orders failed", "error", err)
		http.Error(w, "Failed to load customer", http.StatusInternalServerError)
		return
	}

	h.render(w, r, "pages/admin_customer_detail.html", map[string]any{
		"Customer": customer,
		"Orders":   orderHistory,
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
		Title:       "Admin",
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
