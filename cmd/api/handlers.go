package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	cartapp "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/app"
	cartdom "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
	catalogapp "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/app"
	catalogdom "github.com/ReactByHarsh/Apex-Perfumes/internal/catalog/domain"
	checkoutapp "github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/app"
	checkoutdom "github.com/ReactByHarsh/Apex-Perfumes/internal/checkout/domain"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/identity"
	orderapp "github.com/ReactByHarsh/Apex-Perfumes/internal/order/app"
	orderdom "github.com/ReactByHarsh/Apex-Perfumes/internal/order/domain"
	profileapp "github.com/ReactByHarsh/Apex-Perfumes/internal/profile/app"
	profiledom "github.com/ReactByHarsh/Apex-Perfumes/internal/profile/domain"
	wishlistapp "github.com/ReactByHarsh/Apex-Perfumes/internal/wishlist/app"
	"github.com/ReactByHarsh/Apex-Perfumes/pkg/money"
)

type api struct {
	cart     *cartapp.Service
	catalog  *catalogapp.Service
	checkout *checkoutapp.Service
	orders   *orderapp.Service
	profile  *profileapp.Service
	wishlist *wishlistapp.Service
	verifier identity.Verifier
	log      *slog.Logger
}

func (a *api) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	mux.HandleFunc("GET /products", a.handleListProducts)
	mux.HandleFunc("GET /products/{id}", a.handleGetProduct)
	mux.HandleFunc("POST /products", a.handleCreateProduct)

	mux.HandleFunc("GET /cart", a.handleGetCart)
	mux.HandleFunc("POST /cart/items", a.handleAddItem)
	mux.HandleFunc("PATCH /cart/items", a.handleUpdateItem)
	mux.HandleFunc("DELETE /cart/items", a.handleRemoveItem)
	mux.HandleFunc("POST /cart/size", a.handleChangeSize)
	mux.HandleFunc("DELETE /cart", a.handleClearCart)
	mux.HandleFunc("POST /cart/merge", a.requireAuth(a.handleMergeCart))

	mux.HandleFunc("POST /checkout/quote", a.requireAuth(a.handleQuote))
	mux.HandleFunc("POST /checkout", a.requireAuth(a.handleCheckout))
	mux.HandleFunc("POST /checkout/{orderID}/confirm", a.requireAuth(a.handleConfirmPayment))

	mux.HandleFunc("GET /orders", a.requireAuth(a.handleListOrders))
	mux.HandleFunc("GET /orders/{id}", a.requireAuth(a.handleGetOrder))
	mux.HandleFunc("POST /orders/{id}/cancel", a.requireAuth(a.handleCancelOrder))

	mux.HandleFunc("GET /profile", a.requireAuth(a.handleGetProfile))
	mux.HandleFunc("PATCH /profile", a.requireAuth(a.handleUpdateProfile))

	mux.HandleFunc("GET /wishlist", a.requireAuth(a.handleListWishlist))
	mux.HandleFunc("POST /wishlist/{productID}", a.requireAuth(a.handleAddWishlist))
	mux.HandleFunc("DELETE /wishlist/{productID}", a.requireAuth(a.handleRemoveWishlist))

	return a.withAuth(mux)
}

// ---- response shapes ----

type cartItemResponse struct {
	ProductID     string      `json:"product_id"`
	Size          string      `json:"size"`
	Quantity      int64       `json:"quantity"`
	UnitPrice     money.Money `json:"unit_price"`
	LineTotal     money.Money `json:"line_total"`
	ProductName   string      `json:"product_name"`
	ProductImages []string    `json:"product_images,omitempty"`
}

type cartResponse struct {
	Items          []cartItemResponse `json:"items"`
	Subtotal       money.Money        `json:"subtotal"`
	Discount       money.Money        `json:"discount"`
	Total          money.Money        `json:"total"`
	PromotionLabel string             `json:"promotion_label,omitempty"`
	ItemCount      int64              `json:"item_count"`
}

func toCartResponse(c cartdom.Cart) cartResponse {
	items := make([]cartItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemResponse{
			ProductID:     it.ProductID,
			Size:          string(it.Size),
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			LineTotal:     it.LineTotal,
			ProductName:   it.ProductName,
			ProductImages: it.ProductImages,
		})
	}
	return cartResponse{
		Items:          items,
		Subtotal:       c.Totals.Subtotal,
		Discount:       c.Totals.Discount,
		Total:          c.Totals.Total,
		PromotionLabel: c.Totals.PromotionLabel,
		ItemCount:      c.ItemCount(),
	}
}

type productResponse struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Brand       string      `json:"brand"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	Images      []string    `json:"images,omitempty"`
	Price       money.Money `json:"price"`
	Stock       int32       `json:"stock"`
	CreatedAt   time.Time   `json:"created_at"`
}

func toProductResponse(p catalogdom.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Description: p.Description,
		Category:    p.Category,
		Images:      p.Images,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

type orderResponse struct {
	ID             string                   `json:"id"`
	Status         string                   `json:"status"`
	PaymentStatus  string                   `json:"payment_status"`
	PaymentMethod  string                   `json:"payment_method,omitempty"`
	Currency       string                   `json:"currency"`
	Subtotal       int64                    `json:"subtotal_amount"`
	Discount       int64                    `json:"discount_amount"`
	Total          int64                    `json:"total_amount"`
	ShippingAddr   orderdom.ShippingAddress `json:"shipping_address"`
	Items          []orderItemResponse      `json:"items"`
	CreatedAt      time.Time                `json:"created_at"`
}

type orderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	UnitPrice int64  `json:"unit_amount"`
	Quantity  int32  `json:"quantity"`
	LineTotal int64  `json:"line_total_amount"`
}

func toOrderResponse(o orderdom.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Size:      it.Size,
			UnitPrice: it.UnitAmount,
			Quantity:  it.Quantity,
			LineTotal: it.LineTotalAmount,
		})
	}
	return orderResponse{
		ID:            o.ID,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		PaymentMethod: o.PaymentMethod,
		Currency:      o.Currency,
		Subtotal:      o.SubtotalAmount,
		Discount:      o.DiscountAmount,
		Total:         o.TotalAmount,
		ShippingAddr:  o.ShippingAddress,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}

// ---- catalog ----

func (a *api) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))

	products, nextCursor, err := a.catalog.ListProducts(r.Context(), catalogdom.ListFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Limit:    limit,
		Cursor:   q.Get("cursor"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"products":    out,
		"next_cursor": nextCursor,
	})
}

func (a *api) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (a *api) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string   `json:"name"`
		Brand       string   `json:"brand"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Images      []string `json:"images"`
		Currency    string   `json:"currency"`
		PriceAmount int64    `json:"price_amount"`
		Stock       int32    `json:"stock"`
	}
	if !a.decode(w, r, &req) {
		return
	}

	p, err := a.catalog.CreateProduct(r.Context(), catalogdom.Product{
		Name:        req.Name,
		Brand:       req.Brand,
		Description: req.Description,
		Category:    req.Category,
		Images:      req.Images,
		Price:       money.New(req.Currency, req.PriceAmount),
		Stock:       req.Stock,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// ---- cart ----

type cartItemRequest struct {
	ProductID string `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int64  `json:"quantity"`
}

func (a *api) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := a.cart.GetCart(r.Context(), cartIdentity(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (a *api) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !a.decode(w, r, &req) {
		return
	}
	cart, err := a.cart.AddItem(r.Context(), cartIdentity(r), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (a *api) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !a.decode(w, r, &req) {
		return
	}
	cart, err := a.cart.UpdateQuantity(r.Context(), cartIdentity(r), req.ProductID, req.Size, req.Quantity)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (a *api) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if !a.decode(w, r, &req) {
		return
	}
	cart, err := a.cart.RemoveItem(r.Context(), cartIdentity(r), req.ProductID, req.Size)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (a *api) handleChangeSize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		OldSize   string `json:"old_size"`
		NewSize   string `json:"new_size"`
		Quantity  int64  `json:"quantity"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	cart, err := a.cart.ChangeSize(r.Context(), cartIdentity(r), req.ProductID, req.OldSize, req.NewSize, req.Quantity)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (a *api) handleClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := a.cart.ClearCart(r.Context(), cartIdentity(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (a *api) handleMergeCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GuestID string `json:"guest_id"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	user, _ := identity.UserFrom(r.Context())

	cart, err := a.cart.MergeGuestCart(r.Context(), req.GuestID, user.UID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toCartResponse(cart))
}

// ---- checkout ----

func (a *api) handleQuote(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	quote, err := a.checkout.Quote(r.Context(), user.UID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, quote)
}

func (a *api) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingAddress orderdom.ShippingAddress `json:"shipping_address"`
		PaymentMethod   string                   `json:"payment_method"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	user, _ := identity.UserFrom(r.Context())

	res, err := a.checkout.Checkout(r.Context(), user.UID, user.Email, checkoutdom.CheckoutRequest{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, map[string]any{
		"order":   toOrderResponse(res.Order),
		"payment": res.Payment,
	})
}

func (a *api) handleConfirmPayment(w http.ResponseWriter, r *http.Request) {
	o, err := a.checkout.ConfirmPayment(r.Context(), r.PathValue("orderID"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// ---- orders ----

func (a *api) handleListOrders(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := orderdom.HistoryFilter{
		Status: q.Get("status"),
		Page:   page,
		Limit:  limit,
	}
	if v := q.Get("from"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.StartDate = ts
		}
	}
	if v := q.Get("to"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.EndDate = ts
		}
	}

	pageRes, err := a.orders.History(r.Context(), user.UID, filter)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	out := make([]orderResponse, 0, len(pageRes.Orders))
	for _, o := range pageRes.Orders {
		out = append(out, toOrderResponse(o))
	}
	a.writeJSON(w, http.StatusOK, map[string]any{
		"orders":      out,
		"total":       pageRes.Total,
		"page":        pageRes.Page,
		"total_pages": pageRes.TotalPages,
	})
}

func (a *api) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	o, err := a.orders.GetOrder(r.Context(), r.PathValue("id"), user.UID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (a *api) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	o, err := a.orders.CancelOrder(r.Context(), r.PathValue("id"), user.UID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, toOrderResponse(o))
}

// ---- profile ----

func (a *api) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	p, err := a.profile.GetProfile(r.Context(), user.UID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, p)
}

func (a *api) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		AvatarURL *string `json:"avatar_url"`
	}
	if !a.decode(w, r, &req) {
		return
	}
	user, _ := identity.UserFrom(r.Context())

	p, err := a.profile.UpdateProfile(r.Context(), user.UID, profiledom.UpdateRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, p)
}

// ---- wishlist ----

func (a *api) handleListWishlist(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	items, err := a.wishlist.List(r.Context(), user.UID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *api) handleAddWishlist(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	if err := a.wishlist.Add(r.Context(), user.UID, r.PathValue("productID")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleRemoveWishlist(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.UserFrom(r.Context())
	if err := a.wishlist.Remove(r.Context(), user.UID, r.PathValue("productID")); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- helpers ----

func (a *api) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.log.Error("response encode failed", slog.Any("err", err))
	}
}

func (a *api) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code, msg := httpStatusFromErr(err)
	if status >= http.StatusInternalServerError {
		a.log.Error("request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("err", err))
	}
	a.writeJSON(w, status, map[string]string{"code": code, "message": msg})
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		a.writeJSON(w, http.StatusBadRequest, map[string]string{
			"code":    "INVALID_ARGUMENT",
			"message": fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}
	return true
}
