package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kakairsyad/Interior-market/internal/cart"
	d "github.com/kakairsyad/Interior-market/internal/domain"
	"github.com/kakairsyad/Interior-market/internal/session"
)

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items      []d.LineItem    `json:"items"`
	IsOpen     bool            `json:"isOpen"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func newCartResponse(state d.CartState) CartResponse {
	items := state.Items
	if items == nil {
		items = []d.LineItem{}
	}
	return CartResponse{
		Items:      items,
		IsOpen:     state.IsOpen,
		TotalItems: state.TotalItems(),
		TotalPrice: state.Subtotal(),
	}
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newCartResponse(sess.Cart.Snapshot()))
}

func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if !decodeJSON(w, r, s.opts.MaxRequestBodySize, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := s.catalog.GetProductByID(r.Context(), req.ProductID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	s.mutateCart(w, r, http.StatusCreated, func(c *cart.Store) {
		c.AddToCart(product, req.Quantity)
	})
}

func (s *Server) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if !decodeJSON(w, r, s.opts.MaxRequestBodySize, &req) {
		return
	}
	productID := chi.URLParam(r, "product_id")

	s.mutateCart(w, r, http.StatusOK, func(c *cart.Store) {
		c.UpdateQuantity(productID, req.Quantity)
	})
}

func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	s.mutateCart(w, r, http.StatusOK, func(c *cart.Store) {
		c.RemoveFromCart(productID)
	})
}

func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	s.mutateCart(w, r, http.StatusOK, func(c *cart.Store) {
		c.ClearCart()
	})
}

func (s *Server) ToggleCart(w http.ResponseWriter, r *http.Request) {
	s.changeVisibility(w, r, func(sess *session.Session) { sess.Cart.ToggleCart() })
}

func (s *Server) OpenCart(w http.ResponseWriter, r *http.Request) {
	s.changeVisibility(w, r, func(sess *session.Session) { sess.Cart.OpenCart() })
}

func (s *Server) CloseCart(w http.ResponseWriter, r *http.Request) {
	s.changeVisibility(w, r, func(sess *session.Session) { sess.Cart.CloseCart() })
}

// mutateCart applies fn unless a checkout submission is in flight.
func (s *Server) mutateCart(w http.ResponseWriter, r *http.Request, status int, fn func(*cart.Store)) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	if err := sess.MutateCart(fn); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, status, newCartResponse(sess.Cart.Snapshot()))
}

// changeVisibility is allowed at any time; it never touches line items.
func (s *Server) changeVisibility(w http.ResponseWriter, r *http.Request, fn func(*session.Session)) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	fn(sess)
	respondJSON(w, http.StatusOK, newCartResponse(sess.Cart.Snapshot()))
}
