package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kakairsyad/Interior-market/internal/catalog"
	d "github.com/kakairsyad/Interior-market/internal/domain"
)

type ProductsResponse struct {
	Products []d.Product `json:"products"`
	Count    int         `json:"count"`
}

type CategoriesResponse struct {
	Categories []d.Category `json:"categories"`
}

// ListProducts serves the listing page: search, category and subcategory
// filters plus sort order, all from the query string.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		products []d.Product
		err      error
	)
	if featured, _ := strconv.ParseBool(q.Get("featured")); featured {
		products, err = s.catalog.GetFeaturedProducts(r.Context())
	} else {
		products, err = s.catalog.ListProducts(r.Context())
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	products = catalog.Filter(products, catalog.Query{
		Search:      q.Get("search"),
		Category:    q.Get("category"),
		Subcategory: q.Get("subcategory"),
		Sort:        catalog.ParseSortOrder(q.Get("sort")),
	})
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (s *Server) RelatedProducts(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	related, err := catalog.Related(r.Context(), s.catalog, p, catalog.RelatedLimit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: related, Count: len(related)})
}

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (s *Server) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	category, err := catalog.FindCategory(r.Context(), s.catalog, chi.URLParam(r, "name"))
	if err != nil {
		handleError(w, r, err)
		return
	}

	products, err := s.catalog.GetProductsByCategory(r.Context(), category.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if sub := r.URL.Query().Get("subcategory"); sub != "" {
		kept := products[:0]
		for _, p := range products {
			if strings.EqualFold(p.Subcategory, sub) {
				kept = append(kept, p)
			}
		}
		products = kept
	}
	respondJSON(w, http.StatusOK, ProductsResponse{Products: products, Count: len(products)})
}
