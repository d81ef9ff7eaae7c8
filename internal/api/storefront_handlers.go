package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront-service/internal/catalog"
	"storefront-service/internal/domain"
	"storefront-service/internal/store"
)

// ListProducts returns the visible product list: the full catalog run
// through the filter criteria and sort option from the query string.
func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	criteria := domain.FilterCriteria{
		Categories: qParams["category"],
		PriceMin:   0,
		PriceMax:   math.MaxFloat64,
	}

	if priceStr := qParams.Get("min_price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid min_price format")
			return
		}
		criteria.PriceMin = price
	}
	if priceStr := qParams.Get("max_price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid max_price format")
			return
		}
		criteria.PriceMax = price
	}
	if criteria.PriceMin > criteria.PriceMax {
		respondWithError(w, http.StatusBadRequest, "min_price cannot exceed max_price")
		return
	}
	if ratingStr := qParams.Get("min_rating"); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil || rating < 0 || rating > 5 {
			respondWithError(w, http.StatusBadRequest, "Invalid min_rating value: must be between 0 and 5")
			return
		}
		criteria.MinRating = &rating
	}

	sortOpt := domain.SortRelevance
	if sortStr := qParams.Get("sort"); sortStr != "" {
		sortOpt = domain.SortOption(sortStr)
		if !sortOpt.Valid() {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf(
				"Invalid sort value. Allowed: %s, %s, %s, %s",
				domain.SortRelevance, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortRatingDesc))
			return
		}
	}

	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: ListProducts store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	visible := catalog.VisibleProducts(products, criteria, sortOpt)

	response := struct {
		Data  []domain.Product `json:"data"`
		Count int              `json:"count"`
	}{
		Data:  visible,
		Count: len(visible),
	}
	respondWithJSON(w, http.StatusOK, response)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.products.GetProductByID(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, store.ErrProductNotFound.Error())
		} else {
			h.logger.Printf("ERROR: GetProductByID store operation for ID %d failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, product)
}

// ListAvailableCategories returns the distinct category names across the
// current catalog (not the filtered subset), sorted alphabetically. This is
// the data behind the filter sidebar.
func (h *HTTPHandler) ListAvailableCategories(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: ListAvailableCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	response := struct {
		Data []string `json:"data"`
	}{Data: catalog.AvailableCategories(products)}
	respondWithJSON(w, http.StatusOK, response)
}

// ListCategories returns the managed category entries (the mega-menu data).
func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.ListCategories(r.Context())
	if err != nil {
		h.logger.Printf("ERROR: ListCategories store operation failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	response := struct {
		Data []domain.Category `json:"data"`
	}{Data: categories}
	respondWithJSON(w, http.StatusOK, response)
}
