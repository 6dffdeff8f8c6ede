package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/foodshare/platform/internal/api/metrics"
	"github.com/foodshare/platform/internal/api/middleware"
	"github.com/foodshare/platform/internal/api/view"
	"github.com/foodshare/platform/internal/core/catalog"
	"github.com/foodshare/platform/internal/core/domain"
	"github.com/foodshare/platform/internal/core/guard"
	"github.com/foodshare/platform/internal/core/ports"
)

// FoodHandler serves the donor post and NGO browse/claim flows.
type FoodHandler struct {
	donations ports.DonationService
	catalog   *catalog.Catalog
	now       func() time.Time
}

func NewFoodHandler(donations ports.DonationService, cat *catalog.Catalog, now func() time.Time) *FoodHandler {
	if now == nil {
		now = time.Now
	}
	return &FoodHandler{donations: donations, catalog: cat, now: now}
}

func browseQuery(c echo.Context) catalog.Query {
	return catalog.Query{
		Search: c.QueryParam("q"),
		Filter: catalog.ParseFilter(c.QueryParam("filter")),
		Sort:   catalog.ParseSort(c.QueryParam("sort")),
	}
}

func (h *FoodHandler) Browse(c echo.Context) error {
	st := view.BrowseState{Query: browseQuery(c), Now: h.now()}
	listings := h.catalog.Browse(st.Query, st.Now)
	return renderHTML(c, http.StatusOK, view.BrowseFood(chrome(c, guard.PathBrowseFood), listings, st))
}

// Claim reserves a listing for the signed-in NGO.
func (h *FoodHandler) Claim(c echo.Context) error {
	s := middleware.MustSession(c)
	_, err := h.donations.Claim(c.Request().Context(), s.ID(), s.Get(), c.Param("id"))
	switch {
	case err == nil:
		metrics.ClaimsTotal.WithLabelValues("ok").Inc()
		return seeOther(c, withFlash(guard.PathBrowseFood, flashClaimed))
	case errors.Is(err, domain.ErrSubmissionInFlight):
		metrics.ClaimsTotal.WithLabelValues("in_flight").Inc()
		return seeOther(c, withFlash(guard.PathBrowseFood, userMessage(err)))
	case errors.Is(err, domain.ErrListingNotFound):
		metrics.ClaimsTotal.WithLabelValues("not_found").Inc()
		return err
	default:
		metrics.ClaimsTotal.WithLabelValues("error").Inc()
		return err
	}
}

func (h *FoodHandler) PostForm(c echo.Context) error {
	return renderHTML(c, http.StatusOK, view.PostFood(chrome(c, guard.PathPostFood), view.PostForm{}))
}

// Post validates the donation form, submits it and returns to the dashboard.
func (h *FoodHandler) Post(c echo.Context) error {
	var req postFoodRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	form := view.PostForm{
		FoodType:           req.FoodType,
		Category:           req.Category,
		Quantity:           req.Quantity,
		Unit:               req.Unit,
		Description:        req.Description,
		ExpiryDate:         req.ExpiryDate,
		ExpiryTime:         req.ExpiryTime,
		PickupAddress:      req.PickupAddress,
		PickupInstructions: req.PickupInstructions,
		ContactPhone:       req.ContactPhone,
		Dietary:            req.dietary(),
	}
	rerender := func(status int, msg string) error {
		form.Error = msg
		return renderHTML(c, status, view.PostFood(chrome(c, guard.PathPostFood), form))
	}

	if err := c.Validate(&req); err != nil {
		return rerender(http.StatusUnprocessableEntity, err.Error())
	}
	input, err := req.input()
	if err != nil {
		return rerender(http.StatusUnprocessableEntity, "expiry date and time are invalid")
	}

	s := middleware.MustSession(c)
	if _, err := h.donations.Post(c.Request().Context(), s.ID(), s.Get(), input); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			return err
		}
		return rerender(statusFor(err), userMessage(err))
	}
	metrics.DonationsPostedTotal.WithLabelValues(input.Category).Inc()
	return seeOther(c, withFlash(guard.PathDashboard, flashPosted))
}

type listingResponse struct {
	catalog.FoodListing
	TimeRemaining string          `json:"time_remaining"`
	Urgency       catalog.Urgency `json:"urgency"`
	DietaryTags   []string        `json:"dietary_tags"`
}

type listingsResponse struct {
	Items []listingResponse `json:"items"`
	Count int               `json:"count"`
}

// Listings returns the browse results as JSON.
//
// @Summary      Browse available food
// @Tags         listings
// @Produce      json
// @Security     BearerAuth
// @Param        q       query     string  false  "Search food type or donor"
// @Param        filter  query     string  false  "all, nearby, urgent or vegetarian"
// @Param        sort    query     string  false  "distance, time or quantity"
// @Success      200     {object}  listingsResponse
// @Failure      401     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Router       /listings [get]
func (h *FoodHandler) Listings(c echo.Context) error {
	now := h.now()
	listings := h.catalog.Browse(browseQuery(c), now)

	items := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		tags := l.Dietary.Tags()
		if tags == nil {
			tags = []string{}
		}
		items = append(items, listingResponse{
			FoodListing:   l,
			TimeRemaining: catalog.TimeRemaining(l.ExpiresAt, now),
			Urgency:       catalog.UrgencyOf(l.ExpiresAt, now),
			DietaryTags:   tags,
		})
	}
	return c.JSON(http.StatusOK, listingsResponse{Items: items, Count: len(items)})
}
