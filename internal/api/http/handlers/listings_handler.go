package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/dto"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// ListingsHandler manages listing lifecycle endpoints.
type ListingsHandler struct {
	service *service.ListingService
}

// NewListingsHandler constructs handler.
func NewListingsHandler(listingService *service.ListingService) *ListingsHandler {
	return &ListingsHandler{service: listingService}
}

// CreateDraft POST /listings.
func (h *ListingsHandler) CreateDraft(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listing, err := h.service.CreateDraft(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"id":   listing.ID,
		"data": dto.FromListing(listing),
	})
}

// UpdateDraft PATCH /listings/:id.
func (h *ListingsHandler) UpdateDraft(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	listing, err := h.service.UpdateDraft(c.Context(), principal.User.ID, c.Params("id"), patchFromRequest(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromListing(listing)})
}

// SubmitForReview POST /listings/:id/submit.
func (h *ListingsHandler) SubmitForReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	listing, err := h.service.SubmitForReview(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromListing(listing)})
}

// Delete DELETE /listings/:id.
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "listing deleted successfully"})
}

// GetPublic GET /listings/:id. Counts the view on every successful fetch.
func (h *ListingsHandler) GetPublic(c *fiber.Ctx) error {
	listing, err := h.service.FetchPublic(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromListing(listing)})
}

// Search GET /listings. Public; only approved listings are returned.
func (h *ListingsHandler) Search(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 12)

	filter := service.SearchFilter{
		PropertyType:   queryIntPtr(c, "property_type"),
		OperationType:  queryIntPtr(c, "operation_type"),
		StateID:        queryIntPtr(c, "state_id"),
		MunicipalityID: queryIntPtr(c, "municipality_id"),
		MinPrice:       queryFloatPtr(c, "min_price"),
		MaxPrice:       queryFloatPtr(c, "max_price"),
		MinRooms:       queryIntPtr(c, "min_rooms"),
		MinStories:     queryIntPtr(c, "min_stories"),
		MinArea:        queryFloatPtr(c, "min_area"),
		MaxArea:        queryFloatPtr(c, "max_area"),
		Query:          queryStringPtr(c, "query"),
		SortBy:         c.Query("sort_by", "created_at"),
		SortAsc:        c.Query("sort_order") == "asc",
		Limit:          limit,
		Offset:         (page - 1) * limit,
	}

	listings, total, err := h.service.Search(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":       listingResponses(listings),
		"pagination": dto.NewPagination(total, page, limit),
	})
}

// ListByOwner GET /listings/user/:userId.
func (h *ListingsHandler) ListByOwner(c *fiber.Ctx) error {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 10)

	var status *domain.ListingStatus
	if raw := c.Query("status"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return apperrors.NewValidationError("invalid status value", nil)
		}
		value := domain.ListingStatus(parsed)
		status = &value
	}

	listings, total, err := h.service.ListByOwner(c.Context(), c.Params("userId"), status, limit, (page-1)*limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":       listingResponses(listings),
		"pagination": dto.NewPagination(total, page, limit),
	})
}

func listingResponses(listings []domain.Listing) []dto.ListingResponse {
	items := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		items = append(items, dto.FromListing(&listings[i]))
	}
	return items
}

func patchFromRequest(req dto.UpdateListingRequest) service.ListingPatch {
	return service.ListingPatch{
		Title:                    req.Title,
		PropertyType:             req.PropertyType,
		Address:                  req.Address,
		StateID:                  req.StateID,
		MunicipalityID:           req.MunicipalityID,
		Images:                   req.Images,
		Video:                    req.Video,
		OperationType:            req.OperationType,
		SellerPrice:              req.SellerPrice,
		IsNegotiable:             req.IsNegotiable,
		HighestBiddingPrice:      req.HighestBiddingPrice,
		PaymentType:              req.PaymentType,
		NeighborhoodDescription:  req.NeighborhoodDescription,
		DocumentsType:            req.DocumentsType,
		Rooms:                    req.Rooms,
		Stories:                  req.Stories,
		TotalArea:                req.TotalArea,
		Specifications:           req.Specifications,
		Notes:                    req.Notes,
		CommunicationPreferences: req.CommunicationPreferences,
	}
}

func parsePositiveInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func queryIntPtr(c *fiber.Ctx, key string) *int {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryFloatPtr(c *fiber.Ctx, key string) *float64 {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryStringPtr(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}
