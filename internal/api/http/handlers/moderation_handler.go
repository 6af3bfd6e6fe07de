package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/dto"
	"github.com/spec-kit/listing-service/internal/auth"
	"github.com/spec-kit/listing-service/internal/domain"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// ModerationHandler exposes the moderator review endpoints.
type ModerationHandler struct {
	service *service.ModerationService
}

// NewModerationHandler constructs handler.
func NewModerationHandler(moderationService *service.ModerationService) *ModerationHandler {
	return &ModerationHandler{service: moderationService}
}

// ListPending GET /moderation/pending.
func (h *ModerationHandler) ListPending(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), 10)

	pending, total, err := h.service.ListPending(c.Context(), principal.User, limit, (page-1)*limit)
	if err != nil {
		return err
	}
	items := make([]dto.PendingListingResponse, 0, len(pending))
	for i := range pending {
		items = append(items, dto.FromPendingListing(&pending[i]))
	}
	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": dto.NewPagination(total, page, limit),
	})
}

// CreateReview POST /moderation/reviews.
func (h *ModerationHandler) CreateReview(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Decision == nil {
		return apperrors.NewValidationError("decision is required", nil)
	}

	review, err := h.service.RecordReview(c.Context(), principal.User, service.ReviewInput{
		ListingID: req.ListingID,
		Decision:  domain.ReviewDecision(*req.Decision),
		Reason:    req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromReview(review)})
}

// ListReviews GET /moderation/listings/:id/reviews.
func (h *ModerationHandler) ListReviews(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	reviews, err := h.service.ListReviews(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.FromReview(&reviews[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
