package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/listing-service/internal/api/dto"
	"github.com/spec-kit/listing-service/internal/service"
	apperrors "github.com/spec-kit/listing-service/pkg/util"
)

// LocationsHandler serves the state and municipality directory.
type LocationsHandler struct {
	locations *service.LocationService
}

// NewLocationsHandler constructs handler.
func NewLocationsHandler(locations *service.LocationService) *LocationsHandler {
	return &LocationsHandler{locations: locations}
}

// ListStates handles GET /states.
func (h *LocationsHandler) ListStates(c *fiber.Ctx) error {
	states, err := h.locations.ListStates(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromStates(states)})
}

// ListMunicipalities handles GET /states/:stateId/municipalities.
func (h *LocationsHandler) ListMunicipalities(c *fiber.Ctx) error {
	stateID, err := strconv.Atoi(c.Params("stateId"))
	if err != nil || stateID <= 0 {
		return apperrors.NewValidationError("stateId must be a positive integer", nil)
	}

	municipalities, err := h.locations.ListMunicipalities(c.Context(), stateID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromMunicipalities(municipalities)})
}
