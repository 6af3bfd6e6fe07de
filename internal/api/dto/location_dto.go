package dto

import "github.com/spec-kit/listing-service/internal/domain"

// StateResponse is one state directory entry.
type StateResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MunicipalityResponse is one municipality directory entry.
type MunicipalityResponse struct {
	ID      int    `json:"id"`
	StateID int    `json:"state_id"`
	Name    string `json:"name"`
}

// FromStates maps the directory rows to their response shapes.
func FromStates(states []domain.State) []StateResponse {
	out := make([]StateResponse, 0, len(states))
	for _, s := range states {
		out = append(out, StateResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

// FromMunicipalities maps the directory rows to their response shapes.
func FromMunicipalities(municipalities []domain.Municipality) []MunicipalityResponse {
	out := make([]MunicipalityResponse, 0, len(municipalities))
	for _, m := range municipalities {
		out = append(out, MunicipalityResponse{ID: m.ID, StateID: m.StateID, Name: m.Name})
	}
	return out
}
