package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/victorrosario/videocatalog-backend/api/responses"
	"github.com/victorrosario/videocatalog-backend/api/validators"
	gender "github.com/victorrosario/videocatalog-backend/internal/genders"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/types"
)

type genderCreateRequest struct {
	Name         string   `json:"name" validate:"required,max=255"`
	IsActive     *bool    `json:"is_active,omitempty"`
	CategoriesID []string `json:"categories_id" validate:"required,min=1,dive,uuid4"`
}

type genderUpdateRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	IsActive     *bool     `json:"is_active,omitempty"`
	CategoriesID *[]string `json:"categories_id,omitempty" validate:"omitempty,dive,uuid4"`
}

// GenderList returns one page of genders with their categories.
func GenderList(svc gender.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dtos, total, err := svc.List(r.Context(), params, validators.ParseWithTrashed(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		norm := params.Normalize()
		responses.WriteList(w, dtos, types.ListMeta{Total: total, PerPage: norm.PerPage, Page: norm.Page})
	}
}

// GenderGet returns one gender by id.
func GenderGet(svc gender.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Get(r.Context(), id, validators.ParseWithTrashed(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GenderCreate inserts a new gender with its category set.
func GenderCreate(svc gender.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload genderCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), gender.CreateGenderInput{
			Name:        payload.Name,
			IsActive:    payload.IsActive,
			CategoryIDs: parseUUIDs(payload.CategoriesID),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// GenderUpdate mutates the provided fields of a gender.
func GenderUpdate(svc gender.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload genderUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := gender.UpdateGenderInput{
			Name:     payload.Name,
			IsActive: payload.IsActive,
		}
		if payload.CategoriesID != nil {
			ids := parseUUIDs(*payload.CategoriesID)
			input.CategoryIDs = &ids
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// GenderDelete soft deletes a gender.
func GenderDelete(svc gender.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// parseUUIDs converts pre-validated uuid strings. Values that slipped past
// validation are dropped rather than panicking the request.
func parseUUIDs(values []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		if id, err := uuid.Parse(value); err == nil {
			out = append(out, id)
		}
	}
	return out
}
