package controllers

import (
	"net/http"

	"github.com/victorrosario/videocatalog-backend/api/responses"
	"github.com/victorrosario/videocatalog-backend/api/validators"
	castmember "github.com/victorrosario/videocatalog-backend/internal/castmembers"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/types"
)

type castMemberCreateRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Type int    `json:"type" validate:"required,oneof=1 2"`
}

type castMemberUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Type *int    `json:"type,omitempty" validate:"omitempty,oneof=1 2"`
}

// CastMemberList returns one page of cast members.
func CastMemberList(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
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

// CastMemberGet returns one cast member by id.
func CastMemberGet(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
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

// CastMemberCreate inserts a new cast member.
func CastMemberCreate(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload castMemberCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), castmember.CreateCastMemberInput{
			Name: payload.Name,
			Type: payload.Type,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CastMemberUpdate mutates the provided fields of a cast member.
func CastMemberUpdate(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload castMemberUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Update(r.Context(), id, castmember.UpdateCastMemberInput{
			Name: payload.Name,
			Type: payload.Type,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CastMemberDelete soft deletes a cast member.
func CastMemberDelete(svc castmember.Service, logg *logger.Logger) http.HandlerFunc {
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
