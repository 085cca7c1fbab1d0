package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/victorrosario/videocatalog-backend/api/responses"
	"github.com/victorrosario/videocatalog-backend/api/validators"
	"github.com/victorrosario/videocatalog-backend/internal/uploads"
	video "github.com/victorrosario/videocatalog-backend/internal/videos"
	"github.com/victorrosario/videocatalog-backend/pkg/config"
	pkgerrors "github.com/victorrosario/videocatalog-backend/pkg/errors"
	"github.com/victorrosario/videocatalog-backend/pkg/logger"
	"github.com/victorrosario/videocatalog-backend/pkg/types"
)

const multipartMaxMemory = 32 << 20

type videoCreateRequest struct {
	Title        string   `json:"title" validate:"required,max=255"`
	Description  string   `json:"description" validate:"required"`
	YearLaunched int      `json:"year_launched" validate:"required"`
	Opened       *bool    `json:"opened,omitempty"`
	Rating       string   `json:"rating" validate:"required,oneof=L 10 12 14 16 18"`
	Duration     int      `json:"duration" validate:"required"`
	CategoriesID []string `json:"categories_id" validate:"required,min=1,dive,uuid4"`
	GendersID    []string `json:"genders_id" validate:"required,min=1,dive,uuid4"`
}

type videoUpdateRequest struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,min=1"`
	YearLaunched *int      `json:"year_launched,omitempty"`
	Opened       *bool     `json:"opened,omitempty"`
	Rating       *string   `json:"rating,omitempty" validate:"omitempty,oneof=L 10 12 14 16 18"`
	Duration     *int      `json:"duration,omitempty"`
	CategoriesID *[]string `json:"categories_id,omitempty" validate:"omitempty,dive,uuid4"`
	GendersID    *[]string `json:"genders_id,omitempty" validate:"omitempty,dive,uuid4"`
}

type videoFilePayloads struct {
	Video   *uploads.Payload
	Thumb   *uploads.Payload
	Banner  *uploads.Payload
	Trailer *uploads.Payload
}

// VideoFileRules builds the per-field size and format constraints from the
// configured media limits.
func VideoFileRules(media config.MediaConfig) []validators.FileRule {
	return []validators.FileRule{
		{Field: "video_file", MaxKB: media.VideoMaxKB, Extensions: []string{"mp4"}, MIMEs: []string{"video/mp4"}},
		{Field: "thumb_file", MaxKB: media.ThumbMaxKB, Extensions: []string{"jpg", "jpeg"}, MIMEs: []string{"image/jpeg"}},
		{Field: "banner_file", MaxKB: media.BannerMaxKB, Extensions: []string{"jpg", "jpeg"}, MIMEs: []string{"image/jpeg"}},
		{Field: "trailer_file", MaxKB: media.TrailerMaxKB, Extensions: []string{"mp4"}, MIMEs: []string{"video/mp4"}},
	}
}

// VideoList returns one page of videos with their relations.
func VideoList(svc video.Service, logg *logger.Logger) http.HandlerFunc {
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

// VideoGet returns one video by id.
func VideoGet(svc video.Service, logg *logger.Logger) http.HandlerFunc {
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

// VideoCreate inserts a new video. The request is either JSON (no files) or
// multipart/form-data carrying the files alongside the scalar fields.
func VideoCreate(svc video.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload videoCreateRequest
		var files videoFilePayloads

		if isMultipart(r) {
			if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
				return
			}
			parsed, err := videoCreateFromForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			payload = parsed
			if err := validators.ValidateStruct(&payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			files, err = videoFilesFromForm(r, media)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.Create(r.Context(), video.CreateVideoInput{
			Title:        payload.Title,
			Description:  payload.Description,
			YearLaunched: payload.YearLaunched,
			Opened:       payload.Opened,
			Rating:       payload.Rating,
			Duration:     payload.Duration,
			CategoryIDs:  parseUUIDs(payload.CategoriesID),
			GenderIDs:    parseUUIDs(payload.GendersID),
			VideoFile:    files.Video,
			ThumbFile:    files.Thumb,
			BannerFile:   files.Banner,
			TrailerFile:  files.Trailer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// VideoUpdate mutates the provided fields of a video, replacing any files
// present in the multipart body.
func VideoUpdate(svc video.Service, media config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload videoUpdateRequest
		var files videoFilePayloads

		if isMultipart(r) {
			if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
				return
			}
			parsed, err := videoUpdateFromForm(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			payload = parsed
			if err := validators.ValidateStruct(&payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			files, err = videoFilesFromForm(r, media)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		} else if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := video.UpdateVideoInput{
			Title:        payload.Title,
			Description:  payload.Description,
			YearLaunched: payload.YearLaunched,
			Opened:       payload.Opened,
			Rating:       payload.Rating,
			Duration:     payload.Duration,
			VideoFile:    files.Video,
			ThumbFile:    files.Thumb,
			BannerFile:   files.Banner,
			TrailerFile:  files.Trailer,
		}
		if payload.CategoriesID != nil {
			ids := parseUUIDs(*payload.CategoriesID)
			input.CategoryIDs = &ids
		}
		if payload.GendersID != nil {
			ids := parseUUIDs(*payload.GendersID)
			input.GenderIDs = &ids
		}

		dto, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// VideoDelete soft deletes a video.
func VideoDelete(svc video.Service, logg *logger.Logger) http.HandlerFunc {
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

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/")
}

func videoCreateFromForm(r *http.Request) (videoCreateRequest, error) {
	req := videoCreateRequest{
		Title:        r.PostFormValue("title"),
		Description:  r.PostFormValue("description"),
		Rating:       r.PostFormValue("rating"),
		CategoriesID: formValues(r, "categories_id"),
		GendersID:    formValues(r, "genders_id"),
	}

	year, err := formInt(r, "year_launched")
	if err != nil {
		return req, err
	}
	req.YearLaunched = year

	duration, err := formInt(r, "duration")
	if err != nil {
		return req, err
	}
	req.Duration = duration

	opened, err := formBool(r, "opened")
	if err != nil {
		return req, err
	}
	req.Opened = opened

	return req, nil
}

func videoUpdateFromForm(r *http.Request) (videoUpdateRequest, error) {
	var req videoUpdateRequest

	if v, ok := formValue(r, "title"); ok {
		req.Title = &v
	}
	if v, ok := formValue(r, "description"); ok {
		req.Description = &v
	}
	if v, ok := formValue(r, "rating"); ok {
		req.Rating = &v
	}
	if _, ok := formValue(r, "year_launched"); ok {
		year, err := formInt(r, "year_launched")
		if err != nil {
			return req, err
		}
		req.YearLaunched = &year
	}
	if _, ok := formValue(r, "duration"); ok {
		duration, err := formInt(r, "duration")
		if err != nil {
			return req, err
		}
		req.Duration = &duration
	}
	if _, ok := formValue(r, "opened"); ok {
		opened, err := formBool(r, "opened")
		if err != nil {
			return req, err
		}
		req.Opened = opened
	}
	if values, ok := formList(r, "categories_id"); ok {
		req.CategoriesID = &values
	}
	if values, ok := formList(r, "genders_id"); ok {
		req.GendersID = &values
	}

	return req, nil
}

func videoFilesFromForm(r *http.Request, media config.MediaConfig) (videoFilePayloads, error) {
	var files videoFilePayloads
	for _, rule := range VideoFileRules(media) {
		payload, err := validators.FormFilePayload(r, rule)
		if err != nil {
			return files, err
		}
		switch rule.Field {
		case "video_file":
			files.Video = payload
		case "thumb_file":
			files.Thumb = payload
		case "banner_file":
			files.Banner = payload
		case "trailer_file":
			files.Trailer = payload
		}
	}
	return files, nil
}

// formValues accepts both "key" and the bracketed "key[]" convention.
func formValues(r *http.Request, key string) []string {
	if values := r.PostForm[key]; len(values) > 0 {
		return values
	}
	return r.PostForm[key+"[]"]
}

func formValue(r *http.Request, key string) (string, bool) {
	values, ok := r.PostForm[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func formList(r *http.Request, key string) ([]string, bool) {
	if values, ok := r.PostForm[key]; ok {
		return values, true
	}
	if values, ok := r.PostForm[key+"[]"]; ok {
		return values, true
	}
	return nil, false
}

func formInt(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "form field must be numeric").
			WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

func formBool(r *http.Request, key string) (*bool, error) {
	raw := strings.TrimSpace(r.PostFormValue(key))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form field must be a boolean").
			WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}
