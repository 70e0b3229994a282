package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/juicebox-api/internal/api/shared"
	"github.com/phrazzld/juicebox-api/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// getPathString extracts a non-blank, unescaped string path parameter.
func getPathString(r *http.Request, paramName string) (string, error) {
	value, err := url.PathUnescape(chi.URLParam(r, paramName))
	if err != nil {
		return "", domain.NewValidationError(paramName, "has invalid format", domain.ErrValidation)
	}
	if strings.TrimSpace(value) == "" {
		return "", domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}
	return value, nil
}

// requesterFromRequest returns the authenticated requester, or nil for an
// anonymous request.
func requesterFromRequest(r *http.Request) *domain.Requester {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	return &domain.Requester{ID: userID}
}

// decodeAndValidate decodes the JSON body into v and runs struct validation.
// It writes the error response itself and reports whether the caller may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleAPIError(w, r, err, "")
		return false
	}
	return true
}
