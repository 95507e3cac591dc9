package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pratik-mahalle/hireloop/internal/api/middleware"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
	"github.com/pratik-mahalle/hireloop/internal/pkg/utils"
	"github.com/pratik-mahalle/hireloop/internal/pkg/validator"
)

// decodeAndValidate reads a JSON body into dst and runs struct validation.
// It writes the error response and returns false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *validator.Validator, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return false
	}
	if validationErrs := v.Validate(dst); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return false
	}
	return true
}

// requireUserID returns the authenticated tenant id or writes a 401
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("User not authenticated"))
	}
	return userID, ok
}
