package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/skillswap/internal/api"
	"github.com/dmitrijs2005/skillswap/internal/common"
	"github.com/dmitrijs2005/skillswap/internal/swap"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, api.Error{Detail: detail})
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	var verr validator.ValidationErrors
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorInvalidArgument),
		errors.Is(err, swap.ErrInvalidDecision),
		errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, swap.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, swap.ErrInvalidStateTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeDetail(w, status, common.ErrorInternal.Error())
		return
	}

	detail := err.Error()
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		detail = describe(verr)
	}
	writeDetail(w, status, detail)
}

func describe(verr validator.ValidationErrors) string {
	parts := make([]string, 0, len(verr))
	for _, fe := range verr {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "Invalid request: " + strings.Join(parts, "; ")
}

// decode reads a JSON body into dst and validates it.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.WithDetail(common.ErrorInvalidArgument, "Invalid request body")
	}
	return validate.Struct(dst)
}

func requiredQuery(r *http.Request, name string) (string, error) {
	v := strings.TrimSpace(r.URL.Query().Get(name))
	if v == "" {
		return "", common.WithDetail(common.ErrorInvalidArgument, name+" is required")
	}
	return v, nil
}
