package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/prepflow/backend/internal/domain/category"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("category", validateCategory)
	return v
}

// validateCategory accepts LLD, HLD and DSA in any case.
func validateCategory(fl validator.FieldLevel) bool {
	_, err := category.Parse(fl.Field().String())
	return err == nil
}

// validationMessage flattens validator errors into "field: rule" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		parts[i] = fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag())
	}
	return strings.Join(parts, ", ")
}

// decodeAndValidate decodes the body into v and runs its validate tags.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if !decodeJSON(w, r, v) {
		return false
	}
	if err := validate.Struct(v); err != nil {
		respondError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}
