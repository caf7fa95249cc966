package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/Gani-23/Oauth4.0/pkg/errs"
	"github.com/Gani-23/Oauth4.0/pkg/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the struct tags on a request payload. Field-level
// failures are returned so handlers can attach them to the error body.
func Validate(payload interface{}) ([]response.ValidationError, error) {
	err := validate.Struct(payload)
	if err == nil {
		return nil, nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		log.Error().Err(err).Str("component", "Validate").Msg("")
		return nil, errs.ErrInternalServer
	}

	details := make([]response.ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, response.ValidationError{
			Field: fieldErr.Field(),
			Tag:   fieldErr.Tag(),
		})
	}

	return details, errs.ErrValidation
}
