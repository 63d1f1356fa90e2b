package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// maxRequestBodyBytes caps request payloads. Content bodies are short notes,
// not documents; anything larger is a client error.
const maxRequestBodyBytes = 1 << 20

// validate is the shared validator instance; validator.New is expensive.
var validate = validator.New()

// ErrBodyTooLarge indicates the request body exceeded maxRequestBodyBytes.
var ErrBodyTooLarge = errors.New("request body too large")

// DecodeJSON decodes the request body into v. The body is size-limited and
// must contain exactly one JSON value.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return err
	}
	// A second value after the first means a malformed payload.
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// ValidateRequest validates v. Types that carry their own domain rules can
// implement Validate() error; everything else goes through struct tags.
func ValidateRequest(v interface{}) error {
	if dv, ok := v.(interface{ Validate() error }); ok {
		return dv.Validate()
	}
	return validate.Struct(v)
}
