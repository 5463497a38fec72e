package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// InvalidIDMessage answers a path id that is not a number.
const InvalidIDMessage = "Ugyldigt id"

func init() {
	// report json field names rather than Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// FormatBindingError turns a gin binding error into a Danish message for the
// staff app.
func FormatBindingError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, io.EOF) {
		return "Forespørgslen er tom"
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fmt.Sprintf("Ugyldig JSON ved position %d", syntaxErr.Offset)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("Feltet '%s' skal være af typen %s", typeErr.Field, typeErr.Type.String())
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]string, 0, len(ve))
		for _, fe := range ve {
			out = append(out, formatFieldError(fe))
		}
		return strings.Join(out, ", ")
	}

	// top level arrays fail per element
	var sliceErr binding.SliceValidationError
	if errors.As(err, &sliceErr) {
		out := make([]string, 0, len(sliceErr))
		for i, elemErr := range sliceErr {
			if elemErr != nil {
				out = append(out, fmt.Sprintf("[%d] %s", i, FormatBindingError(elemErr)))
			}
		}
		return strings.Join(out, ", ")
	}

	return err.Error()
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Feltet '%s' er påkrævet", fe.Field())
	case "email":
		return fmt.Sprintf("Feltet '%s' skal være en gyldig email", fe.Field())
	case "min":
		return fmt.Sprintf("Feltet '%s' skal være mindst %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("Feltet '%s' må højst være %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("Feltet '%s' skal være en af: %s", fe.Field(), fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("Feltet '%s' er ikke en gyldig koordinat", fe.Field())
	}
	return fmt.Sprintf("Feltet '%s' fejlede validering '%s'", fe.Field(), fe.Tag())
}
