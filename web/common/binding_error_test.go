package common

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type bindingProbe struct {
	Email  string `json:"email" binding:"required,email"`
	Hour   *int   `json:"hour" binding:"required,min=0,max=23"`
	Snooze string `json:"snoozeType" binding:"omitempty,oneof=SINGLE SNOOZE_6_MIN"`
}

func TestFormatBindingError(t *testing.T) {
	hour := 30
	err := binding.Validator.ValidateStruct(&bindingProbe{Email: "nope", Hour: &hour, Snooze: "LATER"})

	assert.Equal(t,
		"Feltet 'email' skal være en gyldig email, Feltet 'hour' må højst være 23, Feltet 'snoozeType' skal være en af: SINGLE SNOOZE_6_MIN",
		FormatBindingError(err))

	assert.Equal(t, "Feltet 'hour' er påkrævet", FormatBindingError(binding.Validator.ValidateStruct(&bindingProbe{Email: "a@b.dk"})))
	assert.Equal(t, "Forespørgslen er tom", FormatBindingError(io.EOF))

	var v map[string]any
	assert.Contains(t, FormatBindingError(json.Unmarshal([]byte("{"), &v)), "Ugyldig JSON")
	assert.Empty(t, FormatBindingError(nil))
}

func TestSearchResponseNeverNull(t *testing.T) {
	body, err := json.Marshal(NewSearchResponse[int](nil))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"pagination":{"total":0}}`, string(body))
}
