package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"catadopt/internal/pkg/validate"
)

var (
	expected = []string{"name", "short_description", "long_description", "age", "is_vaccinated", "img"}
	required = []string{"name", "short_description"}
)

func fullBody() map[string]interface{} {
	return map[string]interface{}{
		"name":              "Rex",
		"short_description": "A friendly cat",
		"long_description":  nil,
		"age":               "2 months",
		"is_vaccinated":     false,
		"img":               nil,
	}
}

func TestBody_Valid(t *testing.T) {
	assert.NoError(t, validate.Body(fullBody(), expected, required))
}

func TestBody_Empty(t *testing.T) {
	err := validate.Body(map[string]interface{}{}, expected, required)
	assert.EqualError(t, err, "No data provided")
}

func TestBody_MissingFields(t *testing.T) {
	body := fullBody()
	delete(body, "age")
	delete(body, "img")

	err := validate.Body(body, expected, required)
	// As chaves ausentes aparecem na ordem declarada do schema
	assert.EqualError(t, err, "Missing expected fields: age, img")
}

func TestBody_ExtraField(t *testing.T) {
	body := fullBody()
	body["color"] = "black"

	err := validate.Body(body, expected, required)
	assert.EqualError(t, err, "More fields than expected")
}

func TestBody_RequiredEmpty(t *testing.T) {
	body := fullBody()
	body["name"] = "   "

	err := validate.Body(body, expected, required)
	assert.EqualError(t, err, "Field name must not be empty")
}

func TestBody_RequiredNull(t *testing.T) {
	body := fullBody()
	body["short_description"] = nil

	err := validate.Body(body, expected, required)
	assert.EqualError(t, err, "Field short_description must not be empty")
}

// TestBody_DoesNotMutate garante que o validador é puro: o mapa devolvido ao
// chamador permanece sem trim.
func TestBody_DoesNotMutate(t *testing.T) {
	body := fullBody()
	body["name"] = "  Rex  "

	assert.NoError(t, validate.Body(body, expected, required))
	assert.Equal(t, "  Rex  ", body["name"])
}
