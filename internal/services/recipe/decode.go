package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/asad/kitchenstate/internal/core"
)

// DecodeDay parses a recipe day from JSON. The shape is checked first so
// that a non-list items field is reported as core.ErrInvalidInput instead
// of a generic decode failure.
func DecodeDay(body []byte) (Day, error) {
	if !gjson.ValidBytes(body) {
		return Day{}, fmt.Errorf("%w: body is not valid JSON", core.ErrInvalidInput)
	}
	if !gjson.GetBytes(body, "items").IsArray() {
		return Day{}, fmt.Errorf("%w: items must be a list", core.ErrInvalidInput)
	}

	var day Day
	if err := json.Unmarshal(body, &day); err != nil {
		return Day{}, fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}
	return day, nil
}
