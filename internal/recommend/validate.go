package recommend

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidItem marks a catalog batch rejected by ValidateItems.
var ErrInvalidItem = errors.New("invalid item")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func itemValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateItems checks every item and rejects the whole batch on the first
// bad record, naming its position, id and failing fields.
func ValidateItems(items []Item) error {
	v := itemValidator()
	seen := make(map[string]int, len(items))
	for i, item := range items {
		if err := v.Struct(item); err != nil {
			return fmt.Errorf("%w: item %d (%q): %s", ErrInvalidItem, i, item.ID, describe(err))
		}
		if prev, ok := seen[item.ID]; ok {
			return fmt.Errorf("%w: item %d (%q): duplicate id, first seen at item %d", ErrInvalidItem, i, item.ID, prev)
		}
		seen[item.ID] = i
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
