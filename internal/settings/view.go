package settings

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/fatih/structs"
	"tideland.dev/go/slices"

	"github.com/pa11y/sidekick/internal/utils"
	"github.com/pa11y/sidekick/storage/model"
)

// View holds all settings that can be changed by admins
type View struct {
	PublicReadAccess *bool `json:"publicReadAccess"`
}

var knownSettings = utils.FieldTagNames(structs.New(View{}).Fields(), "json")

// View returns the current values of all settings
func (c *Cache) View() (*View, error) {
	read, err := c.PublicReadAccess()
	if err != nil {
		return nil, err
	}
	return &View{PublicReadAccess: &read}, nil
}

// Apply stores the set values of v
func (c *Cache) Apply(v View) error {
	if v.PublicReadAccess != nil {
		if err := c.Set(model.SettingPublicReadAccess, *v.PublicReadAccess); err != nil {
			return err
		}
	}
	return nil
}

// ParseView parses a JSON settings document. Unknown settings and values of
// the wrong type give a model.ValidationError.
func ParseView(body []byte) (View, error) {
	var v View
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return v, model.ValidationError("invalid body")
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	if unknown := slices.Subtract(keys, knownSettings); len(unknown) > 0 {
		sort.Strings(unknown)
		return v, model.ValidationErrorFmt("unknown settings: %s", strings.Join(unknown, ", "))
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, model.ValidationError("invalid body")
	}
	return v, nil
}
