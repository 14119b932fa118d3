package catalog

import (
	"encoding/json"
	"strings"
)

// flexValue decodes JSON fields that are sometimes a string and sometimes
// an array of strings, which archive.org does per-field per-item.
type flexValue []string

func (f *flexValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*f = flexValue{single}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*f = flexValue(many)
	return nil
}

func (f flexValue) Values() []string { return []string(f) }

func (f flexValue) Join(sep string) string { return strings.Join(f, sep) }
