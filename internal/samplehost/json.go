package samplehost

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSONGet reads path out of a JSON document, rendering the result as a
// string regardless of its JSON type — minilang scripts only see Str/Int/
// Float/Bool natively, so the CLI's json_get host function always returns
// the textual form and leaves any further parsing to the script.
func JSONGet(doc, path string) string {
	return gjson.Get(doc, path).String()
}

// JSONSet returns a copy of doc with path set to value, JSON-encoding value
// as a string scalar.
func JSONSet(doc, path, value string) (string, error) {
	out, err := sjson.Set(doc, path, value)
	if err != nil {
		return "", fmt.Errorf("json_set %q: %w", path, err)
	}
	return out, nil
}
