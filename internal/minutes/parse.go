package minutes

import (
	"encoding/json"
	"strings"

	"github.com/meetingctl/meetingctl/internal/errs"
)

// Decode parses a model response into Minutes. Models asked for "JSON only"
// still wrap the object in markdown code fences often enough that the
// fences are stripped before unmarshalling. A response that still does not
// parse is a malformed-output error; no schema validation happens beyond
// JSON well-formedness.
func Decode(raw string) (Minutes, error) {
	cleaned := stripFences(raw)

	var m Minutes
	if err := json.Unmarshal([]byte(cleaned), &m); err != nil {
		return Minutes{}, errs.Wrap(errs.KindMalformedOutput, "minutes.decode", err)
	}
	return m, nil
}

// stripFences removes ``` and ```json markers and surrounding whitespace.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
