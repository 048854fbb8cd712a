package adventure

import (
	"encoding/json"
	"strings"
)

// Decision is the parsed result of the progression classification call.
type Decision struct {
	ShouldProgress bool      `json:"shouldProgress"`
	TriggerID      TriggerID `json:"triggerId"`
}

// ParseDecision extracts a progression decision from raw model output.
// Generative models often preface structured answers with prose, so parsing
// starts at the first '{' and runs to end of input. The second return value
// is false when no parsable decision is present; callers treat that the
// same as a decision not to progress.
func ParseDecision(raw string) (Decision, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return Decision{}, false
	}

	var d Decision
	if err := json.Unmarshal([]byte(raw[start:]), &d); err != nil {
		return Decision{}, false
	}
	return d, true
}

// ResolveTrigger finds the destination for a decided trigger id. Ids are
// compared by canonical string after TriggerID normalization; first match
// wins. An empty id never resolves, so a decision that omitted triggerId
// cannot accidentally match an authored trigger with an empty id.
func ResolveTrigger(triggers []Trigger, id TriggerID) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, t := range triggers {
		if t.ID == id {
			return t.Destination, true
		}
	}
	return "", false
}
