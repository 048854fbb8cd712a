package adventure

import (
	"encoding/json"

	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
	"github.com/Extra-Chill/extrachill-blocks/pkg/sanitize"
)

// TriggerID is an authored trigger identifier. Block editors save trigger
// ids as either JSON strings or numbers depending on how the block was
// authored, so the id is normalized to its canonical string form at the
// JSON boundary and compared as a string everywhere else.
type TriggerID string

// UnmarshalJSON accepts a JSON string, number, or null. Anything else
// normalizes to the empty id rather than failing the request.
func (id *TriggerID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = TriggerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = TriggerID(n.String())
		return nil
	}

	*id = ""
	return nil
}

func (id TriggerID) String() string {
	return string(id)
}

// Trigger is an authored candidate rule mapping player intent to a
// destination step. The client supplies the full candidate set for the
// current step on every turn; the server holds no step graph.
type Trigger struct {
	ID          TriggerID `json:"id"`
	Destination string    `json:"destination"`
	Condition   string    `json:"condition"`
}

// ProgressionEntry is one completed transition record. Entry order is
// meaningful: the history formatter renders entries chronologically to
// preserve narrative continuity.
type ProgressionEntry struct {
	Step        string `json:"step"`
	Destination string `json:"destination"`
	Context     string `json:"context"`
}

// TurnRequest is the full client-supplied state for one adventure turn.
// All story and session state round-trips through this payload; nothing
// persists server-side between turns.
type TurnRequest struct {
	IsIntroduction      bool               `json:"isIntroduction"`
	CharacterName       string             `json:"characterName"`
	AdventureTitle      string             `json:"adventureTitle"`
	AdventurePrompt     string             `json:"adventurePrompt"`
	PathPrompt          string             `json:"pathPrompt"`
	StepPrompt          string             `json:"stepPrompt"`
	GameMasterPersona   string             `json:"gameMasterPersona"`
	StoryProgression    []ProgressionEntry `json:"storyProgression"`
	PlayerInput         string             `json:"playerInput"`
	Triggers            []Trigger          `json:"triggers"`
	ConversationHistory []chat.Message     `json:"conversationHistory"`
	TransitionContext   map[string]string  `json:"transitionContext"`
}

// Sanitize cleans every free-text field in place. Single-line fields lose
// markup and embedded newlines; long-form prompt fields keep paragraph
// structure. History roles are normalized so a malformed entry can never
// produce an invalid message sequence. Missing fields are already empty
// after JSON decoding, so a sanitized request is always safe to compose
// prompts from.
func (r *TurnRequest) Sanitize() {
	r.CharacterName = sanitize.Field(r.CharacterName)
	r.AdventureTitle = sanitize.Field(r.AdventureTitle)
	r.AdventurePrompt = sanitize.Multiline(r.AdventurePrompt)
	r.PathPrompt = sanitize.Multiline(r.PathPrompt)
	r.StepPrompt = sanitize.Multiline(r.StepPrompt)
	r.GameMasterPersona = sanitize.Multiline(r.GameMasterPersona)
	r.PlayerInput = sanitize.Field(r.PlayerInput)

	for i := range r.StoryProgression {
		r.StoryProgression[i].Step = sanitize.Field(r.StoryProgression[i].Step)
		r.StoryProgression[i].Destination = sanitize.Field(r.StoryProgression[i].Destination)
		r.StoryProgression[i].Context = sanitize.Field(r.StoryProgression[i].Context)
	}

	for i := range r.Triggers {
		r.Triggers[i].Destination = sanitize.Field(r.Triggers[i].Destination)
		r.Triggers[i].Condition = sanitize.Field(r.Triggers[i].Condition)
	}

	for i := range r.ConversationHistory {
		r.ConversationHistory[i].Role = chat.NormalizeRole(r.ConversationHistory[i].Role)
		r.ConversationHistory[i].Content = sanitize.Multiline(r.ConversationHistory[i].Content)
	}

	for k, v := range r.TransitionContext {
		r.TransitionContext[k] = sanitize.Field(v)
	}
}

// HasTriggers reports whether the current step declares any progression
// candidates.
func (r *TurnRequest) HasTriggers() bool {
	return len(r.Triggers) > 0
}

// TurnResult is the response contract for one turn. NextStepID is nil when
// the story stays on the current step. When progression resolves, Narrative
// is deliberately empty: the client immediately requests the new step's
// introduction, and narrative here would duplicate that content.
type TurnResult struct {
	Narrative  string  `json:"narrative"`
	NextStepID *string `json:"nextStepId"`
}
