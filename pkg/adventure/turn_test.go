package adventure

import (
	"encoding/json"
	"testing"

	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTurnRequestDecodeDefaults(t *testing.T) {
	// A minimal payload decodes with every other field defaulted to an
	// empty, composable value.
	var req TurnRequest
	err := json.Unmarshal([]byte(`{"isIntroduction":true,"stepPrompt":"You enter a cave."}`), &req)
	require.NoError(t, err)

	assert.True(t, req.IsIntroduction)
	assert.Equal(t, "You enter a cave.", req.StepPrompt)
	assert.Empty(t, req.CharacterName)
	assert.Empty(t, req.Triggers)
	assert.Empty(t, req.StoryProgression)
	assert.Empty(t, req.ConversationHistory)
	assert.False(t, req.HasTriggers())
}

func TestTurnRequestSanitize(t *testing.T) {
	req := TurnRequest{
		CharacterName:     "  <b>Korga</b>\nthe Bold ",
		AdventureTitle:    "Cave <script>of</script> Echoes",
		StepPrompt:        "You enter a cave.\n\n\n\nIt is dark.",
		GameMasterPersona: "  gruff narrator  ",
		PlayerInput:       "I light\ta torch",
		StoryProgression: []ProgressionEntry{
			{Step: " step-1 ", Destination: "step-2", Context: "<i>fled</i> the wolves"},
		},
		Triggers: []Trigger{
			{ID: "1", Destination: " step-2 ", Condition: "opens the <em>door</em>"},
		},
		ConversationHistory: []chat.Message{
			{Role: "narrator", Content: "The cave looms."},
			{Role: "assistant", Content: "You stand at the entrance."},
		},
		TransitionContext: map[string]string{"arrived_by": "<a>boat</a>"},
	}

	req.Sanitize()

	assert.Equal(t, "Korga the Bold", req.CharacterName)
	assert.Equal(t, "Cave of Echoes", req.AdventureTitle)
	assert.Equal(t, "You enter a cave.\n\nIt is dark.", req.StepPrompt)
	assert.Equal(t, "gruff narrator", req.GameMasterPersona)
	assert.Equal(t, "I light a torch", req.PlayerInput)
	assert.Equal(t, "fled the wolves", req.StoryProgression[0].Context)
	assert.Equal(t, "step-2", req.Triggers[0].Destination)
	assert.Equal(t, "opens the door", req.Triggers[0].Condition)
	assert.Equal(t, chat.RoleUser, req.ConversationHistory[0].Role)
	assert.Equal(t, chat.RoleAssistant, req.ConversationHistory[1].Role)
	assert.Equal(t, "boat", req.TransitionContext["arrived_by"])
}

func TestTurnResultJSON(t *testing.T) {
	// nextStepId must serialize as an explicit null when the story stays
	// on the current step; the client switches on that field.
	data, err := json.Marshal(TurnResult{Narrative: "The cave looms."})
	require.NoError(t, err)
	assert.JSONEq(t, `{"narrative":"The cave looms.","nextStepId":null}`, string(data))

	dest := "step-2"
	data, err = json.Marshal(TurnResult{NextStepID: &dest})
	require.NoError(t, err)
	assert.JSONEq(t, `{"narrative":"","nextStepId":"step-2"}`, string(data))
}
