package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Extra-Chill/extrachill-blocks/pkg/adventure"
	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
)

// FormatProgression renders the ordered transition log into a text block
// for inclusion in prompts. Entry order is preserved; missing fields render
// as empty strings. An empty history yields the neutral section rather than
// nothing, so downstream composers never special-case the first step.
func FormatProgression(entries []adventure.ProgressionEntry) string {
	if len(entries) == 0 {
		return NeutralHistorySection
	}

	var sb strings.Builder
	sb.WriteString("The story so far, in order:\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. Moved from %q to %q", i+1, e.Step, e.Destination)
		if e.Context != "" {
			sb.WriteString(" - " + e.Context)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// ComposeIntroduction builds the message sequence requesting a step's
// opening narrative. No player input is referenced; the introduction
// precedes the player's first action in the step.
func ComposeIntroduction(req *adventure.TurnRequest) []chat.Message {
	system := gameMasterContext(req)
	if section := transitionSection(req.TransitionContext); section != "" {
		system += "\n\n" + section
	}

	return []chat.Message{
		chat.System(system),
		chat.User(IntroductionInstruction),
	}
}

// ComposeConversation builds the message sequence for a regular turn: the
// game-master context plus formatted history, a window of prior exchanges,
// and the player's latest input.
func ComposeConversation(req *adventure.TurnRequest, historyText string) []chat.Message {
	system := gameMasterContext(req) + "\n\n### Story so far\n" + historyText

	messages := make([]chat.Message, 0, conversationWindow+2)
	messages = append(messages, chat.System(system))

	history := req.ConversationHistory
	if len(history) > conversationWindow {
		history = history[len(history)-conversationWindow:]
	}
	for _, m := range history {
		messages = append(messages, chat.Message{
			Role:    chat.NormalizeRole(m.Role),
			Content: m.Content,
		})
	}

	input := req.PlayerInput
	if input == "" {
		input = "(The player says nothing.)"
	}
	messages = append(messages, chat.User(input))

	return messages
}

// ComposeProgressionCheck builds the classification message sequence: the
// step context, the formatted history, the enumerated trigger candidates,
// and a strict JSON-only instruction.
func ComposeProgressionCheck(req *adventure.TurnRequest, historyText string) []chat.Message {
	var sb strings.Builder
	sb.WriteString(ProgressionSystemPrompt)
	sb.WriteString("\n\n### Current step\n")
	sb.WriteString(req.StepPrompt)
	sb.WriteString("\n\n### Story so far\n")
	sb.WriteString(historyText)
	sb.WriteString("\n\n### Progression triggers\n")
	for _, t := range req.Triggers {
		fmt.Fprintf(&sb, "- id %q: when %s (advances to %q)\n", t.ID.String(), t.Condition, t.Destination)
	}

	var user strings.Builder
	if tail := conversationTail(req.ConversationHistory); tail != "" {
		user.WriteString("Recent exchanges:\n")
		user.WriteString(tail)
		user.WriteString("\n\n")
	}
	fmt.Fprintf(&user, "Player's latest action: %s", req.PlayerInput)

	return []chat.Message{
		chat.System(strings.TrimRight(sb.String(), "\n")),
		chat.User(user.String()),
	}
}

// gameMasterContext fills the shared system preamble from the request.
// Every field may be empty; the template still yields a usable prompt.
func gameMasterContext(req *adventure.TurnRequest) string {
	character := req.CharacterName
	if character == "" {
		character = defaultCharacterReference
	}
	return fmt.Sprintf(GameMasterSystemPrompt,
		req.AdventureTitle,
		req.GameMasterPersona,
		req.AdventurePrompt,
		req.PathPrompt,
		req.StepPrompt,
		character,
	)
}

// transitionSection renders the free-form arrival context, sorted by key
// for stable output. Empty maps render nothing.
func transitionSection(ctx map[string]string) string {
	if len(ctx) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("### How the player arrived here\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s: %s\n", k, ctx[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}

// conversationTail renders the last few exchanges as plain text for the
// classification call.
func conversationTail(history []chat.Message) string {
	if len(history) == 0 {
		return ""
	}
	if len(history) > progressionContextWindow {
		history = history[len(history)-progressionContextWindow:]
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, fmt.Sprintf("%s: %s", chat.NormalizeRole(m.Role), m.Content))
	}
	return strings.Join(lines, "\n")
}
