package turn

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Extra-Chill/extrachill-blocks/internal/services"
	"github.com/Extra-Chill/extrachill-blocks/pkg/adventure"
	"github.com/Extra-Chill/extrachill-blocks/pkg/prompts"
)

const (
	narrativeTimeout   = 30 * time.Second
	progressionTimeout = 20 * time.Second
)

// Processor handles the core adventure turn logic. Each turn is classified
// into one of three states from the request alone: an introduction turn, a
// conversation turn without triggers, or a conversation turn with triggers.
// The narrative call is load-bearing and fails the request; the progression
// classification call is advisory and any failure inside it is absorbed as
// "no progression".
type Processor struct {
	llmService services.LLMService
	logger     *slog.Logger
}

// NewProcessor creates a new turn processor
func NewProcessor(llmService services.LLMService, logger *slog.Logger) *Processor {
	return &Processor{
		llmService: llmService,
		logger:     logger,
	}
}

// ProcessTurn runs one full adventure turn. The request is sanitized before
// any prompt is composed.
func (p *Processor) ProcessTurn(ctx context.Context, req *adventure.TurnRequest) (*adventure.TurnResult, error) {
	req.Sanitize()

	if req.IsIntroduction {
		return p.processIntroduction(ctx, req)
	}
	return p.processConversation(ctx, req)
}

// processIntroduction generates the opening narrative for a step. No
// progression check runs on an introduction turn; the player has not acted
// yet.
func (p *Processor) processIntroduction(ctx context.Context, req *adventure.TurnRequest) (*adventure.TurnResult, error) {
	messages := prompts.ComposeIntroduction(req)

	chatCtx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	p.logger.Debug("Requesting step introduction", "adventure", req.AdventureTitle)
	response, err := p.llmService.Chat(chatCtx, messages)
	if err != nil {
		return nil, fmt.Errorf("introduction generation failed: %w", err)
	}

	return &adventure.TurnResult{
		Narrative: response.Message,
	}, nil
}

// processConversation generates the narrative reply to the player's input,
// then runs the progression check when the step declares triggers. When a
// trigger resolves, the narrative is discarded: the client immediately
// fetches the destination step's introduction, and returning both would
// duplicate content.
func (p *Processor) processConversation(ctx context.Context, req *adventure.TurnRequest) (*adventure.TurnResult, error) {
	historyText := prompts.FormatProgression(req.StoryProgression)
	messages := prompts.ComposeConversation(req, historyText)

	chatCtx, cancel := context.WithTimeout(ctx, narrativeTimeout)
	defer cancel()

	p.logger.Debug("Requesting conversation narrative",
		"adventure", req.AdventureTitle,
		"triggers", len(req.Triggers))
	response, err := p.llmService.Chat(chatCtx, messages)
	if err != nil {
		return nil, fmt.Errorf("narrative generation failed: %w", err)
	}

	if req.HasTriggers() {
		if destination, ok := p.checkProgression(ctx, req, historyText); ok {
			return &adventure.TurnResult{
				Narrative:  "",
				NextStepID: &destination,
			}, nil
		}
	}

	return &adventure.TurnResult{
		Narrative: response.Message,
	}, nil
}

// checkProgression runs the classification call and resolves the decided
// trigger. Every failure path returns ok=false and logs at Warn with a
// stable reason attribute; a broken classifier degrades the experience but
// never breaks the turn.
func (p *Processor) checkProgression(ctx context.Context, req *adventure.TurnRequest, historyText string) (string, bool) {
	messages := prompts.ComposeProgressionCheck(req, historyText)

	checkCtx, cancel := context.WithTimeout(ctx, progressionTimeout)
	defer cancel()

	response, err := p.llmService.Chat(checkCtx, messages)
	if err != nil {
		p.logger.Warn("Progression check absorbed a failure",
			"reason", "llm_call_failed",
			"error", err)
		return "", false
	}

	decision, ok := adventure.ParseDecision(response.Message)
	if !ok {
		p.logger.Warn("Progression check absorbed a failure",
			"reason", "unparsable_decision",
			"raw", response.Message)
		return "", false
	}

	if !decision.ShouldProgress {
		return "", false
	}
	if decision.TriggerID == "" {
		p.logger.Warn("Progression check absorbed a failure",
			"reason", "missing_trigger_id")
		return "", false
	}

	destination, ok := adventure.ResolveTrigger(req.Triggers, decision.TriggerID)
	if !ok {
		p.logger.Warn("Progression check absorbed a failure",
			"reason", "unknown_trigger_id",
			"trigger_id", decision.TriggerID.String())
		return "", false
	}

	p.logger.Debug("Progression trigger resolved",
		"trigger_id", decision.TriggerID.String(),
		"destination", destination)
	return destination, true
}
