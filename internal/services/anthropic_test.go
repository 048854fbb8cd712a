package services

import (
	"log/slog"
	"os"
	"testing"

	"github.com/Extra-Chill/extrachill-blocks/pkg/chat"
)

func TestAnthropicSplitMessages(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := NewAnthropicService("test-key", "claude-sonnet-4-20250514", logger)

	tests := []struct {
		name           string
		messages       []chat.Message
		wantSystem     string
		wantConvoCount int
	}{
		{
			name: "single system message extracted",
			messages: []chat.Message{
				chat.System("You are a narrator."),
				chat.User("Hello"),
			},
			wantSystem:     "You are a narrator.",
			wantConvoCount: 1,
		},
		{
			name: "multiple system messages joined",
			messages: []chat.Message{
				chat.System("Part one."),
				chat.System("Part two."),
				chat.User("Hello"),
				chat.Assistant("Hi"),
			},
			wantSystem:     "Part one.\n\nPart two.",
			wantConvoCount: 2,
		},
		{
			name: "no system messages",
			messages: []chat.Message{
				chat.User("Hello"),
			},
			wantSystem:     "",
			wantConvoCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			system, conversation := svc.splitMessages(tt.messages)
			if system != tt.wantSystem {
				t.Errorf("system = %q; want %q", system, tt.wantSystem)
			}
			if len(conversation) != tt.wantConvoCount {
				t.Errorf("conversation count = %d; want %d", len(conversation), tt.wantConvoCount)
			}
		})
	}
}
