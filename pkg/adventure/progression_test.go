package adventure

import (
	"encoding/json"
	"testing"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantOK       bool
		wantProgress bool
		wantTrigger  TriggerID
	}{
		{
			name:         "clean JSON object",
			raw:          `{"shouldProgress":true,"triggerId":"t1"}`,
			wantOK:       true,
			wantProgress: true,
			wantTrigger:  "t1",
		},
		{
			name:         "leading prose before JSON",
			raw:          `Sure! Here is my answer: {"shouldProgress":true,"triggerId":2}`,
			wantOK:       true,
			wantProgress: true,
			wantTrigger:  "2",
		},
		{
			name:         "numeric trigger id normalizes to string",
			raw:          `{"shouldProgress":true,"triggerId":42}`,
			wantOK:       true,
			wantProgress: true,
			wantTrigger:  "42",
		},
		{
			name:         "negative decision",
			raw:          `{"shouldProgress":false}`,
			wantOK:       true,
			wantProgress: false,
			wantTrigger:  "",
		},
		{
			name:   "no JSON object at all",
			raw:    "The player has not done anything noteworthy.",
			wantOK: false,
		},
		{
			name:   "empty response",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "truncated JSON",
			raw:    `{"shouldProgress":true,"trig`,
			wantOK: false,
		},
		{
			name:         "missing fields default to no progression",
			raw:          `{"confidence":0.9}`,
			wantOK:       true,
			wantProgress: false,
			wantTrigger:  "",
		},
		{
			name:         "null trigger id tolerated",
			raw:          `{"shouldProgress":true,"triggerId":null}`,
			wantOK:       true,
			wantProgress: true,
			wantTrigger:  "",
		},
		{
			name: "multiple brace-like substrings parse from first brace",
			// The first '{' starts the object; trailing prose after a
			// complete JSON value fails strict parsing, which is the safe
			// outcome for ambiguous output.
			raw:    `I considered {"a":1} and {"shouldProgress":true}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseDecision(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("ParseDecision(%q) ok = %v; want %v", tt.raw, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if d.ShouldProgress != tt.wantProgress {
				t.Errorf("ShouldProgress = %v; want %v", d.ShouldProgress, tt.wantProgress)
			}
			if d.TriggerID != tt.wantTrigger {
				t.Errorf("TriggerID = %q; want %q", d.TriggerID, tt.wantTrigger)
			}
		})
	}
}

func TestResolveTrigger(t *testing.T) {
	triggers := []Trigger{
		{ID: "1", Destination: "step-2", Condition: "player opens the door"},
		{ID: "cave", Destination: "step-3", Condition: "player enters the cave"},
		{ID: "1", Destination: "step-shadowed", Condition: "duplicate id, never reached"},
	}

	tests := []struct {
		name     string
		id       TriggerID
		wantDest string
		wantOK   bool
	}{
		{name: "string id match", id: "cave", wantDest: "step-3", wantOK: true},
		{name: "numeric-origin id matches first entry", id: "1", wantDest: "step-2", wantOK: true},
		{name: "unknown id", id: "99", wantOK: false},
		{name: "empty id never resolves", id: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dest, ok := ResolveTrigger(triggers, tt.id)
			if ok != tt.wantOK || dest != tt.wantDest {
				t.Errorf("ResolveTrigger(%q) = (%q, %v); want (%q, %v)",
					tt.id, dest, ok, tt.wantDest, tt.wantOK)
			}
		})
	}
}

func TestTriggerIDUnmarshal(t *testing.T) {
	var tr Trigger
	if err := json.Unmarshal([]byte(`{"id":7,"destination":"step-2"}`), &tr); err != nil {
		t.Fatalf("unmarshal numeric id: %v", err)
	}
	if tr.ID != "7" {
		t.Errorf("numeric id = %q; want %q", tr.ID, "7")
	}

	if err := json.Unmarshal([]byte(`{"id":"step-a","destination":"step-2"}`), &tr); err != nil {
		t.Fatalf("unmarshal string id: %v", err)
	}
	if tr.ID != "step-a" {
		t.Errorf("string id = %q; want %q", tr.ID, "step-a")
	}

	if err := json.Unmarshal([]byte(`{"id":{"bad":"shape"}}`), &tr); err != nil {
		t.Fatalf("unmarshal object id should not fail: %v", err)
	}
	if tr.ID != "" {
		t.Errorf("object id = %q; want empty", tr.ID)
	}
}
