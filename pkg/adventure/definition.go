package adventure

import (
	"fmt"
)

// Definition is an authored adventure: the static story content a client
// owns and round-trips through turn requests. The server never loads one;
// definitions exist for the console player and the file linter.
type Definition struct {
	Title             string           `json:"title"`
	AdventurePrompt   string           `json:"adventurePrompt"`
	GameMasterPersona string           `json:"gameMasterPersona"`
	Paths             []PathDefinition `json:"paths"`
}

// PathDefinition is one storyline through the adventure. The player picks a
// path once at the start; steps within it link to each other through trigger
// destinations.
type PathDefinition struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Prompt       string           `json:"prompt"`
	StartingStep string           `json:"startingStep"`
	Steps        []StepDefinition `json:"steps"`
}

// StepDefinition is one story beat with its progression candidates.
type StepDefinition struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Prompt   string    `json:"prompt"`
	Triggers []Trigger `json:"triggers"`
}

// Path finds a path by id.
func (d *Definition) Path(id string) (*PathDefinition, bool) {
	for i := range d.Paths {
		if d.Paths[i].ID == id {
			return &d.Paths[i], true
		}
	}
	return nil, false
}

// Step finds a step by id within the path.
func (p *PathDefinition) Step(id string) (*StepDefinition, bool) {
	for i := range p.Steps {
		if p.Steps[i].ID == id {
			return &p.Steps[i], true
		}
	}
	return nil, false
}

// Start returns the path's starting step: the declared one, or the first
// step when none is declared.
func (p *PathDefinition) Start() (*StepDefinition, bool) {
	if p.StartingStep != "" {
		return p.Step(p.StartingStep)
	}
	if len(p.Steps) == 0 {
		return nil, false
	}
	return &p.Steps[0], true
}

// Validate checks the definition's structural integrity and returns every
// problem found, not just the first. A nil result means the definition is
// playable end to end.
func (d *Definition) Validate() []error {
	var errs []error

	if d.Title == "" {
		errs = append(errs, fmt.Errorf("adventure title cannot be empty"))
	}
	if d.AdventurePrompt == "" {
		errs = append(errs, fmt.Errorf("adventurePrompt cannot be empty"))
	}
	if len(d.Paths) == 0 {
		errs = append(errs, fmt.Errorf("adventure must declare at least one path"))
	}

	pathIDs := make(map[string]bool)
	for _, p := range d.Paths {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("path with title %q is missing an id", p.Title))
			continue
		}
		if pathIDs[p.ID] {
			errs = append(errs, fmt.Errorf("duplicate path id %q", p.ID))
		}
		pathIDs[p.ID] = true

		errs = append(errs, p.validate()...)
	}

	return errs
}

func (p *PathDefinition) validate() []error {
	var errs []error

	if len(p.Steps) == 0 {
		errs = append(errs, fmt.Errorf("path %q has no steps", p.ID))
		return errs
	}

	stepIDs := make(map[string]bool)
	for _, s := range p.Steps {
		if s.ID == "" {
			errs = append(errs, fmt.Errorf("path %q has a step with no id", p.ID))
			continue
		}
		if stepIDs[s.ID] {
			errs = append(errs, fmt.Errorf("path %q has duplicate step id %q", p.ID, s.ID))
		}
		stepIDs[s.ID] = true
	}

	if p.StartingStep != "" && !stepIDs[p.StartingStep] {
		errs = append(errs, fmt.Errorf("path %q starting step %q does not exist", p.ID, p.StartingStep))
	}

	for _, s := range p.Steps {
		if s.Prompt == "" {
			errs = append(errs, fmt.Errorf("step %q in path %q has an empty prompt", s.ID, p.ID))
		}

		triggerIDs := make(map[TriggerID]bool)
		for _, t := range s.Triggers {
			if t.ID == "" {
				errs = append(errs, fmt.Errorf("step %q in path %q has a trigger with no id", s.ID, p.ID))
				continue
			}
			if triggerIDs[t.ID] {
				errs = append(errs, fmt.Errorf("step %q in path %q has duplicate trigger id %q", s.ID, p.ID, t.ID.String()))
			}
			triggerIDs[t.ID] = true

			if t.Condition == "" {
				errs = append(errs, fmt.Errorf("trigger %q on step %q has an empty condition", t.ID.String(), s.ID))
			}
			if t.Destination == "" {
				errs = append(errs, fmt.Errorf("trigger %q on step %q has an empty destination", t.ID.String(), s.ID))
			} else if !stepIDs[t.Destination] {
				errs = append(errs, fmt.Errorf("trigger %q on step %q points to unknown step %q", t.ID.String(), s.ID, t.Destination))
			}
		}
	}

	return errs
}
