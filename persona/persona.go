// Package persona holds the static roster of simulated sales prospects and
// the read-mostly registry used to look them up.
package persona

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFound is returned when no persona exists for the requested id.
	ErrNotFound = errors.New("persona not found")

	// ErrNotReady is returned when a persona exists but has no assistant
	// bound to it, so it cannot run an interview.
	ErrNotReady = errors.New("persona has no assistant configured")
)

// Persona is one simulated prospect: a fixed identity with its own tone,
// negotiation posture, and system prompt. Immutable after registry load.
type Persona struct {
	ID           int    `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Role         string `yaml:"role" json:"role"`
	Description  string `yaml:"description" json:"description"`
	SystemPrompt string `yaml:"system_prompt" json:"-"`
	Model        string `yaml:"model" json:"model"`

	// AssistantID is the remote agent handle on the completion backend.
	// Empty means the persona is registered but not usable.
	AssistantID string `yaml:"assistant_id" json:"assistant_id,omitempty"`
}

// Status is the listing view of a persona exposed over the API.
type Status struct {
	AgentID     int    `json:"agent_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	AssistantID string `json:"assistant_id,omitempty"`
	IsReady     bool   `json:"is_ready"`
}

// Registry is an explicitly constructed, injected lookup table of personas.
// It is read-only after construction and safe for concurrent use.
type Registry struct {
	byID map[int]Persona
}

// NewRegistry builds a registry from the given personas. Ids must be unique
// and positive.
func NewRegistry(personas []Persona) (*Registry, error) {
	if len(personas) == 0 {
		return nil, errors.New("NewRegistry: no personas")
	}
	byID := make(map[int]Persona, len(personas))
	for _, p := range personas {
		if p.ID <= 0 {
			return nil, fmt.Errorf("NewRegistry: persona %q has invalid id %d", p.Name, p.ID)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("NewRegistry: duplicate persona id %d", p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("NewRegistry: persona %d has empty name", p.ID)
		}
		if p.Model == "" {
			p.Model = DefaultModel
		}
		byID[p.ID] = p
	}
	return &Registry{byID: byID}, nil
}

// Get returns the persona for id, or ErrNotFound.
func (r *Registry) Get(id int) (Persona, error) {
	p, ok := r.byID[id]
	if !ok {
		return Persona{}, fmt.Errorf("persona %d: %w", id, ErrNotFound)
	}
	return p, nil
}

// GetReady returns the persona for id, failing with ErrNotReady when the
// persona has no assistant handle.
func (r *Registry) GetReady(id int) (Persona, error) {
	p, err := r.Get(id)
	if err != nil {
		return Persona{}, err
	}
	if p.AssistantID == "" {
		return Persona{}, fmt.Errorf("persona %d: %w", id, ErrNotReady)
	}
	return p, nil
}

// Len reports the number of registered personas.
func (r *Registry) Len() int {
	return len(r.byID)
}

// Statuses returns the listing view of every persona, ordered by id.
func (r *Registry) Statuses() []Status {
	out := make([]Status, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, Status{
			AgentID:     p.ID,
			Name:        p.Name,
			Role:        p.Role,
			Description: p.Description,
			AssistantID: p.AssistantID,
			IsReady:     p.AssistantID != "",
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgentID < out[j].AgentID })
	return out
}
