package tracker

import (
	"encoding/json"

	"trackersync/internal/domain"
)

type storyDTO struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"story_type"`
	CurrentState string `json:"current_state"`
	OwnedByID    *int64 `json:"owned_by_id,omitempty"`
}

type searchDTO struct {
	Stories struct {
		Stories []storyDTO `json:"stories"`
	} `json:"stories"`
}

type changeDTO struct {
	Kind      string         `json:"kind"`
	NewValues map[string]any `json:"new_values"`
}

type activityDTO struct {
	Kind    string      `json:"kind"`
	Changes []changeDTO `json:"changes"`
}

type personDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type membershipDTO struct {
	Person personDTO `json:"person"`
}

type stateRequest struct {
	CurrentState string `json:"current_state"`
}

// errorDTO is the tracker's error envelope: {"kind":"error","code":..,"error":..}.
type errorDTO struct {
	Kind           string `json:"kind"`
	Code           string `json:"code"`
	Error          string `json:"error"`
	GeneralProblem string `json:"general_problem"`
}

func (e errorDTO) present() bool {
	return e.Kind == "error" || e.Error != ""
}

func (e errorDTO) message() string {
	msg := e.Error
	if e.GeneralProblem != "" {
		msg += ": " + e.GeneralProblem
	}
	if msg == "" {
		msg = e.Code
	}
	return msg
}

func storyFromDTO(s storyDTO) domain.Story {
	return domain.Story{
		ID:           s.ID,
		Name:         s.Name,
		Kind:         s.Kind,
		CurrentState: domain.StoryState(s.CurrentState),
		OwnedByID:    s.OwnedByID,
	}
}

func personFromDTO(p personDTO) domain.Person {
	return domain.Person{
		ID:       p.ID,
		Name:     p.Name,
		Initials: p.Initials,
		Username: p.Username,
		Email:    p.Email,
	}
}

// activityFromJSON decodes the activity feed leniently: entries that do not
// parse are dropped, and a payload that is not an array yields nothing.
func activityFromJSON(data []byte) []domain.ActivityEntry {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	entries := make([]domain.ActivityEntry, 0, len(raw))
	for _, item := range raw {
		var dto activityDTO
		if err := json.Unmarshal(item, &dto); err != nil {
			continue
		}
		entry := domain.ActivityEntry{
			Kind:    dto.Kind,
			Changes: make([]domain.Change, 0, len(dto.Changes)),
		}
		for _, ch := range dto.Changes {
			entry.Changes = append(entry.Changes, domain.Change{
				Kind:      ch.Kind,
				NewValues: ch.NewValues,
			})
		}
		entries = append(entries, entry)
	}
	return entries
}
