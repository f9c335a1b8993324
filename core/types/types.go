package types

import (
	"encoding/json"
)

// Section is one independently selectable piece of content offered to the user.
// Its position in PopupRequest.Sections is the index reported back in
// UserResponse.SelectedSections.
type Section struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Selected bool   `json:"selected"`
}

// UnmarshalJSON decodes a section, defaulting Selected to true when omitted
func (s *Section) UnmarshalJSON(data []byte) error {
	type alias Section
	aux := struct {
		Selected *bool `json:"selected"`
		*alias
	}{alias: (*alias)(s)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	s.Selected = aux.Selected == nil || *aux.Selected
	return nil
}

// EnvContext describes where the confirmation was requested from.
// Every field is optional; nil means "could not be determined".
type EnvContext struct {
	Cwd         *string `json:"cwd,omitempty"`
	ProjectName *string `json:"project_name,omitempty"`
	Terminal    *string `json:"terminal,omitempty"`
	PID         *int    `json:"pid,omitempty"`
}

// ConfirmRequest is the raw payload of a confirm tool call
type ConfirmRequest struct {
	Message    string      `json:"message"`
	Sections   []Section   `json:"sections,omitempty"`
	IsMarkdown *bool       `json:"is_markdown,omitempty"`
	Context    *EnvContext `json:"context,omitempty"`
}

// UnmarshalJSON accepts both is_markdown and isMarkdown
func (r *ConfirmRequest) UnmarshalJSON(data []byte) error {
	type alias ConfirmRequest
	aux := struct {
		IsMarkdownCamel *bool `json:"isMarkdown"`
		*alias
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if r.IsMarkdown == nil {
		r.IsMarkdown = aux.IsMarkdownCamel
	}
	return nil
}

// PopupRequest is the canonical request handed to the presentation adapter.
// It is written to disk as JSON and must round-trip losslessly.
type PopupRequest struct {
	ID         string      `json:"id"`
	Message    string      `json:"message"`
	Sections   []Section   `json:"sections"`
	IsMarkdown bool        `json:"is_markdown"`
	EnvContext *EnvContext `json:"env_context,omitempty"`
}

// UnmarshalJSON decodes a popup request, defaulting IsMarkdown to true when omitted
func (p *PopupRequest) UnmarshalJSON(data []byte) error {
	type alias PopupRequest
	aux := struct {
		IsMarkdown *bool `json:"is_markdown"`
		*alias
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	p.IsMarkdown = aux.IsMarkdown == nil || *aux.IsMarkdown
	if p.Sections == nil {
		p.Sections = []Section{}
	}
	return nil
}

// UserResponse is the canonical answer produced by the presentation adapter
type UserResponse struct {
	Confirmed        bool     `json:"confirmed"`
	SelectedSections []int    `json:"selected_sections"`
	UserInput        string   `json:"user_input"`
	Images           []string `json:"images"`
}

// Cancelled returns the sentinel response for a dismissed or declined request
func Cancelled() UserResponse {
	return UserResponse{
		Confirmed:        false,
		SelectedSections: []int{},
		UserInput:        "",
		Images:           []string{},
	}
}

// Confirmed returns a positive response with the given selections
func Confirmed(selectedSections []int, userInput string, images []string) UserResponse {
	if selectedSections == nil {
		selectedSections = []int{}
	}
	if images == nil {
		images = []string{}
	}
	return UserResponse{
		Confirmed:        true,
		SelectedSections: selectedSections,
		UserInput:        userInput,
		Images:           images,
	}
}

// IsCancelled reports whether the response carries no positive decision
func (r UserResponse) IsCancelled() bool {
	return !r.Confirmed
}
