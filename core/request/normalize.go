// Package request turns a raw confirm tool payload into the canonical
// PopupRequest handed to the bridge.
package request

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/zoonderkins/claude-confirm/core/envctx"
	"github.com/zoonderkins/claude-confirm/core/types"
)

// ErrValidation matches every ValidationError via errors.Is
var ErrValidation = errors.New("invalid confirm request")

// ValidationError reports malformed or missing caller input.
// Index is the offending section index, or -1 when the error is not about a section.
type ValidationError struct {
	Field  string
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid confirm request: %s %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Normalizer validates and defaults raw requests
type Normalizer struct {
	Detector envctx.Detector
	NewID    func() string

	validate *validator.Validate
}

// NewNormalizer creates a normalizer that senses the environment through detector
// and generates UUIDv4 identifiers
func NewNormalizer(detector envctx.Detector) *Normalizer {
	if detector == nil {
		detector = envctx.NewSystem()
	}
	return &Normalizer{
		Detector: detector,
		NewID:    uuid.NewString,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Normalize applies defaults, assigns a fresh id and attaches the merged
// environment context. It performs no I/O beyond environment sensing.
func (n *Normalizer) Normalize(raw types.ConfirmRequest) (*types.PopupRequest, error) {
	if err := n.check(raw); err != nil {
		return nil, err
	}

	isMarkdown := true
	if raw.IsMarkdown != nil {
		isMarkdown = *raw.IsMarkdown
	}

	sections := make([]types.Section, len(raw.Sections))
	copy(sections, raw.Sections)

	env := envctx.Merge(n.Detector.Detect(), raw.Context)

	newID := n.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &types.PopupRequest{
		ID:         newID(),
		Message:    raw.Message,
		Sections:   sections,
		IsMarkdown: isMarkdown,
		EnvContext: &env,
	}, nil
}

func (n *Normalizer) check(raw types.ConfirmRequest) error {
	v := n.validate
	if v == nil {
		v = validator.New(validator.WithRequiredStructEnabled())
	}

	if err := v.Var(raw.Message, "required"); err != nil {
		return &ValidationError{Field: "message", Index: -1, Reason: "is required"}
	}

	// Sections are checked one at a time so the error can name the index
	for i, section := range raw.Sections {
		err := v.Struct(section)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return &ValidationError{Field: fmt.Sprintf("sections[%d]", i), Index: i, Reason: err.Error()}
		}

		field := "title"
		if fieldErrs[0].StructField() == "Content" {
			field = "content"
		}
		return &ValidationError{
			Field:  fmt.Sprintf("sections[%d].%s", i, field),
			Index:  i,
			Reason: "must not be empty",
		}
	}

	return nil
}
