package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestPopupRequestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		req  PopupRequest
	}{
		{
			name: "no sections, no context",
			req: PopupRequest{
				ID:         "11111111-2222-4333-8444-555555555555",
				Message:    "done",
				Sections:   []Section{},
				IsMarkdown: true,
			},
		},
		{
			name: "plain text with sections",
			req: PopupRequest{
				ID:      "abc",
				Message: "## Summary\n- refactored",
				Sections: []Section{
					{Title: "Fix bug", Content: "Patch X", Selected: true},
					{Title: "Add tests", Content: "cover Y", Selected: false},
					{Title: "Docs", Content: "update README", Selected: true},
				},
				IsMarkdown: false,
			},
		},
		{
			name: "partial env context",
			req: PopupRequest{
				ID:         "ctx",
				Message:    "m",
				Sections:   []Section{},
				IsMarkdown: true,
				EnvContext: &EnvContext{
					Cwd: ptr("/work/project"),
					PID: ptr(4242),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.req)
			require.NoError(t, err)

			var decoded PopupRequest
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.req, decoded)
		})
	}
}

func TestUserResponseRoundTrip(t *testing.T) {
	responses := []UserResponse{
		Cancelled(),
		Confirmed(nil, "", nil),
		Confirmed([]int{0, 2, 2, 9}, "also bump the version", []string{"img-1", "img-2"}),
	}

	for _, resp := range responses {
		data, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded UserResponse
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, resp, decoded)
	}
}

func TestWireFieldNames(t *testing.T) {
	data, err := json.Marshal(PopupRequest{
		ID:         "id-1",
		Message:    "m",
		Sections:   []Section{{Title: "t", Content: "c", Selected: true}},
		IsMarkdown: true,
		EnvContext: &EnvContext{ProjectName: ptr("demo")},
	})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "is_markdown")
	assert.Contains(t, raw, "env_context")
	assert.Equal(t, "demo", raw["env_context"].(map[string]any)["project_name"])

	data, err = json.Marshal(Cancelled())
	require.NoError(t, err)
	assert.JSONEq(t, `{"confirmed":false,"selected_sections":[],"user_input":"","images":[]}`, string(data))
}

func TestDefaultsOnDecode(t *testing.T) {
	t.Run("section selected defaults to true", func(t *testing.T) {
		var s Section
		require.NoError(t, json.Unmarshal([]byte(`{"title":"a","content":"b"}`), &s))
		assert.True(t, s.Selected)

		require.NoError(t, json.Unmarshal([]byte(`{"title":"a","content":"b","selected":false}`), &s))
		assert.False(t, s.Selected)
	})

	t.Run("popup request is_markdown defaults to true", func(t *testing.T) {
		var p PopupRequest
		require.NoError(t, json.Unmarshal([]byte(`{"id":"x","message":"m"}`), &p))
		assert.True(t, p.IsMarkdown)
		assert.NotNil(t, p.Sections)
		assert.Empty(t, p.Sections)
	})

	t.Run("confirm request accepts camelCase isMarkdown", func(t *testing.T) {
		var r ConfirmRequest
		require.NoError(t, json.Unmarshal([]byte(`{"message":"m","isMarkdown":false}`), &r))
		require.NotNil(t, r.IsMarkdown)
		assert.False(t, *r.IsMarkdown)

		r = ConfirmRequest{}
		require.NoError(t, json.Unmarshal([]byte(`{"message":"m","is_markdown":true,"isMarkdown":false}`), &r))
		assert.True(t, *r.IsMarkdown)
	})

	t.Run("user response tolerates missing optional fields", func(t *testing.T) {
		var r UserResponse
		require.NoError(t, json.Unmarshal([]byte(`{"confirmed":true}`), &r))
		assert.True(t, r.Confirmed)
		assert.Empty(t, r.SelectedSections)
		assert.Empty(t, r.UserInput)
		assert.Empty(t, r.Images)
	})
}
