package models

import (
	"encoding/json"
	"testing"
)

func TestPullRequest_DecodeGitHubPayload(t *testing.T) {
	payload := `[
		{"number": 7, "title": "Fix <bug>", "html_url": "https://github.com/o/r/pull/7",
		 "labels": [{"id": 1, "name": "D-0", "color": "ff0000"}]},
		{"number": 8, "title": "Docs", "html_url": "https://github.com/o/r/pull/8", "labels": []}
	]`

	var prs []PullRequest
	if err := json.Unmarshal([]byte(payload), &prs); err != nil {
		t.Fatalf("Expected valid payload, got error: %v", err)
	}

	if len(prs) != 2 {
		t.Fatalf("Expected 2 PRs, got %d", len(prs))
	}
	if prs[0].Title != "Fix <bug>" {
		t.Errorf("Expected title 'Fix <bug>', got '%s'", prs[0].Title)
	}
	if prs[0].URL != "https://github.com/o/r/pull/7" {
		t.Errorf("Expected html_url to be decoded, got '%s'", prs[0].URL)
	}
	if len(prs[0].Labels) != 1 || prs[0].Labels[0].Name != "D-0" {
		t.Errorf("Expected label D-0, got %+v", prs[0].Labels)
	}
	if prs[1].Repo != "" {
		t.Errorf("Expected repo to be empty before tagging, got '%s'", prs[1].Repo)
	}
}

func TestPullRequest_HasLabel(t *testing.T) {
	tests := []struct {
		name     string
		labels   []Label
		label    string
		expected bool
	}{
		{
			name:     "Label present",
			labels:   []Label{{Name: "bug"}, {Name: "D-1"}},
			label:    "D-1",
			expected: true,
		},
		{
			name:     "Label absent",
			labels:   []Label{{Name: "bug"}},
			label:    "D-1",
			expected: false,
		},
		{
			name:     "Case sensitive",
			labels:   []Label{{Name: "d-0"}},
			label:    "D-0",
			expected: false,
		},
		{
			name:     "No labels",
			labels:   nil,
			label:    "D-0",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := PullRequest{Labels: tt.labels}
			if got := pr.HasLabel(tt.label); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPullRequest_LabelNames(t *testing.T) {
	pr := PullRequest{Labels: []Label{{Name: "D-2"}, {Name: "backend"}}}

	names := pr.LabelNames()
	if len(names) != 2 || names[0] != "D-2" || names[1] != "backend" {
		t.Errorf("Expected [D-2 backend], got %v", names)
	}

	if got := (PullRequest{}).LabelNames(); len(got) != 0 {
		t.Errorf("Expected no names, got %v", got)
	}
}
