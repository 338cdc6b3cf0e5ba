package models

// Label represents a label attached to a pull request
type Label struct {
	Name string `json:"name"`
}

// PullRequest represents an open pull request tagged with the repository it was fetched from
type PullRequest struct {
	Repo   string  `json:"repo"`
	Title  string  `json:"title"`
	URL    string  `json:"html_url"`
	Labels []Label `json:"labels"`
}

// HasLabel reports whether the pull request carries a label with the given name
func (pr PullRequest) HasLabel(name string) bool {
	for _, l := range pr.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// LabelNames returns the label names in the order the platform returned them
func (pr PullRequest) LabelNames() []string {
	names := make([]string, 0, len(pr.Labels))
	for _, l := range pr.Labels {
		names = append(names, l.Name)
	}
	return names
}
