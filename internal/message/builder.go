package message

import (
	"strings"

	"pr-review-reminder/pkg/models"

	"github.com/slack-go/slack"
)

const (
	msgGreeting     = "greeting"
	msgCallToAction = "urgent_call_to_action"
	msgSummary      = "summary"
)

var textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Translator resolves localized message strings
type Translator interface {
	Message(messageID string, templateData map[string]interface{}) string
	Plural(messageID string, count int) string
}

// RepoGroup holds the pull requests of one repository in fetch order
type RepoGroup struct {
	Repo         string
	PullRequests []models.PullRequest
}

// Item is one rendered pull request line
type Item struct {
	Title        string
	URL          string
	Badges       []string
	CallToAction string
}

// Section is one repository with its rendered pull requests
type Section struct {
	Repo  string
	Items []Item
}

// ChatMessage is the reminder payload. Text is the notification fallback;
// Blocks is the rich layout: an intro block, then per repository a header
// block followed by one block per pull request. Summary and Sections carry
// the same content for sinks that do not speak Block Kit.
type ChatMessage struct {
	Text     string        `json:"text"`
	Blocks   []slack.Block `json:"blocks"`
	Summary  string        `json:"-"`
	Sections []Section     `json:"-"`
}

// Urgent reports whether any rendered pull request carries an urgent tier
func (m *ChatMessage) Urgent() bool {
	for _, s := range m.Sections {
		for _, item := range s.Items {
			if item.CallToAction != "" {
				return true
			}
		}
	}
	return false
}

// Builder renders pull requests into a ChatMessage
type Builder struct {
	translator Translator
	tiers      Tiers
	mode       BadgeMode
}

func NewBuilder(translator Translator, tiers Tiers, mode BadgeMode) *Builder {
	return &Builder{translator: translator, tiers: tiers, mode: mode}
}

// Build groups the pull requests by repository and renders the message.
// Output depends only on the input.
func (b *Builder) Build(prs []models.PullRequest) *ChatMessage {
	greeting := b.translator.Message(msgGreeting, nil)

	msg := &ChatMessage{
		Text:    greeting,
		Blocks:  []slack.Block{markdownSection(greeting)},
		Summary: b.translator.Plural(msgSummary, len(prs)),
	}

	for _, group := range GroupByRepo(prs) {
		section := Section{Repo: group.Repo}
		msg.Blocks = append(msg.Blocks, markdownSection("📌 *"+group.Repo+"*"))

		for _, pr := range group.PullRequests {
			item := b.renderItem(pr)
			section.Items = append(section.Items, item)
			msg.Blocks = append(msg.Blocks, markdownSection(itemText(item)))
		}
		msg.Sections = append(msg.Sections, section)
	}

	return msg
}

func (b *Builder) renderItem(pr models.PullRequest) Item {
	item := Item{Title: pr.Title, URL: pr.URL}
	urgent := false
	for _, tier := range b.tiers.Match(pr, b.mode) {
		item.Badges = append(item.Badges, tier.Label)
		urgent = urgent || tier.Urgent
	}
	if urgent {
		item.CallToAction = b.translator.Message(msgCallToAction, nil)
	}
	return item
}

func itemText(item Item) string {
	var sb strings.Builder
	sb.WriteString("• <")
	sb.WriteString(item.URL)
	sb.WriteString("|")
	sb.WriteString(EscapeText(item.Title))
	sb.WriteString(">")
	for _, badge := range item.Badges {
		sb.WriteString(" *`")
		sb.WriteString(badge)
		sb.WriteString("`*")
	}
	if item.CallToAction != "" {
		sb.WriteString("\n\t")
		sb.WriteString(item.CallToAction)
	}
	return sb.String()
}

func markdownSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

// GroupByRepo groups pull requests by repository, keeping first-seen
// repository order and fetch order within each repository
func GroupByRepo(prs []models.PullRequest) []RepoGroup {
	var groups []RepoGroup
	index := make(map[string]int)
	for _, pr := range prs {
		i, ok := index[pr.Repo]
		if !ok {
			i = len(groups)
			index[pr.Repo] = i
			groups = append(groups, RepoGroup{Repo: pr.Repo})
		}
		groups[i].PullRequests = append(groups[i].PullRequests, pr)
	}
	return groups
}

// EscapeText escapes the characters Slack mrkdwn treats as link and mention
// delimiters. Nothing else is touched, & included.
func EscapeText(text string) string {
	return textEscaper.Replace(text)
}
