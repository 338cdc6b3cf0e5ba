package notifier

import (
	"pr-review-reminder/internal/message"

	"github.com/slack-go/slack"
)

func textBlock(text string) slack.Block {
	return slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil)
}

func testMessage() *message.ChatMessage {
	return &message.ChatMessage{
		Text:    "Good morning!\nPlease review:",
		Summary: "2 pull requests waiting for review",
		Blocks: []slack.Block{
			textBlock("Good morning!\nPlease review:"),
			textBlock("📌 *repoA*"),
			textBlock("• <https://github.com/o/repoA/pull/1|Fix &lt;bug&gt;>"),
			textBlock("📌 *repoB*"),
			textBlock("• <https://github.com/o/repoB/pull/2|Add feature> *`D-0`*\n\tReview now!"),
		},
		Sections: []message.Section{
			{Repo: "repoA", Items: []message.Item{{Title: "Fix <bug>", URL: "https://github.com/o/repoA/pull/1"}}},
			{Repo: "repoB", Items: []message.Item{{
				Title:        "Add feature",
				URL:          "https://github.com/o/repoB/pull/2",
				Badges:       []string{"D-0"},
				CallToAction: "Review now!",
			}}},
		},
	}
}
