package mapper_test

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sam3690/syncly/internal/mapper"
	"github.com/sam3690/syncly/internal/model"
)

func decodeGitHubItem(body string) mapper.GitHubItem {
	items, err := mapper.DecodeGitHubItems([]byte("[" + body + "]"))
	Expect(err).ToNot(HaveOccurred())
	Expect(items).To(HaveLen(1))
	return items[0]
}

var _ = Describe("GitHubMapper", func() {
	var (
		githubMapper *mapper.GitHubMapper
		importedAt   time.Time
	)

	BeforeEach(func() {
		githubMapper = mapper.NewGitHubMapper()
		importedAt = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	})

	It("maps an open pull request", func() {
		item := decodeGitHubItem(`{
			"number": 42,
			"title": "Fix bug",
			"state": "open",
			"html_url": "https://github.com/acme/widgets/pull/42",
			"user": {"login": "octocat"},
			"pull_request": {"url": "https://api.github.com/repos/acme/widgets/pulls/42", "merged_at": null},
			"updated_at": "2024-01-01T00:00:00Z"
		}`)

		event := githubMapper.Map("demo", "acme", "widgets", item, importedAt)

		Expect(event.WorkspaceID).To(Equal("demo"))
		Expect(event.Provider).To(Equal(model.ProviderGitHub))
		Expect(event.Type).To(Equal(mapper.EventPROpened))
		Expect(event.ContextType).To(Equal(model.ContextGitHubPR))
		Expect(event.ContextID).To(Equal("acme/widgets#42"))
		Expect(event.ContextLabel).To(Equal("widgets #42: Fix bug"))
		Expect(*event.Actor).To(Equal("octocat"))
		Expect(*event.URL).To(Equal("https://github.com/acme/widgets/pull/42"))
		Expect(event.OccurredAt).To(Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	DescribeTable("classifies items by kind and state",
		func(body string, expected string) {
			Expect(mapper.GitHubEventType(decodeGitHubItem(body))).To(Equal(expected))
		},
		Entry("open issue", `{"number": 1, "state": "open"}`, mapper.EventIssueOpened),
		Entry("closed issue", `{"number": 1, "state": "closed"}`, mapper.EventIssueClosed),
		Entry("open PR", `{"number": 1, "state": "open", "pull_request": {}}`, mapper.EventPROpened),
		Entry("merged PR", `{"number": 1, "state": "closed", "pull_request": {"merged_at": "2024-01-02T00:00:00Z"}}`, mapper.EventPRMerged),
		Entry("closed PR with null merge time", `{"number": 1, "state": "closed", "pull_request": {"merged_at": null}}`, mapper.EventPRClosed),
		Entry("closed PR without merge time", `{"number": 1, "state": "closed", "pull_request": {}}`, mapper.EventPRClosed),
		Entry("null pull_request is an issue", `{"number": 1, "state": "open", "pull_request": null}`, mapper.EventIssueOpened),
	)

	It("never reports a merged PR as closed", func() {
		for _, mergedAt := range []string{"2020-01-01T00:00:00Z", "2024-12-31T23:59:59Z", "not-a-date"} {
			item := decodeGitHubItem(`{"number": 7, "state": "closed", "pull_request": {"merged_at": "` + mergedAt + `"}}`)
			Expect(mapper.GitHubEventType(item)).To(Equal(mapper.EventPRMerged))
		}
	})

	DescribeTable("falls back to the repository context without a numeric number",
		func(body string) {
			c := mapper.GitHubContext("acme", "widgets", decodeGitHubItem(body))
			Expect(c.Type).To(Equal(model.ContextGitHubRepo))
			Expect(c.ID).To(Equal("acme/widgets"))
			Expect(c.Label).To(Equal("acme/widgets"))
		},
		Entry("missing number", `{"title": "x", "state": "open"}`),
		Entry("null number", `{"number": null, "state": "open"}`),
		Entry("string number", `{"number": "42", "state": "open"}`),
		Entry("missing number on a PR", `{"state": "open", "pull_request": {}}`),
	)

	It("uses the issue context for issues", func() {
		c := mapper.GitHubContext("acme", "widgets", decodeGitHubItem(`{"number": 9, "title": "Crash", "state": "open"}`))
		Expect(c.Type).To(Equal(model.ContextGitHubIssue))
		Expect(c.ID).To(Equal("acme/widgets#9"))
		Expect(c.Label).To(Equal("widgets #9: Crash"))
	})

	Describe("description", func() {
		It("truncates bodies longer than the cap to exactly the cap", func() {
			body := strings.Repeat("a", mapper.MaxDescriptionLength+500)
			raw, _ := json.Marshal(map[string]any{"number": 1, "state": "open", "body": body})
			event := githubMapper.Map("demo", "acme", "widgets", decodeGitHubItem(string(raw)), importedAt)
			Expect(utf8.RuneCountInString(*event.Description)).To(Equal(mapper.MaxDescriptionLength))
			Expect(*event.Description).To(Equal(body[:mapper.MaxDescriptionLength]))
		})

		It("preserves shorter bodies exactly", func() {
			body := "line one\nline two ✓"
			raw, _ := json.Marshal(map[string]any{"number": 1, "state": "open", "body": body})
			event := githubMapper.Map("demo", "acme", "widgets", decodeGitHubItem(string(raw)), importedAt)
			Expect(*event.Description).To(Equal(body))
		})

		It("is null when the body is absent", func() {
			event := githubMapper.Map("demo", "acme", "widgets", decodeGitHubItem(`{"number": 1, "state": "open", "body": null}`), importedAt)
			Expect(event.Description).To(BeNil())
		})
	})

	Describe("occurred_at", func() {
		It("prefers updated_at", func() {
			item := decodeGitHubItem(`{"number": 1, "state": "open", "created_at": "2023-01-01T00:00:00Z", "updated_at": "2023-02-01T00:00:00Z"}`)
			Expect(githubMapper.Map("demo", "a", "b", item, importedAt).OccurredAt).To(Equal(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("falls back to created_at", func() {
			item := decodeGitHubItem(`{"number": 1, "state": "open", "created_at": "2023-01-01T00:00:00Z"}`)
			Expect(githubMapper.Map("demo", "a", "b", item, importedAt).OccurredAt).To(Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("falls back to the ingestion time", func() {
			item := decodeGitHubItem(`{"number": 1, "state": "open"}`)
			Expect(githubMapper.Map("demo", "a", "b", item, importedAt).OccurredAt).To(Equal(importedAt))
		})
	})

	It("keeps the raw payload untouched in metadata", func() {
		raw := `{"number":5,  "state":"open", "extra": {"nested": [1, 2, 3]}, "reactions": {"+1": 4}}`
		event := githubMapper.Map("demo", "a", "b", decodeGitHubItem(raw), importedAt)
		Expect(string(event.Metadata)).To(Equal(raw))
	})

	It("derives the same context from the same input", func() {
		item := decodeGitHubItem(`{"number": 3, "title": "Same", "state": "open"}`)
		Expect(mapper.GitHubContext("a", "b", item)).To(Equal(mapper.GitHubContext("a", "b", item)))
	})

	It("rejects a body that is not an array", func() {
		_, err := mapper.DecodeGitHubItems([]byte(`{"message": "Not Found"}`))
		Expect(err).To(HaveOccurred())
	})
})
