package runner

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/adzuna"
	"github.com/okliver/jobwatch/internal/matching"
	"github.com/okliver/jobwatch/internal/registry"
	"github.com/okliver/jobwatch/internal/resend"
)

type stubFetcher struct {
	calls   []*adzuna.SearchParams
	results map[string]*adzuna.SearchResult
	err     error
}

func (s *stubFetcher) Fetch(params *adzuna.SearchParams) (*adzuna.SearchResult, error) {
	s.calls = append(s.calls, params)
	if s.err != nil {
		return nil, s.err
	}
	if result, ok := s.results[params.Query]; ok {
		return result, nil
	}
	return &adzuna.SearchResult{}, nil
}

type stubSender struct {
	sent []*resend.Message
	err  error
}

func (s *stubSender) Send(msg *resend.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func floatPtr(f float64) *float64 { return &f }

func goodPosting(id string) *adzuna.Posting {
	posting := &adzuna.Posting{
		ID:          id,
		Title:       "Data Analyst",
		Description: "Python and SQL required",
		SalaryMin:   floatPtr(60000),
		RedirectURL: "https://example.com/" + id,
	}
	posting.Company.DisplayName = "Acme"
	posting.Location.Area = []string{"London"}
	return posting
}

func newTestRunner(t *testing.T, fetcher Fetcher, sender Sender) (*Runner, *registry.Registry) {
	t.Helper()

	reg := registry.New()
	if _, err := reg.Add("Alice", "alice@example.com", "London", "Data Analyst", "python, sql", 50000); err != nil {
		t.Fatalf("registering user: %v", err)
	}

	return New(reg, fetcher, sender, zap.NewNop(), "jobs@example.com", "gb"), reg
}

func TestRunAllSendsNotification(t *testing.T) {
	fetcher := &stubFetcher{results: map[string]*adzuna.SearchResult{
		"Data Analyst": {Postings: []*adzuna.Posting{goodPosting("1")}},
	}}
	sender := &stubSender{}
	runner, reg := newTestRunner(t, fetcher, sender)

	report := runner.RunAll()

	if len(report.Lines) != 1 || report.Lines[0] != "Alice: notification sent to alice@example.com" {
		t.Fatalf("unexpected report: %v", report.Lines)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.To != "alice@example.com" || msg.From != "jobs@example.com" {
		t.Fatalf("unexpected addressing: %+v", msg)
	}
	if msg.Subject != "Your Personalized Job Matches" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	for _, want := range []string{
		"Hello Alice,",
		"- Data Analyst at Acme",
		"Location: London",
		"Match Score: 80.0%",
		"Matched Skills: python, sql",
		"Apply here: https://example.com/1",
	} {
		if !strings.Contains(msg.Text, want) {
			t.Fatalf("email body missing %q:\n%s", want, msg.Text)
		}
	}

	if reg.Users()[0].LastNotified == nil {
		t.Fatalf("expected last-notified to be set after success")
	}
}

func TestRunAllNoMatches(t *testing.T) {
	fetcher := &stubFetcher{}
	sender := &stubSender{}
	runner, reg := newTestRunner(t, fetcher, sender)

	report := runner.RunAll()

	if report.Lines[0] != "Alice: no matching jobs found" {
		t.Fatalf("unexpected report: %v", report.Lines)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected zero email calls, got %d", len(sender.sent))
	}
	if reg.Users()[0].LastNotified != nil {
		t.Fatalf("last-notified must stay unset without a notification")
	}
}

func TestRunAllSendFailureKeepsTimestamp(t *testing.T) {
	fetcher := &stubFetcher{results: map[string]*adzuna.SearchResult{
		"Data Analyst": {Postings: []*adzuna.Posting{goodPosting("1")}},
	}}
	sender := &stubSender{err: errors.New("smtp is a lie")}
	runner, reg := newTestRunner(t, fetcher, sender)

	report := runner.RunAll()

	if !strings.Contains(report.Lines[0], "sending notification failed") {
		t.Fatalf("unexpected report: %v", report.Lines)
	}
	if reg.Users()[0].LastNotified != nil {
		t.Fatalf("last-notified must not move on delivery failure")
	}
}

func TestRunAllFetchFailureDoesNotBlockOthers(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("upstream down")}
	sender := &stubSender{}
	runner, reg := newTestRunner(t, fetcher, sender)
	if _, err := reg.Add("Bob", "bob@example.com", "Leeds", "Go Developer", "go", 0); err != nil {
		t.Fatalf("registering user: %v", err)
	}

	report := runner.RunAll()

	if len(report.Lines) != 2 {
		t.Fatalf("expected a line per user, got %v", report.Lines)
	}
	for _, line := range report.Lines {
		if !strings.Contains(line, "no matching jobs found") {
			t.Fatalf("unexpected line: %q", line)
		}
	}
}

func TestMatchUserAggregatesAcrossRoles(t *testing.T) {
	reg := registry.New()
	if _, err := reg.Add("Alice", "alice@example.com", "London", "Data Analyst, Data Engineer", "python, sql", 50000); err != nil {
		t.Fatalf("registering user: %v", err)
	}

	analyst := goodPosting("analyst")
	engineer := goodPosting("engineer")
	engineer.Title = "Data Engineer"

	fetcher := &stubFetcher{results: map[string]*adzuna.SearchResult{
		"Data Analyst":  {Postings: []*adzuna.Posting{analyst}},
		"Data Engineer": {Postings: []*adzuna.Posting{engineer}},
	}}
	runner := New(reg, fetcher, &stubSender{}, zap.NewNop(), "jobs@example.com", "gb")

	matches := runner.matchUser(reg.Users()[0])

	if len(matches) != 2 {
		t.Fatalf("expected matches from both roles, got %d", len(matches))
	}
	if len(fetcher.calls) != 2 {
		t.Fatalf("expected one fetch per role, got %d", len(fetcher.calls))
	}
	if fetcher.calls[0].Location != "London" || fetcher.calls[0].Country != "gb" {
		t.Fatalf("unexpected fetch params: %+v", fetcher.calls[0])
	}
}

func TestMatchUserCapsAtMaxMatches(t *testing.T) {
	postings := make([]*adzuna.Posting, 0, 8)
	for i := 0; i < 8; i++ {
		postings = append(postings, goodPosting(string(rune('a'+i))))
	}

	fetcher := &stubFetcher{results: map[string]*adzuna.SearchResult{
		"Data Analyst": {Postings: postings},
	}}
	runner, reg := newTestRunner(t, fetcher, &stubSender{})

	matches := runner.matchUser(reg.Users()[0])

	if len(matches) != matching.MaxMatches {
		t.Fatalf("expected %d matches, got %d", matching.MaxMatches, len(matches))
	}
	// equal scores keep listing order
	if matches[0].Posting.ID != "a" || matches[4].Posting.ID != "e" {
		t.Fatalf("expected stable order for tied scores, got %s..%s", matches[0].Posting.ID, matches[4].Posting.ID)
	}
}
