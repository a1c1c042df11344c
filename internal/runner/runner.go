// Package runner drives one matching pass: fetch postings per user role,
// score and rank them, and email the top matches.
package runner

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/okliver/jobwatch/internal/adzuna"
	"github.com/okliver/jobwatch/internal/matching"
	"github.com/okliver/jobwatch/internal/registry"
	"github.com/okliver/jobwatch/internal/resend"
)

const subject = "Your Personalized Job Matches"

// Fetcher yields (possibly cached) search results.
type Fetcher interface {
	Fetch(params *adzuna.SearchParams) (*adzuna.SearchResult, error)
}

// Sender delivers one rendered notification.
type Sender interface {
	Send(msg *resend.Message) error
}

type Runner struct {
	registry *registry.Registry
	fetcher  Fetcher
	sender   Sender
	logger   *zap.Logger
	from     string
	country  string
}

func New(reg *registry.Registry, fetcher Fetcher, sender Sender, logger *zap.Logger, from, country string) *Runner {
	return &Runner{
		registry: reg,
		fetcher:  fetcher,
		sender:   sender,
		logger:   logger,
		from:     from,
		country:  country,
	}
}

// Report is the line-per-user summary of one batch run.
type Report struct {
	Lines []string
}

func (r *Report) String() string {
	return strings.Join(r.Lines, "\n")
}

// RunAll runs matching and notification for every registered user. One
// user's failure never blocks the others; failures surface as outcome
// lines, not errors.
func (r *Runner) RunAll() *Report {
	users := r.registry.Users()
	r.logger.Info("starting matching run", zap.Int("users", len(users)))

	report := &Report{Lines: make([]string, 0, len(users))}
	for _, user := range users {
		matches := r.matchUser(user)
		outcome := r.Notify(user, matches)

		r.logger.Info("matching run for user",
			zap.String("user", user.Name),
			zap.Int("matches", len(matches)),
			zap.String("outcome", outcome),
		)

		report.Lines = append(report.Lines, fmt.Sprintf("%s: %s", user.Name, outcome))
	}

	return report
}

// matchUser aggregates qualifying postings across all of the user's roles
// and keeps the ranked top of them.
func (r *Runner) matchUser(user *registry.User) []*matching.Match {
	var all []*matching.Match

	for _, role := range user.Roles {
		result, err := r.fetcher.Fetch(&adzuna.SearchParams{
			Query:    role,
			Location: user.Location,
			Country:  r.country,
		})
		if err != nil {
			r.logger.Warn("fetching jobs failed",
				zap.String("user", user.Name),
				zap.String("role", role),
				zap.Error(err),
			)
			continue
		}

		all = append(all, matching.MatchPostings(user, role, result.Postings)...)
	}

	return matching.Rank(all)
}

// Notify renders and sends the match email. An empty match list reports
// "no matching jobs found" without contacting the email API. The
// last-notified timestamp moves only on successful delivery.
func (r *Runner) Notify(user *registry.User, matches []*matching.Match) string {
	if len(matches) == 0 {
		return "no matching jobs found"
	}

	msg := &resend.Message{
		From:    r.from,
		To:      user.Email,
		Subject: subject,
		Text:    renderBody(user, matches),
	}

	if err := r.sender.Send(msg); err != nil {
		return fmt.Sprintf("sending notification failed: %v", err)
	}

	r.registry.MarkNotified(user)

	return fmt.Sprintf("notification sent to %s", user.Email)
}

func renderBody(user *registry.User, matches []*matching.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nHere are your personalized job matches:\n\n", user.Name)

	for _, match := range matches {
		posting := match.Posting
		fmt.Fprintf(&b, "- %s at %s\n", posting.TitleOrDefault(), posting.CompanyOrDefault())
		if area := posting.AreaString(); area != "" {
			fmt.Fprintf(&b, "  Location: %s\n", area)
		}
		fmt.Fprintf(&b, "  Match Score: %.1f%%\n", match.Score)
		if len(match.MatchedSkills) > 0 {
			fmt.Fprintf(&b, "  Matched Skills: %s\n", strings.Join(match.MatchedSkills, ", "))
		}
		if posting.RedirectURL != "" {
			fmt.Fprintf(&b, "  Apply here: %s\n", posting.RedirectURL)
		}
		b.WriteString("\n")
	}

	return b.String()
}
