// Package matching scores postings against a user profile and ranks the
// qualifying ones.
package matching

import (
	"sort"
	"strings"

	"github.com/okliver/jobwatch/internal/adzuna"
	"github.com/okliver/jobwatch/internal/registry"
)

const (
	// Threshold is the score a posting must strictly exceed to qualify.
	Threshold = 60
	// MaxMatches is the per-user cap for a single matching run.
	MaxMatches = 5

	titleWeight    = 0.3
	locationWeight = 0.2
	skillPoints    = 10
	skillCap       = 50
	salaryBonus    = 10
)

// Match ties a posting to its score and the skills that contributed to it.
// Matches are ephemeral: produced per run, never stored on the profile.
type Match struct {
	Posting       *adzuna.Posting
	Score         float64
	MatchedSkills []string
}

// Score computes the weighted match score of a posting for one of the
// user's roles. A component whose posting field is absent contributes 0.
func Score(user *registry.User, role string, posting *adzuna.Posting) (float64, []string) {
	var score float64
	var matched []string

	if posting.Title != "" {
		score += tokenSetRatio(role, posting.Title) * titleWeight
	}

	if posting.Description != "" {
		description := strings.ToLower(posting.Description)
		var skillScore float64
		for _, skill := range user.Skills {
			if strings.Contains(description, skill) {
				skillScore += skillPoints
				matched = append(matched, skill)
			}
		}
		if skillScore > skillCap {
			skillScore = skillCap
		}
		score += skillScore
	}

	if area := posting.AreaString(); area != "" {
		score += tokenSetRatio(user.Location, area) * locationWeight
	}

	if posting.SalaryMin != nil && *posting.SalaryMin >= float64(user.MinSalary) {
		score += salaryBonus
	}

	return score, matched
}

// MatchPostings scores every posting for the given role and returns the
// ones strictly above Threshold, preserving the listing order.
func MatchPostings(user *registry.User, role string, postings []*adzuna.Posting) []*Match {
	var matches []*Match
	for _, posting := range postings {
		score, skills := Score(user, role, posting)
		if score > Threshold {
			matches = append(matches, &Match{
				Posting:       posting,
				Score:         score,
				MatchedSkills: skills,
			})
		}
	}
	return matches
}

// Rank sorts matches by descending score, ties keeping their original
// order, and truncates to MaxMatches.
func Rank(matches []*Match) []*Match {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxMatches {
		matches = matches[:MaxMatches]
	}
	return matches
}
