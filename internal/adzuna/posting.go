package adzuna

import (
	"fmt"
	"strings"
)

const descriptionPreviewRunes = 150

// SearchResult is a single page of postings as returned by the search
// endpoint. A missing results key decodes to a nil slice and means
// "no results".
type SearchResult struct {
	Postings []*Posting `json:"results"`
	Count    int        `json:"count"`
}

// Posting is one job listing. Every field is optional upstream; empty
// strings, nil slices and nil salary bounds mean the field was absent.
type Posting struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title,omitempty"`
	Company struct {
		DisplayName string `json:"display_name,omitempty"`
	} `json:"company,omitempty"`
	Location struct {
		Area        []string `json:"area,omitempty"`
		DisplayName string   `json:"display_name,omitempty"`
	} `json:"location,omitempty"`
	SalaryMin         *float64 `json:"salary_min,omitempty"`
	SalaryMax         *float64 `json:"salary_max,omitempty"`
	SalaryIsPredicted string   `json:"salary_is_predicted,omitempty"`
	Description       string   `json:"description,omitempty"`
	RedirectURL       string   `json:"redirect_url,omitempty"`
	Created           string   `json:"created,omitempty"`
}

func (r *SearchResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Postings)
}

// TitleOrDefault returns the posting title or a placeholder for untitled
// postings.
func (p *Posting) TitleOrDefault() string {
	if p.Title == "" {
		return "Untitled Position"
	}
	return p.Title
}

func (p *Posting) CompanyOrDefault() string {
	if p.Company.DisplayName == "" {
		return "Unknown Company"
	}
	return p.Company.DisplayName
}

// AreaString joins the location area list into a display string. Empty
// when the posting carries no area.
func (p *Posting) AreaString() string {
	return strings.Join(p.Location.Area, ", ")
}

// FormatTop renders up to limit postings as a plain-text listing for the
// manual search surfaces.
func (r *SearchResult) FormatTop(limit int) string {
	if r.Len() == 0 {
		return "No jobs found for the given criteria."
	}

	postings := r.Postings
	if len(postings) > limit {
		postings = postings[:limit]
	}

	var b strings.Builder
	for _, p := range postings {
		fmt.Fprintf(&b, "%s at %s\n", p.TitleOrDefault(), p.CompanyOrDefault())
		if area := p.AreaString(); area != "" {
			fmt.Fprintf(&b, "Location: %s\n", area)
		}
		if p.SalaryMin != nil && p.SalaryMax != nil {
			fmt.Fprintf(&b, "Salary: %.0f - %.0f\n", *p.SalaryMin, *p.SalaryMax)
		}
		if p.RedirectURL != "" {
			fmt.Fprintf(&b, "Apply: %s\n", p.RedirectURL)
		}
		if p.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", previewDescription(p.Description))
		}
		b.WriteString("---\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func previewDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionPreviewRunes {
		return s
	}
	return string(runes[:descriptionPreviewRunes]) + "..."
}
