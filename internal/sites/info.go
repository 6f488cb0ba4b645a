// Package sites assembles the information shown for a recognized site, preferring
// freshly generated text and falling back to the static catalog.
package sites

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates neither generation nor the catalog produced any content.
var ErrNotFound = errors.New("site info not found")

// Info is the content served for one site.
type Info struct {
	History  string `json:"history"`
	Overview string `json:"overview"`
	Facts    string `json:"facts"`
	Video    string `json:"video"`
}

func (i *Info) empty() bool {
	return i.History == "" && i.Overview == "" && i.Facts == "" && i.Video == ""
}

// Section names a generated portion of Info.
type Section string

const (
	History  Section = "history"
	Overview Section = "overview"
	Facts    Section = "facts"
)

var sections = [...]Section{History, Overview, Facts}

// Prompt returns the generation prompt for section of site.
func Prompt(section Section, site string) string {
	switch section {
	case History:
		return fmt.Sprintf("Provide a concise, engaging historical background for %s in 120-180 words. Avoid markdown headings.", site)
	case Overview:
		return fmt.Sprintf("Provide a visitor-friendly overview of %s in 80-120 words, covering where it is and why it matters.", site)
	case Facts:
		return fmt.Sprintf("List 5-7 interesting facts about %s. Return as a semicolon-separated list with no numbering.", site)
	default:
		return ""
	}
}
