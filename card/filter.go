package card

import (
	"fmt"
	"strings"
)

// NSFWPolicy controls how adult-flagged cards are filtered.
type NSFWPolicy int

const (
	// NSFWAllow keeps both flagged and unflagged cards.
	NSFWAllow NSFWPolicy = iota
	// NSFWExclude drops flagged cards.
	NSFWExclude
	// NSFWOnly keeps only flagged cards.
	NSFWOnly
)

// ParseNSFWPolicy parses a policy name as used in config and CLI flags.
func ParseNSFWPolicy(s string) (NSFWPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return NSFWAllow, nil
	case "exclude":
		return NSFWExclude, nil
	case "only":
		return NSFWOnly, nil
	}
	return NSFWAllow, fmt.Errorf("unknown nsfw policy %q", s)
}

func (p NSFWPolicy) String() string {
	switch p {
	case NSFWExclude:
		return "exclude"
	case NSFWOnly:
		return "only"
	}
	return "allow"
}

// Criteria describes the active filters for a card listing.
// Zero value matches everything.
type Criteria struct {
	Tags      []string   // every tag must be present on the card
	Creator   string     // exact creator match, case-insensitive
	NSFW      NSFWPolicy // adult-content policy
	Blocklist []string   // terms that suppress matching cards
}

// Filter returns the cards matching all active criteria. The input is
// not modified and the relative order of survivors is preserved.
func Filter(cards []Card, crit Criteria) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if Matches(c, crit) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether a single card passes the criteria.
func Matches(c Card, crit Criteria) bool {
	switch crit.NSFW {
	case NSFWExclude:
		if c.NSFW {
			return false
		}
	case NSFWOnly:
		if !c.NSFW {
			return false
		}
	}

	if crit.Creator != "" && !strings.EqualFold(strings.TrimSpace(crit.Creator), c.Creator) {
		return false
	}

	for _, want := range crit.Tags {
		if !hasTag(c, want) {
			return false
		}
	}

	for _, term := range crit.Blocklist {
		if Blocked(c, term) {
			return false
		}
	}

	return true
}

// hasTag checks for a tag case-insensitively.
func hasTag(c Card, tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, t := range c.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Blocked reports whether a blocklist term hits the card's name,
// description or any tag (case-insensitive substring match).
func Blocked(c Card, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(c.Description), term) {
		return true
	}
	for _, t := range c.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}
