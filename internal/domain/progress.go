package domain

import (
	"math"
	"sort"
	"strings"
)

// Derived progress state is always recomputed from a ledger snapshot.
// Nothing in this file persists anything.

// SignedOnly filters a snapshot down to completed signatures.
func SignedOnly(signoffs []SignOff) []SignOff {
	out := make([]SignOff, 0, len(signoffs))
	for _, s := range signoffs {
		if s.Signed() {
			out = append(out, s)
		}
	}
	return out
}

// CompletionPercent computes overall booklet completion for a set of
// signed records, rounded to the nearest integer.
func CompletionPercent(signed []SignOff) int {
	total := TotalRequiredSignoffs()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(len(signed)) / float64(total) * 100))
}

// SkillComplete reports whether a skill holds its full signature count:
// three signed records, one per role, from three distinct advisors.
func SkillComplete(signoffs []SignOff, skill string) bool {
	roles := map[SignOffRole]bool{}
	advisors := map[string]bool{}
	for _, s := range signoffs {
		if s.Skill != skill || !s.Signed() {
			continue
		}
		roles[s.Role] = true
		advisors[strings.ToLower(s.AdvisorName)] = true
	}
	return len(roles) == SignaturesPerSkill && len(advisors) == SignaturesPerSkill
}

// ALSUnlocked reports whether the explorer behind the snapshot has
// earned access to ALS sections: every non-ALS skill fully signed.
func ALSUnlocked(signoffs []SignOff) bool {
	signed := 0
	for _, s := range signoffs {
		if !s.Signed() {
			continue
		}
		if sec, ok := SectionByTitle(s.Section); ok && !sec.ALS {
			signed++
		}
	}
	return signed >= NonALSRequiredSignoffs()
}

// SectionProgress summarizes one section of an explorer's booklet.
type SectionProgress struct {
	Title    string
	ALS      bool
	Signed   int
	Required int
	Percent  int
}

// SectionBreakdown computes per-section signed counts for a snapshot.
func SectionBreakdown(signed []SignOff) []SectionProgress {
	bySection := map[string]int{}
	for _, s := range signed {
		if s.Signed() {
			bySection[s.Section]++
		}
	}

	out := make([]SectionProgress, 0, len(TrainingSections))
	for _, sec := range TrainingSections {
		required := len(sec.Skills) * SignaturesPerSkill
		count := bySection[sec.Title]
		pct := 0
		if required > 0 {
			pct = int(math.Round(float64(count) / float64(required) * 100))
		}
		out = append(out, SectionProgress{
			Title:    sec.Title,
			ALS:      sec.ALS,
			Signed:   count,
			Required: required,
			Percent:  pct,
		})
	}
	return out
}

// AdvisorSummary aggregates one advisor's signed activity.
type AdvisorSummary struct {
	Name     string
	Count    int
	LastDate string
}

// AdvisorSummaries groups signed records by advisor name,
// case-insensitively, keeping the first-seen spelling for display. The
// last date is the lexicographic maximum, which is correct for
// uniformly formatted ISO dates. Results are sorted by count
// descending, then name.
func AdvisorSummaries(signoffs []SignOff) []AdvisorSummary {
	type entry struct {
		display  string
		count    int
		lastDate string
	}
	byName := map[string]*entry{}
	order := []string{}

	for _, s := range signoffs {
		if !s.Signed() {
			continue
		}
		key := strings.ToLower(s.AdvisorName)
		e, ok := byName[key]
		if !ok {
			e = &entry{display: s.AdvisorName, lastDate: s.Date}
			byName[key] = e
			order = append(order, key)
		}
		e.count++
		if s.Date > e.lastDate {
			e.lastDate = s.Date
		}
	}

	out := make([]AdvisorSummary, 0, len(order))
	for _, key := range order {
		e := byName[key]
		out = append(out, AdvisorSummary{Name: e.display, Count: e.count, LastDate: e.lastDate})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AdvisorsUsedOnSkill lists the lowercased advisor names already
// holding any record (requested or signed) on a skill. A single person
// may never fill two slots on the same skill.
func AdvisorsUsedOnSkill(signoffs []SignOff, skill string) map[string]bool {
	used := map[string]bool{}
	for _, s := range signoffs {
		if s.Skill == skill {
			used[strings.ToLower(s.AdvisorName)] = true
		}
	}
	return used
}
