package matching

import "strings"

// SkillSet is a case-insensitive set of skill names. Normalization (case fold
// and trim) happens once at construction so comparisons never re-normalize.
type SkillSet map[string]struct{}

func NewSkillSet(skills []string) SkillSet {
	set := make(SkillSet, len(skills))
	for _, s := range skills {
		n := NormalizeSkill(s)
		if n == "" {
			continue
		}
		set[n] = struct{}{}
	}
	return set
}

func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s SkillSet) Len() int {
	return len(s)
}

func (s SkillSet) Contains(skill string) bool {
	_, ok := s[NormalizeSkill(skill)]
	return ok
}

// IntersectCount returns the number of skills present in both sets.
func (s SkillSet) IntersectCount(other SkillSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for skill := range small {
		if _, ok := large[skill]; ok {
			count++
		}
	}
	return count
}
