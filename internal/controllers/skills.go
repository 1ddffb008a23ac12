package controllers

import (
	"sort"
	"strings"

	"staffing-api/internal/models"
)

const (
	maxSkillMatches = 50
	topSkillsLimit  = 10
)

// SkillMatchScore is the number of case-insensitive occurrences of keyword in
// skills, measured as removed length over keyword length.
func SkillMatchScore(skills, keyword string) float64 {
	if keyword == "" {
		return 0
	}
	stripped := strings.ReplaceAll(strings.ToLower(skills), strings.ToLower(keyword), "")
	return float64(len(skills)-len(stripped)) / float64(len(keyword))
}

// RankSkillMatches scores every match against keyword and orders them by score,
// then experience, both descending. At most 50 matches are kept.
func RankSkillMatches(matches []models.SkillMatch, keyword string) []models.SkillMatch {
	for i := range matches {
		skills := ""
		if matches[i].Skills != nil {
			skills = *matches[i].Skills
		}
		matches[i].SkillMatchScore = SkillMatchScore(skills, keyword)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SkillMatchScore != matches[j].SkillMatchScore {
			return matches[i].SkillMatchScore > matches[j].SkillMatchScore
		}
		return experience(matches[i].ExperienceYears) > experience(matches[j].ExperienceYears)
	})

	if len(matches) > maxSkillMatches {
		matches = matches[:maxSkillMatches]
	}
	return matches
}

func experience(v *float64) float64 {
	if v == nil {
		return -1
	}
	return *v
}

// TallySkills splits each comma-separated skills text, counts the trimmed
// non-empty entries and returns the ten most frequent. Ties keep the order in
// which the skills were first seen.
func TallySkills(texts []string) []models.SkillCount {
	index := make(map[string]int)
	out := make([]models.SkillCount, 0)

	for _, text := range texts {
		for _, raw := range strings.Split(text, ",") {
			skill := strings.TrimSpace(raw)
			if skill == "" {
				continue
			}
			if i, ok := index[skill]; ok {
				out[i].Count++
				continue
			}
			index[skill] = len(out)
			out = append(out, models.SkillCount{Skill: skill, Count: 1})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})

	if len(out) > topSkillsLimit {
		out = out[:topSkillsLimit]
	}
	return out
}
