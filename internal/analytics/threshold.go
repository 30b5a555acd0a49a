package analytics

import (
	"strings"

	"edu_analytics_backend/internal/model"
)

// subjectAdjustment 学科类型对阈值的修正幅度
const subjectAdjustment = 5.0

var baseThresholds = map[model.Tier]model.Thresholds{
	model.TierBeginner:     {WeakAreaThreshold: 60, ImprovementThreshold: 10, MasteryThreshold: 80},
	model.TierIntermediate: {WeakAreaThreshold: 70, ImprovementThreshold: 15, MasteryThreshold: 85},
	model.TierAdvanced:     {WeakAreaThreshold: 80, ImprovementThreshold: 20, MasteryThreshold: 90},
}

// DefaultQuantitativeSubjects and DefaultLanguageSubjects are used when the
// configuration does not provide subject tags.
var (
	DefaultQuantitativeSubjects = []string{
		"mathématiques", "maths", "math", "mathematics",
		"physique", "physics", "chimie", "chemistry",
		"informatique", "computer science", "statistiques",
	}
	DefaultLanguageSubjects = []string{
		"français", "francais", "french", "anglais", "english",
		"espagnol", "spanish", "allemand", "littérature", "literature",
	}
)

// ThresholdTable is an immutable lookup of per-tier, per-subject thresholds.
type ThresholdTable struct {
	quantitative map[string]struct{}
	language     map[string]struct{}
}

// NewThresholdTable builds a table from subject tag lists. Empty lists fall
// back to the defaults.
func NewThresholdTable(quantitative, language []string) *ThresholdTable {
	if len(quantitative) == 0 {
		quantitative = DefaultQuantitativeSubjects
	}
	if len(language) == 0 {
		language = DefaultLanguageSubjects
	}
	return &ThresholdTable{
		quantitative: toSet(quantitative),
		language:     toSet(language),
	}
}

// Lookup returns the thresholds for a tier and subject. Unknown tiers resolve
// to intermediate.
func (t *ThresholdTable) Lookup(tier model.Tier, subject string) model.Thresholds {
	th, ok := baseThresholds[tier]
	if !ok {
		th = baseThresholds[model.TierIntermediate]
	}

	key := normalizeSubject(subject)
	if _, ok := t.quantitative[key]; ok {
		th.WeakAreaThreshold += subjectAdjustment
		th.MasteryThreshold -= subjectAdjustment
	} else if _, ok := t.language[key]; ok {
		th.WeakAreaThreshold -= subjectAdjustment
		th.MasteryThreshold += subjectAdjustment
	}
	return th
}

// ParseTier maps a free-form tier string onto a known tier.
func ParseTier(s string) model.Tier {
	switch model.Tier(strings.ToLower(strings.TrimSpace(s))) {
	case model.TierBeginner:
		return model.TierBeginner
	case model.TierAdvanced:
		return model.TierAdvanced
	default:
		return model.TierIntermediate
	}
}

func toSet(subjects []string) map[string]struct{} {
	set := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		set[normalizeSubject(s)] = struct{}{}
	}
	return set
}

func normalizeSubject(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
