package classify

import "strings"

// Relation labels assigned by the rule table. The spellings match the values
// persisted in the review store and on RELATED edges.
const (
	RelationHasIngredient    = "Has Ingredient"
	RelationCauses           = "Causes"
	RelationHasScent         = "Has Scent"
	RelationProvidesBenefit  = "Provides Benefit"
	RelationWorth            = "Worth"
	RelationEasyToApply      = "Easy To Apply"
	RelationLikedBy          = "Liked By"
	RelationDislikedBy       = "Disliked By"
	RelationRecommendedBy    = "Recommended By"
	RelationNotRecommendedBy = "Not Recommended By"
	RelationSuitableFor      = "Suitable For"
	RelationUsedFor          = "Used For"
	RelationEffectiveFor     = "Effective For"
	RelationLongLasting      = "Long-Lasting"
	RelationQuickResults     = "Quick Results"
	RelationBetterThan       = "Better Than"
	RelationWorseThan        = "Worse Than"
	RelationRelatedTo        = "Related To"

	// RelationCoPurchased is never produced by the rule table. It exists in
	// historical data and the co-purchase analytics query counts its edges.
	RelationCoPurchased = "Frequently Co-Purchased"
)

type relationRule struct {
	keywords []string
	label    string
}

// relationRules is evaluated strictly in order; the first rule whose keyword
// occurs in the lowercased entity2 string wins. The rule groups overlap on
// purpose: every "recommend" phrase, negated or not, contains the Liked By
// keyword "recommend", and "dislike" contains "like", so Liked By claims all
// of them and the Recommended By rule is fully shadowed. Disliked By stays
// reachable only through "hate" and Not Recommended By only through "avoid".
// That shadowing matches the historical behavior and must not be reordered.
var relationRules = []relationRule{
	{keywords: []string{"ingredient", "charcoal", "magnesium"}, label: RelationHasIngredient},
	{keywords: []string{"irritation", "rash", "sensitivity"}, label: RelationCauses},
	{keywords: []string{"scent", "fragrance", "smell"}, label: RelationHasScent},
	{keywords: []string{"absorb", "protection", "long-lasting"}, label: RelationProvidesBenefit},
	{keywords: []string{"price", "expensive", "cost"}, label: RelationWorth},
	{keywords: []string{"application", "apply"}, label: RelationEasyToApply},
	{keywords: []string{"like", "love", "recommend"}, label: RelationLikedBy},
	{keywords: []string{"dislike", "hate", "not recommend"}, label: RelationDislikedBy},
	{keywords: []string{"recommend"}, label: RelationRecommendedBy},
	{keywords: []string{"not recommend", "avoid"}, label: RelationNotRecommendedBy},
	{keywords: []string{"sensitive skin", "dry skin", "oily skin"}, label: RelationSuitableFor},
	{keywords: []string{"daily use", "travel"}, label: RelationUsedFor},
	{keywords: []string{"effective", "works"}, label: RelationEffectiveFor},
	{keywords: []string{"lasts", "durable"}, label: RelationLongLasting},
	{keywords: []string{"quick results", "immediate"}, label: RelationQuickResults},
	{keywords: []string{"better than", "superior to"}, label: RelationBetterThan},
	{keywords: []string{"worse than", "inferior to"}, label: RelationWorseThan},
}

// Relation maps the second entity of an extracted pair to a relation label.
// Matching is substring containment against the lowercased input; rule order
// decides ties, not keyword position within the text.
func Relation(entity2 string) string {
	lowered := strings.ToLower(entity2)
	for _, rule := range relationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowered, kw) {
				return rule.label
			}
		}
	}
	return RelationRelatedTo
}
