package tool

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

type platformRule struct {
	Allowed            bool
	Restrictions       []string
	Workarounds        []string
	BestPractices      []string
	CreativeStrategies []string
}

// Advertising policy table per platform. Mainstream ad networks prohibit
// cannabis content outright; the industry marketplaces allow it under
// operator conditions.
var platformRules = map[string]platformRule{
	"facebook": {
		Allowed:            false,
		Restrictions:       []string{"no_cannabis_content", "no_cbd_ads", "no_hemp_mention"},
		Workarounds:        []string{"wellness_angle", "lifestyle_focus", "educational_content"},
		CreativeStrategies: []string{"plant_based_wellness", "natural_remedies", "health_and_wellness"},
	},
	"instagram": {
		Allowed:            false,
		Restrictions:       []string{"no_cannabis_imagery", "no_product_promotion", "no_dispensary_ads"},
		Workarounds:        []string{"brand_awareness", "educational_posts", "community_building"},
		CreativeStrategies: []string{"lifestyle_branding", "wellness_education", "brand_storytelling"},
	},
	"google_ads": {
		Allowed:            false,
		Restrictions:       []string{"no_cannabis_keywords", "no_cbd_products", "no_dispensary_promotion"},
		Workarounds:        []string{"wellness_keywords", "educational_content", "brand_terms"},
		CreativeStrategies: []string{"health_and_wellness", "natural_products", "educational_focus"},
	},
	"weedmaps": {
		Allowed:            true,
		Restrictions:       []string{"age_verification", "licensed_operators_only", "compliant_imagery"},
		BestPractices:      []string{"high_quality_photos", "detailed_descriptions", "customer_reviews"},
		CreativeStrategies: []string{"product_showcase", "strain_education", "deals_and_promotions"},
	},
	"leafly": {
		Allowed:            true,
		Restrictions:       []string{"verified_dispensaries", "accurate_product_info", "professional_content"},
		BestPractices:      []string{"educational_content", "strain_reviews", "dispensary_profiles"},
		CreativeStrategies: []string{"expert_content", "strain_spotlights", "educational_series"},
	},
}

type complianceReport struct {
	Platform           string   `json:"platform"`
	Allowed            bool     `json:"allowed"`
	Violations         []string `json:"violations"`
	Recommendations    []string `json:"recommendations,omitempty"`
	BestPractices      []string `json:"best_practices,omitempty"`
	CreativeStrategies []string `json:"creative_strategies,omitempty"`
}

// checkPlatformCompliance expects "platform:content" and scans the content
// against the platform's restriction list. Malformed input and unknown
// platforms produce guidance text, never an error.
func checkPlatformCompliance(input string) string {
	parts := strings.SplitN(input, ":", 2)
	if len(parts) != 2 {
		return "Please format as 'platform:content'"
	}

	platform := strings.ToLower(strings.TrimSpace(parts[0]))
	content := strings.TrimSpace(parts[1])

	rules, ok := platformRules[platform]
	if !ok {
		return fmt.Sprintf("Platform '%s' not recognized. Available: %s", platform, strings.Join(knownPlatforms(), ", "))
	}

	report := complianceReport{
		Platform:           platform,
		Allowed:            rules.Allowed,
		Violations:         scanViolations(rules.Restrictions, content),
		BestPractices:      rules.BestPractices,
		CreativeStrategies: rules.CreativeStrategies,
	}

	if len(report.Violations) > 0 {
		for _, workaround := range rules.Workarounds {
			report.Recommendations = append(report.Recommendations, fmt.Sprintf("Try %s approach", workaround))
		}
	}

	return marshalOutput(report)
}

func scanViolations(restrictions []string, content string) []string {
	contentLower := strings.ToLower(content)
	violations := []string{}

	for _, restriction := range restrictions {
		switch restriction {
		case "no_cannabis_content":
			for _, term := range []string{"cannabis", "marijuana", "weed", "thc"} {
				if strings.Contains(contentLower, term) {
					violations = append(violations, "Contains cannabis-related content")
					break
				}
			}
		case "no_cbd_ads":
			if strings.Contains(contentLower, "cbd") {
				violations = append(violations, "Contains CBD references")
			}
		case "no_hemp_mention":
			if strings.Contains(contentLower, "hemp") {
				violations = append(violations, "Contains hemp references")
			}
		}
	}
	return violations
}

func knownPlatforms() []string {
	names := make([]string, 0, len(platformRules))
	for name := range platformRules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func marshalOutput(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("output encoding error: %v", err)
	}
	return string(raw)
}
