package tool

import "strings"

// BriefClass is the outcome of classifying a campaign brief. The class picks
// which creative bundle the generator returns.
type BriefClass string

const (
	// BriefRestricted targets at least one mainstream platform that bans
	// cannabis advertising, so the bundle leans on wellness framing.
	BriefRestricted BriefClass = "restricted"
	// BriefOpen targets cannabis-friendly channels where direct product
	// marketing is permitted.
	BriefOpen BriefClass = "open"
)

var restrictedPlatformMarkers = []string{"facebook", "instagram", "google"}

// ClassifyBrief decides which creative bundle applies to a brief.
func ClassifyBrief(brief string) BriefClass {
	briefLower := strings.ToLower(brief)
	for _, marker := range restrictedPlatformMarkers {
		if strings.Contains(briefLower, marker) {
			return BriefRestricted
		}
	}
	return BriefOpen
}

type creativeStrategy struct {
	PrimaryApproach    string   `json:"primary_approach"`
	MessagingFramework []string `json:"messaging_framework"`
	VisualStrategy     []string `json:"visual_strategy"`
	ContentThemes      []string `json:"content_themes"`
	ComplianceNotes    []string `json:"compliance_notes"`
}

func generateCreativeStrategy(brief string) string {
	var strategy creativeStrategy

	switch ClassifyBrief(brief) {
	case BriefRestricted:
		strategy = creativeStrategy{
			PrimaryApproach: "Wellness and Lifestyle Focus",
			MessagingFramework: []string{
				"Plant-based wellness solutions",
				"Natural health and relaxation",
				"Lifestyle enhancement and balance",
				"Educational content about botanicals",
			},
			VisualStrategy: []string{
				"Nature and botanical imagery",
				"Wellness lifestyle photography",
				"Clean, minimalist design",
				"Avoid cannabis leaf imagery",
			},
			ContentThemes: []string{
				"Wellness Wednesday tips",
				"Natural remedies education",
				"Mindfulness and relaxation",
				"Plant-based lifestyle content",
			},
			ComplianceNotes: []string{
				"Focus on wellness benefits without cannabis mention",
				"Use educational angle for content",
				"Emphasize natural and organic aspects",
			},
		}
	default:
		strategy = creativeStrategy{
			PrimaryApproach: "Direct Cannabis Marketing",
			MessagingFramework: []string{
				"Product quality and craftsmanship",
				"Strain-specific benefits and effects",
				"Expert cultivation and processing",
				"Community and culture celebration",
			},
			VisualStrategy: []string{
				"High-quality product photography",
				"Behind-the-scenes cultivation",
				"Professional dispensary imagery",
				"Cannabis culture celebration",
			},
			ContentThemes: []string{
				"Strain spotlights and education",
				"Cultivation process transparency",
				"Customer testimonials and reviews",
				"Industry news and trends",
			},
			ComplianceNotes: []string{
				"Ensure age-gating on all content",
				"Include required legal disclaimers",
				"Verify licensing compliance",
			},
		}
	}

	return marshalOutput(strategy)
}
