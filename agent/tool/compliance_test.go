package tool

import (
	"encoding/json"
	"strings"
	"testing"
)

func decodeCompliance(t *testing.T, output string) complianceReport {
	t.Helper()
	var report complianceReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	return report
}

func TestComplianceMalformedInput(t *testing.T) {
	t.Parallel()

	output := checkPlatformCompliance("just some content without a separator")
	if output != "Please format as 'platform:content'" {
		t.Fatalf("unexpected output: %q", output)
	}
}

func TestComplianceUnknownPlatform(t *testing.T) {
	t.Parallel()

	output := checkPlatformCompliance("tiktok: cool video ad")
	if !strings.Contains(output, "Platform 'tiktok' not recognized") {
		t.Fatalf("expected unknown-platform guidance, got %q", output)
	}
	for _, name := range []string{"facebook", "instagram", "google_ads", "weedmaps", "leafly"} {
		if !strings.Contains(output, name) {
			t.Fatalf("expected available platform %s in output: %q", name, output)
		}
	}
}

func TestComplianceFacebookViolations(t *testing.T) {
	t.Parallel()

	report := decodeCompliance(t, checkPlatformCompliance("facebook: Buy our THC gummies and CBD oil made from hemp"))
	if report.Platform != "facebook" {
		t.Fatalf("expected platform facebook, got %q", report.Platform)
	}
	if report.Allowed {
		t.Fatal("facebook must be marked not allowed")
	}
	want := []string{
		"Contains cannabis-related content",
		"Contains CBD references",
		"Contains hemp references",
	}
	if len(report.Violations) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), report.Violations)
	}
	for i, v := range want {
		if report.Violations[i] != v {
			t.Fatalf("violation %d = %q, want %q", i, report.Violations[i], v)
		}
	}
	if len(report.Recommendations) == 0 {
		t.Fatal("violations must come with workaround recommendations")
	}
	if report.Recommendations[0] != "Try wellness_angle approach" {
		t.Fatalf("unexpected first recommendation: %q", report.Recommendations[0])
	}
}

func TestComplianceCaseInsensitiveScan(t *testing.T) {
	t.Parallel()

	report := decodeCompliance(t, checkPlatformCompliance("FaceBook: Premium Cannabis delivery"))
	if len(report.Violations) != 1 {
		t.Fatalf("expected 1 violation, got %v", report.Violations)
	}
}

func TestComplianceCleanContentOnRestrictedPlatform(t *testing.T) {
	t.Parallel()

	report := decodeCompliance(t, checkPlatformCompliance("instagram: plant-based wellness tips for better sleep"))
	if len(report.Violations) != 0 {
		t.Fatalf("expected no violations, got %v", report.Violations)
	}
	if len(report.Recommendations) != 0 {
		t.Fatalf("no violations must mean no recommendations, got %v", report.Recommendations)
	}
	if len(report.CreativeStrategies) == 0 {
		t.Fatal("creative strategies must always be suggested")
	}
}

func TestComplianceAllowedPlatform(t *testing.T) {
	t.Parallel()

	report := decodeCompliance(t, checkPlatformCompliance("weedmaps: Premium craft cannabis flower, 20% off"))
	if !report.Allowed {
		t.Fatal("weedmaps must be marked allowed")
	}
	if len(report.Violations) != 0 {
		t.Fatalf("industry marketplaces have no banned-term scan, got %v", report.Violations)
	}
	if len(report.BestPractices) == 0 {
		t.Fatal("expected best practices for allowed platform")
	}
}

func TestComplianceContentWithColons(t *testing.T) {
	t.Parallel()

	report := decodeCompliance(t, checkPlatformCompliance("leafly: Strain review: Blue Dream, rating: 5 stars"))
	if report.Platform != "leafly" {
		t.Fatalf("expected platform leafly, got %q", report.Platform)
	}
}
