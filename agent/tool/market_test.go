package tool

import (
	"encoding/json"
	"testing"
)

func decodeMarket(t *testing.T, output string) marketReport {
	t.Helper()
	var report marketReport
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, output)
	}
	return report
}

func TestMarketBaseReport(t *testing.T) {
	t.Parallel()

	report := decodeMarket(t, analyzeMarket("what is the market size?"))
	if report.MarketSize["us_legal_market_2024"] != "$33.6B" {
		t.Fatalf("unexpected market size: %v", report.MarketSize)
	}
	if got := report.PlatformCPC["weedmaps"].AvgCPC; got != "$2.50" {
		t.Fatalf("unexpected weedmaps cpc: %q", got)
	}
	if len(report.TrendingProducts) != 4 {
		t.Fatalf("expected 4 trending products, got %v", report.TrendingProducts)
	}
	if report.CostInsights != nil {
		t.Fatal("cost insights must be gated on cost/cpc queries")
	}
	if report.AudienceInsights != nil {
		t.Fatal("audience insights must be gated on demographic/audience queries")
	}
}

func TestMarketCostInsightsGate(t *testing.T) {
	t.Parallel()

	report := decodeMarket(t, analyzeMarket("compare CPC across platforms"))
	if report.CostInsights == nil {
		t.Fatal("expected cost insights for cpc query")
	}
	if report.CostInsights["lowest_cpc_platform"] != "Facebook (wellness angle)" {
		t.Fatalf("unexpected cost insights: %v", report.CostInsights)
	}
	if report.AudienceInsights != nil {
		t.Fatal("audience insights must stay absent")
	}
}

func TestMarketAudienceInsightsGate(t *testing.T) {
	t.Parallel()

	report := decodeMarket(t, analyzeMarket("what audience should we target?"))
	if report.AudienceInsights == nil {
		t.Fatal("expected audience insights for audience query")
	}
	if report.CostInsights != nil {
		t.Fatal("cost insights must stay absent")
	}
}

func TestMarketBothGates(t *testing.T) {
	t.Parallel()

	report := decodeMarket(t, analyzeMarket("demographic breakdown and cost per click"))
	if report.CostInsights == nil || report.AudienceInsights == nil {
		t.Fatal("expected both gated sections")
	}
}
