package models

import "testing"

func TestChartSpec_Title(t *testing.T) {
	tests := []struct {
		spec ChartSpec
		want string
	}{
		{ChartSpec{Kind: ChartTimeSeries, X: "month", Y: "monthly_sales"}, "Monthly Sales Over Time"},
		{ChartSpec{Kind: ChartBar, X: "product_name", Y: "revenue"}, "Revenue by Product Name"},
		{ChartSpec{Kind: ChartBar, X: "customer_name", Y: "TOTAL_SPENT"}, "Total Spent by Customer Name"},
		{NoChart, ""},
		{ChartSpec{}, ""},
	}

	for _, tt := range tests {
		if got := tt.spec.Title(); got != tt.want {
			t.Errorf("Title(%+v) = %q, want %q", tt.spec, got, tt.want)
		}
	}
}

func TestChartSpec_IsNone(t *testing.T) {
	if !NoChart.IsNone() || !(ChartSpec{}).IsNone() {
		t.Error("expected NoChart and zero value to be none")
	}
	if (ChartSpec{Kind: ChartBar, X: "a", Y: "b"}).IsNone() {
		t.Error("bar chart reported as none")
	}
}

func TestHumanizeColumn(t *testing.T) {
	if got := HumanizeColumn("total_spent"); got != "total spent" {
		t.Errorf("HumanizeColumn = %q", got)
	}
	if got := HumanizeTitle("__a__b"); got != "A B" {
		t.Errorf("HumanizeTitle = %q", got)
	}
}
