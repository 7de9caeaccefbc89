package llm

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
		wantErr  bool
	}{
		{"bare object", `{"intent": "top_customers"}`, `{"intent": "top_customers"}`, false},
		{"markdown fence", "```json\n{\"intent\": \"monthly_trend\"}\n```", `{"intent": "monthly_trend"}`, false},
		{"reasoning prefix", "<think>the user wants {totals}</think>\n{\"intent\": \"sales_last_month\"}", `{"intent": "sales_last_month"}`, false},
		{"prose around", `Sure! Here you go: {"intent": "fallback", "note": "a } in a string"} Thanks.`, `{"intent": "fallback", "note": "a } in a string"}`, false},
		{"skips invalid braces", `{not json} then {"intent": "fallback"}`, `{"intent": "fallback"}`, false},
		{"nested", `{"a": {"b": 1}}`, `{"a": {"b": 1}}`, false},
		{"no json", "I cannot help with that.", "", true},
		{"unbalanced", `{"intent": "x"`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractJSON(tt.response)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseJSONResponse(t *testing.T) {
	type reply struct {
		Intent string `json:"intent"`
	}

	got, err := ParseJSONResponse[reply]("answer: {\"intent\": \"revenue_by_product\"}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Intent != "revenue_by_product" {
		t.Errorf("expected revenue_by_product, got %q", got.Intent)
	}

	if _, err := ParseJSONResponse[reply]("no json here"); err == nil {
		t.Error("expected error for missing JSON")
	}
}
