package pipeline

import (
	"context"
	"testing"
)

func testMappings() []TokenMapping {
	return []TokenMapping{
		{Token: "name", Replacement: "{{first_name}}"},
		{Token: "Brand", Replacement: "{{merchant_name}}"},
		{Token: "brand", Replacement: "{{merchant_name}}"},
		{Token: "brand’s", Replacement: "{{merchant_name}}'s"},
		{Token: "first name", Replacement: "{{first_name}}"},
	}
}

func TestSubstitutePlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single token",
			input:    "Hi `name`, welcome!",
			expected: "Hi {{first_name}}, welcome!",
		},
		{
			name:     "token repeated",
			input:    "`name` and `name` again",
			expected: "{{first_name}} and {{first_name}} again",
		},
		{
			name:     "case sensitive tokens",
			input:    "`Brand` is not `brand`",
			expected: "{{merchant_name}} is not {{merchant_name}}",
		},
		{
			name:     "unicode apostrophe token",
			input:    "grow `brand’s` sales",
			expected: "grow {{merchant_name}}'s sales",
		},
		{
			name:     "token containing a space",
			input:    "Hey `first name`!",
			expected: "Hey {{first_name}}!",
		},
		{
			name:     "unrecognized token keeps backticks",
			input:    "use `coupon` today",
			expected: "use `coupon` today",
		},
		{
			name:     "no backticks",
			input:    "plain text with name in it",
			expected: "plain text with name in it",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "unmatched backtick left alone",
			input:    "stray ` backtick",
			expected: "stray ` backtick",
		},
	}

	s := NewTokenSubstitution(testMappings())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.SubstitutePlaceholders(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("SubstitutePlaceholders(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSubstitutePlaceholders_SequentialOrder(t *testing.T) {
	// Mappings apply in table order, each over the output of the previous
	// one. A replacement that introduces a later token gets rewritten again.
	s := NewTokenSubstitution([]TokenMapping{
		{Token: "greeting", Replacement: "hello `name`"},
		{Token: "name", Replacement: "{{first_name}}"},
	})

	got := s.SubstitutePlaceholders(context.Background(), "`greeting`!")
	want := "hello {{first_name}}!"
	if got != want {
		t.Errorf("SubstitutePlaceholders() = %q, want %q", got, want)
	}
}

func TestSubstitutePlaceholders_EmptyTokenIgnored(t *testing.T) {
	s := NewTokenSubstitution([]TokenMapping{
		{Token: "", Replacement: "never"},
		{Token: "name", Replacement: "{{first_name}}"},
	})

	got := s.SubstitutePlaceholders(context.Background(), "`` and `name`")
	want := "`` and {{first_name}}"
	if got != want {
		t.Errorf("SubstitutePlaceholders() = %q, want %q", got, want)
	}
}

func TestSubstitutePlaceholders_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewTokenSubstitution(testMappings())
	input := "Hi `name`"
	if got := s.SubstitutePlaceholders(ctx, input); got != input {
		t.Errorf("SubstitutePlaceholders() with canceled context = %q, want input unchanged %q", got, input)
	}
}
