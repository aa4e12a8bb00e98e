package guess

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		testName  string
		guessText string
		name      string
		aliases   string
		want      bool
	}{
		{
			testName:  "first name lowercase",
			guessText: "aria",
			name:      "Aria Nightshade",
			want:      true,
		},
		{
			testName:  "last name uppercase",
			guessText: "NIGHTSHADE",
			name:      "Aria Nightshade",
			want:      true,
		},
		{
			testName:  "full name",
			guessText: "aria nightshade",
			name:      "Aria Nightshade",
			want:      true,
		},
		{
			testName:  "too short",
			guessText: "ar",
			name:      "Aria Nightshade",
			want:      false,
		},
		{
			testName:  "prefix is not whole word",
			guessText: "arian",
			name:      "Aria Nightshade",
			want:      false,
		},
		{
			testName:  "match inside longer sentence",
			guessText: "is it aria maybe",
			name:      "Aria Nightshade",
			want:      true,
		},
		{
			testName:  "unrelated text",
			guessText: "hello everyone",
			name:      "Aria Nightshade",
			want:      false,
		},
		{
			testName:  "alias match",
			guessText: "witch",
			name:      "Aria Nightshade",
			aliases:   "nightshade witch",
			want:      true,
		},
		{
			testName:  "alias second line",
			guessText: "moonblade",
			name:      "Aria Nightshade",
			aliases:   "the witch\nmoonblade",
			want:      true,
		},
		{
			testName:  "empty guess",
			guessText: "",
			name:      "Aria Nightshade",
			want:      false,
		},
		{
			testName:  "whitespace only guess",
			guessText: "   \t  ",
			name:      "Aria Nightshade",
			want:      false,
		},
		{
			testName:  "short name part never matches",
			guessText: "jo",
			name:      "Jo Baker",
			want:      false,
		},
		{
			testName:  "long part of short-named character",
			guessText: "baker",
			name:      "Jo Baker",
			want:      true,
		},
		{
			testName:  "empty name",
			guessText: "anything",
			name:      "",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			got := Matches(tt.guessText, tt.name, tt.aliases)
			if got != tt.want {
				t.Errorf("Matches(%q, %q, %q) = %v, want %v",
					tt.guessText, tt.name, tt.aliases, got, tt.want)
			}
		})
	}
}
