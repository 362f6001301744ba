package whisperx

import (
	"reflect"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trailing sentence without period",
			input: "Hello. World. Bye",
			want:  []string{"Hello.", "World.", "Bye"},
		},
		{
			name:  "all sentences terminated",
			input: "Hello. World.",
			want:  []string{"Hello.", "World."},
		},
		{
			name:  "single sentence",
			input: "Olá mundo.",
			want:  []string{"Olá mundo."},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "   \n\t ",
			want:  nil,
		},
		{
			name:  "empty segments dropped",
			input: "Hello. . World",
			want:  []string{"Hello.", "World"},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  A. B.  ",
			want:  []string{"A.", "B."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := Words("Olá  mundo cruel.")
	want := []string{"Olá", "mundo", "cruel."}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}

	if len(Words("")) != 0 {
		t.Error("expected no words for empty sentence")
	}
}
