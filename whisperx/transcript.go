package whisperx

import "strings"

// SplitSentences breaks a plain transcription into displayable sentences by
// splitting on ". " (period plus space). Every segment except the last gets
// its trailing period back; the last segment keeps whatever punctuation the
// original text ended with. Empty segments are dropped. Returns nil for
// blank input.
//
// This is a display heuristic, not real sentence detection: abbreviations
// and decimal numbers will split too, exactly as the chat rendering expects.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	parts := strings.Split(text, ". ")
	sentences := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i < len(parts)-1 && !strings.HasSuffix(part, ".") {
			part += "."
		}
		sentences = append(sentences, part)
	}
	return sentences
}

// Words splits a sentence into the tokens revealed one at a time by the
// chat animation.
func Words(sentence string) []string {
	return strings.Fields(sentence)
}
