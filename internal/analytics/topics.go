package analytics

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultTopicLimit caps how many topics the extractor returns when the
// caller does not ask for a specific count.
const DefaultTopicLimit = 10

// faqMaxRunes is the display length FAQ suggestions are truncated to.
const faqMaxRunes = 80

var topicToken = regexp.MustCompile(`[a-z]{4,}`)

// Common words that carry no topical signal. Tokens shorter than four
// characters never make it past the tokenizer, so short stopwords are
// omitted.
var stopWords = map[string]struct{}{
	"about": {}, "after": {}, "again": {}, "also": {}, "back": {},
	"because": {}, "been": {}, "before": {}, "being": {}, "best": {},
	"cant": {}, "could": {}, "does": {}, "doing": {}, "dont": {},
	"even": {}, "every": {}, "from": {}, "getting": {}, "going": {},
	"good": {}, "great": {}, "have": {}, "hello": {}, "here": {},
	"http": {}, "https": {}, "into": {}, "just": {}, "know": {},
	"like": {}, "love": {}, "made": {}, "make": {}, "more": {},
	"much": {}, "need": {}, "only": {}, "other": {}, "over": {},
	"please": {}, "really": {}, "should": {}, "some": {}, "something": {},
	"still": {}, "than": {}, "thank": {}, "thanks": {}, "that": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "time": {}, "today": {}, "very": {},
	"want": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "will": {}, "with": {}, "would": {},
	"your": {}, "youre": {},
}

// TopTopics extracts the most frequent meaningful words across the given
// texts. Tokens are lowercased alphabetic runs of at least four characters
// with stopwords removed; the result is capitalized for display. Ties break
// alphabetically so the output is deterministic.
func TopTopics(texts []string, limit int) []string {
	if limit <= 0 {
		limit = DefaultTopicLimit
	}
	counts := make(map[string]int)
	for _, text := range texts {
		for _, tok := range topicToken.FindAllString(strings.ToLower(text), -1) {
			if _, skip := stopWords[tok]; skip {
				continue
			}
			counts[tok]++
		}
	}

	tokens := make([]string, 0, len(counts))
	for tok := range counts {
		tokens = append(tokens, tok)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	if len(tokens) > limit {
		tokens = tokens[:limit]
	}
	topics := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		topics = append(topics, strings.ToUpper(tok[:1])+tok[1:])
	}
	return topics
}

// SuggestedFAQs returns the text of up to limit messages categorized as
// questions, truncated for display.
func SuggestedFAQs(messages []TimedRecord, limit int) []string {
	faqs := make([]string, 0, limit)
	for _, rec := range messages {
		if len(faqs) >= limit {
			break
		}
		if rec.Record.StringField("category") != "Question" {
			continue
		}
		text := strings.TrimSpace(rec.Record.StringField("text", "content", "message"))
		if text == "" {
			continue
		}
		faqs = append(faqs, truncateRunes(text, faqMaxRunes))
	}
	return faqs
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}
