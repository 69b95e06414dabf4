package coach

import (
	"fmt"
	"sort"
)

const FallbackScore = 75

// Fallback is what the client receives when the model text is not a usable
// analysis object.
type Fallback struct {
	Score        int
	Overall      string
	Strengths    []string
	Improvements []string
}

type Template struct {
	Name     string
	Prompt   string
	Fallback Fallback
}

const pronunciationPrompt = `You are an expert English speech coach specializing in helping Vietnamese English learners. Analyze this English speech recording with PRIORITY on pronunciation analysis.

IMPORTANT: Focus on common Vietnamese pronunciation errors:
- Confusing "th" sounds with "s" or "t" (think → sink/tink)
- Confusing "v" with "w" or "f" (very → wery)
- Missing final consonants (stop → sto, want → wan)
- Confusing short/long vowels (hit vs heat, full vs fool)
- Word stress patterns
- Sentence intonation

Please provide your analysis in the following JSON format:
{
  "score": [number from 0-100],
  "overall": "[brief overall assessment]",
  "pronunciationErrors": [
    {"word": "[mispronounced word]", "error": "[what's wrong]", "correction": "[how to say it correctly]"},
    {"word": "[word 2]", "error": "[error type]", "correction": "[correct pronunciation]"}
  ],
  "strengths": [
    "[strength 1]",
    "[strength 2]",
    "[strength 3]"
  ],
  "improvements": [
    "[area 1 to improve - PRIORITIZE pronunciation issues]",
    "[area 2 to improve]",
    "[area 3 to improve]"
  ],
  "detailedFeedback": "[detailed paragraph focusing on: 1) Specific pronunciation mistakes (list words), 2) Vietnamese accent features to improve, 3) Grammar and vocabulary, 4) Fluency and delivery]"
}

Analyze these aspects IN THIS ORDER:
1. **PRONUNCIATION** (most important) - List specific mispronounced words
2. Common Vietnamese English errors
3. Fluency and pace
4. Grammar and vocabulary
5. Content organization
6. Confidence and delivery`

const generalPrompt = `You are an expert English speech coach. Analyze this English speech recording and provide detailed feedback.

Please provide your analysis in the following JSON format:
{
  "score": [number from 0-100],
  "overall": "[brief overall assessment]",
  "strengths": [
    "[strength 1]",
    "[strength 2]",
    "[strength 3]"
  ],
  "improvements": [
    "[area 1 to improve]",
    "[area 2 to improve]",
    "[area 3 to improve]"
  ],
  "detailedFeedback": "[detailed paragraph about pronunciation, fluency, grammar, vocabulary, content organization, and delivery]"
}

Consider these aspects:
1. Pronunciation and clarity
2. Fluency and pace
3. Grammar and vocabulary
4. Content organization
5. Confidence and delivery
6. Use of transitions and connectors`

var templates = map[string]Template{
	"pronunciation": {
		Name:   "pronunciation",
		Prompt: pronunciationPrompt,
		Fallback: Fallback{
			Score:        FallbackScore,
			Overall:      "Formatted analysis unavailable.",
			Strengths:    []string{"Audio processed"},
			Improvements: []string{"See detailed feedback"},
		},
	},
	"general": {
		Name:   "general",
		Prompt: generalPrompt,
		Fallback: Fallback{
			Score:        FallbackScore,
			Overall:      "Good performance with room for improvement",
			Strengths:    []string{"Clear pronunciation", "Good vocabulary", "Confident delivery"},
			Improvements: []string{"Reduce filler words", "Improve intonation", "Better pacing"},
		},
	},
}

// LookupTemplate returns the named template.
func LookupTemplate(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown prompt template %q (have %v)", name, TemplateNames())
	}
	return t, nil
}

func TemplateNames() []string {
	names := make([]string, 0, len(templates))
	for n := range templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
