package score

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Judgment is the structured form of a backend's answer: the category it
// picked and how sure it claims to be. Confidence is always in [0,1].
type Judgment struct {
	Guess      string
	Confidence float64
}

// thinkRE matches reasoning-model thinking blocks (e.g. Qwen3).
var thinkRE = regexp.MustCompile(`(?s)<think>.*?</think>`)

// ParseJudgment decodes raw backend output into a Judgment.
//
// Backends answer in several shapes and all of them must parse:
//   - direct JSON: {"guess": "...", "confidence": 0.8}
//   - a provider envelope whose "result" field holds the real payload
//   - JSON fenced inside a markdown code block
//   - any of the above preceded by a <think>...</think> block
//
// Returns *ParseError carrying the original text when no strategy yields
// valid JSON with a guess field.
func ParseJudgment(raw string) (Judgment, error) {
	text := strings.TrimSpace(thinkRE.ReplaceAllString(raw, ""))

	var outer map[string]any
	if err := json.Unmarshal([]byte(text), &outer); err != nil {
		outer = nil
	}

	inner := text
	if res, ok := outer["result"].(string); ok {
		// Envelope (e.g. claude CLI --output-format json): unwrap one
		// level and parse the payload.
		inner = strings.TrimSpace(res)
	} else if _, ok := outer["guess"]; ok {
		if j, ok := judgmentFrom(outer); ok {
			return j, nil
		}
		return Judgment{}, &ParseError{Raw: raw}
	}

	inner = stripFences(inner)

	var data map[string]any
	if err := json.Unmarshal([]byte(inner), &data); err != nil {
		return Judgment{}, &ParseError{Raw: raw}
	}
	if j, ok := judgmentFrom(data); ok {
		return j, nil
	}
	return Judgment{}, &ParseError{Raw: raw}
}

// judgmentFrom builds a Judgment from decoded JSON, validating the shape
// against the judgment schema first.
func judgmentFrom(data map[string]any) (Judgment, bool) {
	if err := judgmentSchema().Validate(data); err != nil {
		return Judgment{}, false
	}
	guess, ok := data["guess"].(string)
	if !ok || guess == "" {
		return Judgment{}, false
	}
	return Judgment{
		Guess:      guess,
		Confidence: coerceConfidence(data["confidence"]),
	}, true
}

// coerceConfidence turns whatever the backend put in the confidence field
// into a float in [0,1]. Missing or uncoercible values default to 0.
func coerceConfidence(v any) float64 {
	var c float64
	switch t := v.(type) {
	case float64:
		c = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		c = parsed
	default:
		return 0
	}
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// judgmentSchema returns the compiled schema for judgment objects,
// compiled once on first use.
var judgmentSchema = sync.OnceValue(func() *jsonschema.Schema {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"guess": map[string]any{"type": "string"},
		},
		"required": []any{"guess"},
	}

	// The jsonschema library expects a parsed JSON value. Marshal then
	// unmarshal to get a clean any representation.
	defBytes, err := json.Marshal(def)
	if err != nil {
		panic(err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		panic(err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://judgment.json", defParsed); err != nil {
		panic(err)
	}
	compiled, err := c.Compile("schema://judgment.json")
	if err != nil {
		panic(err)
	}
	return compiled
})
