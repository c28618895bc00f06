package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/autocompare/autocompare/internal/cars"
)

// Result is the structured answer the advisor asks the model for.
type Result struct {
	Answer  string   `json:"answer"`
	Summary string   `json:"summary"`
	Sources []string `json:"sources"`
}

// Advisor answers free-form car questions, grounding the model in the
// user's locally saved evaluations.
type Advisor struct {
	chat Chatter
}

func NewAdvisor(chat Chatter) *Advisor {
	return &Advisor{chat: chat}
}

const advisorSystemPrompt = `You are a factual automotive expert.
Always base your answer on the provided local context first.
If needed, supplement with reliable external info.
Respond only in JSON with properties: answer (detailed), summary (1-2 sentences), sources (list of URLs).
Do NOT include text outside JSON.`

// Ask sends the question together with the local car context and parses
// the model's JSON reply. When the reply is not valid JSON, the raw text
// is returned as the answer rather than failing the call.
func (a *Advisor) Ask(ctx context.Context, question string, localContext []cars.Car) (Result, error) {
	if strings.TrimSpace(question) == "" {
		return Result{}, fmt.Errorf("question must not be empty")
	}

	var prompt strings.Builder
	if contextText := buildLocalContext(localContext); contextText != "" {
		prompt.WriteString("Local car data:\n")
		prompt.WriteString(contextText)
		prompt.WriteString("\n")
	}
	prompt.WriteString("Question:\n")
	prompt.WriteString(question)
	prompt.WriteString("\nReturn JSON only.")

	raw, err := a.chat.Chat(ctx, advisorSystemPrompt, prompt.String())
	if err != nil {
		return Result{}, err
	}
	return parseResult(raw), nil
}

func buildLocalContext(list []cars.Car) string {
	var sb strings.Builder
	for _, car := range list {
		fmt.Fprintf(&sb, "Brand: %s, Model: %s, Year: %d, Mileage: %d, Owners: %d, Known Issues: %s\n",
			car.Brand, car.Model, car.Year, car.Mileage, car.Owners, strings.Join(car.KnownIssues, ", "))
	}
	return sb.String()
}

func parseResult(raw string) Result {
	var res Result
	if err := json.Unmarshal([]byte(raw), &res); err != nil {
		// Model ignored the JSON instruction; surface the text as-is.
		return Result{Answer: raw}
	}
	return res
}
