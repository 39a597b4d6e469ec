package oracle

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"

	"discipline/internal/engine"
	"discipline/internal/storage"
)

// Fallback is returned whenever the model cannot be reached or replies with
// nothing. Advice is flavor text; it must never surface an error to the user.
const Fallback = "The link to the astral plane is severed. Keep your discipline on your own."

// Generator produces one completion for a prompt. The indirection exists so
// tests can stand in for the Gemini API.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Oracle turns current stats into a short in-world counsel line. At most one
// request is in flight at a time; concurrent callers get the fallback.
type Oracle struct {
	gen  Generator
	busy atomic.Bool
}

func New(apiKey, model string) (*Oracle, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required (set GEMINI_API_KEY or oracle.api_key)")
	}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Oracle{gen: &geminiGenerator{client: client, model: model}}, nil
}

// NewWithGenerator wires a custom Generator.
func NewWithGenerator(gen Generator) *Oracle {
	return &Oracle{gen: gen}
}

// Advise asks the model for counsel on the hero's current standing. Any
// failure, including a second call while one is running, yields Fallback.
func (o *Oracle) Advise(ctx context.Context, stats engine.UserStats, profile *storage.Profile) string {
	if !o.busy.CompareAndSwap(false, true) {
		return Fallback
	}
	defer o.busy.Store(false)

	text, err := o.gen.Generate(ctx, BuildPrompt(stats, profile))
	if err != nil {
		return Fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Fallback
	}
	return text
}

// BuildPrompt renders the advisor prompt from the derived stats and the
// onboarding profile. A nil profile gets a generic address.
func BuildPrompt(stats engine.UserStats, profile *storage.Profile) string {
	name, class := "wanderer", "Adventurer"
	age := 0
	if profile != nil {
		name, class, age = profile.Name, profile.ClassName, profile.Age
	}

	var b strings.Builder
	b.WriteString("You are a wise mentor in a medieval fantasy setting.\n")
	fmt.Fprintf(&b, "The hero's name is %s (age %d), of the %s class.\n\n", name, age, class)
	b.WriteString("Their current life stats:\n")
	for _, c := range engine.Categories {
		fmt.Fprintf(&b, "- %s: %d\n", c, stats.Score(c))
	}
	fmt.Fprintf(&b, "- Current level: %d\n\n", stats.Level)
	b.WriteString("Identify their strongest and weakest areas from these numbers.\n")
	b.WriteString("Give a short, immersive piece of advice, two sentences at most.\n")
	fmt.Fprintf(&b, "Address %s by name and acknowledge their chosen path.\n", name)
	b.WriteString("Encourage work on the weakest stat or praise the highest one.\n")
	b.WriteString("Plain text only, no markdown. Speak with gravity and ancient wisdom.\n")
	return b.String()
}

type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return result.Text(), nil
}
