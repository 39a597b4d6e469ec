package oracle

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"discipline/internal/engine"
	"discipline/internal/storage"
)

type stubGenerator struct {
	reply string
	err   error

	mu      sync.Mutex
	prompts []string
	block   chan struct{}
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, prompt)
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.reply, s.err
}

func heroProfile() *storage.Profile {
	return &storage.Profile{Name: "Arno", Age: 33, ClassName: "Monk"}
}

func TestAdviseReturnsModelText(t *testing.T) {
	gen := &stubGenerator{reply: "  Train your body, Arno.  "}
	o := NewWithGenerator(gen)

	got := o.Advise(context.Background(), engine.NewUserStats(), heroProfile())
	assert.Equal(t, "Train your body, Arno.", got)
}

func TestAdviseFallsBackOnError(t *testing.T) {
	o := NewWithGenerator(&stubGenerator{err: errors.New("quota exceeded")})
	assert.Equal(t, Fallback, o.Advise(context.Background(), engine.NewUserStats(), heroProfile()))
}

func TestAdviseFallsBackOnEmptyReply(t *testing.T) {
	o := NewWithGenerator(&stubGenerator{reply: "   "})
	assert.Equal(t, Fallback, o.Advise(context.Background(), engine.NewUserStats(), heroProfile()))
}

func TestAdviseSingleInFlight(t *testing.T) {
	gen := &stubGenerator{reply: "Steady on.", block: make(chan struct{})}
	o := NewWithGenerator(gen)

	first := make(chan string, 1)
	go func() {
		first <- o.Advise(context.Background(), engine.NewUserStats(), heroProfile())
	}()

	// Wait for the first call to reach the generator, then race a second one.
	for {
		gen.mu.Lock()
		n := len(gen.prompts)
		gen.mu.Unlock()
		if n > 0 {
			break
		}
	}
	assert.Equal(t, Fallback, o.Advise(context.Background(), engine.NewUserStats(), heroProfile()))

	close(gen.block)
	assert.Equal(t, "Steady on.", <-first)
}

func TestBuildPrompt(t *testing.T) {
	stats := engine.UserStats{
		XP:    240,
		Level: 3,
		Scores: map[engine.Category]int{
			engine.CategoryPhysical:  40,
			engine.CategoryIntellect: 10,
		},
	}

	prompt := BuildPrompt(stats, heroProfile())
	assert.Contains(t, prompt, "Arno")
	assert.Contains(t, prompt, "Monk")
	assert.Contains(t, prompt, "Physical: 40")
	assert.Contains(t, prompt, "Intellect: 10")
	assert.Contains(t, prompt, "Current level: 3")
	assert.False(t, strings.Contains(prompt, "map["))
}

func TestBuildPromptNilProfile(t *testing.T) {
	prompt := BuildPrompt(engine.NewUserStats(), nil)
	assert.Contains(t, prompt, "wanderer")
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New("", "gemini-2.0-flash")
	assert.Error(t, err)
}
