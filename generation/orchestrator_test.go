package generation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/aiosion/ai"
	"github.com/poiesic/aiosion/ai/mock"
	"github.com/poiesic/aiosion/config"
	"github.com/poiesic/aiosion/core"
	"github.com/poiesic/aiosion/storage"
	"github.com/poiesic/aiosion/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errProvider = errors.New("provider exploded")

// callLog records the order in which providers were invoked.
type callLog struct {
	mu    sync.Mutex
	names []core.ProviderName
}

func (l *callLog) add(name core.ProviderName) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.names = append(l.names, name)
}

func (l *callLog) get() []core.ProviderName {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.ProviderName(nil), l.names...)
}

// fixture builds one mock per provider. Providers listed in failing always fail.
func fixture(log *callLog, failing ...core.ProviderName) (*ai.Registry, map[core.ProviderName]*mock.MockGenerator) {
	fails := map[core.ProviderName]bool{}
	for _, n := range failing {
		fails[n] = true
	}

	mocks := map[core.ProviderName]*mock.MockGenerator{}
	gens := make([]ai.Generator, 0, 4)
	for _, name := range core.ProviderNames() {
		name := name
		m := mock.NewMockGenerator(name, string(name)+"-model").
			WithGenerateFunc(func(ctx context.Context, prompt string) (string, error) {
				log.add(name)
				if fails[name] {
					return "", errProvider
				}
				return "  " + string(name) + " answer\n", nil
			})
		mocks[name] = m
		gens = append(gens, m)
	}
	return ai.NewRegistry(gens...), mocks
}

func selection(primary core.ProviderName, order ...core.ProviderName) config.SelectionConfig {
	return config.SelectionConfig{Primary: primary, FallbackOrder: order}
}

func allOrder() []core.ProviderName {
	return core.ProviderNames()
}

func TestGenerate_UnsupportedProvider(t *testing.T) {
	prompts := []string{"", "hello", "a much longer prompt with punctuation!"}
	providers := []string{"", "gpt", "OpenAI", "openai ", "claude", "cohere"}

	for _, provider := range providers {
		for _, prompt := range prompts {
			t.Run(provider+"/"+prompt, func(t *testing.T) {
				log := &callLog{}
				reg, _ := fixture(log)
				o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...))
				require.NoError(t, err)

				out, err := o.Generate(context.Background(), prompt, provider)

				assert.ErrorIs(t, err, core.ErrUnsupportedProvider)
				assert.Empty(t, out)
				assert.Empty(t, log.get(), "no provider may be invoked")
			})
		}
	}
}

func TestGenerate_PrimarySucceeds(t *testing.T) {
	for _, primary := range core.ProviderNames() {
		t.Run(string(primary), func(t *testing.T) {
			log := &callLog{}
			reg, _ := fixture(log)
			o, err := NewOrchestrator(reg, selection(primary, allOrder()...))
			require.NoError(t, err)

			out := o.GeneratePrimaryDetailed(context.Background(), "prompt")

			assert.Equal(t, string(primary)+" answer", out.Text)
			assert.Equal(t, primary, out.Provider)
			assert.Equal(t, string(primary)+"-model", out.Model)
			assert.False(t, out.Degraded)
			assert.Equal(t, []core.ProviderName{primary}, log.get())
		})
	}
}

func TestGenerate_ExplicitProviderOverridesPrimary(t *testing.T) {
	log := &callLog{}
	reg, _ := fixture(log)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...))
	require.NoError(t, err)

	out, err := o.Generate(context.Background(), "prompt", "google")
	require.NoError(t, err)

	assert.Equal(t, "google answer", out)
	assert.Equal(t, []core.ProviderName{core.ProviderGoogle}, log.get())
}

func TestGenerate_FallbackOrder(t *testing.T) {
	tests := []struct {
		name      string
		primary   core.ProviderName
		order     []core.ProviderName
		failing   []core.ProviderName
		want      string
		wantCalls []core.ProviderName
	}{
		{
			name:      "first candidate succeeds",
			primary:   core.ProviderOpenAI,
			order:     allOrder(),
			failing:   []core.ProviderName{core.ProviderOpenAI},
			want:      "anthropic answer",
			wantCalls: []core.ProviderName{core.ProviderOpenAI, core.ProviderAnthropic},
		},
		{
			name:      "order is respected",
			primary:   core.ProviderOpenAI,
			order:     []core.ProviderName{core.ProviderHuggingFace, core.ProviderGoogle},
			failing:   []core.ProviderName{core.ProviderOpenAI},
			want:      "huggingface answer",
			wantCalls: []core.ProviderName{core.ProviderOpenAI, core.ProviderHuggingFace},
		},
		{
			name:      "failed candidates are skipped over",
			primary:   core.ProviderGoogle,
			order:     allOrder(),
			failing:   []core.ProviderName{core.ProviderGoogle, core.ProviderOpenAI, core.ProviderAnthropic},
			want:      "huggingface answer",
			wantCalls: []core.ProviderName{core.ProviderGoogle, core.ProviderOpenAI, core.ProviderAnthropic, core.ProviderHuggingFace},
		},
		{
			name:      "duplicates in order are attempted once",
			primary:   core.ProviderOpenAI,
			order:     []core.ProviderName{core.ProviderAnthropic, core.ProviderOpenAI, core.ProviderAnthropic, core.ProviderGoogle},
			failing:   []core.ProviderName{core.ProviderOpenAI, core.ProviderAnthropic},
			want:      "google answer",
			wantCalls: []core.ProviderName{core.ProviderOpenAI, core.ProviderAnthropic, core.ProviderGoogle},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			reg, _ := fixture(log, tt.failing...)
			o, err := NewOrchestrator(reg, selection(tt.primary, tt.order...))
			require.NoError(t, err)

			out := o.GeneratePrimaryDetailed(context.Background(), "prompt")

			assert.Equal(t, tt.want, out.Text)
			assert.False(t, out.Degraded)
			assert.Equal(t, tt.wantCalls, log.get())
			require.Len(t, out.Attempts, len(tt.wantCalls))
			assert.Empty(t, out.Attempts[len(out.Attempts)-1].Error)
			for _, a := range out.Attempts[:len(out.Attempts)-1] {
				assert.Contains(t, a.Error, errProvider.Error())
			}
		})
	}
}

func TestGenerate_Exhaustion(t *testing.T) {
	tests := []struct {
		name      string
		order     []core.ProviderName
		wantCalls int
	}{
		{name: "every provider fails", order: allOrder(), wantCalls: 4},
		{name: "empty fallback order", order: nil, wantCalls: 1},
		{name: "order holds only the failed provider", order: []core.ProviderName{core.ProviderOpenAI}, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &callLog{}
			reg, _ := fixture(log, core.ProviderNames()...)
			o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, tt.order...))
			require.NoError(t, err)

			out := o.GeneratePrimaryDetailed(context.Background(), "prompt")

			assert.Equal(t, ApologyMessage, out.Text)
			assert.True(t, out.Degraded)
			assert.Empty(t, out.Provider)
			assert.Len(t, log.get(), tt.wantCalls)
		})
	}
}

func TestGenerate_MissingBindingFallsBack(t *testing.T) {
	anthropic := mock.NewMockGenerator(core.ProviderAnthropic, "claude")
	reg := ai.NewRegistry(anthropic)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...))
	require.NoError(t, err)

	out := o.GeneratePrimaryDetailed(context.Background(), "hi")

	assert.Equal(t, "anthropic says: hi", out.Text)
	require.Len(t, out.Attempts, 2)
	assert.Contains(t, out.Attempts[0].Error, ErrNoBinding.Error())
}

func TestGenerate_UnavailableProviderFallsBack(t *testing.T) {
	reg := ai.NewRegistry(
		ai.Unavailable(core.ProviderOpenAI, "gpt", ai.ErrMissingAPIKey),
		mock.NewMockGenerator(core.ProviderGoogle, "gemini"),
	)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...))
	require.NoError(t, err)

	out, err := o.GeneratePrimary(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "google says: hi", out)
}

func TestGenerate_TimeoutIsAFailure(t *testing.T) {
	slow := mock.NewMockGenerator(core.ProviderOpenAI, "gpt").
		WithGenerateFunc(func(ctx context.Context, prompt string) (string, error) {
			// Ignores ctx on purpose.
			time.Sleep(500 * time.Millisecond)
			return "too late", nil
		})
	fast := mock.NewMockGenerator(core.ProviderAnthropic, "claude")
	reg := ai.NewRegistry(slow, fast)

	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...), WithTimeout(20*time.Millisecond))
	require.NoError(t, err)

	start := time.Now()
	out := o.GeneratePrimaryDetailed(context.Background(), "hi")

	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, "anthropic says: hi", out.Text)
	assert.Contains(t, out.Attempts[0].Error, context.DeadlineExceeded.Error())
}

func TestGenerate_CancelledContextDegrades(t *testing.T) {
	log := &callLog{}
	reg, _ := fixture(log, core.ProviderOpenAI)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := o.GeneratePrimary(ctx, "hi")
	require.NoError(t, err)
	assert.Equal(t, ApologyMessage, out)
}

func TestGenerate_DoesNotMutateSelection(t *testing.T) {
	order := []core.ProviderName{core.ProviderGoogle, core.ProviderOpenAI}
	sel := selection(core.ProviderOpenAI, order...)
	log := &callLog{}
	reg, _ := fixture(log, core.ProviderOpenAI)

	o, err := NewOrchestrator(reg, sel)
	require.NoError(t, err)
	sel.FallbackOrder[0] = core.ProviderHuggingFace

	out, err := o.GeneratePrimary(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "google answer", out)
}

func TestGenerate_Journal(t *testing.T) {
	journal, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()
	defer journal.Close()

	log := &callLog{}
	reg, _ := fixture(log, core.ProviderOpenAI)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...), WithJournal(journal))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = o.GeneratePrimary(ctx, "first")
	require.NoError(t, err)
	_, err = o.Generate(ctx, "second", "google")
	require.NoError(t, err)
	_, err = o.Generate(ctx, "third", "bogus")
	require.ErrorIs(t, err, core.ErrUnsupportedProvider)

	recent, err := journal.GetRecentGenerationRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2, "unsupported providers are not journaled")

	second, first := recent[0], recent[1]
	assert.Equal(t, "second", second.Prompt)
	assert.Equal(t, "google", second.Requested)
	assert.Equal(t, "google", second.Provider)

	assert.Equal(t, "first", first.Prompt)
	assert.Empty(t, first.Requested)
	assert.Equal(t, "anthropic", first.Provider)
	assert.Equal(t, "anthropic answer", first.Response)
	require.Len(t, first.Attempts, 2)
	assert.Equal(t, "openai", first.Attempts[0].Provider)
	assert.NotEmpty(t, first.Attempts[0].Error)
}

func TestGenerate_JournalRecordsDegraded(t *testing.T) {
	journal, _, backend, err := badger.NewMemoryStores()
	require.NoError(t, err)
	defer backend.Close()
	defer journal.Close()

	log := &callLog{}
	reg, _ := fixture(log, core.ProviderNames()...)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...), WithJournal(journal))
	require.NoError(t, err)

	_, err = o.GeneratePrimary(context.Background(), "hi")
	require.NoError(t, err)

	recent, err := journal.GetRecentGenerationRecords(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.True(t, recent[0].Degraded)
	assert.Equal(t, ApologyMessage, recent[0].Response)
	assert.Len(t, recent[0].Attempts, 4)
}

type failingJournal struct{ storage.JournalRepository }

func (failingJournal) AddGenerationRecords(ctx context.Context, records ...*core.GenerationRecord) ([]*core.GenerationRecord, error) {
	return nil, errors.New("disk full")
}

func TestGenerate_JournalFailureIsNotSurfaced(t *testing.T) {
	log := &callLog{}
	reg, _ := fixture(log)
	o, err := NewOrchestrator(reg, selection(core.ProviderOpenAI, allOrder()...), WithJournal(failingJournal{}))
	require.NoError(t, err)

	out, err := o.GeneratePrimary(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "openai answer", out)
}

func TestNewOrchestrator_Validation(t *testing.T) {
	reg := ai.NewRegistry()

	_, err := NewOrchestrator(nil, selection(core.ProviderOpenAI))
	assert.ErrorIs(t, err, ErrRegistryRequired)

	_, err = NewOrchestrator(reg, selection("nope"))
	assert.ErrorIs(t, err, core.ErrUnsupportedProvider)

	_, err = NewOrchestrator(reg, selection(core.ProviderOpenAI, "nope"))
	assert.ErrorIs(t, err, core.ErrUnsupportedProvider)

	_, err = NewOrchestrator(reg, selection(core.ProviderOpenAI), WithTimeout(-time.Second))
	assert.Error(t, err)
}
