// Package mock provides test double implementations of ai.Generator.
//
// The mocks let tests drive the generation orchestrator without network
// access and with fully controlled outcomes.
//
// # Usage in Tests
//
//	// Default behavior echoes the prompt
//	gen := mock.NewMockGenerator(core.ProviderOpenAI, "gpt-4o-mini")
//
//	// Custom behavior injection
//	gen := mock.NewMockGenerator(core.ProviderGoogle, "gemini").
//	    WithGenerateFunc(func(ctx context.Context, prompt string) (string, error) {
//	        return "", errors.New("quota exceeded")
//	    })
//
//	// Check call counts
//	count := gen.CallCount()
//
// # Default Behavior
//
//   - MockGenerator: returns "<provider> says: <prompt>"
//   - NewFailingGenerator: always fails with the given error
package mock
