// Package client routes prompts to the right provider adapter.
//
// A Client owns one adapter per provider. Resolve picks one for a request:
//
//   - an explicit provider (anything but auto) always wins;
//   - otherwise adapters are probed in order openai, anthropic, gemini and
//     the first whose model list contains the model exactly is used;
//   - otherwise OpenAI is used.
//
// # Basic Usage
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{
//	        OpenAI:    os.Getenv("OPENAI_API_KEY"),
//	        Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
//	    },
//	})
//
//	resp, err := c.Send(ctx, ai.Request{Prompt: "Hello!", Model: "claude-3-haiku"})
//
// # Events
//
// Observe requests via an event channel:
//
//	events := make(chan client.Event, 16)
//	c := client.New(client.Config{Events: events})
//
//	go func() {
//	    for e := range events {
//	        fmt.Printf("[%s] %s took %v\n", e.Type, e.Provider, e.Duration)
//	    }
//	}()
package client
