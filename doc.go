// Package aidispatch sends one prompt to one of several LLM providers and
// returns a normalized response.
//
// The root package holds the types shared by every provider: [Request],
// [Response], [Usage], the [Adapter] interface and the error taxonomy.
// Provider adapters live under internal/provider; the [client] package
// chooses one for each request.
//
// # Basic Usage
//
//	c := client.New(client.Config{
//	    APIKeys: client.APIKeys{OpenAI: os.Getenv("OPENAI_API_KEY")},
//	})
//
//	resp, err := c.Send(ctx, ai.Request{
//	    Prompt: "List three primes",
//	    Model:  "gpt-3.5-turbo",
//	    Format: ai.FormatJSON,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content, resp.Usage.Cost)
//
// # Errors
//
// Vendor failures are returned as [*RemoteError] wrapping a categorized
// [*Error]; use [IsTransient], [IsPermanent] and [StatusCodeOf] to inspect
// them. A provider without an API key fails with [*ConfigurationError]
// before any network call. Requests are never retried.
//
// [client]: https://pkg.go.dev/github.com/spetersoncode/aidispatch/client
package aidispatch
