// Package engine dispatches chat and model-catalog calls to the provider
// adapters and enforces the normalized stream contract: Started first, zero
// or more Deltas, exactly one terminal event, nothing after it. Callers never
// touch adapter channels directly; the engine pumps them and synthesizes a
// terminal when an adapter's channel closes without one.
package engine
