package ollama

import "github.com/strom-dev/strom/pkg/api"

// chatRequest is the /api/chat request body.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []api.Message `json:"messages"`
	Stream   bool          `json:"stream"`
}

// chatLine is one NDJSON line of the chat stream. done=true is the sole
// terminal signal, distinct from connection close.
type chatLine struct {
	Message *lineMessage `json:"message"`
	Done    bool         `json:"done"`
}

type lineMessage struct {
	Content string `json:"content"`
}

// tagsResponse is the /api/tags listing. Depending on the server version the
// model id is keyed under either "model" or "name".
type tagsResponse struct {
	Models []tagEntry `json:"models"`
}

type tagEntry struct {
	Model string `json:"model"`
	Name  string `json:"name"`
}

// id returns whichever id field is populated, preferring "model".
func (e tagEntry) id() string {
	if e.Model != "" {
		return e.Model
	}
	return e.Name
}
