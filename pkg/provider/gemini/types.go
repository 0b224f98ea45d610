package gemini

// generateRequest is the streamGenerateContent request body.
type generateRequest struct {
	Contents []content `json:"contents"`
}

// content is one conversation turn. Gemini knows only the roles "user" and
// "model".
type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateChunk is one streamed response payload.
type generateChunk struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content *candidateContent `json:"content"`
}

type candidateContent struct {
	Parts []part `json:"parts"`
}

// modelsPage is one page of the /v1beta/models listing.
type modelsPage struct {
	Models        []modelEntry `json:"models"`
	NextPageToken string       `json:"nextPageToken"`
}

type modelEntry struct {
	Name                       string   `json:"name"`
	DisplayName                string   `json:"displayName"`
	InputTokenLimit            int      `json:"inputTokenLimit"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
}
