package models

// UploadResponse is returned by POST /upload. It is sent as soon as the document
// has been extracted and chunked, before any embeddings are computed.
type UploadResponse struct {
	Message         string `json:"message"`
	EstimatedChunks int    `json:"estimated_chunks"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// Source identifies one retrieved chunk that was used to answer a question.
type Source struct {
	Page  int     `json:"page"`
	Score float64 `json:"score"`
}

// AskResponse is returned by POST /ask. Sources are in ranked order.
type AskResponse struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Chunks int    `json:"chunks"`
}
