package constant

// Knowledge file lifecycle. Upload creates the row as pending; the embedding
// consumer moves it to processing, then active or error.
const (
	KnowledgeStatusPending    = "pending"
	KnowledgeStatusProcessing = "processing"
	KnowledgeStatusActive     = "active"
	KnowledgeStatusError      = "error"
)
