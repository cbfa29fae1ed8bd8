package domain

// Thread is a reference to a remote conversation context. The platform owns
// its lifecycle; the bridge only holds the id.
type Thread struct {
	ID string `json:"id"`
}

// Message roles used on the wire.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one message of a thread, newest first when listed.
type Message struct {
	ID        string        `json:"id"`
	Role      string        `json:"role"`
	Content   []ContentPart `json:"content"`
	CreatedAt int64         `json:"created_at,omitempty"`
}

// ContentTypeText tags a text content part.
const ContentTypeText = "text"

// ContentPart is a tagged variant of message content. Only text parts carry
// a payload the bridge renders; every other type is passed over, so
// extraction can switch on Type exhaustively instead of probing fields.
type ContentPart struct {
	Type string       `json:"type"`
	Text *TextContent `json:"text,omitempty"`
}

// TextContent is the payload of a text content part.
type TextContent struct {
	Value       string       `json:"value"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Annotation decorates a span of text, typically with a file citation.
type Annotation struct {
	Type         string        `json:"type"`
	Text         string        `json:"text,omitempty"`
	FileCitation *FileCitation `json:"file_citation,omitempty"`
}

// FileCitation points at the indexed source a span was grounded on.
type FileCitation struct {
	FileID string `json:"file_id"`
	Quote  string `json:"quote,omitempty"`
}
