package promptman

// Role is the message role in a chat (system, user, assistant).
type Role string

// Chat message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ContentPart is a sealed interface for message parts. Only package types implement it via isContentPart().
type ContentPart interface {
	isContentPart()
}

// TextPart holds plain text content.
type TextPart struct {
	Text string
}

func (TextPart) isContentPart() {}

// ImagePart holds image URL, MIME type, and optional inline data.
type ImagePart struct {
	URL      string
	MIMEType string
	Data     []byte
}

func (ImagePart) isContentPart() {}

// Message is a single chat message with role and content parts.
// Content is ordered: injected context precedes the original user text,
// so the last text part is the authoritative user text.
type Message struct {
	Role    Role
	Content []ContentPart
}

// LastText returns the text of the last TextPart in the message, scanning
// from the end. The second return is false if the message has no text part.
func (m *Message) LastText() (string, bool) {
	for i := len(m.Content) - 1; i >= 0; i-- {
		if t, ok := m.Content[i].(TextPart); ok {
			return t.Text, true
		}
	}
	return "", false
}

// HasText reports whether the message contains at least one TextPart.
func (m *Message) HasText() bool {
	_, ok := m.LastText()
	return ok
}

// PrependText inserts the given texts as TextParts at the front of the
// content sequence, in argument order, assembling the new sequence in one
// step. PrependText("a", "b") yields content [a, b, <previous parts>].
func (m *Message) PrependText(texts ...string) {
	if len(texts) == 0 {
		return
	}
	parts := make([]ContentPart, 0, len(texts)+len(m.Content))
	for _, text := range texts {
		parts = append(parts, TextPart{Text: text})
	}
	m.Content = append(parts, m.Content...)
}

// AppendText adds a TextPart at the end of the content sequence.
func (m *Message) AppendText(text string) {
	m.Content = append(m.Content, TextPart{Text: text})
}
