package session

import "strings"

// Turn is one answered exchange.
type Turn struct {
	UserText string
	AIText   string
}

// Conversation is the ordered list of answered turns of one session.
// It is not safe for concurrent use; Session guards it.
type Conversation struct {
	turns []Turn
}

func (c *Conversation) Append(userText, aiText string) {
	c.turns = append(c.turns, Turn{UserText: userText, AIText: aiText})
}

// Turns returns a copy of the history.
func (c *Conversation) Turns() []Turn {
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

func (c *Conversation) Len() int { return len(c.turns) }

func (c *Conversation) Clear() { c.turns = nil }

// BuildPrompt renders the history followed by the new query:
//
//	User: <u>\nAI: <a>\n ... User: <query>\nAI:
func (c *Conversation) BuildPrompt(query string) string {
	var b strings.Builder
	for _, t := range c.turns {
		b.WriteString("User: ")
		b.WriteString(t.UserText)
		b.WriteString("\nAI: ")
		b.WriteString(t.AIText)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(query)
	b.WriteString("\nAI:")
	return b.String()
}
