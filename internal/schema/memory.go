package schema

import "sync"

// DefaultMaxMessages bounds a conversation when no explicit limit is given.
const DefaultMaxMessages = 100

// Memory is an ordered, size-bounded log of conversation messages. It is
// owned by exactly one agent. Appends past the limit drop the oldest
// messages so the most recent ones survive.
type Memory struct {
	mu          sync.RWMutex
	messages    []Message
	maxMessages int
}

// NewMemory creates a memory bounded to maxMessages entries.
// Non-positive values fall back to DefaultMaxMessages.
func NewMemory(maxMessages int) *Memory {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &Memory{
		messages:    make([]Message, 0),
		maxMessages: maxMessages,
	}
}

// Add appends a message and trims from the front if over capacity.
func (m *Memory) Add(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.messages = append(m.messages, msg)
	if len(m.messages) > m.maxMessages {
		m.messages = m.messages[len(m.messages)-m.maxMessages:]
	}
}

// AddSystem appends a system message.
func (m *Memory) AddSystem(content string) {
	m.Add(SystemMessage(content))
}

// AddUser appends a user message.
func (m *Memory) AddUser(content string) {
	m.Add(UserMessage(content))
}

// AddAssistant appends an assistant message.
func (m *Memory) AddAssistant(content string) {
	m.Add(AssistantMessage(content))
}

// AddTool appends a tool message attributed to the named tool.
func (m *Memory) AddTool(content, name string) {
	m.Add(ToolMessage(content, name))
}

// Messages returns a copy of the full message sequence.
func (m *Memory) Messages() []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Message, len(m.messages))
	copy(result, m.messages)
	return result
}

// Recent returns a copy of the n most recent messages. Out-of-range n is
// clamped.
func (m *Memory) Recent(n int) []Message {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n < 0 {
		n = 0
	}
	if n >= len(m.messages) {
		n = len(m.messages)
	}
	result := make([]Message, n)
	copy(result, m.messages[len(m.messages)-n:])
	return result
}

// Last returns the most recent message, if any.
func (m *Memory) Last() (Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.messages) == 0 {
		return Message{}, false
	}
	return m.messages[len(m.messages)-1], true
}

// LastUserMessage returns the most recent user-role message, if any.
func (m *Memory) LastUserMessage() (Message, bool) {
	return m.lastWithRole(RoleUser)
}

// LastAssistantMessage returns the most recent assistant-role message, if any.
func (m *Memory) LastAssistantMessage() (Message, bool) {
	return m.lastWithRole(RoleAssistant)
}

func (m *Memory) lastWithRole(role Role) (Message, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Role == role {
			return m.messages[i], true
		}
	}
	return Message{}, false
}

// Len reports the number of stored messages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// Clear removes all messages.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = make([]Message, 0)
}
