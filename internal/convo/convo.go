// Package convo owns the ordered conversation log for one session. The log
// is mutated only through the entry points below and only from the session's
// single thread, so there is no locking discipline.
package convo

import "strings"

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

const fileMarkerPrefix = "Content of file '"

func fileMarker(path string) string {
	return fileMarkerPrefix + path + "':"
}

func isFileContent(m Message) bool {
	return m.Role == RoleSystem && strings.HasPrefix(m.Content, fileMarkerPrefix)
}

// Context is an append-only-by-default message log with dedup of file-content
// entries and a pruning policy bounding growth.
type Context struct {
	msgs []Message
}

// New seeds the log with the session's system instructions.
func New(systemPrompt string) *Context {
	return &Context{msgs: []Message{{Role: RoleSystem, Content: systemPrompt}}}
}

func (c *Context) Append(role Role, content string) {
	c.msgs = append(c.msgs, Message{Role: role, Content: content})
}

// HasFile reports whether a file-content message for path is already live.
func (c *Context) HasFile(path string) bool {
	marker := fileMarker(path)
	for _, m := range c.msgs {
		if isFileContent(m) && strings.HasPrefix(m.Content, marker) {
			return true
		}
	}
	return false
}

// AddFileContent appends a file-content message unless one for path already
// exists. It returns false on the no-op.
func (c *Context) AddFileContent(path, content string) bool {
	if c.HasFile(path) {
		return false
	}
	c.msgs = append(c.msgs, Message{Role: RoleSystem, Content: fileMarker(path) + "\n\n" + content})
	return true
}

// ReplaceFileContent refreshes the live file-content message for path, or
// appends one if none exists. This is the freshest-content path used after a
// write actually lands.
func (c *Context) ReplaceFileContent(path, content string) {
	marker := fileMarker(path)
	msg := Message{Role: RoleSystem, Content: marker + "\n\n" + content}
	for i, m := range c.msgs {
		if isFileContent(m) && strings.HasPrefix(m.Content, marker) {
			c.msgs[i] = msg
			return
		}
	}
	c.msgs = append(c.msgs, msg)
}

// RebuildForRequest replaces the live log with the minimal clean form: the
// original system instructions, all live file-content messages, complete
// user/assistant exchange pairs (an unpaired trailing entry is dropped), and
// the new user message. It runs once per outbound request.
func (c *Context) RebuildForRequest(userMsg string) {
	var system, files, pairs []Message

	rest := c.msgs
	if len(rest) > 0 && rest[0].Role == RoleSystem && !isFileContent(rest[0]) {
		system = append(system, rest[0])
		rest = rest[1:]
	}
	for _, m := range rest {
		switch {
		case isFileContent(m):
			files = append(files, m)
		case m.Role == RoleUser || m.Role == RoleAssistant:
			pairs = append(pairs, m)
		}
	}
	if len(pairs)%2 != 0 {
		pairs = pairs[:len(pairs)-1]
	}

	rebuilt := make([]Message, 0, len(system)+len(files)+len(pairs)+1)
	rebuilt = append(rebuilt, system...)
	rebuilt = append(rebuilt, files...)
	rebuilt = append(rebuilt, pairs...)
	rebuilt = append(rebuilt, Message{Role: RoleUser, Content: userMsg})
	c.msgs = rebuilt
}

// Prune retains all system messages plus the most recent maxPairs
// user/assistant exchanges. It is the periodic safety valve, independent of
// the per-request rebuild.
func (c *Context) Prune(maxPairs int) {
	if maxPairs <= 0 {
		return
	}
	var system, other []Message
	for _, m := range c.msgs {
		if m.Role == RoleSystem {
			system = append(system, m)
		} else {
			other = append(other, m)
		}
	}
	if len(other) > maxPairs*2 {
		other = other[len(other)-maxPairs*2:]
	}
	c.msgs = append(system, other...)
}

// RecordCreate notes a completed file write and refreshes the file-content
// entry with the resulting ground truth.
func (c *Context) RecordCreate(path, content string) {
	c.Append(RoleSystem, "File operation: Created/updated file at '"+path+"'")
	c.ReplaceFileContent(path, content)
}

// RecordEdit notes a completed snippet edit and refreshes the file-content
// entry so later requests see what was actually written.
func (c *Context) RecordEdit(path, content string) {
	c.Append(RoleSystem, "File operation: Applied snippet edit to '"+path+"'")
	c.ReplaceFileContent(path, content)
}

// Messages returns a copy of the live log in conversation order.
func (c *Context) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *Context) Len() int {
	return len(c.msgs)
}

type Stats struct {
	Total        int
	FileContents int
	Exchanges    int
}

func (c *Context) Stats() Stats {
	st := Stats{Total: len(c.msgs)}
	nonSystem := 0
	for _, m := range c.msgs {
		if isFileContent(m) {
			st.FileContents++
		}
		if m.Role != RoleSystem {
			nonSystem++
		}
	}
	st.Exchanges = nonSystem / 2
	return st
}
