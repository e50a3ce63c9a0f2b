package medibot

// Role identifies who produced a transcript turn.
type Role string

// Role constants for Turn.
const (
	RoleUser Role = "You"
	RoleBot  Role = "Bot"
)

// Turn is a single entry of a conversation transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Transcript is an append-only conversation log owned by the caller.
// It is passed into and returned from every chat operation; nothing in
// medibot keeps a transcript of its own.
type Transcript []Turn

// Append returns a new transcript with the turn added. The receiver is never
// modified, so older values stay valid after appending.
func (t Transcript) Append(role Role, text string) Transcript {
	out := make(Transcript, len(t), len(t)+1)
	copy(out, t)
	return append(out, Turn{Role: role, Text: text})
}

// Len returns the number of turns.
func (t Transcript) Len() int {
	return len(t)
}
