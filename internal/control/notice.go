package control

import "time"

// NoticeDuration is how long a notice stays on screen.
const NoticeDuration = 3 * time.Second

// Notice is a transient one-line message.
type Notice struct {
	text  string
	until time.Time
}

// Show replaces the current message. An empty text clears it.
func (n *Notice) Show(text string, now time.Time) {
	n.text = text
	n.until = now.Add(NoticeDuration)
}

// Text returns the message while it is still visible.
func (n *Notice) Text(now time.Time) string {
	if n.text == "" || !now.Before(n.until) {
		return ""
	}
	return n.text
}
