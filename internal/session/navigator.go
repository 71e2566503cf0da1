package session

import "sync"

// Navigator records redirect intents raised by the models until the HTTP
// layer hands them to the client
type Navigator struct {
	mu      sync.Mutex
	pending string
}

func (n *Navigator) RedirectTo(route string) {
	n.mu.Lock()
	n.pending = route
	n.mu.Unlock()
}

// Take returns the latest pending redirect and clears it
func (n *Navigator) Take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	route := n.pending
	n.pending = ""
	return route
}
