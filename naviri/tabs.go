package naviri

// NewTabTitle is the title of a tab that has not shown any topic yet.
const NewTabTitle = "<new>"

// Tabs is an ordered set of sibling sessions with exactly one active.
type Tabs struct {
	sessions []*Session
	active   int

	newSession func() *Session
}

// NewTabs creates a tab set holding one fresh session made by newSession.
func NewTabs(newSession func() *Session) *Tabs {
	t := &Tabs{newSession: newSession}
	t.New()
	return t
}

// New appends a fresh session and makes it active.
func (t *Tabs) New() *Session {
	s := t.newSession()
	t.sessions = append(t.sessions, s)
	t.active = len(t.sessions) - 1
	return s
}

// Close removes the tab at index i. The last remaining tab is never closed.
// It returns false when nothing was closed.
func (t *Tabs) Close(i int) bool {
	if len(t.sessions) <= 1 || i < 0 || i >= len(t.sessions) {
		return false
	}
	t.sessions[i].Cancel()
	t.sessions = append(t.sessions[:i], t.sessions[i+1:]...)
	if t.active >= i && t.active > 0 {
		t.active--
	}
	return true
}

// CloseActive closes the active tab.
func (t *Tabs) CloseActive() bool { return t.Close(t.active) }

// SetActive makes tab i active. Out of range indexes are ignored.
func (t *Tabs) SetActive(i int) {
	if i >= 0 && i < len(t.sessions) {
		t.active = i
	}
}

// Cycle activates the tab delta places away, wrapping around.
func (t *Tabs) Cycle(delta int) {
	n := len(t.sessions)
	t.active = ((t.active+delta)%n + n) % n
}

// Active returns the active session.
func (t *Tabs) Active() *Session { return t.sessions[t.active] }

// ActiveIndex returns the index of the active tab.
func (t *Tabs) ActiveIndex() int { return t.active }

// Len returns the number of tabs.
func (t *Tabs) Len() int { return len(t.sessions) }

// Title returns the label of tab i.
func (t *Tabs) Title(i int) string {
	if topic := t.sessions[i].Topic(); topic != "" {
		return topic
	}
	return NewTabTitle
}

// Open navigates to topic, in a new tab when newTab is set. A fresh active
// tab is reused instead of opening another one.
func (t *Tabs) Open(topic string, newTab bool) (*Session, *Request) {
	if newTab && !t.Active().IsNew() {
		t.New()
	}
	s := t.Active()
	return s, s.Navigate(topic)
}
