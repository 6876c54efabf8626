package app

// Session holds what an Opener brought up and how to release it.
type Session struct {
	Platform     Platform
	Renderer     Renderer
	Overlay      Overlay
	RendererName string

	cleanups []cleanup
	released []string
}

type cleanup struct {
	name    string
	release func()
}

// Defer registers release under name. Dispose runs releases in reverse
// order of registration.
func (session *Session) Defer(name string, release func()) {
	session.cleanups = append(session.cleanups, cleanup{name: name, release: release})
}

// Dispose runs the registered releases once, newest first.
func (session *Session) Dispose() {
	for i := len(session.cleanups) - 1; i >= 0; i-- {
		session.cleanups[i].release()
		session.released = append(session.released, session.cleanups[i].name)
	}
	session.cleanups = nil
	session.Platform = nil
	session.Renderer = nil
	session.Overlay = nil
}

// Released lists the names of what Dispose has released, in release order.
func (session *Session) Released() []string {
	return session.released
}
