package meme

// Session owns one editing state and remembers the last successful export.
type Session struct {
	State State

	artifact *Artifact
	location string
}

func NewSession() *Session {
	return &Session{State: NewState()}
}

// Record marks artifact as saved at location.
func (s *Session) Record(artifact *Artifact, location string) {
	s.artifact = artifact
	s.location = location
}

// LastExport returns the last saved artifact and where it went, or nil.
func (s *Session) LastExport() (*Artifact, string) {
	return s.artifact, s.location
}

func (s *Session) Saved() bool {
	return s.artifact != nil
}

// Reset drops the state and the saved artifact.
func (s *Session) Reset() {
	s.State = NewState()
	s.artifact = nil
	s.location = ""
}
