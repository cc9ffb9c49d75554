package protocol

// Command is a decoded client request. The set of implementations is closed;
// consumers switch over the concrete types below.
type Command interface {
	// Name returns the upper-cased command name used for dispatch and stats
	Name() string
	command()
}

// SetOption is one (name, value) pair trailing a SET command.
// Name is upper-cased; Value is passed through untouched.
type SetOption struct {
	Name  string
	Value string
}

// Ping optionally carries a message to echo back
type Ping struct {
	Message *string
}

type Echo struct {
	Message string
}

type Set struct {
	Key     string
	Value   string
	Options []SetOption
}

type Get struct {
	Key string
}

// ConfigGet is the two-word CONFIG GET <parameter> command
type ConfigGet struct {
	Parameter string
}

// Info optionally names the section to report
type Info struct {
	Section *string
}

type Keys struct {
	Pattern string
}

// Unknown is a well-formed frame whose command has no handler.
// It is a valid decode result, not an error.
type Unknown struct {
	Command string
}

func (Ping) Name() string      { return "PING" }
func (Echo) Name() string      { return "ECHO" }
func (Set) Name() string       { return "SET" }
func (Get) Name() string       { return "GET" }
func (ConfigGet) Name() string { return "CONFIG GET" }
func (Info) Name() string      { return "INFO" }
func (Keys) Name() string      { return "KEYS" }
func (u Unknown) Name() string { return u.Command }

func (Ping) command()      {}
func (Echo) command()      {}
func (Set) command()       {}
func (Get) command()       {}
func (ConfigGet) command() {}
func (Info) command()      {}
func (Keys) command()      {}
func (Unknown) command()   {}
