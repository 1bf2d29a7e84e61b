package workspace

// Status is the result of Check: whether a project's local directory exists.
type Status struct {
	Present bool
	Path    string
}

// Present reports an existing working copy at path.
func Present(path string) Status {
	return Status{Present: true, Path: path}
}

// Absent reports that nothing usable exists at path.
func Absent(path string) Status {
	return Status{Present: false, Path: path}
}

func (s Status) String() string {
	if s.Present {
		return "present: " + s.Path
	}
	return "absent: " + s.Path
}
