package cli

// ExitError carries the process exit code a command wants main() to use,
// independent of whether the command "failed" in the Go-error sense: a
// successful-but-unrealizable synthesis run is not an error, but it must
// still exit 1. cmd/cynthia's main() unwraps this type after root.Execute()
// to choose the exit code; every other error is reported as ExitInternal.
type ExitError struct {
	Code int
	Msg  string
}

func (e *ExitError) Error() string {
	if e.Msg == "" {
		return ""
	}
	return e.Msg
}
