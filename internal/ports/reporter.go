package ports

// Reporter receives the user-facing progress of a run.
//
// Calls are bracketed: every Start* is followed by the matching Complete*
// unless the run fails in between. Implementations only write; nothing in
// the core reads back from a Reporter.
type Reporter interface {
	StartPhase(msg string)
	CompletePhase(msg string)
	StartStep(msg string)
	CompleteStep(msg string)
	StartTask(msg string)
	CompleteTask(msg string)

	// PrintCommand echoes a command line before it runs (or instead of
	// running it, during a dry run).
	PrintCommand(call CommandCall)
}
