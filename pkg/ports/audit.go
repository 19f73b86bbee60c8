package ports

// AuditSink receives the four observation hooks of the engine. Calls are
// fire-and-forget: implementations must not panic back into the core, and
// ordering between hooks carries no state-correctness meaning.
type AuditSink interface {
	// ViewRendered fires after a view is computed for a user.
	ViewRendered(userID, screenID, title string)
	// UserAction fires when the engine starts processing a user action.
	UserAction(userID, actionID, label string)
	// APICall fires before the data-fetch port (or a simulated endpoint) is invoked.
	APICall(url, method string)
	// Error fires for absorbed reference errors and other non-fatal conditions.
	Error(message string)
}

// NopSink is an AuditSink that discards everything.
type NopSink struct{}

func (NopSink) ViewRendered(string, string, string) {}
func (NopSink) UserAction(string, string, string)   {}
func (NopSink) APICall(string, string)              {}
func (NopSink) Error(string)                        {}
