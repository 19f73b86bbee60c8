package engine

import (
	"context"
	"fmt"

	"menuflow/pkg/domain"
)

// SubmitText processes free-text input. It is only meaningful while the
// user's current screen is a chat pane; anywhere else the input is audited as
// ignored and the session is untouched.
//
// A configured finish command jumps the session to the pane's back path (root
// when absent); the caller is expected to re-render and will see a non-chat
// view. Any other text is forwarded to the simulated assistant: the call and
// a synthetic reply are audited, and the pane remains current.
func (e *Engine) SubmitText(ctx context.Context, userID, text string) error {
	return e.sessions.Update(ctx, userID, func(sess *domain.Session) error {
		screen, ok := e.manifest.Screen(sess.CurrentScreen)
		if !ok || screen.Kind != domain.KindChatInput {
			e.audit.UserAction(userID, "user_input_ignored", fmt.Sprintf("%q - not in chat mode", text))
			return nil
		}

		e.audit.UserAction(userID, "user_input", fmt.Sprintf("%q", text))

		if e.manifest.Defaults().IsFinishCommand(text) {
			// Leaving the pane follows back semantics: literal back_path
			// jumps there, CONTEXTUAL pops the stack, absent goes to root.
			e.handleBack(sess)
			return nil
		}

		// Simulated assistant round-trip; a real integration would attach an
		// assistant-backed Fetcher-like port here.
		e.audit.APICall("/api/assistant/reply", "POST")
		e.logger.Info("assistant reply (simulated)", "user_id", userID, "prompt", text)
		return nil
	})
}
