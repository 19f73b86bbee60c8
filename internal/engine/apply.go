package engine

import (
	"context"
	"fmt"

	"menuflow/pkg/domain"
)

// Apply processes one user action and persists the resulting session state.
// Dispatches on the action type; unrecognized types are audited no-ops.
// The returned error is non-nil only for session store failures.
func (e *Engine) Apply(ctx context.Context, userID string, action domain.Action) error {
	return e.sessions.Update(ctx, userID, func(sess *domain.Session) error {
		e.audit.UserAction(userID, action.ID, action.Label)

		switch action.Type {
		case domain.ActionBack:
			e.handleBack(sess)
		case domain.ActionNavigate:
			departure := sess.CurrentScreen
			if e.handleNavigate(sess, action) {
				e.recordSelection(sess, departure, map[string]any{
					"type":   domain.ActionNavigate,
					"target": action.Target,
				})
			}
		case domain.ActionPaginate:
			e.handlePaginate(sess, action)
		case domain.ActionInvoke:
			e.handleInvoke(sess, action)
		default:
			e.audit.Error(fmt.Sprintf("unrecognized action type: %q", action.Type))
		}
		return nil
	})
}

// handleBack resolves the current screen's back path. CONTEXTUAL pops the
// return stack (root when empty); a literal id jumps there; no back path
// jumps to root. Back never pushes onto the stack.
func (e *Engine) handleBack(sess *domain.Session) {
	screen, ok := e.manifest.Screen(sess.CurrentScreen)
	if !ok {
		sess.CurrentScreen = e.root()
		return
	}

	switch screen.BackPath {
	case domain.BackContextual:
		if id, popped := sess.PopReturn(); popped {
			sess.CurrentScreen = id
		} else {
			sess.CurrentScreen = e.root()
		}
	case "":
		sess.CurrentScreen = e.root()
	default:
		sess.CurrentScreen = screen.BackPath
	}
}

// handleNavigate jumps to the action's target. An unknown target aborts the
// transition and self-heals the session to the root screen; the return stack
// is never touched on that branch. Reports whether the transition happened.
func (e *Engine) handleNavigate(sess *domain.Session, action domain.Action) bool {
	target, ok := e.manifest.Screen(action.Target)
	if !ok {
		e.audit.Error(fmt.Sprintf("navigate target not found: %s", action.Target))
		// Self-heal to a known-good screen rather than leaving a dangling
		// reference in the session.
		sess.CurrentScreen = e.root()
		return false
	}

	// The stack push only happens for a validated target, so CONTEXTUAL back
	// always returns to the screen that led in.
	if target.BackPath == domain.BackContextual {
		sess.PushReturn(sess.CurrentScreen)
	}
	sess.CurrentScreen = target.ID
	sess.MergeContext(action.Context)
	return true
}

func (e *Engine) handlePaginate(sess *domain.Session, action domain.Action) {
	delta := -1
	if action.Direction == domain.DirectionNext {
		delta = 1
	}
	sess.Turn(action.ScreenID, delta)
}

// handleInvoke runs a named imperative action. Only the submit_mark workflow
// is recognized; anything else is audited and ignored.
func (e *Engine) handleInvoke(sess *domain.Session, action domain.Action) {
	switch action.Action {
	case domain.WorkflowSubmitMark:
		departure := sess.CurrentScreen
		e.submitMark(sess)
		e.recordSelection(sess, departure, map[string]any{
			"type":   domain.ActionInvoke,
			"action": action.Action,
		})
	case "":
		e.audit.Error(fmt.Sprintf("action %q is missing its action name", action.ID))
	default:
		e.audit.Error(fmt.Sprintf("unrecognized action: %q", action.Action))
	}
}

// submitMark completes the mark-entry workflow: record the submission, then
// return to the designated screen with the whitelisted context keys intact.
// The designated target is the current screen's back_path when it names the
// recognized return screen; otherwise the return stack (root when empty).
func (e *Engine) submitMark(sess *domain.Session) {
	e.audit.APICall("/api/marks", "POST")

	preserveKeys := e.manifest.Defaults().Workflow.PreserveKeys
	if len(preserveKeys) == 0 {
		preserveKeys = fallbackPreserveKeys
	}
	returnScreen := e.manifest.Defaults().Workflow.ReturnScreen
	if returnScreen == "" {
		returnScreen = fallbackWorkflowReturn
	}

	saved := make(map[string]any)
	for _, key := range preserveKeys {
		if v, ok := sess.Context[key]; ok {
			saved[key] = v
		}
	}

	backPath := ""
	if screen, ok := e.manifest.Screen(sess.CurrentScreen); ok {
		backPath = screen.BackPath
	}

	if backPath == returnScreen && e.manifest.Has(returnScreen) {
		sess.CurrentScreen = returnScreen
		sess.MergeContext(saved)
		// This return is not stack-driven; pending CONTEXTUAL targets from
		// the traversal into the workflow would be stale.
		sess.ClearReturnStack()
		return
	}

	if id, popped := sess.PopReturn(); popped {
		sess.CurrentScreen = id
	} else {
		sess.CurrentScreen = e.root()
	}
}

// recordSelection upserts a selection entry for the departure screen, with the
// mode resolved once from that screen's definition.
func (e *Engine) recordSelection(sess *domain.Session, screenID string, item map[string]any) {
	sess.RecordSelection(screenID, e.screenMode(screenID), item)
}
