package engine

import (
	"context"
	"fmt"

	"menuflow/pkg/domain"
)

// Render computes the current view for a user, creating the session on first
// touch. The read path never mutates navigation state: an unresolvable
// current screen yields an error-typed view and the session is left as-is
// (only the write path self-heals).
//
// The returned error is non-nil only for session store failures or a
// data-fetch port failure on a dynamic screen.
func (e *Engine) Render(ctx context.Context, userID string) (domain.View, error) {
	sess, err := e.sessions.GetOrCreate(ctx, userID)
	if err != nil {
		return domain.View{}, err
	}
	return e.renderSession(ctx, sess)
}

func (e *Engine) renderSession(ctx context.Context, sess *domain.Session) (domain.View, error) {
	screen, ok := e.manifest.Screen(sess.CurrentScreen)
	if !ok {
		e.audit.Error(fmt.Sprintf("screen not found: %s", sess.CurrentScreen))
		return domain.View{
			Text:       "Error: screen not found",
			Actions:    []domain.Action{e.backAction(screen)},
			ScreenType: domain.ScreenTypeError,
		}, nil
	}

	title := RenderTemplate(screen.Title, sess.Context)

	// Chat panes carry no action list at all; the front-end switches to a
	// text input and routes submissions through SubmitText.
	if screen.Kind == domain.KindChatInput {
		e.audit.ViewRendered(sess.UserID, screen.ID, title)
		return domain.View{Text: title, Actions: []domain.Action{}, ScreenType: domain.KindChatInput}, nil
	}

	var actions []domain.Action
	switch screen.Kind {
	case domain.KindDynamic:
		dynamic, err := e.buildDynamicActions(ctx, screen, sess.Context)
		if err != nil {
			return domain.View{}, err
		}
		actions = dynamic
	case domain.KindPaginated:
		actions = e.buildPaginatedActions(screen, sess)
	default:
		actions = e.buildStaticActions(screen)
	}
	return e.finishView(sess, screen, title, actions), nil
}

func (e *Engine) finishView(sess *domain.Session, screen domain.Screen, title string, actions []domain.Action) domain.View {
	if screen.BackPath != "" {
		actions = append(actions, e.backAction(screen))
	}

	view := domain.View{Text: title, Actions: actions, ScreenType: screen.Kind}
	if screen.HasGrid() {
		view.Layout = screen.Layout
		view.Columns = screen.Columns
	}

	e.audit.ViewRendered(sess.UserID, screen.ID, title)
	return view
}

// backAction builds the synthetic back button for a screen. The zero Screen
// (error view path) falls through to the manifest default label.
func (e *Engine) backAction(screen domain.Screen) domain.Action {
	label := screen.BackLabel
	if label == "" {
		label = e.manifest.Defaults().BackButtonLabel
	}
	if label == "" {
		label = "< Back"
	}
	return domain.Action{ID: "back", Label: label, Type: domain.ActionBack}
}

func (e *Engine) buildStaticActions(screen domain.Screen) []domain.Action {
	actions := make([]domain.Action, 0, len(screen.Buttons))
	for i, btn := range screen.Buttons {
		action := domain.Action{
			ID:      fmt.Sprintf("static_%d", i),
			Label:   btn.Label,
			Payload: btn.Payload,
		}
		switch {
		case btn.Target != "":
			action.Type = domain.ActionNavigate
			action.Target = btn.Target
		case btn.Action != "":
			action.Type = domain.ActionInvoke
			action.Action = btn.Action
		default:
			// Malformed manifest entries degrade to inert buttons.
			action.Type = domain.ActionUnknown
			e.audit.Error(fmt.Sprintf("button %q on screen %s has neither target nor action", btn.Label, screen.ID))
		}
		actions = append(actions, action)
	}
	return actions
}

func (e *Engine) buildDynamicActions(ctx context.Context, screen domain.Screen, sessionCtx map[string]any) ([]domain.Action, error) {
	// Manifests built through manifest.New can skip decode-time checks;
	// degrade like any other malformed entry instead of dereferencing nil.
	if screen.Source == nil || screen.Template == nil {
		e.audit.Error(fmt.Sprintf("dynamic screen %s is missing data_source or button_template", screen.ID))
		return []domain.Action{}, nil
	}

	url := RenderTemplate(screen.Source.URL, sessionCtx)
	e.audit.APICall(url, screen.Source.Method)

	records, err := e.fetcher.Call(ctx, url, screen.Source.Method)
	if err != nil {
		// A failing fetch is a contract violation of the port; it is not
		// shielded here. Ports wanting graceful degradation return an empty
		// slice instead (see adapters/httpfetch).
		return nil, fmt.Errorf("data fetch failed for screen %s: %w", screen.ID, err)
	}

	template := screen.Template
	actions := make([]domain.Action, 0, len(records))
	for i, record := range records {
		label := fmt.Sprintf("Item %d", i)
		if v, ok := record[template.LabelField]; ok {
			label = stringify(v)
		}

		nextContext := make(map[string]any, len(template.ContextFields))
		for ctxKey, itemKey := range template.ContextFields {
			if v, ok := record[itemKey]; ok {
				nextContext[ctxKey] = v
			} else {
				nextContext[ctxKey] = ""
			}
		}

		actions = append(actions, domain.Action{
			ID:      fmt.Sprintf("dynamic_%d", i),
			Label:   label,
			Type:    domain.ActionNavigate,
			Target:  template.TargetScreen,
			Context: nextContext,
		})
	}
	return actions, nil
}

func (e *Engine) buildPaginatedActions(screen domain.Screen, sess *domain.Session) []domain.Action {
	pageSize := e.manifest.Defaults().MustPageSize()
	items := screen.Items

	// Clamp on read so the displayed page is never empty unless the item
	// list is. The stored cursor is only changed by paginate actions.
	page := sess.Page(screen.ID)
	if maxPage := lastPage(len(items), pageSize); page > maxPage {
		page = maxPage
	}

	start := page * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	target := screen.Target
	if target == "" {
		target = defaultPaginatedTarget
	}

	var actions []domain.Action
	for i, item := range items[start:end] {
		actions = append(actions, domain.Action{
			ID:      fmt.Sprintf("paginated_%d", start+i),
			Label:   item,
			Type:    domain.ActionNavigate,
			Target:  target,
			Payload: item,
		})
	}

	defaults := e.manifest.Defaults()
	if end < len(items) {
		actions = append(actions, domain.Action{
			ID:        "next_page",
			Label:     defaults.Pagination.NextLabel,
			Type:      domain.ActionPaginate,
			Direction: domain.DirectionNext,
			ScreenID:  screen.ID,
		})
	}
	if page > 0 {
		actions = append(actions, domain.Action{
			ID:        "prev_page",
			Label:     defaults.Pagination.PrevLabel,
			Type:      domain.ActionPaginate,
			Direction: domain.DirectionPrev,
			ScreenID:  screen.ID,
		})
	}
	return actions
}

// lastPage is the highest page index with at least one item on it.
func lastPage(itemCount, pageSize int) int {
	if itemCount <= 0 {
		return 0
	}
	return (itemCount - 1) / pageSize
}
