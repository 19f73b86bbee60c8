package manifest

import (
	"fmt"
	"sort"

	"menuflow/pkg/domain"
)

// ValidationError represents a single manifest consistency failure.
type ValidationError struct {
	ScreenID string
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.ScreenID == "" {
		return e.Reason
	}
	return fmt.Sprintf("screen %q: %s", e.ScreenID, e.Reason)
}

// AggregateError collects all validation failures of a manifest.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Validate checks the manifest for dangling references. The engine absorbs
// these at runtime (degrading to error views or a root reset), but a
// deployment wants to know about them before users do.
//
// Checked: the root screen exists; every static target, every non-CONTEXTUAL
// back_path, every paginated target and every dynamic target_screen resolves
// to a defined screen; static buttons carry exactly one of target/action.
func Validate(m *Manifest, rootScreen string) error {
	var errs []error

	if !m.Has(rootScreen) {
		errs = append(errs, &ValidationError{Reason: fmt.Sprintf("root screen %q is not defined", rootScreen)})
	}

	for _, id := range m.ScreenIDs() {
		screen, _ := m.Screen(id)

		if screen.BackPath != "" && screen.BackPath != domain.BackContextual && !m.Has(screen.BackPath) {
			errs = append(errs, &ValidationError{ScreenID: id, Reason: fmt.Sprintf("back_path %q is not defined", screen.BackPath)})
		}

		switch screen.Kind {
		case domain.KindStatic:
			for i, btn := range screen.Buttons {
				switch {
				case btn.Target != "" && btn.Action != "":
					errs = append(errs, &ValidationError{ScreenID: id, Reason: fmt.Sprintf("button %d (%q) has both target and action", i, btn.Label)})
				case btn.Target == "" && btn.Action == "":
					errs = append(errs, &ValidationError{ScreenID: id, Reason: fmt.Sprintf("button %d (%q) has neither target nor action", i, btn.Label)})
				case btn.Target != "" && !m.Has(btn.Target):
					errs = append(errs, &ValidationError{ScreenID: id, Reason: fmt.Sprintf("button %d (%q) targets undefined screen %q", i, btn.Label, btn.Target)})
				}
			}
		case domain.KindDynamic:
			// The decode path enforces these, but manifests built through New
			// arrive unchecked.
			if screen.Source == nil {
				errs = append(errs, &ValidationError{ScreenID: id, Reason: "dynamic screen is missing data_source"})
			}
			switch {
			case screen.Template == nil:
				errs = append(errs, &ValidationError{ScreenID: id, Reason: "dynamic screen is missing button_template"})
			case !m.Has(screen.Template.TargetScreen):
				errs = append(errs, &ValidationError{ScreenID: id, Reason: fmt.Sprintf("button_template targets undefined screen %q", screen.Template.TargetScreen)})
			}
		case domain.KindPaginated:
			if screen.Target != "" && !m.Has(screen.Target) {
				errs = append(errs, &ValidationError{ScreenID: id, Reason: fmt.Sprintf("paginated target %q is not defined", screen.Target)})
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Unreachable returns the screens that cannot be reached from the root by
// following static targets, dynamic target screens, paginated targets and
// literal back paths. Unreachable screens are a warning, not an error:
// manifests sometimes keep retired screens around.
func Unreachable(m *Manifest, rootScreen string) []string {
	if !m.Has(rootScreen) {
		return nil
	}

	visited := map[string]bool{}
	queue := []string{rootScreen}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		screen, ok := m.Screen(id)
		if !ok {
			continue
		}

		var edges []string
		if screen.BackPath != "" && screen.BackPath != domain.BackContextual {
			edges = append(edges, screen.BackPath)
		}
		switch screen.Kind {
		case domain.KindStatic:
			for _, btn := range screen.Buttons {
				if btn.Target != "" {
					edges = append(edges, btn.Target)
				}
			}
		case domain.KindDynamic:
			if screen.Template != nil {
				edges = append(edges, screen.Template.TargetScreen)
			}
		case domain.KindPaginated:
			if screen.Target != "" {
				edges = append(edges, screen.Target)
			}
		}
		for _, edge := range edges {
			if !visited[edge] {
				queue = append(queue, edge)
			}
		}
	}

	var orphans []string
	for _, id := range m.ScreenIDs() {
		if !visited[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	return orphans
}
