// Package cli implements the plain-terminal front-end: it renders views as
// numbered menus, reads choices (or free text on chat panes) from stdin, and
// feeds them back to the engine.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"menuflow"
	"menuflow/pkg/domain"
)

// Loop drives one user's session interactively.
type Loop struct {
	app    *menuflow.App
	userID string
	in     io.Reader
	out    io.Writer
	render func(string) (string, error)
}

type Option func(*Loop)

// WithIO overrides the input and output streams, mainly for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(l *Loop) {
		l.in = in
		l.out = out
	}
}

// WithPlainText disables markdown rendering of screen titles.
func WithPlainText() Option {
	return func(l *Loop) {
		l.render = func(s string) (string, error) { return s + "\n", nil }
	}
}

// New creates an interactive loop for the given user.
func New(app *menuflow.App, userID string, opts ...Option) *Loop {
	l := &Loop{app: app, userID: userID}
	for _, opt := range opts {
		opt(l)
	}
	if l.render == nil {
		if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle()); err == nil {
			l.render = r.Render
		} else {
			l.render = func(s string) (string, error) { return s + "\n", nil }
		}
	}
	return l
}

// Run renders and reads until the input stream ends or the user quits.
func (l *Loop) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(l.in)

	for {
		view, err := l.app.Render(ctx, l.userID)
		if err != nil {
			return err
		}
		l.printView(view)

		fmt.Fprint(l.out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return nil // EOF
		}
		input := strings.TrimSpace(scanner.Text())

		switch input {
		case "/quit":
			return nil
		case "/reset":
			if _, err := l.app.Reset(ctx, l.userID); err != nil {
				return err
			}
			continue
		}

		if view.ScreenType == domain.KindChatInput {
			if err := l.app.SubmitText(ctx, l.userID, input); err != nil {
				return err
			}
			continue
		}

		action, err := pickAction(view, input)
		if err != nil {
			fmt.Fprintln(l.out, err.Error())
			continue
		}
		if err := l.app.Apply(ctx, l.userID, action); err != nil {
			return err
		}
	}
}

func (l *Loop) printView(view domain.View) {
	if text, err := l.render(view.Text); err == nil {
		fmt.Fprint(l.out, text)
	} else {
		fmt.Fprintln(l.out, view.Text)
	}

	if view.ScreenType == domain.KindChatInput {
		fmt.Fprintln(l.out, "(chat mode: type your message)")
		return
	}

	if view.Layout == "grid" && view.Columns > 1 {
		l.printGrid(view.Actions, view.Columns)
		return
	}
	for i, action := range view.Actions {
		fmt.Fprintf(l.out, "%d. %s\n", i+1, action.Label)
	}
}

// printGrid lays the numbered actions out in rows of the configured width.
func (l *Loop) printGrid(actions []domain.Action, columns int) {
	width := 0
	for _, a := range actions {
		if len(a.Label) > width {
			width = len(a.Label)
		}
	}

	for i, action := range actions {
		cell := fmt.Sprintf("%d. %s", i+1, action.Label)
		fmt.Fprintf(l.out, "%-*s", width+6, cell)
		if (i+1)%columns == 0 || i == len(actions)-1 {
			fmt.Fprintln(l.out)
		}
	}
}

func pickAction(view domain.View, input string) (domain.Action, error) {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(view.Actions) {
		return domain.Action{}, errors.New("pick a number from the menu")
	}
	return view.Actions[n-1], nil
}
