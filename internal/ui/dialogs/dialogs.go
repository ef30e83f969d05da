// Package dialogs keeps a stack of modal dialogs drawn over the timeline.
// Only the topmost dialog receives input.
package dialogs

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// DialogID identifies a dialog instance. A stack holds at most one dialog
// per ID.
type DialogID string

// DialogModel represents a dialog component that can be displayed. Position
// returns the row and column of the top-left corner.
type DialogModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (DialogModel, tea.Cmd)
	View() string
	Position() (int, int)
	ID() DialogID
}

// CloseCallback is implemented by dialogs that need a command run when they
// are popped.
type CloseCallback interface {
	Close() tea.Cmd
}

// OpenDialogMsg pushes Model, or raises the open dialog with the same ID.
type OpenDialogMsg struct {
	Model DialogModel
}

// CloseDialogMsg pops the topmost dialog.
type CloseDialogMsg struct{}

// Stack is the set of open dialogs, topmost last.
type Stack struct {
	closeKey      key.Binding
	width, height int
	open          []DialogModel
}

// NewStack creates an empty stack that closes the top dialog on esc.
func NewStack() Stack {
	return Stack{
		closeKey: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

// Update opens and closes dialogs and forwards everything else to the top
// one. Window sizes go to every dialog so lower ones stay centred.
func (s Stack) Update(msg tea.Msg) (Stack, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		cmds := make([]tea.Cmd, len(s.open))
		for i, dialog := range s.open {
			s.open[i], cmds[i] = dialog.Update(msg)
		}
		return s, tea.Batch(cmds...)
	case OpenDialogMsg:
		return s.push(msg.Model)
	case CloseDialogMsg:
		return s.pop()
	case tea.KeyPressMsg:
		if s.Open() && key.Matches(msg, s.closeKey) {
			return s, func() tea.Msg { return CloseDialogMsg{} }
		}
	}

	if !s.Open() {
		return s, nil
	}
	top := len(s.open) - 1
	var cmd tea.Cmd
	s.open[top], cmd = s.open[top].Update(msg)
	return s, cmd
}

// push moves an already open dialog with the same ID to the top, keeping its
// state, or initializes and sizes model.
func (s Stack) push(model DialogModel) (Stack, tea.Cmd) {
	i := slices.IndexFunc(s.open, func(d DialogModel) bool { return d.ID() == model.ID() })
	if i >= 0 {
		existing := s.open[i]
		s.open = append(slices.Delete(s.open, i, i+1), existing)
		return s, nil
	}

	s.open = append(s.open, model)
	initCmd := model.Init()
	updated, sizeCmd := model.Update(tea.WindowSizeMsg{Width: s.width, Height: s.height})
	s.open[len(s.open)-1] = updated
	return s, tea.Batch(initCmd, sizeCmd)
}

func (s Stack) pop() (Stack, tea.Cmd) {
	if !s.Open() {
		return s, nil
	}
	top := s.open[len(s.open)-1]
	s.open = s.open[:len(s.open)-1]
	if c, ok := top.(CloseCallback); ok {
		return s, c.Close()
	}
	return s, nil
}

// Open reports whether any dialog is open.
func (s Stack) Open() bool {
	return len(s.open) > 0
}

// Len returns the number of open dialogs.
func (s Stack) Len() int {
	return len(s.open)
}

// Top returns the dialog receiving input, or nil.
func (s Stack) Top() DialogModel {
	if !s.Open() {
		return nil
	}
	return s.open[len(s.open)-1]
}

// TopID returns the ID of the top dialog, or "".
func (s Stack) TopID() DialogID {
	if top := s.Top(); top != nil {
		return top.ID()
	}
	return ""
}

// Overlay draws every open dialog over background, bottom of the stack
// first. Rows missing from background are added as blank lines.
func (s Stack) Overlay(background string) string {
	if !s.Open() {
		return background
	}

	lines := strings.Split(background, "\n")
	for _, dialog := range s.open {
		row, col := dialog.Position()
		for i, line := range strings.Split(dialog.View(), "\n") {
			y := row + i
			if y < 0 {
				continue
			}
			for len(lines) <= y {
				lines = append(lines, "")
			}
			lines[y] = splice(lines[y], line, col)
		}
	}
	return strings.Join(lines, "\n")
}

// splice replaces the cells of base starting at column col with overlay.
func splice(base, overlay string, col int) string {
	col = max(col, 0)
	w := ansi.StringWidth(overlay)
	left := ansi.Cut(base, 0, col)
	if pad := col - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ""
	if bw := ansi.StringWidth(base); bw > col+w {
		right = ansi.Cut(base, col+w, bw)
	}
	return left + overlay + right
}
