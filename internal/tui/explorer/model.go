// ============================================================================
// Monkey - Tokenizer and Pratt parser front end
// ============================================================================
//
// Package:     explorer
// Description: Bubbletea model that tokenizes and parses the edited source
//              on every change
// Author:      Mike Stoffels
// Created:     2026-10-17
// License:     MIT
// ============================================================================

package explorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/msto63/monkey/internal/service"
	"github.com/msto63/monkey/pkg/core/version"
)

const (
	editorHeight = 8
	headerHeight = 2
	footerHeight = 2
)

// Model is the explorer's Bubbletea model
type Model struct {
	width  int
	height int
	ready  bool

	editor   textarea.Model
	viewport viewport.Model

	// outputFocused routes keys to the result viewport instead of the editor
	outputFocused bool
	showTree      bool

	service *service.Service
	ctx     context.Context

	seq    int
	source string
	tokens *service.TokenizeResult
	parse  *service.ParseResult
	err    error
}

// New creates an explorer model on top of svc. The initial source is
// analyzed on Init.
func New(ctx context.Context, svc *service.Service, initial string) Model {
	ta := textarea.New()
	ta.Placeholder = "let x = 5 + 5;"
	ta.ShowLineNumbers = true
	ta.CharLimit = svc.MaxInputLength()
	ta.SetHeight(editorHeight)
	ta.SetValue(initial)
	ta.Focus()

	return Model{
		editor:  ta,
		service: svc,
		ctx:     ctx,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.analyze(m.seq, m.editor.Value()))
}

// Source returns the current editor content
func (m Model) Source() string {
	return m.editor.Value()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.outputFocused = !m.outputFocused
			if m.outputFocused {
				m.editor.Blur()
			} else {
				cmds = append(cmds, m.editor.Focus())
			}
			return m, tea.Batch(cmds...)
		case tea.KeyCtrlT:
			m.showTree = !m.showTree
			m.updateViewportContent()
			return m, nil
		}

		if m.outputFocused {
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
		if after := m.editor.Value(); after != before {
			m.seq++
			cmds = append(cmds, m.analyze(m.seq, after))
		}
		return m, tea.Batch(cmds...)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 2)

		outputHeight := msg.Height - headerHeight - footerHeight - editorHeight - 4
		if outputHeight < 3 {
			outputHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, outputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = outputHeight
		}
		m.updateViewportContent()

	case analysisMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.source = msg.source
		m.tokens = msg.tokens
		m.parse = msg.parse
		m.err = msg.err
		m.updateViewportContent()
		return m, nil
	}

	m.editor, cmd = m.editor.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// analyze runs tokenize and parse for source in the background
func (m Model) analyze(seq int, source string) tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		msg := analysisMsg{seq: seq, source: source}
		msg.tokens, msg.err = svc.Tokenize(ctx, source)
		if msg.err != nil {
			return msg
		}
		msg.parse, msg.err = svc.Parse(ctx, source)
		return msg
	}
}

func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderOutput())
}

// renderOutput renders tokens, the canonical form and diagnostics
func (m Model) renderOutput() string {
	if m.err != nil {
		return StatusErrorStyle.Render("error: " + m.err.Error())
	}
	if m.tokens == nil {
		return HelpDescStyle.Render("Analyzing...")
	}

	var b strings.Builder

	if m.parse != nil {
		if m.showTree && m.parse.OK {
			b.WriteString(SectionStyle.Render("Tree"))
			b.WriteString("\n")
			b.WriteString(CanonicalStyle.Render(strings.TrimRight(m.parse.Tree, "\n")))
		} else {
			b.WriteString(SectionStyle.Render("Canonical"))
			b.WriteString("\n")
			if m.parse.OK {
				b.WriteString("  " + CanonicalStyle.Render(m.parse.Canonical))
			} else {
				b.WriteString("  " + HelpDescStyle.Render("(source has errors)"))
			}
		}
		b.WriteString("\n\n")

		b.WriteString(SectionStyle.Render(fmt.Sprintf("Diagnostics (%d)", len(m.parse.Diagnostics))))
		b.WriteString("\n")
		for _, d := range m.parse.Diagnostics {
			b.WriteString("  " + DiagnosticStyle.Render(d.String()) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(SectionStyle.Render(fmt.Sprintf("Tokens (%d)", len(m.tokens.Tokens))))
	b.WriteString("\n")
	for _, tok := range m.tokens.Tokens {
		style := TokenStyle
		if tok.Type == "ILLEGAL" {
			style = IllegalTokenStyle
		}
		pos := PositionStyle.Render(fmt.Sprintf("%4d:%-3d", tok.Line, tok.Column))
		b.WriteString("  " + pos + " " + style.Render(tok.Debug) + "\n")
	}

	return b.String()
}

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading explorer..."
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	editorStyle, outputStyle := FocusedPanelStyle, EditorPanelStyle
	if m.outputFocused {
		editorStyle, outputStyle = EditorPanelStyle, FocusedPanelStyle
	}
	b.WriteString(editorStyle.Render(m.editor.View()))
	b.WriteString("\n")
	b.WriteString(outputStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(m.renderHelpBar())

	return b.String()
}

func (m Model) renderHeader() string {
	title := TitleStyle.Render("Monkey Explorer")

	var status string
	switch {
	case m.err != nil:
		status = StatusErrorStyle.Render("request failed")
	case m.parse == nil:
		status = HelpDescStyle.Render("...")
	case m.parse.OK:
		status = StatusOKStyle.Render(fmt.Sprintf("ok, %d statements", m.parse.Statements))
	default:
		status = StatusErrorStyle.Render(fmt.Sprintf("%d errors", len(m.parse.Diagnostics)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		strings.Repeat(" ", 3),
		status,
		strings.Repeat(" ", 3),
		HelpDescStyle.Render("v"+version.Explorer),
	)
}

func (m Model) renderHelpBar() string {
	help := []string{
		RenderHelp("tab", "switch focus"),
		RenderHelp("ctrl+t", "tree/canonical"),
		RenderHelp("esc", "quit"),
	}
	return strings.Join(help, "  ")
}

// Run starts the explorer as a full-screen program
func Run(ctx context.Context, svc *service.Service, initial string) error {
	p := tea.NewProgram(New(ctx, svc, initial), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
