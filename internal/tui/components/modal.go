package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wetube/tube/internal/tui/styles"
)

// ModalKind tags the active modal variant.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalLoginRequired
	ModalConfirm
)

// LoginRequiredPayload asks the user to sign in before an action.
type LoginRequiredPayload struct {
	Reason string
}

// ConfirmPayload is a blocking yes/no prompt. OnConfirm runs when accepted.
type ConfirmPayload struct {
	Title     string
	Prompt    string
	OnConfirm tea.Cmd
}

// ModalClosedMsg reports dismissal without confirmation.
type ModalClosedMsg struct{}

// ModalLoginChosenMsg reports that the user picked "sign in" from the
// login-required modal.
type ModalLoginChosenMsg struct{}

// Modal is the single global modal. Exactly one variant is active at a
// time; each variant carries its own typed payload.
type Modal struct {
	kind    ModalKind
	login   LoginRequiredPayload
	confirm ConfirmPayload
}

func NewModal() Modal {
	return Modal{}
}

// IsOpen reports whether any modal is showing.
func (m *Modal) IsOpen() bool { return m.kind != ModalNone }

// Kind returns the active variant.
func (m *Modal) Kind() ModalKind { return m.kind }

// OpenLoginRequired shows the login-required prompt.
func (m *Modal) OpenLoginRequired(p LoginRequiredPayload) {
	m.kind = ModalLoginRequired
	m.login = p
}

// OpenConfirm shows a confirmation prompt.
func (m *Modal) OpenConfirm(p ConfirmPayload) {
	m.kind = ModalConfirm
	m.confirm = p
}

// Close dismisses whatever is showing.
func (m *Modal) Close() {
	m.kind = ModalNone
	m.login = LoginRequiredPayload{}
	m.confirm = ConfirmPayload{}
}

// Update handles keys while a modal is open.
func (m *Modal) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "n", "q":
		m.Close()
		return func() tea.Msg { return ModalClosedMsg{} }

	case "enter", "y":
		switch m.kind {
		case ModalLoginRequired:
			m.Close()
			return func() tea.Msg { return ModalLoginChosenMsg{} }
		case ModalConfirm:
			cmd := m.confirm.OnConfirm
			m.Close()
			return cmd
		}
	}
	return nil
}

// View renders the modal centered in the given area.
func (m *Modal) View(width, height int) string {
	var body string

	switch m.kind {
	case ModalLoginRequired:
		reason := m.login.Reason
		if reason == "" {
			reason = "You need to sign in to use this feature."
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render("Sign in required"),
			styles.SubtitleStyle.Render(reason),
			"",
			styles.DimStyle.Render("enter: sign in  ·  esc: close"),
		)

	case ModalConfirm:
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.ModalTitleStyle.Render(m.confirm.Title),
			styles.SubtitleStyle.Render(m.confirm.Prompt),
			"",
			styles.DimStyle.Render("y/enter: confirm  ·  n/esc: cancel"),
		)

	default:
		return ""
	}

	box := styles.ModalStyle.Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
