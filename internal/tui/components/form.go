package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wetube/tube/internal/tui/styles"
)

// Field names double as submission keys.
const (
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldNickname  = "nickname"
	FieldEmail     = "email"
	FieldPhone     = "phoneNumber"
	FieldBirthDate = "birthDate"
	FieldGender    = "gender"
	FieldZipCode   = "zipCode"
	FieldAddress1  = "address1"
	FieldAddress2  = "address2"
	FieldTitle     = "title"
	FieldContent   = "content"
	FieldVideoPath = "videoPath"
	FieldThumbPath = "thumbnailPath"
)

// Form is a vertical stack of labeled inputs with one optional textarea at
// the end, tab-navigable, submitted as a field map.
type Form struct {
	title  string
	names  []string
	labels []string
	inputs []textinput.Model

	bodyName string
	body     textarea.Model
	hasBody  bool

	focus int
	err   string
	busy  bool
}

// FormField declares one input line.
type FormField struct {
	Name        string
	Label       string
	Placeholder string
	Secret      bool
	Value       string
}

// NewForm builds a form from field declarations. A non-empty bodyName adds
// a trailing textarea under that name.
func NewForm(title string, fields []FormField, bodyName, bodyValue string) Form {
	f := Form{title: title}

	for i, fd := range fields {
		ti := textinput.New()
		ti.Placeholder = fd.Placeholder
		ti.CharLimit = 200
		ti.SetValue(fd.Value)
		if fd.Secret {
			ti.EchoMode = textinput.EchoPassword
		}
		if i == 0 {
			ti.Focus()
		}
		f.names = append(f.names, fd.Name)
		f.labels = append(f.labels, fd.Label)
		f.inputs = append(f.inputs, ti)
	}

	if bodyName != "" {
		ta := textarea.New()
		ta.Placeholder = "Write here..."
		ta.SetValue(bodyValue)
		ta.SetHeight(6)
		f.bodyName = bodyName
		f.body = ta
		f.hasBody = true
		if len(f.inputs) == 0 {
			f.body.Focus()
		}
	}

	return f
}

// fieldCount counts focusable slots including the textarea.
func (f *Form) fieldCount() int {
	n := len(f.inputs)
	if f.hasBody {
		n++
	}
	return n
}

// OnBody reports whether the textarea has focus.
func (f *Form) OnBody() bool {
	return f.hasBody && f.focus == len(f.inputs)
}

// OnLastField reports whether focus sits on the final slot.
func (f *Form) OnLastField() bool {
	return f.focus == f.fieldCount()-1
}

// Next moves focus forward, wrapping.
func (f *Form) Next() tea.Cmd { return f.setFocus((f.focus + 1) % f.fieldCount()) }

// Prev moves focus backward, wrapping.
func (f *Form) Prev() tea.Cmd {
	return f.setFocus((f.focus - 1 + f.fieldCount()) % f.fieldCount())
}

func (f *Form) setFocus(i int) tea.Cmd {
	for j := range f.inputs {
		f.inputs[j].Blur()
	}
	f.body.Blur()
	f.focus = i
	if f.hasBody && i == len(f.inputs) {
		return f.body.Focus()
	}
	return f.inputs[i].Focus()
}

// Update forwards a message to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if f.OnBody() {
		f.body, cmd = f.body.Update(msg)
		return cmd
	}
	if f.focus < len(f.inputs) {
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	}
	return cmd
}

// Values returns the trimmed field map keyed by field name.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, f.fieldCount())
	for i, name := range f.names {
		out[name] = strings.TrimSpace(f.inputs[i].Value())
	}
	if f.hasBody {
		out[f.bodyName] = strings.TrimSpace(f.body.Value())
	}
	return out
}

// SetError shows a validation message under the form.
func (f *Form) SetError(err string) { f.err = err }

// SetBusy disables submission while a request is in flight.
func (f *Form) SetBusy(busy bool) { f.busy = busy }

// Busy reports whether a submission is outstanding.
func (f *Form) Busy() bool { return f.busy }

func (f *Form) View(spinnerFrame int) string {
	var rows []string
	rows = append(rows, styles.TitleStyle.Render(f.title), "")

	for i := range f.inputs {
		label := styles.SubtitleStyle.Render(f.labels[i])
		if i == f.focus {
			label = styles.AccentStyle.Render(f.labels[i])
		}
		rows = append(rows, label, f.inputs[i].View())
	}

	if f.hasBody {
		label := styles.SubtitleStyle.Render("Content")
		if f.OnBody() {
			label = styles.AccentStyle.Render("Content")
		}
		rows = append(rows, label, f.body.View())
	}

	rows = append(rows, "")
	if f.busy {
		spinner := styles.SpinnerFrames[spinnerFrame%len(styles.SpinnerFrames)]
		rows = append(rows, styles.DimStyle.Render(spinner+" Submitting..."))
	} else {
		rows = append(rows, styles.DimStyle.Render("tab: next field  ·  enter: submit  ·  esc: back"))
	}
	if f.err != "" {
		rows = append(rows, styles.ErrorStyle.Render(f.err))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
