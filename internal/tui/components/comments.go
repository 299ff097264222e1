package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/tui/styles"
)

// CommentPane shows a video's comments with an input line for new ones.
type CommentPane struct {
	comments []domain.Comment
	cursor   int
	input    textinput.Model
	writing  bool
	loading  bool
}

func NewCommentPane() CommentPane {
	ti := textinput.New()
	ti.Placeholder = "Add a comment..."
	ti.CharLimit = 500
	return CommentPane{input: ti}
}

func (p *CommentPane) SetComments(comments []domain.Comment) {
	p.comments = comments
	p.loading = false
	if p.cursor >= len(comments) {
		p.cursor = 0
	}
}

func (p *CommentPane) SetLoading(loading bool) { p.loading = loading }

func (p *CommentPane) Loading() bool { return p.loading }

// Prepend inserts a freshly created comment at the top.
func (p *CommentPane) Prepend(c domain.Comment) {
	p.comments = append([]domain.Comment{c}, p.comments...)
}

// Remove drops a deleted comment.
func (p *CommentPane) Remove(commentID int64) {
	out := p.comments[:0]
	for _, c := range p.comments {
		if c.ID != commentID {
			out = append(out, c)
		}
	}
	p.comments = out
	if p.cursor >= len(p.comments) && p.cursor > 0 {
		p.cursor--
	}
}

// Selected returns the comment under the cursor.
func (p *CommentPane) Selected() (domain.Comment, bool) {
	if p.cursor < 0 || p.cursor >= len(p.comments) {
		return domain.Comment{}, false
	}
	return p.comments[p.cursor], true
}

// Writing reports whether the input line has focus.
func (p *CommentPane) Writing() bool { return p.writing }

// StartWriting focuses the input line.
func (p *CommentPane) StartWriting() tea.Cmd {
	p.writing = true
	return p.input.Focus()
}

// StopWriting blurs and clears the input line.
func (p *CommentPane) StopWriting() {
	p.writing = false
	p.input.Blur()
	p.input.SetValue("")
}

// Draft returns the trimmed input content.
func (p *CommentPane) Draft() string {
	return strings.TrimSpace(p.input.Value())
}

func (p *CommentPane) MoveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

func (p *CommentPane) MoveDown() {
	if p.cursor < len(p.comments)-1 {
		p.cursor++
	}
}

// UpdateInput forwards a message to the focused input line.
func (p *CommentPane) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *CommentPane) View(focused bool) string {
	var b strings.Builder

	header := fmt.Sprintf("Comments (%d)", len(p.comments))
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n")

	if p.writing {
		b.WriteString(p.input.View())
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("enter: post  ·  esc: cancel"))
		b.WriteString("\n")
	}

	if p.loading {
		b.WriteString(styles.DimStyle.Render("Loading comments..."))
		return b.String()
	}

	if len(p.comments) == 0 && !p.writing {
		b.WriteString(styles.DimStyle.Render("No comments yet. Press c to write one."))
		return b.String()
	}

	for i, c := range p.comments {
		line := fmt.Sprintf("%s  %s", styles.AccentStyle.Render(c.Author.Nickname), c.Content)
		if focused && !p.writing && i == p.cursor {
			line = styles.SelectedItemStyle.Render(fmt.Sprintf("%s  %s", c.Author.Nickname, c.Content))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
