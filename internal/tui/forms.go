package tui

import (
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/wetube/tube/internal/api"
	"github.com/wetube/tube/internal/domain"
	"github.com/wetube/tube/internal/tui/components"
)

// openForm builds the screen's form with any prefill from loaded state.
func (m *Model) openForm(kind formKind, id int64) {
	m.formKind = kind
	m.formID = id

	switch kind {
	case formSignIn:
		m.form = components.NewForm("Sign in", []components.FormField{
			{Name: components.FieldUsername, Label: "Username", Placeholder: "username"},
			{Name: components.FieldPassword, Label: "Password", Placeholder: "password", Secret: true},
		}, "", "")

	case formSignUp:
		m.form = components.NewForm("Create account", []components.FormField{
			{Name: components.FieldUsername, Label: "Username", Placeholder: "username"},
			{Name: components.FieldPassword, Label: "Password", Placeholder: "password", Secret: true},
			{Name: components.FieldNickname, Label: "Nickname", Placeholder: "nickname"},
			{Name: components.FieldEmail, Label: "Email", Placeholder: "you@example.com"},
			{Name: components.FieldPhone, Label: "Phone", Placeholder: "optional"},
			{Name: components.FieldBirthDate, Label: "Birth date", Placeholder: "YYYY-MM-DD, optional"},
			{Name: components.FieldGender, Label: "Gender", Placeholder: "MALE or FEMALE, optional"},
			{Name: components.FieldZipCode, Label: "Zip code", Placeholder: "optional"},
			{Name: components.FieldAddress1, Label: "Address", Placeholder: "optional"},
			{Name: components.FieldAddress2, Label: "Address detail", Placeholder: "optional"},
		}, "", "")

	case formProfile:
		snap := m.session.Snapshot()
		u := snap.User
		fields := []components.FormField{
			{Name: components.FieldNickname, Label: "Nickname"},
			{Name: components.FieldEmail, Label: "Email"},
			{Name: components.FieldPassword, Label: "New password", Placeholder: "leave empty to keep", Secret: true},
			{Name: components.FieldPhone, Label: "Phone"},
			{Name: components.FieldBirthDate, Label: "Birth date"},
			{Name: components.FieldGender, Label: "Gender", Placeholder: "MALE or FEMALE"},
			{Name: components.FieldZipCode, Label: "Zip code"},
			{Name: components.FieldAddress1, Label: "Address"},
			{Name: components.FieldAddress2, Label: "Address detail"},
		}
		if u != nil {
			prefill := map[string]string{
				components.FieldNickname:  u.Nickname,
				components.FieldEmail:     u.Email,
				components.FieldPhone:     u.PhoneNumber,
				components.FieldBirthDate: u.BirthDate,
				components.FieldGender:    string(u.Gender),
				components.FieldZipCode:   u.ZipCode,
				components.FieldAddress1:  u.Address1,
				components.FieldAddress2:  u.Address2,
			}
			for i := range fields {
				fields[i].Value = prefill[fields[i].Name]
			}
		}
		m.form = components.NewForm("Edit profile", fields, "", "")

	case formUpload:
		m.form = components.NewForm("Upload video", []components.FormField{
			{Name: components.FieldTitle, Label: "Title"},
			{Name: components.FieldVideoPath, Label: "Video file", Placeholder: "/path/to/video.mp4"},
			{Name: components.FieldThumbPath, Label: "Thumbnail", Placeholder: "/path/to/thumb.jpg, optional"},
		}, components.FieldContent, "")

	case formNotice:
		var title, content string
		if id != 0 && m.notice != nil && m.notice.ID == id {
			title, content = m.notice.Title, m.notice.Content
		}
		m.form = components.NewForm("Notice", []components.FormField{
			{Name: components.FieldTitle, Label: "Title", Value: title},
		}, components.FieldContent, content)

	case formInquiry:
		var title, content string
		if id != 0 && m.inquiry != nil && m.inquiry.ID == id {
			title, content = m.inquiry.Title, m.inquiry.Content
		}
		m.form = components.NewForm("Inquiry", []components.FormField{
			{Name: components.FieldTitle, Label: "Title", Value: title},
		}, components.FieldContent, content)

	case formAnswer:
		m.form = components.NewForm("Answer inquiry", nil, components.FieldContent, "")
	}
}

func (m *Model) closeForm() {
	m.formKind = formNone
	m.formID = 0
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form.Busy() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, m.goBack()

	case tea.KeyCtrlS:
		return m.submitForm()

	case tea.KeyTab:
		return m, m.form.Next()

	case tea.KeyShiftTab:
		return m, m.form.Prev()

	case tea.KeyEnter:
		// Enter advances through fields and submits from the last one;
		// in a body the textarea keeps it as a newline.
		if m.form.OnBody() {
			break
		}
		if m.form.OnLastField() {
			return m.submitForm()
		}
		return m, m.form.Next()
	}

	return m, m.form.Update(msg)
}

func (m *Model) submitForm() (tea.Model, tea.Cmd) {
	values := m.form.Values()
	kind := m.formKind

	switch kind {
	case formSignIn:
		username, password := values[components.FieldUsername], values[components.FieldPassword]
		if username == "" || password == "" {
			m.form.SetError("username and password are required")
			return m, nil
		}
		m.form.SetBusy(true)
		return m, LoginCmd(m.client, username, password)

	case formSignUp:
		gender, ok := parseGender(values[components.FieldGender])
		if !ok {
			m.form.SetError("gender must be MALE or FEMALE")
			return m, nil
		}
		req := api.SignupRequest{
			Username:    values[components.FieldUsername],
			Password:    values[components.FieldPassword],
			Nickname:    values[components.FieldNickname],
			Email:       values[components.FieldEmail],
			PhoneNumber: values[components.FieldPhone],
			BirthDate:   values[components.FieldBirthDate],
			Gender:      gender,
			ZipCode:     values[components.FieldZipCode],
			Address1:    values[components.FieldAddress1],
			Address2:    values[components.FieldAddress2],
		}
		if req.Username == "" || req.Password == "" || req.Nickname == "" || req.Email == "" {
			m.form.SetError("username, password, nickname and email are required")
			return m, nil
		}
		m.form.SetBusy(true)
		return m, SignupCmd(m.client, req)

	case formProfile:
		gender, ok := parseGender(values[components.FieldGender])
		if !ok {
			m.form.SetError("gender must be MALE or FEMALE")
			return m, nil
		}
		update := api.ProfileUpdate{
			Nickname:    optional(values[components.FieldNickname]),
			Email:       optional(values[components.FieldEmail]),
			Password:    optional(values[components.FieldPassword]),
			PhoneNumber: optional(values[components.FieldPhone]),
			BirthDate:   optional(values[components.FieldBirthDate]),
			ZipCode:     optional(values[components.FieldZipCode]),
			Address1:    optional(values[components.FieldAddress1]),
			Address2:    optional(values[components.FieldAddress2]),
		}
		if gender != "" {
			update.Gender = &gender
		}
		m.form.SetBusy(true)
		return m, SaveProfileCmd(m.client, update)

	case formUpload:
		return m.submitUpload(values)

	case formNotice:
		title, content := values[components.FieldTitle], values[components.FieldContent]
		if title == "" || content == "" {
			m.form.SetError("title and content are required")
			return m, nil
		}
		m.form.SetBusy(true)
		return m, SaveNoticeCmd(m.client, m.formID, title, content)

	case formInquiry:
		title, content := values[components.FieldTitle], values[components.FieldContent]
		if title == "" || content == "" {
			m.form.SetError("title and content are required")
			return m, nil
		}
		m.form.SetBusy(true)
		return m, SaveInquiryCmd(m.client, m.formID, title, content)

	case formAnswer:
		answer := values[components.FieldContent]
		if answer == "" {
			m.form.SetError("answer is required")
			return m, nil
		}
		m.form.SetBusy(true)
		return m, AnswerInquiryCmd(m.client, m.formID, answer)
	}
	return m, nil
}

func (m *Model) submitUpload(values map[string]string) (tea.Model, tea.Cmd) {
	title := values[components.FieldTitle]
	videoPath := values[components.FieldVideoPath]
	if title == "" || videoPath == "" {
		m.form.SetError("title and video file are required")
		return m, nil
	}

	video, err := os.Open(videoPath)
	if err != nil {
		m.form.SetError("cannot open video: " + err.Error())
		return m, nil
	}
	req := api.UploadRequest{
		Title:       title,
		Description: values[components.FieldContent],
		VideoName:   filepath.Base(videoPath),
		Video:       video,
	}

	if thumbPath := values[components.FieldThumbPath]; thumbPath != "" {
		thumb, err := os.Open(thumbPath)
		if err != nil {
			video.Close()
			m.form.SetError("cannot open thumbnail: " + err.Error())
			return m, nil
		}
		req.ThumbnailName = filepath.Base(thumbPath)
		req.Thumbnail = thumb
	}

	m.form.SetBusy(true)
	return m, UploadVideoCmd(m.client, req)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseGender maps the free-text gender field to its enum value. Empty
// input stays empty; anything else must spell one of the two values.
func parseGender(s string) (domain.Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return "", true
	case string(domain.GenderMale):
		return domain.GenderMale, true
	case string(domain.GenderFemale):
		return domain.GenderFemale, true
	}
	return "", false
}
