package tui

import (
	"testing"

	"github.com/wetube/tube/internal/domain"
)

func TestParseGender(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Gender
		ok   bool
	}{
		{"", "", true},
		{"MALE", domain.GenderMale, true},
		{"FEMALE", domain.GenderFemale, true},
		{"female", domain.GenderFemale, true},
		{" male ", domain.GenderMale, true},
		{"other", "", false},
		{"M", "", false},
	}
	for _, tt := range tests {
		got, ok := parseGender(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseGender(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPatchFromUserCarriesAllProfileFields(t *testing.T) {
	u := &domain.User{
		Nickname:  "Mina",
		Email:     "mina@example.com",
		Gender:    domain.GenderFemale,
		BirthDate: "1999-01-02",
		ZipCode:   "04524",
	}

	patch := patchFromUser(u)
	if patch.Nickname == nil || *patch.Nickname != "Mina" {
		t.Error("nickname not carried")
	}
	if patch.Gender == nil || *patch.Gender != domain.GenderFemale {
		t.Error("gender not carried")
	}
	if patch.BirthDate == nil || *patch.BirthDate != "1999-01-02" {
		t.Error("birth date not carried")
	}
}
