package store

import (
	"testing"
)

func TestMemoryOnlyRoundTrip(t *testing.T) {
	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	type blob struct {
		Name string `json:"name"`
	}

	if err := s.Set("k", blob{Name: "v"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got blob
	if !s.Get("k", &got) || got.Name != "v" {
		t.Errorf("Get = (%+v), want name v", got)
	}

	s.Delete("k")
	if s.Get("k", &got) {
		t.Error("Get should miss after Delete")
	}
}

func TestDiskRoundTripAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Set(KeySession, map[string]string{"token": "abc"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	s.Close()

	again, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer again.Close()

	var got map[string]string
	if !again.Get(KeySession, &got) || got["token"] != "abc" {
		t.Errorf("Get after reopen = %v, want token abc", got)
	}
}

func TestGetMissesOnAbsence(t *testing.T) {
	s, _ := Open("")
	defer s.Close()

	var dest struct{}
	if s.Get("missing", &dest) {
		t.Error("Get should return false for an absent key")
	}
}
