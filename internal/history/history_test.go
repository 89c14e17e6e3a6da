package history_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rustle/internal/history"
)

func open(t *testing.T) (*history.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "history.db")
	s, err := history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func add(t *testing.T, s *history.Store, texts ...string) {
	t.Helper()
	for _, text := range texts {
		if _, err := s.Add(text); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAddAndQuery(t *testing.T) {
	s, _ := open(t)
	add(t, s, "let x = 1;", "x + 1", "let y = x;", "println(y)")

	last, err := s.Last(2)
	if err != nil {
		t.Fatal(err)
	}
	want := []history.Entry{{Seq: 3, Text: "let y = x;"}, {Seq: 4, Text: "println(y)"}}
	if diff := cmp.Diff(want, last); diff != "" {
		t.Errorf("Last (-want +got):\n%s", diff)
	}

	mid, err := s.List(2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]history.Entry{{Seq: 2, Text: "x + 1"}, {Seq: 3, Text: "let y = x;"}}, mid); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}

	prev, err := s.PrevWithPrefix(4, "let")
	if err != nil || prev.Seq != 3 {
		t.Errorf("PrevWithPrefix = %+v, %v", prev, err)
	}
	prev, err = s.PrevWithPrefix(100, "let x")
	if err != nil || prev.Seq != 1 {
		t.Errorf("PrevWithPrefix past end = %+v, %v", prev, err)
	}
	if _, err := s.PrevWithPrefix(100, "fn"); !errors.Is(err, history.ErrNoMatchingCmd) {
		t.Errorf("err = %v", err)
	}
}

func TestDeleteAndGet(t *testing.T) {
	s, _ := open(t)
	add(t, s, "a", "b")
	if err := s.Delete(1); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(1); !errors.Is(err, history.ErrNoMatchingCmd) {
		t.Errorf("Get deleted: %v", err)
	}
	if text, err := s.Get(2); err != nil || text != "b" {
		t.Errorf("Get(2) = %q, %v", text, err)
	}
	if _, err := s.Get(-1); err == nil {
		t.Error("negative sequence accepted")
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	s, path := open(t)
	add(t, s, "first")
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	again, err := history.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer again.Close()
	seq, err := again.Add("second")
	if err != nil || seq != 2 {
		t.Fatalf("seq = %d, %v", seq, err)
	}
	all, _ := again.Last(10)
	if len(all) != 2 || all[0].Text != "first" {
		t.Errorf("entries = %+v", all)
	}
}
