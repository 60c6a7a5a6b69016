package chat

import "testing"

func TestAddAndRecent(t *testing.T) {
	s := NewStore(0)
	s.Add(Message{Kind: KindChat, Source: "Alice", Text: "hi"})
	s.Add(Message{Kind: KindServer, Text: "room update"})
	s.Add(Message{Kind: KindChat, Source: "Bob", Text: "hello"})

	got := s.Recent(2)
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d messages", len(got))
	}
	if got[0].Text != "room update" || got[1].Text != "hello" {
		t.Errorf("Recent order wrong: %q, %q", got[0].Text, got[1].Text)
	}
	if got[1].Received.IsZero() {
		t.Error("Add should stamp Received")
	}
}

func TestEviction(t *testing.T) {
	s := NewStore(3)
	for i := 0; i < 5; i++ {
		s.Add(Message{Kind: KindChat, Text: string(rune('a' + i))})
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	got := s.Recent(3)
	if got[0].Text != "c" || got[2].Text != "e" {
		t.Errorf("oldest entries should be evicted, got %q..%q", got[0].Text, got[2].Text)
	}
}

func TestByKind(t *testing.T) {
	s := NewStore(0)
	s.Add(Message{Kind: KindChat, Text: "1"})
	s.Add(Message{Kind: KindHint, Text: "2"})
	s.Add(Message{Kind: KindChat, Text: "3"})

	chats := s.ByKind(KindChat)
	if len(chats) != 2 || chats[0].Text != "1" || chats[1].Text != "3" {
		t.Errorf("ByKind(KindChat) = %v", chats)
	}
	if len(s.ByKind(KindDeathLink)) != 0 {
		t.Error("ByKind should be empty for unseen kinds")
	}
}

func TestClear(t *testing.T) {
	s := NewStore(0)
	s.Add(Message{Kind: KindChat, Text: "x"})
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
}
