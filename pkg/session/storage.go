package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-archipelago/client/pkg/protocol"
)

type rawValue = json.RawMessage

// Server-managed read-only keys.
func (s *Session) hintsKey() string {
	return fmt.Sprintf("_read_hints_%d_%d", s.team, s.slot)
}

func (s *Session) statusKey(slot int) string {
	return fmt.Sprintf("_read_client_status_%d_%d", s.team, slot)
}

// StorageGet fetches data-storage values. The wire protocol carries no
// request id, so replies are matched to the oldest outstanding request
// whose key set they cover; the reader loop must be running.
func (s *Session) StorageGet(ctx context.Context, keys ...string) (map[string]json.RawMessage, error) {
	w := &getWaiter{keys: keys, ch: make(chan map[string]rawValue, 1)}
	s.mu.Lock()
	s.getWait = append(s.getWait, w)
	s.mu.Unlock()

	if err := s.SendPacket(&protocol.GetPacket{Cmd: protocol.CmdGet, Keys: keys}); err != nil {
		s.dropWaiter(w)
		return nil, err
	}

	select {
	case values := <-w.ch:
		return values, nil
	case <-ctx.Done():
		s.dropWaiter(w)
		return nil, ctx.Err()
	}
}

// StorageSet writes one data-storage key via a replace operation.
func (s *Session) StorageSet(key string, value any) error {
	return s.SendPacket(&protocol.SetPacket{
		Cmd:       protocol.CmdSet,
		Key:       key,
		WantReply: false,
		Operations: []protocol.DataStorageOperation{
			{Operation: "replace", Value: value},
		},
	})
}

// NotifyHints subscribes to this slot's hint list. The callback fires on
// the reader goroutine with the full current list, first for the initial
// fetch and then on every server-side change.
func (s *Session) NotifyHints(fn func([]protocol.Hint)) error {
	s.mu.Lock()
	s.hintCB = fn
	s.mu.Unlock()

	key := s.hintsKey()
	if err := s.SendPacket(&protocol.SetNotifyPacket{Cmd: protocol.CmdSetNotify, Keys: []string{key}}); err != nil {
		return err
	}
	return s.SendPacket(&protocol.GetPacket{Cmd: protocol.CmdGet, Keys: []string{key}})
}

// ClientStatus fetches a slot's current play state once.
func (s *Session) ClientStatus(ctx context.Context, slot int) (protocol.ClientStatus, error) {
	key := s.statusKey(slot)
	values, err := s.StorageGet(ctx, key)
	if err != nil {
		return protocol.ClientUnknown, err
	}
	raw, ok := values[key]
	if !ok || string(raw) == "null" {
		return protocol.ClientUnknown, nil
	}
	var st protocol.ClientStatus
	if err := json.Unmarshal(raw, &st); err != nil {
		return protocol.ClientUnknown, err
	}
	return st, nil
}

// TrackClientStatus subscribes to another slot's play state.
func (s *Session) TrackClientStatus(slot int, fn func(protocol.ClientStatus)) error {
	s.mu.Lock()
	s.statusCB[slot] = fn
	s.mu.Unlock()

	key := s.statusKey(slot)
	if err := s.SendPacket(&protocol.SetNotifyPacket{Cmd: protocol.CmdSetNotify, Keys: []string{key}}); err != nil {
		return err
	}
	return s.SendPacket(&protocol.GetPacket{Cmd: protocol.CmdGet, Keys: []string{key}})
}

func (s *Session) dropWaiter(w *getWaiter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cand := range s.getWait {
		if cand == w {
			s.getWait = append(s.getWait[:i], s.getWait[i+1:]...)
			return
		}
	}
}

func (s *Session) handleRetrieved(pkt *protocol.RetrievedPacket) {
	for key, raw := range pkt.Keys {
		s.dispatchTracked(key, raw)
	}

	// Match the oldest waiter this reply satisfies.
	s.mu.Lock()
	for i, w := range s.getWait {
		if coversKeys(pkt.Keys, w.keys) {
			s.getWait = append(s.getWait[:i], s.getWait[i+1:]...)
			s.mu.Unlock()
			w.ch <- pkt.Keys
			return
		}
	}
	s.mu.Unlock()
}

func (s *Session) handleSetReply(pkt *protocol.SetReplyPacket) {
	s.dispatchTracked(pkt.Key, pkt.Value)
}

// dispatchTracked routes hint-list and client-status keys to their
// subscribers.
func (s *Session) dispatchTracked(key string, raw json.RawMessage) {
	if key == s.hintsKey() {
		s.mu.Lock()
		fn := s.hintCB
		s.mu.Unlock()
		if fn == nil {
			return
		}
		var hints []protocol.Hint
		if err := json.Unmarshal(raw, &hints); err != nil {
			s.Logger.Printf("session: bad hint list: %v", err)
			return
		}
		fn(hints)
		return
	}

	prefix := fmt.Sprintf("_read_client_status_%d_", s.team)
	if !strings.HasPrefix(key, prefix) {
		return
	}
	slot, err := strconv.Atoi(strings.TrimPrefix(key, prefix))
	if err != nil {
		return
	}
	s.mu.Lock()
	fn := s.statusCB[slot]
	s.mu.Unlock()
	if fn == nil {
		return
	}
	var status protocol.ClientStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return
	}
	fn(status)
}

func coversKeys(have map[string]json.RawMessage, want []string) bool {
	for _, k := range want {
		if _, ok := have[k]; !ok {
			return false
		}
	}
	return true
}
