package ws

import "testing"

type stubConn struct {
	id int
}

func (*stubConn) SendJSON(v any) error { return nil }
func (*stubConn) Close() error         { return nil }

func TestHubAddAndRemoveNotifyClient(t *testing.T) {
	hub := NewHub()
	conn := &stubConn{id: 1}

	hub.AddNotifyClient("EMP001", conn, ConnInfo{EmpID: "EMP001"})
	if len(hub.notify) != 1 {
		t.Fatalf("expected notify room to be created")
	}
	if got := hub.NotifyConns("EMP001"); len(got) != 1 {
		t.Fatalf("expected one connection, got %d", len(got))
	}

	hub.RemoveNotifyClient("EMP001", conn)
	if len(hub.notify) != 0 {
		t.Fatalf("expected empty notify room to be removed")
	}
}

func TestHubNotifyRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	a := &stubConn{id: 1}
	b := &stubConn{id: 2}

	hub.AddNotifyClient("EMP001", a, ConnInfo{EmpID: "EMP001"})
	hub.AddNotifyClient("EMP002", b, ConnInfo{EmpID: "EMP002"})

	if got := hub.NotifyConns("EMP001"); len(got) != 1 || got[0] != a {
		t.Fatalf("expected EMP001 room to hold only its own connection")
	}

	hub.RemoveNotifyClient("EMP001", a)
	if got := hub.NotifyConns("EMP002"); len(got) != 1 {
		t.Fatalf("expected EMP002 room to be untouched")
	}
}

func TestHubAddAndRemoveChatClient(t *testing.T) {
	hub := NewHub()
	conn := &stubConn{id: 1}

	hub.AddChatClient(conn, ConnInfo{EmpID: "EMP001"})
	if got := hub.ChatConns(); len(got) != 1 {
		t.Fatalf("expected one chat connection, got %d", len(got))
	}

	hub.RemoveChatClient(conn)
	if got := hub.ChatConns(); len(got) != 0 {
		t.Fatalf("expected chat room to be empty")
	}
}

func TestHubRemoveConnDetachesEverywhere(t *testing.T) {
	hub := NewHub()
	conn := &stubConn{id: 1}

	hub.AddChatClient(conn, ConnInfo{EmpID: "EMP001"})
	hub.AddNotifyClient("EMP001", conn, ConnInfo{EmpID: "EMP001"})

	hub.RemoveConn(conn)
	if got := hub.ChatConns(); len(got) != 0 {
		t.Fatalf("expected chat room to be empty")
	}
	if got := hub.NotifyConns("EMP001"); len(got) != 0 {
		t.Fatalf("expected notify room to be empty")
	}
}

func TestHubInfoLookup(t *testing.T) {
	hub := NewHub()
	conn := &stubConn{id: 1}

	if _, ok := hub.Info(conn); ok {
		t.Fatalf("expected unknown handle to report no info")
	}

	hub.AddNotifyClient("EMP001", conn, ConnInfo{ConnID: "c1", EmpID: "EMP001"})
	info, ok := hub.Info(conn)
	if !ok || info.ConnID != "c1" {
		t.Fatalf("expected info for registered handle, got %+v ok=%v", info, ok)
	}
}
