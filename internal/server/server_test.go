package server

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lawnchairsociety/castaway/internal/config"
	"github.com/lawnchairsociety/castaway/internal/game"
	"github.com/lawnchairsociety/castaway/internal/testclient"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	s := NewServer(cfg, func(name string) (*game.Session, error) {
		return newTestSession(t, name), nil
	})
	t.Cleanup(s.Shutdown)
	return s
}

func readMessage(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage failed: %v", err)
	}
	return string(msg)
}

func TestWebSocketServer_PlaysOneSessionPerConnection(t *testing.T) {
	srv := newTestServer(t, nil)
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws?name=Ann"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	if opening := readMessage(t, conn); !strings.Contains(opening, "Welcome Ann") {
		t.Errorf("Expected the welcome, got %q", opening)
	}

	conn.WriteMessage(websocket.TextMessage, []byte("take shell"))
	if reply := readMessage(t, conn); !strings.Contains(reply, "You took 'shell'") {
		t.Errorf("Expected the take reply, got %q", reply)
	}

	// A second player starts on an untouched island.
	other, _, err := websocket.DefaultDialer.Dial(
		"ws"+strings.TrimPrefix(httpServer.URL, "http")+"/ws?name=Bob", nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer other.Close()
	readMessage(t, other)
	other.WriteMessage(websocket.TextMessage, []byte("look"))
	if reply := readMessage(t, other); !strings.Contains(reply, "shell") {
		t.Errorf("Expected the shell still on the second island, got %q", reply)
	}

	conn.WriteMessage(websocket.TextMessage, []byte("quit"))
	if reply := readMessage(t, conn); !strings.Contains(reply, "Thank you Ann") {
		t.Errorf("Expected the farewell, got %q", reply)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); !isDisconnect(err) {
		t.Errorf("Expected the server to close the connection after quit, got %v", err)
	}
}

func TestWebSocketServer_RejectsOverLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Connections.MaxPerIP = 1
	srv := newTestServer(t, cfg)
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer first.Close()

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("Expected the second connection to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %v", resp)
	}
}

func TestWebSocketServer_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Connections.MaxPerIP = 1
	srv := newTestServer(t, cfg)
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	first, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer first.Close()

	spoofed := http.Header{"X-Forwarded-For": []string{"203.0.113.9"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, spoofed)
	if err == nil {
		t.Fatal("Expected a forged X-Forwarded-For not to bypass the per-IP limit")
	}
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %v", resp)
	}
}

func TestWebSocketServer_RejectsForeignOrigin(t *testing.T) {
	srv := newTestServer(t, nil)
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example")
	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	if _, _, err := websocket.DefaultDialer.Dial(wsURL, header); err == nil {
		t.Error("Expected a cross-origin connection to be rejected")
	}

	deadline := time.Now().Add(time.Second)
	for {
		if total, _ := srv.connLimiter.Stats(); total == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Expected the slot to be released after a failed upgrade")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestTCPServer_AsksNameAndPlays(t *testing.T) {
	srv := newTestServer(t, nil)
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	go srv.ServeTCP(listener)

	player, err := testclient.Join(listener.Addr().String(), "Robinson", 2*time.Second)
	if err != nil {
		t.Fatalf("Join failed: %v", err)
	}
	defer player.Close()

	if !player.HasMessage("Welcome Robinson") {
		t.Errorf("Expected the welcome, got:\n%s", player.Transcript())
	}

	player.ClearMessages()
	player.SendCommand("go N")
	if !player.WaitForMessage("You are in a forest.", 2*time.Second) {
		t.Errorf("Expected the forest, got:\n%s", player.Transcript())
	}

	player.SendCommand("quit")
	if !player.WaitForMessage("Thank you Robinson", 2*time.Second) {
		t.Errorf("Expected the farewell, got:\n%s", player.Transcript())
	}
}

func TestTCPServer_RefusesReservedName(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.ReserveNames("Jacob")
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	go srv.ServeTCP(listener)

	player, err := testclient.Dial(listener.Addr().String())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer player.Close()

	if !player.WaitForMessage(NamePrompt, 2*time.Second) {
		t.Fatalf("Expected the name prompt, got:\n%s", player.Transcript())
	}
	player.SendCommand("jacob")
	if !player.WaitForMessage("That name is not allowed", 2*time.Second) {
		t.Errorf("Expected a refusal, got:\n%s", player.Transcript())
	}
	player.SendCommand("Friday")
	if !player.WaitForMessage("Welcome Friday", 2*time.Second) {
		t.Errorf("Expected the welcome, got:\n%s", player.Transcript())
	}
}

func TestWebSocketServer_RejectsBannedName(t *testing.T) {
	srv := newTestServer(t, nil)
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws?name=SuperAdmin"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("Expected a banned name to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %v", resp)
	}
}

func TestServer_ShutdownDisconnectsPlayers(t *testing.T) {
	srv := NewServer(nil, func(name string) (*game.Session, error) {
		return newTestSession(t, name), nil
	})
	httpServer := httptest.NewServer(srv.Handler())
	defer httpServer.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(httpServer.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()
	readMessage(t, conn)

	if srv.ActiveClients() != 1 {
		t.Errorf("Expected 1 active client, got %d", srv.ActiveClients())
	}

	srv.Shutdown()

	if srv.ActiveClients() != 0 {
		t.Errorf("Expected no active clients after shutdown, got %d", srv.ActiveClients())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("Expected the connection to be closed")
	}
}
