package message

import (
	"net/netip"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestAddrValues(t *testing.T) {
	if IsAddr(NoAddr()) {
		t.Error("NoAddr must not be a valid address")
	}

	a, err := SetAddr("127.0.0.1", "2000")
	if err != nil {
		t.Fatalf("SetAddr failed: %v", err)
	}
	if !IsAddr(a) {
		t.Error("resolved address must be valid")
	}

	b, _ := SetAddr("127.0.0.1", "2000")
	if !EqAddr(a, b) {
		t.Error("same host:port must compare equal")
	}
	c, _ := SetAddr("127.0.0.1", "2001")
	if EqAddr(a, c) {
		t.Error("different ports must not compare equal")
	}
}

func TestSetAddr_BadPort(t *testing.T) {
	cases := []string{"abc", "", "80", "70000", "-5"}
	for _, port := range cases {
		if _, err := SetAddr("127.0.0.1", port); err == nil {
			t.Errorf("SetAddr with port %q should fail", port)
		}
	}
}

func TestLoop_Validation(t *testing.T) {
	m, err := Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer m.Close()

	if err := m.Loop(0, Handlers{}); err == nil {
		t.Error("all-nil handlers must be rejected")
	}
	if err := m.Loop(time.Second, Handlers{Message: func(netip.AddrPort, string) bool { return true }}); err == nil {
		t.Error("timeout without Timeout handler must be rejected")
	}
	if err := m.Loop(0, Handlers{Timeout: func() bool { return true }}); err == nil {
		t.Error("Timeout handler without timeout must be rejected")
	}
}

func TestSendAndLoop(t *testing.T) {
	receiver, err := Init()
	if err != nil {
		t.Fatalf("Init receiver: %v", err)
	}
	defer receiver.Close()

	sender, err := Init()
	if err != nil {
		t.Fatalf("Init sender: %v", err)
	}
	defer sender.Close()

	to := netip.AddrPortFrom(netip.MustParseAddr("127.0.0.1"), uint16(receiver.Port()))
	sender.Send(to, "PLAY Alice")

	var got string
	var timedOut bool
	// Таймаут здесь - страховка от зависания теста, не ожидаемый путь.
	err = receiver.Loop(3*time.Second, Handlers{
		Timeout: func() bool {
			timedOut = true
			return true
		},
		Message: func(from netip.AddrPort, msg string) bool {
			got = msg
			if !IsAddr(from) {
				t.Error("sender address must be valid")
			}
			return true
		},
	})
	if err != nil {
		t.Fatalf("Loop failed: %v", err)
	}
	if timedOut {
		t.Fatal("datagram over loopback never arrived")
	}
	if got != "PLAY Alice" {
		t.Errorf("received %q, want %q", got, "PLAY Alice")
	}
}

func TestLoop_Input(t *testing.T) {
	m, err := Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer m.Close()

	m.In = strings.NewReader("hello\nquit\nafter\n")

	var lines []string
	err = m.Loop(0, Handlers{
		Input: func(line string) bool {
			lines = append(lines, line)
			return line == "quit"
		},
	})
	if err != nil {
		t.Fatalf("Loop failed: %v", err)
	}
	if len(lines) != 2 || lines[0] != "hello" || lines[1] != "quit" {
		t.Errorf("lines = %v", lines)
	}
}

func TestLoop_InputEOF(t *testing.T) {
	m, err := Init()
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer m.Close()

	// EOF на stdin завершает цикл штатно.
	m.In = strings.NewReader("one\n")

	seen := 0
	err = m.Loop(0, Handlers{
		Input: func(line string) bool {
			seen++
			return false
		},
	})
	if err != nil {
		t.Fatalf("Loop after EOF = %v, want nil", err)
	}
	if seen != 1 {
		t.Errorf("handled %d lines, want 1", seen)
	}
}
