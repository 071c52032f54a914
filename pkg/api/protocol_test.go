package api

import "testing"

func TestClientMessages(t *testing.T) {
	if got := Play("Alice"); got != "PLAY Alice" {
		t.Errorf("Play = %q", got)
	}
	if got := Spectate(); got != "SPECTATE" {
		t.Errorf("Spectate = %q", got)
	}
	if got := Key('h'); got != "KEY h" {
		t.Errorf("Key = %q", got)
	}
}

func TestServerMessages(t *testing.T) {
	// Грамматика фиксирована: ключевое слово, один пробел, аргументы.
	if got := OK('A'); got != "OK A" {
		t.Errorf("OK = %q", got)
	}
	if got := Grid(21, 79); got != "GRID 21 79" {
		t.Errorf("Grid = %q", got)
	}
	if got := Gold(7, 42, 201); got != "GOLD 7 42 201" {
		t.Errorf("Gold = %q", got)
	}
	if got := Display("+-+\n|.|\n+-+\n"); got != "DISPLAY\n+-+\n|.|\n+-+\n" {
		t.Errorf("Display = %q", got)
	}
	if got := Error("unknown command"); got != "ERROR unknown command" {
		t.Errorf("Error = %q", got)
	}
	if got := Quit("Thanks for playing!"); got != "QUIT Thanks for playing!" {
		t.Errorf("Quit = %q", got)
	}
}

func TestGameOver_Table(t *testing.T) {
	rows := []ScoreRow{
		{Alias: 'A', Gold: 0, Name: "Alice"},
		{Alias: 'B', Gold: 12, Name: "Bob"},
		{Alias: 'C', Gold: 238, Name: "Carol"},
	}

	want := "QUIT GAME OVER:\n" +
		"A     0   Alice\n" +
		"B    12   Bob\n" +
		"C   238   Carol\n"

	if got := GameOver(rows); got != want {
		t.Errorf("GameOver =\n%q\nwant\n%q", got, want)
	}
}

func TestKeyword(t *testing.T) {
	cases := []struct {
		msg     string
		keyword string
		rest    string
	}{
		{"OK A", "OK", "A"},
		{"GRID 5 5", "GRID", "5 5"},
		{"DISPLAY\n+-+\n", "DISPLAY", "+-+\n"},
		{"SPECTATE", "SPECTATE", ""},
	}
	for _, tc := range cases {
		keyword, rest := Keyword(tc.msg)
		if keyword != tc.keyword || rest != tc.rest {
			t.Errorf("Keyword(%q) = %q,%q want %q,%q",
				tc.msg, keyword, rest, tc.keyword, tc.rest)
		}
	}
}

func TestParseGrid(t *testing.T) {
	nrow, ncol, err := ParseGrid("21 79")
	if err != nil || nrow != 21 || ncol != 79 {
		t.Errorf("ParseGrid = %d,%d,%v", nrow, ncol, err)
	}
	if _, _, err := ParseGrid("garbage"); err == nil {
		t.Error("expected error for malformed GRID")
	}
}

func TestParseGold(t *testing.T) {
	jc, purse, left, err := ParseGold("7 42 201")
	if err != nil || jc != 7 || purse != 42 || left != 201 {
		t.Errorf("ParseGold = %d,%d,%d,%v", jc, purse, left, err)
	}
	if _, _, _, err := ParseGold("1 2"); err == nil {
		t.Error("expected error for short GOLD")
	}
}
