package grid

import (
	"strings"
	"testing"
)

// Helper: парсит карту из литерала, падая при ошибке.
func mustParse(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return g
}

func TestNew_NegativeDimensions(t *testing.T) {
	if _, err := New(-1, 5); err == nil {
		t.Error("expected error for negative rows")
	}
	if _, err := New(5, -1); err == nil {
		t.Error("expected error for negative cols")
	}
}

func TestNew_Empty(t *testing.T) {
	g, err := New(3, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if g.NRows() != 3 || g.NCols() != 4 {
		t.Errorf("expected 3x4, got %dx%d", g.NRows(), g.NCols())
	}
	// Все клетки - скала.
	for r := 0; r < 3; r++ {
		for c := 0; c < 4; c++ {
			if !g.IsRock(r, c) {
				t.Errorf("cell (%d,%d) should start as rock", r, c)
			}
		}
	}
}

func TestGetChar_OutOfRange(t *testing.T) {
	g := mustParse(t, "...\n...\n")

	cases := [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 3}, {100, 100}}
	for _, rc := range cases {
		if ch := g.GetChar(rc[0], rc[1]); ch != Sentinel {
			t.Errorf("GetChar(%d,%d) = %q, want sentinel", rc[0], rc[1], ch)
		}
	}

	// nil-грид тоже отвечает сентинелом, а не паникой.
	var nilGrid *Grid
	if ch := nilGrid.GetChar(0, 0); ch != Sentinel {
		t.Errorf("nil grid GetChar = %q, want sentinel", ch)
	}
	if nilGrid.NRows() != -1 || nilGrid.NCols() != -1 {
		t.Error("nil grid dimensions should be -1")
	}
}

func TestUpdate_OutOfRange(t *testing.T) {
	g := mustParse(t, "...\n...\n")
	before := g.String()

	// Записи мимо карты молча игнорируются.
	g.Update(-1, 0, 'X')
	g.Update(0, -1, 'X')
	g.Update(5, 5, 'X')

	var nilGrid *Grid
	nilGrid.Update(0, 0, 'X') // не должно паниковать

	if g.String() != before {
		t.Error("out-of-range updates must not change the grid")
	}
}

func TestUpdate_InRange(t *testing.T) {
	g := mustParse(t, "...\n...\n")
	g.Update(1, 2, '*')
	if ch := g.GetChar(1, 2); ch != '*' {
		t.Errorf("GetChar(1,2) = %q, want '*'", ch)
	}
}

func TestParse_ShortLinesPadded(t *testing.T) {
	// Вторая строка короче первой: хвост должен остаться скалой.
	g := mustParse(t, "....\n..\n")
	if g.NRows() != 2 || g.NCols() != 4 {
		t.Fatalf("expected 2x4, got %dx%d", g.NRows(), g.NCols())
	}
	if !g.IsRock(1, 3) {
		t.Error("cell (1,3) should be rock")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty map")
	}
}

func TestString_RoundTrip(t *testing.T) {
	text := "+---+\n|..*|\n|.A#|\n+---+\n"
	g := mustParse(t, text)

	if g.String() != text {
		t.Errorf("String() = %q, want %q", g.String(), text)
	}

	// Сериализация и обратный разбор дают ту же матрицу.
	again := mustParse(t, g.String())
	if again.String() != g.String() {
		t.Error("parse(serialize(g)) differs from g")
	}
}

func TestClassification(t *testing.T) {
	g := mustParse(t, " -|+.#*A@\n")

	cases := []struct {
		col      int
		rock     bool
		boundary bool
		empty    bool
		gold     bool
		player   bool
		canMove  bool
	}{
		{0, true, false, false, false, false, false},  // ' '
		{1, false, true, false, false, false, false},  // '-'
		{2, false, true, false, false, false, false},  // '|'
		{3, false, true, false, false, false, false},  // '+'
		{4, false, false, true, false, false, true},   // '.'
		{5, false, false, false, false, false, true},  // '#'
		{6, false, false, false, true, false, true},   // '*'
		{7, false, false, false, false, true, true},   // 'A'
		{8, false, false, false, false, true, true},   // '@'
	}

	for _, tc := range cases {
		ch := g.GetChar(0, tc.col)
		if g.IsRock(0, tc.col) != tc.rock {
			t.Errorf("%q: IsRock = %v", ch, !tc.rock)
		}
		if g.IsBoundary(0, tc.col) != tc.boundary {
			t.Errorf("%q: IsBoundary = %v", ch, !tc.boundary)
		}
		if g.IsEmptyRoomSpot(0, tc.col) != tc.empty {
			t.Errorf("%q: IsEmptyRoomSpot = %v", ch, !tc.empty)
		}
		if g.IsGold(0, tc.col) != tc.gold {
			t.Errorf("%q: IsGold = %v", ch, !tc.gold)
		}
		if g.IsPlayer(0, tc.col) != tc.player {
			t.Errorf("%q: IsPlayer = %v", ch, !tc.player)
		}
		if g.CanMoveTo(0, tc.col) != tc.canMove {
			t.Errorf("%q: CanMoveTo = %v", ch, !tc.canMove)
		}
	}

	// За пределами карты входить некуда.
	if g.CanMoveTo(0, -1) || g.CanMoveTo(5, 0) {
		t.Error("CanMoveTo must be false outside the grid")
	}
}

func TestClean_RestoresTerrain(t *testing.T) {
	raw := mustParse(t, "+---+\n|...|\n+---+\n")
	known := mustParse(t, "+---+\n|A.*|\n+---+\n")

	Clean(raw, known)

	// Маркеры игрока и золота сброшены на рельеф.
	if ch := known.GetChar(1, 1); ch != '.' {
		t.Errorf("player cell = %q, want '.'", ch)
	}
	if ch := known.GetChar(1, 3); ch != '.' {
		t.Errorf("gold cell = %q, want '.'", ch)
	}
	// Рельеф не тронут.
	if !strings.HasPrefix(known.String(), "+---+") {
		t.Error("terrain must survive Clean")
	}
}

func TestClean_NilSafe(t *testing.T) {
	g := mustParse(t, "...\n")
	Clean(nil, g) // не должно паниковать
	Clean(g, nil)
	Clean(nil, nil)
}
