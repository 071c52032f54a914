package grid

import "testing"

func TestIsVisible_SameRow(t *testing.T) {
	// Внутренняя стена в ряду перекрывает взгляд вдоль ряда.
	g := mustParse(t, ""+
		"+--+--+\n"+
		"|..|..|\n"+
		"+--+--+\n")

	if g.IsVisible(1, 1, 1, 4) {
		t.Error("wall between (1,1) and (1,4) must block")
	}
	if !g.IsVisible(1, 1, 1, 2) {
		t.Error("adjacent floor in the same row must be visible")
	}
}

func TestIsVisible_SameColumn(t *testing.T) {
	g := mustParse(t, ""+
		"+-+\n"+
		"|.|\n"+
		"+-+\n"+
		"|.|\n"+
		"+-+\n")

	if g.IsVisible(1, 1, 3, 1) {
		t.Error("wall between (1,1) and (3,1) must block")
	}
}

func TestIsVisible_GoldAndPlayersDoNotBlock(t *testing.T) {
	// Золото и игроки прозрачны для взгляда.
	g := mustParse(t, ""+
		"+-----+\n"+
		"|.*A..|\n"+
		"+-----+\n")

	if !g.IsVisible(1, 1, 1, 5) {
		t.Error("gold and player cells must not block the ray")
	}
}

func TestIsVisible_DiagonalThreading(t *testing.T) {
	// Диагональный луч проходит между двумя клетками; он перекрыт
	// только когда непрозрачны ОБЕ соседние клетки.
	open := mustParse(t, ""+
		"..\n"+
		" .\n"+
		"..\n")
	if !open.IsVisible(0, 0, 2, 1) {
		t.Error("ray must thread between rock and floor")
	}

	sealed := mustParse(t, ""+
		"..\n"+
		"  \n"+
		"..\n")
	if sealed.IsVisible(0, 0, 2, 1) {
		t.Error("ray must be blocked when both straddling cells are rock")
	}
}

func TestIsVisible_Symmetry(t *testing.T) {
	// Перекрытие прямой не зависит от направления взгляда:
	// isVisible(a,b) == isVisible(b,a) для любых клеток карты.
	g := mustParse(t, ""+
		"+----+---+\n"+
		"|....|...|\n"+
		"|....#...|\n"+
		"|....|...|\n"+
		"+----+---+\n")

	nrow, ncol := g.NRows(), g.NCols()
	for r1 := 0; r1 < nrow; r1++ {
		for c1 := 0; c1 < ncol; c1++ {
			for r2 := 0; r2 < nrow; r2++ {
				for c2 := 0; c2 < ncol; c2++ {
					ab := g.IsVisible(r1, c1, r2, c2)
					ba := g.IsVisible(r2, c2, r1, c1)
					if ab != ba {
						t.Fatalf("asymmetry: (%d,%d)->(%d,%d)=%v but reverse=%v",
							r1, c1, r2, c2, ab, ba)
					}
				}
			}
		}
	}
}

func TestSetVisibility_KnownGrid(t *testing.T) {
	master := mustParse(t, ""+
		"+--+--+\n"+
		"|..|.*|\n"+
		"+--+--+\n")
	raw := mustParse(t, ""+
		"+--+--+\n"+
		"|..|..|\n"+
		"+--+--+\n")
	known, _ := New(master.NRows(), master.NCols())

	SetVisibility(master, raw, known, 1, 1)

	// Наблюдатель помечен курсором.
	if ch := known.GetChar(1, 1); ch != Cursor {
		t.Errorf("observer cell = %q, want '@'", ch)
	}
	// Клетка за стеной не видна - осталась скалой.
	if ch := known.GetChar(1, 4); ch != ' ' {
		t.Errorf("cell behind wall = %q, want unseen", ch)
	}
	// Своя половина комнаты видна.
	if ch := known.GetChar(1, 2); ch != '.' {
		t.Errorf("visible floor = %q, want '.'", ch)
	}
}

func TestSetVisibility_RetainsExploredTerrain(t *testing.T) {
	master := mustParse(t, ""+
		"+----+\n"+
		"|.*..|\n"+
		"+----+\n")
	raw := mustParse(t, ""+
		"+----+\n"+
		"|....|\n"+
		"+----+\n")
	known, _ := New(master.NRows(), master.NCols())

	// Первый расчет: золото в поле зрения.
	SetVisibility(master, raw, known, 1, 1)
	if ch := known.GetChar(1, 2); ch != '*' {
		t.Fatalf("gold should be visible, got %q", ch)
	}

	// Золото подобрали, наблюдатель ушел в дальний угол.
	master.Update(1, 2, '.')
	SetVisibility(master, raw, known, 1, 4)

	// Курсор переехал, бывшая клетка золота показывает рельеф.
	if ch := known.GetChar(1, 4); ch != Cursor {
		t.Errorf("observer cell = %q, want '@'", ch)
	}
	if ch := known.GetChar(1, 2); ch != '.' {
		t.Errorf("stale gold mark = %q, want '.'", ch)
	}
	// Верхняя граница, увиденная раньше, не забыта.
	if ch := known.GetChar(0, 0); ch != '+' {
		t.Errorf("explored boundary = %q, want '+'", ch)
	}
}

func TestSetVisibility_NilSafe(t *testing.T) {
	g := mustParse(t, "...\n")
	SetVisibility(nil, g, g, 0, 0) // не должно паниковать
	SetVisibility(g, nil, g, 0, 0)
	SetVisibility(g, g, nil, 0, 0)
}
