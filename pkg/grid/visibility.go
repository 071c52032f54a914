package grid

// Луч взгляда перекрывается клеткой, если она не пол, не золото и не
// игрок. Границы и скала непрозрачны; через игроков и кучи видно.
func (g *Grid) isBlockable(r, c int) bool {
	return g.GetChar(r, c) != '.' && g.GetChar(r, c) != '*' && !g.IsPlayer(r, c)
}

// IsVisible сообщает, видна ли клетка (r,c) наблюдателю в (pr,pc) на
// мастер-гриде. Отрезок между клетками проверяется тремя проходами:
//
//  1. общий ряд: сканируются все промежуточные колонки;
//  2. общая колонка: сканируются все промежуточные ряды;
//  3. общий случай: для каждого промежуточного ряда линейной
//     интерполяцией вычисляется колонка пересечения. Если отрезок
//     проходит точно через клетку - проверяется она одна; если между
//     двумя клетками - луч перекрыт только когда непрозрачны ОБЕ
//     (т.е. взгляд может "протиснуться" между скалами по диагонали).
//     Затем симметричный проход по промежуточным колонкам.
//
// Сравнение ic == float64(int(ic)) сохранено из исходного алгоритма
// намеренно: при игровых размерах карт интерполяция дает малые
// рациональные числа, точно представимые в float64, а растеризация
// Брезенхэмом меняла бы состав видимых диагональных клеток.
func (g *Grid) IsVisible(pr, pc, r, c int) bool {
	// r2 >= r1, c2 >= c1
	r1, r2 := pr, r
	if pr > r {
		r1, r2 = r, pr
	}
	c1, c2 := pc, c
	if pc > c {
		c1, c2 = c, pc
	}

	drow := r - pr
	dcol := c - pc

	if drow == 0 { // общий ряд
		for j := c1 + 1; j < c2; j++ {
			if g.isBlockable(pr, j) {
				return false
			}
		}
	}

	if dcol == 0 { // общая колонка
		for i := r1 + 1; i < r2; i++ {
			if g.isBlockable(i, pc) {
				return false
			}
		}
	}

	// Проход по промежуточным рядам. При drow == 0 диапазон пуст,
	// поэтому деления на ноль не возникает.
	for i := r1 + 1; i < r2; i++ {
		ic := float64(i-pr)*float64(dcol)/float64(drow) + float64(pc)

		if ic == float64(int(ic)) { // отрезок пересекает клетку точно
			if g.isBlockable(i, int(ic)) {
				return false
			}
		} else { // отрезок проходит между двумя клетками
			if g.isBlockable(i, int(ic)) && g.isBlockable(i, int(ic)+1) {
				return false
			}
		}
	}

	// Симметричный проход по промежуточным колонкам.
	for i := c1 + 1; i < c2; i++ {
		ir := float64(i-pc)*float64(drow)/float64(dcol) + float64(pr)

		if ir == float64(int(ir)) {
			if g.isBlockable(int(ir), i) {
				return false
			}
		} else {
			if g.isBlockable(int(ir), i) && g.isBlockable(int(ir)+1, i) {
				return false
			}
		}
	}

	return true
}

// SetVisibility пересчитывает known-грид игрока, стоящего в (pr,pc):
// сбрасывает устаревшие маркеры (Clean), копирует из мастер-грида все
// видимые не-скальные клетки и ставит курсор '@' на позицию наблюдателя.
// Вызывается для каждого игрока после каждого изменения состояния.
func SetVisibility(master, raw, known *Grid, pr, pc int) {
	if master == nil || raw == nil || known == nil {
		return
	}
	Clean(raw, known)

	for r := 0; r < master.nrow; r++ {
		for c := 0; c < master.ncol; c++ {
			if master.IsRock(r, c) {
				continue
			}
			if master.IsVisible(pr, pc, r, c) {
				known.Update(r, c, master.GetChar(r, c))
			}
		}
	}
	known.Update(pr, pc, Cursor)
}
