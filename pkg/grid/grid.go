// Package grid реализует карту игры: прямоугольную матрицу однобайтовых
// клеток с классификацией клеток и расчетом видимости.
//
// Алфавит клеток:
//
//	' '        скала (недостижимо)
//	'-' '|' '+' граница комнаты
//	'.'        пол комнаты
//	'#'        проход (проходим, но золото там не появляется)
//	'*'        куча золота
//	'A'..'Z', '@'  маркер игрока / курсор наблюдателя
//
// Все операции доступа терпимы к nil и к выходу за границы: чтение вне
// карты возвращает Sentinel, запись молча игнорируется. Это сознательная
// часть контракта - обработчики протокола не должны падать на мусорном
// вводе.
package grid

import (
	"fmt"
	"os"
	"strings"
)

// Sentinel возвращается при чтении за пределами карты (или из nil-грида).
// Символ не входит в игровой алфавит.
const Sentinel byte = '^'

// Cursor - маркер собственной позиции наблюдателя в его known-гриде.
const Cursor byte = '@'

// Grid хранит карту размером nrow x ncol, построчно, индексация с нуля.
// Размеры фиксируются при создании и больше не меняются.
type Grid struct {
	cells []byte
	nrow  int
	ncol  int
}

// New создает пустой грид (все клетки ' ') заданного размера.
// Возвращает ошибку при отрицательных размерах.
func New(nrow, ncol int) (*Grid, error) {
	if nrow < 0 || ncol < 0 {
		return nil, fmt.Errorf("grid: negative dimensions %dx%d", nrow, ncol)
	}
	g := &Grid{
		cells: make([]byte, nrow*ncol),
		nrow:  nrow,
		ncol:  ncol,
	}
	for i := range g.cells {
		g.cells[i] = ' '
	}
	return g, nil
}

// Load читает карту из файла. Количество строк задает число рядов,
// длина первой строки - число колонок.
func Load(mapFilename string) (*Grid, error) {
	data, err := os.ReadFile(mapFilename)
	if err != nil {
		return nil, fmt.Errorf("grid: load %s: %w", mapFilename, err)
	}
	return Parse(string(data))
}

// Parse строит грид из текстового представления карты. Перевод строки
// разделяет ряды и в клетки не попадает. Короткие ряды дополняются ' '.
func Parse(text string) (*Grid, error) {
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil, fmt.Errorf("grid: empty map")
	}
	lines := strings.Split(text, "\n")
	nrow := len(lines)
	ncol := len(lines[0])

	g, err := New(nrow, ncol)
	if err != nil {
		return nil, err
	}
	for r, line := range lines {
		for c := 0; c < len(line) && c < ncol; c++ {
			g.Update(r, c, line[c])
		}
	}
	return g, nil
}

// NRows возвращает число рядов; -1 для nil-грида.
func (g *Grid) NRows() int {
	if g == nil {
		return -1
	}
	return g.nrow
}

// NCols возвращает число колонок; -1 для nil-грида.
func (g *Grid) NCols() int {
	if g == nil {
		return -1
	}
	return g.ncol
}

// GetChar возвращает символ клетки (r,c).
// Возвращает Sentinel для nil-грида и координат вне карты.
func (g *Grid) GetChar(r, c int) byte {
	if g == nil {
		return Sentinel
	}
	if r >= 0 && r < g.nrow && c >= 0 && c < g.ncol {
		return g.cells[r*g.ncol+c]
	}
	return Sentinel
}

// Update записывает символ в клетку (r,c).
// Молча ничего не делает для nil-грида и координат вне карты.
func (g *Grid) Update(r, c int, ch byte) {
	if g == nil {
		return
	}
	if r >= 0 && r < g.nrow && c >= 0 && c < g.ncol {
		g.cells[r*g.ncol+c] = ch
	}
}

// IsRock сообщает, является ли клетка скалой (' ').
func (g *Grid) IsRock(r, c int) bool {
	return g.GetChar(r, c) == ' '
}

// IsBoundary сообщает, является ли клетка границей комнаты.
func (g *Grid) IsBoundary(r, c int) bool {
	ch := g.GetChar(r, c)
	return ch == '|' || ch == '-' || ch == '+'
}

// IsEmptyRoomSpot сообщает, является ли клетка свободным полом комнаты.
// Клетки с золотом или игроком свободными не считаются.
func (g *Grid) IsEmptyRoomSpot(r, c int) bool {
	return g.GetChar(r, c) == '.'
}

// IsGold сообщает, лежит ли в клетке куча золота.
func (g *Grid) IsGold(r, c int) bool {
	return g.GetChar(r, c) == '*'
}

// IsPlayer сообщает, занята ли клетка игроком (буква или курсор '@').
func (g *Grid) IsPlayer(r, c int) bool {
	ch := g.GetChar(r, c)
	return isLetter(ch) || ch == Cursor
}

// CanMoveTo сообщает, можно ли войти в клетку: не граница, не скала
// и не Sentinel. Пол, проход, золото и другой игрок - можно.
func (g *Grid) CanMoveTo(r, c int) bool {
	return !g.IsBoundary(r, c) && !g.IsRock(r, c) && g.GetChar(r, c) != Sentinel
}

// String сериализует грид в текст: ряды через '\n', включая завершающий.
// Parse(g.String()) при тех же размерах дает идентичную матрицу.
func (g *Grid) String() string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	b.Grow(g.nrow * (g.ncol + 1))
	for r := 0; r < g.nrow; r++ {
		b.Write(g.cells[r*g.ncol : (r+1)*g.ncol])
		b.WriteByte('\n')
	}
	return b.String()
}

// Clean сбрасывает в known-гриде все следы игроков и золота обратно на
// символ рельефа из raw-грида. Рельеф, увиденный ранее, остается - так
// known-грид накапливает исследованную часть карты.
func Clean(raw, known *Grid) {
	if raw == nil || known == nil {
		return
	}
	for r := 0; r < known.nrow; r++ {
		for c := 0; c < known.ncol; c++ {
			if known.IsGold(r, c) || known.IsPlayer(r, c) {
				known.Update(r, c, raw.GetChar(r, c))
			}
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
