// Package api описывает проводной протокол игры: однострочные текстовые
// команды клиента и ответы сервера. Пакет общий для сервера, терминального
// клиента и ботов - формат сообщений собирается и разбирается только здесь.
//
// Грамматика: ключевое слово, один пробел, аргументы. Сообщения уходят
// датаграммами как есть, без завершающего перевода строки (кроме DISPLAY,
// чье тело само многострочно).
package api

import (
	"fmt"
	"strings"
)

// --- КЛИЕНТ -> СЕРВЕР ---

const (
	CmdPlay     = "PLAY"     // PLAY <name> - войти игроком
	CmdSpectate = "SPECTATE" // SPECTATE    - войти зрителем
	CmdKey      = "KEY"      // KEY <char>  - нажатие клавиши
)

// Play собирает запрос на вход игроком.
func Play(name string) string {
	return CmdPlay + " " + name
}

// Spectate собирает запрос на вход зрителем.
func Spectate() string {
	return CmdSpectate
}

// Key собирает сообщение о нажатой клавише.
func Key(ch byte) string {
	return fmt.Sprintf("%s %c", CmdKey, ch)
}

// --- СЕРВЕР -> КЛИЕНТ ---

const (
	MsgOK      = "OK"      // OK <letter>
	MsgGrid    = "GRID"    // GRID <rows> <cols>
	MsgGold    = "GOLD"    // GOLD <justCollected> <purse> <left>
	MsgDisplay = "DISPLAY" // DISPLAY\n<текст карты>
	MsgError   = "ERROR"   // ERROR <text>
	MsgQuit    = "QUIT"    // QUIT <text>
)

// OK подтверждает вход и сообщает назначенную букву.
func OK(alias byte) string {
	return fmt.Sprintf("%s %c", MsgOK, alias)
}

// Grid сообщает размеры карты (один раз при входе).
func Grid(nrow, ncol int) string {
	return fmt.Sprintf("%s %d %d", MsgGrid, nrow, ncol)
}

// Gold собирает сводку по золоту после изменения состояния.
func Gold(justCollected, purse, left int) string {
	return fmt.Sprintf("%s %d %d %d", MsgGold, justCollected, purse, left)
}

// Display оборачивает отрисованную карту.
func Display(rendered string) string {
	return MsgDisplay + "\n" + rendered
}

// Error собирает ответ на некорректный запрос.
func Error(text string) string {
	return MsgError + " " + text
}

// Quit собирает сообщение о завершении сессии.
func Quit(text string) string {
	return MsgQuit + " " + text
}

// ScoreRow - одна строка итоговой таблицы при завершении игры.
type ScoreRow struct {
	Alias byte   `json:"alias"`
	Gold  int    `json:"gold"`
	Name  string `json:"name"`
}

// GameOver собирает финальное QUIT-сообщение с таблицей результатов:
// буква игрока, кошелек в колонке шириной 6, имя.
func GameOver(rows []ScoreRow) string {
	var b strings.Builder
	b.WriteString(MsgQuit + " GAME OVER:\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%c%6d   %s\n", row.Alias, row.Gold, row.Name)
	}
	return b.String()
}

// --- РАЗБОР (сторона клиента) ---

// Keyword возвращает первое слово сообщения и остаток после пробела
// или перевода строки. Для "DISPLAY\n..." остаток - текст карты.
func Keyword(msg string) (keyword, rest string) {
	if i := strings.IndexAny(msg, " \n"); i >= 0 {
		return msg[:i], msg[i+1:]
	}
	return msg, ""
}

// ParseGrid разбирает аргументы сообщения GRID.
func ParseGrid(rest string) (nrow, ncol int, err error) {
	if _, err = fmt.Sscanf(rest, "%d %d", &nrow, &ncol); err != nil {
		return 0, 0, fmt.Errorf("api: bad GRID %q: %w", rest, err)
	}
	return nrow, ncol, nil
}

// ParseGold разбирает аргументы сообщения GOLD.
func ParseGold(rest string) (justCollected, purse, left int, err error) {
	if _, err = fmt.Sscanf(rest, "%d %d %d", &justCollected, &purse, &left); err != nil {
		return 0, 0, 0, fmt.Errorf("api: bad GOLD %q: %w", rest, err)
	}
	return justCollected, purse, left, nil
}
