// Package client реализует тонкий терминальный клиент: он не считает
// игровое состояние, а только рисует присланные сервером строки и
// превращает нажатия в однострочные команды.
package client

import (
	"fmt"

	"github.com/fatih/color"
)

// Display отвечает за вывод на терминал.
type Display struct {
	statusColor *color.Color
	goldColor   *color.Color
	selfColor   *color.Color
	otherColor  *color.Color
	infoColor   *color.Color
	warnColor   *color.Color
	errorColor  *color.Color
}

// NewDisplay создает дисплей с настроенными цветами.
func NewDisplay() *Display {
	return &Display{
		statusColor: color.New(color.FgCyan, color.Bold),
		goldColor:   color.New(color.FgYellow, color.Bold),
		selfColor:   color.New(color.FgGreen, color.Bold),
		otherColor:  color.New(color.FgMagenta),
		infoColor:   color.New(color.FgWhite),
		warnColor:   color.New(color.FgYellow),
		errorColor:  color.New(color.FgRed, color.Bold),
	}
}

// Render перерисовывает экран: строка статуса, затем карта.
// Золото, собственный курсор и чужие игроки подсвечиваются.
func (d *Display) Render(status, mapText string) {
	// ANSI: курсор в угол, очистить экран.
	fmt.Print("\033[H\033[2J")
	d.statusColor.Println(status)

	for i := 0; i < len(mapText); i++ {
		ch := mapText[i]
		switch {
		case ch == '*':
			d.goldColor.Print(string(ch))
		case ch == '@':
			d.selfColor.Print(string(ch))
		case ch >= 'A' && ch <= 'Z':
			d.otherColor.Print(string(ch))
		default:
			fmt.Print(string(ch))
		}
	}
}

// PrintInfo выводит служебное сообщение.
func (d *Display) PrintInfo(text string) {
	d.infoColor.Println(text)
}

// PrintWarning выводит предупреждение (например, ERROR от сервера).
func (d *Display) PrintWarning(text string) {
	d.warnColor.Println(text)
}

// PrintError выводит ошибку.
func (d *Display) PrintError(text string) {
	d.errorColor.Println(text)
}
