package game

import (
	"net/netip"
	"strings"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/grid"
)

// Player - один подключившийся игрок.
type Player struct {
	// Addr - сетевой адрес игрока. Ключ идентичности: все сообщения
	// с этого адреса считаются сообщениями этого игрока.
	Addr netip.AddrPort

	// Name - санированное отображаемое имя.
	Name string

	// Alias - буква, выданная в порядке входа ('A', 'B', ...).
	// Она же - маркер игрока на мастер-гриде.
	Alias byte

	// Row, Col - текущая позиция.
	Row int
	Col int

	// Gold - кошелек; JustCollected - подобранное с прошлой рассылки,
	// обнуляется после того, как один раз ушло в GOLD-сообщении.
	Gold          int
	JustCollected int

	// Known - персональная карта: все, что игрок когда-либо видел.
	// Пересчитывается при каждой рассылке, рельеф накапливается.
	Known *grid.Grid
}

// sanitizeName готовит имя к показу: обрезает до MaxNameLength и
// заменяет непечатаемые и непробельные символы на '_'.
func sanitizeName(name string) string {
	if len(name) > MaxNameLength {
		name = name[:MaxNameLength]
	}
	b := []byte(name)
	for i, ch := range b {
		if !isGraph(ch) && !isBlank(ch) {
			b[i] = '_'
		}
	}
	return string(b)
}

// nameIsEmpty сообщает, состоит ли имя целиком из пробельных символов.
func nameIsEmpty(name string) bool {
	return strings.TrimSpace(name) == ""
}

func isGraph(ch byte) bool {
	return ch > ' ' && ch < 0x7f
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t'
}
