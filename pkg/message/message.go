// Package message реализует обмен сообщениями поверх одного UDP-сокета.
//
// Сообщения - это текстовые строки, уходящие датаграммами: они могут
// теряться и приходить не по порядку, подтверждений и повторов нет.
// Никаких игровых знаний у пакета нет - он лишь доставляет строки и
// мультиплексирует три источника событий (таймаут, stdin, сокет) в
// колбэки вызывающего кода.
//
// Все колбэки выполняются на горутине Loop строго в порядке наблюдения
// событий, поэтому состояние, которое трогают только обработчики, не
// требует блокировок.
package message

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/logger"
)

// MaxBytes - максимальный размер полезной нагрузки одной датаграммы.
const MaxBytes = 65507

// Порты ограничены незарезервированным диапазоном.
const (
	minPort = 1024
	maxPort = 65535
)

// Handlers - колбэки для Loop. Любой из них может быть nil; колбэк,
// вернувший true, останавливает цикл.
type Handlers struct {
	// Timeout вызывается, когда за отведенное время не было ни ввода,
	// ни датаграмм. Требует ненулевого таймаута в Loop.
	Timeout func() bool

	// Input вызывается на каждую строку со стандартного ввода
	// (перевод строки отрезан). EOF на stdin останавливает цикл.
	Input func(line string) bool

	// Message вызывается на каждую входящую датаграмму.
	Message func(from netip.AddrPort, msg string) bool
}

// Messenger владеет одним датаграммным сокетом, привязанным к
// эфемерному порту.
type Messenger struct {
	conn *net.UDPConn
	port int
	log  *logrus.Entry

	// In - источник консольного ввода; в тестах подменяется.
	In io.Reader
}

// Init открывает сокет на случайном порту и возвращает мессенджер.
// Назначенный порт доступен через Port().
func Init() (*Messenger, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero, Port: 0})
	if err != nil {
		return nil, fmt.Errorf("message: opening datagram socket: %w", err)
	}
	port := conn.LocalAddr().(*net.UDPAddr).Port

	m := &Messenger{
		conn: conn,
		port: port,
		log:  logger.Log.WithField("component", "message"),
		In:   os.Stdin,
	}
	m.log.WithField("port", port).Debug("ready")
	return m, nil
}

// Port возвращает локальный порт сокета.
func (m *Messenger) Port() int {
	return m.port
}

// Close закрывает сокет.
func (m *Messenger) Close() {
	if err := m.conn.Close(); err != nil {
		m.log.WithError(err).Debug("close")
	}
}

// Send отправляет строку по адресу. Доставка best-effort: ошибка
// логируется и проглатывается, подтверждений нет.
func (m *Messenger) Send(to netip.AddrPort, msg string) {
	if !to.IsValid() {
		m.log.Warn("send to no-address dropped")
		return
	}
	if _, err := m.conn.WriteToUDPAddrPort([]byte(msg), to); err != nil {
		m.log.WithError(err).WithField("to", to.String()).Error("send failed")
		return
	}
	m.log.WithFields(logrus.Fields{"to": to.String(), "bytes": len(msg)}).Debug("sent")
}

type packet struct {
	from netip.AddrPort
	text string
}

// Loop блокируется, раздавая события обработчикам, пока один из них не
// вернет true (штатная остановка, возвращается nil) или не случится
// невосстановимая ошибка. Таймаут > 0 требует обработчика Timeout и
// наоборот - как и в каждом цикле, источник без потребителя это ошибка
// использования.
func (m *Messenger) Loop(timeout time.Duration, h Handlers) error {
	if h.Timeout == nil && h.Input == nil && h.Message == nil {
		return errors.New("message: Loop called with all handlers nil")
	}
	if h.Timeout == nil && timeout > 0 {
		return errors.New("message: timeout set without Timeout handler")
	}
	if h.Timeout != nil && timeout <= 0 {
		return errors.New("message: Timeout handler without timeout")
	}

	msgCh := make(chan packet, 16)
	go m.readPump(msgCh)

	var inputCh chan string
	if h.Input != nil {
		inputCh = make(chan string)
		go m.inputPump(inputCh)
	}

	var tick <-chan time.Time
	if timeout > 0 {
		ticker := time.NewTicker(timeout)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case p, ok := <-msgCh:
			if !ok {
				return errors.New("message: socket closed")
			}
			if h.Message != nil && h.Message(p.from, p.text) {
				return nil
			}

		case line, ok := <-inputCh:
			if !ok {
				// EOF на stdin - штатное завершение.
				m.log.Debug("EOF on stdin")
				return nil
			}
			if h.Input(line) {
				return nil
			}

		case <-tick:
			if h.Timeout() {
				return nil
			}
		}
	}
}

// readPump читает датаграммы и передает их в цикл. Ошибки приема не
// фатальны: датаграмма игнорируется, чтение продолжается.
func (m *Messenger) readPump(out chan<- packet) {
	defer close(out)
	buf := make([]byte, MaxBytes)
	for {
		n, from, err := m.conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			m.log.WithError(err).Error("receive failed")
			continue
		}
		// Unmap приводит 4-in-6 адреса к чистому IPv4, чтобы адрес
		// одного отправителя всегда сравнивался как одно значение.
		addr := netip.AddrPortFrom(from.Addr().Unmap(), from.Port())
		m.log.WithFields(logrus.Fields{"from": addr.String(), "bytes": n}).Debug("received")
		out <- packet{from: addr, text: string(buf[:n])}
	}
}

// inputPump читает строки со стандартного ввода и передает их в цикл.
func (m *Messenger) inputPump(out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(m.In)
	scanner.Buffer(make([]byte, 0, 4096), MaxBytes)
	for scanner.Scan() {
		out <- scanner.Text()
	}
}

// NoAddr возвращает значение "адрес не задан".
func NoAddr() netip.AddrPort {
	return netip.AddrPort{}
}

// IsAddr сообщает, задан ли адрес.
func IsAddr(a netip.AddrPort) bool {
	return a.IsValid()
}

// EqAddr сравнивает два адреса по значению.
func EqAddr(a, b netip.AddrPort) bool {
	return a == b
}

// SetAddr превращает пару hostname/port в адрес корреспондента.
func SetAddr(hostname, portString string) (netip.AddrPort, error) {
	var port int
	var trailing byte
	if n, _ := fmt.Sscanf(portString, "%d%c", &port, &trailing); n != 1 {
		return NoAddr(), fmt.Errorf("message: bad port number %q", portString)
	}
	if port < minPort || port > maxPort {
		return NoAddr(), fmt.Errorf("message: illegal port number %d", port)
	}

	ua, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(hostname, portString))
	if err != nil {
		return NoAddr(), fmt.Errorf("message: cannot resolve %q: %w", hostname, err)
	}
	addr := ua.AddrPort()
	return netip.AddrPortFrom(addr.Addr().Unmap(), addr.Port()), nil
}
