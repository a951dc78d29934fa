package memcache

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type storedItem struct {
	value   []byte
	exptime int64
}

// textServer speaks enough of the memcached text protocol for gomemcache:
// version, gets, set, delete and flush_all.
type textServer struct {
	ln   net.Listener
	open atomic.Int32

	mu    sync.Mutex
	items map[string]storedItem
}

func newTextServer(t *testing.T) *textServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &textServer{ln: ln, items: map[string]storedItem{}}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

func (s *textServer) hostPort(t *testing.T) (string, int) {
	t.Helper()
	host, port, err := net.SplitHostPort(s.ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	p, _ := strconv.Atoi(port)
	return host, p
}

func (s *textServer) item(key string) (storedItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[key]
	return it, ok
}

// waitOpen polls until the number of open client connections equals want.
func (s *textServer) waitOpen(t *testing.T, want int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.open.Load() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("open connections = %d, want %d", s.open.Load(), want)
}

func (s *textServer) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.open.Add(1)
		go s.handle(c)
	}
}

func (s *textServer) handle(c net.Conn) {
	defer s.open.Add(-1)
	defer c.Close()
	r := bufio.NewReader(c)
	w := bufio.NewWriter(c)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		f := strings.Fields(line)
		if len(f) == 0 {
			return
		}
		switch f[0] {
		case "version":
			fmt.Fprint(w, "VERSION 1.6.0\r\n")
		case "get", "gets":
			s.mu.Lock()
			for _, k := range f[1:] {
				if it, ok := s.items[k]; ok {
					fmt.Fprintf(w, "VALUE %s 0 %d 1\r\n%s\r\n", k, len(it.value), it.value)
				}
			}
			s.mu.Unlock()
			fmt.Fprint(w, "END\r\n")
		case "set":
			// set <key> <flags> <exptime> <bytes>
			exp, _ := strconv.ParseInt(f[3], 10, 64)
			n, _ := strconv.Atoi(f[4])
			buf := make([]byte, n+2)
			if _, err := io.ReadFull(r, buf); err != nil {
				return
			}
			s.mu.Lock()
			s.items[f[1]] = storedItem{value: buf[:n], exptime: exp}
			s.mu.Unlock()
			fmt.Fprint(w, "STORED\r\n")
		case "delete":
			s.mu.Lock()
			_, ok := s.items[f[1]]
			delete(s.items, f[1])
			s.mu.Unlock()
			if ok {
				fmt.Fprint(w, "DELETED\r\n")
			} else {
				fmt.Fprint(w, "NOT_FOUND\r\n")
			}
		case "flush_all":
			s.mu.Lock()
			s.items = map[string]storedItem{}
			s.mu.Unlock()
			fmt.Fprint(w, "OK\r\n")
		default:
			fmt.Fprint(w, "ERROR\r\n")
		}
		if err := w.Flush(); err != nil {
			return
		}
	}
}
