package cli

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/calvinalkan/ringheap/pkg/ringheap"
)

// Item is what ringy stores: a priority and a label naming it in output.
type Item struct {
	Priority int64
	Label    string
}

func (it Item) String() string {
	return fmt.Sprintf("%s priority=%d", it.Label, it.Priority)
}

func compareItems(a, b Item) int {
	return cmp.Compare(a.Priority, b.Priority)
}

// commandNames feeds REPL completion.
var commandNames = []string{
	"push", "pop", "peek", "oldest", "top", "list",
	"drain", "len", "info", "clear", "help", "exit", "quit", "q",
}

// Session executes ringy commands against one heap.
type Session struct {
	heap    *ringheap.Heap[Item]
	compare func(a, b Item) int
	order   string
	io      *IO

	pushed  uint64
	evicted uint64

	// newLabel names items pushed without an explicit label.
	newLabel func() string
}

// NewSession creates a session with an empty heap configured by cfg.
func NewSession(cfg Config, o *IO) (*Session, error) {
	compare := compareItems
	if cfg.Order == OrderMax {
		compare = ringheap.Reverse(compareItems)
	}

	h, err := ringheap.New(cfg.Capacity, compare)
	if err != nil {
		return nil, fmt.Errorf("creating heap: %w", err)
	}

	return &Session{
		heap:     h,
		compare:  compare,
		order:    cfg.Order,
		io:       o,
		newLabel: shortID,
	}, nil
}

func shortID() string {
	id := uuid.New().String()

	return id[:8]
}

// Exec runs one command line. It returns quit=true for exit commands.
// Blank lines and lines starting with '#' are ignored.
func (s *Session) Exec(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	parts := strings.Fields(line)
	name := strings.ToLower(parts[0])
	args := parts[1:]

	switch name {
	case "exit", "quit", "q":
		return true, nil
	case "help", "?":
		s.printHelp()
	case "push":
		return false, s.cmdPush(args)
	case "pop":
		s.printOne(s.heap.PopTop())
	case "peek":
		s.printOne(s.heap.PeekTop())
	case "oldest":
		s.printOne(s.heap.PeekOldest())
	case "top":
		return false, s.cmdTop(args)
	case "list", "ls":
		s.cmdList()
	case "drain":
		return false, s.cmdDrain(args)
	case "len", "count":
		s.io.Println(s.heap.Len())
	case "info":
		s.cmdInfo()
	case "clear":
		n := s.heap.Len()
		s.heap.Clear()
		s.io.Printf("cleared %d\n", n)
	default:
		return false, fmt.Errorf("%w: %s (type 'help' for commands)", ErrUnknownCommand, name)
	}

	return false, nil
}

func (s *Session) cmdPush(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: push <priority> [label]", ErrUsage)
	}

	priority, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid priority %q: %w", args[0], err)
	}

	var label string
	if len(args) == 2 {
		label = args[1]
	} else {
		label = s.newLabel()
	}

	it := Item{Priority: priority, Label: label}

	old, evicted := s.heap.Push(it)
	s.pushed++

	s.io.Println("pushed", it)

	if evicted {
		s.evicted++
		s.io.Println("evicted", old)
	}

	return nil
}

// cmdTop prints the k best items without removing them. It ranks a copy of
// the retained items in a scratch heap.
func (s *Session) cmdTop(args []string) error {
	k, err := parseLimit(args, "top [k]")
	if err != nil {
		return err
	}

	if s.heap.IsEmpty() {
		s.io.Println("(empty)")

		return nil
	}

	scratch, err := ringheap.New(s.heap.Len(), s.compare)
	if err != nil {
		return fmt.Errorf("creating scratch heap: %w", err)
	}

	for it := range s.heap.All() {
		scratch.Push(it)
	}

	rank := 0

	for it := range scratch.DrainSorted() {
		rank++
		s.io.Printf("%d. %s\n", rank, it)

		if rank == k {
			break
		}
	}

	return nil
}

func (s *Session) cmdList() {
	if s.heap.IsEmpty() {
		s.io.Println("(empty)")

		return
	}

	for it := range s.heap.All() {
		s.io.Println(it)
	}
}

func (s *Session) cmdDrain(args []string) error {
	k, err := parseLimit(args, "drain [k]")
	if err != nil {
		return err
	}

	n := 0

	for it := range s.heap.DrainSorted() {
		n++
		s.io.Println(it)

		if n == k {
			break
		}
	}

	if n == 0 {
		s.io.Println("(empty)")
	}

	return nil
}

func (s *Session) cmdInfo() {
	s.io.Printf("capacity=%d len=%d order=%s pushed=%d evicted=%d\n",
		s.heap.Cap(), s.heap.Len(), s.order, s.pushed, s.evicted)
}

func (s *Session) printOne(it Item, ok bool) {
	if !ok {
		s.io.Println("(empty)")

		return
	}

	s.io.Println(it)
}

func (s *Session) printHelp() {
	s.io.Println("Commands:")
	s.io.Println("  push <priority> [label]   Push an item (evicts the oldest when full)")
	s.io.Println("  pop                       Remove and show the top item")
	s.io.Println("  peek                      Show the top item")
	s.io.Println("  oldest                    Show the item the next overflow evicts")
	s.io.Println("  top [k]                   Show the k best items without removing them")
	s.io.Println("  list                      Show retained items, oldest first")
	s.io.Println("  drain [k]                 Pop up to k items (all if omitted)")
	s.io.Println("  len                       Count retained items")
	s.io.Println("  info                      Show capacity, order and counters")
	s.io.Println("  clear                     Drop all items")
	s.io.Println("  help                      Show this help")
	s.io.Println("  exit / quit / q           Exit")
}

// parseLimit parses an optional positive count. 0 means no limit.
func parseLimit(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}

	if len(args) > 1 {
		return 0, fmt.Errorf("%w: %s", ErrUsage, usage)
	}

	k, err := strconv.Atoi(args[0])
	if err != nil || k <= 0 {
		return 0, fmt.Errorf("%w: %s (k must be a positive integer)", ErrUsage, usage)
	}

	return k, nil
}
