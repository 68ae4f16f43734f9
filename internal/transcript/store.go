// Package transcript 保存会话中按顺序追加的条目，并把每次变更通知给观察者。
package transcript

// ID 是会话内单调递增的条目编号，0 表示“未设置”（没有打开的条目）。
type ID uint64

// Kind 区分条目类型，创建后不可变。
type Kind int

const (
	UserCommand Kind = iota + 1
	AssistantOutput
	SystemNotice
	ErrorNotice
)

func (k Kind) String() string {
	switch k {
	case UserCommand:
		return "user_command"
	case AssistantOutput:
		return "assistant_output"
	case SystemNotice:
		return "system_notice"
	case ErrorNotice:
		return "error_notice"
	default:
		return "unknown"
	}
}

// Entry 是 transcript 中的一条记录。
type Entry struct {
	ID   ID     `json:"id"`
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Op 描述一次变更的类型。
type Op int

const (
	OpAppend Op = iota + 1
	OpExtend
	OpReset
)

func (o Op) String() string {
	switch o {
	case OpAppend:
		return "append"
	case OpExtend:
		return "extend"
	case OpReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Change 在每次变更后同步通知给观察者。
// OpExtend 时 Entry 为拼接后的条目，Fragment 为本次追加的片段。
type Change struct {
	Op       Op
	Entry    Entry
	Fragment string
}

// Store 是仅追加的有序日志，只允许整体 Reset。
// 只在 UI 事件循环中修改，不加锁。
type Store struct {
	entries   []Entry
	nextID    ID
	observers []func(Change)
}

// New 创建空 transcript。
func New() *Store {
	return &Store{nextID: 1}
}

// Observe 注册观察者，变更后在修改方 goroutine 上同步调用。
func (s *Store) Observe(fn func(Change)) {
	if s == nil || fn == nil {
		return
	}
	s.observers = append(s.observers, fn)
}

// Append 追加一条新条目并返回其 ID。
func (s *Store) Append(kind Kind, text string) ID {
	entry := Entry{ID: s.allocate(), Kind: kind, Text: text}
	s.entries = append(s.entries, entry)
	s.notify(Change{Op: OpAppend, Entry: entry})
	return entry.ID
}

// AppendOrExtend 在 openID 未设置时新建 AssistantOutput 条目，否则把 fragment 拼接到该条目。
// openID 指向的条目已不存在（例如被 Reset）时同样新建。
func (s *Store) AppendOrExtend(openID ID, fragment string) ID {
	if openID != 0 {
		if idx := s.indexOf(openID); idx >= 0 {
			s.entries[idx].Text += fragment
			s.notify(Change{Op: OpExtend, Entry: s.entries[idx], Fragment: fragment})
			return openID
		}
	}
	return s.Append(AssistantOutput, fragment)
}

// Reset 清空全部条目；ID 计数器保留，保证会话内不复用。
func (s *Store) Reset() {
	s.entries = nil
	s.notify(Change{Op: OpReset})
}

// Entries 返回按 ID 排序的快照副本。
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}
	return append([]Entry(nil), s.entries...)
}

// Len 返回当前条目数。
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Last 返回最新的条目。
func (s *Store) Last() (Entry, bool) {
	if s == nil || len(s.entries) == 0 {
		return Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// LastOfKind 返回指定类型的最新条目。
func (s *Store) LastOfKind(kind Kind) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Kind == kind {
			return s.entries[i], true
		}
	}
	return Entry{}, false
}

func (s *Store) allocate() ID {
	if s.nextID == 0 {
		s.nextID = 1
	}
	id := s.nextID
	s.nextID++
	return id
}

// indexOf 从尾部查找，打开的条目通常是最后一条。
func (s *Store) indexOf(id ID) int {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].ID == id {
			return i
		}
		if s.entries[i].ID < id {
			break
		}
	}
	return -1
}

func (s *Store) notify(c Change) {
	for _, fn := range s.observers {
		fn(c)
	}
}
