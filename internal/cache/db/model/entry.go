package model

// Entry is a stored cache value. A nil value is a legitimately cached negative result.
type Entry struct {
	key   Key
	value any
}

func NewEntry(key Key, value any) *Entry {
	return &Entry{key: key, value: value}
}

func (e *Entry) Key() Key   { return e.key }
func (e *Entry) Value() any { return e.value }
func (e *Entry) Swap(v any) { e.value = v }
