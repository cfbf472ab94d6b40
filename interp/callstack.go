package interp

import (
	"fmt"
	"sort"
	"strings"
)

type ARKind int

const (
	ARProgram ARKind = iota
	ARProcedure
)

func (k ARKind) String() string {
	switch k {
	case ARProgram:
		return "PROGRAM"
	case ARProcedure:
		return "PROCEDURE"
	}
	return fmt.Sprintf("INVALID(%d)", int(k))
}

// ActivationRecord holds the variables of one invocation of the program or
// of a procedure.
type ActivationRecord struct {
	Name         string
	Kind         ARKind
	NestingLevel int

	// AccessLink points to the record of the lexically enclosing program
	// or procedure. It is nil for the program's record.
	AccessLink *ActivationRecord

	members  map[string]Number
	declared map[string]bool
}

func NewActivationRecord(name string, kind ARKind, nestingLevel int) *ActivationRecord {
	return &ActivationRecord{
		Name:         name,
		Kind:         kind,
		NestingLevel: nestingLevel,
		members:      make(map[string]Number),
		declared:     make(map[string]bool),
	}
}

func (ar *ActivationRecord) Get(name string) (Number, bool) {
	v, ok := ar.members[name]
	return v, ok
}

func (ar *ActivationRecord) Set(name string, v Number) {
	ar.members[name] = v
}

// Declare marks name as belonging to this record, even before it has a value.
func (ar *ActivationRecord) Declare(name string) {
	ar.declared[name] = true
}

func (ar *ActivationRecord) owns(name string) bool {
	if ar.declared[name] {
		return true
	}
	_, ok := ar.members[name]
	return ok
}

// resolve returns the first record along the access links, starting with
// ar, that declares or binds name.
func (ar *ActivationRecord) resolve(name string) *ActivationRecord {
	for r := ar; r != nil; r = r.AccessLink {
		if r.owns(name) {
			return r
		}
	}
	return nil
}

func (ar *ActivationRecord) Len() int {
	return len(ar.members)
}

// Names returns the names of all bound members, sorted.
func (ar *ActivationRecord) Names() []string {
	names := make([]string, 0, len(ar.members))
	for name := range ar.members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Members returns a copy of the bindings.
func (ar *ActivationRecord) Members() map[string]Number {
	m := make(map[string]Number, len(ar.members))
	for k, v := range ar.members {
		m[k] = v
	}
	return m
}

func (ar *ActivationRecord) String() string {
	lines := []string{fmt.Sprintf("%d: %s %s", ar.NestingLevel, ar.Kind, ar.Name)}
	for _, name := range ar.Names() {
		lines = append(lines, fmt.Sprintf("   %-6s: %s", name, ar.members[name]))
	}
	return strings.Join(lines, "\n")
}

// CallStack is the stack of currently active records.
type CallStack struct {
	records []*ActivationRecord
}

func (s *CallStack) Push(ar *ActivationRecord) {
	s.records = append(s.records, ar)
}

func (s *CallStack) Pop() *ActivationRecord {
	if len(s.records) == 0 {
		return nil
	}
	ar := s.records[len(s.records)-1]
	s.records = s.records[:len(s.records)-1]
	return ar
}

// Peek returns the top record, or nil if the stack is empty.
func (s *CallStack) Peek() *ActivationRecord {
	if len(s.records) == 0 {
		return nil
	}
	return s.records[len(s.records)-1]
}

func (s *CallStack) Len() int {
	return len(s.records)
}

func (s *CallStack) String() string {
	var buf strings.Builder
	buf.WriteString("CALL STACK\n")
	for i := len(s.records) - 1; i >= 0; i-- {
		buf.WriteString(s.records[i].String())
		buf.WriteString("\n")
	}
	return buf.String()
}
