package semantic

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	"github.com/akrennmair/spi/parser"
)

// ScopedSymbolTable holds the symbols of a single scope. Scopes are chained
// through Enclosing up to the global scope, whose Enclosing is nil.
type ScopedSymbolTable struct {
	Name      string
	Level     int
	Enclosing *ScopedSymbolTable

	symbols map[string]parser.Symbol
	logger  *log.Logger
}

func NewScopedSymbolTable(name string, level int, enclosing *ScopedSymbolTable) *ScopedSymbolTable {
	return &ScopedSymbolTable{
		Name:      name,
		Level:     level,
		Enclosing: enclosing,
		symbols:   make(map[string]parser.Symbol),
		logger:    log.New(io.Discard, "", 0),
	}
}

func (s *ScopedSymbolTable) initBuiltins() {
	s.Define(&parser.BuiltinTypeSymbol{Name: "INTEGER"})
	s.Define(&parser.BuiltinTypeSymbol{Name: "REAL"})
}

// Define inserts sym into this scope, replacing any symbol of the same name.
func (s *ScopedSymbolTable) Define(sym parser.Symbol) {
	s.logger.Printf("Insert: %s", sym.SymbolName())
	s.symbols[sym.SymbolName()] = sym
}

// Lookup finds name in this scope or, failing that, in the enclosing scopes.
func (s *ScopedSymbolTable) Lookup(name string) parser.Symbol {
	for scope := s; scope != nil; scope = scope.Enclosing {
		s.logger.Printf("Lookup: %s (Scope name: %s)", name, scope.Name)
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// LookupCurrent finds name in this scope only.
func (s *ScopedSymbolTable) LookupCurrent(name string) parser.Symbol {
	s.logger.Printf("Lookup: %s (Scope name: %s)", name, s.Name)
	return s.symbols[name]
}

// Names returns the names defined in this scope, sorted.
func (s *ScopedSymbolTable) Names() []string {
	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *ScopedSymbolTable) String() string {
	var buf strings.Builder

	h1 := "SCOPE (SCOPED SYMBOL TABLE)"
	fmt.Fprintf(&buf, "%s\n%s\n", h1, strings.Repeat("=", len(h1)))

	enclosing := "None"
	if s.Enclosing != nil {
		enclosing = s.Enclosing.Name
	}
	fmt.Fprintf(&buf, "Scope name     : %s\n", s.Name)
	fmt.Fprintf(&buf, "Scope level    : %d\n", s.Level)
	fmt.Fprintf(&buf, "Enclosing scope: %s\n", enclosing)

	h2 := "Scope (Scoped symbol table) contents"
	fmt.Fprintf(&buf, "%s\n%s\n", h2, strings.Repeat("-", len(h2)))
	for _, name := range s.Names() {
		fmt.Fprintf(&buf, "%7s: %s\n", name, s.symbols[name])
	}

	return buf.String()
}
