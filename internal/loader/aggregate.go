package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/unilang/internal/command"
	"github.com/footprint-tools/unilang/internal/usage"
)

// Module is one source of definitions merged by Aggregate. Definitions,
// when set, are used as is; otherwise the table is read from Path.
type Module struct {
	Name        string
	Path        string
	Prefix      string
	Definitions []command.CommandDefinition
}

// ParseModule reads a "prefix=path" or bare path argument.
func ParseModule(arg string) Module {
	path := arg
	prefix, rest, ok := strings.Cut(arg, "=")
	if ok && prefix != "" && !strings.ContainsAny(prefix, `/\`) {
		path = rest
	} else {
		prefix = ""
	}
	return Module{Name: filepath.Base(path), Path: path, Prefix: strings.Trim(prefix, command.Separator)}
}

// Under places the module's namespace below prefix.
func (m Module) Under(prefix string) Module {
	prefix = strings.Trim(prefix, command.Separator)
	switch {
	case prefix == "":
	case m.Prefix == "":
		m.Prefix = prefix
	default:
		m.Prefix = prefix + command.Separator + m.Prefix
	}
	return m
}

func (m Module) load() ([]command.CommandDefinition, error) {
	if m.Definitions != nil || m.Path == "" {
		return m.Definitions, nil
	}
	return LoadFile(m.Path)
}

// ConflictPolicy decides what happens when two definitions claim the same
// name or alias.
type ConflictPolicy int

const (
	// ConflictFail rejects the whole set and reports every conflict.
	ConflictFail ConflictPolicy = iota
	// ConflictUseFirst keeps the definition loaded first.
	ConflictUseFirst
	// ConflictUseLast keeps the definition loaded last.
	ConflictUseLast
)

// ParseConflictPolicy reads "fail", "first" or "last".
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return ConflictFail, nil
	case "first", "use-first":
		return ConflictUseFirst, nil
	case "last", "use-last":
		return ConflictUseLast, nil
	}
	return ConflictFail, fmt.Errorf("unknown conflict policy %q (want fail, first or last)", s)
}

func (p ConflictPolicy) String() string {
	switch p {
	case ConflictUseFirst:
		return "first"
	case ConflictUseLast:
		return "last"
	}
	return "fail"
}

// Conflict is a name claimed by more than one definition, with the
// modules that claimed it in load order.
type Conflict struct {
	Name    string
	Modules []string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s defined in %s", c.Name, strings.Join(c.Modules, ", "))
}

// Aggregation is the merged definition table and the conflicts that were
// resolved while building it.
type Aggregation struct {
	Definitions []command.CommandDefinition
	Conflicts   []Conflict
}

type aggregateEntry struct {
	def     command.CommandDefinition
	module  string
	dropped bool
}

// Aggregate merges modules in order. Each module's prefix is put in front
// of its commands' namespaces. Names and aliases shared by several
// definitions are resolved by policy; under ConflictFail the error lists
// every conflict found, not only the first.
func Aggregate(modules []Module, policy ConflictPolicy) (*Aggregation, error) {
	var (
		entries   []aggregateEntry
		owners    = make(map[string]int)
		conflicts []Conflict
		seen      = make(map[string]int)
	)

	record := func(name, owner, module string) {
		i, ok := seen[name]
		if !ok {
			seen[name] = len(conflicts)
			conflicts = append(conflicts, Conflict{Name: name, Modules: []string{owner, module}})
			return
		}
		conflicts[i].Modules = append(conflicts[i].Modules, module)
	}

	for _, m := range modules {
		defs, err := m.load()
		if err != nil {
			return nil, err
		}
		name := m.Name
		if name == "" {
			name = filepath.Base(m.Path)
		}

		for _, def := range defs {
			if m.Prefix != "" {
				def.Namespace = prefixNamespace(m.Prefix, def.Namespace)
			}

			claims := append([]string{def.FullName()}, def.Aliases...)
			var rivals []int
			for _, c := range claims {
				if i, ok := owners[c]; ok {
					record(c, entries[i].module, name)
					rivals = append(rivals, i)
				}
			}

			j := len(entries)
			entries = append(entries, aggregateEntry{def: def, module: name})
			if len(rivals) > 0 && policy != ConflictUseLast {
				entries[j].dropped = true
				continue
			}
			for _, i := range rivals {
				entries[i].dropped = true
				release(owners, entries[i].def, i)
			}
			for _, c := range claims {
				owners[c] = j
			}
		}
	}

	if policy == ConflictFail && len(conflicts) > 0 {
		lines := make([]string, len(conflicts))
		for i, c := range conflicts {
			lines[i] = "  " + c.String()
		}
		return nil, usage.DefinitionConflict(strings.Join(lines, "\n"))
	}

	agg := &Aggregation{Conflicts: conflicts}
	for _, e := range entries {
		if !e.dropped {
			agg.Definitions = append(agg.Definitions, e.def)
		}
	}
	return agg, nil
}

func release(owners map[string]int, def command.CommandDefinition, i int) {
	for _, c := range append([]string{def.FullName()}, def.Aliases...) {
		if owners[c] == i {
			delete(owners, c)
		}
	}
}

func prefixNamespace(prefix, ns string) string {
	head := command.Separator + prefix
	if ns == "" || ns == command.Separator {
		return head
	}
	return head + ns
}
