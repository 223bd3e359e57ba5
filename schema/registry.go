package schema

import (
	"fmt"
	"sort"

	"github.com/datastax/sql-datatables/config"
	"github.com/datastax/sql-datatables/db"
)

// Registry holds the tables exposed by an endpoint. It is read only once created and can be
// shared between requests.
type Registry struct {
	tables map[string]*Table
	names  []string
}

// NewRegistry builds the tables declared in tables
func NewRegistry(dbClient *db.Db, tables []config.TableConfig, cfg config.Config) (*Registry, error) {
	registry := &Registry{
		tables: make(map[string]*Table, len(tables)),
		names:  make([]string, 0, len(tables)),
	}

	for _, tableCfg := range tables {
		if err := tableCfg.Validate(); err != nil {
			return nil, err
		}

		if _, ok := registry.tables[tableCfg.Name]; ok {
			return nil, fmt.Errorf("table '%s' is declared more than once", tableCfg.Name)
		}

		table, err := newTable(dbClient, tableCfg, cfg.Naming(), cfg.Logger())
		if err != nil {
			return nil, fmt.Errorf("unable to build table '%s': %w", tableCfg.Name, err)
		}

		registry.tables[table.Name()] = table
		registry.names = append(registry.names, table.Name())
	}

	sort.Strings(registry.names)
	return registry, nil
}

// Table returns the table exposed as name, nil when there is none
func (r *Registry) Table(name string) *Table {
	return r.tables[name]
}

// Names returns the sorted names of the tables
func (r *Registry) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}
