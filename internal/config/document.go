// Package config owns the managed configuration file: the document model,
// the store that reads and atomically rewrites it, and the watcher that
// reports external edits.
package config

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ServerEntry is the launch descriptor for one MCP server. Only command and
// args are interpreted; any other fields are carried opaquely so that
// re-serializing a document never loses host-specific metadata.
type ServerEntry struct {
	Command string
	Args    []string
	Extra   map[string]json.RawMessage

	// hasCommand records that the source JSON carried a command key, so an
	// entry with an empty command round-trips without losing the key.
	hasCommand bool
}

// UnmarshalJSON implements json.Unmarshaler, splitting the known launch
// fields from the opaque remainder.
func (e *ServerEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out ServerEntry
	if v, ok := raw["command"]; ok {
		if err := json.Unmarshal(v, &out.Command); err != nil {
			return fmt.Errorf("invalid command field: %w", err)
		}
		out.hasCommand = true
		delete(raw, "command")
	}
	if v, ok := raw["args"]; ok {
		if err := json.Unmarshal(v, &out.Args); err != nil {
			return fmt.Errorf("invalid args field: %w", err)
		}
		if out.Args == nil {
			out.Args = []string{}
		}
		delete(raw, "args")
	}
	if len(raw) > 0 {
		out.Extra = raw
	}

	*e = out
	return nil
}

// MarshalJSON implements json.Marshaler, recombining the launch fields with
// the opaque remainder.
func (e ServerEntry) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(e.Extra)+2)
	for k, v := range e.Extra {
		m[k] = v
	}
	if e.Command != "" || e.hasCommand {
		m["command"] = e.Command
	}
	if e.Args != nil {
		m["args"] = e.Args
	}
	return json.Marshal(m)
}

// Document is the full decoded state of the managed configuration file.
// Entries under mcpServers are launched by the host application; entries
// holstered under unusedMcpServers are ignored by it.
type Document struct {
	Active   map[string]ServerEntry `json:"mcpServers"`
	Inactive map[string]ServerEntry `json:"unusedMcpServers"`
}

// NewDocument returns an empty document with both collections allocated.
func NewDocument() *Document {
	return &Document{
		Active:   make(map[string]ServerEntry),
		Inactive: make(map[string]ServerEntry),
	}
}

// normalize allocates any collection absent from the source JSON. Both keys
// are optional on read but always written back.
func (d *Document) normalize() {
	if d.Active == nil {
		d.Active = make(map[string]ServerEntry)
	}
	if d.Inactive == nil {
		d.Inactive = make(map[string]ServerEntry)
	}
}

// Validate checks the structural invariant: a server name appears in at most
// one collection.
func (d *Document) Validate() error {
	var dup []string
	for name := range d.Active {
		if _, ok := d.Inactive[name]; ok {
			dup = append(dup, name)
		}
	}
	if len(dup) > 0 {
		sort.Strings(dup)
		return fmt.Errorf("server names present in both mcpServers and unusedMcpServers: %v", dup)
	}
	return nil
}
