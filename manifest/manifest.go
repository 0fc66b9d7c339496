// Package manifest handles vcpu.toml run configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name FindAndLoad looks for.
const FileName = "vcpu.toml"

// Machine kinds.
const (
	KindIntcode  = "intcode"
	KindRegister = "register"
)

// Manifest represents a vcpu.toml configuration.
type Manifest struct {
	Machine   Machine          `toml:"machine"`
	Registers map[string]int64 `toml:"registers"`
	Input     Input            `toml:"input"`
	Network   Network          `toml:"network"`
	Snapshots Snapshots        `toml:"snapshots"`

	// Dir is the directory containing the vcpu.toml file (set at load time).
	Dir string `toml:"-"`
}

// Machine selects the program and the model that runs it.
type Machine struct {
	Kind    string `toml:"kind"`
	Program string `toml:"program"`
	Trace   bool   `toml:"trace"`
}

// Input is queued before the machine starts: values first, then text as
// character codes.
type Input struct {
	Values []int64 `toml:"values"`
	Text   string  `toml:"text"`
}

// Network configures the packet network.
type Network struct {
	Size       int `toml:"size"`
	NATAddress int `toml:"nat-address"`
	MaxRounds  int `toml:"max-rounds"`
}

// Snapshots configures the snapshot store.
type Snapshots struct {
	DB string `toml:"db"`
}

// Default returns the configuration used when no vcpu.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults(toml.MetaData{})
	return m
}

// applyDefaults fills unset fields. Keys where zero is a meaningful value
// are checked against md rather than compared with zero.
func (m *Manifest) applyDefaults(md toml.MetaData) {
	if m.Machine.Kind == "" {
		m.Machine.Kind = KindIntcode
	}
	if m.Network.Size == 0 {
		m.Network.Size = 50
	}
	if !md.IsDefined("network", "nat-address") {
		m.Network.NATAddress = 255
	}
	if m.Network.MaxRounds == 0 {
		m.Network.MaxRounds = 100_000
	}
	if m.Snapshots.DB == "" {
		m.Snapshots.DB = filepath.Join(".vcpu", "snapshots.db")
	}
}

// Validate checks values that defaults cannot fix.
func (m *Manifest) Validate() error {
	switch m.Machine.Kind {
	case KindIntcode, KindRegister:
	default:
		return fmt.Errorf("machine kind %q: want %s or %s", m.Machine.Kind, KindIntcode, KindRegister)
	}
	if m.Network.Size < 0 {
		return fmt.Errorf("network size %d is negative", m.Network.Size)
	}
	for name := range m.Registers {
		if len(name) != 1 || name[0] < 'a' || name[0] > 'z' {
			return fmt.Errorf("register %q: names are single letters a-z", name)
		}
	}
	return nil
}

// Load parses a vcpu.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	m.Machine.Kind = strings.ToLower(m.Machine.Kind)
	m.applyDefaults(md)
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a vcpu.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// resolve makes p absolute relative to the manifest directory.
func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// ProgramPath returns the path of the configured program, or "".
func (m *Manifest) ProgramPath() string {
	return m.resolve(m.Machine.Program)
}

// SnapshotDBPath returns the path of the snapshot database.
func (m *Manifest) SnapshotDBPath() string {
	return m.resolve(m.Snapshots.DB)
}

// InitialInput returns the configured input values followed by the input
// text as character codes. A non-empty text ends with a newline.
func (m *Manifest) InitialInput() []int64 {
	vals := append([]int64(nil), m.Input.Values...)
	if m.Input.Text == "" {
		return vals
	}
	for _, r := range m.Input.Text {
		vals = append(vals, int64(r))
	}
	if !strings.HasSuffix(m.Input.Text, "\n") {
		vals = append(vals, '\n')
	}
	return vals
}
