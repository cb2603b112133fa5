package workload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ossim/ossim/sim"
	"github.com/ossim/ossim/sim/paging"
)

// Scenario is the top-level simulation configuration.
// Loaded from YAML via LoadScenario(path).
type Scenario struct {
	Version   string        `yaml:"version"`
	Quantum   int64         `yaml:"quantum"`  // system-wide Round-Robin time slice
	Overhead  int64         `yaml:"overhead"` // system-wide cost charged after each dispatch
	Processes []ProcessSpec `yaml:"processes"`
	Memory    MemorySpec    `yaml:"memory"`
	Accesses  []AccessSpec  `yaml:"accesses,omitempty"`
}

// ProcessSpec defines a single process.
type ProcessSpec struct {
	ID       string `yaml:"id"`
	Arrival  int64  `yaml:"arrival"`
	Burst    int64  `yaml:"burst"`
	Deadline int64  `yaml:"deadline"`
	Pages    []int  `yaml:"pages,omitempty"`
}

// MemorySpec configures the RAM/disk hierarchy.
type MemorySpec struct {
	RAMCapacity       int    `yaml:"ram_capacity"`
	DiskCapacity      int    `yaml:"disk_capacity"`
	DiskAccessLatency int64  `yaml:"disk_access_latency"`
	FaultPolicy       string `yaml:"fault_policy,omitempty"` // "lru" (default) or "fifo"
	LoadOnFirstTouch  bool   `yaml:"load_on_first_touch,omitempty"`
}

// AccessSpec is one entry of the page access sequence.
type AccessSpec struct {
	Process string `yaml:"process"`
	Page    int    `yaml:"page"`
}

var validVersions = map[string]bool{"": true, "1": true}

// LoadScenario reads and parses a YAML scenario file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes a YAML scenario document with strict field checking.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if s.Memory.FaultPolicy == "" {
		s.Memory.FaultPolicy = string(paging.PolicyLRU)
	}
	if s.Version == "" {
		logrus.Debugf("scenario has no version, assuming \"1\"")
		s.Version = "1"
	}
	return &s, nil
}

// DefaultScenario returns the built-in four-process scenario: quantum 4,
// overhead 1, RAM of 10 pages, disk of 20 pages, disk latency 2.
func DefaultScenario() *Scenario {
	return &Scenario{
		Version:  "1",
		Quantum:  4,
		Overhead: 1,
		Processes: []ProcessSpec{
			{ID: "1", Arrival: 0, Burst: 8, Deadline: 10, Pages: []int{1, 2}},
			{ID: "2", Arrival: 1, Burst: 4, Deadline: 12, Pages: []int{3, 4}},
			{ID: "3", Arrival: 2, Burst: 9, Deadline: 14, Pages: []int{5, 6}},
			{ID: "4", Arrival: 3, Burst: 5, Deadline: 16, Pages: []int{7, 8}},
		},
		Memory: MemorySpec{
			RAMCapacity:       10,
			DiskCapacity:      20,
			DiskAccessLatency: 2,
			FaultPolicy:       string(paging.PolicyLRU),
		},
		Accesses: []AccessSpec{
			{Process: "1", Page: 1},
			{Process: "2", Page: 3},
			{Process: "3", Page: 5},
			{Process: "1", Page: 2},
			{Process: "4", Page: 8},
			{Process: "1", Page: 1},
			{Process: "5", Page: 9},
		},
	}
}

// Validate checks that all fields in the scenario are valid.
// Process errors wrap sim.ErrInvalidInput; memory errors wrap paging.ErrInvalidConfig.
func (s *Scenario) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("unknown scenario version %q; valid: 1", s.Version)
	}
	if s.Quantum <= 0 {
		return fmt.Errorf("%w: quantum must be positive, got %d", sim.ErrInvalidInput, s.Quantum)
	}
	if s.Overhead < 0 {
		return fmt.Errorf("%w: overhead must be non-negative, got %d", sim.ErrInvalidInput, s.Overhead)
	}
	if len(s.Processes) == 0 {
		return fmt.Errorf("%w: at least one process required", sim.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(s.Processes))
	for i, p := range s.Processes {
		proc := s.process(p)
		if err := proc.Validate(); err != nil {
			return fmt.Errorf("processes[%d]: %w", i, err)
		}
		if seen[p.ID] {
			return fmt.Errorf("processes[%d]: %w: duplicate process id %q", i, sim.ErrInvalidInput, p.ID)
		}
		seen[p.ID] = true
		for _, page := range p.Pages {
			if page < 0 {
				return fmt.Errorf("processes[%d]: %w: page ids must be non-negative, got %d", i, sim.ErrInvalidInput, page)
			}
		}
	}
	if err := s.Memory.validate(); err != nil {
		return err
	}
	for i, a := range s.Accesses {
		if a.Process == "" {
			return fmt.Errorf("accesses[%d]: process must not be empty", i)
		}
	}
	return nil
}

func (m *MemorySpec) validate() error {
	if m.RAMCapacity <= 0 {
		return fmt.Errorf("memory: %w: ram_capacity must be positive, got %d", paging.ErrInvalidConfig, m.RAMCapacity)
	}
	if m.DiskCapacity < 0 {
		return fmt.Errorf("memory: %w: disk_capacity must be non-negative, got %d", paging.ErrInvalidConfig, m.DiskCapacity)
	}
	if m.DiskAccessLatency < 0 {
		return fmt.Errorf("memory: %w: disk_access_latency must be non-negative, got %d", paging.ErrInvalidConfig, m.DiskAccessLatency)
	}
	if m.FaultPolicy != "" && !paging.IsValidPolicy(m.FaultPolicy) {
		return fmt.Errorf("memory: %w: unknown fault_policy %q; valid: fifo, lru", paging.ErrInvalidConfig, m.FaultPolicy)
	}
	return nil
}

func (s *Scenario) process(p ProcessSpec) sim.Process {
	return sim.NewProcess(p.ID, p.Arrival, p.Burst, p.Deadline, s.Quantum, s.Overhead, p.Pages)
}

// Processes converts the process specs into sim.Process values carrying the
// scenario's quantum and overhead. Each call returns fresh copies.
func (s *Scenario) Processes() []sim.Process {
	procs := make([]sim.Process, len(s.Processes))
	for i, p := range s.Processes {
		procs[i] = s.process(p)
	}
	return procs
}

// NewMemory builds a paging.Memory from the memory spec.
func (m MemorySpec) NewMemory() (*paging.Memory, error) {
	policy := paging.Policy(m.FaultPolicy)
	if policy == "" {
		policy = paging.PolicyLRU
	}
	return paging.New(m.RAMCapacity, m.DiskCapacity, m.DiskAccessLatency,
		paging.WithFaultPolicy(policy),
		paging.WithLoadOnFirstTouch(m.LoadOnFirstTouch))
}
