package paging

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidConfig is wrapped by constructor validation failures.
	ErrInvalidConfig = errors.New("invalid memory configuration")
	// ErrPageNotFound reports an access to a page held by neither tier.
	// It is informational: the simulation continues.
	ErrPageNotFound = errors.New("page not found")
)

// Policy selects the eviction victim when RAM is full.
type Policy string

const (
	PolicyFIFO Policy = "fifo" // evict the earliest inserted resident page
	PolicyLRU  Policy = "lru"  // evict the least recently used resident page
)

var validPolicies = map[Policy]bool{
	PolicyFIFO: true,
	PolicyLRU:  true,
}

// IsValidPolicy returns true if name is a recognized replacement policy.
func IsValidPolicy(name string) bool {
	return validPolicies[Policy(name)]
}

// PageKey identifies one page of one process.
type PageKey struct {
	ProcessID string
	Page      int
}

func (k PageKey) String() string {
	return fmt.Sprintf("P%s-Pag%d", k.ProcessID, k.Page)
}

// Outcome classifies a single Access.
type Outcome string

const (
	OutcomeHit      Outcome = "hit"       // resident in RAM
	OutcomeDiskMiss Outcome = "disk-miss" // fetched back from disk
	OutcomeColdMiss Outcome = "cold-miss" // first touch, loaded (only WithLoadOnFirstTouch)
	OutcomeNotFound Outcome = "not-found" // unknown to both tiers, no state change
)

// AccessResult describes what a single Access did.
type AccessResult struct {
	Key      PageKey
	Outcome  Outcome
	Evicted  PageKey // valid only when DidEvict
	DidEvict bool
	Latency  int64 // disk latency charged by this access
	Clock    int64 // clock after the access
}

// Err returns a wrapped ErrPageNotFound for a not-found access and nil otherwise.
func (r AccessResult) Err() error {
	if r.Outcome == OutcomeNotFound {
		return fmt.Errorf("%w: %s", ErrPageNotFound, r.Key)
	}
	return nil
}

// Stats counts access outcomes and evictions over the memory's lifetime.
type Stats struct {
	Accesses   int
	Hits       int
	DiskMisses int
	ColdMisses int
	NotFound   int
	Inserts    int
	Evictions  int
}

// HitRatio returns Hits / Accesses, or 0 before any access.
func (s Stats) HitRatio() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

// Snapshot is a copy of both tiers for rendering.
type Snapshot struct {
	RAM   []PageKey // insertion order
	Disk  []PageKey // eviction order
	Clock int64
}

// Option customizes a Memory at construction.
type Option func(*Memory)

// WithFaultPolicy sets the replacement policy used when Access brings a page
// into RAM. Defaults to PolicyLRU.
func WithFaultPolicy(p Policy) Option {
	return func(m *Memory) { m.faultPolicy = p }
}

// WithLoadOnFirstTouch makes Access load pages unknown to both tiers instead
// of reporting them as not found.
func WithLoadOnFirstTouch(enabled bool) Option {
	return func(m *Memory) { m.loadOnFirstTouch = enabled }
}

// Memory is the RAM/disk hierarchy. It is not safe for concurrent use;
// each simulation run owns its own instance.
type Memory struct {
	ramCapacity       int
	diskCapacity      int   // advisory, exceeding it only logs a warning
	diskAccessLatency int64 // ticks charged per disk fetch
	faultPolicy       Policy
	loadOnFirstTouch  bool

	clock   int64
	ram     []PageKey        // resident pages in insertion order
	disk    []PageKey        // evicted pages in eviction order
	onDisk  map[PageKey]bool // membership index for disk
	recency *recencyList     // exactly the RAM pages, least recent first
	stats   Stats
}

// New creates an empty Memory.
func New(ramCapacity, diskCapacity int, diskAccessLatency int64, opts ...Option) (*Memory, error) {
	if ramCapacity <= 0 {
		return nil, fmt.Errorf("%w: ram_capacity must be positive, got %d", ErrInvalidConfig, ramCapacity)
	}
	if diskCapacity < 0 {
		return nil, fmt.Errorf("%w: disk_capacity must be non-negative, got %d", ErrInvalidConfig, diskCapacity)
	}
	if diskAccessLatency < 0 {
		return nil, fmt.Errorf("%w: disk_access_latency must be non-negative, got %d", ErrInvalidConfig, diskAccessLatency)
	}
	m := &Memory{
		ramCapacity:       ramCapacity,
		diskCapacity:      diskCapacity,
		diskAccessLatency: diskAccessLatency,
		faultPolicy:       PolicyLRU,
		ram:               make([]PageKey, 0, ramCapacity),
		onDisk:            make(map[PageKey]bool),
		recency:           newRecencyList(ramCapacity),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !validPolicies[m.faultPolicy] {
		return nil, fmt.Errorf("%w: unknown fault policy %q; valid: fifo, lru", ErrInvalidConfig, m.faultPolicy)
	}
	return m, nil
}

// Access touches a page.
//   - resident: hit, recency refreshed, nothing else changes
//   - on disk: disk latency charged, page removed from disk and placed in RAM
//     with the fault policy
//   - unknown: not found (or a cold load with WithLoadOnFirstTouch)
func (m *Memory) Access(processID string, page int) AccessResult {
	key := PageKey{ProcessID: processID, Page: page}
	m.clock++
	m.stats.Accesses++
	res := AccessResult{Key: key}

	switch {
	case m.recency.contains(key):
		res.Outcome = OutcomeHit
		m.stats.Hits++
		m.recency.touch(key, m.clock)
		logrus.Debugf("[tick %07d] hit %s", m.clock, key)
	case m.onDisk[key]:
		res.Outcome = OutcomeDiskMiss
		res.Latency = m.diskAccessLatency
		m.stats.DiskMisses++
		m.clock += m.diskAccessLatency
		m.removeFromDisk(key)
		res.Evicted, res.DidEvict = m.place(key, m.faultPolicy)
		logrus.Debugf("[tick %07d] disk miss %s (latency=%d)", m.clock, key, m.diskAccessLatency)
	case m.loadOnFirstTouch:
		res.Outcome = OutcomeColdMiss
		m.stats.ColdMisses++
		res.Evicted, res.DidEvict = m.place(key, m.faultPolicy)
		logrus.Debugf("[tick %07d] cold miss %s", m.clock, key)
	default:
		res.Outcome = OutcomeNotFound
		m.stats.NotFound++
		logrus.Warnf("[tick %07d] page %s not found in RAM or disk", m.clock, key)
	}
	res.Clock = m.clock
	return res
}

// Insert places a page in RAM, evicting one resident page under policy when
// RAM is full. A resident page only has its recency refreshed; a page on disk
// is moved back. Panics on an unknown policy.
func (m *Memory) Insert(processID string, page int, policy Policy) (evicted PageKey, didEvict bool) {
	if !validPolicies[policy] {
		panic(fmt.Sprintf("Insert: unknown replacement policy %q", policy))
	}
	m.clock++
	return m.place(PageKey{ProcessID: processID, Page: page}, policy)
}

// LoadPages inserts every page of a process in order and returns the pages
// evicted along the way.
func (m *Memory) LoadPages(processID string, pages []int, policy Policy) []PageKey {
	var evicted []PageKey
	for _, page := range pages {
		if victim, ok := m.Insert(processID, page, policy); ok {
			evicted = append(evicted, victim)
		}
	}
	return evicted
}

// place puts key in RAM at the current clock.
func (m *Memory) place(key PageKey, policy Policy) (evicted PageKey, didEvict bool) {
	if m.recency.contains(key) {
		m.recency.touch(key, m.clock)
		return PageKey{}, false
	}
	if m.onDisk[key] {
		m.removeFromDisk(key)
	}
	m.stats.Inserts++
	if len(m.ram) >= m.ramCapacity {
		evicted = m.victim(policy)
		m.evict(evicted)
		didEvict = true
	}
	m.ram = append(m.ram, key)
	m.recency.touch(key, m.clock)
	m.checkInvariants()
	return evicted, didEvict
}

// victim picks the resident page to evict under policy.
func (m *Memory) victim(policy Policy) PageKey {
	switch policy {
	case PolicyFIFO:
		return m.ram[0]
	case PolicyLRU:
		key, ok := m.recency.oldest()
		if !ok {
			panic("victim: recency list empty while RAM is full")
		}
		return key
	default:
		panic(fmt.Sprintf("victim: unhandled policy %q", policy))
	}
}

// evict moves a resident page to disk.
func (m *Memory) evict(key PageKey) {
	idx := m.ramIndex(key)
	if idx < 0 {
		panic(fmt.Sprintf("evict: %s is not resident", key))
	}
	m.ram = append(m.ram[:idx], m.ram[idx+1:]...)
	m.recency.remove(key)
	m.disk = append(m.disk, key)
	m.onDisk[key] = true
	m.stats.Evictions++
	logrus.Debugf("[tick %07d] evict %s to disk", m.clock, key)
	if len(m.disk) > m.diskCapacity {
		logrus.Warnf("[tick %07d] disk holds %d pages, above advisory capacity %d", m.clock, len(m.disk), m.diskCapacity)
	}
}

func (m *Memory) removeFromDisk(key PageKey) {
	delete(m.onDisk, key)
	for i, k := range m.disk {
		if k == key {
			m.disk = append(m.disk[:i], m.disk[i+1:]...)
			return
		}
	}
}

func (m *Memory) ramIndex(key PageKey) int {
	for i, k := range m.ram {
		if k == key {
			return i
		}
	}
	return -1
}

// checkInvariants panics on capacity overflow, recency drift or a page held
// by both tiers. Any of these is a logic defect.
func (m *Memory) checkInvariants() {
	if len(m.ram) > m.ramCapacity {
		panic(fmt.Sprintf("RAM holds %d pages, capacity %d", len(m.ram), m.ramCapacity))
	}
	if m.recency.len() != len(m.ram) {
		panic(fmt.Sprintf("recency tracks %d pages, RAM holds %d", m.recency.len(), len(m.ram)))
	}
	for _, k := range m.ram {
		if m.onDisk[k] {
			panic(fmt.Sprintf("%s is in both RAM and disk", k))
		}
	}
}

// Snapshot returns copies of both tiers.
func (m *Memory) Snapshot() Snapshot {
	return Snapshot{
		RAM:   append([]PageKey(nil), m.ram...),
		Disk:  append([]PageKey(nil), m.disk...),
		Clock: m.clock,
	}
}

// Recency returns the clock of the last access or insertion of a resident page.
func (m *Memory) Recency(key PageKey) (int64, bool) {
	return m.recency.stamp(key)
}

// Resident reports whether key is in RAM.
func (m *Memory) Resident(key PageKey) bool { return m.recency.contains(key) }

// OnDisk reports whether key is on disk.
func (m *Memory) OnDisk(key PageKey) bool { return m.onDisk[key] }

// Clock returns the current logical time.
func (m *Memory) Clock() int64 { return m.clock }

// Stats returns the outcome counters.
func (m *Memory) Stats() Stats { return m.stats }

// RAMCapacity returns the fixed RAM bound.
func (m *Memory) RAMCapacity() int { return m.ramCapacity }

// DiskCapacity returns the advisory disk bound.
func (m *Memory) DiskCapacity() int { return m.diskCapacity }

// FaultPolicy returns the policy Access uses to bring pages into RAM.
func (m *Memory) FaultPolicy() Policy { return m.faultPolicy }
