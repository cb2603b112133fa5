// Package paging simulates a two-tier memory hierarchy: a bounded fast tier
// (RAM) and a slow tier (disk) that receives evicted pages.
//
// Pages are identified by (process ID, page number). Memory.Access is the
// entry point for page activity: hits refresh recency, disk misses charge the
// configured latency and bring the page back through the fault policy, and
// unknown pages are reported as not found. Memory.Insert places a page
// directly under an explicit FIFO or LRU replacement policy.
//
// All time is logical. Every Access or Insert advances the clock by one tick,
// so recency stamps are strictly increasing.
package paging
