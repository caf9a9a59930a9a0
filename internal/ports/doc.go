// Package ports defines the interfaces between wikitab's core logic and the
// outside world. Adapters in internal/confluence and internal/filestore
// implement them; tests substitute fakes.
package ports
