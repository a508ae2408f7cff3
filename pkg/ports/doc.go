/*
Package ports defines the driven ports (interfaces) of the automata service.

These interfaces decouple the engine and front-ends from storage backends,
so the CLI, the HTTP server and the MCP server can share one configured
store.

# Key Interfaces

  - AutomatonStore: persists named automata (memory, file or Redis).
  - DistributedLocker: serializes read-modify-write edits of one automaton
    across replicas.
*/
package ports
