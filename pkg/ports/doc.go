/*
Package ports defines the driven ports (interfaces) for hexfsm.

These interfaces decouple the conversion surfaces (CLI, HTTP, MCP) from the
storage backends that keep named machine archives.

# Key Interfaces

  - MachineStore: persists .fsm archive blobs under a user-chosen name.

RunMachineStoreContract is exported so each adapter can prove it honours the
same behaviour in its own tests.
*/
package ports
