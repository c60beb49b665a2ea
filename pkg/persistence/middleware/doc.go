// Package middleware decorates ports.MachineStore implementations.
package middleware
