// Package driver hosts the collaborators that run outside the pure
// reducer: the I/O tag interpreter (read-line, print, flatmap) and an
// opt-in debug dump of the graph's current shape.
package driver
