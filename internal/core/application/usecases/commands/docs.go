// Package commands contains operations that change the running simulation.
// Every command is created through its constructor, which validates the
// input, and is executed by a handler that talks to the actors only through
// messages.
package commands
