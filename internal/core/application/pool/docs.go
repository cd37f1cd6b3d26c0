// Package pool keeps a churning population of actors of one role.
//
// Members join through InjectDefaults and leave through RelieveLeaving, which
// picks a uniform random subset and removes exactly those handles while the
// survivors keep their relative order. SimulateFluctuation converts join and
// leave rates over an elapsed number of ticks into one inject and one relieve.
package pool
