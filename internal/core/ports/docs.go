// Package ports declares what the application core needs from the outside:
// repositories bound to a unit of work, and the clock and catalog
// collaborators.
package ports
