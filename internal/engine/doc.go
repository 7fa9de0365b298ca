// Package engine implements 4.K: the single collective entry point that
// sequences every other pass into the full distributed SCC pipeline,
// matching the world-size-1 special case and the driver's bookkeeping
// obligations.
package engine
