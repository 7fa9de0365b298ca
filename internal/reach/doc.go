// Package reach implements 4.G: distributed forward and backward
// reachability from a pivot vertex, switching between three traversal
// strategies as the search widens — top-down frontier expansion,
// bottom-up neighbor scanning, and bitmap-exchange — exactly as the
// design's load heuristics describe. The two directions are run
// independently by the driver; their intersection is the big SCC.
package reach
