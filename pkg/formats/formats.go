// Package formats reads and writes the files produced by the cave generator.
//
// Grids are stored as GAT (Ground Altitude Table) files so they can be
// consumed by existing map tooling. Meshes are written as Wavefront OBJ.
package formats
