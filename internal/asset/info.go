package asset

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
)

// WriteInfo prints a summary of m: size, bounds and the material of every
// group.
func WriteInfo(w io.Writer, m *Model) error {
	size := m.Max.Sub(m.Min)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", filepath.Base(m.Path))
	fmt.Fprintf(tw, "Triangles:\t%d\n", m.Mesh.TriangleCount())
	fmt.Fprintf(tw, "Vertices:\t%d\n", len(m.Mesh.Vertices))
	fmt.Fprintf(tw, "Bounds:\t(%.3f, %.3f, %.3f) .. (%.3f, %.3f, %.3f)\n",
		m.Min.X(), m.Min.Y(), m.Min.Z(), m.Max.X(), m.Max.Y(), m.Max.Z())
	fmt.Fprintf(tw, "Size:\t%.3f x %.3f x %.3f\n", size.X(), size.Y(), size.Z())
	fmt.Fprintf(tw, "Groups:\t%d\n", len(m.Groups))
	for _, g := range m.Groups {
		mat := g.Material
		if mat == "" {
			mat = "-"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d triangles\n", g.Name, mat, g.Count/3)
	}
	return tw.Flush()
}
