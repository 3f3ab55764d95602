package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/Faultbox/imgmesh/internal/mesh"
)

// writePLY writes an ASCII PLY file. The texture, if any, is referenced with
// the common "TextureFile" comment.
func writePLY(path string, m *mesh.Mesh, _ Material, textureFile string) error {
	return writeFile(path, func(w io.Writer) error {
		return encodePLY(w, m, textureFile)
	})
}

func encodePLY(w io.Writer, m *mesh.Mesh, textureFile string) error {
	bw := bufio.NewWriter(w)
	hasUV := len(m.TexCoords) > 0
	hasNormals := m.HasNormals()

	fmt.Fprintln(bw, "ply")
	fmt.Fprintln(bw, "format ascii 1.0")
	fmt.Fprintln(bw, "comment generated by imgmesh")
	if textureFile != "" {
		fmt.Fprintf(bw, "comment TextureFile %s\n", textureFile)
	}
	fmt.Fprintf(bw, "element vertex %d\n", m.VertexCount())
	fmt.Fprintln(bw, "property float x")
	fmt.Fprintln(bw, "property float y")
	fmt.Fprintln(bw, "property float z")
	if hasNormals {
		fmt.Fprintln(bw, "property float nx")
		fmt.Fprintln(bw, "property float ny")
		fmt.Fprintln(bw, "property float nz")
	}
	if hasUV {
		fmt.Fprintln(bw, "property float s")
		fmt.Fprintln(bw, "property float t")
	}
	fmt.Fprintf(bw, "element face %d\n", m.TriangleCount())
	fmt.Fprintln(bw, "property list uchar int vertex_indices")
	fmt.Fprintln(bw, "end_header")

	for i, p := range m.Positions {
		fmt.Fprintf(bw, "%g %g %g", float32(p.X), float32(p.Y), float32(p.Z))
		if hasNormals {
			n := m.Normals[i]
			fmt.Fprintf(bw, " %g %g %g", float32(n.X), float32(n.Y), float32(n.Z))
		}
		if hasUV {
			uv := m.TexCoords[i]
			fmt.Fprintf(bw, " %g %g", float32(uv.X), float32(1-uv.Y))
		}
		fmt.Fprintln(bw)
	}
	for t := range m.TriangleCount() {
		a, b, c := m.Triangle(t)
		fmt.Fprintf(bw, "3 %d %d %d\n", a, b, c)
	}

	return bw.Flush()
}
