package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Faultbox/imgmesh/internal/mesh"
)

// writeOBJ writes a Wavefront OBJ file plus a sibling .mtl library.
func writeOBJ(path string, m *mesh.Mesh, mat Material, textureFile string) error {
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if err := writeFile(mtlPath, func(w io.Writer) error {
		return encodeMTL(w, mat, textureFile)
	}); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return encodeOBJ(w, m, mat.Name, filepath.Base(mtlPath))
	})
}

func encodeOBJ(w io.Writer, m *mesh.Mesh, materialName, mtlFile string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# imgmesh")
	fmt.Fprintf(bw, "mtllib %s\n", mtlFile)
	fmt.Fprintln(bw, "o ImageMesh")

	for _, p := range m.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", float32(p.X), float32(p.Y), float32(p.Z))
	}
	// OBJ texture space has v pointing up.
	for _, uv := range m.TexCoords {
		fmt.Fprintf(bw, "vt %g %g\n", float32(uv.X), float32(1-uv.Y))
	}
	for _, n := range m.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", float32(n.X), float32(n.Y), float32(n.Z))
	}

	fmt.Fprintf(bw, "usemtl %s\n", materialName)
	hasUV := len(m.TexCoords) > 0
	hasNormals := m.HasNormals()
	for t := range m.TriangleCount() {
		a, b, c := m.Triangle(t)
		fmt.Fprintf(bw, "f %s %s %s\n",
			objRef(a, hasUV, hasNormals),
			objRef(b, hasUV, hasNormals),
			objRef(c, hasUV, hasNormals))
	}

	return bw.Flush()
}

// objRef formats a 1-based face vertex reference.
func objRef(idx uint32, hasUV, hasNormals bool) string {
	i := idx + 1
	switch {
	case hasUV && hasNormals:
		return fmt.Sprintf("%d/%d/%d", i, i, i)
	case hasUV:
		return fmt.Sprintf("%d/%d", i, i)
	case hasNormals:
		return fmt.Sprintf("%d//%d", i, i)
	default:
		return fmt.Sprintf("%d", i)
	}
}

func encodeMTL(w io.Writer, mat Material, textureFile string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "newmtl %s\n", mat.Name)
	fmt.Fprintf(bw, "Ka %s\n", rgb(mat.Ambient))
	fmt.Fprintf(bw, "Kd %s\n", rgb(mat.Diffuse))
	fmt.Fprintf(bw, "Ks %s\n", rgb(mat.Specular))
	fmt.Fprintf(bw, "Ns %g\n", mat.Shininess)
	fmt.Fprintf(bw, "d %g\n", mat.Opacity)
	fmt.Fprintln(bw, "illum 2")
	if textureFile != "" {
		fmt.Fprintf(bw, "map_Kd %s\n", textureFile)
	}

	return bw.Flush()
}

func rgb(c colorful.Color) string {
	return fmt.Sprintf("%.4f %.4f %.4f", c.R, c.G, c.B)
}

// writeFile creates path and runs encode against it, reporting close errors.
func writeFile(path string, encode func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
