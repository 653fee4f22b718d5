package kernel

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteSTL writes meshes as a single binary STL solid. Vertex normals are
// flattened to one facet normal taken from the first vertex of each
// triangle, which is exact for the axis-aligned facets produced here.
func WriteSTL(w io.Writer, meshes []*Mesh) error {
	bw := bufio.NewWriter(w)

	var header [80]byte
	copy(header[:], "casework")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	var count uint32
	for _, m := range meshes {
		count += uint32(m.TriangleCount())
	}
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return err
	}

	for _, m := range meshes {
		if err := writeTriangles(bw, m); err != nil {
			return fmt.Errorf("stl: part %q: %w", m.PartName, err)
		}
	}
	return bw.Flush()
}

func writeTriangles(w io.Writer, m *Mesh) error {
	for t := 0; t+2 < len(m.Indices); t += 3 {
		var rec [50]byte
		i0, i1, i2 := m.Indices[t], m.Indices[t+1], m.Indices[t+2]

		putVec(rec[0:], m.Normals, i0)
		putVec(rec[12:], m.Vertices, i0)
		putVec(rec[24:], m.Vertices, i1)
		putVec(rec[36:], m.Vertices, i2)
		// rec[48:50] is the attribute byte count, left zero.

		if _, err := w.Write(rec[:]); err != nil {
			return err
		}
	}
	return nil
}

func putVec(dst []byte, data []float32, idx uint32) {
	base := int(idx) * 3
	for c := 0; c < 3; c++ {
		var v float32
		if base+c < len(data) {
			v = data[base+c]
		}
		binary.LittleEndian.PutUint32(dst[c*4:], math.Float32bits(v))
	}
}
