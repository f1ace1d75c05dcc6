package draw

import (
	"encoding/binary"
	"math"
)

// VerticesBytes serializes vertices into the little-endian packed layout
// the rendering pipeline declares: float2 position, float2 uv, float4
// color, uint mode. The result length is always len(vertices)*VertexStride.
func VerticesBytes(vertices []Vertex) []byte {
	out := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		p := out[i*VertexStride:]
		putF32(p[0:], v.Position[0])
		putF32(p[4:], v.Position[1])
		putF32(p[8:], v.UV[0])
		putF32(p[12:], v.UV[1])
		putF32(p[16:], v.Color[0])
		putF32(p[20:], v.Color[1])
		putF32(p[24:], v.Color[2])
		putF32(p[28:], v.Color[3])
		binary.LittleEndian.PutUint32(p[32:], v.Mode)
	}
	return out
}

func putF32(p []byte, v float32) {
	binary.LittleEndian.PutUint32(p, math.Float32bits(v))
}
