package codec

import "fmt"

// Vector3 is three packed float32 components.
type Vector3 struct {
	X, Y, Z float32
}

// Vector4 is four packed float32 components.
type Vector4 struct {
	X, Y, Z, W float32
}

// Quaternion is a rotation stored as x, y, z, w.
type Quaternion struct {
	X, Y, Z, W float32
}

// WideVector3 is a Vector3 widened to 16 bytes by two auxiliary uint16 fields.
// A and B are carried opaquely.
type WideVector3 struct {
	X, Y, Z float32
	A, B    uint16
}

func (v *Vector3) Decode(r PrimitiveReader) {
	r.ReadFloat32(&v.X)
	r.ReadFloat32(&v.Y)
	r.ReadFloat32(&v.Z)
}

func (v Vector3) Encode(w PrimitiveWriter) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
	w.WriteFloat32(v.Z)
}

func (v Vector3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

func (v *Vector4) Decode(r PrimitiveReader) {
	r.ReadFloat32(&v.X)
	r.ReadFloat32(&v.Y)
	r.ReadFloat32(&v.Z)
	r.ReadFloat32(&v.W)
}

func (v Vector4) Encode(w PrimitiveWriter) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
	w.WriteFloat32(v.Z)
	w.WriteFloat32(v.W)
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", v.X, v.Y, v.Z, v.W)
}

func (q *Quaternion) Decode(r PrimitiveReader) {
	r.ReadFloat32(&q.X)
	r.ReadFloat32(&q.Y)
	r.ReadFloat32(&q.Z)
	r.ReadFloat32(&q.W)
}

func (q Quaternion) Encode(w PrimitiveWriter) {
	w.WriteFloat32(q.X)
	w.WriteFloat32(q.Y)
	w.WriteFloat32(q.Z)
	w.WriteFloat32(q.W)
}

func (v *WideVector3) Decode(r PrimitiveReader) {
	r.ReadFloat32(&v.X)
	r.ReadFloat32(&v.Y)
	r.ReadFloat32(&v.Z)
	r.ReadUint16(&v.A)
	r.ReadUint16(&v.B)
}

func (v WideVector3) Encode(w PrimitiveWriter) {
	w.WriteFloat32(v.X)
	w.WriteFloat32(v.Y)
	w.WriteFloat32(v.Z)
	w.WriteUint16(v.A)
	w.WriteUint16(v.B)
}
