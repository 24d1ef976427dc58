package frame

import "testing"

func TestRealFrameFromInt16Copies(t *testing.T) {
	src := []int16{1, 2, 3}
	out := RealFrameFromInt16(src)
	src[0] = 99
	if out[0] != 1 {
		t.Errorf("RealFrameFromInt16 aliased the source slice: out[0] = %d, want 1", out[0])
	}
}

func TestToComplexFrameKeepsPCMScale(t *testing.T) {
	f := RealFrame{0, 100, -100, 32767}
	c := f.ToComplexFrame()
	for i, v := range f {
		if c[i].Re != float64(v) || c[i].Im != 0 {
			t.Errorf("ToComplexFrame()[%d] = %+v, want {%v 0}", i, c[i], v)
		}
	}
}

func TestToInt16Clamps(t *testing.T) {
	out := ToInt16([]float64{0, 40000, -40000, 1000.4, 1000.6})
	want := []int16{0, 32767, -32768, 1000, 1001}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("ToInt16()[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestMaxMagnitude(t *testing.T) {
	f := RealFrame{3, -4, 0}.ToComplexFrame()
	if got, want := f.MaxMagnitude(), 4.0; got != want {
		t.Errorf("MaxMagnitude() = %v, want %v", got, want)
	}
	if got := ComplexFrame(nil).MaxMagnitude(); got != 0 {
		t.Errorf("MaxMagnitude() on empty = %v, want 0", got)
	}
}

func TestRangeDopplerImageMax(t *testing.T) {
	img := NewRangeDopplerImage(3, 4)
	img[1][2] = 5.5
	img[2][0] = 9.9
	v, r, c := img.Max()
	if v != 9.9 || r != 2 || c != 0 {
		t.Errorf("Max() = (%v, %d, %d), want (9.9, 2, 0)", v, r, c)
	}
}

func TestRangeDopplerImageClone(t *testing.T) {
	img := NewRangeDopplerImage(2, 2)
	img[0][0] = 1
	clone := img.Clone()
	clone[0][0] = 2
	if img[0][0] != 1 {
		t.Errorf("Clone() aliased the original: img[0][0] = %v, want 1", img[0][0])
	}
}

func TestTFImageRowsCols(t *testing.T) {
	img := NewTFImage(5, 7)
	if img.Rows() != 5 || img.Cols() != 7 {
		t.Errorf("Rows()=%d Cols()=%d, want 5,7", img.Rows(), img.Cols())
	}
	if TFImage(nil).Cols() != 0 {
		t.Errorf("Cols() on empty image, want 0")
	}
}
