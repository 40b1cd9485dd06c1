package content

import "testing"

func TestUnpremultiplyThenPremultiplyRoundTrip(t *testing.T) {
	t.Parallel()
	// On-disk premultiplied pixel (64,0,0,128) unpremultiplies to
	// (128,0,0,128), and re-premultiplying that returns the original.
	pixels := []byte{64, 0, 0, 128}
	unpremultiply(pixels)
	want := []byte{128, 0, 0, 128}
	for i := range want {
		if pixels[i] != want[i] {
			t.Fatalf("unpremultiply: got %v, want %v", pixels, want)
		}
	}
	premultiply(pixels)
	orig := []byte{64, 0, 0, 128}
	for i := range orig {
		if pixels[i] != orig[i] {
			t.Fatalf("premultiply round trip: got %v, want %v", pixels, orig)
		}
	}
}

func TestUnpremultiplyZeroAlphaUnchanged(t *testing.T) {
	t.Parallel()
	pixels := []byte{200, 100, 50, 0}
	unpremultiply(pixels)
	want := []byte{200, 100, 50, 0}
	for i := range want {
		if pixels[i] != want[i] {
			t.Errorf("zero-alpha pixel changed: got %v, want %v", pixels, want)
		}
	}
}

func TestUnpremultiplyFullAlphaIdentity(t *testing.T) {
	t.Parallel()
	pixels := []byte{10, 20, 30, 255}
	unpremultiply(pixels)
	want := []byte{10, 20, 30, 255}
	for i := range want {
		if pixels[i] != want[i] {
			t.Errorf("full-alpha pixel should be unchanged: got %v, want %v", pixels, want)
		}
	}
}

func TestTexture2DReaderType(t *testing.T) {
	t.Parallel()
	r := &Texture2DReader{}
	if r.Type().Name != "Microsoft.Xna.Framework.Content.Texture2DReader" {
		t.Errorf("Type().Name = %q", r.Type().Name)
	}
	if r.IsPolymorphic() {
		t.Error("Texture2DReader should not be polymorphic")
	}
}
