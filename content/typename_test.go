package content

import "testing"

func TestParseTypeNameSimple(t *testing.T) {
	t.Parallel()
	tn := ParseTypeName("Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework.Graphics")
	if tn.Name != "Microsoft.Xna.Framework.Content.Texture2DReader" {
		t.Errorf("Name = %q", tn.Name)
	}
	if len(tn.Subtypes) != 0 {
		t.Errorf("expected no subtypes, got %v", tn.Subtypes)
	}
	if tn.IsArray {
		t.Error("expected IsArray false")
	}
}

func TestParseTypeNameGeneric(t *testing.T) {
	t.Parallel()
	tn := ParseTypeName("Microsoft.Xna.Framework.Content.ListReader`1[[Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework.Graphics]], mscorlib")
	if tn.Name != "Microsoft.Xna.Framework.Content.ListReader" {
		t.Errorf("Name = %q", tn.Name)
	}
	if len(tn.Subtypes) != 1 {
		t.Fatalf("expected 1 subtype, got %d", len(tn.Subtypes))
	}
	if tn.Subtypes[0].Name != "Microsoft.Xna.Framework.Content.Texture2DReader" {
		t.Errorf("subtype Name = %q", tn.Subtypes[0].Name)
	}
}

func TestParseTypeNameNestedSubtypes(t *testing.T) {
	t.Parallel()
	tn := ParseTypeName("Outer`2[[Inner1, A],[Inner2`1[[Deep, B]], C]]")
	if len(tn.Subtypes) != 2 {
		t.Fatalf("expected 2 subtypes, got %d: %+v", len(tn.Subtypes), tn.Subtypes)
	}
	if tn.Subtypes[0].Name != "Inner1" {
		t.Errorf("Subtypes[0].Name = %q", tn.Subtypes[0].Name)
	}
	if tn.Subtypes[1].Name != "Inner2" {
		t.Errorf("Subtypes[1].Name = %q", tn.Subtypes[1].Name)
	}
	if len(tn.Subtypes[1].Subtypes) != 1 || tn.Subtypes[1].Subtypes[0].Name != "Deep" {
		t.Errorf("expected nested Deep subtype, got %+v", tn.Subtypes[1].Subtypes)
	}
}

func TestTypeNameEquals(t *testing.T) {
	t.Parallel()
	a := ParseTypeName("Foo, AssemblyA")
	b := ParseTypeName("Foo, AssemblyB")
	if !a.Equals(b) {
		t.Error("expected equality ignoring assembly qualifier")
	}
	c := ParseTypeName("Bar, AssemblyA")
	if a.Equals(c) {
		t.Error("expected inequality for different base names")
	}
}

func TestTypeNameStringRoundTrip(t *testing.T) {
	t.Parallel()
	tn := ParseTypeName("Outer`1[[Inner, A]], B")
	got := tn.String()
	want := "Outer`1[[Inner]]"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
