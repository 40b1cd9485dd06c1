package content

import (
	"bytes"
	"testing"

	"github.com/sfdtools/xnbc/internal/binary"
)

func sampleSoundEffect() *SoundEffect {
	return &SoundEffect{
		FormatHeader: bytes.Repeat([]byte{0xAB}, waveFormatExSize),
		Data:         []byte{1, 2, 3, 4, 5},
		LoopStart:    0,
		LoopLength:   0,
		Duration:     1000,
	}
}

func TestSoundEffectWriteThenReadRoundTrip(t *testing.T) {
	t.Parallel()
	se := sampleSoundEffect()
	rdr := &SoundEffectReader{}
	bw := binary.NewWriter()
	if err := rdr.WriteTo(bw, se, NewRegistry()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := rdr.ReadFrom(binary.NewReader(bw.Bytes()), NewRegistry())
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	round := got.(*SoundEffect)
	if !bytes.Equal(round.FormatHeader, se.FormatHeader) || !bytes.Equal(round.Data, se.Data) {
		t.Errorf("round trip mismatch: %+v", round)
	}
	if round.Duration != se.Duration {
		t.Errorf("Duration = %d, want %d", round.Duration, se.Duration)
	}
}

func TestSoundEffectRejectsWrongFormatSize(t *testing.T) {
	t.Parallel()
	br := binary.NewReader([]byte{16, 0, 0, 0}) // format_size = 16, not 18
	_, err := (&SoundEffectReader{}).ReadFrom(br, NewRegistry())
	if err == nil {
		t.Fatal("expected an unsupported-audio-format error")
	}
}

type memStore struct {
	files map[string][]byte
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (s *memStore) Emit(name string, data []byte) (string, error) {
	s.files[name] = append([]byte(nil), data...)
	return name, nil
}

func (s *memStore) Load(name string) ([]byte, error) {
	return s.files[name], nil
}

func TestSoundEffectExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	se := sampleSoundEffect()
	rdr := &SoundEffectReader{}
	store := newMemStore()

	exported, err := rdr.Export(se, store)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	imported, err := rdr.Import(exported, store)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	round := imported.(*SoundEffect)
	if !bytes.Equal(round.FormatHeader, se.FormatHeader) {
		t.Errorf("FormatHeader mismatch after export/import: %v vs %v", round.FormatHeader, se.FormatHeader)
	}
	if !bytes.Equal(round.Data, se.Data) {
		t.Errorf("Data mismatch after export/import: %v vs %v", round.Data, se.Data)
	}
}
