// Copyright (c) 2025 The xnbc Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of xnbc.
//
// xnbc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// xnbc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with xnbc.  If not, see <https://www.gnu.org/licenses/>.

package content

import (
	"bytes"
	"fmt"

	"github.com/sfdtools/xnbc/internal/binary"
)

const waveFormatExSize = 18

// SoundEffect is the in-memory form of a SoundEffect payload.
type SoundEffect struct {
	FormatHeader []byte // the 18-byte WAVEFORMATEX that follows format_size
	Data         []byte
	LoopStart    int32
	LoopLength   int32
	Duration     int32
}

func init() {
	RegisterReaderFactory("Microsoft.Xna.Framework.Content.SoundEffectReader", func() Reader { return &SoundEffectReader{} })
}

// SoundEffectReader implements Reader for SoundEffect payloads.
type SoundEffectReader struct{}

func (r *SoundEffectReader) Type() TypeName {
	return ParseTypeName("Microsoft.Xna.Framework.Content.SoundEffectReader")
}

func (r *SoundEffectReader) IsPolymorphic() bool { return false }

func (r *SoundEffectReader) ReadFrom(br *binary.Reader, reg *Registry) (any, error) {
	formatSize, err := br.U32LE()
	if err != nil {
		return nil, err
	}
	if formatSize != waveFormatExSize {
		return nil, fmt.Errorf("%w: format_size %d", ErrUnsupportedAudioFormat, formatSize)
	}
	formatHeader, err := br.ReadBytes(int(formatSize))
	if err != nil {
		return nil, err
	}
	dataSize, err := br.U32LE()
	if err != nil {
		return nil, err
	}
	data, err := br.ReadBytes(int(dataSize))
	if err != nil {
		return nil, err
	}
	loopStart, err := br.I32LE()
	if err != nil {
		return nil, err
	}
	loopLength, err := br.I32LE()
	if err != nil {
		return nil, err
	}
	duration, err := br.I32LE()
	if err != nil {
		return nil, err
	}

	return &SoundEffect{
		FormatHeader: append([]byte(nil), formatHeader...),
		Data:         append([]byte(nil), data...),
		LoopStart:    loopStart,
		LoopLength:   loopLength,
		Duration:     duration,
	}, nil
}

func (r *SoundEffectReader) WriteTo(bw *binary.Writer, value any, reg *Registry) error {
	se, ok := value.(*SoundEffect)
	if !ok {
		return fmt.Errorf("%w: want *SoundEffect", ErrReaderTypeMismatch)
	}
	bw.U32LE(waveFormatExSize)
	bw.WriteBytes(se.FormatHeader)
	bw.U32LE(uint32(len(se.Data)))
	bw.WriteBytes(se.Data)
	bw.I32LE(se.LoopStart)
	bw.I32LE(se.LoopLength)
	bw.I32LE(se.Duration)
	return nil
}

// Export synthesizes a RIFF/WAVE (PCM) file from the WAVEFORMATEX header
// and sample data, emitted as a "{basename}.wav" sidecar, where basename
// comes from the store's Base method; stores without one get "sound.wav".
func (r *SoundEffectReader) Export(value any, store SidecarStore) (any, error) {
	se, ok := value.(*SoundEffect)
	if !ok {
		return nil, fmt.Errorf("%w: want *SoundEffect", ErrReaderTypeMismatch)
	}

	var buf bytes.Buffer
	dataLen := len(se.Data)
	riffLen := 4 + (8 + len(se.FormatHeader)) + (8 + dataLen)

	buf.WriteString("RIFF")
	writeU32LE(&buf, uint32(riffLen))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	writeU32LE(&buf, uint32(len(se.FormatHeader)))
	buf.Write(se.FormatHeader)

	buf.WriteString("data")
	writeU32LE(&buf, uint32(dataLen))
	buf.Write(se.Data)

	name := "sound.wav"
	if b, ok := store.(interface{ Base() string }); ok && b.Base() != "" {
		name = b.Base() + ".wav"
	}
	name, err := store.Emit(name, buf.Bytes())
	if err != nil {
		return nil, err
	}
	return name, nil
}

// Import reads a WAVE sidecar, skipping to the 'data' chunk to recover
// the sample bytes, and reconstructs the WAVEFORMATEX header from 'fmt '.
func (r *SoundEffectReader) Import(exported any, store SidecarStore) (any, error) {
	name, ok := exported.(string)
	if !ok {
		return nil, fmt.Errorf("%w: want sidecar file name", ErrReaderTypeMismatch)
	}
	raw, err := store.Load(name)
	if err != nil {
		return nil, err
	}
	if len(raw) < 12 || string(raw[0:4]) != "RIFF" || string(raw[8:12]) != "WAVE" {
		return nil, fmt.Errorf("soundeffect: not a RIFF/WAVE file")
	}

	se := &SoundEffect{}
	pos := 12
	for pos+8 <= len(raw) {
		chunkID := string(raw[pos : pos+4])
		chunkSize := int(le32(raw[pos+4 : pos+8]))
		body := raw[pos+8:]
		if chunkSize > len(body) {
			chunkSize = len(body)
		}
		switch chunkID {
		case "fmt ":
			se.FormatHeader = append([]byte(nil), body[:chunkSize]...)
		case "data":
			se.Data = append([]byte(nil), body[:chunkSize]...)
		}
		pos += 8 + chunkSize
		if chunkSize%2 == 1 {
			pos++
		}
	}
	return se, nil
}

func writeU32LE(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
