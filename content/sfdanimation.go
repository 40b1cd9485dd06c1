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
	"fmt"
	"strings"

	"github.com/sfdtools/xnbc/internal/binary"
)

const frameTerminator = '\n'

// AnimationCollision is one hitbox attached to a frame.
type AnimationCollision struct {
	ID            int32
	Width, Height float32
	X, Y          float32
}

// AnimationPart positions one sprite part within a frame. LocalID and Type
// are derived from ID, not stored on disk.
type AnimationPart struct {
	ID             int32
	X, Y           float32
	Rotation       float32
	Flip           int32
	ScaleX, ScaleY float32
	Postfix        string
}

// LocalID returns id mod 50.
func (p AnimationPart) LocalID() int32 { return p.ID % 50 }

// PartType returns id/50 for non-negative ids and -(-id/50+1) for negative
// ids, so -1..-49 give -1 but -50 gives -2 (one below floor division).
func (p AnimationPart) PartType() int32 {
	if p.ID >= 0 {
		return p.ID / 50
	}
	return -(-p.ID/50 + 1)
}

// AnimationFrame is one frame of an animation's timeline.
type AnimationFrame struct {
	Event       string
	Time        int32
	Collisions  []AnimationCollision
	Parts       []AnimationPart
}

// Animation is a named sequence of frames.
type Animation struct {
	Name   string
	Frames []AnimationFrame
}

// IsRecoil reports whether the animation's name marks it as a recoil
// animation, per the source's ad hoc substring convention.
func (a Animation) IsRecoil() bool {
	return strings.Contains(a.Name, "RECOIL")
}

// SFDAnimations is the in-memory form of an SFD.Content.AnimationsContentTypeReader payload.
type SFDAnimations struct {
	Animations []Animation
}

func init() {
	RegisterReaderFactory("SFD.Content.AnimationsContentTypeReader", func() Reader { return &SFDAnimationReader{} })
}

// SFDAnimationReader implements Reader for SFDAnimations payloads.
type SFDAnimationReader struct{}

func (r *SFDAnimationReader) Type() TypeName {
	return ParseTypeName("SFD.Content.AnimationsContentTypeReader")
}

func (r *SFDAnimationReader) IsPolymorphic() bool { return false }

func (r *SFDAnimationReader) ReadFrom(br *binary.Reader, reg *Registry) (any, error) {
	count, err := br.I32LE()
	if err != nil {
		return nil, err
	}
	result := &SFDAnimations{Animations: make([]Animation, count)}
	for i := range result.Animations {
		name, err := br.String()
		if err != nil {
			return nil, err
		}
		frameCount, err := br.I32LE()
		if err != nil {
			return nil, err
		}
		frames := make([]AnimationFrame, frameCount)
		for f := range frames {
			frame, err := readAnimationFrame(br)
			if err != nil {
				return nil, err
			}
			frames[f] = frame
		}
		if _, err := br.U8(); err != nil { // '\n' animation terminator
			return nil, err
		}
		result.Animations[i] = Animation{Name: name, Frames: frames}
	}
	return result, nil
}

func readAnimationFrame(br *binary.Reader) (AnimationFrame, error) {
	event, err := br.String()
	if err != nil {
		return AnimationFrame{}, err
	}
	time, err := br.I32LE()
	if err != nil {
		return AnimationFrame{}, err
	}

	collisionCount, err := br.I32LE()
	if err != nil {
		return AnimationFrame{}, err
	}
	collisions := make([]AnimationCollision, collisionCount)
	for i := range collisions {
		id, err := br.I32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		width, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		height, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		x, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		y, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		collisions[i] = AnimationCollision{ID: id, Width: width, Height: height, X: x, Y: y}
	}

	partCount, err := br.I32LE()
	if err != nil {
		return AnimationFrame{}, err
	}
	parts := make([]AnimationPart, partCount)
	for i := range parts {
		id, err := br.I32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		x, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		y, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		rotation, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		flip, err := br.I32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		scaleX, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		scaleY, err := br.F32LE()
		if err != nil {
			return AnimationFrame{}, err
		}
		postfix, err := br.String()
		if err != nil {
			return AnimationFrame{}, err
		}
		parts[i] = AnimationPart{ID: id, X: x, Y: y, Rotation: rotation, Flip: flip, ScaleX: scaleX, ScaleY: scaleY, Postfix: postfix}
	}

	if _, err := br.U8(); err != nil { // '\n' frame terminator
		return AnimationFrame{}, err
	}

	return AnimationFrame{Event: event, Time: time, Collisions: collisions, Parts: parts}, nil
}

func (r *SFDAnimationReader) WriteTo(bw *binary.Writer, value any, reg *Registry) error {
	anims, ok := value.(*SFDAnimations)
	if !ok {
		return fmt.Errorf("%w: want *SFDAnimations", ErrReaderTypeMismatch)
	}

	bw.I32LE(int32(len(anims.Animations)))
	for _, a := range anims.Animations {
		bw.String(a.Name)
		bw.I32LE(int32(len(a.Frames)))
		for _, f := range a.Frames {
			writeAnimationFrame(bw, f)
		}
		bw.U8(frameTerminator)
	}
	return nil
}

func writeAnimationFrame(bw *binary.Writer, f AnimationFrame) {
	bw.String(f.Event)
	bw.I32LE(f.Time)

	bw.I32LE(int32(len(f.Collisions)))
	for _, c := range f.Collisions {
		bw.I32LE(c.ID)
		bw.F32LE(c.Width)
		bw.F32LE(c.Height)
		bw.F32LE(c.X)
		bw.F32LE(c.Y)
	}

	bw.I32LE(int32(len(f.Parts)))
	for _, p := range f.Parts {
		bw.I32LE(p.ID)
		bw.F32LE(p.X)
		bw.F32LE(p.Y)
		bw.F32LE(p.Rotation)
		bw.I32LE(p.Flip)
		bw.F32LE(p.ScaleX)
		bw.F32LE(p.ScaleY)
		bw.String(p.Postfix)
	}

	bw.U8(frameTerminator)
}
