// Copyright (C) 2026 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package trace reads and writes the replay packet container: a msgpack
// stream holding a header followed by one packet per recorded call.
package trace

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

const (
	Magic   = "VKREPLAY"
	Version = 1

	ErrBadMagic   = fault.Const("Not a replay trace")
	ErrBadVersion = fault.Const("Unsupported trace version")
)

// Device is the capture-time description of a physical device, recorded
// from the outputs of the capture's introspection calls.
type Device struct {
	Handle        api.VkPhysicalDevice         `msgpack:"handle"`
	Properties    api.PhysicalDeviceProperties `msgpack:"properties"`
	QueueFamilies []api.QueueFamilyProperties  `msgpack:"queue_families,omitempty"`
	Memory        *api.MemoryProperties        `msgpack:"memory,omitempty"`
	Features      *api.PhysicalDeviceFeatures  `msgpack:"features,omitempty"`
	FeatureChain  api.Chain                    `msgpack:"feature_chain"`
	Extensions    []string                     `msgpack:"extensions,omitempty"`
}

// Header starts every trace.
type Header struct {
	Magic       string   `msgpack:"magic"`
	Version     int      `msgpack:"version"`
	Application string   `msgpack:"application,omitempty"`
	Devices     []Device `msgpack:"devices,omitempty"`
}

// Packet is one recorded call. Body holds the call's msgpack encoded
// parameters and captured results.
type Packet struct {
	Name string             `msgpack:"n"`
	Seq  uint64             `msgpack:"s"`
	Body msgpack.RawMessage `msgpack:"b"`
}

// Decode unmarshals the packet body into v.
func (p Packet) Decode(v interface{}) error {
	if err := msgpack.Unmarshal(p.Body, v); err != nil {
		return errors.Wrapf(err, "Decoding %s #%d", p.Name, p.Seq)
	}
	return nil
}

// Writer appends packets to a trace.
type Writer struct {
	w   *bufio.Writer
	enc *msgpack.Encoder
	seq uint64
}

// NewWriter writes h to w and returns a Writer for the packets that follow.
// The magic and version are filled in.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	bw := bufio.NewWriter(w)
	out := &Writer{w: bw, enc: msgpack.NewEncoder(bw)}
	h.Magic, h.Version = Magic, Version
	if err := out.enc.Encode(&h); err != nil {
		return nil, errors.Wrap(err, "Writing trace header")
	}
	return out, nil
}

// Write appends a packet for the call name with the given body.
func (w *Writer) Write(name string, body interface{}) error {
	raw, err := msgpack.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "Encoding %s", name)
	}
	p := Packet{Name: name, Seq: w.seq, Body: raw}
	if err := w.enc.Encode(&p); err != nil {
		return errors.Wrapf(err, "Writing %s", name)
	}
	w.seq++
	return nil
}

// Flush writes any buffered packets.
func (w *Writer) Flush() error { return w.w.Flush() }

// Reader reads the packets of a trace in order.
type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and validates the trace header from r.
func NewReader(r io.Reader) (*Reader, error) {
	out := &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
	if err := out.dec.Decode(&out.header); err != nil {
		return nil, errors.Wrap(err, "Reading trace header")
	}
	if out.header.Magic != Magic {
		return nil, errors.Wrapf(ErrBadMagic, "magic %q", out.header.Magic)
	}
	if out.header.Version != Version {
		return nil, errors.Wrapf(ErrBadVersion, "version %d", out.header.Version)
	}
	return out, nil
}

// Header returns the trace header.
func (r *Reader) Header() Header { return r.header }

// Next returns the next packet, or io.EOF after the last one.
func (r *Reader) Next() (Packet, error) {
	var p Packet
	if err := r.dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return Packet{}, io.EOF
		}
		return Packet{}, errors.Wrap(err, "Reading packet")
	}
	return p, nil
}
