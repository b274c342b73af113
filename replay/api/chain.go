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

package api

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Chain is an ordered pNext extension chain. Each structure type appears at
// most once. The zero value is an empty chain.
type Chain struct {
	nodes []Node
}

// NewChain returns a chain holding nodes in order. A later node replaces an
// earlier one of the same structure type.
func NewChain(nodes ...Node) Chain {
	c := Chain{}
	for _, n := range nodes {
		c.Insert(n)
	}
	return c
}

// Len returns the number of nodes in the chain.
func (c Chain) Len() int { return len(c.nodes) }

// Nodes returns the nodes of the chain in order.
func (c Chain) Nodes() []Node { return append([]Node(nil), c.nodes...) }

// Find returns the node with the given structure type, or nil.
func (c Chain) Find(ty StructureType) Node {
	if i := c.index(ty); i >= 0 {
		return c.nodes[i]
	}
	return nil
}

// FindAs returns the first node of type T in the chain.
func FindAs[T Node](c Chain) (T, bool) {
	for _, n := range c.nodes {
		if t, ok := n.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Insert appends n to the chain, or replaces the node of the same structure
// type in its current position.
func (c *Chain) Insert(n Node) {
	if i := c.index(n.StructureType()); i >= 0 {
		c.nodes[i] = n
		return
	}
	c.nodes = append(c.nodes, n)
}

// Remove deletes the node with the given structure type, returning true if
// one was present.
func (c *Chain) Remove(ty StructureType) bool {
	i := c.index(ty)
	if i < 0 {
		return false
	}
	c.nodes = append(c.nodes[:i:i], c.nodes[i+1:]...)
	return true
}

// Clone returns a deep copy of the chain.
func (c Chain) Clone() Chain {
	if len(c.nodes) == 0 {
		return Chain{}
	}
	out := Chain{nodes: make([]Node, len(c.nodes))}
	for i, n := range c.nodes {
		out.nodes[i] = n.clone()
	}
	return out
}

// Remapped returns a copy of the chain with every node's handles translated
// through r. The receiver is left unmodified.
func (c Chain) Remapped(r Remapper) (Chain, error) {
	out := c.Clone()
	for _, n := range out.nodes {
		if err := n.RemapHandles(r); err != nil {
			return c, errors.Wrapf(err, "%v", n.StructureType())
		}
	}
	return out, nil
}

func (c Chain) index(ty StructureType) int {
	for i, n := range c.nodes {
		if n.StructureType() == ty {
			return i
		}
	}
	return -1
}

// EncodeMsgpack writes the chain as an array of [sType, body] pairs.
func (c Chain) EncodeMsgpack(e *msgpack.Encoder) error {
	if err := e.EncodeArrayLen(len(c.nodes)); err != nil {
		return err
	}
	for _, n := range c.nodes {
		if err := e.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := e.EncodeUint32(uint32(n.StructureType())); err != nil {
			return err
		}
		var err error
		switch o, ok := n.(*OpaqueNode); {
		case ok && len(o.Data) == 0:
			err = e.EncodeNil()
		case ok:
			err = e.Encode(msgpack.RawMessage(o.Data))
		default:
			err = e.Encode(n)
		}
		if err != nil {
			return errors.Wrapf(err, "encoding %v", n.StructureType())
		}
	}
	return nil
}

// DecodeMsgpack reads a chain written by EncodeMsgpack. Structure types the
// replayer does not know are kept as OpaqueNodes.
func (c *Chain) DecodeMsgpack(d *msgpack.Decoder) error {
	count, err := d.DecodeArrayLen()
	if err != nil {
		return err
	}
	c.nodes = nil
	for i := 0; i < count; i++ {
		if n, err := d.DecodeArrayLen(); err != nil {
			return err
		} else if n != 2 {
			return errors.Errorf("chain node %d has %d fields, expected 2", i, n)
		}
		ty, err := d.DecodeUint32()
		if err != nil {
			return err
		}
		node := newNode(StructureType(ty))
		if o, ok := node.(*OpaqueNode); ok {
			raw, err := d.DecodeRaw()
			if err != nil {
				return errors.Wrapf(err, "decoding %v", o.Type)
			}
			o.Data = raw
		} else if err := d.Decode(node); err != nil {
			return errors.Wrapf(err, "decoding %v", node.StructureType())
		}
		c.Insert(node)
	}
	return nil
}
