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

// Package swapchain correlates captured swapchain images with the images the
// live driver hands out, and optionally decouples replayed rendering from the
// presentable images with a virtual swapchain.
package swapchain

import (
	"sort"

	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
)

// State is the lifecycle state of a Tracker.
type State int

const (
	// Unbound trackers have not seen an image enumeration yet.
	Unbound State = iota
	// Populated trackers hold the correlations of an image enumeration.
	Populated
	// Reset trackers belonged to a swapchain that has been torn down.
	Reset
)

func (s State) String() string {
	switch s {
	case Unbound:
		return "Unbound"
	case Populated:
		return "Populated"
	case Reset:
		return "Reset"
	default:
		return "State(?)"
	}
}

type correlations struct {
	images       map[api.VkImage]uint32
	byIndex      map[uint32]api.VkImage
	views        map[api.VkImageView]uint32
	framebuffers map[api.VkFramebuffer]uint32
	renderPasses map[api.VkFramebuffer]api.VkRenderPass
	attachments  map[api.VkFramebuffer]int
	acquired     map[uint32]uint32
}

func newCorrelations() correlations {
	return correlations{
		images:       map[api.VkImage]uint32{},
		byIndex:      map[uint32]api.VkImage{},
		views:        map[api.VkImageView]uint32{},
		framebuffers: map[api.VkFramebuffer]uint32{},
		renderPasses: map[api.VkFramebuffer]api.VkRenderPass{},
		attachments:  map[api.VkFramebuffer]int{},
		acquired:     map[uint32]uint32{},
	}
}

// Tracker correlates the images, image views and framebuffers of one
// swapchain with their image index. All handles it holds are live handles;
// under the virtual swapchain the images are the virtual images.
type Tracker struct {
	state State
	correlations
	saved []correlations
}

// NewTracker returns an Unbound tracker.
func NewTracker() *Tracker {
	return &Tracker{state: Unbound, correlations: newCorrelations()}
}

// State returns the tracker's lifecycle state.
func (t *Tracker) State() State { return t.state }

// Populate records the images returned by an image enumeration. Image i of
// images has index i.
func (t *Tracker) Populate(images []api.VkImage) {
	for i, img := range images {
		if img == 0 {
			continue
		}
		t.images[img] = uint32(i)
		t.byIndex[uint32(i)] = img
	}
	t.state = Populated
}

// Len returns the number of images currently correlated.
func (t *Tracker) Len() int { return len(t.images) }

// Index returns the index of the swapchain image.
func (t *Tracker) Index(img api.VkImage) (uint32, bool) {
	i, ok := t.images[img]
	return i, ok
}

// Image returns the swapchain image with the given index.
func (t *Tracker) Image(index uint32) (api.VkImage, bool) {
	img, ok := t.byIndex[index]
	return img, ok
}

// Images returns the swapchain images ordered by index.
func (t *Tracker) Images() []api.VkImage {
	indices := make([]uint32, 0, len(t.byIndex))
	for i := range t.byIndex {
		indices = append(indices, i)
	}
	sort.Slice(indices, func(a, b int) bool { return indices[a] < indices[b] })
	out := make([]api.VkImage, len(indices))
	for i, idx := range indices {
		out[i] = t.byIndex[idx]
	}
	return out
}

// AddView records view if it views one of the swapchain images.
func (t *Tracker) AddView(view api.VkImageView, img api.VkImage) bool {
	i, ok := t.images[img]
	if ok {
		t.views[view] = i
	}
	return ok
}

// ViewIndex returns the image index viewed by view.
func (t *Tracker) ViewIndex(view api.VkImageView) (uint32, bool) {
	i, ok := t.views[view]
	return i, ok
}

// AddFramebuffer records fb if one of its attachments views a swapchain
// image.
func (t *Tracker) AddFramebuffer(fb api.VkFramebuffer, pass api.VkRenderPass, attachments []api.VkImageView) bool {
	for _, v := range attachments {
		if i, ok := t.views[v]; ok {
			t.framebuffers[fb] = i
			t.renderPasses[fb] = pass
			t.attachments[fb] = len(attachments)
			return true
		}
	}
	return false
}

// FramebufferIndex returns the image index rendered to by fb.
func (t *Tracker) FramebufferIndex(fb api.VkFramebuffer) (uint32, bool) {
	i, ok := t.framebuffers[fb]
	return i, ok
}

// RemoveImage drops the correlations of img. Views and framebuffers of other
// images are untouched.
func (t *Tracker) RemoveImage(img api.VkImage) {
	if i, ok := t.images[img]; ok {
		delete(t.images, img)
		if t.byIndex[i] == img {
			delete(t.byIndex, i)
		}
	}
}

// RemoveView drops the correlation of view.
func (t *Tracker) RemoveView(view api.VkImageView) { delete(t.views, view) }

// RemoveFramebuffer drops the correlations of fb.
func (t *Tracker) RemoveFramebuffer(fb api.VkFramebuffer) {
	delete(t.framebuffers, fb)
	delete(t.renderPasses, fb)
	delete(t.attachments, fb)
}

// Acquire records that the captured acquire returned index captured while the
// live acquire returned live.
func (t *Tracker) Acquire(captured, live uint32) { t.acquired[captured] = live }

// LiveIndex returns the live image index last acquired in place of the
// captured index. Indices never acquired map to themselves.
func (t *Tracker) LiveIndex(captured uint32) uint32 {
	if live, ok := t.acquired[captured]; ok {
		return live
	}
	return captured
}

// SubstituteFramebuffer returns the framebuffer to use in place of fb so that
// rendering targets the image the live driver acquired. Candidates rendering
// to the live index are preferred by render pass, then by attachment count.
// If none fits, fb is returned unchanged.
func (t *Tracker) SubstituteFramebuffer(fb api.VkFramebuffer, pass api.VkRenderPass) api.VkFramebuffer {
	captured, ok := t.framebuffers[fb]
	if !ok {
		return fb
	}
	live := t.LiveIndex(captured)
	if live == captured {
		return fb
	}
	candidates := []api.VkFramebuffer{}
	for c, i := range t.framebuffers {
		if i == live {
			candidates = append(candidates, c)
		}
	}
	sort.Slice(candidates, func(a, b int) bool { return candidates[a] < candidates[b] })
	for _, c := range candidates {
		if t.renderPasses[c] == pass {
			return c
		}
	}
	for _, c := range candidates {
		if t.attachments[c] == t.attachments[fb] {
			return c
		}
	}
	return fb
}

// SubstituteImage returns the image with the live index acquired in place of
// img's index, or img if there is none.
func (t *Tracker) SubstituteImage(img api.VkImage) api.VkImage {
	captured, ok := t.images[img]
	if !ok {
		return img
	}
	if sub, ok := t.byIndex[t.LiveIndex(captured)]; ok {
		return sub
	}
	return img
}

// Reset clears every correlation.
func (t *Tracker) Reset() {
	t.correlations = newCorrelations()
	t.state = Reset
}

// Push saves the current correlations and starts afresh. It is used when
// another captured swapchain is coalesced onto the same live swapchain.
func (t *Tracker) Push() {
	t.saved = append(t.saved, t.correlations)
	t.correlations = newCorrelations()
	t.state = Unbound
}

// Pop restores the correlations saved by the matching Push. It returns false
// if nothing was saved.
func (t *Tracker) Pop() bool {
	if len(t.saved) == 0 {
		return false
	}
	n := len(t.saved) - 1
	t.correlations, t.saved = t.saved[n], t.saved[:n]
	t.state = Populated
	return true
}

// Depth returns the number of saved correlation sets.
func (t *Tracker) Depth() int { return len(t.saved) }
