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

package swapchain

import "github.com/ARM-software/vktrace-arm-sub000/replay/api"

// Trackers holds a Tracker per live swapchain. Several captured swapchains
// coalesced onto one live swapchain share its tracker through Push and Pop.
type Trackers struct {
	m map[api.VkSwapchainKHR]*Tracker
}

// NewTrackers returns an empty tracker set.
func NewTrackers() *Trackers {
	return &Trackers{m: map[api.VkSwapchainKHR]*Tracker{}}
}

// Get returns the tracker of the live swapchain, creating it on first use.
func (s *Trackers) Get(live api.VkSwapchainKHR) *Tracker {
	t, ok := s.m[live]
	if !ok {
		t = NewTracker()
		s.m[live] = t
	}
	return t
}

// Lookup returns the tracker of the live swapchain if there is one.
func (s *Trackers) Lookup(live api.VkSwapchainKHR) (*Tracker, bool) {
	t, ok := s.m[live]
	return t, ok
}

// Delete resets and forgets the tracker of the live swapchain.
func (s *Trackers) Delete(live api.VkSwapchainKHR) {
	if t, ok := s.m[live]; ok {
		t.Reset()
		delete(s.m, live)
	}
}

// Len returns the number of tracked swapchains.
func (s *Trackers) Len() int { return len(s.m) }

// ForImage returns the tracker holding the live image.
func (s *Trackers) ForImage(img api.VkImage) (*Tracker, bool) {
	for _, t := range s.m {
		if _, ok := t.images[img]; ok {
			return t, true
		}
	}
	return nil, false
}

// ForView returns the tracker holding the live image view.
func (s *Trackers) ForView(view api.VkImageView) (*Tracker, bool) {
	for _, t := range s.m {
		if _, ok := t.views[view]; ok {
			return t, true
		}
	}
	return nil, false
}

// ForFramebuffer returns the tracker holding the live framebuffer.
func (s *Trackers) ForFramebuffer(fb api.VkFramebuffer) (*Tracker, bool) {
	for _, t := range s.m {
		if _, ok := t.framebuffers[fb]; ok {
			return t, true
		}
	}
	return nil, false
}

// AddView records view against whichever swapchain owns img.
func (s *Trackers) AddView(view api.VkImageView, img api.VkImage) {
	if t, ok := s.ForImage(img); ok {
		t.AddView(view, img)
	}
}

// AddFramebuffer records fb against whichever swapchain owns one of its
// attachments.
func (s *Trackers) AddFramebuffer(fb api.VkFramebuffer, pass api.VkRenderPass, attachments []api.VkImageView) {
	for _, v := range attachments {
		if t, ok := s.ForView(v); ok {
			t.AddFramebuffer(fb, pass, attachments)
			return
		}
	}
}

// RemoveView drops view from every tracker.
func (s *Trackers) RemoveView(view api.VkImageView) {
	for _, t := range s.m {
		t.RemoveView(view)
	}
}

// RemoveFramebuffer drops fb from every tracker.
func (s *Trackers) RemoveFramebuffer(fb api.VkFramebuffer) {
	for _, t := range s.m {
		t.RemoveFramebuffer(fb)
	}
}

// SubstituteFramebuffer applies Tracker.SubstituteFramebuffer using the
// tracker that owns fb.
func (s *Trackers) SubstituteFramebuffer(fb api.VkFramebuffer, pass api.VkRenderPass) api.VkFramebuffer {
	if t, ok := s.ForFramebuffer(fb); ok {
		return t.SubstituteFramebuffer(fb, pass)
	}
	return fb
}
