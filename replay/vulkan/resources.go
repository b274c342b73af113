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

package vulkan

import (
	"context"

	"github.com/ARM-software/vktrace-arm-sub000/core/log"
	"github.com/ARM-software/vktrace-arm-sub000/replay/api"
	"github.com/ARM-software/vktrace-arm-sub000/replay/compat"
)

type VkCreateBufferView struct {
	Device api.VkDevice
	Info   api.BufferViewCreateInfo
	View   api.VkBufferView
	Result api.VkResult
}

func (*VkCreateBufferView) CmdName() string { return "vkCreateBufferView" }

func (a *VkCreateBufferView) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Buffer = live(c, a.Info.Buffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	view, res := r.drv.CreateBufferView(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.View, view)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyBufferView struct {
	Device api.VkDevice
	View   api.VkBufferView
}

func (*VkDestroyBufferView) CmdName() string { return "vkDestroyBufferView" }

func (a *VkDestroyBufferView) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, view := live(c, a.Device), live(c, a.View)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyBufferView(dev, view)
	forget(r, a.View)
	return Success
}

type VkCreateImageView struct {
	Device api.VkDevice
	Info   api.ImageViewCreateInfo
	View   api.VkImageView
	Result api.VkResult
}

func (*VkCreateImageView) CmdName() string { return "vkCreateImageView" }

func (a *VkCreateImageView) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Image = live(c, a.Info.Image)
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	view, res := r.drv.CreateImageView(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.View, view)
		r.trackers.AddView(view, info.Image)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyImageView struct {
	Device api.VkDevice
	View   api.VkImageView
}

func (*VkDestroyImageView) CmdName() string { return "vkDestroyImageView" }

func (a *VkDestroyImageView) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, view := live(c, a.Device), live(c, a.View)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyImageView(dev, view)
	r.trackers.RemoveView(view)
	forget(r, a.View)
	return Success
}

type VkCreateSampler struct {
	Device  api.VkDevice
	Info    api.SamplerCreateInfo
	Sampler api.VkSampler
	Result  api.VkResult
}

func (*VkCreateSampler) CmdName() string { return "vkCreateSampler" }

func (a *VkCreateSampler) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	sampler, res := r.drv.CreateSampler(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Sampler, sampler)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroySampler struct {
	Device  api.VkDevice
	Sampler api.VkSampler
}

func (*VkDestroySampler) CmdName() string { return "vkDestroySampler" }

func (a *VkDestroySampler) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, sampler := live(c, a.Device), live(c, a.Sampler)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroySampler(dev, sampler)
	forget(r, a.Sampler)
	return Success
}

type VkCreateSamplerYcbcrConversion struct {
	Device     api.VkDevice
	Info       api.SamplerYcbcrConversionCreateInfo
	Conversion api.VkSamplerYcbcrConversion
	Result     api.VkResult
}

func (*VkCreateSamplerYcbcrConversion) CmdName() string { return "vkCreateSamplerYcbcrConversion" }

func (a *VkCreateSamplerYcbcrConversion) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	conv, res := r.drv.CreateSamplerYcbcrConversion(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Conversion, conv)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroySamplerYcbcrConversion struct {
	Device     api.VkDevice
	Conversion api.VkSamplerYcbcrConversion
}

func (*VkDestroySamplerYcbcrConversion) CmdName() string { return "vkDestroySamplerYcbcrConversion" }

func (a *VkDestroySamplerYcbcrConversion) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, conv := live(c, a.Device), live(c, a.Conversion)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroySamplerYcbcrConversion(dev, conv)
	forget(r, a.Conversion)
	return Success
}

type VkCreateDescriptorSetLayout struct {
	Device api.VkDevice
	Info   api.DescriptorSetLayoutCreateInfo
	Layout api.VkDescriptorSetLayout
	Result api.VkResult
}

func (*VkCreateDescriptorSetLayout) CmdName() string { return "vkCreateDescriptorSetLayout" }

func (a *VkCreateDescriptorSetLayout) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Bindings = make([]api.DescriptorSetLayoutBinding, len(a.Info.Bindings))
	for i, b := range a.Info.Bindings {
		info.Bindings[i] = b
		info.Bindings[i].ImmutableSamplers = liveAll(c, b.ImmutableSamplers)
	}
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	layout, res := r.drv.CreateDescriptorSetLayout(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Layout, layout)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyDescriptorSetLayout struct {
	Device api.VkDevice
	Layout api.VkDescriptorSetLayout
}

func (*VkDestroyDescriptorSetLayout) CmdName() string { return "vkDestroyDescriptorSetLayout" }

func (a *VkDestroyDescriptorSetLayout) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, layout := live(c, a.Device), live(c, a.Layout)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyDescriptorSetLayout(dev, layout)
	forget(r, a.Layout)
	return Success
}

type VkCreateDescriptorPool struct {
	Device api.VkDevice
	Info   api.DescriptorPoolCreateInfo
	Pool   api.VkDescriptorPool
	Result api.VkResult
}

func (*VkCreateDescriptorPool) CmdName() string { return "vkCreateDescriptorPool" }

func (a *VkCreateDescriptorPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pool, res := r.drv.CreateDescriptorPool(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Pool, pool)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyDescriptorPool struct {
	Device api.VkDevice
	Pool   api.VkDescriptorPool
}

func (*VkDestroyDescriptorPool) CmdName() string { return "vkDestroyDescriptorPool" }

func (a *VkDestroyDescriptorPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyDescriptorPool(dev, pool)
	forgetAll(r, r.descriptorSets[a.Pool])
	delete(r.descriptorSets, a.Pool)
	forget(r, a.Pool)
	return Success
}

type VkResetDescriptorPool struct {
	Device api.VkDevice
	Pool   api.VkDescriptorPool
	Result api.VkResult
}

func (*VkResetDescriptorPool) CmdName() string { return "vkResetDescriptorPool" }

func (a *VkResetDescriptorPool) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	res := r.drv.ResetDescriptorPool(dev, pool)
	if res == api.VK_SUCCESS {
		forgetAll(r, r.descriptorSets[a.Pool])
		delete(r.descriptorSets, a.Pool)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkAllocateDescriptorSets struct {
	Device api.VkDevice
	Info   api.DescriptorSetAllocateInfo
	Sets   []api.VkDescriptorSet
	Result api.VkResult
}

func (*VkAllocateDescriptorSets) CmdName() string { return "vkAllocateDescriptorSets" }

func (a *VkAllocateDescriptorSets) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := api.DescriptorSetAllocateInfo{
		DescriptorPool: live(c, a.Info.DescriptorPool),
		SetLayouts:     liveAll(c, a.Info.SetLayouts),
		Next:           c.chain(a.Info.Next),
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	sets, res := r.drv.AllocateDescriptorSets(dev, &info)
	if res == api.VK_SUCCESS {
		addAll(ctx, r, a.Sets, sets)
		r.descriptorSets[a.Info.DescriptorPool] = append(r.descriptorSets[a.Info.DescriptorPool], a.Sets...)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkFreeDescriptorSets struct {
	Device api.VkDevice
	Pool   api.VkDescriptorPool
	Sets   []api.VkDescriptorSet
	Result api.VkResult
}

func (*VkFreeDescriptorSets) CmdName() string { return "vkFreeDescriptorSets" }

func (a *VkFreeDescriptorSets) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pool := live(c, a.Device), live(c, a.Pool)
	sets := liveAll(c, a.Sets)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	res := r.drv.FreeDescriptorSets(dev, pool, sets)
	freed := map[api.VkDescriptorSet]bool{}
	for _, s := range a.Sets {
		freed[s] = true
	}
	kept := r.descriptorSets[a.Pool][:0]
	for _, s := range r.descriptorSets[a.Pool] {
		if !freed[s] {
			kept = append(kept, s)
		}
	}
	r.descriptorSets[a.Pool] = kept
	forgetAll(r, a.Sets)
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkUpdateDescriptorSets struct {
	Device api.VkDevice
	Writes []api.WriteDescriptorSet
	Copies []api.CopyDescriptorSet
}

func (*VkUpdateDescriptorSets) CmdName() string { return "vkUpdateDescriptorSets" }

func (a *VkUpdateDescriptorSets) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	writes := make([]api.WriteDescriptorSet, len(a.Writes))
	for i, w := range a.Writes {
		writes[i] = w
		writes[i].DstSet = live(c, w.DstSet)
		if w.ImageInfo != nil {
			writes[i].ImageInfo = make([]api.DescriptorImageInfo, len(w.ImageInfo))
			for j, ii := range w.ImageInfo {
				writes[i].ImageInfo[j] = api.DescriptorImageInfo{
					Sampler:     live(c, ii.Sampler),
					ImageView:   live(c, ii.ImageView),
					ImageLayout: ii.ImageLayout,
				}
			}
		}
		if w.BufferInfo != nil {
			writes[i].BufferInfo = make([]api.DescriptorBufferInfo, len(w.BufferInfo))
			for j, bi := range w.BufferInfo {
				writes[i].BufferInfo[j] = bi
				writes[i].BufferInfo[j].Buffer = live(c, bi.Buffer)
			}
		}
		writes[i].TexelBufferView = liveAll(c, w.TexelBufferView)
		writes[i].Next = c.chain(w.Next)
	}
	copies := make([]api.CopyDescriptorSet, len(a.Copies))
	for i, cp := range a.Copies {
		copies[i] = cp
		copies[i].SrcSet = live(c, cp.SrcSet)
		copies[i].DstSet = live(c, cp.DstSet)
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.UpdateDescriptorSets(dev, writes, copies)
	return Success
}

type VkCreateShaderModule struct {
	Device api.VkDevice
	Info   api.ShaderModuleCreateInfo
	Module api.VkShaderModule
	Result api.VkResult
}

func (*VkCreateShaderModule) CmdName() string { return "vkCreateShaderModule" }

func (a *VkCreateShaderModule) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	module, res := r.drv.CreateShaderModule(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Module, module)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyShaderModule struct {
	Device api.VkDevice
	Module api.VkShaderModule
}

func (*VkDestroyShaderModule) CmdName() string { return "vkDestroyShaderModule" }

func (a *VkDestroyShaderModule) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, module := live(c, a.Device), live(c, a.Module)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyShaderModule(dev, module)
	forget(r, a.Module)
	return Success
}

type VkCreatePipelineCache struct {
	Device api.VkDevice
	Info   api.PipelineCacheCreateInfo
	Cache  api.VkPipelineCache
	Result api.VkResult
}

func (*VkCreatePipelineCache) CmdName() string { return "vkCreatePipelineCache" }

func (a *VkCreatePipelineCache) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	info := a.Info
	if d := r.device(a.Device); d != nil && len(info.InitialData) > 0 {
		if capture, replay := r.infos(d); !compat.SamePlatform(capture, replay) {
			log.D(ctx, "Dropping %d bytes of pipeline cache data from another platform", len(info.InitialData))
			info.InitialData = nil
		}
	}
	cache, res := r.drv.CreatePipelineCache(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Cache, cache)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyPipelineCache struct {
	Device api.VkDevice
	Cache  api.VkPipelineCache
}

func (*VkDestroyPipelineCache) CmdName() string { return "vkDestroyPipelineCache" }

func (a *VkDestroyPipelineCache) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, cache := live(c, a.Device), live(c, a.Cache)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyPipelineCache(dev, cache)
	forget(r, a.Cache)
	return Success
}

type VkCreatePipelineLayout struct {
	Device api.VkDevice
	Info   api.PipelineLayoutCreateInfo
	Layout api.VkPipelineLayout
	Result api.VkResult
}

func (*VkCreatePipelineLayout) CmdName() string { return "vkCreatePipelineLayout" }

func (a *VkCreatePipelineLayout) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.SetLayouts = liveAll(c, a.Info.SetLayouts)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	layout, res := r.drv.CreatePipelineLayout(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Layout, layout)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyPipelineLayout struct {
	Device api.VkDevice
	Layout api.VkPipelineLayout
}

func (*VkDestroyPipelineLayout) CmdName() string { return "vkDestroyPipelineLayout" }

func (a *VkDestroyPipelineLayout) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, layout := live(c, a.Device), live(c, a.Layout)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyPipelineLayout(dev, layout)
	forget(r, a.Layout)
	return Success
}

type VkCreateRenderPass struct {
	Device     api.VkDevice
	Info       api.RenderPassCreateInfo
	RenderPass api.VkRenderPass
	Result     api.VkResult
}

func (*VkCreateRenderPass) CmdName() string { return "vkCreateRenderPass" }

func (a *VkCreateRenderPass) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.Next = c.chain(a.Info.Next)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pass, res := r.drv.CreateRenderPass(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.RenderPass, pass)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyRenderPass struct {
	Device     api.VkDevice
	RenderPass api.VkRenderPass
}

func (*VkDestroyRenderPass) CmdName() string { return "vkDestroyRenderPass" }

func (a *VkDestroyRenderPass) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pass := live(c, a.Device), live(c, a.RenderPass)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyRenderPass(dev, pass)
	forget(r, a.RenderPass)
	return Success
}

type VkCreateFramebuffer struct {
	Device      api.VkDevice
	Info        api.FramebufferCreateInfo
	Framebuffer api.VkFramebuffer
	Result      api.VkResult
}

func (*VkCreateFramebuffer) CmdName() string { return "vkCreateFramebuffer" }

func (a *VkCreateFramebuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev := live(c, a.Device)
	info := a.Info
	info.RenderPass = live(c, a.Info.RenderPass)
	info.Attachments = liveAll(c, a.Info.Attachments)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	fb, res := r.drv.CreateFramebuffer(dev, &info)
	if res == api.VK_SUCCESS {
		add(ctx, r, a.Framebuffer, fb)
		r.trackers.AddFramebuffer(fb, info.RenderPass, info.Attachments)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyFramebuffer struct {
	Device      api.VkDevice
	Framebuffer api.VkFramebuffer
}

func (*VkDestroyFramebuffer) CmdName() string { return "vkDestroyFramebuffer" }

func (a *VkDestroyFramebuffer) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, fb := live(c, a.Device), live(c, a.Framebuffer)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyFramebuffer(dev, fb)
	r.trackers.RemoveFramebuffer(fb)
	forget(r, a.Framebuffer)
	return Success
}

func liveStage(c *call, s api.PipelineShaderStageCreateInfo) api.PipelineShaderStageCreateInfo {
	s.Module = live(c, s.Module)
	return s
}

func liveStages(c *call, stages []api.PipelineShaderStageCreateInfo) []api.PipelineShaderStageCreateInfo {
	out := make([]api.PipelineShaderStageCreateInfo, len(stages))
	for i, s := range stages {
		out[i] = liveStage(c, s)
	}
	return out
}

type VkCreateGraphicsPipelines struct {
	Device    api.VkDevice
	Cache     api.VkPipelineCache
	Infos     []api.GraphicsPipelineCreateInfo
	Pipelines []api.VkPipeline
	Result    api.VkResult
}

func (*VkCreateGraphicsPipelines) CmdName() string { return "vkCreateGraphicsPipelines" }

func (a *VkCreateGraphicsPipelines) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, cache := live(c, a.Device), live(c, a.Cache)
	infos := make([]api.GraphicsPipelineCreateInfo, len(a.Infos))
	for i, in := range a.Infos {
		infos[i] = in
		infos[i].Stages = liveStages(c, in.Stages)
		infos[i].Layout = live(c, in.Layout)
		infos[i].RenderPass = live(c, in.RenderPass)
		infos[i].BasePipelineHandle = live(c, in.BasePipelineHandle)
		infos[i].Next = c.chain(in.Next)
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pipelines, res := r.drv.CreateGraphicsPipelines(dev, cache, infos)
	if res == api.VK_SUCCESS {
		addAll(ctx, r, a.Pipelines, pipelines)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkCreateComputePipelines struct {
	Device    api.VkDevice
	Cache     api.VkPipelineCache
	Infos     []api.ComputePipelineCreateInfo
	Pipelines []api.VkPipeline
	Result    api.VkResult
}

func (*VkCreateComputePipelines) CmdName() string { return "vkCreateComputePipelines" }

func (a *VkCreateComputePipelines) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, cache := live(c, a.Device), live(c, a.Cache)
	infos := make([]api.ComputePipelineCreateInfo, len(a.Infos))
	for i, in := range a.Infos {
		infos[i] = in
		infos[i].Stage = liveStage(c, in.Stage)
		infos[i].Layout = live(c, in.Layout)
		infos[i].BasePipelineHandle = live(c, in.BasePipelineHandle)
		infos[i].Next = c.chain(in.Next)
	}
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	pipelines, res := r.drv.CreateComputePipelines(dev, cache, infos)
	if res == api.VK_SUCCESS {
		addAll(ctx, r, a.Pipelines, pipelines)
	}
	return r.result(ctx, a.CmdName(), a.Result, res)
}

type VkDestroyPipeline struct {
	Device   api.VkDevice
	Pipeline api.VkPipeline
}

func (*VkDestroyPipeline) CmdName() string { return "vkDestroyPipeline" }

func (a *VkDestroyPipeline) Replay(ctx context.Context, r *Replayer) Status {
	c := r.call()
	dev, pipeline := live(c, a.Device), live(c, a.Pipeline)
	if s, skip := c.skipped(ctx); skip {
		return s
	}
	r.drv.DestroyPipeline(dev, pipeline)
	forget(r, a.Pipeline)
	return Success
}
