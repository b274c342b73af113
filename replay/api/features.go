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

import "fmt"

// Feature indexes a member of VkPhysicalDeviceFeatures, in declaration order.
type Feature int

const (
	FeatureRobustBufferAccess Feature = iota
	FeatureFullDrawIndexUint32
	FeatureImageCubeArray
	FeatureIndependentBlend
	FeatureGeometryShader
	FeatureTessellationShader
	FeatureSampleRateShading
	FeatureDualSrcBlend
	FeatureLogicOp
	FeatureMultiDrawIndirect
	FeatureDrawIndirectFirstInstance
	FeatureDepthClamp
	FeatureDepthBiasClamp
	FeatureFillModeNonSolid
	FeatureDepthBounds
	FeatureWideLines
	FeatureLargePoints
	FeatureAlphaToOne
	FeatureMultiViewport
	FeatureSamplerAnisotropy
	FeatureTextureCompressionETC2
	FeatureTextureCompressionASTCLDR
	FeatureTextureCompressionBC
	FeatureOcclusionQueryPrecise
	FeaturePipelineStatisticsQuery
	FeatureVertexPipelineStoresAndAtomics
	FeatureFragmentStoresAndAtomics
	FeatureShaderTessellationAndGeometryPointSize
	FeatureShaderImageGatherExtended
	FeatureShaderStorageImageExtendedFormats
	FeatureShaderStorageImageMultisample
	FeatureShaderStorageImageReadWithoutFormat
	FeatureShaderStorageImageWriteWithoutFormat
	FeatureShaderUniformBufferArrayDynamicIndexing
	FeatureShaderSampledImageArrayDynamicIndexing
	FeatureShaderStorageBufferArrayDynamicIndexing
	FeatureShaderStorageImageArrayDynamicIndexing
	FeatureShaderClipDistance
	FeatureShaderCullDistance
	FeatureShaderFloat64
	FeatureShaderInt64
	FeatureShaderInt16
	FeatureShaderResourceResidency
	FeatureShaderResourceMinLod
	FeatureSparseBinding
	FeatureSparseResidencyBuffer
	FeatureSparseResidencyImage2D
	FeatureSparseResidencyImage3D
	FeatureSparseResidency2Samples
	FeatureSparseResidency4Samples
	FeatureSparseResidency8Samples
	FeatureSparseResidency16Samples
	FeatureSparseResidencyAliased
	FeatureVariableMultisampleRate
	FeatureInheritedQueries

	FeatureCount
)

var featureNames = [FeatureCount]string{
	FeatureRobustBufferAccess:                      "robustBufferAccess",
	FeatureFullDrawIndexUint32:                     "fullDrawIndexUint32",
	FeatureImageCubeArray:                          "imageCubeArray",
	FeatureIndependentBlend:                        "independentBlend",
	FeatureGeometryShader:                          "geometryShader",
	FeatureTessellationShader:                      "tessellationShader",
	FeatureSampleRateShading:                       "sampleRateShading",
	FeatureDualSrcBlend:                            "dualSrcBlend",
	FeatureLogicOp:                                 "logicOp",
	FeatureMultiDrawIndirect:                       "multiDrawIndirect",
	FeatureDrawIndirectFirstInstance:               "drawIndirectFirstInstance",
	FeatureDepthClamp:                              "depthClamp",
	FeatureDepthBiasClamp:                          "depthBiasClamp",
	FeatureFillModeNonSolid:                        "fillModeNonSolid",
	FeatureDepthBounds:                             "depthBounds",
	FeatureWideLines:                               "wideLines",
	FeatureLargePoints:                             "largePoints",
	FeatureAlphaToOne:                              "alphaToOne",
	FeatureMultiViewport:                           "multiViewport",
	FeatureSamplerAnisotropy:                       "samplerAnisotropy",
	FeatureTextureCompressionETC2:                  "textureCompressionETC2",
	FeatureTextureCompressionASTCLDR:               "textureCompressionASTC_LDR",
	FeatureTextureCompressionBC:                    "textureCompressionBC",
	FeatureOcclusionQueryPrecise:                   "occlusionQueryPrecise",
	FeaturePipelineStatisticsQuery:                 "pipelineStatisticsQuery",
	FeatureVertexPipelineStoresAndAtomics:          "vertexPipelineStoresAndAtomics",
	FeatureFragmentStoresAndAtomics:                "fragmentStoresAndAtomics",
	FeatureShaderTessellationAndGeometryPointSize:  "shaderTessellationAndGeometryPointSize",
	FeatureShaderImageGatherExtended:               "shaderImageGatherExtended",
	FeatureShaderStorageImageExtendedFormats:       "shaderStorageImageExtendedFormats",
	FeatureShaderStorageImageMultisample:           "shaderStorageImageMultisample",
	FeatureShaderStorageImageReadWithoutFormat:     "shaderStorageImageReadWithoutFormat",
	FeatureShaderStorageImageWriteWithoutFormat:    "shaderStorageImageWriteWithoutFormat",
	FeatureShaderUniformBufferArrayDynamicIndexing: "shaderUniformBufferArrayDynamicIndexing",
	FeatureShaderSampledImageArrayDynamicIndexing:  "shaderSampledImageArrayDynamicIndexing",
	FeatureShaderStorageBufferArrayDynamicIndexing: "shaderStorageBufferArrayDynamicIndexing",
	FeatureShaderStorageImageArrayDynamicIndexing:  "shaderStorageImageArrayDynamicIndexing",
	FeatureShaderClipDistance:                      "shaderClipDistance",
	FeatureShaderCullDistance:                      "shaderCullDistance",
	FeatureShaderFloat64:                           "shaderFloat64",
	FeatureShaderInt64:                             "shaderInt64",
	FeatureShaderInt16:                             "shaderInt16",
	FeatureShaderResourceResidency:                 "shaderResourceResidency",
	FeatureShaderResourceMinLod:                    "shaderResourceMinLod",
	FeatureSparseBinding:                           "sparseBinding",
	FeatureSparseResidencyBuffer:                   "sparseResidencyBuffer",
	FeatureSparseResidencyImage2D:                  "sparseResidencyImage2D",
	FeatureSparseResidencyImage3D:                  "sparseResidencyImage3D",
	FeatureSparseResidency2Samples:                 "sparseResidency2Samples",
	FeatureSparseResidency4Samples:                 "sparseResidency4Samples",
	FeatureSparseResidency8Samples:                 "sparseResidency8Samples",
	FeatureSparseResidency16Samples:                "sparseResidency16Samples",
	FeatureSparseResidencyAliased:                  "sparseResidencyAliased",
	FeatureVariableMultisampleRate:                 "variableMultisampleRate",
	FeatureInheritedQueries:                        "inheritedQueries",
}

func (f Feature) String() string {
	if f >= 0 && f < FeatureCount {
		return featureNames[f]
	}
	return fmt.Sprintf("Feature(%d)", int(f))
}

// PhysicalDeviceFeatures holds the core device features, indexed by Feature.
type PhysicalDeviceFeatures [FeatureCount]bool

// Enabled returns the features that are set, in declaration order.
func (p PhysicalDeviceFeatures) Enabled() []Feature {
	out := []Feature{}
	for f, on := range p {
		if on {
			out = append(out, Feature(f))
		}
	}
	return out
}

// Unsupported returns the features requested in p that are not set in
// supported.
func (p PhysicalDeviceFeatures) Unsupported(supported PhysicalDeviceFeatures) []Feature {
	out := []Feature{}
	for f, on := range p {
		if on && !supported[f] {
			out = append(out, Feature(f))
		}
	}
	return out
}
