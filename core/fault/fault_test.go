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

package fault_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ARM-software/vktrace-arm-sub000/core/fault"
)

const (
	errorMessage = "Some message"
	anError      = fault.Const(errorMessage)
	anotherError = fault.Const("another")
)

func TestConst(t *testing.T) {
	assert.Equal(t, errorMessage, anError.Error())
	assert.True(t, errors.Is(fault.List{anotherError, anError}, anError))
}

func TestList(t *testing.T) {
	list := fault.List{}
	assert.NoError(t, list.Err())

	list.Collect(nil)
	assert.Len(t, list, 0)

	list.Collect(anError)
	assert.Equal(t, anError, list.Err())

	list.Collect(anotherError)
	assert.Len(t, list, 2)
	assert.Equal(t, anError, list[0])
	assert.EqualError(t, list.Err(), "Some message; another")
	assert.True(t, errors.Is(list.Err(), anotherError))
}
