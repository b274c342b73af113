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

// Package flags binds command line flags to tagged structs.
package flags

import (
	"flag"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Set is a flag set that values are bound into.
type Set struct {
	// Raw is the underlying flag set
	Raw flag.FlagSet
}

// Bind uses reflection to bind flag values to the verb.
// It will recurse into nested structures adding all leaf fields.
// Struct fields may carry a `help:"..."` tag for the usage text and a
// `name:"..."` tag to override the derived flag name.
func (s *Set) Bind(name string, value interface{}, help string) {
	switch val := value.(type) {
	case *bool:
		s.Raw.BoolVar(val, name, *val, help)
		return
	case *int:
		s.Raw.IntVar(val, name, *val, help)
		return
	case *int64:
		s.Raw.Int64Var(val, name, *val, help)
		return
	case *uint:
		s.Raw.UintVar(val, name, *val, help)
		return
	case *uint32:
		s.Raw.Var((*uint32Value)(val), name, help)
		return
	case *uint64:
		s.Raw.Uint64Var(val, name, *val, help)
		return
	case *float64:
		s.Raw.Float64Var(val, name, *val, help)
		return
	case *string:
		s.Raw.StringVar(val, name, *val, help)
		return
	case *time.Duration:
		s.Raw.DurationVar(val, name, *val, help)
		return
	case Choosable:
		chooser := val.Chooser()
		s.Raw.Var(chooser, name, fmt.Sprintf("%s [one of: %s]", help, chooser.Choices))
		return
	case Enum:
		chooser := ForEnum(val)
		s.Raw.Var(chooser, name, fmt.Sprintf("%s [one of: %s]", help, chooser.Choices))
		return
	case flag.Value:
		s.Raw.Var(val, name, help)
		return
	}
	rv := reflect.ValueOf(value)

	if rv.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("Flag value not a pointer: %v", rv.Type()))
	}

	e := rv.Elem()
	if e.Kind() != reflect.Struct {
		panic(fmt.Sprintf("Unhandled flag type: %v", rv.Type()))
	}
	t := e.Type()
	for i := 0; i < e.NumField(); i++ {
		tf := t.Field(i)
		if tf.PkgPath != "" {
			continue // Unexported.
		}
		field := e.Field(i)
		fname := flagName(tf.Name)
		if tf.Anonymous {
			fname = ""
		}
		if partial := tf.Tag.Get("name"); partial != "" {
			fname = partial
		}
		fullname := name
		switch {
		case fname == "":
		case name == "":
			fullname = fname
		default:
			fullname = name + "-" + fname
		}
		s.Bind(fullname, field.Addr().Interface(), tf.Tag.Get("help"))
	}
}

// flagName converts a Go field name to a lower-case, dash separated flag name.
// Runs of capitals are kept together, so "ForceSyncImgIdx" becomes
// "force-sync-img-idx" and "DisableRQAndRTP" becomes "disable-rq-and-rtp".
func flagName(field string) string {
	r := []rune(field)
	var b strings.Builder
	for i, c := range r {
		upper := c >= 'A' && c <= 'Z'
		if upper && i > 0 {
			prevLower := r[i-1] >= 'a' && r[i-1] <= 'z'
			nextLower := i+1 < len(r) && r[i+1] >= 'a' && r[i+1] <= 'z'
			prevUpper := r[i-1] >= 'A' && r[i-1] <= 'Z'
			if prevLower || (prevUpper && nextLower) {
				b.WriteByte('-')
			}
		}
		b.WriteString(strings.ToLower(string(c)))
	}
	return b.String()
}

// Usage returns the usage string for the flags.
func (s *Set) Usage() string {
	result := ""
	s.Raw.VisitAll(func(fl *flag.Flag) {
		name, usage := flag.UnquoteUsage(fl)
		if result != "" {
			result += "\n"
		}
		result += fmt.Sprintf("  -%s %s\n\t%s", fl.Name, name, usage)
		switch fl.DefValue {
		case "", "false", "0":
		default:
			result += fmt.Sprintf(" (default %v)", fl.DefValue)
		}
	})
	return result
}

// Parse processes the args to fill in the flags.
// see flag.Parse for more details.
func (s *Set) Parse(args ...string) error {
	s.Raw.Init(s.Raw.Name(), flag.ContinueOnError)
	return s.Raw.Parse(args)
}

// Args returns the unprocessed part of the command line passed to Parse.
func (s *Set) Args() []string {
	return s.Raw.Args()
}

type uint32Value uint32

func (v *uint32Value) String() string {
	if v == nil {
		return "0"
	}
	return fmt.Sprint(uint32(*v))
}

func (v *uint32Value) Set(s string) error {
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return err
	}
	*v = uint32Value(u)
	return nil
}
