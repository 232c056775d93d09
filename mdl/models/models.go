// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package models is a by-name registry of concrete scattering-model
// kernels, in the shape of mdl/solid.New's allocator-map registry.
package models

import (
	"github.com/cpmech/gosl/chk"

	"github.com/go-sas/scatterfem/mdl/kernel"
	"github.com/go-sas/scatterfem/mdl/models/coreshellsphere"
	"github.com/go-sas/scatterfem/mdl/models/multilayervesicle"
)

// New returns a new model kernel by name, or an error if unknown.
func New(name string) (kernel.Model, error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, chk.Err("model %q is not available in 'models' database", name)
	}
	return allocator(), nil
}

var allocators = map[string]func() kernel.Model{
	"core-shell-sphere":  func() kernel.Model { return coreshellsphere.Model{} },
	"multilayer-vesicle": func() kernel.Model { return multilayervesicle.Model{} },
}
