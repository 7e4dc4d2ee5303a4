// Copyright 2024 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aml

import (
	"fmt"
	"sync"
)

// MaxReferenceDepth is the longest reference chain Deref follows.
const MaxReferenceDepth = 64

// Arena owns AML objects. It is safe for concurrent use.
type Arena struct {
	locker  sync.RWMutex
	objects []Object
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Len returns the number of allocated objects.
func (a *Arena) Len() int {
	a.locker.RLock()
	defer a.locker.RUnlock()
	return len(a.objects)
}

// lookup returns the slot of h. The caller holds the lock.
func (a *Arena) lookup(h Handle) (*Object, error) {
	if h == 0 || int(h) > len(a.objects) {
		return nil, &ErrInvalidHandle{Handle: h}
	}
	return &a.objects[h-1], nil
}

func (a *Arena) validate(obj *Object) error {
	if obj.Kind != KindReference {
		return nil
	}
	if _, err := a.lookup(obj.Reference); err != nil {
		return fmt.Errorf("dangling reference: %w", err)
	}
	return nil
}

// Alloc stores a copy of obj and returns its handle. A reference object
// must refer to an already allocated object.
func (a *Arena) Alloc(obj Object) (Handle, error) {
	a.locker.Lock()
	defer a.locker.Unlock()
	if err := a.validate(&obj); err != nil {
		return 0, err
	}
	a.objects = append(a.objects, obj.clone())
	return Handle(len(a.objects)), nil
}

// Get returns a copy of the object h.
func (a *Arena) Get(h Handle) (Object, error) {
	a.locker.RLock()
	defer a.locker.RUnlock()
	obj, err := a.lookup(h)
	if err != nil {
		return Object{}, err
	}
	return obj.clone(), nil
}

// Update runs fn on a copy of the object h and stores the result if fn
// returns nil. It is the only way to modify an object. fn runs with the
// arena locked and must not call back into it.
func (a *Arena) Update(h Handle, fn func(obj *Object) error) error {
	a.locker.Lock()
	defer a.locker.Unlock()
	slot, err := a.lookup(h)
	if err != nil {
		return err
	}
	obj := slot.clone()
	if err := fn(&obj); err != nil {
		return err
	}
	if err := a.validate(&obj); err != nil {
		return err
	}
	*slot = obj
	return nil
}

// Deref follows references starting at h and returns the first object
// which is not a reference, with its handle.
func (a *Arena) Deref(h Handle) (Handle, Object, error) {
	a.locker.RLock()
	defer a.locker.RUnlock()
	cur := h
	for depth := 0; depth <= MaxReferenceDepth; depth++ {
		obj, err := a.lookup(cur)
		if err != nil {
			return 0, Object{}, err
		}
		if obj.Kind != KindReference {
			return cur, obj.clone(), nil
		}
		cur = obj.Reference
	}
	return 0, Object{}, &ErrReferenceCycle{Start: h, Depth: MaxReferenceDepth}
}
