// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package batch provides an ordered task batch: a set of independent
// asynchronous operations that are all started immediately and then
// joined in the order they were submitted, regardless of the order
// in which they complete.
package batch

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Policy determines how a batch reacts to a failing task.
type Policy int32

const (
	// FailFast makes the first task error (in completion order) the
	// error of the whole batch. The context passed to the remaining
	// tasks is canceled.
	FailFast Policy = iota

	// Collect keeps every task independent: a task error is recorded
	// in that task's [Result] and never affects the other tasks.
	Collect
)

func (p Policy) String() string {
	switch p {
	case FailFast:
		return "FailFast"
	case Collect:
		return "Collect"
	}
	return "Policy(invalid)"
}

// Result is the outcome of one task.
type Result[T any] struct {
	Value T
	Err   error
}

// Ordered is a batch of tasks whose results are returned in
// submission order. It must be created with [New]. Go must not be
// called concurrently with itself or after Wait.
type Ordered[T any] struct {
	policy  Policy
	ctx     context.Context
	group   *errgroup.Group
	results []*Result[T]
}

// New returns a new batch using the given policy. The given context
// is the parent of the context passed to every task.
func New[T any](ctx context.Context, policy Policy) *Ordered[T] {
	b := &Ordered[T]{policy: policy}
	if policy == FailFast {
		b.group, b.ctx = errgroup.WithContext(ctx)
	} else {
		b.group, b.ctx = &errgroup.Group{}, ctx
	}
	return b
}

// SetLimit limits the number of tasks running at once.
// It must be called before the first call to Go.
func (b *Ordered[T]) SetLimit(n int) {
	b.group.SetLimit(n)
}

// Go starts the given task. The slot for its result is reserved
// at call time, which is what fixes the output order.
func (b *Ordered[T]) Go(fn func(ctx context.Context) (T, error)) {
	res := &Result[T]{}
	b.results = append(b.results, res)
	b.group.Go(func() error {
		res.Value, res.Err = fn(b.ctx)
		if b.policy == Collect {
			return nil
		}
		return res.Err
	})
}

// Len returns the number of tasks submitted so far.
func (b *Ordered[T]) Len() int {
	return len(b.results)
}

// Wait blocks until every task has finished. With [FailFast] it
// returns nil values and the first error if any task failed.
// With [Collect] it returns every value in order (zero values for
// failed tasks) and all task errors joined together.
func (b *Ordered[T]) Wait() ([]T, error) {
	err := b.group.Wait()
	if b.policy == FailFast && err != nil {
		return nil, err
	}
	vals := make([]T, len(b.results))
	var errs []error
	for i, r := range b.results {
		vals[i] = r.Value
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return vals, errors.Join(errs...)
}

// Results blocks until every task has finished and returns each
// task's [Result] in submission order.
func (b *Ordered[T]) Results() []Result[T] {
	b.group.Wait()
	rs := make([]Result[T], len(b.results))
	for i, r := range b.results {
		rs[i] = *r
	}
	return rs
}
