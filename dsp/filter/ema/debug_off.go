//go:build !emadebug

package ema

const debugChecks = false

func (f *Filter[T]) checkUpdate(_, _, _ T) {}
