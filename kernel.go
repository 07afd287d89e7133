// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import "errors"

// _MINTABLESIZE is the minimal number of buckets a weak unique table starts
// with.
const _MINTABLESIZE int = 61

// _LOADFACTOR is the overestimate/capacity ratio past which a weak unique
// table doubles and rehashes.
const _LOADFACTOR float64 = 0.8

// _DEFAULTCACHESIZE is the initial size of an operation cache when the
// caller does not supply one with WithCacheSize.
const _DEFAULTCACHESIZE int = 4093

var errEmptyOperands = errors.New("sfdd: combinator requires at least one operand")
var errNilFn = errors.New("sfdd: Inductive requires a non-nil recursion function")
