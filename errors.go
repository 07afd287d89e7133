// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package sfdd

import (
	"fmt"
	"log"
)

// fatalf reports a violation of a canonicity invariant or an unreachable
// branch of a case analysis. Both are programming errors in the caller or in
// this package, not recoverable conditions, so we panic rather than thread
// an error value through every recursive call.
func fatalf(format string, a ...interface{}) {
	msg := fmt.Sprintf(format, a...)
	if _DEBUG {
		log.Println("sfdd: fatal:", msg)
	}
	panic("sfdd: " + msg)
}

// assertOrderingf panics with the formatted message unless ok holds. MakeNode
// uses it to enforce strict key ordering along take/skip edges.
func assertOrderingf[K any](ok bool, format string, a ...interface{}) {
	if !ok {
		fatalf(format, a...)
	}
}
