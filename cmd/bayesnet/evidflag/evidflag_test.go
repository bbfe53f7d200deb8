// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package evidflag_test

import (
	"testing"

	"github.com/js-arias/bayesnet/cmd/bayesnet/evidflag"
)

func TestParse(t *testing.T) {
	ev, err := evidflag.Parse(" 0=1, 2=0 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(ev) != 2 || ev[0] != 1 || ev[2] != 0 {
		t.Fatalf("Parse = %v, want {0:1, 2:0}", ev)
	}
}

func TestParseEmpty(t *testing.T) {
	ev, err := evidflag.Parse("")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ev != nil {
		t.Fatalf("Parse(\"\") = %v, want nil", ev)
	}
}

func TestParseRejectsMalformedPair(t *testing.T) {
	if _, err := evidflag.Parse("0"); err == nil {
		t.Fatalf("Parse accepted a pair with no value")
	}
	if _, err := evidflag.Parse("x=1"); err == nil {
		t.Fatalf("Parse accepted a non-numeric variable")
	}
}
