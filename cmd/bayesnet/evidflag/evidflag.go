// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package evidflag parses the --evidence flag shared by the bayesnet
// subcommands that answer a query.
package evidflag

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/js-arias/bayesnet/network"
)

// Parse reads a comma-separated "variable=value" list, as given to the
// --evidence flag, into a network.Evidence. An empty string is valid
// and returns nil evidence.
func Parse(s string) (network.Evidence, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	ev := make(network.Evidence)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) != 2 {
			return nil, fmt.Errorf("invalid evidence %q: expecting \"variable=value\"", pair)
		}
		v, err := strconv.Atoi(strings.TrimSpace(kv[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid evidence %q: %v", pair, err)
		}
		k, err := strconv.Atoi(strings.TrimSpace(kv[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid evidence %q: %v", pair, err)
		}
		ev[v] = k
	}
	return ev, nil
}
