// Copyright 2022 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import "fmt"

// ResolveNameConflict returns the next available name for a given thing.
// Name conflicts are resolved by adding a number suffix, e.g. if a struct
// already has fields "arg" and "arg0", ResolveNameConflict returns "arg1"
// for input "arg".
// ResolveNameConflict 返回给定事物的下一个可用名称。
func ResolveNameConflict(rawName string, used func(string) bool) string {
	name := rawName
	ok := used(name)
	for idx := 0; ok; idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
		ok = used(name)
	}
	return name
}

// fieldNames assigns every member of a parameter list a unique, non-empty
// name. Unnamed members become argN after their position.
func fieldNames(args Arguments) []string {
	var (
		names = make([]string, len(args))
		used  = make(map[string]bool, len(args))
	)
	for i, arg := range args {
		name := arg.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		name = ResolveNameConflict(name, func(s string) bool { return used[s] })
		used[name] = true
		names[i] = name
	}
	return names
}
