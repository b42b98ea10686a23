// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"gopkg.microglot.org/bfc.go/internal/fs"
	"gopkg.microglot.org/bfc.go/internal/idl"
)

// NewDefaultFS returns a file system that searches the platform's shared
// data directories, in order.
func NewDefaultFS(lookup func(string) (string, bool)) (idl.FileSystem, error) {
	roots := getDefaultRoots(lookup)
	f := make(fs.FileSystemMulti, 0, len(roots))
	for _, root := range roots {
		rf, err := fs.NewFileSystemLocal(root)
		if err != nil {
			return nil, err
		}
		f = append(f, rf)
	}
	return f, nil
}
