// Package segment composes TypeScript source segments from plain
// descriptors: classes and interfaces, functions, constants and import
// lists.
//
// Descriptors are data only. Bodies are written in a small line model
// (Text, Block, IfStorage, StorageChain, Source) evaluated against a
// Context holding the selected storage backends, so one descriptor renders
// the right code for every backend selection.
//
//	c := segment.Class{
//		Name:    "SqlDatabase",
//		Extends: []string{"Database"},
//	}
//	c.Render(w, segment.Context{Storages: cfg.StorageNames()})
package segment
