// Package library implements the saved-items library: a collection of text
// snippets and a folder registry persisted through a types.Storage port.
//
// The Store is organized in four parts:
//
//   - Repository (repository.go): whole-collection load and save of the
//     "library" and "folderList" keys. Loads validate against an embedded
//     JSON Schema and degrade to empty on any mismatch.
//   - Folder taxonomy (taxonomy.go): the effective folder set, folder
//     creation, and deletion with reassignment to Uncategorized.
//   - View projection (view.go): items filtered by folder or by the
//     virtual Favorites view.
//   - Mutations (mutate.go): append, retitle, move, favorite, delete, clear.
//
// Every mutation is a read-modify-write of the full collection and is
// flushed to storage before it returns. A Store serializes its own calls;
// separate processes sharing a data directory are last-writer-wins.
package library
