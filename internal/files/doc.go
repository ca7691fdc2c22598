// Package files provides file system discovery and management utilities for
// the dataset processor.
//
// Discovery enumerates the raw input fragments (CSV and Excel) for each
// dataset and locates cleaned part files. Manager carries the basic
// copy/move/delete operations used to stage and clear output directories.
// All relative paths resolve against a base path to keep the tools portable.
package files
