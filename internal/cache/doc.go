// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache manages the sidecar folder that holds a notebook document's
// rendered chunk output.
//
// A notebook document is accompanied by a sidecar .nb.cached folder with the
// following structure:
//
//	- foo.nb
//	+ foo.nb.cached
//	  - chunks.json
//	  - cwiaiw9i4f0.html
//	  + cwiaiw9i4f0_files
//	    - plot.png
//	  - c0aj9vhk0cz.html
//	  + lib
//	    + htmlwidgets
//	      - htmlwidget.js
//
// That is:
//   - each chunk has an ID and is represented by a single, self-contained
//     HTML file, with a separate folder for dependencies
//   - dependencies of each chunk are in a folder alongside the chunk
//   - the special file "chunks.json" records the document's current chunk
//     definitions and is the sole authority on which chunk IDs exist
//   - the special folder "lib" holds assets shared across chunks (e.g.
//     scripts upon which several widget chunks depend)
package cache
