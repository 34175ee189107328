// Package server implements the MCP (Model Context Protocol) server for the
// crop and document composition tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods are initialize, tools/list, tools/call and ping.
//
// # Available Tools
//
// Images:
//   - image_load: Decode an image and report format, size and physical size
//   - image_dimensions: Get width and height
//
// Planning (pure geometry, no pixels touched):
//   - image_plan_crop: Source rectangle and output size for a crop & resize
//   - image_plan_rotation: Bounding box of a rotated rectangle
//   - image_plan_fit: Placement of content inside a drawable area
//
// Output:
//   - image_crop_resize: Crop and resize to an exact size, returned as base64
//   - document_plan: Lay out images as pages without writing anything
//   - document_combine: Write images to a PDF, one per page
//
// Page sequences:
//   - sequence_move: Move one page and renumber
//   - sequence_remove: Remove one page and renumber
//
// # Image Caching
//
// Decoded images are cached by path. document_combine evicts each image
// once its page has been written, so a long document does not hold every
// decoded image at once.
//
// # Error Handling
//
// Tool failures are returned as JSON-RPC errors with code -32000 and the Go
// error text as message. Malformed arguments use -32602.
//
// # Usage
//
//	srv := server.New(config.Default(), log)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal().Err(err).Send()
//	}
package server
